package cast

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidCPM is returned when characters per minute is not a positive
// finite number.
var ErrInvalidCPM = errors.New("cpm must be a positive number")

// PromptEnvVar overrides the working directory prompt when no explicit
// prompt is configured.
const PromptEnvVar = "ASCCINEMA_PROMPT"

// RenderingOptions controls how lines are typed out.
type RenderingOptions struct {
	CPM            float64 `yaml:"cpm"`              // characters per minute
	SkipEmptyLines bool    `yaml:"skip_empty_lines"` // emit nothing for empty lines
	Prompt         string  `yaml:"prompt"`           // shell prompt; empty means derive it
}

// DefaultRenderingOptions returns {cpm: 300, skipEmptyLines: true}.
func DefaultRenderingOptions() RenderingOptions {
	return RenderingOptions{CPM: 300, SkipEmptyLines: true}
}

// Validate reports configuration that would produce non-finite or negative
// timestamps.
func (o RenderingOptions) Validate() error {
	if o.CPM <= 0 || math.IsNaN(o.CPM) || math.IsInf(o.CPM, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidCPM, o.CPM)
	}
	return nil
}

// StepSeconds is the duration of one keystroke.
func (o RenderingOptions) StepSeconds() float64 {
	return 60 / o.CPM
}

// Env is the slice of process environment the emitter depends on.
type Env struct {
	Cwd            string // working directory
	PromptOverride string // value of ASCCINEMA_PROMPT, if any
}

// ResolvePrompt resolves the prompt text: explicit option, then the environment
// override, then the working directory with forward slashes and a trailing
// space.
func (o RenderingOptions) ResolvePrompt(env Env) string {
	if o.Prompt != "" {
		return o.Prompt
	}
	if env.PromptOverride != "" {
		return env.PromptOverride
	}
	return strings.ReplaceAll(env.Cwd, `\`, "/") + " "
}
