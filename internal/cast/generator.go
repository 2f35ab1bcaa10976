package cast

import (
	"math/rand/v2"
	"strings"
)

// Config configures a Generator. Zero values fall back to defaults.
type Config struct {
	Header    Header           // merged over DefaultHeader
	Rendering RenderingOptions // validated; use DefaultRenderingOptions as a base
	Env       Env

	// Jitter returns the start offset of each block in [0,1).
	// Defaults to math/rand/v2.Float64.
	Jitter func() float64
}

// Generator turns blocks into recordings. A Generator holds the clocks of
// one document run and must not be reused across documents or shared
// between goroutines.
type Generator struct {
	header  Header
	emitter *emitter
	opts    RenderingOptions
}

// Result is the output of generating one block.
type Result struct {
	Frames    []Frame
	Recording string // streaming artifact: header line plus one line per event
}

// NewGenerator validates cfg and returns a Generator for one document run.
func NewGenerator(cfg Config) (*Generator, error) {
	if err := cfg.Rendering.Validate(); err != nil {
		return nil, err
	}
	jitter := cfg.Jitter
	if jitter == nil {
		jitter = rand.Float64
	}
	em := &emitter{
		timer:  newTimer(jitter),
		opts:   cfg.Rendering,
		prompt: cfg.Rendering.ResolvePrompt(cfg.Env),
	}
	return &Generator{
		header:  DefaultHeader().Merge(cfg.Header),
		emitter: em,
		opts:    cfg.Rendering,
	}, nil
}

// Header returns the header written at the top of every recording.
func (g *Generator) Header() Header {
	return g.header.clone()
}

// Generate types out every line of block in order. The recording is the
// header line followed by the non-empty frame texts, newline terminated, so a
// block with nothing to type ends in a blank line.
func (g *Generator) Generate(block Block) (Result, error) {
	head, err := g.header.Line()
	if err != nil {
		return Result{}, err
	}

	key := block.Key()
	lines := strings.Split(block.Content, "\n")
	frames := make([]Frame, 0, len(lines))

	var texts []string
	for _, line := range lines {
		f := g.emitter.emit(key, line, g.opts.SkipEmptyLines)
		frames = append(frames, f)
		if f.Text != "" {
			texts = append(texts, f.Text)
		}
	}
	rec := head + "\n" + strings.Join(texts, "\n") + "\n"
	return Result{Frames: frames, Recording: rec}, nil
}

// GenerateAll generates every block and attaches the frames and recording
// to it. An empty input yields an empty output.
func (g *Generator) GenerateAll(blocks []Block) ([]Block, error) {
	out := make([]Block, 0, len(blocks))
	for _, b := range blocks {
		res, err := g.Generate(b)
		if err != nil {
			return nil, err
		}
		b.Frames = res.Frames
		b.Cast = res.Recording
		out = append(out, b)
	}
	return out, nil
}
