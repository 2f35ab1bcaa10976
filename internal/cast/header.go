// Package cast synthesizes simulated typing sessions from blocks of text and
// encodes them as asciicast recordings.
//
// See https://github.com/asciinema/asciinema/blob/develop/doc/asciicast-v2.md
// for the streaming format and asciicast-v1.md for the legacy one.
package cast

import (
	"bytes"
	"encoding/json"
	"maps"
)

// Theme is the optional color theme of a recording.
type Theme struct {
	FG      string `json:"fg" yaml:"fg"`
	BG      string `json:"bg" yaml:"bg"`
	Palette string `json:"palette" yaml:"palette"`
}

// Header is the recording metadata written as the first line of a
// streaming artifact and as the top-level fields of a legacy one.
type Header struct {
	Version   int               `json:"version"`
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	Timestamp int64             `json:"timestamp,omitempty"`
	Duration  float64           `json:"duration,omitempty"`
	Command   string            `json:"command,omitempty"`
	Theme     *Theme            `json:"theme,omitempty"`
	Title     string            `json:"title"`
	Env       map[string]string `json:"env"`
}

// DefaultPalette is the 16 color palette used when no theme is configured.
const DefaultPalette = "#151515:#ac4142:#7e8e50:#e5b567:#6c99bb:#9f4e85:#7dd6cf:#d0d0d0:" +
	"#505050:#ac4142:#7e8e50:#e5b567:#6c99bb:#9f4e85:#7dd6cf:#f5f5f5"

// DefaultHeader returns a fresh copy of the default header.
func DefaultHeader() Header {
	return Header{
		Version: 2,
		Width:   80,
		Height:  24,
		Theme: &Theme{
			FG:      "#d0d0d0",
			BG:      "#212121",
			Palette: DefaultPalette,
		},
		Title: "demo",
		Env: map[string]string{
			"TERM":  "xterm-256color",
			"SHELL": "/bin/zsh",
		},
	}
}

// Merge returns a copy of h with every non-zero field of o applied on top.
// Theme and Env are replaced as a whole, not merged key by key.
func (h Header) Merge(o Header) Header {
	out := h
	if o.Version != 0 {
		out.Version = o.Version
	}
	if o.Width != 0 {
		out.Width = o.Width
	}
	if o.Height != 0 {
		out.Height = o.Height
	}
	if o.Timestamp != 0 {
		out.Timestamp = o.Timestamp
	}
	if o.Duration != 0 {
		out.Duration = o.Duration
	}
	if o.Command != "" {
		out.Command = o.Command
	}
	if o.Theme != nil {
		out.Theme = o.Theme
	}
	if o.Title != "" {
		out.Title = o.Title
	}
	if o.Env != nil {
		out.Env = o.Env
	}
	return out.clone()
}

func (h Header) clone() Header {
	if h.Theme != nil {
		t := *h.Theme
		h.Theme = &t
	}
	h.Env = maps.Clone(h.Env)
	return h
}

// Line renders the header as a single JSON line without a trailing newline.
func (h Header) Line() (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(h); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
