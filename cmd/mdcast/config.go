package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/choonkeat/mdcast/internal/cast"
)

// Config is the mdcast.yaml file. Flags override file values.
type Config struct {
	Header    HeaderConfig          `yaml:"header"`
	Rendering cast.RenderingOptions `yaml:"rendering"`
	Output    OutputConfig          `yaml:"output"`
}

// HeaderConfig holds the recording header fields a user may override.
type HeaderConfig struct {
	Width   int               `yaml:"width"`
	Height  int               `yaml:"height"`
	Title   string            `yaml:"title"`
	Command string            `yaml:"command"`
	Theme   *cast.Theme       `yaml:"theme"`
	Env     map[string]string `yaml:"env"`
}

// OutputConfig decides where artifacts are written.
type OutputConfig struct {
	Dir      string `yaml:"dir"`
	Prefix   string `yaml:"prefix"`
	Template string `yaml:"template"`
	ImageDir string `yaml:"image_dir"`
	Manifest string `yaml:"manifest"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Header:    HeaderConfig{Title: "demo"},
		Rendering: cast.DefaultRenderingOptions(),
		Output: OutputConfig{
			Dir:      ".",
			Prefix:   "block-",
			Template: "asciinema-template.md",
			ImageDir: ".asciicast",
			Manifest: "asciinema-casts.json",
		},
	}
}

// LoadConfig reads and parses a YAML config file. Returns DefaultConfig merged with the file.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(expandTilde(path))
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks that required fields are present and values are sane.
func (c *Config) Validate() error {
	if err := c.Rendering.Validate(); err != nil {
		return err
	}
	if c.Header.Width < 0 || c.Header.Height < 0 {
		return fmt.Errorf("header width and height must be >= 0")
	}
	if c.Header.Theme != nil {
		if _, err := c.Header.Theme.Normalize(); err != nil {
			return fmt.Errorf("header theme: %w", err)
		}
	}
	if c.Output.Prefix == "" {
		return fmt.Errorf("output prefix is required")
	}
	if c.Output.Template == "" {
		return fmt.Errorf("output template is required")
	}
	if c.Output.Manifest == "" {
		return fmt.Errorf("output manifest is required")
	}
	return nil
}

// CastHeader converts the header section into overrides for cast.Header.
func (c *Config) CastHeader() (cast.Header, error) {
	h := cast.Header{
		Width:   c.Header.Width,
		Height:  c.Header.Height,
		Title:   c.Header.Title,
		Command: c.Header.Command,
		Env:     c.Header.Env,
	}
	if c.Header.Theme != nil {
		theme, err := c.Header.Theme.Normalize()
		if err != nil {
			return cast.Header{}, fmt.Errorf("header theme: %w", err)
		}
		h.Theme = &theme
	}
	return h, nil
}
