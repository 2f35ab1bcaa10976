package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/creack/pty"
	"github.com/google/uuid"

	"github.com/choonkeat/mdcast/internal/cast"
	"github.com/choonkeat/mdcast/internal/markdown"
)

// Manifest aggregates every block of one document run.
type Manifest struct {
	RunID    string       `json:"runId"`
	Header   cast.Header  `json:"header"`
	Blocks   []cast.Block `json:"blocks"`
	Template string       `json:"template"`
}

// generateOptions is everything one generate run needs besides the source.
type generateOptions struct {
	cfg    *Config
	env    cast.Env
	jitter func() float64 // nil uses the generator default
	stdout io.Writer
}

// terminalSize reports the size of the controlling terminal.
var terminalSize = func() (rows, cols int, err error) {
	return pty.Getsize(os.Stdout)
}

func runGenerate(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	source := fs.String("s", "", "Source markdown file (- for stdin)")
	outFile := fs.String("o", "", "Output template file (default asciinema-template.md)")
	outDir := fs.String("dir", "", "Directory to write artifacts to (default .)")
	prefix := fs.String("prefix", "", "File name prefix of each block artifact (default block-)")
	configPath := fs.String("config", "", "YAML config file")
	cpm := fs.Float64("cpm", 0, "Characters per minute (default 300)")
	prompt := fs.String("prompt", "", "Shell prompt shown before code lines (default $"+cast.PromptEnvVar+" or the working directory)")
	keepEmpty := fs.Bool("keep-empty-lines", false, "Type out empty lines instead of skipping them")
	title := fs.String("title", "", "Recording title (default demo)")
	width := fs.Int("width", 0, "Terminal width (default 80)")
	height := fs.Int("height", 0, "Terminal height (default 24)")
	fitTerminal := fs.Bool("fit-terminal", false, "Use the size of the current terminal")
	imageDir := fs.String("image-dir", "", "Directory the template points images at (default .asciicast)")
	watch := fs.Bool("watch", false, "Regenerate whenever the source file changes")
	quiet := fs.Bool("q", false, "Do not print written files")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *source == "" {
		return fmt.Errorf("missing required flag -s")
	}
	if *watch && *source == "-" {
		return fmt.Errorf("-watch needs a source file, not stdin")
	}

	cfg := DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = LoadConfig(*configPath); err != nil {
			return err
		}
	}

	// Only flags given on the command line override the config file.
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["o"] {
		cfg.Output.Template = *outFile
	}
	if set["dir"] {
		cfg.Output.Dir = *outDir
	}
	if set["prefix"] {
		cfg.Output.Prefix = *prefix
	}
	if set["image-dir"] {
		cfg.Output.ImageDir = *imageDir
	}
	if set["cpm"] {
		cfg.Rendering.CPM = *cpm
	}
	if set["prompt"] {
		cfg.Rendering.Prompt = *prompt
	}
	if set["keep-empty-lines"] {
		cfg.Rendering.SkipEmptyLines = !*keepEmpty
	}
	if set["title"] {
		cfg.Header.Title = *title
	}
	if set["width"] {
		cfg.Header.Width = *width
	}
	if set["height"] {
		cfg.Header.Height = *height
	}
	if *fitTerminal {
		rows, cols, err := terminalSize()
		if err != nil {
			log.Printf("Warning: cannot read terminal size, keeping %dx%d: %v", cfg.Header.Width, cfg.Header.Height, err)
		} else {
			cfg.Header.Width, cfg.Header.Height = cols, rows
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if *quiet {
		stdout = io.Discard
	}
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	opts := generateOptions{
		cfg:    cfg,
		env:    cast.Env{Cwd: cwd, PromptOverride: os.Getenv(cast.PromptEnvVar)},
		stdout: stdout,
	}

	load := func() ([]byte, error) {
		if *source == "-" {
			return io.ReadAll(stdin)
		}
		return os.ReadFile(expandTilde(*source))
	}
	run := func() error {
		src, err := load()
		if err != nil {
			return fmt.Errorf("read source: %w", err)
		}
		_, err = generateDocument(src, opts)
		return err
	}

	if err := run(); err != nil {
		return err
	}
	if !*watch {
		return nil
	}
	return watchFile(ctx, expandTilde(*source), func() {
		if err := run(); err != nil {
			log.Printf("Regenerate failed: %v", err)
		}
	})
}

// generateDocument converts source and writes every artifact. It returns
// the manifest that was written.
func generateDocument(source []byte, opts generateOptions) (*Manifest, error) {
	cfg := opts.cfg
	header, err := cfg.CastHeader()
	if err != nil {
		return nil, err
	}
	gen, err := cast.NewGenerator(cast.Config{
		Header:    header,
		Rendering: cfg.Rendering,
		Env:       opts.env,
		Jitter:    opts.jitter,
	})
	if err != nil {
		return nil, err
	}

	doc, err := markdown.NewConverter().Parse(source)
	if err != nil {
		return nil, err
	}
	blocks, err := gen.GenerateAll(doc.Blocks)
	if err != nil {
		return nil, err
	}

	dir := expandTilde(cfg.Output.Dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory %q: %w", dir, err)
	}

	m := &Manifest{
		RunID:    uuid.New().String(),
		Header:   gen.Header(),
		Blocks:   blocks,
		Template: doc.Template,
	}
	manifestData, err := marshalJSON(m)
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	if err := writeArtifact(opts.stdout, outputPath(dir, cfg.Output.Manifest), manifestData); err != nil {
		return nil, err
	}

	tmpl := markdown.Hydrate(doc.Template, cfg.Output.ImageDir, cfg.Output.Prefix)
	if err := writeArtifact(opts.stdout, outputPath(dir, cfg.Output.Template), []byte(tmpl)); err != nil {
		return nil, err
	}

	for _, b := range blocks {
		if err := writeArtifact(opts.stdout, filepath.Join(dir, castName(cfg.Output.Prefix, b.Index)), []byte(b.Cast)); err != nil {
			return nil, err
		}
		legacy, err := cast.EncodeLegacy(b, header).Marshal()
		if err != nil {
			return nil, fmt.Errorf("encode block %d: %w", b.Index, err)
		}
		if err := writeArtifact(opts.stdout, filepath.Join(dir, legacyName(cfg.Output.Prefix, b.Index)), legacy); err != nil {
			return nil, err
		}
	}
	if len(blocks) == 0 {
		fmt.Fprintln(opts.stdout, "No code blocks found")
	}
	return m, nil
}

func writeArtifact(stdout io.Writer, path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	fmt.Fprintf(stdout, "Created %s\n", path)
	return nil
}

// marshalJSON encodes v without HTML escaping so placeholders and escape
// sequences stay readable.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
