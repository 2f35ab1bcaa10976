package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/choonkeat/mdcast/internal/cast"
)

func runPlay(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	speed := fs.Float64("speed", 1, "Playback speed multiplier")
	maxWait := fs.Duration("max-wait", 2*time.Second, "Longest pause between events (0 for no limit)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("play needs exactly one .cast file")
	}
	if *speed <= 0 {
		return fmt.Errorf("speed must be > 0, got %v", *speed)
	}

	rec, err := readRecordingFile(fs.Arg(0))
	if err != nil {
		return err
	}
	if rows, cols, err := terminalSize(); err == nil && (cols < rec.Header.Width || rows < rec.Header.Height) {
		log.Printf("Warning: terminal is %dx%d, recording expects %dx%d", cols, rows, rec.Header.Width, rec.Header.Height)
	}

	opts := replayOptions{Speed: *speed, MaxWait: *maxWait}
	return replay(ctx, rec.Events, opts, func(ev cast.Event) error {
		_, err := io.WriteString(stdout, ev.Data)
		return err
	})
}
