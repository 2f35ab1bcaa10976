package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/hinshun/vt10x"

	"github.com/choonkeat/mdcast/internal/cast"
)

func runPreview(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("preview needs exactly one .cast file")
	}
	rec, err := readRecordingFile(fs.Arg(0))
	if err != nil {
		return err
	}
	_, err = io.WriteString(stdout, renderScreen(rec))
	return err
}

// renderScreen plays rec into a virtual terminal of the recording's size
// and returns the final screen as plain text, trailing blanks removed.
func renderScreen(rec cast.Recording) string {
	cols, rows := rec.Header.Width, rec.Header.Height
	if cols <= 0 {
		cols = 80
	}
	if rows <= 0 {
		rows = 24
	}

	vt := vt10x.New(vt10x.WithSize(cols, rows))
	for _, ev := range rec.Events {
		vt.Write([]byte(ev.Data))
	}

	vt.Lock()
	defer vt.Unlock()

	lines := make([]string, 0, rows)
	for row := 0; row < rows; row++ {
		var sb strings.Builder
		for col := 0; col < cols; col++ {
			// Write character (or space if null)
			if c := vt.Cell(col, row).Char; c == 0 {
				sb.WriteRune(' ')
			} else {
				sb.WriteRune(c)
			}
		}
		lines = append(lines, strings.TrimRight(sb.String(), " "))
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
