package cast

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

// ErrNoHeader is returned when a recording does not start with a header line.
var ErrNoHeader = errors.New("recording has no header")

// Legacy is the flattened asciicast v1 artifact: the header fields at the
// top level and every event under stdout.
type Legacy struct {
	Header
	Stdout []Event `json:"stdout"`
}

// EncodeLegacy merges overrides over the default header, forces version 1
// and regroups the flattened events of every frame into [time, data] pairs.
func EncodeLegacy(block Block, overrides Header) Legacy {
	h := DefaultHeader().Merge(overrides)
	h.Version = 1

	var flat []any
	for _, f := range block.Frames {
		flat = append(flat, f.Flat()...)
	}
	stdout := make([]Event, 0, len(flat)/2)
	for pair := range slices.Chunk(flat, 2) {
		if len(pair) < 2 {
			break
		}
		t, _ := pair[0].(Timestamp)
		d, _ := pair[1].(string)
		stdout = append(stdout, Event{Time: t, Data: d})
	}
	return Legacy{Header: h, Stdout: stdout}
}

// Marshal renders l with three space indentation.
func (l Legacy) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "   ")
	if err := enc.Encode(l); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Recording is a parsed streaming artifact.
type Recording struct {
	Header Header
	Events []Event // output events only
}

// Duration is the time of the last event.
func (r Recording) Duration() Timestamp {
	if len(r.Events) == 0 {
		return 0
	}
	return r.Events[len(r.Events)-1].Time
}

// ReadRecording parses a streaming artifact. Blank lines are skipped and
// events other than terminal output are dropped.
func ReadRecording(r io.Reader) (Recording, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var rec Recording
	seenHeader := false
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if !seenHeader {
			if err := json.Unmarshal([]byte(line), &rec.Header); err != nil {
				return Recording{}, fmt.Errorf("line %d: %w: %v", lineNo, ErrNoHeader, err)
			}
			seenHeader = true
			continue
		}
		ev, kind, err := parseEventLine(line)
		if err != nil {
			return Recording{}, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if kind == OutputEvent {
			rec.Events = append(rec.Events, ev)
		}
	}
	if err := sc.Err(); err != nil {
		return Recording{}, err
	}
	if !seenHeader {
		return Recording{}, ErrNoHeader
	}
	return rec, nil
}

func parseEventLine(line string) (Event, string, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal([]byte(line), &parts); err != nil {
		return Event{}, "", fmt.Errorf("parse event: %w", err)
	}
	if len(parts) != 3 {
		return Event{}, "", fmt.Errorf("parse event: want 3 fields, got %d", len(parts))
	}
	var (
		ev   Event
		kind string
	)
	if err := json.Unmarshal(parts[0], &ev.Time); err != nil {
		return Event{}, "", fmt.Errorf("parse event time: %w", err)
	}
	if err := json.Unmarshal(parts[1], &kind); err != nil {
		return Event{}, "", fmt.Errorf("parse event type: %w", err)
	}
	if err := json.Unmarshal(parts[2], &ev.Data); err != nil {
		return Event{}, "", fmt.Errorf("parse event data: %w", err)
	}
	return ev, kind, nil
}
