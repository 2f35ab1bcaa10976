package cast

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// OutputEvent tags an event as terminal output.
const OutputEvent = "o"

// Event is a single piece of simulated terminal output.
type Event struct {
	Time Timestamp
	Data string
}

// Line renders e as a streaming artifact line: [time, "o", data].
func (e Event) Line() string {
	return fmt.Sprintf("[%s, %q, %s]", e.Time, OutputEvent, jsonString(e.Data))
}

// MarshalJSON encodes e as the legacy [time, data] pair.
func (e Event) MarshalJSON() ([]byte, error) {
	return []byte("[" + e.Time.String() + ", " + jsonString(e.Data) + "]"), nil
}

// Frame is the output generated for one line of a block.
type Frame struct {
	StartedAt Timestamp `json:"startedAt"`
	Text      string    `json:"text"`
	Events    []Event   `json:"events"`
}

// Empty reports whether the frame produced no output.
func (f Frame) Empty() bool {
	return len(f.Events) == 0
}

// Flat returns the events as an alternating time, payload sequence.
func (f Frame) Flat() []any {
	flat := make([]any, 0, 2*len(f.Events))
	for _, e := range f.Events {
		flat = append(flat, e.Time, e.Data)
	}
	return flat
}

// jsonString encodes s as a JSON string without HTML escaping, so escape
// characters come out as \u001b and everything else stays readable.
func jsonString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a string never fails.
	_ = enc.Encode(s)
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}
