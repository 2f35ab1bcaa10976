package cast

import "strings"

// emitter types out single lines against a shared timer.
type emitter struct {
	timer  *timer
	opts   RenderingOptions
	prompt string
}

// emit generates the frame for one line of the block identified by key.
func (e *emitter) emit(key, line string, skipEmptyLines bool) Frame {
	step := e.opts.StepSeconds()
	state, _ := e.timer.peekOrInit(key)
	startedAt := state.Current

	l := Classify(line)
	if l.Text == "" && skipEmptyLines {
		return Frame{StartedAt: Timestamp(startedAt)}
	}

	if l.Kind == LinePreEscaped {
		ev := Event{Time: Timestamp(startedAt), Data: l.Text + "\r\n"}
		// Advances by startedAt rather than one step. Existing recordings
		// depend on these numbers.
		e.timer.set(key, startedAt+startedAt)
		return Frame{
			StartedAt: Timestamp(startedAt),
			Text:      ev.Line(),
			Events:    []Event{ev},
		}
	}

	chars := []rune(l.Text)
	events := make([]Event, 0, len(chars)+2)
	at := func(j int) Timestamp {
		return Timestamp(round4(startedAt + float64(j)*step))
	}
	if l.Prompted() {
		events = append(events, Event{Time: at(0), Data: "\r\n" + e.prompt})
	}
	for j, c := range chars {
		events = append(events, Event{Time: at(j), Data: Colorize(l.Color, string(c))})
	}
	// The virtual position after the last character is the Enter stroke.
	end := at(len(chars))
	events = append(events, Event{Time: end, Data: "\r\n"})
	e.timer.set(key, float64(end))

	lines := make([]string, len(events))
	for i, ev := range events {
		lines[i] = ev.Line()
	}
	return Frame{
		StartedAt: Timestamp(startedAt),
		Text:      strings.Join(lines, "\n"),
		Events:    events,
	}
}
