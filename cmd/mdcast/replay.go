package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/choonkeat/mdcast/internal/cast"
)

// replayOptions controls how recorded time maps onto wall time.
type replayOptions struct {
	Speed   float64       // playback speed multiplier
	MaxWait time.Duration // longest pause between events; 0 means no limit
	Instant bool          // emit everything without pausing
}

// delay is the pause before an event at next when the previous one was at prev.
func (o replayOptions) delay(prev, next cast.Timestamp) time.Duration {
	if o.Instant || next <= prev {
		return 0
	}
	speed := o.Speed
	if speed <= 0 {
		speed = 1
	}
	d := time.Duration(float64(next-prev) / speed * float64(time.Second))
	if o.MaxWait > 0 && d > o.MaxWait {
		d = o.MaxWait
	}
	return d
}

// replay calls emit for every event in order, pausing between them the way
// the recording says.
func replay(ctx context.Context, events []cast.Event, opts replayOptions, emit func(cast.Event) error) error {
	var prev cast.Timestamp
	for _, ev := range events {
		if d := opts.delay(prev, ev.Time); d > 0 {
			t := time.NewTimer(d)
			select {
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			case <-t.C:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		if err := emit(ev); err != nil {
			return err
		}
		prev = ev.Time
	}
	return nil
}

func readRecordingFile(path string) (cast.Recording, error) {
	f, err := os.Open(expandTilde(path))
	if err != nil {
		return cast.Recording{}, err
	}
	defer f.Close()
	rec, err := cast.ReadRecording(f)
	if err != nil {
		return cast.Recording{}, fmt.Errorf("read %s: %w", path, err)
	}
	return rec, nil
}
