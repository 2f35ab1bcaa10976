package cast

// TimerState is the clock of one block. Current never decreases.
type TimerState struct {
	Started float64
	Current float64
	End     float64
}

// timer hands out per-block clocks. Each block's clock starts at a random
// fraction of a second so consecutive recordings do not all start at 0.
type timer struct {
	states map[string]*TimerState
	jitter func() float64
}

func newTimer(jitter func() float64) *timer {
	return &timer{states: make(map[string]*TimerState), jitter: jitter}
}

// peekOrInit returns the state for key, creating it on first use. The
// second return value is true when the state was just created.
func (t *timer) peekOrInit(key string) (*TimerState, bool) {
	if s, ok := t.states[key]; ok {
		return s, false
	}
	s := &TimerState{Current: baseline(t.jitter())}
	t.states[key] = s
	return s, true
}

// advance adds seconds to the current time of key and returns the new value.
func (t *timer) advance(key string, seconds float64) float64 {
	s, _ := t.peekOrInit(key)
	s.Current = round4(s.Current + seconds)
	return s.Current
}

// set stores an absolute current time for key.
func (t *timer) set(key string, v float64) {
	s, _ := t.peekOrInit(key)
	s.Current = round4(v)
}

// baseline rounds a jitter draw to four digits without letting it reach 1.
func baseline(v float64) float64 {
	v = round4(v)
	if v >= 1 {
		return 0.9999
	}
	return v
}
