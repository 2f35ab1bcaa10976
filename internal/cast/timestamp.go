package cast

import (
	"math"
	"strconv"
)

// Timestamp is a point in a recording, in seconds. It always renders with
// exactly four fractional digits, both as text and as JSON.
type Timestamp float64

// round4 rounds v to four decimal digits.
func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

// String formats t with exactly four fractional digits.
func (t Timestamp) String() string {
	return strconv.FormatFloat(float64(t), 'f', 4, 64)
}

// MarshalJSON emits t as a JSON number with four fractional digits.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalJSON accepts a JSON number (or a quoted number, which older
// recordings used for some events).
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := string(data)
	if unq, err := strconv.Unquote(s); err == nil {
		s = unq
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*t = Timestamp(v)
	return nil
}
