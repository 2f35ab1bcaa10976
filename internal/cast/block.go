package cast

import "strconv"

// Block is one fenced code section extracted from a source document.
type Block struct {
	Index   int    `json:"index"`
	Size    int    `json:"size"`
	EndsAt  int    `json:"endsAt"`
	StartAt int    `json:"startAt"`
	Content string `json:"content"`
	Lang    string `json:"lang,omitempty"`

	// Attached after generation.
	Parsed string  `json:"parsed"`
	Cast   string  `json:"cast"`
	Frames []Frame `json:"frames"`
}

// Key identifies the block's clock.
func (b Block) Key() string {
	return "block-" + strconv.Itoa(b.Index)
}
