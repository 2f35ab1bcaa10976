package cast

import "strings"

// LineKind is the treatment a source line gets.
type LineKind int

const (
	// LineCode is typed in the accent color after a shell prompt.
	LineCode LineKind = iota
	// LineComment is typed in a muted color without a prompt.
	LineComment
	// LinePreEscaped carries its own escape codes and is written verbatim
	// as a single event.
	LinePreEscaped
)

func (k LineKind) String() string {
	switch k {
	case LineComment:
		return "comment"
	case LinePreEscaped:
		return "pre-escaped"
	default:
		return "code"
	}
}

const preEscapedMarker = "# " + ESC

// literalEscape is how an escape character is usually spelled in a markdown
// source, since the raw byte cannot be typed.
const literalEscape = `\u001b`

const literalEscapedMarker = "# " + literalEscape

// Line is a classified source line.
type Line struct {
	Kind  LineKind
	Text  string // text to emit, decoration marker removed
	Color int    // SGR color for typed characters
}

// Prompted reports whether a prompt precedes the line.
func (l Line) Prompted() bool {
	return l.Kind == LineCode
}

// Classify categorizes a line of source text.
func Classify(line string) Line {
	switch {
	case strings.HasPrefix(line, preEscapedMarker):
		return Line{Kind: LinePreEscaped, Text: line[1:], Color: ColorComment}
	case strings.HasPrefix(line, literalEscapedMarker):
		return Line{
			Kind:  LinePreEscaped,
			Text:  strings.ReplaceAll(line[1:], literalEscape, ESC),
			Color: ColorComment,
		}
	case strings.HasPrefix(line, "#"):
		return Line{Kind: LineComment, Text: line[1:], Color: ColorComment}
	default:
		return Line{Kind: LineCode, Text: line, Color: ColorCode}
	}
}
