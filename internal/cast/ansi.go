package cast

import "fmt"

// ESC is the escape character that starts every ANSI control sequence.
const ESC = "\x1b"

// SGR color codes used to decorate typed characters.
const (
	ColorComment = 37 // white, muted against the bright code color
	ColorCode    = 96 // bright cyan
)

// AnsiReset returns the ANSI reset escape sequence
func AnsiReset() string {
	return ESC + "[0m"
}

// Colorize wraps s in a foreground color sequence followed by a reset.
// An empty s stays empty.
func Colorize(color int, s string) string {
	if s == "" {
		return ""
	}
	return fmt.Sprintf("%s[%dm%s%s", ESC, color, s, AnsiReset())
}
