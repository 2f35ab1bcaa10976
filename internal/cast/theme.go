package cast

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidTheme is returned when a theme color cannot be parsed.
var ErrInvalidTheme = errors.New("invalid theme")

// cssNamedColors maps the basic CSS color keywords plus a few common
// extended ones to their hex values.
var cssNamedColors = map[string]string{
	"black":     "#000000",
	"silver":    "#c0c0c0",
	"gray":      "#808080",
	"grey":      "#808080",
	"white":     "#ffffff",
	"maroon":    "#800000",
	"red":       "#ff0000",
	"purple":    "#800080",
	"fuchsia":   "#ff00ff",
	"magenta":   "#ff00ff",
	"green":     "#008000",
	"lime":      "#00ff00",
	"olive":     "#808000",
	"yellow":    "#ffff00",
	"navy":      "#000080",
	"blue":      "#0000ff",
	"teal":      "#008080",
	"aqua":      "#00ffff",
	"cyan":      "#00ffff",
	"orange":    "#ffa500",
	"darkgreen": "#006400",
	"darkgray":  "#a9a9a9",
	"darkgrey":  "#a9a9a9",
	"dimgray":   "#696969",
	"dimgrey":   "#696969",
	"lightgray": "#d3d3d3",
	"lightgrey": "#d3d3d3",
	"gainsboro": "#dcdcdc",
}

// ParseCSSColor parses a CSS color string (hex or named) and returns RGB values.
// Supports formats: #rgb, #rrggbb, and CSS named colors (case-insensitive).
// Returns (0, 0, 0, false) if the color cannot be parsed.
func ParseCSSColor(color string) (r, g, b uint8, ok bool) {
	color = strings.TrimSpace(color)
	if color == "" {
		return 0, 0, 0, false
	}
	if hex, found := cssNamedColors[strings.ToLower(color)]; found {
		color = hex
	}
	if !strings.HasPrefix(color, "#") {
		return 0, 0, 0, false
	}

	hex := color[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}

// NormalizeColor returns color as a lowercase #rrggbb string.
func NormalizeColor(color string) (string, error) {
	r, g, b, ok := ParseCSSColor(color)
	if !ok {
		return "", fmt.Errorf("%w: color %q", ErrInvalidTheme, color)
	}
	return fmt.Sprintf("#%02x%02x%02x", r, g, b), nil
}

// Normalize returns a copy of t with every color rewritten as #rrggbb.
// The palette must hold exactly 16 colon separated colors.
func (t Theme) Normalize() (Theme, error) {
	fg, err := NormalizeColor(t.FG)
	if err != nil {
		return Theme{}, fmt.Errorf("fg: %w", err)
	}
	bg, err := NormalizeColor(t.BG)
	if err != nil {
		return Theme{}, fmt.Errorf("bg: %w", err)
	}
	entries := strings.Split(t.Palette, ":")
	if len(entries) != 16 {
		return Theme{}, fmt.Errorf("%w: palette has %d colors, want 16", ErrInvalidTheme, len(entries))
	}
	for i, e := range entries {
		if entries[i], err = NormalizeColor(e); err != nil {
			return Theme{}, fmt.Errorf("palette[%d]: %w", i, err)
		}
	}
	return Theme{FG: fg, BG: bg, Palette: strings.Join(entries, ":")}, nil
}
