package cast

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestDefaultHeaderLine(t *testing.T) {
	line, err := DefaultHeader().Line()
	if err != nil {
		t.Fatalf("Line() error: %v", err)
	}
	want := `{"version":2,"width":80,"height":24,"theme":{"fg":"#d0d0d0","bg":"#212121","palette":"` +
		DefaultPalette + `"},"title":"demo","env":{"SHELL":"/bin/zsh","TERM":"xterm-256color"}}`
	if line != want {
		t.Errorf("Line() =\n%s\nwant\n%s", line, want)
	}
	if strings.Contains(line, "\n") {
		t.Error("header line contains a newline")
	}
}

func TestHeaderMerge(t *testing.T) {
	base := DefaultHeader()
	got := base.Merge(Header{Width: 120, Title: "install", Env: map[string]string{"SHELL": "/bin/bash"}})

	if got.Width != 120 || got.Height != 24 || got.Title != "install" || got.Version != 2 {
		t.Errorf("Merge() = %+v", got)
	}
	if got.Env["SHELL"] != "/bin/bash" {
		t.Errorf("Env = %v, want override", got.Env)
	}
	if _, ok := got.Env["TERM"]; ok {
		t.Errorf("Env was merged key by key: %v", got.Env)
	}
	if got.Theme == nil || got.Theme.FG != "#d0d0d0" {
		t.Errorf("Theme = %+v, want default", got.Theme)
	}

	got.Theme.FG = "#000000"
	got.Env["X"] = "y"
	if base.Theme.FG != "#d0d0d0" || len(base.Env) != 2 {
		t.Error("Merge() result shares state with the base header")
	}
	if DefaultHeader().Title != "demo" {
		t.Error("DefaultHeader() was mutated")
	}
}

func TestParseCSSColor(t *testing.T) {
	tests := []struct {
		name   string
		color  string
		wantR  uint8
		wantG  uint8
		wantB  uint8
		wantOK bool
	}{
		{"hex 6 digit", "#d0d0d0", 208, 208, 208, true},
		{"hex 3 digit", "#abc", 170, 187, 204, true},
		{"uppercase", "#FFFFFF", 255, 255, 255, true},
		{"named", "navy", 0, 0, 128, true},
		{"named mixed case", "DarkGreen", 0, 100, 0, true},
		{"whitespace", "  red  ", 255, 0, 0, true},
		{"empty", "", 0, 0, 0, false},
		{"no hash", "ff0000", 0, 0, 0, false},
		{"bad hex", "#gggggg", 0, 0, 0, false},
		{"too long", "#fffffff", 0, 0, 0, false},
		{"unknown name", "not-a-color", 0, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, ok := ParseCSSColor(tt.color)
			if ok != tt.wantOK {
				t.Fatalf("ParseCSSColor(%q) ok = %v, want %v", tt.color, ok, tt.wantOK)
			}
			if r != tt.wantR || g != tt.wantG || b != tt.wantB {
				t.Errorf("ParseCSSColor(%q) = (%d, %d, %d), want (%d, %d, %d)",
					tt.color, r, g, b, tt.wantR, tt.wantG, tt.wantB)
			}
		})
	}
}

func TestThemeNormalize(t *testing.T) {
	palette := strings.Repeat("black:", 15) + "#FFF"
	got, err := Theme{FG: "white", BG: "#222", Palette: palette}.Normalize()
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if got.FG != "#ffffff" || got.BG != "#222222" {
		t.Errorf("Normalize() = %+v", got)
	}
	if !strings.HasSuffix(got.Palette, ":#ffffff") || strings.Count(got.Palette, "#000000") != 15 {
		t.Errorf("Palette = %q", got.Palette)
	}

	if _, err := (Theme{FG: "white", BG: "black", Palette: "#000:#fff"}).Normalize(); !errors.Is(err, ErrInvalidTheme) {
		t.Errorf("short palette error = %v, want ErrInvalidTheme", err)
	}
	if _, err := (Theme{FG: "nope", BG: "black", Palette: DefaultPalette}).Normalize(); !errors.Is(err, ErrInvalidTheme) {
		t.Errorf("bad fg error = %v, want ErrInvalidTheme", err)
	}
}

func TestHeaderJSONOmitsOptionalFields(t *testing.T) {
	h := Header{Version: 2, Width: 10, Height: 5, Title: "t"}
	data, err := json.Marshal(h)
	if err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{"timestamp", "duration", "command", "theme"} {
		if strings.Contains(string(data), field) {
			t.Errorf("%s should be omitted: %s", field, data)
		}
	}
}
