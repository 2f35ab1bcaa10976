package cast

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantKind  LineKind
		wantText  string
		wantColor int
	}{
		{"code", "npm install", LineCode, "npm install", ColorCode},
		{"whitespace", "  ", LineCode, "  ", ColorCode},
		{"empty", "", LineCode, "", ColorCode},
		{"comment", "# install deps", LineComment, " install deps", ColorComment},
		{"comment no space", "#x", LineComment, "x", ColorComment},
		{"double hash", "## title", LineComment, "# title", ColorComment},
		{"bare hash", "#", LineComment, "", ColorComment},
		{"pre-escaped", "# \x1b[32mok", LinePreEscaped, " \x1b[32mok", ColorComment},
		{"pre-escaped literal", `# \u001b[32mok`, LinePreEscaped, " \x1b[32mok", ColorComment},
		{"escape without space", "#\x1b[32mok", LineComment, "\x1b[32mok", ColorComment},
		{"hash later in line", "echo # not a comment", LineCode, "echo # not a comment", ColorCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.line)
			if got.Kind != tt.wantKind {
				t.Errorf("Classify(%q).Kind = %v, want %v", tt.line, got.Kind, tt.wantKind)
			}
			if got.Text != tt.wantText {
				t.Errorf("Classify(%q).Text = %q, want %q", tt.line, got.Text, tt.wantText)
			}
			if got.Color != tt.wantColor {
				t.Errorf("Classify(%q).Color = %d, want %d", tt.line, got.Color, tt.wantColor)
			}
			if again := Classify(tt.line); again != got {
				t.Errorf("Classify(%q) not stable: %+v then %+v", tt.line, got, again)
			}
		})
	}
}

func TestLinePrompted(t *testing.T) {
	if !Classify("ls").Prompted() {
		t.Error("code line should be prompted")
	}
	if Classify("# note").Prompted() {
		t.Error("comment line should not be prompted")
	}
	if Classify("# \x1b[0m").Prompted() {
		t.Error("pre-escaped line should not be prompted")
	}
}

func TestColorize(t *testing.T) {
	tests := []struct {
		color int
		in    string
		want  string
	}{
		{ColorCode, "a", "\x1b[96ma\x1b[0m"},
		{ColorComment, "#", "\x1b[37m#\x1b[0m"},
		{ColorCode, "", ""},
	}

	for _, tt := range tests {
		if got := Colorize(tt.color, tt.in); got != tt.want {
			t.Errorf("Colorize(%d, %q) = %q, want %q", tt.color, tt.in, got, tt.want)
		}
	}
}
