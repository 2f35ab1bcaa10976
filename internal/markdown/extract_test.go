package markdown

import (
	"strings"
	"testing"
)

const sample = "# Install\n\nRun this:\n\n```sh\necho hi\n```\n\nThen:\n\n~~~\n# list files\nls\n~~~\n"

func TestExtractBlocks(t *testing.T) {
	blocks, html, err := Extract([]byte(sample))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}

	tests := []struct {
		content string
		lang    string
		fence   string
	}{
		{"echo hi\n", "sh", "```"},
		{"# list files\nls\n", "", "~~~"},
	}
	for i, tt := range tests {
		b := blocks[i]
		if b.Index != i {
			t.Errorf("block %d index = %d", i, b.Index)
		}
		if b.Content != tt.content {
			t.Errorf("block %d content = %q, want %q", i, b.Content, tt.content)
		}
		if b.Lang != tt.lang {
			t.Errorf("block %d lang = %q, want %q", i, b.Lang, tt.lang)
		}
		if got := sample[b.StartAt : b.StartAt+3]; got != tt.fence {
			t.Errorf("block %d starts at %q, want opening fence", i, got)
		}
		if got := sample[b.EndsAt : b.EndsAt+3]; got != tt.fence {
			t.Errorf("block %d ends at %q, want closing fence", i, got)
		}
		if b.Size != b.EndsAt-b.StartAt || b.Size <= 0 {
			t.Errorf("block %d size = %d, start %d, end %d", i, b.Size, b.StartAt, b.EndsAt)
		}
		if !strings.Contains(b.Parsed, Placeholder(i)) {
			t.Errorf("block %d parsed = %q", i, b.Parsed)
		}
	}

	out := string(html)
	if strings.Contains(out, "echo hi") || strings.Contains(out, "<pre>") {
		t.Errorf("code blocks left in html:\n%s", out)
	}
	if !strings.Contains(out, `src="asccinema-block-0"`) || !strings.Contains(out, `src="asccinema-block-1"`) {
		t.Errorf("placeholders missing from html:\n%s", out)
	}
}

func TestExtractNoFences(t *testing.T) {
	blocks, html, err := Extract([]byte("just *text*\n\n    indented code\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 0 {
		t.Errorf("got %d blocks, want 0", len(blocks))
	}
	if !strings.Contains(string(html), "indented code") {
		t.Errorf("indented code block should be rendered untouched:\n%s", html)
	}
}

func TestExtractEmptyAndUnterminated(t *testing.T) {
	src := "```\n```\n\n```\nopen"
	blocks, _, err := Extract([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if blocks[0].Content != "" {
		t.Errorf("empty block content = %q", blocks[0].Content)
	}
	if blocks[1].Content != "open" {
		t.Errorf("unterminated block content = %q", blocks[1].Content)
	}
	if blocks[1].EndsAt != len(src) {
		t.Errorf("unterminated block ends at %d, want %d", blocks[1].EndsAt, len(src))
	}
}

func TestParseTemplate(t *testing.T) {
	doc, err := NewConverter().Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Blocks) != 2 {
		t.Fatalf("got %d blocks", len(doc.Blocks))
	}
	if !strings.Contains(doc.Template, "# Install") {
		t.Errorf("heading lost:\n%s", doc.Template)
	}
	for i := range doc.Blocks {
		if !strings.Contains(doc.Template, Placeholder(i)) {
			t.Errorf("placeholder %d missing from template:\n%s", i, doc.Template)
		}
	}
	if strings.Contains(doc.Template, "echo hi") {
		t.Errorf("code block left in template:\n%s", doc.Template)
	}
}

func TestHydrate(t *testing.T) {
	tmpl := "![code block](asccinema-block-0)\n\ntext\n\n![code block](asccinema-block-12)\n"
	got := Hydrate(tmpl, ".asciicast", "block-")
	want := "![code block](.asciicast/block-0.gif)\n\ntext\n\n![code block](.asciicast/block-12.gif)\n"
	if got != want {
		t.Errorf("Hydrate() =\n%s\nwant\n%s", got, want)
	}
}

func TestImagePath(t *testing.T) {
	tests := []struct {
		dir, prefix string
		index       int
		want        string
	}{
		{".asciicast", "block-", 0, ".asciicast/block-0.gif"},
		{"", "demo-", 3, "demo-3.gif"},
		{"docs/img/", "b", 1, "docs/img/b1.gif"},
	}

	for _, tt := range tests {
		if got := ImagePath(tt.dir, tt.prefix, tt.index); got != tt.want {
			t.Errorf("ImagePath(%q, %q, %d) = %q, want %q", tt.dir, tt.prefix, tt.index, got, tt.want)
		}
	}
}

func TestExtractIgnoresCodeSpansBeforeFence(t *testing.T) {
	src := "Use ```inline``` code.\n\n```sh\nls\n```\n\nand ``more``\n\n```\npwd\n```\n"
	blocks, _, err := Extract([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if blocks[0].StartAt != 24 || src[blocks[0].StartAt:blocks[0].StartAt+5] != "```sh" {
		t.Errorf("first block starts at %d, want 24", blocks[0].StartAt)
	}
	if got := src[blocks[1].StartAt:]; !strings.HasPrefix(got, "```\npwd") {
		t.Errorf("second block starts at %q", got)
	}
	for i, b := range blocks {
		if src[b.EndsAt:b.EndsAt+4] != "```\n" {
			t.Errorf("block %d ends at %q", i, src[b.EndsAt:])
		}
	}
}
