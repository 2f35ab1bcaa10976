// Package markdown extracts fenced code blocks from a markdown document and
// rebuilds the document with each block replaced by a reference to its
// rendered recording.
package markdown

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/choonkeat/mdcast/internal/cast"
)

// Placeholder is the image source written in place of block index in the
// intermediate HTML. Hydrate rewrites it to the final image path.
func Placeholder(index int) string {
	return fmt.Sprintf("asccinema-block-%d", index)
}

// fenceCollector renders fenced code blocks as image placeholders and
// records their content.
type fenceCollector struct {
	blocks []cast.Block
	cursor int // search position for the next opening fence
}

func (c *fenceCollector) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, c.renderFencedCodeBlock)
}

func (c *fenceCollector) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)

	var content bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		content.Write(seg.Value(source))
	}

	startAt := c.openingFence(source, n)
	from := lineEnd(source, startAt)
	if lines.Len() > 0 {
		from = lines.At(lines.Len() - 1).Stop
	}
	endsAt := nextFence(source, from)
	if endsAt < 0 {
		endsAt = len(source)
		c.cursor = len(source)
	} else {
		c.cursor = endsAt + 3
	}

	b := cast.Block{
		Index:   len(c.blocks),
		StartAt: startAt,
		EndsAt:  endsAt,
		Size:    endsAt - startAt,
		Content: content.String(),
		Lang:    string(n.Language(source)),
	}
	b.Parsed = fmt.Sprintf(`<img alt="code block" src="%s" />`, html.EscapeString(Placeholder(b.Index)))
	c.blocks = append(c.blocks, b)

	if _, err := fmt.Fprintf(w, "<p>%s</p>\n", b.Parsed); err != nil {
		return ast.WalkStop, err
	}
	return ast.WalkSkipChildren, nil
}

// openingFence locates the opening fence of n. The search starts at the
// line holding the info string, or the line before the first content line,
// so code spans earlier in the document are not mistaken for it.
func (c *fenceCollector) openingFence(source []byte, n *ast.FencedCodeBlock) int {
	from := -1
	switch {
	case n.Info != nil:
		from = lineStart(source, n.Info.Segment.Start)
	case n.Lines().Len() > 0:
		if first := lineStart(source, n.Lines().At(0).Start); first > 0 {
			from = lineStart(source, first-1)
		}
	}
	if from >= 0 {
		if i := nextFence(source, from); i >= 0 {
			return i
		}
	}
	// An empty fence without an info string has no segment to anchor on.
	if i := nextFence(source, c.cursor); i >= 0 {
		return i
	}
	return c.cursor
}

// nextFence returns the offset of the first ``` or ~~~ at or after from,
// or -1.
func nextFence(source []byte, from int) int {
	if from >= len(source) {
		return -1
	}
	best := -1
	for _, marker := range [][]byte{[]byte("```"), []byte("~~~")} {
		if i := bytes.Index(source[from:], marker); i >= 0 && (best < 0 || from+i < best) {
			best = from + i
		}
	}
	return best
}

func lineStart(source []byte, pos int) int {
	return bytes.LastIndexByte(source[:pos], '\n') + 1
}

func lineEnd(source []byte, from int) int {
	if i := bytes.IndexByte(source[from:], '\n'); i >= 0 {
		return from + i + 1
	}
	return len(source)
}

// Extract renders source to HTML and returns its fenced code blocks in
// document order. Each block is replaced in the HTML by an image
// placeholder. A document without fences yields no blocks.
func Extract(source []byte) ([]cast.Block, []byte, error) {
	collector := &fenceCollector{}
	md := goldmark.New(
		goldmark.WithExtensions(extension.Table, extension.Strikethrough),
		goldmark.WithRendererOptions(
			renderer.WithNodeRenderers(util.Prioritized(collector, 100)),
		),
	)

	var buf bytes.Buffer
	if err := md.Convert(source, &buf); err != nil {
		return nil, nil, fmt.Errorf("render markdown: %w", err)
	}
	return collector.blocks, buf.Bytes(), nil
}
