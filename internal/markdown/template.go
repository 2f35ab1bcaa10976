package markdown

import (
	"fmt"
	"path"
	"regexp"
	"strconv"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"

	"github.com/choonkeat/mdcast/internal/cast"
)

var placeholderRe = regexp.MustCompile(`asccinema-block-(\d+)`)

// Document is a parsed source document.
type Document struct {
	Blocks   []cast.Block
	HTML     string
	Template string // markdown with placeholders in place of code blocks
}

// Converter turns markdown documents into templates.
type Converter struct {
	md *converter.Converter
}

// NewConverter returns a Converter using the commonmark, table and
// strikethrough rules for the HTML to markdown pass.
func NewConverter() *Converter {
	return &Converter{
		md: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
				strikethrough.NewStrikethroughPlugin(),
			),
		),
	}
}

// Parse extracts the code blocks of source and converts the rest of the
// document back to markdown.
func (c *Converter) Parse(source []byte) (*Document, error) {
	blocks, html, err := Extract(source)
	if err != nil {
		return nil, err
	}
	tmpl, err := c.md.ConvertString(string(html))
	if err != nil {
		return nil, fmt.Errorf("convert html to markdown: %w", err)
	}
	return &Document{Blocks: blocks, HTML: string(html), Template: tmpl}, nil
}

// ImagePath is where the rendered image of block index is expected.
func ImagePath(imageDir, prefix string, index int) string {
	return path.Join(imageDir, prefix+strconv.Itoa(index)+".gif")
}

// Hydrate rewrites every block placeholder in tmpl to its image path.
func Hydrate(tmpl, imageDir, prefix string) string {
	return placeholderRe.ReplaceAllStringFunc(tmpl, func(m string) string {
		n, err := strconv.Atoi(placeholderRe.FindStringSubmatch(m)[1])
		if err != nil {
			return m
		}
		return ImagePath(imageDir, prefix, n)
	})
}
