// Package htmltomarkdown converts extracted page content to Markdown text.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/helpdesk"
)

// Ensure Converter implements helpdesk.Converter at compile time.
var _ helpdesk.Converter = (*Converter)(nil)

var (
	imageRe      = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	linkRe       = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	blankLinesRe = regexp.MustCompile(`\n{3,}`)
)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv      *converter.Converter
	linkText  bool
	keepImage bool
}

// Option configures a Converter.
type Option func(*Converter)

// WithLinkText replaces Markdown links with their text so that URLs do not
// dilute embeddings.
func WithLinkText() Option {
	return func(c *Converter) {
		c.linkText = true
	}
}

// WithImages keeps Markdown image references, which are dropped by default.
func WithImages() Option {
	return func(c *Converter) {
		c.keepImage = true
	}
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", helpdesk.Errorf(helpdesk.EINVALID, "empty HTML input")
	}

	md, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	if !c.keepImage {
		md = imageRe.ReplaceAllString(md, "")
	}
	if c.linkText {
		md = linkRe.ReplaceAllString(md, "$1")
	}
	md = blankLinesRe.ReplaceAllString(md, "\n\n")

	return strings.TrimSpace(md), nil
}
