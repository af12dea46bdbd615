package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/helpdesk"
	"golang.org/x/net/html"
)

// Ensure TextConverter implements helpdesk.Converter at compile time.
var _ helpdesk.Converter = (*TextConverter)(nil)

// blockSelector matches elements whose text should start on a new line.
const blockSelector = "p, div, section, article, header, footer, li, tr, br, h1, h2, h3, h4, h5, h6, dt, dd, blockquote, pre"

// TextConverter returns all visible text of a page with whitespace collapsed.
// It is the fallback when main-content extraction finds nothing.
type TextConverter struct{}

// NewTextConverter creates a new TextConverter.
func NewTextConverter() *TextConverter {
	return &TextConverter{}
}

// Convert returns the text of the page body, one line per block element.
func (c *TextConverter) Convert(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", helpdesk.Errorf(helpdesk.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", helpdesk.Errorf(helpdesk.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find("script, style, noscript, template").Remove()
	flattenText(doc.Nodes...)
	doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		s.AfterHtml("\n")
	})

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	return collapseWhitespace(root.Text()), nil
}

// Title returns the document title, or an empty string if there is none.
func Title(rawHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// flattenText replaces line breaks inside text nodes with spaces so that only
// block boundaries produce new lines.
func flattenText(nodes ...*html.Node) {
	for _, n := range nodes {
		if n.Type == html.TextNode {
			n.Data = strings.NewReplacer("\r", " ", "\n", " ", "\t", " ").Replace(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			flattenText(child)
		}
	}
}

// collapseWhitespace squeezes runs of spaces within lines and drops blank lines.
func collapseWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
