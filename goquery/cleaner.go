// Package goquery provides HTML cleanup and plain-text conversion using goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/helpdesk"
	"golang.org/x/net/html"
)

// Ensure Cleaner implements helpdesk.Cleaner at compile time.
var _ helpdesk.Cleaner = (*Cleaner)(nil)

// DefaultNoiseSelector matches elements that never carry readable page text.
const DefaultNoiseSelector = "script, style, noscript, template, svg, iframe, form, link, meta[http-equiv]"

// Cleaner removes non-content elements and comments from HTML.
type Cleaner struct {
	selector string
}

// NewCleaner creates a Cleaner. Extra selectors are removed in addition to
// DefaultNoiseSelector, e.g. a site-specific cookie banner.
func NewCleaner(extra ...string) *Cleaner {
	sel := DefaultNoiseSelector
	if len(extra) > 0 {
		sel += ", " + strings.Join(extra, ", ")
	}
	return &Cleaner{selector: sel}
}

// Clean returns the HTML with noise elements and comments removed.
func (c *Cleaner) Clean(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", helpdesk.Errorf(helpdesk.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", helpdesk.Errorf(helpdesk.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find(c.selector).Remove()
	removeComments(doc.Nodes...)

	return doc.Html()
}

// removeComments deletes every comment node below the given nodes.
func removeComments(nodes ...*html.Node) {
	for _, n := range nodes {
		for child := n.FirstChild; child != nil; {
			next := child.NextSibling
			if child.Type == html.CommentNode {
				n.RemoveChild(child)
			} else {
				removeComments(child)
			}
			child = next
		}
	}
}
