// Package readability extracts the main content of a page using go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/helpdesk"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements helpdesk.Extractor at compile time.
var _ helpdesk.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
// It copes better than trafilatura with single-page event sites built from
// many small sections.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*helpdesk.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, helpdesk.Errorf(helpdesk.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &helpdesk.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		ContentHTML: article.Content,
	}, nil
}
