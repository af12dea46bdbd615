package crawl

import (
	"strings"

	"github.com/fwojciec/helpdesk"
)

var _ helpdesk.Extractor = ChainExtractor(nil)

// ChainExtractor tries each extractor in order and returns the first result
// with non-empty content. The first non-empty title seen is kept even if it
// came from an extractor whose content was empty.
type ChainExtractor []helpdesk.Extractor

// Extract implements helpdesk.Extractor.
func (c ChainExtractor) Extract(html string) (*helpdesk.ExtractResult, error) {
	var title string
	var lastErr error
	for _, ext := range c {
		result, err := ext.Extract(html)
		if err != nil {
			lastErr = err
			continue
		}
		if title == "" {
			title = result.Title
		}
		if strings.TrimSpace(result.ContentHTML) != "" {
			result.Title = title
			return result, nil
		}
	}

	if title == "" && lastErr != nil {
		return nil, lastErr
	}
	return &helpdesk.ExtractResult{Title: title}, nil
}
