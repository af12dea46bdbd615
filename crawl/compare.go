package crawl

import "github.com/fwojciec/helpdesk"

// ContentDiffers compares content extracted from statically fetched HTML with
// content extracted from browser-rendered HTML. Returns true if the rendered
// content is significantly longer (>50%), suggesting JavaScript rendering adds
// meaningful content. Extraction errors also return true.
func ContentDiffers(staticHTML, renderedHTML string, extractor helpdesk.Extractor) bool {
	staticResult, err := extractor.Extract(staticHTML)
	if err != nil {
		return true
	}

	renderedResult, err := extractor.Extract(renderedHTML)
	if err != nil {
		return true
	}

	staticLen := len(staticResult.ContentHTML)
	renderedLen := len(renderedResult.ContentHTML)

	if staticLen == 0 && renderedLen > 0 {
		return true
	}

	return float64(renderedLen) > float64(staticLen)*1.5
}
