package crawl

import (
	"context"
	"log/slog"

	"github.com/fwojciec/helpdesk"
)

var _ helpdesk.Fetcher = (*AutoFetcher)(nil)

// AutoFetcher decides per URL whether a page needs a browser.
//
// Decision flow:
//   - static fetch fails → use the browser
//   - browser fetch fails → use the static HTML
//   - rendered content is much longer (ContentDiffers) → use the browser HTML
//   - otherwise → use the static HTML
type AutoFetcher struct {
	Static    helpdesk.Fetcher
	Browser   helpdesk.Fetcher
	Extractor helpdesk.Extractor
	Logger    *slog.Logger
}

// Fetch returns the HTML of whichever fetcher sees the page's real content.
func (f *AutoFetcher) Fetch(ctx context.Context, url string) (string, error) {
	logger := f.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	staticHTML, staticErr := f.Static.Fetch(ctx, url)
	if staticErr != nil {
		logger.Debug("auto: static fetch failed, using browser", "url", url, "err", staticErr)
		return f.Browser.Fetch(ctx, url)
	}

	renderedHTML, err := f.Browser.Fetch(ctx, url)
	if err != nil {
		logger.Debug("auto: browser fetch failed, using static", "url", url, "err", err)
		return staticHTML, nil
	}

	if ContentDiffers(staticHTML, renderedHTML, f.Extractor) {
		logger.Debug("auto: page requires JavaScript", "url", url)
		return renderedHTML, nil
	}
	return staticHTML, nil
}

// Close closes both fetchers.
func (f *AutoFetcher) Close() error {
	staticErr := f.Static.Close()
	if err := f.Browser.Close(); err != nil {
		return err
	}
	return staticErr
}
