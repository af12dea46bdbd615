package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/fwojciec/helpdesk"
	"github.com/fwojciec/helpdesk/crawl"
	"github.com/fwojciec/helpdesk/goquery"
	"github.com/fwojciec/helpdesk/helpjuice"
	"github.com/fwojciec/helpdesk/htmltomarkdown"
	helpdeskhttp "github.com/fwojciec/helpdesk/http"
	"github.com/fwojciec/helpdesk/readability"
	"github.com/fwojciec/helpdesk/rod"
	helpdeskslog "github.com/fwojciec/helpdesk/slog"
	"github.com/fwojciec/helpdesk/trafilatura"
)

// buildSources wires the help center and event page sources from flags.
func (m *Main) buildSources(g *Globals, stderr io.Writer, logger *slog.Logger) ([]helpdesk.Source, error) {
	fetcher, err := m.buildFetcher(helpdesk.FetchMode(g.FetchMode), g, stderr, logger)
	if err != nil {
		return nil, err
	}

	cleaner := goquery.NewCleaner()
	converter := htmltomarkdown.NewConverter(htmltomarkdown.WithLinkText())
	limiter := crawl.NewDomainLimiter(g.RateLimit)
	pages := func(urls []string) *crawl.PageSource {
		return &crawl.PageSource{
			URLs:         urls,
			Fetcher:      fetcher,
			Cleaner:      cleaner,
			Extractor:    crawl.ChainExtractor{trafilatura.NewExtractor(), readability.NewExtractor()},
			Converter:    converter,
			Fallback:     goquery.NewTextConverter(),
			Title:        goquery.Title,
			RateLimiter:  limiter,
			SkipFailures: g.SkipFailures,
			Logger:       logger,
		}
	}

	var sources []helpdesk.Source
	if g.HelpjuiceURL != "" {
		if g.HelpjuiceAPIKey != "" {
			hj, err := helpjuice.NewSource(g.HelpjuiceURL, g.HelpjuiceAPIKey, cleaner, converter)
			if err != nil {
				return nil, err
			}
			hj.Logger = logger
			sources = append(sources, helpdeskslog.NewLoggingSource(hj, "helpjuice", logger))
		} else {
			logger.Debug("no helpjuice api key, fetching help center as a page", "url", g.HelpjuiceURL)
			sources = append(sources, helpdeskslog.NewLoggingSource(pages([]string{g.HelpjuiceURL}), "helpjuice", logger))
		}
	}
	if len(g.Pages) > 0 {
		sources = append(sources, helpdeskslog.NewLoggingSource(pages(g.Pages), "pages", logger))
	}
	if len(sources) == 0 {
		return nil, helpdesk.Errorf(helpdesk.EINVALID, "no sources configured: set --helpjuice-url or --page")
	}
	return sources, nil
}

// buildFetcher returns the page fetcher for mode, wrapped with retries and
// logging. In auto mode a missing browser degrades to static fetching.
func (m *Main) buildFetcher(mode helpdesk.FetchMode, g *Globals, stderr io.Writer, logger *slog.Logger) (helpdesk.Fetcher, error) {
	if err := mode.Validate(); err != nil {
		return nil, err
	}

	static := helpdeskhttp.NewFetcher()
	var fetcher helpdesk.Fetcher = static

	switch mode {
	case helpdesk.FetchBrowser:
		browser, err := rod.NewFetcher(rod.WithRenderDelay(g.RenderDelay))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or use --fetch-mode=static")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = browser
	case helpdesk.FetchAuto:
		browser, err := rod.NewFetcher(rod.WithRenderDelay(g.RenderDelay))
		if err != nil {
			logger.Warn("browser unavailable, fetching pages statically", "err", err)
			break
		}
		fetcher = &crawl.AutoFetcher{
			Static:    static,
			Browser:   browser,
			Extractor: trafilatura.NewExtractor(),
			Logger:    logger,
		}
	}

	m.mu.Lock()
	m.closers = append(m.closers, fetcher.Close)
	m.mu.Unlock()

	retrying := crawl.NewRetryFetcher(fetcher, crawl.DefaultRetryDelays(), logger)
	return helpdeskslog.NewLoggingFetcher(retrying, logger), nil
}
