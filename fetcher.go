package helpdesk

import "context"

// Fetcher retrieves HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered content.
type Fetcher interface {
	// Fetch retrieves the URL and returns its HTML.
	// Browser-backed implementations wait for JavaScript to render first.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any held resources, such as a browser process.
	Close() error
}

// FetchMode selects how pages are fetched.
type FetchMode string

// FetchMode constants.
const (
	// FetchAuto checks each page and uses the browser only when
	// JavaScript rendering adds meaningful content.
	FetchAuto    FetchMode = "auto"
	FetchStatic  FetchMode = "static"
	FetchBrowser FetchMode = "browser"
)

// Validate returns an error if the mode is unknown.
func (m FetchMode) Validate() error {
	switch m {
	case FetchAuto, FetchStatic, FetchBrowser:
		return nil
	}
	return Errorf(EINVALID, "unknown fetch mode %q", string(m))
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
