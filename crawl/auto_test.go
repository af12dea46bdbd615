package crawl_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/helpdesk/crawl"
	"github.com/fwojciec/helpdesk/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticFetcher(html string, err error) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(context.Context, string) (string, error) { return html, err },
		CloseFn: func() error { return nil },
	}
}

func TestAutoFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("uses rendered HTML when JavaScript adds content", func(t *testing.T) {
		t.Parallel()

		f := &crawl.AutoFetcher{
			Static:    staticFetcher("static-html", nil),
			Browser:   staticFetcher("rendered-html", nil),
			Extractor: lengthExtractor("", "event schedule"),
		}

		html, err := f.Fetch(context.Background(), "https://example.com/event")

		require.NoError(t, err)
		assert.Equal(t, "rendered-html", html)
	})

	t.Run("uses static HTML when content is similar", func(t *testing.T) {
		t.Parallel()

		f := &crawl.AutoFetcher{
			Static:    staticFetcher("static-html", nil),
			Browser:   staticFetcher("rendered-html", nil),
			Extractor: lengthExtractor("event schedule", "event schedule!"),
		}

		html, err := f.Fetch(context.Background(), "https://example.com/event")

		require.NoError(t, err)
		assert.Equal(t, "static-html", html)
	})

	t.Run("falls back to browser when static fetch fails", func(t *testing.T) {
		t.Parallel()

		f := &crawl.AutoFetcher{
			Static:  staticFetcher("", errors.New("HTTP 403")),
			Browser: staticFetcher("rendered-html", nil),
		}

		html, err := f.Fetch(context.Background(), "https://example.com/event")

		require.NoError(t, err)
		assert.Equal(t, "rendered-html", html)
	})

	t.Run("falls back to static when browser fails", func(t *testing.T) {
		t.Parallel()

		f := &crawl.AutoFetcher{
			Static:  staticFetcher("static-html", nil),
			Browser: staticFetcher("", errors.New("chrome crashed")),
		}

		html, err := f.Fetch(context.Background(), "https://example.com/event")

		require.NoError(t, err)
		assert.Equal(t, "static-html", html)
	})

	t.Run("returns browser error when both fail", func(t *testing.T) {
		t.Parallel()

		f := &crawl.AutoFetcher{
			Static:  staticFetcher("", errors.New("HTTP 403")),
			Browser: staticFetcher("", errors.New("chrome crashed")),
		}

		_, err := f.Fetch(context.Background(), "https://example.com/event")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "chrome crashed")
	})
}
