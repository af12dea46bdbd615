// Package helpjuice loads help articles from the Helpjuice v3 API.
package helpjuice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/helpdesk"
)

// Defaults for API requests.
const (
	DefaultPageSize = 100
	DefaultTimeout  = 30 * time.Second
	DefaultLocale   = "en_US"

	// maxPages bounds paging in case the API misreports total_pages.
	maxPages = 100
)

var _ helpdesk.Source = (*Source)(nil)

// Source implements helpdesk.Source over the articles of a Helpjuice site.
type Source struct {
	// BaseURL is the site root, such as https://example.helpjuice.com.
	BaseURL string
	// Locale is used to build article URLs when the API omits them.
	Locale string
	APIKey string

	Client    *http.Client
	Cleaner   helpdesk.Cleaner
	Converter helpdesk.Converter
	PageSize  int
	Logger    *slog.Logger
}

// NewSource creates a Source from any URL on a Helpjuice site, such as a
// category page. The first path segment is taken as the locale.
func NewSource(siteURL, apiKey string, cleaner helpdesk.Cleaner, converter helpdesk.Converter) (*Source, error) {
	u, err := url.Parse(siteURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, helpdesk.Errorf(helpdesk.EINVALID, "invalid helpjuice URL %q", siteURL)
	}
	if apiKey == "" {
		return nil, helpdesk.Errorf(helpdesk.EINVALID, "helpjuice API key required")
	}

	locale := DefaultLocale
	if seg, _, _ := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/"); seg != "" {
		locale = seg
	}

	return &Source{
		BaseURL:   u.Scheme + "://" + u.Host,
		Locale:    locale,
		APIKey:    apiKey,
		Client:    &http.Client{Timeout: DefaultTimeout},
		Cleaner:   cleaner,
		Converter: converter,
		PageSize:  DefaultPageSize,
	}, nil
}

type articlesResponse struct {
	Meta struct {
		CurrentPage int `json:"current_page"`
		TotalPages  int `json:"total_pages"`
	} `json:"meta"`
	Articles []article `json:"articles"`
}

type article struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Body      string `json:"body"`
	URL       string `json:"url"`
	Slug      string `json:"slug"`
	Published *bool  `json:"published"`
}

// Load lists every published article and converts its body to text.
// Articles without text are skipped.
func (s *Source) Load(ctx context.Context) ([]*helpdesk.Document, error) {
	var docs []*helpdesk.Document
	for page := 1; page <= maxPages; page++ {
		resp, err := s.fetchPage(ctx, page)
		if err != nil {
			return nil, err
		}

		for _, a := range resp.Articles {
			if a.Published != nil && !*a.Published {
				continue
			}
			doc, err := s.document(a)
			if err != nil {
				return nil, fmt.Errorf("article %d: %w", a.ID, err)
			}
			if doc == nil {
				s.logger().Warn("skipping empty article", "id", a.ID, "name", a.Name)
				continue
			}
			docs = append(docs, doc)
		}

		if page >= resp.Meta.TotalPages || len(resp.Articles) == 0 {
			break
		}
	}
	return docs, nil
}

func (s *Source) fetchPage(ctx context.Context, page int) (*articlesResponse, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(s.pageSize()))
	endpoint := strings.TrimSuffix(s.BaseURL, "/") + "/api/v3/articles?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", s.APIKey)
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, helpdesk.Errorf(helpdesk.EUNAVAILABLE, "helpjuice: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
		return nil, helpdesk.Errorf(helpdesk.EUNAVAILABLE, "helpjuice: HTTP %d listing articles", resp.StatusCode)
	}

	var out articlesResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding helpjuice articles: %w", err)
	}
	return &out, nil
}

func (s *Source) document(a article) (*helpdesk.Document, error) {
	body := a.Body
	if s.Cleaner != nil {
		var err error
		if body, err = s.Cleaner.Clean(body); err != nil {
			return nil, err
		}
	}
	text, err := s.Converter.Convert(body)
	if err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	if a.Name != "" {
		text = "# " + a.Name + "\n\n" + text
	}

	return &helpdesk.Document{
		SourceURL: s.articleURL(a),
		Title:     a.Name,
		Text:      text,
	}, nil
}

func (s *Source) articleURL(a article) string {
	if a.URL != "" {
		return a.URL
	}
	slug := a.Slug
	if slug == "" {
		slug = strconv.FormatInt(a.ID, 10)
	}
	locale := s.Locale
	if locale == "" {
		locale = DefaultLocale
	}
	return strings.TrimSuffix(s.BaseURL, "/") + "/" + locale + "/" + slug
}

func (s *Source) pageSize() int {
	if s.PageSize <= 0 {
		return DefaultPageSize
	}
	return s.PageSize
}

func (s *Source) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}
