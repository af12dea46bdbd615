// Package bloom deduplicates source URLs using a Bloom filter.
package bloom

import (
	"net/url"
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter remembers which URLs have been seen. URLs are normalized first so
// that "https://Example.com/faq/" and "https://example.com/faq#top" match.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected URLs
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Seen reports whether the URL was possibly added before and adds it.
// False positives are possible; false negatives are not.
func (f *Filter) Seen(rawURL string) bool {
	return f.f.TestAndAddString(Normalize(rawURL))
}

// Normalize lowercases the scheme and host, drops the fragment and trims a
// trailing slash from the path. Unparseable input is returned trimmed.
func Normalize(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawPath = ""
	return u.String()
}
