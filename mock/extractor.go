package mock

import "github.com/fwojciec/helpdesk"

var _ helpdesk.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of helpdesk.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*helpdesk.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*helpdesk.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ helpdesk.Cleaner = (*Cleaner)(nil)

// Cleaner is a mock implementation of helpdesk.Cleaner.
type Cleaner struct {
	CleanFn func(html string) (string, error)
}

func (c *Cleaner) Clean(html string) (string, error) {
	return c.CleanFn(html)
}

var _ helpdesk.Converter = (*Converter)(nil)

// Converter is a mock implementation of helpdesk.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
