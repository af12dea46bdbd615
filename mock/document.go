package mock

import (
	"context"

	"github.com/fwojciec/helpdesk"
)

var _ helpdesk.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of helpdesk.DocumentService.
type DocumentService struct {
	CreateDocumentFn   func(ctx context.Context, doc *helpdesk.Document) error
	FindDocumentByIDFn func(ctx context.Context, id string) (*helpdesk.Document, error)
	FindDocumentsFn    func(ctx context.Context, filter helpdesk.DocumentFilter) ([]*helpdesk.Document, error)
}

func (s *DocumentService) CreateDocument(ctx context.Context, doc *helpdesk.Document) error {
	return s.CreateDocumentFn(ctx, doc)
}

func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*helpdesk.Document, error) {
	return s.FindDocumentByIDFn(ctx, id)
}

func (s *DocumentService) FindDocuments(ctx context.Context, filter helpdesk.DocumentFilter) ([]*helpdesk.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}

var _ helpdesk.Source = (*Source)(nil)

// Source is a mock implementation of helpdesk.Source.
type Source struct {
	LoadFn func(ctx context.Context) ([]*helpdesk.Document, error)
}

func (s *Source) Load(ctx context.Context) ([]*helpdesk.Document, error) {
	return s.LoadFn(ctx)
}
