package helpdesk

import (
	"context"
	"time"
)

// Document is the normalized text of one fetched page or help article.
type Document struct {
	ID          string    `json:"id"`
	SourceURL   string    `json:"sourceUrl"`
	Title       string    `json:"title"`
	Text        string    `json:"text"`
	ContentHash string    `json:"contentHash"`
	Position    int       `json:"position"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.SourceURL == "" {
		return Errorf(EINVALID, "document source URL required")
	}
	if d.Text == "" {
		return Errorf(EINVALID, "document text required")
	}
	return nil
}

// DocumentService represents a service for managing indexed documents.
type DocumentService interface {
	// CreateDocument creates a new document.
	CreateDocument(ctx context.Context, doc *Document) error

	DocumentFinder
}

// DocumentFinder looks up indexed documents.
type DocumentFinder interface {
	// FindDocumentByID retrieves a document by ID.
	// Returns ENOTFOUND if document does not exist.
	FindDocumentByID(ctx context.Context, id string) (*Document, error)

	// FindDocuments retrieves documents matching the filter, ordered by position.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)
}

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	ID        *string `json:"id"`
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// Source produces the documents of one configured origin, such as a fixed
// list of web pages or a help-article API.
type Source interface {
	// Load fetches and normalizes every document of the source.
	Load(ctx context.Context) ([]*Document, error)
}
