package rag

import (
	"context"
	"strings"
	"sync"

	"github.com/fwojciec/helpdesk"
	"golang.org/x/sync/singleflight"
)

// BuildFunc builds the asker backing a Cache.
type BuildFunc func(ctx context.Context) (helpdesk.Asker, error)

var (
	_ helpdesk.Asker          = (*Cache)(nil)
	_ helpdesk.DocumentFinder = (*Cache)(nil)
)

// Cache builds an asker once per process and reuses it for every question.
// Concurrent callers share a single build. A failed build is not cached.
type Cache struct {
	build BuildFunc
	group singleflight.Group

	mu    sync.RWMutex
	asker helpdesk.Asker
}

// NewCache creates a Cache around build.
func NewCache(build BuildFunc) *Cache {
	return &Cache{build: build}
}

// Ready reports whether the asker has been built.
func (c *Cache) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.asker != nil
}

// Warm builds the asker if it is not built yet.
func (c *Cache) Warm(ctx context.Context) error {
	_, err := c.Asker(ctx)
	return err
}

// Asker returns the built asker, building it first if needed. The build keeps
// running if ctx is canceled so that other waiting callers can still use it.
func (c *Cache) Asker(ctx context.Context) (helpdesk.Asker, error) {
	c.mu.RLock()
	asker := c.asker
	c.mu.RUnlock()
	if asker != nil {
		return asker, nil
	}

	ch := c.group.DoChan("index", func() (any, error) {
		c.mu.RLock()
		built := c.asker
		c.mu.RUnlock()
		if built != nil {
			return built, nil
		}

		built, err := c.build(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.asker = built
		c.mu.Unlock()
		return built, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(helpdesk.Asker), nil
	}
}

// Ask answers the question with the cached asker. Blank questions are
// rejected without building.
func (c *Cache) Ask(ctx context.Context, question string) (*helpdesk.Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, helpdesk.Errorf(helpdesk.EINVALID, "question required")
	}
	asker, err := c.Asker(ctx)
	if err != nil {
		return nil, err
	}
	return asker.Ask(ctx, question)
}

// FindDocumentByID returns a document of the built index, building it first
// if needed.
func (c *Cache) FindDocumentByID(ctx context.Context, id string) (*helpdesk.Document, error) {
	finder, err := c.finder(ctx)
	if err != nil {
		return nil, err
	}
	return finder.FindDocumentByID(ctx, id)
}

// FindDocuments lists the documents of the built index, building it first if
// needed.
func (c *Cache) FindDocuments(ctx context.Context, filter helpdesk.DocumentFilter) ([]*helpdesk.Document, error) {
	finder, err := c.finder(ctx)
	if err != nil {
		return nil, err
	}
	return finder.FindDocuments(ctx, filter)
}

func (c *Cache) finder(ctx context.Context) (helpdesk.DocumentFinder, error) {
	asker, err := c.Asker(ctx)
	if err != nil {
		return nil, err
	}
	finder, ok := asker.(helpdesk.DocumentFinder)
	if !ok {
		return nil, helpdesk.Errorf(helpdesk.ENOTFOUND, "index does not list documents")
	}
	return finder, nil
}
