package rag_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/helpdesk"
	"github.com/fwojciec/helpdesk/mock"
	"github.com/fwojciec/helpdesk/rag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticSource(docs ...*helpdesk.Document) *mock.Source {
	return &mock.Source{
		LoadFn: func(context.Context) ([]*helpdesk.Document, error) {
			return docs, nil
		},
	}
}

func TestLoadDocuments(t *testing.T) {
	t.Parallel()

	t.Run("concatenates sources in order and assigns positions", func(t *testing.T) {
		t.Parallel()

		sources := []helpdesk.Source{
			staticSource(
				&helpdesk.Document{SourceURL: "https://hj.example/parking", Text: "Parking is free."},
				&helpdesk.Document{SourceURL: "https://hj.example/check-in", Text: "Check-in opens at 9am."},
			),
			staticSource(
				&helpdesk.Document{SourceURL: "https://event.example/", Text: "Welcome to the event."},
			),
		}

		docs, err := rag.LoadDocuments(context.Background(), sources, nil)

		require.NoError(t, err)
		require.Len(t, docs, 3)
		assert.Equal(t, "https://hj.example/parking", docs[0].SourceURL)
		assert.Equal(t, "https://hj.example/check-in", docs[1].SourceURL)
		assert.Equal(t, "https://event.example/", docs[2].SourceURL)
		for i, doc := range docs {
			assert.Equal(t, i, doc.Position)
		}
	})

	t.Run("drops repeated source URLs", func(t *testing.T) {
		t.Parallel()

		sources := []helpdesk.Source{
			staticSource(&helpdesk.Document{SourceURL: "https://event.example/faq", Text: "first"}),
			staticSource(&helpdesk.Document{SourceURL: "https://event.example/faq/", Text: "second"}),
		}

		docs, err := rag.LoadDocuments(context.Background(), sources, nil)

		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "first", docs[0].Text)
	})

	t.Run("drops identical text under another URL", func(t *testing.T) {
		t.Parallel()

		sources := []helpdesk.Source{
			staticSource(
				&helpdesk.Document{SourceURL: "https://event.example/a", Text: "same"},
				&helpdesk.Document{SourceURL: "https://event.example/b", Text: "same"},
				nil,
			),
		}

		docs, err := rag.LoadDocuments(context.Background(), sources, nil)

		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "https://event.example/a", docs[0].SourceURL)
	})

	t.Run("fails when any source fails", func(t *testing.T) {
		t.Parallel()

		sources := []helpdesk.Source{
			staticSource(&helpdesk.Document{SourceURL: "https://event.example/a", Text: "a"}),
			&mock.Source{
				LoadFn: func(context.Context) ([]*helpdesk.Document, error) {
					return nil, errors.New("api down")
				},
			},
		}

		_, err := rag.LoadDocuments(context.Background(), sources, nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "api down")
	})

	t.Run("no sources yields no documents", func(t *testing.T) {
		t.Parallel()

		docs, err := rag.LoadDocuments(context.Background(), nil, nil)

		require.NoError(t, err)
		assert.Empty(t, docs)
	})
}
