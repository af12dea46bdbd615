package main_test

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/helpdesk"
	main "github.com/fwojciec/helpdesk/cmd/helpdesk"
	"github.com/fwojciec/helpdesk/fs"
	"github.com/fwojciec/helpdesk/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// keywordEmbedder embeds text as counts of a fixed vocabulary.
func keywordEmbedder(vocab ...string) *mock.Embedder {
	embed := func(text string) []float32 {
		text = strings.ToLower(text)
		v := make([]float32, len(vocab))
		for i, w := range vocab {
			v[i] = float32(strings.Count(text, w))
		}
		return v
	}
	return &mock.Embedder{
		EmbedDocumentsFn: func(_ context.Context, texts []string) ([][]float32, error) {
			vecs := make([][]float32, len(texts))
			for i, t := range texts {
				vecs[i] = embed(t)
			}
			return vecs, nil
		},
		EmbedQueryFn: func(_ context.Context, text string) ([]float32, error) {
			return embed(text), nil
		},
	}
}

// newTestMain returns a Main over two fixed sources whose generator echoes
// the best chunk.
func newTestMain() *main.Main {
	m := main.NewMain()
	m.Sources = []helpdesk.Source{
		&mock.Source{LoadFn: func(_ context.Context) ([]*helpdesk.Document, error) {
			return []*helpdesk.Document{{
				SourceURL: "https://hj.example/en_US/faq",
				Title:     "FAQ",
				Text:      "Parking is free at the venue.\n\nCheck-in opens at 9am at the main desk.",
			}}, nil
		}},
		&mock.Source{LoadFn: func(_ context.Context) ([]*helpdesk.Document, error) {
			return []*helpdesk.Document{{
				SourceURL: "https://event.example/",
				Text:      "A shuttle runs from the hotel every hour.\n\nThe welcome dinner starts at 7pm.",
			}}, nil
		}},
	}
	m.Embedder = keywordEmbedder("parking", "check-in", "shuttle", "dinner")
	m.Generator = &mock.Generator{
		GenerateFn: func(_ context.Context, _ string, results []helpdesk.SearchResult) (string, error) {
			return results[0].Chunk.Content, nil
		},
	}
	return m
}

var indexFlags = []string{"--chunk-size=60", "--chunk-overlap=0", "--top-k=1"}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("no arguments prints help and fails", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		err := main.NewMain().Run(context.Background(), nil, stdout, &bytes.Buffer{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
		assert.Contains(t, stdout.String(), "serve")
	})

	t.Run("help succeeds", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		err := main.NewMain().Run(context.Background(), []string{"--help"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "ask")
	})

	t.Run("ask answers from the indexed sources", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		args := append([]string{"ask"}, indexFlags...)
		args = append(args, "Is", "there", "a", "shuttle?")

		err := newTestMain().Run(context.Background(), args, stdout, stderr)

		require.NoError(t, err, stderr.String())
		assert.Equal(t, "A shuttle runs from the hotel every hour.\n\nSources:\n- https://event.example/\n", stdout.String())
		assert.Contains(t, stderr.String(), "index built")
	})

	t.Run("ask rejects a blank question", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		err := newTestMain().Run(context.Background(), []string{"ask", "  "}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Equal(t, helpdesk.EINVALID, helpdesk.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})

	t.Run("ask fails when a source fails", func(t *testing.T) {
		t.Parallel()

		m := newTestMain()
		m.Sources = append(m.Sources, &mock.Source{LoadFn: func(_ context.Context) ([]*helpdesk.Document, error) {
			return nil, helpdesk.Errorf(helpdesk.EUNAVAILABLE, "help center is down")
		}})
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"ask", "parking?"}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "help center is down")
	})

	t.Run("docs lists loaded documents", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		err := newTestMain().Run(context.Background(), []string{"docs"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		out := stdout.String()
		assert.Contains(t, out, "Documents (2 total)")
		assert.Contains(t, out, "1. FAQ")
		assert.Contains(t, out, "2. https://event.example/")
		assert.NotContains(t, out, "Parking is free")
	})

	t.Run("docs --full prints document text", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		err := newTestMain().Run(context.Background(), []string{"docs", "--full"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Parking is free at the venue.")
	})

	t.Run("docs --out exports markdown files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		notes := filepath.Join(dir, "my-notes.txt")
		require.NoError(t, os.WriteFile(notes, []byte("keep me"), 0644))
		stdout := &bytes.Buffer{}

		err := newTestMain().Run(context.Background(), []string{"docs", "--out", dir}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Exported 2 documents")
		content, err := os.ReadFile(filepath.Join(dir, fs.ExportDirName, "hj.example", "en_US", "faq.md"))
		require.NoError(t, err)
		assert.Contains(t, string(content), "source: https://hj.example/en_US/faq")

		kept, err := os.ReadFile(notes)
		require.NoError(t, err)
		assert.Equal(t, "keep me", string(kept))
	})
}

// startServe runs the serve command on a local port until the test ends.
func startServe(t *testing.T, extraArgs ...string) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	base := "http://" + ln.Addr().String()

	m := newTestMain()
	m.Listener = ln

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		args := append([]string{"serve"}, indexFlags...)
		args = append(args, extraArgs...)
		done <- m.Run(ctx, args, io.Discard, io.Discard)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(shutdownWait):
			t.Error("serve did not shut down")
		}
	})

	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)
	return base
}

const shutdownWait = 5 * time.Second

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestMain_RunServe(t *testing.T) {
	t.Parallel()

	t.Run("answers questions and builds once", func(t *testing.T) {
		t.Parallel()

		base := startServe(t)

		status, _ := get(t, base+"/ready")
		assert.Equal(t, http.StatusServiceUnavailable, status)

		status, body := get(t, base+"/?q=Where+is+parking%3F")
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, "Parking is free at the venue.")
		assert.Contains(t, body, "https://hj.example/en_US/faq")
		assert.Contains(t, body, "Built with Go, Gemini and SQLite")

		status, _ = get(t, base+"/ready")
		assert.Equal(t, http.StatusOK, status)
	})

	t.Run("lists indexed documents", func(t *testing.T) {
		t.Parallel()

		base := startServe(t)

		status, body := get(t, base+"/api/docs")
		require.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, `"url":"https://hj.example/en_US/faq"`)
		assert.Contains(t, body, `"url":"https://event.example/"`)

		status, body = get(t, base+"/api/docs?url=https%3A%2F%2Fevent.example%2F")
		require.Equal(t, http.StatusOK, status)
		assert.NotContains(t, body, "hj.example")

		status, _ = get(t, base+"/api/docs/no-such-id")
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("footer names the openai provider", func(t *testing.T) {
		t.Parallel()

		base := startServe(t, "--provider=openai")

		status, body := get(t, base+"/")
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, "Built with Go, OpenAI and SQLite")
	})
}

func TestMain_GeminiRequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	m := main.NewMain()
	m.Sources = newTestMain().Sources
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"ask", "parking?"}, &bytes.Buffer{}, stderr)

	require.Error(t, err)
	assert.Equal(t, helpdesk.EINVALID, helpdesk.ErrorCode(err))
	assert.Contains(t, stderr.String(), "GEMINI_API_KEY")
}
