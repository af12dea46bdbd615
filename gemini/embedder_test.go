package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/fwojciec/helpdesk"
	"github.com/fwojciec/helpdesk/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// newTestClient returns a Gemini client whose requests go to handler.
func newTestClient(t *testing.T, handler http.HandlerFunc) *genai.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: srv.URL},
	})
	require.NoError(t, err)
	return client
}

type batchEmbedRequest struct {
	Requests []struct {
		Model    string `json:"model"`
		TaskType string `json:"taskType"`
		Content  struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"requests"`
}

type embedding struct {
	Values []float32 `json:"values"`
}

// embedServer records each batch and embeds "tN" as [N, 1]. drop removes
// that many embeddings from every response.
type embedServer struct {
	mu        sync.Mutex
	paths     []string
	sizes     []int
	taskTypes []string
	drop      int
}

func (s *embedServer) handle(w http.ResponseWriter, r *http.Request) {
	var req batchEmbedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.paths = append(s.paths, r.URL.Path)
	s.sizes = append(s.sizes, len(req.Requests))
	for _, rr := range req.Requests {
		s.taskTypes = append(s.taskTypes, rr.TaskType)
	}
	drop := s.drop
	s.mu.Unlock()

	embeddings := make([]embedding, 0, len(req.Requests))
	for _, rr := range req.Requests {
		n, _ := strconv.Atoi(strings.TrimPrefix(rr.Content.Parts[0].Text, "t"))
		embeddings = append(embeddings, embedding{Values: []float32{float32(n), 1}})
	}
	embeddings = embeddings[:len(embeddings)-min(drop, len(embeddings))]

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"embeddings": embeddings})
}

func texts(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "t" + strconv.Itoa(i)
	}
	return out
}

func TestEmbedder_EmbedDocuments(t *testing.T) {
	t.Parallel()

	t.Run("batches requests and keeps order", func(t *testing.T) {
		t.Parallel()

		srv := &embedServer{}
		emb := gemini.NewEmbedder(newTestClient(t, srv.handle), "")

		vecs, err := emb.EmbedDocuments(context.Background(), texts(250))

		require.NoError(t, err)
		require.Len(t, vecs, 250)
		for i, v := range vecs {
			assert.Equal(t, []float32{float32(i), 1}, v)
		}
		assert.Equal(t, []int{gemini.MaxBatchSize, gemini.MaxBatchSize, 50}, srv.sizes)
		for _, p := range srv.paths {
			assert.True(t, strings.HasSuffix(p, "models/"+gemini.DefaultEmbeddingModel+":batchEmbedContents"), p)
		}
	})

	t.Run("uses the document task type", func(t *testing.T) {
		t.Parallel()

		srv := &embedServer{}
		emb := gemini.NewEmbedder(newTestClient(t, srv.handle), "")

		_, err := emb.EmbedDocuments(context.Background(), texts(3))

		require.NoError(t, err)
		assert.Equal(t, []string{"RETRIEVAL_DOCUMENT", "RETRIEVAL_DOCUMENT", "RETRIEVAL_DOCUMENT"}, srv.taskTypes)
	})

	t.Run("count mismatch is an internal error", func(t *testing.T) {
		t.Parallel()

		srv := &embedServer{drop: 1}
		emb := gemini.NewEmbedder(newTestClient(t, srv.handle), "")

		_, err := emb.EmbedDocuments(context.Background(), texts(5))

		require.Error(t, err)
		assert.Equal(t, helpdesk.EINTERNAL, helpdesk.ErrorCode(err))
	})

	t.Run("api error is returned", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":{"code":400,"message":"boom","status":"INVALID_ARGUMENT"}}`, http.StatusBadRequest)
		})
		emb := gemini.NewEmbedder(client, "")

		_, err := emb.EmbedDocuments(context.Background(), texts(2))

		require.Error(t, err)
	})
}

func TestEmbedder_EmbedQuery(t *testing.T) {
	t.Parallel()

	srv := &embedServer{}
	emb := gemini.NewEmbedder(newTestClient(t, srv.handle), "custom-embedding")

	vec, err := emb.EmbedQuery(context.Background(), "t7")

	require.NoError(t, err)
	assert.Equal(t, []float32{7, 1}, vec)
	assert.Equal(t, []string{"RETRIEVAL_QUERY"}, srv.taskTypes)
	require.Len(t, srv.paths, 1)
	assert.True(t, strings.HasSuffix(srv.paths[0], "models/custom-embedding:batchEmbedContents"), srv.paths[0])
}
