// Package mux serves the help desk question form and JSON API using
// gorilla/mux.
package mux

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/helpdesk"
	"github.com/gorilla/mux"
)

// Defaults for Server.
const (
	DefaultAskTimeout = 60 * time.Second
	DefaultTitle      = "HelpDesk AI Assistant"
	DefaultFooter     = "Built with Go and SQLite"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"isURL": func(s string) bool {
		return strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "http://")
	},
}).ParseFS(templateFS, "templates/*.html"))

// Readiness reports whether the index is built.
type Readiness interface {
	Ready() bool
}

// Server handles HTTP requests for the help desk.
type Server struct {
	Asker helpdesk.Asker
	// Readiness is optional; without it the server is always ready.
	Readiness Readiness
	// Documents serves /api/docs. Without it those routes return 404.
	Documents helpdesk.DocumentFinder

	AskTimeout time.Duration
	Title      string
	Footer     string
	Logger     *slog.Logger

	router *mux.Router
}

// NewServer creates a new Server answering questions with asker.
func NewServer(asker helpdesk.Asker, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		Asker:      asker,
		AskTimeout: DefaultAskTimeout,
		Title:      DefaultTitle,
		Footer:     DefaultFooter,
		Logger:     logger,
		router:     mux.NewRouter(),
	}

	s.router.Use(s.logRequests)
	s.router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet, http.MethodPost)
	s.router.HandleFunc("/api/ask", s.handleAPIAsk).Methods(http.MethodPost)
	s.router.HandleFunc("/api/docs", s.handleAPIDocs).Methods(http.MethodGet)
	s.router.HandleFunc("/api/docs/{id}", s.handleAPIDocument).Methods(http.MethodGet)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/ready", s.handleReady).Methods(http.MethodGet)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

type pageData struct {
	Title    string
	Footer   string
	Question string
	Answer   *helpdesk.Answer
	Error    string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		Title:    s.Title,
		Footer:   s.Footer,
		Question: r.FormValue("q"),
	}

	status := http.StatusOK
	if strings.TrimSpace(data.Question) != "" {
		answer, err := s.ask(r.Context(), data.Question)
		if err != nil {
			status = s.errorStatus(r, err)
			data.Error = helpdesk.ErrorMessage(err)
		} else {
			data.Answer = answer
		}
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "index.html", data); err != nil {
		s.Logger.Error("render page", "err", err)
		http.Error(w, "Internal error.", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Answer  string           `json:"answer"`
	Sources []sourceResponse `json:"sources"`
}

type sourceResponse struct {
	URL   string  `json:"url"`
	Title string  `json:"title,omitempty"`
	Score float32 `json:"score"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleAPIAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json body"})
		return
	}

	answer, err := s.ask(r.Context(), req.Question)
	if err != nil {
		writeJSON(w, s.errorStatus(r, err), errorResponse{Error: helpdesk.ErrorMessage(err)})
		return
	}

	writeJSON(w, http.StatusOK, askResponse{
		Answer:  answer.Text,
		Sources: uniqueSources(answer),
	})
}

type documentSummary struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Title    string `json:"title,omitempty"`
	Position int    `json:"position"`
	Chars    int    `json:"chars"`
}

type documentsResponse struct {
	Documents []documentSummary `json:"documents"`
}

func (s *Server) handleAPIDocs(w http.ResponseWriter, r *http.Request) {
	if s.Documents == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "document listing not available"})
		return
	}

	filter, err := parseDocumentFilter(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: helpdesk.ErrorMessage(err)})
		return
	}

	ctx, cancel := s.withTimeout(r.Context())
	defer cancel()
	docs, err := s.Documents.FindDocuments(ctx, filter)
	if err != nil {
		writeJSON(w, s.errorStatus(r, err), errorResponse{Error: helpdesk.ErrorMessage(err)})
		return
	}

	resp := documentsResponse{Documents: make([]documentSummary, 0, len(docs))}
	for _, doc := range docs {
		resp.Documents = append(resp.Documents, documentSummary{
			ID:       doc.ID,
			URL:      doc.SourceURL,
			Title:    doc.Title,
			Position: doc.Position,
			Chars:    len(doc.Text),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAPIDocument(w http.ResponseWriter, r *http.Request) {
	if s.Documents == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "document listing not available"})
		return
	}

	ctx, cancel := s.withTimeout(r.Context())
	defer cancel()
	doc, err := s.Documents.FindDocumentByID(ctx, mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, s.errorStatus(r, err), errorResponse{Error: helpdesk.ErrorMessage(err)})
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// parseDocumentFilter reads the url, offset and limit query parameters.
func parseDocumentFilter(r *http.Request) (helpdesk.DocumentFilter, error) {
	var filter helpdesk.DocumentFilter
	q := r.URL.Query()
	if u := q.Get("url"); u != "" {
		filter.SourceURL = &u
	}
	for _, p := range []struct {
		name string
		dst  *int
	}{{"offset", &filter.Offset}, {"limit", &filter.Limit}} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return filter, helpdesk.Errorf(helpdesk.EINVALID, "invalid %s %q", p.name, raw)
		}
		*p.dst = n
	}
	return filter, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.Readiness != nil && !s.Readiness.Ready() {
		http.Error(w, "index not built", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}

// withTimeout bounds a request that may have to build the index.
func (s *Server) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := s.AskTimeout
	if timeout <= 0 {
		timeout = DefaultAskTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

func (s *Server) ask(ctx context.Context, question string) (*helpdesk.Answer, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	answer, err := s.Asker.Ask(ctx, question)
	if err == nil && answer == nil {
		err = helpdesk.Errorf(helpdesk.EINTERNAL, "no answer")
	}
	if err != nil && ctx.Err() == context.DeadlineExceeded {
		err = helpdesk.Errorf(helpdesk.EUNAVAILABLE, "The question took too long to answer. Please try again.")
	}
	return answer, err
}

// errorStatus maps an application error code to an HTTP status and logs
// internal errors, whose details are not shown to the user.
func (s *Server) errorStatus(r *http.Request, err error) int {
	switch helpdesk.ErrorCode(err) {
	case helpdesk.EINVALID:
		return http.StatusBadRequest
	case helpdesk.ENOTFOUND:
		return http.StatusNotFound
	case helpdesk.EUNAVAILABLE:
		return http.StatusServiceUnavailable
	}
	s.Logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	return http.StatusInternalServerError
}

// uniqueSources lists cited sources once each, keeping the best score.
func uniqueSources(answer *helpdesk.Answer) []sourceResponse {
	out := make([]sourceResponse, 0, len(answer.Sources))
	seen := make(map[string]bool, len(answer.Sources))
	for _, src := range answer.Sources {
		u, title := helpdesk.UnknownSource, ""
		if src.Chunk != nil {
			title = src.Chunk.Title
			if src.Chunk.SourceURL != "" {
				u = src.Chunk.SourceURL
			}
		}
		if seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, sourceResponse{URL: u, Title: title, Score: src.Score})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
