package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/helpdesk"
	"github.com/fwojciec/helpdesk/langchaingo"
	"github.com/fwojciec/helpdesk/rag"
	helpdeskslog "github.com/fwojciec/helpdesk/slog"
	"github.com/fwojciec/helpdesk/sqlite"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Variables already in the environment take precedence over .env.
	_ = godotenv.Load()

	m := NewMain()
	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Overrides for end-to-end testing. When nil they are built from flags.
	Sources   []helpdesk.Source
	Embedder  helpdesk.Embedder
	Generator helpdesk.Generator
	Listener  net.Listener

	mu      sync.Mutex
	db      *sqlite.DB
	closers []func() error
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close releases the index database and any browser.
func (m *Main) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var firstErr error
	if m.db != nil {
		firstErr = m.db.Close()
		m.db = nil
	}
	for _, closeFn := range m.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.closers = nil
	return firstErr
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:      ctx,
		Stdout:   stdout,
		Stderr:   stderr,
		Listener: m.Listener,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("helpdesk"),
		kong.Description("Answer questions about an event from its help center and web pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'helpdesk --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd, _, _ := strings.Cut(kongCtx.Command(), " ")

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Footer = footer(cli.Provider)

	defer m.Close()

	deps.Sources = m.Sources
	if deps.Sources == nil {
		if deps.Sources, err = m.buildSources(&cli.Globals, stderr, deps.Logger); err != nil {
			return err
		}
	}

	if cmd == "serve" || cmd == "ask" {
		base, err := m.buildIndex(ctx, &cli.Globals, stderr, deps.Logger)
		if err != nil {
			return err
		}
		deps.Index = rag.NewCache(m.indexBuilder(deps.Sources, base, deps.Logger))
		deps.Asker = helpdeskslog.NewLoggingAsker(deps.Index, deps.Logger)
	}

	return kongCtx.Run(deps)
}

// buildIndex configures everything of the index except its storage.
func (m *Main) buildIndex(ctx context.Context, g *Globals, stderr io.Writer, logger *slog.Logger) (rag.Index, error) {
	splitter, err := langchaingo.NewSplitter(g.ChunkSize, g.ChunkOverlap)
	if err != nil {
		return rag.Index{}, err
	}

	ix := rag.Index{
		Splitter:         splitter,
		Embedder:         m.Embedder,
		Generator:        m.Generator,
		TopK:             g.TopK,
		MaxContextTokens: g.MaxContextTokens,
	}
	if ix.Embedder == nil || ix.Generator == nil {
		p, err := newProvider(ctx, g, stderr, logger)
		if err != nil {
			return rag.Index{}, err
		}
		if ix.Embedder == nil {
			ix.Embedder = p.embedder
		}
		if ix.Generator == nil {
			ix.Generator = p.generator
		}
		ix.TokenCounter = p.tokens
	}
	ix.Embedder = helpdeskslog.NewLoggingEmbedder(ix.Embedder, logger)
	return ix, nil
}

// indexBuilder returns the build function of the index cache: load every
// source, then index the documents into a fresh in-memory database.
func (m *Main) indexBuilder(sources []helpdesk.Source, base rag.Index, logger *slog.Logger) rag.BuildFunc {
	return func(ctx context.Context) (helpdesk.Asker, error) {
		begin := time.Now()

		docs, err := rag.LoadDocuments(ctx, sources, logger)
		if err != nil {
			return nil, err
		}
		if len(docs) == 0 {
			return nil, helpdesk.Errorf(helpdesk.EUNAVAILABLE, "No documents could be loaded from the sources.")
		}

		db := sqlite.NewDB(":memory:")
		if err := db.Open(); err != nil {
			return nil, err
		}

		ix := base
		ix.Documents = sqlite.NewDocumentService(db)
		ix.Chunks = sqlite.NewChunkService(db)
		if err := ix.Add(ctx, docs); err != nil {
			db.Close()
			return nil, err
		}

		m.mu.Lock()
		m.db = db
		m.mu.Unlock()

		logger.Info("index built", "documents", len(docs), "duration", time.Since(begin))
		return &ix, nil
	}
}
