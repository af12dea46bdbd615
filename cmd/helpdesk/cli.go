package main

import (
	"context"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/fwojciec/helpdesk"
	"github.com/fwojciec/helpdesk/rag"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Sources []helpdesk.Source
	Index   *rag.Cache
	Asker   helpdesk.Asker
	Footer  string

	// Listener is used by serve instead of listening on its address.
	Listener net.Listener
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Globals `embed:""`

	Serve ServeCmd `cmd:"" help:"Serve the question form over HTTP"`
	Ask   AskCmd   `cmd:"" help:"Answer a single question and print its sources"`
	Docs  DocsCmd  `cmd:"" help:"List the documents loaded from the sources"`
}

// Globals are the flags shared by every command.
type Globals struct {
	Provider       string `enum:"gemini,openai" default:"gemini" env:"HELPDESK_PROVIDER" help:"LLM provider (gemini or openai)"`
	GeminiAPIKey   string `name:"gemini-api-key" env:"GEMINI_API_KEY" help:"Gemini API key"`
	OpenAIAPIKey   string `name:"openai-api-key" env:"OPENAI_API_KEY" help:"OpenAI API key"`
	OpenAIBaseURL  string `name:"openai-base-url" env:"OPENAI_BASE_URL" help:"OpenAI-compatible endpoint"`
	Model          string `env:"HELPDESK_MODEL" help:"Chat model (provider default if empty)"`
	EmbeddingModel string `env:"HELPDESK_EMBEDDING_MODEL" help:"Embedding model (provider default if empty)"`

	HelpjuiceURL    string        `name:"helpjuice-url" env:"HELPJUICE_URL" default:"https://globalencounters.helpjuice.com/en_US/hospitality-faq" help:"Helpjuice help center URL"`
	HelpjuiceAPIKey string        `name:"helpjuice-api-key" env:"HELPJUICE_API_KEY" help:"Helpjuice API key; without it the help center URL is fetched as a page"`
	Pages           []string      `name:"page" env:"HELPDESK_PAGES" default:"https://the.ismaili/globalencounters/" help:"Event page URL (repeatable)"`
	FetchMode       string        `enum:"auto,static,browser" default:"auto" env:"HELPDESK_FETCH_MODE" help:"Page fetching: auto, static or browser"`
	RenderDelay     time.Duration `default:"1s" help:"Wait after page load for client-side rendering"`
	RateLimit       float64       `default:"1" help:"Requests per second per domain"`
	SkipFailures    bool          `help:"Skip pages that cannot be fetched instead of failing"`

	ChunkSize        int  `default:"1024" help:"Chunk size in characters"`
	ChunkOverlap     int  `default:"20" help:"Chunk overlap in characters"`
	TopK             int  `name:"top-k" default:"2" help:"Chunks retrieved per question"`
	MaxContextTokens int  `default:"0" help:"Token budget for retrieved chunks (0 for unlimited)"`
	Verbose          bool `short:"v" help:"Enable debug logging"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr       string        `default:":8080" env:"HELPDESK_ADDR" help:"Listen address"`
	Warm       bool          `help:"Build the index at startup instead of on the first question"`
	AskTimeout time.Duration `default:"60s" help:"Time limit per question"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question []string `arg:"" help:"Question to ask about the event"`
}

// DocsCmd is the "docs" subcommand.
type DocsCmd struct {
	Full bool   `help:"Show full document text"`
	Out  string `type:"path" help:"Also export the documents as markdown files to a helpdesk-export directory inside this directory"`
}
