package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/philschmid/gemdocs"
	"github.com/philschmid/gemdocs/config"
	gemmcp "github.com/philschmid/gemdocs/mcp"
)

// Ingester runs ingestion in the foreground or background.
type Ingester interface {
	gemdocs.Ingester

	// Run performs a run synchronously.
	Run(ctx context.Context) error

	// Close cancels and joins a background run.
	Close() error
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Config    config.Config
	Logger    *slog.Logger
	Documents gemdocs.DocumentService
	Ingester  Ingester
	Docs      gemdocs.DocsService

	// Transport overrides the transport chosen by serve flags.
	Transport gemmcp.Transport
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config   string `short:"c" type:"path" help:"YAML config file (default $GEMINI_DOCS_CONFIG)"`
	DB       string `name:"db" help:"SQLite database path (overrides config)"`
	Manifest string `help:"Manifest URL or local file (overrides config)"`
	LogLevel string `name:"log-level" help:"Log level: debug, info, warn or error (overrides config)"`

	Serve  ServeCmd  `cmd:"" help:"Serve the documentation tools over MCP"`
	Ingest IngestCmd `cmd:"" help:"Refresh the documentation index and exit"`
	Search SearchCmd `cmd:"" help:"Keyword search over the documentation"`
	Page   PageCmd   `cmd:"" help:"Print a page by exact title, or list titles"`
	Model  ModelCmd  `cmd:"" help:"Print the Gemini models page"`
}

func (c *CLI) applyOverrides(cfg *config.Config) {
	if c.DB != "" {
		cfg.DBPath = c.DB
	}
	if c.Manifest != "" {
		cfg.ManifestURL = c.Manifest
	}
	if c.LogLevel != "" {
		cfg.LogLevel = c.LogLevel
	}
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	HTTP     string `name:"http" placeholder:"ADDR" help:"Serve streamable HTTP on ADDR instead of stdio"`
	NoIngest bool   `name:"no-ingest" help:"Skip the ingestion run at startup"`
	NoWatch  bool   `name:"no-watch" help:"Do not watch a local manifest file for changes"`
}

// IngestCmd is the "ingest" subcommand.
type IngestCmd struct{}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Queries []string `arg:"" help:"Keyword queries (up to 3)"`
}

// PageCmd is the "page" subcommand.
type PageCmd struct {
	Title string `arg:"" optional:"" help:"Exact page title"`
}

// ModelCmd is the "model" subcommand.
type ModelCmd struct{}
