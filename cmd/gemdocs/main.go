package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/philschmid/gemdocs"
	"github.com/philschmid/gemdocs/config"
	"github.com/philschmid/gemdocs/query"
	gemslog "github.com/philschmid/gemdocs/slog"
	"github.com/philschmid/gemdocs/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Getenv looks up environment variables. Set before calling Run().
	Getenv func(string) string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Ingester is closed with the program so a background run is joined.
	Ingester Ingester
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Getenv: os.Getenv}
}

// Close gracefully stops the program. A background ingestion run is
// canceled and joined before the database closes.
func (m *Main) Close() error {
	if m.Ingester != nil {
		if err := m.Ingester.Close(); err != nil {
			return err
		}
	}
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("gemdocs"),
		kong.Description("Gemini API documentation index and MCP server."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'gemdocs --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(cli.Config, m.Getenv)
	if err != nil {
		return err
	}
	cli.applyOverrides(&cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := gemslog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return gemdocs.Errorf(gemdocs.EINVALID, "%v", err)
	}
	logger := gemslog.NewLogger(stderr, level)

	dbPath, err := cfg.ResolveDBPath()
	if err != nil {
		return err
	}
	m.DB = sqlite.NewDB(dbPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set %s to use a different database path\n", config.DBPathEnv)
		return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
	}
	defer m.Close()
	logger.Debug("database opened", "path", m.DB.Path())

	documents := gemslog.NewLoggingDocumentService(sqlite.NewDocumentService(m.DB), logger)
	ingester := newIngester(cfg, documents, logger)
	m.Ingester = ingester

	docs := query.NewService(documents, ingester, logger)
	docs.TopK = cfg.TopK

	deps.Config = cfg
	deps.Logger = logger
	deps.Documents = documents
	deps.Ingester = ingester
	deps.Docs = docs

	return kongCtx.Run(deps)
}
