package main

import (
	"context"
	"fmt"

	"github.com/philschmid/gemdocs"
	"github.com/philschmid/gemdocs/fs"
	"github.com/philschmid/gemdocs/fsnotify"
	"github.com/philschmid/gemdocs/ingest"
	gemmcp "github.com/philschmid/gemdocs/mcp"
	"golang.org/x/sync/errgroup"
)

// Run executes the serve command. Ingestion starts in the background so
// the tools answer from the existing index straight away.
func (c *ServeCmd) Run(deps *Dependencies) error {
	server, err := gemmcp.NewServer(deps.Docs)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(deps.Ctx)
	defer cancel()

	if !c.NoIngest {
		if err := deps.Ingester.Start(ctx); err != nil {
			deps.Logger.Warn("startup ingestion not started", "err", gemdocs.ErrorMessage(err))
		}
	}

	var g errgroup.Group

	if interval := deps.Config.RefreshInterval; interval > 0 {
		scheduler := &ingest.Scheduler{Ingester: deps.Ingester, Interval: interval, Logger: deps.Logger}
		g.Go(func() error { return scheduler.Run(ctx) })
	}

	if path, ok := fs.Path(deps.Config.ManifestURL); ok && !c.NoWatch {
		watcher := fsnotify.NewManifestWatcher(path, deps.Ingester, deps.Logger)
		if err := watcher.Open(); err != nil {
			deps.Logger.Warn("manifest watcher disabled", "err", err)
		} else {
			defer watcher.Close()
			g.Go(func() error { return watcher.Run(ctx) })
		}
	}

	transport := deps.Transport
	if transport == nil {
		transport = c.transport()
	}
	deps.Logger.Info("serving MCP", "transport", describeTransport(transport))

	serveErr := server.Run(ctx, transport)
	cancel()
	if err := g.Wait(); err != nil && serveErr == nil {
		serveErr = err
	}
	return serveErr
}

func (c *ServeCmd) transport() gemmcp.Transport {
	if c.HTTP != "" {
		return &gemmcp.HTTPTransport{Addr: c.HTTP}
	}
	return gemmcp.StdioTransport{}
}

func describeTransport(t gemmcp.Transport) string {
	switch t := t.(type) {
	case *gemmcp.HTTPTransport:
		return "http " + t.Addr
	case gemmcp.StdioTransport:
		return "stdio"
	}
	return fmt.Sprintf("%T", t)
}
