package main

import (
	"fmt"

	"github.com/philschmid/gemdocs"
	"github.com/philschmid/gemdocs/query"
)

// Run executes the ingest command.
func (c *IngestCmd) Run(deps *Dependencies) error {
	err := deps.Ingester.Run(deps.Ctx)
	fmt.Fprintln(deps.Stdout, query.FormatStatus(deps.Ingester.Status()))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", gemdocs.ErrorMessage(err))
		return err
	}
	return nil
}

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, deps.Docs.SearchDocumentation(deps.Ctx, c.Queries))
	return nil
}

// Run executes the page command.
func (c *PageCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, deps.Docs.GetCapabilityPage(deps.Ctx, c.Title))
	return nil
}

// Run executes the model command.
func (c *ModelCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, deps.Docs.GetCurrentModel(deps.Ctx))
	return nil
}
