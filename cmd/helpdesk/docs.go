package main

import (
	"fmt"

	"github.com/fwojciec/helpdesk"
	"github.com/fwojciec/helpdesk/fs"
	"github.com/fwojciec/helpdesk/rag"
)

// Run executes the docs command.
func (c *DocsCmd) Run(deps *Dependencies) error {
	docs, err := rag.LoadDocuments(deps.Ctx, deps.Sources, deps.Logger)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", helpdesk.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintln(deps.Stderr, "error: no documents could be loaded from the sources")
		return helpdesk.Errorf(helpdesk.ENOTFOUND, "no documents loaded")
	}

	fmt.Fprintf(deps.Stdout, "Documents (%d total):\n\n", len(docs))
	for i, doc := range docs {
		title := doc.Title
		if title == "" {
			title = doc.SourceURL
		}
		fmt.Fprintf(deps.Stdout, "  %d. %s\n     %s (%d chars)\n", i+1, title, doc.SourceURL, len(doc.Text))
		if c.Full {
			fmt.Fprintf(deps.Stdout, "\n%s\n\n", doc.Text)
		}
	}

	if c.Out != "" {
		exporter := fs.NewExporter(c.Out)
		if err := exporter.Export(deps.Ctx, docs); err != nil {
			fmt.Fprintf(deps.Stderr, "error: cannot export documents: %s\n", helpdesk.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "\nExported %d documents to %s\n", len(docs), exporter.Dir())
	}
	return nil
}
