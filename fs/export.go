// Package fs exports loaded documents as markdown files.
package fs

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fwojciec/helpdesk"
)

// URLToPath converts a document URL to a relative file path under its host.
// Example: https://example.com/en_US/faq → example.com/en_US/faq.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", helpdesk.Errorf(helpdesk.EINVALID, "url %q has no host", rawURL)
	}

	host := strings.ToLower(u.Hostname())
	p := strings.TrimPrefix(path.Clean("/"+u.Path), "/")
	switch {
	case p == "" || p == ".":
		return path.Join(host, "index.md"), nil
	case strings.HasSuffix(u.Path, "/"):
		return path.Join(host, p, "index.md"), nil
	}
	return path.Join(host, p+".md"), nil
}

// FormatDocument formats a document with YAML frontmatter.
func FormatDocument(doc *helpdesk.Document) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(doc.SourceURL)
	if doc.Title != "" {
		b.WriteString("\ntitle: ")
		b.WriteString(doc.Title)
	}
	if !doc.FetchedAt.IsZero() {
		b.WriteString("\nfetched: ")
		b.WriteString(doc.FetchedAt.Format("2006-01-02"))
	}
	b.WriteString("\n---\n\n")
	b.WriteString(doc.Text)
	if !strings.HasSuffix(doc.Text, "\n") {
		b.WriteString("\n")
	}
	return b.String()
}

// ExportDirName is the directory created inside the target directory. Only
// this directory is ever replaced; other files in the target are kept.
const ExportDirName = "helpdesk-export"

// Exporter writes documents to ExportDirName inside a target directory.
// Files are written to a sibling temporary directory and moved into place by
// Commit, so a failed export leaves the previous one untouched.
type Exporter struct {
	dir string
}

// NewExporter creates an Exporter writing under parent.
func NewExporter(parent string) *Exporter {
	return &Exporter{dir: filepath.Join(filepath.Clean(parent), ExportDirName)}
}

// Dir returns the directory that holds the exported documents.
func (e *Exporter) Dir() string {
	return e.dir
}

func (e *Exporter) tempDir() string {
	return e.dir + ".tmp"
}

// Write stores one document in the temporary directory.
func (e *Exporter) Write(ctx context.Context, doc *helpdesk.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return err
	}

	relPath, err := URLToPath(doc.SourceURL)
	if err != nil {
		return err
	}
	fullPath := filepath.Join(e.tempDir(), filepath.FromSlash(relPath))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(FormatDocument(doc)), 0644)
}

// Export writes all docs and commits them, aborting on the first error.
func (e *Exporter) Export(ctx context.Context, docs []*helpdesk.Document) error {
	if err := e.Abort(); err != nil {
		return err
	}
	for _, doc := range docs {
		if err := e.Write(ctx, doc); err != nil {
			_ = e.Abort()
			return err
		}
	}
	return e.Commit()
}

// Commit replaces the previous export with the written documents.
func (e *Exporter) Commit() error {
	if err := os.MkdirAll(e.tempDir(), 0755); err != nil {
		return err
	}
	if err := os.RemoveAll(e.dir); err != nil {
		return err
	}
	return os.Rename(e.tempDir(), e.dir)
}

// Abort discards the written documents.
func (e *Exporter) Abort() error {
	return os.RemoveAll(e.tempDir())
}
