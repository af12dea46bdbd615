package helpdesk

// Converter converts HTML to plain text suitable for indexing.
type Converter interface {
	// Convert transforms HTML content into text.
	// Implementations may emit Markdown to preserve structure.
	Convert(html string) (string, error)
}
