package unfurl

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML fragment, such as a cleaned excerpt,
	// into Markdown.
	Convert(html string) (string, error)
}
