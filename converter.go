package newsscout

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown, resolving relative
	// links against baseURL when it is not empty.
	Convert(html, baseURL string) (string, error)
}
