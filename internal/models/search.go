package models

// SearchResult is one normalized web search hit
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`               // Always absolute
	Snippet string `json:"snippet,omitempty"` // Provider description, may be empty
}

// Source is a search result enriched with extracted page content, handed back as a citation
type Source struct {
	SearchResult
	Content string `json:"content,omitempty"` // Extracted text, empty when the page could not be scraped
}

// NewSource wraps a search result without content
func NewSource(result SearchResult) Source {
	return Source{SearchResult: result}
}

// HasContent reports whether extraction succeeded for this source
func (s Source) HasContent() bool {
	return s.Content != ""
}
