package models

// ScrapedContent is the bounded, structure-preserving text extracted from one page.
// ContentLength is the pre-truncation length in characters, so
// ContentLength > len([]rune(Content)) signals that Content was cut.
type ScrapedContent struct {
	URL           string `json:"url"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	Domain        string `json:"domain"`
	ContentLength int    `json:"content_length"`
}

// Truncated reports whether Content is shorter than the full extraction
func (s *ScrapedContent) Truncated() bool {
	return s.ContentLength > len([]rune(s.Content))
}
