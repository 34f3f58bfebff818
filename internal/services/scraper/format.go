package scraper

import (
	"fmt"
	"strings"

	"github.com/ternarybob/docvegas/internal/models"
)

// NoContentMessage is returned by FormatScrapedContent when nothing was scraped
const NoContentMessage = "No content could be scraped from the search results."

// FormatScrapedContent renders scraped pages as numbered prompt context
func FormatScrapedContent(contents []*models.ScrapedContent) string {
	if len(contents) == 0 {
		return NoContentMessage
	}

	var b strings.Builder
	b.WriteString("Here is relevant content from the top search results:\n\n")
	for i, c := range contents {
		fmt.Fprintf(&b, "Source %d: %s (%s)\n", i+1, c.Title, c.Domain)
		fmt.Fprintf(&b, "Content: %s\n", c.Content)
		fmt.Fprintf(&b, "URL: %s\n\n", c.URL)
	}
	return b.String()
}
