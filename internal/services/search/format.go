package search

import (
	"fmt"
	"strings"

	"github.com/ternarybob/docvegas/internal/models"
)

// FormatResultsForContext renders results as a numbered source list for inclusion in a prompt
func FormatResultsForContext(results []models.SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Here are some relevant sources:\n\n")
	for i, r := range results {
		fmt.Fprintf(&b, "%d. %s\n", i+1, r.Title)
		if r.Snippet != "" {
			fmt.Fprintf(&b, "   Summary: %s\n", r.Snippet)
		}
		fmt.Fprintf(&b, "   URL: %s\n\n", r.URL)
	}
	return b.String()
}
