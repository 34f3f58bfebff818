package chat

import (
	"fmt"
	"strings"

	"github.com/ternarybob/docvegas/internal/models"
)

// evidenceHeader separates the user's message from retrieved evidence
const evidenceHeader = "Here is some relevant information from trusted sources:\n\n"

// buildAugmentedPrompt appends each source's extracted content (first excerptLength
// characters) or, failing that, its snippet, labelled with the source title
func buildAugmentedPrompt(message string, sources []models.Source, excerptLength int) string {
	var b strings.Builder
	b.WriteString(message)
	b.WriteString("\n\n")
	b.WriteString(evidenceHeader)

	for _, source := range sources {
		switch {
		case source.HasContent():
			fmt.Fprintf(&b, "From %s:\n%s...\n\n", source.Title, excerpt(source.Content, excerptLength))
		case source.Snippet != "":
			fmt.Fprintf(&b, "From %s:\n%s\n\n", source.Title, source.Snippet)
		}
	}

	return b.String()
}

func excerpt(s string, n int) string {
	runes := []rune(s)
	if n <= 0 || len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
