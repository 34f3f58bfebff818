package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/docvegas/internal/models"
)

// formatAnalysis renders a QueryAnalysis as markdown
func formatAnalysis(analysis models.QueryAnalysis) string {
	var sb strings.Builder
	sb.WriteString("## Query Analysis\n\n")
	fmt.Fprintf(&sb, "**Needs search:** %t\n", analysis.NeedsSearch)
	if analysis.SearchQuery != nil {
		fmt.Fprintf(&sb, "**Search query:** %s\n", *analysis.SearchQuery)
	}
	fmt.Fprintf(&sb, "**Confidence:** %.2f\n", analysis.Confidence)
	fmt.Fprintf(&sb, "**Reasoning:** %s\n", analysis.Reasoning)
	return sb.String()
}

// formatAugmented renders the augmented prompt followed by its source list
func formatAugmented(prompt string, sources []models.Source) string {
	if len(sources) == 0 {
		return prompt + "\n\n(no web evidence added)"
	}

	var sb strings.Builder
	sb.WriteString(prompt)
	sb.WriteString("\n\n## Sources\n\n")
	for i, s := range sources {
		fmt.Fprintf(&sb, "%d. [%s](%s)\n", i+1, s.Title, s.URL)
	}
	return sb.String()
}

// formatAudit renders an audit record as its report with an identifying header
func formatAudit(record *models.AuditRecord) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Audit ID: %s\n", record.ID)
	if record.URL != "" {
		fmt.Fprintf(&sb, "URL: %s\n", record.URL)
	}
	fmt.Fprintf(&sb, "Created: %s\n\n", record.CreatedAt.Format(time.RFC3339))
	sb.WriteString(record.Report)
	return sb.String()
}
