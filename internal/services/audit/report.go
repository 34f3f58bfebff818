package audit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ternarybob/docvegas/internal/models"
)

// GenerateReport renders metrics as a deterministic plain text report
func (a *Auditor) GenerateReport(metrics *models.ContentMetrics) string {
	return GenerateReport(metrics)
}

// GenerateMarkdownReport renders metrics as markdown for export
func (a *Auditor) GenerateMarkdownReport(metrics *models.ContentMetrics, url string) string {
	return GenerateMarkdownReport(metrics, url)
}

// GenerateReport renders metrics as a deterministic plain text report
func GenerateReport(metrics *models.ContentMetrics) string {
	lines := []string{
		"Content Analysis Report",
		"=====================\n",
		fmt.Sprintf("Word Count: %d", metrics.WordCount),
		fmt.Sprintf("Readability Score: %.1f/100.0", metrics.ReadabilityScore),
		fmt.Sprintf("Sentiment Score: %.2f (-1 to 1)", metrics.SentimentScore),
		"\nKeyword Density:",
	}

	for _, keyword := range orderedKeywords(metrics) {
		lines = append(lines, fmt.Sprintf("- %s: %s%%", keyword, FormatPercent(metrics.KeywordDensity[keyword])))
	}

	if len(metrics.HeadingStructure) > 0 {
		lines = append(lines, "\nHeading Structure:")
		for _, level := range models.HeadingLevels {
			lines = append(lines, fmt.Sprintf("- %s: %d", level, metrics.HeadingStructure[level]))
		}
	}

	if metrics.MetaDescriptionLength != nil {
		lines = append(lines, fmt.Sprintf("\nMeta Description Length: %d characters", *metrics.MetaDescriptionLength))
	}
	if metrics.TitleLength != nil {
		lines = append(lines, fmt.Sprintf("Title Length: %d characters", *metrics.TitleLength))
	}

	if len(metrics.ContentIssues) > 0 {
		lines = append(lines, "\nContent Issues:")
		for _, issue := range metrics.ContentIssues {
			lines = append(lines, "- "+issue)
		}
	}

	if len(metrics.ImprovementSuggestions) > 0 {
		lines = append(lines, "\nSuggestions for Improvement:")
		for _, suggestion := range metrics.ImprovementSuggestions {
			lines = append(lines, "- "+suggestion)
		}
	}

	return strings.Join(lines, "\n")
}

// GenerateMarkdownReport renders the same facts as GenerateReport using markdown tables and lists
func GenerateMarkdownReport(metrics *models.ContentMetrics, url string) string {
	var b strings.Builder

	b.WriteString("# Content Analysis Report\n\n")
	if url != "" {
		fmt.Fprintf(&b, "**Page:** %s\n\n", url)
	}

	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n|--------|-------|\n")
	fmt.Fprintf(&b, "| Word Count | %d |\n", metrics.WordCount)
	fmt.Fprintf(&b, "| Readability Score | %.1f/100.0 |\n", metrics.ReadabilityScore)
	fmt.Fprintf(&b, "| Sentiment Score | %.2f (-1 to 1) |\n", metrics.SentimentScore)
	if metrics.MetaDescriptionLength != nil {
		fmt.Fprintf(&b, "| Meta Description Length | %d characters |\n", *metrics.MetaDescriptionLength)
	}
	if metrics.TitleLength != nil {
		fmt.Fprintf(&b, "| Title Length | %d characters |\n", *metrics.TitleLength)
	}
	b.WriteString("\n")

	if keywords := orderedKeywords(metrics); len(keywords) > 0 {
		b.WriteString("## Keyword Density\n\n")
		b.WriteString("| Keyword | Density |\n|---------|---------|\n")
		for _, keyword := range keywords {
			fmt.Fprintf(&b, "| %s | %s%% |\n", escapeCell(keyword), FormatPercent(metrics.KeywordDensity[keyword]))
		}
		b.WriteString("\n")
	}

	if len(metrics.HeadingStructure) > 0 {
		b.WriteString("## Heading Structure\n\n")
		b.WriteString("| Level | Count |\n|-------|-------|\n")
		for _, level := range models.HeadingLevels {
			fmt.Fprintf(&b, "| %s | %d |\n", strings.ToUpper(level), metrics.HeadingStructure[level])
		}
		b.WriteString("\n")
	}

	if len(metrics.ContentIssues) == 0 {
		b.WriteString("## Findings\n\nNo issues found.\n")
		return b.String()
	}

	b.WriteString("## Findings\n\n")
	for i, issue := range metrics.ContentIssues {
		fmt.Fprintf(&b, "%d. **%s**", i+1, issue)
		if i < len(metrics.ImprovementSuggestions) {
			fmt.Fprintf(&b, " - %s", metrics.ImprovementSuggestions[i])
		}
		b.WriteString("\n")
	}

	return b.String()
}

// orderedKeywords returns the configured keyword order, or sorted keys for metrics
// decoded without one
func orderedKeywords(metrics *models.ContentMetrics) []string {
	if len(metrics.Keywords) > 0 {
		return metrics.Keywords
	}
	keys := make([]string, 0, len(metrics.KeywordDensity))
	for k := range metrics.KeywordDensity {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
