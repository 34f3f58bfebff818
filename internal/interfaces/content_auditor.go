package interfaces

import "github.com/ternarybob/docvegas/internal/models"

// ContentAuditor computes content-quality metrics and renders reports
type ContentAuditor interface {
	// Analyze measures content. html is optional; pass "" when no markup is available,
	// in which case heading, meta and title checks are skipped.
	Analyze(content string, html string) *models.ContentMetrics

	// WithKeywords returns an auditor with the same thresholds tracking the given keywords
	WithKeywords(keywords []string) ContentAuditor

	// GenerateReport renders metrics as a plain text report
	GenerateReport(metrics *models.ContentMetrics) string

	// GenerateMarkdownReport renders metrics as markdown, titled with the audited URL when present
	GenerateMarkdownReport(metrics *models.ContentMetrics, url string) string
}

// SentimentScorer returns a polarity score in [-1, 1] for text
type SentimentScorer interface {
	Score(text string) float64
}
