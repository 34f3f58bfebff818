package models

// HeadingLevels are the keys present in ContentMetrics.HeadingStructure when HTML is analysed
var HeadingLevels = []string{"h1", "h2", "h3", "h4", "h5", "h6"}

// ContentMetrics holds the quality measurements and derived findings for one piece of content
type ContentMetrics struct {
	WordCount        int                `json:"word_count"`
	Keywords         []string           `json:"keywords"`        // Analysed keywords in configured order
	KeywordDensity   map[string]float64 `json:"keyword_density"` // Percentage, rounded to 2 decimals
	ReadabilityScore float64            `json:"readability_score"`
	SentimentScore   float64            `json:"sentiment_score"` // -1..1
	HeadingStructure map[string]int     `json:"heading_structure"`

	// Optional: nil when no HTML was supplied or the check is disabled
	MetaDescriptionLength *int `json:"meta_description_length,omitempty"`
	TitleLength           *int `json:"title_length,omitempty"`

	// Index-aligned: ContentIssues[i] is addressed by ImprovementSuggestions[i]
	ContentIssues          []string `json:"content_issues"`
	ImprovementSuggestions []string `json:"improvement_suggestions"`
}

// AddFinding appends an issue together with its paired suggestion
func (m *ContentMetrics) AddFinding(issue, suggestion string) {
	m.ContentIssues = append(m.ContentIssues, issue)
	m.ImprovementSuggestions = append(m.ImprovementSuggestions, suggestion)
}
