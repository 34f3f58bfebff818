package audit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/docvegas/internal/common"
	"github.com/ternarybob/docvegas/internal/interfaces"
	"github.com/ternarybob/docvegas/internal/models"
)

// Length bounds for meta description and title checks
const (
	metaDescriptionMax = 160
	metaDescriptionMin = 120
	titleMax           = 60
	titleMin           = 30
)

// Auditor computes content-quality metrics against an immutable set of thresholds
type Auditor struct {
	config    common.AuditorConfig
	sentiment interfaces.SentimentScorer
}

// NewAuditor validates the thresholds and creates an auditor. A nil scorer selects the lexicon scorer.
func NewAuditor(config *common.AuditorConfig, scorer interfaces.SentimentScorer) (*Auditor, error) {
	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid auditor configuration: %w", err)
	}
	if scorer == nil {
		scorer = NewLexiconScorer()
	}

	cfg := *config
	cfg.ImportantKeywords = append([]string(nil), config.ImportantKeywords...)

	return &Auditor{config: cfg, sentiment: scorer}, nil
}

var _ interfaces.ContentAuditor = (*Auditor)(nil)

// WithKeywords returns an auditor with the same thresholds tracking keywords instead
func (a *Auditor) WithKeywords(keywords []string) interfaces.ContentAuditor {
	clone := *a
	clone.config.ImportantKeywords = append([]string(nil), keywords...)
	return &clone
}

// Analyze measures content. HTML-dependent checks run only when html is non-empty.
func (a *Auditor) Analyze(content string, html string) *models.ContentMetrics {
	metrics := &models.ContentMetrics{
		WordCount:              len(strings.Fields(content)),
		Keywords:               append([]string(nil), a.config.ImportantKeywords...),
		KeywordDensity:         KeywordDensity(content, a.config.ImportantKeywords),
		ReadabilityScore:       CalculateReadability(content),
		SentimentScore:         clamp(a.sentiment.Score(content)),
		HeadingStructure:       map[string]int{},
		ContentIssues:          []string{},
		ImprovementSuggestions: []string{},
	}

	hasHTML := strings.TrimSpace(html) != ""
	if hasHTML {
		metrics.HeadingStructure = HeadingStructure(html)
		if a.config.CheckMetaDescription {
			metrics.MetaDescriptionLength = MetaDescriptionLength(html)
		}
		if a.config.CheckTitle {
			metrics.TitleLength = TitleLength(html)
		}
	}

	if metrics.WordCount < a.config.MinWordCount {
		metrics.AddFinding(
			fmt.Sprintf("Content length (%d words) is below recommended minimum (%d words)", metrics.WordCount, a.config.MinWordCount),
			"Expand content to improve comprehensiveness",
		)
	}

	for _, keyword := range metrics.Keywords {
		density := metrics.KeywordDensity[keyword]
		if density > a.config.MaxKeywordDensity {
			metrics.AddFinding(
				fmt.Sprintf("Keyword '%s' appears too frequently (%s%%)", keyword, FormatPercent(density)),
				fmt.Sprintf("Reduce usage of '%s' to avoid keyword stuffing", keyword),
			)
		}
	}

	if metrics.ReadabilityScore < a.config.TargetReadabilityScore {
		metrics.AddFinding("Content may be too difficult to read", "Simplify language and use shorter sentences")
	}

	if hasHTML {
		switch h1 := metrics.HeadingStructure["h1"]; {
		case h1 == 0:
			metrics.AddFinding("Missing H1 heading", "Add a clear H1 heading")
		case h1 > 1:
			metrics.AddFinding("Multiple H1 headings detected", "Use only one H1 heading per page")
		}
	}

	if n := metrics.MetaDescriptionLength; n != nil {
		switch {
		case *n > metaDescriptionMax:
			metrics.AddFinding("Meta description too long", "Keep meta description under 160 characters")
		case *n < metaDescriptionMin:
			metrics.AddFinding("Meta description too short", "Expand meta description to 120-160 characters")
		}
	}

	if n := metrics.TitleLength; n != nil {
		switch {
		case *n > titleMax:
			metrics.AddFinding("Title too long", "Keep title under 60 characters")
		case *n < titleMin:
			metrics.AddFinding("Title too short", "Expand title to 30-60 characters")
		}
	}

	return metrics
}

// FormatPercent prints a density the way it is stored: at most 2 decimals, at least 1
func FormatPercent(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
