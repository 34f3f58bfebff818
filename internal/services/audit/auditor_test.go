package audit

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/docvegas/internal/common"
)

func newTestAuditor(t *testing.T, mutate func(*common.AuditorConfig)) *Auditor {
	t.Helper()
	cfg := common.NewDefaultConfig().Auditor
	cfg.ImportantKeywords = nil
	if mutate != nil {
		mutate(&cfg)
	}
	auditor, err := NewAuditor(&cfg, nil)
	require.NoError(t, err)
	return auditor
}

func TestAnalyze_ShortContentPairsIssueWithSuggestion(t *testing.T) {
	auditor := newTestAuditor(t, nil)
	content := strings.Repeat("word ", 250)

	metrics := auditor.Analyze(content, "")

	assert.Equal(t, 250, metrics.WordCount)
	require.NotEmpty(t, metrics.ContentIssues)
	assert.Equal(t, "Content length (250 words) is below recommended minimum (300 words)", metrics.ContentIssues[0])
	assert.Equal(t, "Expand content to improve comprehensiveness", metrics.ImprovementSuggestions[0])
	assert.Len(t, metrics.ImprovementSuggestions, len(metrics.ContentIssues))
}

func TestAnalyze_KeywordStuffing(t *testing.T) {
	auditor := newTestAuditor(t, func(cfg *common.AuditorConfig) {
		cfg.ImportantKeywords = []string{"seo", "vegas"}
		cfg.MinWordCount = 0
		cfg.TargetReadabilityScore = -1000
	})
	content := strings.Repeat("seo ", 10) + strings.Repeat("filler ", 90)

	metrics := auditor.Analyze(content, "")

	assert.Equal(t, []string{"seo", "vegas"}, metrics.Keywords)
	assert.Equal(t, 10.0, metrics.KeywordDensity["seo"])
	assert.Equal(t, 0.0, metrics.KeywordDensity["vegas"])
	assert.Equal(t, []string{"Keyword 'seo' appears too frequently (10.0%)"}, metrics.ContentIssues)
	assert.Equal(t, []string{"Reduce usage of 'seo' to avoid keyword stuffing"}, metrics.ImprovementSuggestions)
}

func TestAnalyze_WithoutHTMLSkipsMarkupChecks(t *testing.T) {
	metrics := newTestAuditor(t, nil).Analyze("Short text.", "")

	assert.Empty(t, metrics.HeadingStructure)
	assert.NotNil(t, metrics.HeadingStructure)
	assert.Nil(t, metrics.MetaDescriptionLength)
	assert.Nil(t, metrics.TitleLength)
	assert.NotContains(t, metrics.ContentIssues, "Missing H1 heading")
}

func TestAnalyze_HTMLChecks(t *testing.T) {
	longTitle := strings.Repeat("T", 70)
	tests := []struct {
		name            string
		html            string
		wantIssues      []string
		wantSuggestions []string
	}{
		{
			name:            "missing h1, no meta, no title",
			html:            "<html><body><p>x</p></body></html>",
			wantIssues:      []string{"Missing H1 heading"},
			wantSuggestions: []string{"Add a clear H1 heading"},
		},
		{
			name: "multiple h1, short meta, long title",
			html: fmt.Sprintf(`<html><head><title>%s</title><meta name="description" content="%s"></head><body><h1>a</h1><h1>b</h1></body></html>`,
				longTitle, strings.Repeat("m", 50)),
			wantIssues:      []string{"Multiple H1 headings detected", "Meta description too short", "Title too long"},
			wantSuggestions: []string{"Use only one H1 heading per page", "Expand meta description to 120-160 characters", "Keep title under 60 characters"},
		},
		{
			name: "long meta, short title",
			html: fmt.Sprintf(`<html><head><title>Hi</title><meta name="description" content="%s"></head><body><h1>a</h1></body></html>`,
				strings.Repeat("m", 170)),
			wantIssues:      []string{"Meta description too long", "Title too short"},
			wantSuggestions: []string{"Keep meta description under 160 characters", "Expand title to 30-60 characters"},
		},
		{
			name: "everything in range",
			html: fmt.Sprintf(`<html><head><title>%s</title><meta name="description" content="%s"></head><body><h1>a</h1></body></html>`,
				strings.Repeat("t", 45), strings.Repeat("m", 140)),
			wantIssues:      []string{},
			wantSuggestions: []string{},
		},
	}

	auditor := newTestAuditor(t, func(cfg *common.AuditorConfig) {
		cfg.MinWordCount = 0
		cfg.TargetReadabilityScore = -1000
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics := auditor.Analyze("Plain content.", tt.html)
			assert.Len(t, metrics.HeadingStructure, 6)
			assert.Equal(t, tt.wantIssues, metrics.ContentIssues)
			assert.Equal(t, tt.wantSuggestions, metrics.ImprovementSuggestions)
		})
	}
}

func TestAnalyze_TogglesDisableMetaAndTitle(t *testing.T) {
	auditor := newTestAuditor(t, func(cfg *common.AuditorConfig) {
		cfg.CheckMetaDescription = false
		cfg.CheckTitle = false
	})
	html := `<title>Hi</title><meta name="description" content="tiny"><h1>x</h1>`

	metrics := auditor.Analyze("Plain content.", html)
	assert.Nil(t, metrics.MetaDescriptionLength)
	assert.Nil(t, metrics.TitleLength)
	assert.NotContains(t, metrics.ContentIssues, "Title too short")
}

func TestAnalyze_DifficultText(t *testing.T) {
	auditor := newTestAuditor(t, func(cfg *common.AuditorConfig) { cfg.MinWordCount = 0 })
	text := "Comprehensive organizational methodologies necessitate interdisciplinary collaboration."

	metrics := auditor.Analyze(text, "")
	assert.Less(t, metrics.ReadabilityScore, 60.0)
	assert.Contains(t, metrics.ContentIssues, "Content may be too difficult to read")
}

func TestWithKeywordsLeavesOriginalUntouched(t *testing.T) {
	auditor := newTestAuditor(t, func(cfg *common.AuditorConfig) {
		cfg.ImportantKeywords = []string{"original"}
	})

	override := auditor.WithKeywords([]string{"override"})
	assert.Contains(t, override.Analyze("override text", "").KeywordDensity, "override")
	assert.Contains(t, auditor.Analyze("override text", "").KeywordDensity, "original")
}

func TestNewAuditor_RejectsInvalidThresholds(t *testing.T) {
	cfg := common.NewDefaultConfig().Auditor
	cfg.MaxKeywordDensity = -1
	_, err := NewAuditor(&cfg, nil)
	assert.Error(t, err)
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "10.0", FormatPercent(10))
	assert.Equal(t, "3.33", FormatPercent(3.33))
	assert.Equal(t, "0.0", FormatPercent(0))
	assert.Equal(t, "2.5", FormatPercent(2.5))
}
