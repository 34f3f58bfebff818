package chat

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ternarybob/docvegas/internal/common"
	"github.com/ternarybob/docvegas/internal/interfaces"
	"github.com/ternarybob/docvegas/internal/models"
)

// NoTriggersReason is reported when no rule matched
const NoTriggersReason = "No search triggers found"

const patternReason = "Matches pattern for specific information request"

// searchRule is one independent predicate over the lower-cased query
type searchRule struct {
	matches func(query string) bool
	weight  float64
	reason  string
}

// keyword triggers, in evaluation order
var searchTriggers = []struct {
	term   string
	weight float64
}{
	{"statistics", 0.9},
	{"latest", 0.9},
	{"current", 0.9},
	{"recent", 0.9},
	{"trends", 0.9},
	{"news", 0.9},
	{"data", 0.8},
	{"research", 0.8},
	{"study", 0.8},
	{"example", 0.7},
	{"competitor", 0.8},
	{"competitors", 0.8},
	{"business", 0.7},
	{"website", 0.7},
	{"company", 0.7},
	{"companies", 0.7},
	{"market", 0.7},
	{"industry", 0.7},
}

var searchPatterns = []struct {
	pattern *regexp.Regexp
	weight  float64
}{
	{regexp.MustCompile(`what.*(?:is|are).*(?:the best|the top|the most)`), 0.8},   // superlative questions
	{regexp.MustCompile(`how.*(?:does|do).*(?:company|competitor|business)`), 0.8}, // how others do it
	{regexp.MustCompile(`(?:find|show|give).*example`), 0.7},
	{regexp.MustCompile(`compare.*(?:with|to)`), 0.8},
	{regexp.MustCompile(`(?:in|for)\s+\d{4}`), 0.9}, // year references
	{regexp.MustCompile(`(?:latest|current|recent).*(?:trend|development|change)`), 0.9},
}

var stopWords = map[string]bool{
	"what": true, "is": true, "are": true, "the": true, "in": true, "on": true,
	"at": true, "for": true, "to": true, "of": true, "and": true, "or": true,
}

// QueryAnalyzer is a deterministic rule-based classifier for search need.
// Every rule is evaluated; confidence is the maximum matched weight.
type QueryAnalyzer struct {
	rules        []searchRule
	threshold    float64
	domainSuffix string
}

// NewQueryAnalyzer builds the analyzer from the trigger and pattern tables
func NewQueryAnalyzer(config *common.QueryConfig) *QueryAnalyzer {
	rules := make([]searchRule, 0, len(searchTriggers)+len(searchPatterns))
	for _, t := range searchTriggers {
		term := t.term
		rules = append(rules, searchRule{
			matches: func(q string) bool { return strings.Contains(q, term) },
			weight:  t.weight,
			reason:  fmt.Sprintf("Contains keyword '%s'", term),
		})
	}
	for _, p := range searchPatterns {
		rules = append(rules, searchRule{
			matches: p.pattern.MatchString,
			weight:  p.weight,
			reason:  patternReason,
		})
	}

	return &QueryAnalyzer{
		rules:        rules,
		threshold:    config.Threshold,
		domainSuffix: config.DomainSuffix,
	}
}

var _ interfaces.QueryAnalyzer = (*QueryAnalyzer)(nil)

// Analyze classifies query and synthesizes a search query when search is warranted
func (a *QueryAnalyzer) Analyze(query string) models.QueryAnalysis {
	lower := strings.ToLower(query)

	confidence := 0.0
	var reasons []string
	for _, rule := range a.rules {
		if !rule.matches(lower) {
			continue
		}
		if rule.weight > confidence {
			confidence = rule.weight
		}
		reasons = append(reasons, rule.reason)
	}

	analysis := models.QueryAnalysis{
		NeedsSearch: confidence >= a.threshold,
		Confidence:  confidence,
		Reasoning:   NoTriggersReason,
	}
	if len(reasons) > 0 {
		analysis.Reasoning = strings.Join(reasons, "; ")
	}

	if analysis.NeedsSearch {
		searchQuery := a.buildSearchQuery(lower)
		analysis.SearchQuery = &searchQuery
	}

	return analysis
}

// buildSearchQuery drops stop words and appends the domain suffix
func (a *QueryAnalyzer) buildSearchQuery(lower string) string {
	var terms []string
	for _, word := range strings.Fields(lower) {
		if !stopWords[word] {
			terms = append(terms, word)
		}
	}
	return strings.Join(terms, " ") + a.domainSuffix
}
