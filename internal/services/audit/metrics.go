package audit

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	sentenceSplit   = regexp.MustCompile(`[.!?]+`)
	headingPatterns = compileHeadingPatterns()
	metaDescription = regexp.MustCompile(`(?is)<meta\s+name=["']description["']\s+content=["'](.*?)["']`)
	titleElement    = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
)

func compileHeadingPatterns() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 6)
	for i := range patterns {
		level := i + 1
		patterns[i] = regexp.MustCompile(fmt.Sprintf(`(?is)<h%d.*?>(.*?)</h%d>`, level, level))
	}
	return patterns
}

// CalculateReadability returns a Flesch Reading Ease analogue:
// 206.835 - 1.015*(words/sentences) - 84.6*(syllables/words).
// Sentences are the non-empty segments between runs of '.', '!' or '?'.
// Returns 0 when the text has no words or no sentences.
func CalculateReadability(text string) float64 {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0.0
	}

	sentences := 0
	for _, segment := range sentenceSplit.Split(text, -1) {
		if strings.TrimSpace(segment) != "" {
			sentences++
		}
	}
	if sentences == 0 {
		return 0.0
	}

	syllables := 0
	for _, word := range words {
		syllables += CountSyllables(word)
	}

	wordCount := float64(len(words))
	return 206.835 - 1.015*(wordCount/float64(sentences)) - 84.6*(float64(syllables)/wordCount)
}

// CountSyllables counts vowel groups ("aeiouy"), minus one for a trailing silent 'e',
// with a floor of 1. Surrounding punctuation is ignored for the silent-e check.
func CountSyllables(word string) int {
	word = strings.ToLower(word)
	count := 0
	onVowel := false
	for _, r := range word {
		isVowel := strings.ContainsRune("aeiouy", r)
		if isVowel && !onVowel {
			count++
		}
		onVowel = isVowel
	}

	trimmed := strings.TrimFunc(word, func(r rune) bool { return !unicode.IsLetter(r) })
	if strings.HasSuffix(trimmed, "e") {
		count--
	}
	if count < 1 {
		count = 1
	}
	return count
}

// KeywordDensity returns, per keyword, case-insensitive substring occurrences times the
// keyword's own word count, divided by the text's word count, as a percentage rounded
// to 2 decimals. Multi-word phrases are weighted by their length.
func KeywordDensity(text string, keywords []string) map[string]float64 {
	densities := make(map[string]float64, len(keywords))
	wordCount := len(strings.Fields(text))
	lower := strings.ToLower(text)

	for _, keyword := range keywords {
		phrase := strings.ToLower(strings.TrimSpace(keyword))
		if wordCount == 0 || phrase == "" {
			densities[keyword] = 0.0
			continue
		}
		occurrences := strings.Count(lower, phrase)
		density := float64(occurrences*len(strings.Fields(phrase))) / float64(wordCount) * 100
		densities[keyword] = round2(density)
	}
	return densities
}

// HeadingStructure counts <h1>..<h6> elements; the result always has all six keys
func HeadingStructure(html string) map[string]int {
	counts := make(map[string]int, len(headingPatterns))
	for i, pattern := range headingPatterns {
		counts[fmt.Sprintf("h%d", i+1)] = len(pattern.FindAllStringIndex(html, -1))
	}
	return counts
}

// MetaDescriptionLength returns the character length of the meta description, or nil if absent
func MetaDescriptionLength(html string) *int {
	return matchLength(metaDescription, html)
}

// TitleLength returns the character length of the <title> text, or nil if absent
func TitleLength(html string) *int {
	return matchLength(titleElement, html)
}

func matchLength(pattern *regexp.Regexp, html string) *int {
	m := pattern.FindStringSubmatch(html)
	if m == nil {
		return nil
	}
	n := utf8.RuneCountInString(strings.TrimSpace(m[1]))
	return &n
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
