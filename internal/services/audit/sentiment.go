package audit

import (
	"strings"
	"unicode"

	"github.com/ternarybob/docvegas/internal/interfaces"
)

// polarity lexicon, values in [-1, 1]
var polarityLexicon = map[string]float64{
	// positive
	"good": 0.7, "great": 0.8, "excellent": 1.0, "amazing": 0.6, "awesome": 1.0,
	"best": 1.0, "better": 0.5, "outstanding": 0.5, "perfect": 1.0, "wonderful": 1.0,
	"fantastic": 0.4, "happy": 0.8, "love": 0.5, "loved": 0.7, "nice": 0.6,
	"helpful": 0.5, "easy": 0.43, "effective": 0.6, "successful": 0.75, "success": 0.3,
	"reliable": 0.5, "trusted": 0.5, "professional": 0.1, "quality": 0.3, "valuable": 0.5,
	"fast": 0.2, "free": 0.4, "popular": 0.6, "recommended": 0.5, "beautiful": 0.85,
	"improve": 0.3, "improved": 0.3, "growth": 0.2, "win": 0.8, "benefit": 0.3,
	"satisfied": 0.5, "friendly": 0.4, "powerful": 0.3, "clear": 0.1, "strong": 0.43,
	"top": 0.5, "exciting": 0.3, "impressive": 1.0, "positive": 0.23, "fun": 0.3,
	// negative
	"bad": -0.7, "poor": -0.4, "terrible": -1.0, "awful": -1.0, "worst": -1.0,
	"worse": -0.4, "horrible": -1.0, "hate": -0.8, "hated": -0.9, "difficult": -0.5,
	"hard": -0.29, "slow": -0.3, "broken": -0.4, "fail": -0.5, "failed": -0.5,
	"failure": -0.32, "problem": -0.2, "problems": -0.2, "wrong": -0.5, "useless": -0.5,
	"expensive": -0.5, "confusing": -0.3, "annoying": -0.8, "disappointing": -0.6, "disappointed": -0.75,
	"boring": -1.0, "sad": -0.5, "angry": -0.5, "ugly": -0.7, "unreliable": -0.5,
	"spam": -0.5, "scam": -0.8, "risk": -0.2, "negative": -0.3, "lose": -0.3,
	"lost": -0.2, "penalty": -0.3, "penalized": -0.4, "weak": -0.38, "outdated": -0.3,
}

// intensifiers scale the polarity of the word that follows
var intensifiers = map[string]float64{
	"very": 1.3, "really": 1.3, "extremely": 1.5, "incredibly": 1.5, "so": 1.2,
	"highly": 1.4, "truly": 1.2, "most": 1.2, "absolutely": 1.5, "quite": 1.1,
}

var negations = map[string]bool{
	"not": true, "no": true, "never": true, "n't": true, "without": true,
	"isn't": true, "aren't": true, "wasn't": true, "don't": true, "doesn't": true,
	"didn't": true, "can't": true, "won't": true, "cannot": true, "nor": true,
}

// negationWindow is how many preceding tokens a negation reaches
const negationWindow = 3

// LexiconScorer is a lexicon-based polarity scorer. The score is the mean polarity of
// lexicon words in the text, adjusted by a preceding intensifier and flipped and
// halved by a nearby negation, clamped to [-1, 1].
type LexiconScorer struct{}

// NewLexiconScorer creates the default sentiment scorer
func NewLexiconScorer() *LexiconScorer {
	return &LexiconScorer{}
}

var _ interfaces.SentimentScorer = (*LexiconScorer)(nil)

// Score implements interfaces.SentimentScorer
func (LexiconScorer) Score(text string) float64 {
	tokens := tokenize(text)

	sum, matched := 0.0, 0
	for i, token := range tokens {
		polarity, ok := polarityLexicon[token]
		if !ok {
			continue
		}

		if i > 0 {
			if factor, ok := intensifiers[tokens[i-1]]; ok {
				polarity *= factor
			}
		}
		for j := i - 1; j >= 0 && j >= i-negationWindow; j-- {
			if negations[tokens[j]] {
				polarity *= -0.5
				break
			}
		}

		sum += clamp(polarity)
		matched++
	}

	if matched == 0 {
		return 0.0
	}
	return clamp(sum / float64(matched))
}

// tokenize lower-cases text into words, keeping apostrophes so contractions match negations
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
