package models

// QueryAnalysis is the outcome of classifying a user utterance for search need
type QueryAnalysis struct {
	NeedsSearch bool    `json:"needs_search"`
	SearchQuery *string `json:"search_query"` // nil unless NeedsSearch
	Confidence  float64 `json:"confidence"`   // Maximum weight across matched rules, 0..1
	Reasoning   string  `json:"reasoning"`    // Matched reasons joined with "; "
}
