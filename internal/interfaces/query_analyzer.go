package interfaces

import "github.com/ternarybob/docvegas/internal/models"

// QueryAnalyzer decides whether a user utterance needs live web evidence
type QueryAnalyzer interface {
	Analyze(query string) models.QueryAnalysis
}
