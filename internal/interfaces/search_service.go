package interfaces

import (
	"context"

	"github.com/ternarybob/docvegas/internal/models"
)

// SearchService queries a web search provider and returns normalized results.
//
// Transient provider failures (non-200, 429, malformed JSON) are retried and then
// degrade to an empty slice with a nil error. A non-nil error is returned only
// for configuration problems such as a missing API key.
type SearchService interface {
	// Search returns at most count results for query, attempting the provider up to retries times.
	// count <= 0 selects the configured default.
	Search(ctx context.Context, query string, count int, retries int) ([]models.SearchResult, error)
}
