package interfaces

import (
	"context"

	"github.com/ternarybob/docvegas/internal/models"
)

// ContentScraper fetches pages and reduces them to bounded plain text
type ContentScraper interface {
	// Extract fetches url and returns its cleaned main content, or nil when the page
	// cannot be fetched or holds no usable text. Failures are logged, never returned.
	Extract(ctx context.Context, url string) *models.ScrapedContent

	// ScrapeMany extracts the first maxResults URLs concurrently and returns the
	// successes in input order.
	ScrapeMany(ctx context.Context, urls []string, maxResults int) []*models.ScrapedContent

	// FetchHTML returns the raw HTML of url, subject to the same rate limit and timeout as Extract
	FetchHTML(ctx context.Context, url string) (string, error)
}
