package interfaces

import (
	"context"

	"github.com/ternarybob/docvegas/internal/models"
)

// AugmentationService gathers web evidence and rewrites prompts with it.
// When nothing is found the message comes back unchanged with no sources.
type AugmentationService interface {
	// Augment searches for message with escalating fallback phrasings and returns the
	// evidence-augmented prompt plus the cited sources. The error is non-nil only when
	// search is not configured.
	Augment(ctx context.Context, message string) (string, []models.Source, error)

	// AugmentIfNeeded consults the query analyzer first and only augments when search is warranted
	AugmentIfNeeded(ctx context.Context, message string) (string, []models.Source, models.QueryAnalysis)
}
