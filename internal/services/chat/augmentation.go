package chat

import (
	"context"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/docvegas/internal/common"
	"github.com/ternarybob/docvegas/internal/interfaces"
	"github.com/ternarybob/docvegas/internal/models"
)

// QueryTransform rewrites the user message into one rung of the search ladder
type QueryTransform func(message string) string

// Verbatim searches for the message as typed
func Verbatim(message string) string {
	return message
}

// WithPrefix qualifies the message with a fixed phrase, e.g. "Las Vegas SEO "
func WithPrefix(prefix string) QueryTransform {
	return func(message string) string {
		return prefix + message
	}
}

// SearchAugmenter composes query analysis, web search and page extraction into
// a single evidence-gathering step
type SearchAugmenter struct {
	searchService interfaces.SearchService
	scraper       interfaces.ContentScraper
	analyzer      interfaces.QueryAnalyzer
	ladder        []QueryTransform
	resultCount   int
	retries       int
	excerptLength int
	logger        arbor.ILogger
}

var _ interfaces.AugmentationService = (*SearchAugmenter)(nil)

// NewSearchAugmenter creates an augmenter whose ladder is the verbatim message followed by
// each configured fallback prefix
func NewSearchAugmenter(
	searchService interfaces.SearchService,
	scraper interfaces.ContentScraper,
	analyzer interfaces.QueryAnalyzer,
	config *common.Config,
	logger arbor.ILogger,
) *SearchAugmenter {
	ladder := []QueryTransform{Verbatim}
	for _, prefix := range config.Augment.FallbackPrefixes {
		ladder = append(ladder, WithPrefix(prefix))
	}

	return &SearchAugmenter{
		searchService: searchService,
		scraper:       scraper,
		analyzer:      analyzer,
		ladder:        ladder,
		resultCount:   config.Search.ResultCount,
		retries:       config.Search.Retries,
		excerptLength: config.Augment.ExcerptLength,
		logger:        logger,
	}
}

// Augment walks the ladder until a search returns results, extracts every result page
// concurrently and appends the evidence to message. When nothing is found the message is
// returned unchanged with no sources. The only error is a search configuration error.
func (a *SearchAugmenter) Augment(ctx context.Context, message string) (string, []models.Source, error) {
	var results []models.SearchResult
	for rung, transform := range a.ladder {
		query := transform(message)
		found, err := a.searchService.Search(ctx, query, a.resultCount, a.retries)
		if err != nil {
			return message, []models.Source{}, err
		}
		if len(found) > 0 {
			a.logger.Debug().
				Int("rung", rung).
				Str("query", query).
				Int("results", len(found)).
				Msg("Search ladder produced results")
			results = found
			break
		}
	}

	if len(results) == 0 {
		a.logger.Warn().
			Int("rungs", len(a.ladder)).
			Msg("No search results on any rung, leaving prompt unmodified")
		return message, []models.Source{}, nil
	}

	sources := a.attachContent(ctx, results)

	a.logger.Info().
		Int("sources", len(sources)).
		Int("with_content", countWithContent(sources)).
		Msg("Prompt augmented with web evidence")

	return buildAugmentedPrompt(message, sources, a.excerptLength), sources, nil
}

// AugmentIfNeeded augments only when the analyzer says search is warranted.
// A configuration error is logged and the message passes through unchanged.
func (a *SearchAugmenter) AugmentIfNeeded(ctx context.Context, message string) (string, []models.Source, models.QueryAnalysis) {
	analysis := a.analyzer.Analyze(message)
	if !analysis.NeedsSearch {
		return message, []models.Source{}, analysis
	}

	prompt, sources, err := a.Augment(ctx, message)
	if err != nil {
		a.logger.Warn().Err(err).Msg("Automatic search augmentation skipped")
		return message, []models.Source{}, analysis
	}
	return prompt, sources, analysis
}

// attachContent scrapes every result and pairs content back by URL, keeping search order
func (a *SearchAugmenter) attachContent(ctx context.Context, results []models.SearchResult) []models.Source {
	urls := make([]string, len(results))
	for i, r := range results {
		urls[i] = r.URL
	}

	byURL := make(map[string]string, len(results))
	for _, scraped := range a.scraper.ScrapeMany(ctx, urls, len(urls)) {
		byURL[scraped.URL] = scraped.Content
	}

	sources := make([]models.Source, len(results))
	for i, r := range results {
		sources[i] = models.NewSource(r)
		sources[i].Content = byURL[r.URL]
	}
	return sources
}

func countWithContent(sources []models.Source) int {
	n := 0
	for _, s := range sources {
		if s.HasContent() {
			n++
		}
	}
	return n
}
