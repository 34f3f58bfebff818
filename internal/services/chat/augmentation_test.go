package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/docvegas/internal/common"
	"github.com/ternarybob/docvegas/internal/models"
)

func newTestAugmenter(search *mockSearchService, scraper *mockScraper) *SearchAugmenter {
	cfg := common.NewDefaultConfig()
	return NewSearchAugmenter(search, scraper, NewQueryAnalyzer(&cfg.Query), cfg, arbor.NewLogger())
}

func TestAugment_EscalatesToBroaderQuery(t *testing.T) {
	search := &mockSearchService{}
	scraper := &mockScraper{}

	message := "best local ranking tactics"
	results := []models.SearchResult{
		{Title: "Marketing Guide", URL: "https://a.example/guide", Snippet: "guide snippet"},
		{Title: "Ranking Blog", URL: "https://b.example/blog", Snippet: "blog snippet"},
	}

	search.On("Search", mock.Anything, message, 5, 2).Return([]models.SearchResult{}, nil).Once()
	search.On("Search", mock.Anything, "Las Vegas SEO "+message, 5, 2).Return([]models.SearchResult{}, nil).Once()
	search.On("Search", mock.Anything, "digital marketing "+message, 5, 2).Return(results, nil).Once()
	scraper.On("ScrapeMany", mock.Anything, []string{"https://a.example/guide", "https://b.example/blog"}, 2).
		Return([]*models.ScrapedContent{
			{URL: "https://a.example/guide", Title: "Marketing Guide", Content: "Extracted guide text."},
		})

	prompt, sources, err := newTestAugmenter(search, scraper).Augment(context.Background(), message)
	require.NoError(t, err)

	require.Len(t, sources, 2)
	assert.Equal(t, "https://a.example/guide", sources[0].URL)
	assert.Equal(t, "Extracted guide text.", sources[0].Content)
	assert.Equal(t, "https://b.example/blog", sources[1].URL)
	assert.Empty(t, sources[1].Content)

	expected := message + "\n\n" +
		"Here is some relevant information from trusted sources:\n\n" +
		"From Marketing Guide:\nExtracted guide text....\n\n" +
		"From Ranking Blog:\nblog snippet\n\n"
	assert.Equal(t, expected, prompt)

	search.AssertExpectations(t)
	scraper.AssertExpectations(t)
}

func TestAugment_StopsAtFirstNonEmptyRung(t *testing.T) {
	search := &mockSearchService{}
	scraper := &mockScraper{}

	results := []models.SearchResult{{Title: "Hit", URL: "https://hit.example", Snippet: "snip"}}
	search.On("Search", mock.Anything, "vegas seo", 5, 2).Return(results, nil).Once()
	scraper.On("ScrapeMany", mock.Anything, []string{"https://hit.example"}, 1).Return([]*models.ScrapedContent{})

	prompt, sources, err := newTestAugmenter(search, scraper).Augment(context.Background(), "vegas seo")
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Contains(t, prompt, "From Hit:\nsnip\n\n")

	search.AssertNumberOfCalls(t, "Search", 1)
}

func TestAugment_AllRungsEmptyReturnsMessageUnchanged(t *testing.T) {
	search := &mockSearchService{}
	scraper := &mockScraper{}
	search.On("Search", mock.Anything, mock.Anything, 5, 2).Return([]models.SearchResult{}, nil)

	prompt, sources, err := newTestAugmenter(search, scraper).Augment(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, "anything", prompt)
	assert.NotNil(t, sources)
	assert.Empty(t, sources)

	search.AssertNumberOfCalls(t, "Search", 3)
	scraper.AssertNotCalled(t, "ScrapeMany", mock.Anything, mock.Anything, mock.Anything)
}

func TestAugment_ConfigurationErrorSurfaces(t *testing.T) {
	search := &mockSearchService{}
	scraper := &mockScraper{}
	missingKey := errors.New("no key")
	search.On("Search", mock.Anything, "anything", 5, 2).Return(nil, missingKey)

	prompt, sources, err := newTestAugmenter(search, scraper).Augment(context.Background(), "anything")
	assert.ErrorIs(t, err, missingKey)
	assert.Equal(t, "anything", prompt)
	assert.Empty(t, sources)
}

func TestAugment_ExcerptIsBounded(t *testing.T) {
	search := &mockSearchService{}
	scraper := &mockScraper{}

	long := strings.Repeat("x", 1500)
	search.On("Search", mock.Anything, "q", 5, 2).Return([]models.SearchResult{{Title: "Long", URL: "https://l.example"}}, nil)
	scraper.On("ScrapeMany", mock.Anything, mock.Anything, 1).
		Return([]*models.ScrapedContent{{URL: "https://l.example", Content: long}})

	prompt, sources, err := newTestAugmenter(search, scraper).Augment(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, long, sources[0].Content)
	assert.Contains(t, prompt, "From Long:\n"+strings.Repeat("x", 1000)+"...\n\n")
	assert.NotContains(t, prompt, strings.Repeat("x", 1001))
}

func TestAugmentIfNeeded(t *testing.T) {
	t.Run("skips search when not warranted", func(t *testing.T) {
		search := &mockSearchService{}
		scraper := &mockScraper{}

		prompt, sources, analysis := newTestAugmenter(search, scraper).
			AugmentIfNeeded(context.Background(), "How do I optimize my meta tags?")

		assert.False(t, analysis.NeedsSearch)
		assert.Equal(t, "How do I optimize my meta tags?", prompt)
		assert.Empty(t, sources)
		search.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("degrades on configuration error", func(t *testing.T) {
		search := &mockSearchService{}
		scraper := &mockScraper{}
		search.On("Search", mock.Anything, mock.Anything, 5, 2).Return(nil, errors.New("no key"))

		prompt, sources, analysis := newTestAugmenter(search, scraper).
			AugmentIfNeeded(context.Background(), "latest news")

		assert.True(t, analysis.NeedsSearch)
		assert.Equal(t, "latest news", prompt)
		assert.Empty(t, sources)
	})
}

func TestLadderTransforms(t *testing.T) {
	assert.Equal(t, "msg", Verbatim("msg"))
	assert.Equal(t, "Las Vegas SEO msg", WithPrefix("Las Vegas SEO ")("msg"))
}
