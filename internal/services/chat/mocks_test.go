package chat

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/ternarybob/docvegas/internal/interfaces"
	"github.com/ternarybob/docvegas/internal/models"
)

type mockSearchService struct {
	mock.Mock
}

func (m *mockSearchService) Search(ctx context.Context, query string, count int, retries int) ([]models.SearchResult, error) {
	args := m.Called(ctx, query, count, retries)
	results, _ := args.Get(0).([]models.SearchResult)
	return results, args.Error(1)
}

type mockScraper struct {
	mock.Mock
}

func (m *mockScraper) Extract(ctx context.Context, url string) *models.ScrapedContent {
	args := m.Called(ctx, url)
	content, _ := args.Get(0).(*models.ScrapedContent)
	return content
}

func (m *mockScraper) ScrapeMany(ctx context.Context, urls []string, maxResults int) []*models.ScrapedContent {
	args := m.Called(ctx, urls, maxResults)
	contents, _ := args.Get(0).([]*models.ScrapedContent)
	return contents
}

func (m *mockScraper) FetchHTML(ctx context.Context, url string) (string, error) {
	args := m.Called(ctx, url)
	return args.String(0), args.Error(1)
}

type mockAugmenter struct {
	mock.Mock
}

func (m *mockAugmenter) Augment(ctx context.Context, message string) (string, []models.Source, error) {
	args := m.Called(ctx, message)
	sources, _ := args.Get(1).([]models.Source)
	return args.String(0), sources, args.Error(2)
}

func (m *mockAugmenter) AugmentIfNeeded(ctx context.Context, message string) (string, []models.Source, models.QueryAnalysis) {
	args := m.Called(ctx, message)
	sources, _ := args.Get(1).([]models.Source)
	return args.String(0), sources, args.Get(2).(models.QueryAnalysis)
}

type mockLLM struct {
	mock.Mock
}

func (m *mockLLM) Chat(ctx context.Context, messages []interfaces.Message) (string, error) {
	args := m.Called(ctx, messages)
	return args.String(0), args.Error(1)
}

func (m *mockLLM) Provider() string { return "mock" }

func (m *mockLLM) Model() string { return "mock-model" }

type mockLLMProvider struct {
	mock.Mock
}

func (m *mockLLMProvider) Get(ctx context.Context, name string) (interfaces.LLMService, error) {
	args := m.Called(ctx, name)
	svc, _ := args.Get(0).(interfaces.LLMService)
	return svc, args.Error(1)
}
