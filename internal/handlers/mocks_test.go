package handlers

import (
	"context"

	"github.com/ternarybob/docvegas/internal/models"
)

type mockChatService struct {
	chatFunc func(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error)
}

func (m *mockChatService) Chat(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error) {
	return m.chatFunc(ctx, req)
}

type mockAnalyzer struct {
	analysis models.QueryAnalysis
}

func (m *mockAnalyzer) Analyze(query string) models.QueryAnalysis {
	return m.analysis
}

type mockSearchService struct {
	searchFunc func(ctx context.Context, query string, count int, retries int) ([]models.SearchResult, error)
}

func (m *mockSearchService) Search(ctx context.Context, query string, count int, retries int) ([]models.SearchResult, error) {
	return m.searchFunc(ctx, query, count, retries)
}

type mockAugmenter struct {
	augmentFunc         func(ctx context.Context, message string) (string, []models.Source, error)
	augmentIfNeededFunc func(ctx context.Context, message string) (string, []models.Source, models.QueryAnalysis)
}

func (m *mockAugmenter) Augment(ctx context.Context, message string) (string, []models.Source, error) {
	return m.augmentFunc(ctx, message)
}

func (m *mockAugmenter) AugmentIfNeeded(ctx context.Context, message string) (string, []models.Source, models.QueryAnalysis) {
	return m.augmentIfNeededFunc(ctx, message)
}

type mockScraper struct {
	scrapeManyFunc func(ctx context.Context, urls []string, maxResults int) []*models.ScrapedContent
}

func (m *mockScraper) Extract(ctx context.Context, url string) *models.ScrapedContent { return nil }

func (m *mockScraper) ScrapeMany(ctx context.Context, urls []string, maxResults int) []*models.ScrapedContent {
	return m.scrapeManyFunc(ctx, urls, maxResults)
}

func (m *mockScraper) FetchHTML(ctx context.Context, url string) (string, error) { return "", nil }

type mockAuditService struct {
	auditPageFunc  func(ctx context.Context, req *models.AuditRequest) (*models.AuditRecord, error)
	getAuditFunc   func(ctx context.Context, id string) (*models.AuditRecord, error)
	listAuditsFunc func(ctx context.Context, url string, limit int) ([]*models.AuditRecord, error)
	exportPDFFunc  func(ctx context.Context, id string) ([]byte, error)
}

func (m *mockAuditService) AuditPage(ctx context.Context, req *models.AuditRequest) (*models.AuditRecord, error) {
	return m.auditPageFunc(ctx, req)
}

func (m *mockAuditService) GetAudit(ctx context.Context, id string) (*models.AuditRecord, error) {
	return m.getAuditFunc(ctx, id)
}

func (m *mockAuditService) ListAudits(ctx context.Context, url string, limit int) ([]*models.AuditRecord, error) {
	return m.listAuditsFunc(ctx, url, limit)
}

func (m *mockAuditService) ExportPDF(ctx context.Context, id string) ([]byte, error) {
	return m.exportPDFFunc(ctx, id)
}
