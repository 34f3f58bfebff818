package audit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/docvegas/internal/common"
	"github.com/ternarybob/docvegas/internal/interfaces"
	"github.com/ternarybob/docvegas/internal/models"
)

// DefaultListLimit caps audit history listings when the caller gives no limit
const DefaultListLimit = 20

var (
	// ErrInvalidRequest wraps request validation failures
	ErrInvalidRequest = errors.New("invalid audit request")
	// ErrEmptyContent is returned when nothing auditable could be derived from the request
	ErrEmptyContent = errors.New("no auditable content")
	// ErrFetchFailed is returned when the page to audit could not be downloaded
	ErrFetchFailed = errors.New("failed to fetch page")
	// ErrStorageDisabled is returned by history operations when no storage is configured
	ErrStorageDisabled = errors.New("audit storage is not configured")
)

// Service runs page audits: fetch, convert, measure, report and persist
type Service struct {
	auditor     interfaces.ContentAuditor
	scraper     interfaces.ContentScraper
	transformer interfaces.ContentTransformer
	storage     interfaces.AuditStorage
	pdf         interfaces.PDFService
	validate    *validator.Validate
	logger      arbor.ILogger
}

// NewService creates an audit service. storage and pdf may be nil, which disables
// history and PDF export respectively.
func NewService(
	auditor interfaces.ContentAuditor,
	scraper interfaces.ContentScraper,
	transformer interfaces.ContentTransformer,
	storage interfaces.AuditStorage,
	pdf interfaces.PDFService,
	logger arbor.ILogger,
) *Service {
	return &Service{
		auditor:     auditor,
		scraper:     scraper,
		transformer: transformer,
		storage:     storage,
		pdf:         pdf,
		validate:    validator.New(),
		logger:      logger,
	}
}

var _ interfaces.AuditService = (*Service)(nil)

// AuditPage audits the request's content, fetching and converting the page as needed
func (s *Service) AuditPage(ctx context.Context, req *models.AuditRequest) (*models.AuditRecord, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is required", ErrInvalidRequest)
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if req.URL == "" && strings.TrimSpace(req.HTML) == "" && strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: one of url, html or content is required", ErrInvalidRequest)
	}

	html := req.HTML
	content := req.Content

	if strings.TrimSpace(html) == "" && strings.TrimSpace(content) == "" {
		s.logger.Debug().Str("url", req.URL).Msg("Fetching page for audit")
		fetched, err := s.scraper.FetchHTML(ctx, req.URL)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
		}
		html = fetched
	}

	if strings.TrimSpace(content) == "" {
		text, err := s.transformer.HTMLToText(html, req.URL)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEmptyContent, err)
		}
		content = text
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	auditor := s.auditor
	if len(req.Keywords) > 0 {
		auditor = auditor.WithKeywords(req.Keywords)
	}

	metrics := auditor.Analyze(content, html)
	record := &models.AuditRecord{
		ID:        common.NewAuditID(),
		URL:       req.URL,
		Title:     pageTitle(html),
		Metrics:   *metrics,
		Report:    auditor.GenerateReport(metrics),
		CreatedAt: time.Now().UTC(),
	}

	s.logger.Info().
		Str("audit_id", record.ID).
		Str("url", record.URL).
		Int("word_count", metrics.WordCount).
		Int("issues", len(metrics.ContentIssues)).
		Msg("Page audit completed")

	if req.ShouldPersist() && s.storage != nil {
		if err := s.storage.SaveAudit(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to persist audit: %w", err)
		}
	}

	return record, nil
}

// GetAudit returns a stored audit
func (s *Service) GetAudit(ctx context.Context, id string) (*models.AuditRecord, error) {
	if s.storage == nil {
		return nil, ErrStorageDisabled
	}
	return s.storage.GetAudit(ctx, id)
}

// ListAudits returns stored audits newest first, optionally for one URL
func (s *Service) ListAudits(ctx context.Context, url string, limit int) ([]*models.AuditRecord, error) {
	if s.storage == nil {
		return nil, ErrStorageDisabled
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return s.storage.ListAudits(ctx, url, limit)
}

// ExportPDF renders a stored audit's markdown report as a PDF
func (s *Service) ExportPDF(ctx context.Context, id string) ([]byte, error) {
	if s.pdf == nil {
		return nil, fmt.Errorf("pdf export is not configured")
	}

	record, err := s.GetAudit(ctx, id)
	if err != nil {
		return nil, err
	}

	title := "Content Audit"
	if record.Title != "" {
		title += ": " + record.Title
	}

	markdown := s.auditor.GenerateMarkdownReport(&record.Metrics, record.URL)
	pdfBytes, err := s.pdf.ConvertMarkdownToPDF(markdown, title)
	if err != nil {
		return nil, fmt.Errorf("failed to render audit pdf: %w", err)
	}
	return pdfBytes, nil
}

// pageTitle returns the trimmed <title> text, empty when there is none
func pageTitle(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Find("title").First().Text()), " ")
}
