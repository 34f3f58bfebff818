package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/docvegas/internal/common"
	"github.com/ternarybob/docvegas/internal/interfaces"
	"github.com/ternarybob/docvegas/internal/models"
	"golang.org/x/net/html/charset"
	"golang.org/x/sync/errgroup"
)

// Service implements interfaces.ContentScraper over plain HTTP GETs.
// JavaScript is never executed; pages are treated as static HTML.
type Service struct {
	config     *common.ScraperConfig
	httpClient *http.Client
	limiter    *common.RateLimiter
	timeout    time.Duration
	logger     arbor.ILogger
}

// Option configures the Service
type Option func(*Service)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(s *Service) {
		s.httpClient = httpClient
	}
}

// WithRateLimiter replaces the limiter built from min_interval
func WithRateLimiter(limiter *common.RateLimiter) Option {
	return func(s *Service) {
		s.limiter = limiter
	}
}

// NewService creates a content scraper with its own rate limiter
func NewService(config *common.ScraperConfig, logger arbor.ILogger, opts ...Option) *Service {
	s := &Service{
		config:     config,
		httpClient: &http.Client{},
		limiter:    common.NewRateLimiter(common.ParseDuration(config.MinInterval, 500*time.Millisecond)),
		timeout:    common.ParseDuration(config.RequestTimeout, 10*time.Second),
		logger:     logger,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

var _ interfaces.ContentScraper = (*Service)(nil)

// Extract fetches pageURL and returns its cleaned content, or nil on any failure
func (s *Service) Extract(ctx context.Context, pageURL string) *models.ScrapedContent {
	html, err := s.FetchHTML(ctx, pageURL)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("url", pageURL).
			Msg("Failed to fetch page")
		return nil
	}

	content, err := ExtractContent(html, pageURL, ExtractOptions{
		MaxContentLength: s.config.MaxContentLength,
		MinMainContent:   s.config.MinMainContent,
	})
	if err != nil {
		if errors.Is(err, ErrNoContent) {
			s.logger.Debug().Str("url", pageURL).Msg("Page has no extractable content")
		} else {
			s.logger.Warn().Err(err).Str("url", pageURL).Msg("Failed to extract page content")
		}
		return nil
	}

	s.logger.Debug().
		Str("url", pageURL).
		Str("title", content.Title).
		Int("content_length", content.ContentLength).
		Bool("truncated", content.Truncated()).
		Msg("Page content extracted")

	return content
}

// FetchHTML performs one rate-limited GET with its own timeout and returns the decoded body
func (s *Service) FetchHTML(ctx context.Context, pageURL string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(fetchCtx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	userAgent := s.config.UserAgent
	if userAgent == "" {
		userAgent = common.DefaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body := io.Reader(resp.Body)
	if s.config.MaxBodySize > 0 {
		body = io.LimitReader(body, s.config.MaxBodySize)
	}

	reader, err := charset.NewReader(body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("failed to decode body: %w", err)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read body: %w", err)
	}

	return string(data), nil
}

// ScrapeMany extracts the first maxResults URLs concurrently. A non-positive maxResults
// falls back to the configured fan-out, and to every URL when that is unset too.
// Every fetch is started before any result is awaited; failures are omitted and
// successes keep input order.
func (s *Service) ScrapeMany(ctx context.Context, urls []string, maxResults int) []*models.ScrapedContent {
	if maxResults <= 0 {
		maxResults = s.config.MaxResults
	}
	if maxResults > 0 && len(urls) > maxResults {
		urls = urls[:maxResults]
	}

	slots := make([]*models.ScrapedContent, len(urls))
	var g errgroup.Group
	for i, pageURL := range urls {
		g.Go(func() error {
			slots[i] = s.Extract(ctx, pageURL)
			return nil
		})
	}
	_ = g.Wait()

	results := make([]*models.ScrapedContent, 0, len(slots))
	for _, content := range slots {
		if content != nil {
			results = append(results, content)
		}
	}

	s.logger.Debug().
		Int("requested", len(urls)).
		Int("scraped", len(results)).
		Msg("Scrape fan-out completed")

	return results
}
