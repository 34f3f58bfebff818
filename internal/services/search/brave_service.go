package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/docvegas/internal/common"
	"github.com/ternarybob/docvegas/internal/interfaces"
	"github.com/ternarybob/docvegas/internal/models"
)

// ErrMissingAPIKey is returned when no provider credential is configured
var ErrMissingAPIKey = errors.New("search provider API key is not configured")

// errRateLimited marks a 429 that survived the single re-issue
var errRateLimited = errors.New("search provider rate limit exceeded")

const maxResponseBytes = 2 * 1024 * 1024

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// braveResponse is the subset of the Brave web search payload we consume
type braveResponse struct {
	Web struct {
		Results []braveResult `json:"results"`
	} `json:"web"`
}

type braveResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// BraveService implements interfaces.SearchService against the Brave web search API
type BraveService struct {
	config     *common.SearchConfig
	apiKey     string
	httpClient *http.Client
	limiter    *common.RateLimiter
	backoff    time.Duration // Sleep after a 429
	retryPause time.Duration // Pause between failed attempts
	logger     arbor.ILogger
}

// Option configures the BraveService
type Option func(*BraveService)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(s *BraveService) {
		s.httpClient = httpClient
	}
}

// WithRateLimiter replaces the limiter built from min_interval
func WithRateLimiter(limiter *common.RateLimiter) Option {
	return func(s *BraveService) {
		s.limiter = limiter
	}
}

// WithPauses overrides the 429 backoff and the pause between failed attempts
func WithPauses(backoff, retryPause time.Duration) Option {
	return func(s *BraveService) {
		s.backoff = backoff
		s.retryPause = retryPause
	}
}

// WithAPIKey sets the credential directly, bypassing environment resolution
func WithAPIKey(apiKey string) Option {
	return func(s *BraveService) {
		s.apiKey = apiKey
	}
}

// NewBraveService creates a search client. A missing API key is not an error here;
// Search reports it when a caller actually asks for results.
func NewBraveService(config *common.SearchConfig, logger arbor.ILogger, opts ...Option) *BraveService {
	apiKey, err := common.ResolveAPIKey("brave_api_key", config.APIKey)
	if err != nil {
		logger.Warn().Msg("Brave API key not configured - web search requests will fail")
	}

	s := &BraveService{
		config: config,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: common.ParseDuration(config.RequestTimeout, 15*time.Second),
		},
		limiter:    common.NewRateLimiter(common.ParseDuration(config.MinInterval, time.Second)),
		backoff:    common.ParseDuration(config.RateLimitBackoff, 2*time.Second),
		retryPause: common.ParseDuration(config.RetryPause, time.Second),
		logger:     logger,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

var _ interfaces.SearchService = (*BraveService)(nil)

// Search queries the provider. Transient failures are retried up to retries attempts
// with a pause between them, then degrade to an empty slice and a nil error.
func (s *BraveService) Search(ctx context.Context, query string, count int, retries int) ([]models.SearchResult, error) {
	if s.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return []models.SearchResult{}, nil
	}

	count = s.clampCount(count)
	if retries <= 0 {
		retries = s.config.Retries
	}
	if retries <= 0 {
		retries = 1
	}

	for attempt := 1; attempt <= retries; attempt++ {
		results, err := s.fetch(ctx, query, count, true)
		if err == nil {
			s.logger.Debug().
				Str("query", query).
				Int("results", len(results)).
				Int("attempt", attempt).
				Msg("Search completed")
			return results, nil
		}

		if ctx.Err() != nil {
			s.logger.Warn().Err(ctx.Err()).Str("query", query).Msg("Search abandoned")
			return []models.SearchResult{}, nil
		}

		s.logger.Warn().
			Err(err).
			Str("query", query).
			Int("attempt", attempt).
			Int("max_attempts", retries).
			Msg("Search attempt failed")

		if attempt < retries {
			if err := sleep(ctx, s.retryPause); err != nil {
				return []models.SearchResult{}, nil
			}
		}
	}

	s.logger.Warn().
		Str("query", query).
		Int("max_attempts", retries).
		Msg("All search attempts exhausted, returning no results")

	return []models.SearchResult{}, nil
}

func (s *BraveService) clampCount(count int) int {
	if count <= 0 {
		count = s.config.ResultCount
	}
	if s.config.MaxResultCount > 0 && count > s.config.MaxResultCount {
		count = s.config.MaxResultCount
	}
	if count <= 0 {
		count = 5
	}
	return count
}

// fetch issues one request. A 429 sleeps the backoff and re-issues the same request once
// when allowReissue is set; that re-issue does not count as an attempt.
func (s *BraveService) fetch(ctx context.Context, query string, count int, allowReissue bool) ([]models.SearchResult, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("count", strconv.Itoa(count))
	if s.config.SearchLang != "" {
		params.Set("search_lang", s.config.SearchLang)
	}
	if s.config.SafeSearch != "" {
		params.Set("safesearch", s.config.SafeSearch)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.config.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		if !allowReissue {
			return nil, errRateLimited
		}
		s.logger.Warn().
			Dur("backoff", s.backoff).
			Str("query", query).
			Msg("Search provider rate limited, backing off")
		if err := sleep(ctx, s.backoff); err != nil {
			return nil, err
		}
		return s.fetch(ctx, query, count, false)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("search provider returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload braveResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	return normalizeResults(payload.Web.Results, count), nil
}

// normalizeResults keeps the top count raw entries and drops any without a title or absolute URL
func normalizeResults(raw []braveResult, count int) []models.SearchResult {
	if len(raw) > count {
		raw = raw[:count]
	}

	results := make([]models.SearchResult, 0, len(raw))
	for _, r := range raw {
		title := cleanText(r.Title)
		link := strings.TrimSpace(r.URL)
		if title == "" || !isAbsoluteURL(link) {
			continue
		}
		results = append(results, models.SearchResult{
			Title:   title,
			URL:     link,
			Snippet: cleanText(r.Description),
		})
	}
	return results
}

// cleanText strips provider highlight markup and entities
func cleanText(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(html.UnescapeString(s))
}

func isAbsoluteURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	return err == nil && u.IsAbs() && u.Host != ""
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
