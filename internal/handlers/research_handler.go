package handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/docvegas/internal/interfaces"
	"github.com/ternarybob/docvegas/internal/models"
	"github.com/ternarybob/docvegas/internal/services/scraper"
	"github.com/ternarybob/docvegas/internal/services/search"
)

// maxScrapeURLs bounds a single scrape request
const maxScrapeURLs = 10

type analyzeRequest struct {
	Query string `json:"query" validate:"required"`
}

type searchRequest struct {
	Query string `json:"query" validate:"required"`
	Count int    `json:"count" validate:"min=0"`
}

type augmentRequest struct {
	Message string `json:"message" validate:"required"`
	Force   bool   `json:"force"` // Skip the query analyzer and always search
}

type scrapeRequest struct {
	URLs       []string `json:"urls" validate:"required,min=1,max=10,dive,url"`
	MaxResults int      `json:"max_results" validate:"min=0"`
}

// ResearchHandler exposes query analysis, web search, prompt augmentation and scraping
type ResearchHandler struct {
	analyzer  interfaces.QueryAnalyzer
	search    interfaces.SearchService
	augmenter interfaces.AugmentationService
	scraper   interfaces.ContentScraper
	validate  *validator.Validate
	logger    arbor.ILogger
}

// NewResearchHandler creates a new research handler
func NewResearchHandler(
	analyzer interfaces.QueryAnalyzer,
	searchService interfaces.SearchService,
	augmenter interfaces.AugmentationService,
	contentScraper interfaces.ContentScraper,
	logger arbor.ILogger,
) *ResearchHandler {
	return &ResearchHandler{
		analyzer:  analyzer,
		search:    searchService,
		augmenter: augmenter,
		scraper:   contentScraper,
		validate:  validator.New(),
		logger:    logger,
	}
}

// decode reads and validates a request body, writing a 400 on failure
func (h *ResearchHandler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := DecodeJSON(r, dst); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// AnalyzeHandler handles POST /api/query/analyze
func (h *ResearchHandler) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req analyzeRequest
	if !h.decode(w, r, &req) {
		return
	}

	analysis := h.analyzer.Analyze(req.Query)
	WriteSuccess(w, map[string]interface{}{
		"analysis": analysis,
	})
}

// SearchHandler handles POST /api/search
func (h *ResearchHandler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req searchRequest
	if !h.decode(w, r, &req) {
		return
	}

	results, err := h.search.Search(r.Context(), req.Query, req.Count, 0)
	if err != nil {
		h.writeSearchError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"query":   req.Query,
		"count":   len(results),
		"results": results,
		"context": search.FormatResultsForContext(results),
	})
}

// AugmentHandler handles POST /api/augment
func (h *ResearchHandler) AugmentHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req augmentRequest
	if !h.decode(w, r, &req) {
		return
	}

	var (
		prompt   string
		sources  []models.Source
		analysis *models.QueryAnalysis
	)

	if req.Force {
		var err error
		prompt, sources, err = h.augmenter.Augment(r.Context(), req.Message)
		if err != nil {
			h.writeSearchError(w, err)
			return
		}
	} else {
		var a models.QueryAnalysis
		prompt, sources, a = h.augmenter.AugmentIfNeeded(r.Context(), req.Message)
		analysis = &a
	}

	WriteSuccess(w, map[string]interface{}{
		"prompt":    prompt,
		"sources":   sources,
		"augmented": len(sources) > 0,
		"analysis":  analysis,
	})
}

// ScrapeHandler handles POST /api/scrape
func (h *ResearchHandler) ScrapeHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req scrapeRequest
	if !h.decode(w, r, &req) {
		return
	}

	maxResults := req.MaxResults
	if maxResults <= 0 || maxResults > maxScrapeURLs {
		maxResults = len(req.URLs)
	}

	contents := h.scraper.ScrapeMany(r.Context(), req.URLs, maxResults)
	if contents == nil {
		contents = []*models.ScrapedContent{}
	}

	h.logger.Debug().
		Int("requested", len(req.URLs)).
		Int("scraped", len(contents)).
		Msg("Scrape request completed")

	WriteSuccess(w, map[string]interface{}{
		"count":    len(contents),
		"contents": contents,
		"context":  scraper.FormatScrapedContent(contents),
	})
}

func (h *ResearchHandler) writeSearchError(w http.ResponseWriter, err error) {
	if errors.Is(err, search.ErrMissingAPIKey) {
		h.logger.Error().Err(err).Msg("Search is not configured")
		WriteError(w, http.StatusServiceUnavailable, "Search is not configured: "+err.Error())
		return
	}
	h.logger.Error().Err(err).Msg("Search request failed")
	WriteError(w, http.StatusInternalServerError, err.Error())
}
