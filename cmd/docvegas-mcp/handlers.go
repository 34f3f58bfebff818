package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/docvegas/internal/interfaces"
	"github.com/ternarybob/docvegas/internal/models"
	"github.com/ternarybob/docvegas/internal/services/scraper"
	"github.com/ternarybob/docvegas/internal/services/search"
)

// handleAnalyzeQuery implements the analyze_query tool
func handleAnalyzeQuery(analyzer interfaces.QueryAnalyzer) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("query")
		if err != nil || query == "" {
			return mcp.NewToolResultError("Error: query parameter is required"), nil
		}

		return mcp.NewToolResultText(formatAnalysis(analyzer.Analyze(query))), nil
	}
}

// handleWebSearch implements the web_search tool
func handleWebSearch(searchService interfaces.SearchService, defaultCount int, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("query")
		if err != nil || query == "" {
			return mcp.NewToolResultError("Error: query parameter is required"), nil
		}

		count := request.GetInt("count", defaultCount)

		results, err := searchService.Search(ctx, query, count, 0)
		if err != nil {
			logger.Error().Err(err).Str("query", query).Msg("Search failed")
			return mcp.NewToolResultError(fmt.Sprintf("Search error: %v", err)), nil
		}
		if len(results) == 0 {
			return mcp.NewToolResultText(fmt.Sprintf("No results found for %q.", query)), nil
		}

		return mcp.NewToolResultText(search.FormatResultsForContext(results)), nil
	}
}

// handleAugmentPrompt implements the augment_prompt tool
func handleAugmentPrompt(augmenter interfaces.AugmentationService, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		message, err := request.RequireString("message")
		if err != nil || message == "" {
			return mcp.NewToolResultError("Error: message parameter is required"), nil
		}

		var (
			prompt  string
			sources []models.Source
		)
		if request.GetBool("force", true) {
			prompt, sources, err = augmenter.Augment(ctx, message)
			if err != nil {
				logger.Error().Err(err).Msg("Augmentation failed")
				if errors.Is(err, search.ErrMissingAPIKey) {
					return mcp.NewToolResultError("Search is not configured: set BRAVE_API_KEY"), nil
				}
				return mcp.NewToolResultError(fmt.Sprintf("Augmentation error: %v", err)), nil
			}
		} else {
			prompt, sources, _ = augmenter.AugmentIfNeeded(ctx, message)
		}

		return mcp.NewToolResultText(formatAugmented(prompt, sources)), nil
	}
}

// handleScrapeURL implements the scrape_url tool
func handleScrapeURL(contentScraper interfaces.ContentScraper, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil || url == "" {
			return mcp.NewToolResultError("Error: url parameter is required"), nil
		}

		content := contentScraper.Extract(ctx, url)
		if content == nil {
			logger.Warn().Str("url", url).Msg("Scrape returned no content")
			return mcp.NewToolResultError(fmt.Sprintf("Could not extract content from %s", url)), nil
		}

		return mcp.NewToolResultText(scraper.FormatScrapedContent([]*models.ScrapedContent{content})), nil
	}
}

// handleAuditPage implements the audit_page tool
func handleAuditPage(auditService interfaces.AuditService, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		persist := request.GetBool("persist", true)
		req := &models.AuditRequest{
			URL:      request.GetString("url", ""),
			Content:  request.GetString("content", ""),
			Keywords: request.GetStringSlice("keywords", nil),
			Persist:  &persist,
		}
		if req.URL == "" && req.Content == "" {
			return mcp.NewToolResultError("Error: url or content is required"), nil
		}

		record, err := auditService.AuditPage(ctx, req)
		if err != nil {
			logger.Error().Err(err).Str("url", req.URL).Msg("Audit failed")
			return mcp.NewToolResultError(fmt.Sprintf("Audit error: %v", err)), nil
		}

		return mcp.NewToolResultText(formatAudit(record)), nil
	}
}
