package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"
	arbor_models "github.com/ternarybob/arbor/models"
	"github.com/ternarybob/docvegas/internal/common"
	"github.com/ternarybob/docvegas/internal/interfaces"
	"github.com/ternarybob/docvegas/internal/services/audit"
	"github.com/ternarybob/docvegas/internal/services/chat"
	"github.com/ternarybob/docvegas/internal/services/pdf"
	"github.com/ternarybob/docvegas/internal/services/scraper"
	"github.com/ternarybob/docvegas/internal/services/search"
	"github.com/ternarybob/docvegas/internal/services/transform"
	"github.com/ternarybob/docvegas/internal/storage/badger"
)

func main() {
	var configFiles []string
	if configPath := os.Getenv("DOCVEGAS_CONFIG"); configPath != "" {
		configFiles = append(configFiles, configPath)
	} else if _, err := os.Stat("docvegas.toml"); err == nil {
		configFiles = append(configFiles, "docvegas.toml")
	}

	config, err := common.LoadFromFiles(configFiles...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// stdout carries the MCP protocol; keep logging minimal
	logger := arbor.NewLogger().WithConsoleWriter(arbor_models.WriterConfiguration{
		Type:       arbor_models.LogWriterTypeConsole,
		TimeFormat: "15:04:05",
	}).WithLevelFromString("warn")

	searchService := search.NewBraveService(&config.Search, logger)
	contentScraper := scraper.NewService(&config.Scraper, logger)
	analyzer := chat.NewQueryAnalyzer(&config.Query)
	augmenter := chat.NewSearchAugmenter(searchService, contentScraper, analyzer, config, logger)

	auditor, err := audit.NewAuditor(&config.Auditor, audit.NewLexiconScorer())
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid auditor configuration")
		os.Exit(1)
	}

	// The HTTP service may hold the Badger lock; audits still run, just without history
	var auditStorage interfaces.AuditStorage
	storageManager, err := badger.NewManager(logger, &config.Storage.Badger)
	if err != nil {
		logger.Warn().Err(err).Msg("Audit history unavailable, audits will not be persisted")
	} else {
		defer storageManager.Close()
		auditStorage = storageManager.AuditStorage()
	}

	auditService := audit.NewService(auditor, contentScraper, transform.NewService(logger), auditStorage, pdf.NewService(logger), logger)

	mcpServer := server.NewMCPServer(
		"docvegas",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(createAnalyzeQueryTool(), handleAnalyzeQuery(analyzer))
	mcpServer.AddTool(createWebSearchTool(), handleWebSearch(searchService, config.Search.ResultCount, logger))
	mcpServer.AddTool(createAugmentPromptTool(), handleAugmentPrompt(augmenter, logger))
	mcpServer.AddTool(createScrapeURLTool(), handleScrapeURL(contentScraper, logger))
	mcpServer.AddTool(createAuditPageTool(), handleAuditPage(auditService, logger))

	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Fatal().Err(err).Msg("MCP server failed")
	}
}
