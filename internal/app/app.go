package app

import (
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/docvegas/internal/common"
	"github.com/ternarybob/docvegas/internal/handlers"
	"github.com/ternarybob/docvegas/internal/interfaces"
	"github.com/ternarybob/docvegas/internal/services/audit"
	"github.com/ternarybob/docvegas/internal/services/chat"
	"github.com/ternarybob/docvegas/internal/services/llm"
	"github.com/ternarybob/docvegas/internal/services/pdf"
	"github.com/ternarybob/docvegas/internal/services/scraper"
	"github.com/ternarybob/docvegas/internal/services/search"
	"github.com/ternarybob/docvegas/internal/services/transform"
	"github.com/ternarybob/docvegas/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager interfaces.StorageManager

	// Research pipeline
	SearchService  interfaces.SearchService
	Scraper        interfaces.ContentScraper
	QueryAnalyzer  interfaces.QueryAnalyzer
	Augmenter      interfaces.AugmentationService
	LLMProviders   *llm.ProviderFactory
	ChatService    interfaces.ChatService
	TransformSvc   *transform.Service
	AuditService   interfaces.AuditService
	PDFService     interfaces.PDFService
	ContentAuditor interfaces.ContentAuditor

	// HTTP handlers
	APIHandler      *handlers.APIHandler
	ChatHandler     *handlers.ChatHandler
	ResearchHandler *handlers.ResearchHandler
	AuditHandler    *handlers.AuditHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := app.initServices(); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.initHandlers()

	logger.Info().
		Str("search_provider", cfg.Search.Provider).
		Str("llm_provider", cfg.LLM.DefaultProvider).
		Bool("auto_search", cfg.Augment.AutoSearch).
		Msg("Application initialization complete")

	return app, nil
}

// initDatabase opens the Badger audit store
func (a *App) initDatabase() error {
	storageManager, err := badger.NewManager(a.Logger, &a.Config.Storage.Badger)
	if err != nil {
		return fmt.Errorf("failed to create storage manager: %w", err)
	}

	a.StorageManager = storageManager
	a.Logger.Debug().
		Str("storage", "badger").
		Str("path", a.Config.Storage.Badger.Path).
		Msg("Storage layer initialized")

	return nil
}

// initServices builds the research pipeline bottom-up
func (a *App) initServices() error {
	a.SearchService = search.NewBraveService(&a.Config.Search, a.Logger)
	a.Scraper = scraper.NewService(&a.Config.Scraper, a.Logger)
	a.QueryAnalyzer = chat.NewQueryAnalyzer(&a.Config.Query)
	a.Augmenter = chat.NewSearchAugmenter(a.SearchService, a.Scraper, a.QueryAnalyzer, a.Config, a.Logger)

	a.LLMProviders = llm.NewProviderFactory(a.Config, a.Logger)
	a.ChatService = chat.NewChatService(
		a.LLMProviders,
		a.Augmenter,
		a.Config.LLM.SystemPrompt,
		a.Config.Augment.AutoSearch,
		a.Logger,
	)

	auditor, err := audit.NewAuditor(&a.Config.Auditor, audit.NewLexiconScorer())
	if err != nil {
		return err
	}
	a.ContentAuditor = auditor
	a.TransformSvc = transform.NewService(a.Logger)
	a.PDFService = pdf.NewService(a.Logger)
	a.AuditService = audit.NewService(
		a.ContentAuditor,
		a.Scraper,
		a.TransformSvc,
		a.StorageManager.AuditStorage(),
		a.PDFService,
		a.Logger,
	)

	a.Logger.Debug().Msg("Services initialized")
	return nil
}

// initHandlers builds the HTTP handlers over the services
func (a *App) initHandlers() {
	a.APIHandler = handlers.NewAPIHandler(a.Logger)
	a.ChatHandler = handlers.NewChatHandler(a.ChatService, a.Logger)
	a.ResearchHandler = handlers.NewResearchHandler(a.QueryAnalyzer, a.SearchService, a.Augmenter, a.Scraper, a.Logger)
	a.AuditHandler = handlers.NewAuditHandler(a.AuditService, a.Logger)
}

// Close releases the audit store
func (a *App) Close() error {
	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
		a.Logger.Info().Msg("Storage closed")
	}

	return nil
}
