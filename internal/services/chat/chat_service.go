package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/docvegas/internal/interfaces"
	"github.com/ternarybob/docvegas/internal/models"
)

// ErrInvalidRequest wraps request validation failures
var ErrInvalidRequest = errors.New("invalid chat request")

// ChatService answers conversations through an LLM provider, grounding the last
// user message in web evidence when asked to (or when the analyzer decides to)
type ChatService struct {
	llmProvider  interfaces.LLMProvider
	augmenter    interfaces.AugmentationService
	validate     *validator.Validate
	systemPrompt string
	autoSearch   bool
	logger       arbor.ILogger
}

// NewChatService creates a new chat service
func NewChatService(
	llmProvider interfaces.LLMProvider,
	augmenter interfaces.AugmentationService,
	systemPrompt string,
	autoSearch bool,
	logger arbor.ILogger,
) *ChatService {
	return &ChatService{
		llmProvider:  llmProvider,
		augmenter:    augmenter,
		validate:     validator.New(),
		systemPrompt: systemPrompt,
		autoSearch:   autoSearch,
		logger:       logger,
	}
}

var _ interfaces.ChatService = (*ChatService)(nil)

// Chat implements the ChatService interface
func (s *ChatService) Chat(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	// Resolve the provider first so a missing key fails before any search traffic
	llm, err := s.llmProvider.Get(ctx, req.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve LLM provider: %w", err)
	}

	messages := make([]interfaces.Message, 0, len(req.Messages)+1)
	if s.systemPrompt != "" && req.Messages[0].Role != models.RoleSystem {
		messages = append(messages, interfaces.Message{Role: models.RoleSystem, Content: s.systemPrompt})
	}
	offset := len(messages)
	for _, m := range req.Messages {
		messages = append(messages, interfaces.Message{Role: m.Role, Content: m.Content})
	}

	sources := []models.Source{}
	searchPerformed := false

	if idx, last := req.LastUserMessage(); idx >= 0 {
		prompt := last
		switch {
		case req.UseSearch:
			augmented, found, err := s.augmenter.Augment(ctx, last)
			if err != nil {
				return nil, fmt.Errorf("search augmentation unavailable: %w", err)
			}
			prompt, sources, searchPerformed = augmented, found, true

		case s.autoSearch:
			augmented, found, analysis := s.augmenter.AugmentIfNeeded(ctx, last)
			prompt, sources, searchPerformed = augmented, found, analysis.NeedsSearch
			s.logger.Debug().
				Bool("needs_search", analysis.NeedsSearch).
				Float64("confidence", analysis.Confidence).
				Str("reasoning", analysis.Reasoning).
				Msg("Query analyzed")
		}
		messages[offset+idx].Content = prompt
	}

	reply, err := llm.Chat(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	s.logger.Info().
		Str("provider", llm.Provider()).
		Str("model", llm.Model()).
		Bool("search_performed", searchPerformed).
		Int("sources", len(sources)).
		Msg("Chat completed")

	return &models.ChatResponse{
		Response:        reply,
		Sources:         sources,
		SearchPerformed: searchPerformed,
		Model:           llm.Model(),
	}, nil
}
