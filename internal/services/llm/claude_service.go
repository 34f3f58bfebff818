package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/docvegas/internal/common"
	"github.com/ternarybob/docvegas/internal/interfaces"
)

// ClaudeService implements interfaces.LLMService on the Anthropic Messages API
type ClaudeService struct {
	client      anthropic.Client
	model       string
	maxTokens   int
	temperature float64
	timeout     time.Duration
	retry       *RetryConfig
	logger      arbor.ILogger
}

var _ interfaces.LLMService = (*ClaudeService)(nil)

// NewClaudeService creates a Claude chat client. An empty model uses config.Model.
func NewClaudeService(apiKey string, config *common.ClaudeConfig, model string, temperature float64, timeout time.Duration, logger arbor.ILogger, opts ...option.RequestOption) *ClaudeService {
	if model == "" {
		model = config.Model
	}
	maxTokens := config.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 2048
	}

	return &ClaudeService{
		client:      anthropic.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		timeout:     timeout,
		retry:       NewDefaultRetryConfig(),
		logger:      logger,
	}
}

func (s *ClaudeService) Provider() string { return string(ProviderClaude) }

func (s *ClaudeService) Model() string { return s.model }

// Chat sends the conversation; the first system message becomes the system prompt
func (s *ClaudeService) Chat(ctx context.Context, messages []interfaces.Message) (string, error) {
	claudeMessages, systemText, err := convertMessagesToClaude(messages)
	if err != nil {
		return "", fmt.Errorf("failed to convert messages: %w", err)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(s.model),
		MaxTokens: int64(s.maxTokens),
		Messages:  claudeMessages,
	}
	if s.temperature > 0 {
		params.Temperature = anthropic.Float(s.temperature)
	}
	if systemText != "" {
		params.System = []anthropic.TextBlockParam{{Text: systemText}}
	}

	var resp *anthropic.Message
	err = withRetry(ctx, s.retry, s.logger, s.Provider(), func() error {
		var callErr error
		resp, callErr = s.client.Messages.New(ctx, params)
		return callErr
	})
	if err != nil {
		return "", fmt.Errorf("Claude API call failed: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("empty response from Claude API")
	}

	return text.String(), nil
}
