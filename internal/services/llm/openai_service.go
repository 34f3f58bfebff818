package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/docvegas/internal/common"
	"github.com/ternarybob/docvegas/internal/interfaces"
)

// OpenAIService talks to OpenAI-compatible chat completion APIs (DeepSeek, OpenAI)
type OpenAIService struct {
	provider    ProviderType
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
	timeout     time.Duration
	retry       *RetryConfig
	logger      arbor.ILogger
}

var _ interfaces.LLMService = (*OpenAIService)(nil)

// NewOpenAIService creates a chat client against config.BaseURL. An empty model uses config.Model.
func NewOpenAIService(
	provider ProviderType,
	apiKey string,
	config *common.OpenAIConfig,
	model string,
	temperature float64,
	timeout time.Duration,
	logger arbor.ILogger,
) *OpenAIService {
	clientConfig := openai.DefaultConfig(apiKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	if model == "" {
		model = config.Model
	}

	return &OpenAIService{
		provider:    provider,
		client:      openai.NewClientWithConfig(clientConfig),
		model:       model,
		maxTokens:   config.MaxTokens,
		temperature: float32(temperature),
		timeout:     timeout,
		retry:       NewDefaultRetryConfig(),
		logger:      logger,
	}
}

func (s *OpenAIService) Provider() string { return string(s.provider) }

func (s *OpenAIService) Model() string { return s.model }

// Chat sends the conversation and returns the first choice's content
func (s *OpenAIService) Chat(ctx context.Context, messages []interfaces.Message) (string, error) {
	converted, err := convertMessagesToOpenAI(messages)
	if err != nil {
		return "", fmt.Errorf("failed to convert messages: %w", err)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	req := openai.ChatCompletionRequest{
		Model:       s.model,
		Messages:    converted,
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
	}

	start := time.Now()
	var resp openai.ChatCompletionResponse
	err = withRetry(ctx, s.retry, s.logger, s.Provider(), func() error {
		var callErr error
		resp, callErr = s.client.CreateChatCompletion(ctx, req)
		return callErr
	})
	if err != nil {
		return "", fmt.Errorf("%s API call failed: %w", s.provider, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from %s API", s.provider)
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("empty text in %s response", s.provider)
	}

	s.logger.Debug().
		Str("provider", s.Provider()).
		Str("model", s.model).
		Int("total_tokens", resp.Usage.TotalTokens).
		Dur("duration", time.Since(start)).
		Msg("Chat completion received")

	return content, nil
}
