package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/docvegas/internal/interfaces"
	"google.golang.org/genai"
)

// GeminiService implements interfaces.LLMService on the Gemini API
type GeminiService struct {
	client      *genai.Client
	model       string
	temperature float32
	timeout     time.Duration
	retry       *RetryConfig
	logger      arbor.ILogger
}

var _ interfaces.LLMService = (*GeminiService)(nil)

// NewGeminiService wraps an existing client; clients are shared per API key by the factory
func NewGeminiService(client *genai.Client, model string, temperature float64, timeout time.Duration, logger arbor.ILogger) *GeminiService {
	return &GeminiService{
		client:      client,
		model:       model,
		temperature: float32(temperature),
		timeout:     timeout,
		retry:       NewDefaultRetryConfig(),
		logger:      logger,
	}
}

func (s *GeminiService) Provider() string { return string(ProviderGemini) }

func (s *GeminiService) Model() string { return s.model }

// Chat sends the conversation; the first system message becomes the system instruction
func (s *GeminiService) Chat(ctx context.Context, messages []interfaces.Message) (string, error) {
	contents, systemText, err := convertMessagesToGemini(messages)
	if err != nil {
		return "", fmt.Errorf("failed to convert messages: %w", err)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(s.temperature),
	}
	if systemText != "" {
		config.SystemInstruction = genai.NewContentFromText(systemText, genai.RoleUser)
	}

	var resp *genai.GenerateContentResponse
	err = withRetry(ctx, s.retry, s.logger, s.Provider(), func() error {
		var callErr error
		resp, callErr = s.client.Models.GenerateContent(ctx, s.model, contents, config)
		return callErr
	})
	if err != nil {
		return "", fmt.Errorf("Gemini API call failed: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("empty response from Gemini API")
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty text in Gemini response")
	}

	return text, nil
}
