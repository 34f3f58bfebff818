package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/docvegas/internal/common"
	"github.com/ternarybob/docvegas/internal/interfaces"
	"google.golang.org/genai"
)

// ProviderType names a chat backend
type ProviderType string

const (
	ProviderDeepSeek ProviderType = "deepseek"
	ProviderOpenAI   ProviderType = "openai"
	ProviderGemini   ProviderType = "gemini"
	ProviderClaude   ProviderType = "claude"
)

// ErrUnknownProvider is returned for an explicit provider prefix that is not supported
var ErrUnknownProvider = errors.New("unknown LLM provider")

// prefixAliases maps "prefix/" model qualifiers to providers
var prefixAliases = map[string]ProviderType{
	"deepseek":  ProviderDeepSeek,
	"openai":    ProviderOpenAI,
	"gemini":    ProviderGemini,
	"google":    ProviderGemini,
	"claude":    ProviderClaude,
	"anthropic": ProviderClaude,
}

// modelPrefixes detects the provider from a bare model name
var modelPrefixes = []struct {
	prefix   string
	provider ProviderType
}{
	{"deepseek-", ProviderDeepSeek},
	{"gpt-", ProviderOpenAI},
	{"o1", ProviderOpenAI},
	{"o3", ProviderOpenAI},
	{"o4", ProviderOpenAI},
	{"gemini-", ProviderGemini},
	{"claude-", ProviderClaude},
}

// ProviderFactory builds and caches chat services per provider and model
type ProviderFactory struct {
	config *common.Config
	logger arbor.ILogger

	mu           sync.Mutex
	services     map[string]interfaces.LLMService
	geminiClient *genai.Client
}

var _ interfaces.LLMProvider = (*ProviderFactory)(nil)

// NewProviderFactory creates a new provider factory
func NewProviderFactory(config *common.Config, logger arbor.ILogger) *ProviderFactory {
	return &ProviderFactory{
		config:   config,
		logger:   logger,
		services: make(map[string]interfaces.LLMService),
	}
}

// DetectProvider resolves a provider name, a "provider/model" string or a bare model
// name. It returns the provider and the model, empty meaning the provider default.
//   - "" -> default provider
//   - "claude" -> Claude, default model
//   - "claude/claude-3-5-haiku-latest" -> Claude, that model
//   - "gemini-2.5-pro" -> Gemini, that model
//   - unrecognised bare names -> default provider, that model
func (f *ProviderFactory) DetectProvider(name string) (ProviderType, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ProviderType(f.config.LLM.DefaultProvider), "", nil
	}

	lower := strings.ToLower(name)
	if provider, ok := prefixAliases[lower]; ok {
		return provider, "", nil
	}

	if prefix, model, found := strings.Cut(name, "/"); found {
		provider, ok := prefixAliases[strings.ToLower(prefix)]
		if !ok {
			return "", "", fmt.Errorf("%w: %s", ErrUnknownProvider, prefix)
		}
		return provider, model, nil
	}

	for _, candidate := range modelPrefixes {
		if strings.HasPrefix(lower, candidate.prefix) {
			return candidate.provider, name, nil
		}
	}

	return ProviderType(f.config.LLM.DefaultProvider), name, nil
}

// Get returns the chat service for a provider name or model string. A provider whose
// API key cannot be resolved is an error.
func (f *ProviderFactory) Get(ctx context.Context, name string) (interfaces.LLMService, error) {
	provider, model, err := f.DetectProvider(name)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	cacheKey := string(provider) + "/" + model
	if svc, ok := f.services[cacheKey]; ok {
		return svc, nil
	}

	svc, err := f.create(ctx, provider, model)
	if err != nil {
		return nil, err
	}

	f.logger.Info().
		Str("provider", svc.Provider()).
		Str("model", svc.Model()).
		Msg("LLM service initialized")

	f.services[cacheKey] = svc
	return svc, nil
}

func (f *ProviderFactory) create(ctx context.Context, provider ProviderType, model string) (interfaces.LLMService, error) {
	temperature := f.config.LLM.Temperature
	timeout := common.ParseDuration(f.config.LLM.Timeout, 60*time.Second)

	switch provider {
	case ProviderDeepSeek:
		apiKey, err := common.ResolveAPIKey("deepseek_api_key", f.config.DeepSeek.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve DeepSeek API key: %w", err)
		}
		return NewOpenAIService(ProviderDeepSeek, apiKey, &f.config.DeepSeek, model, temperature, timeout, f.logger), nil

	case ProviderOpenAI:
		apiKey, err := common.ResolveAPIKey("openai_api_key", f.config.OpenAI.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve OpenAI API key: %w", err)
		}
		return NewOpenAIService(ProviderOpenAI, apiKey, &f.config.OpenAI, model, temperature, timeout, f.logger), nil

	case ProviderClaude:
		apiKey, err := common.ResolveAPIKey("anthropic_api_key", f.config.Claude.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve Anthropic API key: %w", err)
		}
		return NewClaudeService(apiKey, &f.config.Claude, model, temperature, timeout, f.logger), nil

	case ProviderGemini:
		client, err := f.getGeminiClient(ctx)
		if err != nil {
			return nil, err
		}
		if model == "" {
			model = f.config.Gemini.Model
		}
		return NewGeminiService(client, model, temperature, timeout, f.logger), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}
}

// getGeminiClient returns the shared Gemini client, creating it on first use. Callers hold f.mu.
func (f *ProviderFactory) getGeminiClient(ctx context.Context) (*genai.Client, error) {
	if f.geminiClient != nil {
		return f.geminiClient, nil
	}

	apiKey, err := common.ResolveAPIKey("gemini_api_key", f.config.Gemini.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve Gemini API key: %w", err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	f.geminiClient = client
	return client, nil
}
