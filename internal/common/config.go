package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string        `toml:"environment"` // "development" or "production"
	Server      ServerConfig  `toml:"server"`
	Logging     LoggingConfig `toml:"logging"`
	Storage     StorageConfig `toml:"storage"`
	Search      SearchConfig  `toml:"search"`
	Scraper     ScraperConfig `toml:"scraper"`
	Query       QueryConfig   `toml:"query"`
	Augment     AugmentConfig `toml:"augment"`
	Auditor     AuditorConfig `toml:"auditor"`
	LLM         LLMConfig     `toml:"llm"`
	DeepSeek    OpenAIConfig  `toml:"deepseek"`
	OpenAI      OpenAIConfig  `toml:"openai"`
	Gemini      GeminiConfig  `toml:"gemini"`
	Claude      ClaudeConfig  `toml:"claude"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"min=1,max=65535"`
	Host string `toml:"host"`
}

type LoggingConfig struct {
	Level      string   `toml:"level" validate:"omitempty,oneof=trace debug info warn error"`
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // default "15:04:05"
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

// SearchConfig configures the web search provider
type SearchConfig struct {
	Provider         string `toml:"provider" validate:"oneof=brave"`
	APIKey           string `toml:"api_key"`
	BaseURL          string `toml:"base_url" validate:"required,url"`
	ResultCount      int    `toml:"result_count" validate:"min=1"`     // Default results per query
	MaxResultCount   int    `toml:"max_result_count" validate:"min=1"` // Provider maximum
	Retries          int    `toml:"retries" validate:"min=1"`
	MinInterval      string `toml:"min_interval"`       // Minimum spacing between provider calls, e.g. "1s"
	RateLimitBackoff string `toml:"rate_limit_backoff"` // Sleep after HTTP 429 before the single re-issue
	RetryPause       string `toml:"retry_pause"`        // Pause between failed attempts
	RequestTimeout   string `toml:"request_timeout"`
	SearchLang       string `toml:"search_lang"`
	SafeSearch       string `toml:"safesearch"`
}

// ScraperConfig configures page fetching and text extraction
type ScraperConfig struct {
	UserAgent        string `toml:"user_agent"`
	MinInterval      string `toml:"min_interval"`
	RequestTimeout   string `toml:"request_timeout"`
	MaxContentLength int    `toml:"max_content_length" validate:"min=1"` // Characters kept after truncation
	MaxResults       int    `toml:"max_results" validate:"min=1"`        // Default fan-out width
	MinMainContent   int    `toml:"min_main_content" validate:"min=0"`   // Characters a candidate region must exceed
	MaxBodySize      int64  `toml:"max_body_size" validate:"min=1"`
}

// QueryConfig configures the search-need classifier
type QueryConfig struct {
	Threshold    float64 `toml:"threshold" validate:"gte=0,lte=1"`
	DomainSuffix string  `toml:"domain_suffix"`
}

// AugmentConfig configures prompt augmentation
type AugmentConfig struct {
	FallbackPrefixes []string `toml:"fallback_prefixes"` // Tried in order after the verbatim query
	ExcerptLength    int      `toml:"excerpt_length" validate:"min=1"`
	AutoSearch       bool     `toml:"auto_search"` // Let the query analyzer decide when the caller did not force search
}

// AuditorConfig holds the content-quality thresholds
type AuditorConfig struct {
	MinWordCount           int      `toml:"min_word_count" validate:"min=0"`
	MaxKeywordDensity      float64  `toml:"max_keyword_density" validate:"gte=0"`
	TargetReadabilityScore float64  `toml:"target_readability_score"`
	ImportantKeywords      []string `toml:"important_keywords"`
	CheckMetaDescription   bool     `toml:"check_meta_description"`
	CheckTitle             bool     `toml:"check_title"`
}

// LLMConfig selects the chat provider
type LLMConfig struct {
	DefaultProvider string  `toml:"default_provider" validate:"oneof=deepseek openai gemini claude"`
	SystemPrompt    string  `toml:"system_prompt"`
	Temperature     float64 `toml:"temperature" validate:"gte=0,lte=2"`
	Timeout         string  `toml:"timeout"`
}

// OpenAIConfig is shared by OpenAI-compatible providers (OpenAI, DeepSeek)
type OpenAIConfig struct {
	APIKey    string `toml:"api_key"`
	BaseURL   string `toml:"base_url"`
	Model     string `toml:"model"`
	MaxTokens int    `toml:"max_tokens"`
}

type GeminiConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

type ClaudeConfig struct {
	APIKey    string `toml:"api_key"`
	Model     string `toml:"model"`
	MaxTokens int    `toml:"max_tokens"`
}

// DefaultUserAgent is a desktop browser identity; some sites refuse bare Go clients
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// NewDefaultConfig creates a configuration with default values
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8085,
			Host: "localhost",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Output:     []string{"stdout"},
			TimeFormat: "15:04:05",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data/audits",
			},
		},
		Search: SearchConfig{
			Provider:         "brave",
			BaseURL:          "https://api.search.brave.com/res/v1/web/search",
			ResultCount:      5,
			MaxResultCount:   20, // Brave web search caps count at 20
			Retries:          2,
			MinInterval:      "1s",
			RateLimitBackoff: "2s",
			RetryPause:       "1s",
			RequestTimeout:   "15s",
			SearchLang:       "en",
			SafeSearch:       "moderate",
		},
		Scraper: ScraperConfig{
			UserAgent:        DefaultUserAgent,
			MinInterval:      "500ms",
			RequestTimeout:   "10s",
			MaxContentLength: 5000,
			MaxResults:       3,
			MinMainContent:   200,
			MaxBodySize:      5 * 1024 * 1024,
		},
		Query: QueryConfig{
			Threshold:    0.7,
			DomainSuffix: " Las Vegas SEO",
		},
		Augment: AugmentConfig{
			FallbackPrefixes: []string{"Las Vegas SEO ", "digital marketing "},
			ExcerptLength:    1000,
			AutoSearch:       true,
		},
		Auditor: AuditorConfig{
			MinWordCount:           300,
			MaxKeywordDensity:      2.5,
			TargetReadabilityScore: 60.0,
			ImportantKeywords:      []string{"Las Vegas SEO", "digital marketing"},
			CheckMetaDescription:   true,
			CheckTitle:             true,
		},
		LLM: LLMConfig{
			DefaultProvider: "deepseek",
			SystemPrompt:    "You are a helpful digital marketing assistant. When sources are provided, ground your answer in them and cite their titles.",
			Temperature:     0.7,
			Timeout:         "60s",
		},
		DeepSeek: OpenAIConfig{
			BaseURL:   "https://api.deepseek.com/v1",
			Model:     "deepseek-chat",
			MaxTokens: 2048,
		},
		OpenAI: OpenAIConfig{
			Model:     "gpt-4o-mini",
			MaxTokens: 2048,
		},
		Gemini: GeminiConfig{
			Model: "gemini-2.5-flash",
		},
		Claude: ClaudeConfig{
			Model:     "claude-sonnet-4-20250514",
			MaxTokens: 2048,
		},
	}
}

// LoadFromFiles loads configuration from multiple files with priority: default -> file1 -> file2 -> ... -> env.
// Later files override earlier files. CLI flags are applied afterwards by the caller via ApplyFlagOverrides.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks field constraints declared with validate tags
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// applyEnvOverrides applies DOCVEGAS_* environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("DOCVEGAS_ENV"); env != "" {
		config.Environment = env
	}

	// Server
	if port := os.Getenv("DOCVEGAS_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("DOCVEGAS_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Logging
	if level := os.Getenv("DOCVEGAS_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("DOCVEGAS_LOG_OUTPUT"); output != "" {
		config.Logging.Output = splitList(output)
	}

	// Storage
	if path := os.Getenv("DOCVEGAS_BADGER_PATH"); path != "" {
		config.Storage.Badger.Path = path
	}

	// Search
	if key := os.Getenv("DOCVEGAS_BRAVE_API_KEY"); key != "" {
		config.Search.APIKey = key
	} else if key := os.Getenv("BRAVE_API_KEY"); key != "" {
		config.Search.APIKey = key
	}
	if baseURL := os.Getenv("DOCVEGAS_SEARCH_BASE_URL"); baseURL != "" {
		config.Search.BaseURL = baseURL
	}
	if count := os.Getenv("DOCVEGAS_SEARCH_RESULT_COUNT"); count != "" {
		if c, err := strconv.Atoi(count); err == nil {
			config.Search.ResultCount = c
		}
	}
	if retries := os.Getenv("DOCVEGAS_SEARCH_RETRIES"); retries != "" {
		if r, err := strconv.Atoi(retries); err == nil {
			config.Search.Retries = r
		}
	}

	// Scraper
	if ua := os.Getenv("DOCVEGAS_SCRAPER_USER_AGENT"); ua != "" {
		config.Scraper.UserAgent = ua
	}
	if maxLen := os.Getenv("DOCVEGAS_SCRAPER_MAX_CONTENT_LENGTH"); maxLen != "" {
		if m, err := strconv.Atoi(maxLen); err == nil {
			config.Scraper.MaxContentLength = m
		}
	}

	// Augmentation
	if auto := os.Getenv("DOCVEGAS_AUGMENT_AUTO_SEARCH"); auto != "" {
		if b, err := strconv.ParseBool(auto); err == nil {
			config.Augment.AutoSearch = b
		}
	}

	// Auditor
	if keywords := os.Getenv("DOCVEGAS_AUDITOR_KEYWORDS"); keywords != "" {
		config.Auditor.ImportantKeywords = splitList(keywords)
	}
	if minWords := os.Getenv("DOCVEGAS_AUDITOR_MIN_WORD_COUNT"); minWords != "" {
		if m, err := strconv.Atoi(minWords); err == nil {
			config.Auditor.MinWordCount = m
		}
	}

	// LLM providers
	if provider := os.Getenv("DOCVEGAS_LLM_PROVIDER"); provider != "" {
		config.LLM.DefaultProvider = provider
	}
	if key := os.Getenv("DOCVEGAS_DEEPSEEK_API_KEY"); key != "" {
		config.DeepSeek.APIKey = key
	}
	if key := os.Getenv("DOCVEGAS_OPENAI_API_KEY"); key != "" {
		config.OpenAI.APIKey = key
	}
	if key := os.Getenv("DOCVEGAS_GEMINI_API_KEY"); key != "" {
		config.Gemini.APIKey = key
	}
	if key := os.Getenv("DOCVEGAS_CLAUDE_API_KEY"); key != "" {
		config.Claude.APIKey = key
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// ResolveAPIKey resolves an API key by name.
// Resolution order: environment variables → config fallback → error
func ResolveAPIKey(name string, configFallback string) (string, error) {
	keyToEnvMapping := map[string][]string{
		"brave_api_key":     {"DOCVEGAS_BRAVE_API_KEY", "BRAVE_API_KEY"},
		"deepseek_api_key":  {"DOCVEGAS_DEEPSEEK_API_KEY", "DEEPSEEK_API_KEY"},
		"openai_api_key":    {"DOCVEGAS_OPENAI_API_KEY", "OPENAI_API_KEY"},
		"gemini_api_key":    {"DOCVEGAS_GEMINI_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY"},
		"anthropic_api_key": {"DOCVEGAS_CLAUDE_API_KEY", "ANTHROPIC_API_KEY"},
		"claude_api_key":    {"DOCVEGAS_CLAUDE_API_KEY", "ANTHROPIC_API_KEY"},
	}

	for _, envVarName := range keyToEnvMapping[name] {
		if envValue := os.Getenv(envVarName); envValue != "" {
			return envValue, nil
		}
	}

	if configFallback != "" {
		return configFallback, nil
	}

	return "", fmt.Errorf("API key '%s' not found in environment or config", name)
}

// ParseDuration parses a config duration string, returning fallback when empty or invalid
func ParseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

func splitList(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
