package interfaces

import (
	"context"
)

// Message represents a single message in a chat conversation
type Message struct {
	// Role identifies the message sender: "user", "assistant", or "system"
	Role string

	// Content contains the text content of the message
	Content string
}

// LLMService sends chat completions to a language model provider.
type LLMService interface {
	// Chat generates a completion response based on the conversation history.
	// System messages are passed to the provider as its system instruction.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout control
	//   - messages: Conversation history in chronological order
	//
	// Returns:
	//   - string: Generated assistant response
	//   - error: Error if chat completion fails
	Chat(ctx context.Context, messages []Message) (string, error)

	// Provider returns the provider name, e.g. "deepseek"
	Provider() string

	// Model returns the model identifier requests are sent to
	Model() string
}

// LLMProvider resolves a chat service by provider or model name
type LLMProvider interface {
	// Get returns the service for name. An empty name selects the default provider.
	Get(ctx context.Context, name string) (LLMService, error)
}
