package models

// Chat roles
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of a conversation as exchanged over the API
type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=system user assistant"`
	Content string `json:"content" validate:"required"`
}

// ChatRequest is a chat completion request
type ChatRequest struct {
	Messages  []ChatMessage `json:"messages" validate:"required,min=1,dive"`
	Model     string        `json:"model"`      // Provider name or model id; empty selects the default provider
	UseSearch bool          `json:"use_search"` // Force search augmentation of the last user message
}

// ChatResponse is the assistant reply with any evidence used to ground it
type ChatResponse struct {
	Response        string   `json:"response"`
	Sources         []Source `json:"sources"`
	SearchPerformed bool     `json:"search_performed"`
	Model           string   `json:"model"`
}

// LastUserMessage returns the index and content of the most recent user turn, or -1
func (r *ChatRequest) LastUserMessage() (int, string) {
	for i := len(r.Messages) - 1; i >= 0; i-- {
		if r.Messages[i].Role == RoleUser {
			return i, r.Messages[i].Content
		}
	}
	return -1, ""
}
