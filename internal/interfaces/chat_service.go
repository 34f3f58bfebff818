package interfaces

import (
	"context"

	"github.com/ternarybob/docvegas/internal/models"
)

// ChatService answers conversations, optionally grounding the last user message in web evidence
type ChatService interface {
	Chat(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error)
}
