package handlers

import (
	"errors"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/docvegas/internal/interfaces"
	"github.com/ternarybob/docvegas/internal/models"
	"github.com/ternarybob/docvegas/internal/services/chat"
)

// ChatHandler handles chat-related HTTP requests
type ChatHandler struct {
	chatService interfaces.ChatService
	logger      arbor.ILogger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(
	chatService interfaces.ChatService,
	logger arbor.ILogger,
) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// ChatHandler handles POST /api/chat requests
func (h *ChatHandler) ChatHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.ChatRequest
	if err := DecodeJSON(r, &req); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to decode chat request")
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.logger.Info().
		Int("messages", len(req.Messages)).
		Str("model", req.Model).
		Bool("use_search", req.UseSearch).
		Msg("Processing chat request")

	response, err := h.chatService.Chat(r.Context(), &req)
	if err != nil {
		if errors.Is(err, chat.ErrInvalidRequest) {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error().Err(err).Msg("Failed to generate chat response")
		WriteError(w, http.StatusInternalServerError, "Failed to generate response: "+err.Error())
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"response":         response.Response,
		"sources":          response.Sources,
		"search_performed": response.SearchPerformed,
		"model":            response.Model,
	})
}
