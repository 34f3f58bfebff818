package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/docvegas/internal/models"
	"github.com/ternarybob/docvegas/internal/services/chat"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestChatHandler_Success(t *testing.T) {
	svc := &mockChatService{chatFunc: func(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error) {
		assert.True(t, req.UseSearch)
		assert.Len(t, req.Messages, 1)
		return &models.ChatResponse{
			Response:        "Use local keywords.",
			Sources:         []models.Source{{SearchResult: models.SearchResult{Title: "Guide", URL: "https://example.com"}}},
			SearchPerformed: true,
			Model:           "deepseek-chat",
		}, nil
	}}
	handler := NewChatHandler(svc, arbor.NewLogger())

	body := `{"messages":[{"role":"user","content":"best SEO in Vegas?"}],"use_search":true}`
	rec := httptest.NewRecorder()
	handler.ChatHandler(rec, httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Use local keywords.", resp["response"])
	assert.Equal(t, true, resp["search_performed"])
	assert.Len(t, resp["sources"], 1)
}

func TestChatHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		body       string
		err        error
		wantStatus int
	}{
		{"wrong method", http.MethodGet, "", nil, http.StatusMethodNotAllowed},
		{"malformed body", http.MethodPost, "{", nil, http.StatusBadRequest},
		{"invalid request", http.MethodPost, `{"messages":[]}`, fmt.Errorf("%w: no messages", chat.ErrInvalidRequest), http.StatusBadRequest},
		{"provider failure", http.MethodPost, `{"messages":[{"role":"user","content":"hi"}]}`, errors.New("API key not found"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockChatService{chatFunc: func(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error) {
				return nil, tt.err
			}}
			handler := NewChatHandler(svc, arbor.NewLogger())

			rec := httptest.NewRecorder()
			handler.ChatHandler(rec, httptest.NewRequest(tt.method, "/api/chat", strings.NewReader(tt.body)))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestAPIHandler(t *testing.T) {
	handler := NewAPIHandler(arbor.NewLogger())

	rec := httptest.NewRecorder()
	handler.HealthHandler(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["status"])

	rec = httptest.NewRecorder()
	handler.VersionHandler(rec, httptest.NewRequest(http.MethodGet, "/api/version", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decodeBody(t, rec), "version")

	rec = httptest.NewRecorder()
	handler.NotFoundHandler(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
