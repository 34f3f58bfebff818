package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

// maxRequestBody bounds JSON request bodies; audit requests may carry a full page of HTML
const maxRequestBody = 10 << 20

// RequireMethod validates that the HTTP request uses the specified method.
// Returns true if the method matches, false otherwise (and writes error response).
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// WriteJSON writes a JSON response with the specified status code and data.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a success envelope with extra fields merged in.
func WriteSuccess(w http.ResponseWriter, fields map[string]interface{}) error {
	body := map[string]interface{}{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	return WriteJSON(w, http.StatusOK, body)
}

// WriteError writes a standard error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

// DecodeJSON reads a bounded JSON body into dst.
func DecodeJSON(r *http.Request, dst interface{}) error {
	body := io.LimitReader(r.Body, maxRequestBody)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// GetLimitParam reads ?limit=, returning fallback when absent or invalid and capping at max.
func GetLimitParam(r *http.Request, fallback, max int) int {
	limit := fallback
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > max {
		limit = max
	}
	return limit
}
