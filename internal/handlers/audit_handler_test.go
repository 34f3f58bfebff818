package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/docvegas/internal/interfaces"
	"github.com/ternarybob/docvegas/internal/models"
	"github.com/ternarybob/docvegas/internal/services/audit"
)

func sampleRecord(id string) *models.AuditRecord {
	return &models.AuditRecord{
		ID:        id,
		URL:       "https://example.com",
		Title:     "Example",
		Metrics:   models.ContentMetrics{WordCount: 42, KeywordDensity: map[string]float64{}},
		Report:    "Content Analysis Report\n=====================\n",
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func get(handler http.HandlerFunc, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestCreateAuditHandler(t *testing.T) {
	svc := &mockAuditService{auditPageFunc: func(ctx context.Context, req *models.AuditRequest) (*models.AuditRecord, error) {
		assert.Equal(t, "https://example.com", req.URL)
		assert.Equal(t, []string{"seo"}, req.Keywords)
		return sampleRecord("audit_1"), nil
	}}
	handler := NewAuditHandler(svc, arbor.NewLogger())

	rec := httptest.NewRecorder()
	handler.CreateAuditHandler(rec, httptest.NewRequest(http.MethodPost, "/api/audit",
		strings.NewReader(`{"url":"https://example.com","keywords":["seo"]}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	record := decodeBody(t, rec)["audit"].(map[string]interface{})
	assert.Equal(t, "audit_1", record["id"])
	assert.Equal(t, float64(42), record["metrics"].(map[string]interface{})["word_count"])
}

func TestCreateAuditHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{fmt.Errorf("%w: url required", audit.ErrInvalidRequest), http.StatusBadRequest},
		{audit.ErrEmptyContent, http.StatusBadRequest},
		{fmt.Errorf("%w: status 503", audit.ErrFetchFailed), http.StatusBadGateway},
		{fmt.Errorf("failed to persist audit: disk full"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			svc := &mockAuditService{auditPageFunc: func(ctx context.Context, req *models.AuditRequest) (*models.AuditRecord, error) {
				return nil, tt.err
			}}
			handler := NewAuditHandler(svc, arbor.NewLogger())

			rec := httptest.NewRecorder()
			handler.CreateAuditHandler(rec, httptest.NewRequest(http.MethodPost, "/api/audit", strings.NewReader(`{"content":"x"}`)))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestListAuditsHandler(t *testing.T) {
	svc := &mockAuditService{listAuditsFunc: func(ctx context.Context, url string, limit int) ([]*models.AuditRecord, error) {
		assert.Equal(t, "https://example.com", url)
		assert.Equal(t, maxListLimit, limit)
		return []*models.AuditRecord{sampleRecord("a2"), sampleRecord("a1")}, nil
	}}
	handler := NewAuditHandler(svc, arbor.NewLogger())

	rec := get(handler.ListAuditsHandler, "/api/audits?url=https://example.com&limit=500")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), decodeBody(t, rec)["count"])
}

func TestGetAuditHandlers(t *testing.T) {
	svc := &mockAuditService{
		getAuditFunc: func(ctx context.Context, id string) (*models.AuditRecord, error) {
			if id != "audit_1" {
				return nil, fmt.Errorf("%w: %s", interfaces.ErrAuditNotFound, id)
			}
			return sampleRecord(id), nil
		},
		exportPDFFunc: func(ctx context.Context, id string) ([]byte, error) {
			return []byte("%PDF-1.3 test"), nil
		},
	}
	handler := NewAuditHandler(svc, arbor.NewLogger())

	rec := get(handler.GetAuditHandler, "/api/audit/audit_1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Example", decodeBody(t, rec)["audit"].(map[string]interface{})["title"])

	rec = get(handler.GetAuditHandler, "/api/audit/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = get(handler.ReportHandler, "/api/audit/audit_1/report")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Content Analysis Report"))

	rec = get(handler.PDFHandler, "/api/audit/audit_1/pdf")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "audit_1.pdf")
}

func TestAuditIDFromPath(t *testing.T) {
	tests := map[string]string{
		"/api/audit/audit_1":        "audit_1",
		"/api/audit/audit_1/":       "audit_1",
		"/api/audit/audit_1/report": "audit_1",
		"/api/audit/audit_1/pdf":    "audit_1",
		"/api/audit/":               "",
		"/api/audits":               "",
	}
	for path, want := range tests {
		assert.Equal(t, want, AuditIDFromPath(path), path)
	}
}
