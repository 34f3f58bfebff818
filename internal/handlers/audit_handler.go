package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/docvegas/internal/interfaces"
	"github.com/ternarybob/docvegas/internal/models"
	"github.com/ternarybob/docvegas/internal/services/audit"
)

const maxListLimit = 100

// AuditHandler serves page audits and their history
type AuditHandler struct {
	auditService interfaces.AuditService
	logger       arbor.ILogger
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditService interfaces.AuditService, logger arbor.ILogger) *AuditHandler {
	return &AuditHandler{
		auditService: auditService,
		logger:       logger,
	}
}

// CreateAuditHandler handles POST /api/audit
func (h *AuditHandler) CreateAuditHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.AuditRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record, err := h.auditService.AuditPage(r.Context(), &req)
	if err != nil {
		h.writeAuditError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"audit": record,
	})
}

// ListAuditsHandler handles GET /api/audits?url=&limit=
func (h *AuditHandler) ListAuditsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	url := r.URL.Query().Get("url")
	limit := GetLimitParam(r, audit.DefaultListLimit, maxListLimit)

	records, err := h.auditService.ListAudits(r.Context(), url, limit)
	if err != nil {
		h.writeAuditError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"count":  len(records),
		"audits": records,
	})
}

// GetAuditHandler handles GET /api/audit/{id}
func (h *AuditHandler) GetAuditHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	record, ok := h.loadRecord(w, r)
	if !ok {
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"audit": record,
	})
}

// ReportHandler handles GET /api/audit/{id}/report as plain text
func (h *AuditHandler) ReportHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	record, ok := h.loadRecord(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(record.Report))
}

// PDFHandler handles GET /api/audit/{id}/pdf
func (h *AuditHandler) PDFHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	id := AuditIDFromPath(r.URL.Path)
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Audit ID is required")
		return
	}

	pdfBytes, err := h.auditService.ExportPDF(r.Context(), id)
	if err != nil {
		h.writeAuditError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", id+".pdf"))
	w.WriteHeader(http.StatusOK)
	w.Write(pdfBytes)
}

func (h *AuditHandler) loadRecord(w http.ResponseWriter, r *http.Request) (*models.AuditRecord, bool) {
	id := AuditIDFromPath(r.URL.Path)
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Audit ID is required")
		return nil, false
	}

	record, err := h.auditService.GetAudit(r.Context(), id)
	if err != nil {
		h.writeAuditError(w, err)
		return nil, false
	}
	return record, true
}

func (h *AuditHandler) writeAuditError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, audit.ErrInvalidRequest), errors.Is(err, audit.ErrEmptyContent):
		WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, interfaces.ErrAuditNotFound):
		WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, audit.ErrFetchFailed):
		h.logger.Warn().Err(err).Msg("Audit page fetch failed")
		WriteError(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, audit.ErrStorageDisabled):
		WriteError(w, http.StatusServiceUnavailable, err.Error())
	default:
		h.logger.Error().Err(err).Msg("Audit request failed")
		WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

// AuditIDFromPath extracts {id} from /api/audit/{id}[/report|/pdf]
func AuditIDFromPath(path string) string {
	rest := strings.TrimPrefix(path, "/api/audit/")
	if rest == path {
		return ""
	}
	id, _, _ := strings.Cut(strings.Trim(rest, "/"), "/")
	return id
}
