package interfaces

import (
	"context"

	"github.com/ternarybob/docvegas/internal/models"
)

// AuditService runs page audits and serves audit history
type AuditService interface {
	AuditPage(ctx context.Context, req *models.AuditRequest) (*models.AuditRecord, error)
	GetAudit(ctx context.Context, id string) (*models.AuditRecord, error)
	ListAudits(ctx context.Context, url string, limit int) ([]*models.AuditRecord, error)
	ExportPDF(ctx context.Context, id string) ([]byte, error)
}
