package interfaces

import (
	"context"
	"errors"

	"github.com/ternarybob/docvegas/internal/models"
)

// ErrAuditNotFound is returned when no audit has the requested ID
var ErrAuditNotFound = errors.New("audit not found")

// AuditStorage persists audit records
type AuditStorage interface {
	SaveAudit(ctx context.Context, record *models.AuditRecord) error
	GetAudit(ctx context.Context, id string) (*models.AuditRecord, error)
	// ListAudits returns newest first; an empty url lists all records
	ListAudits(ctx context.Context, url string, limit int) ([]*models.AuditRecord, error)
	DeleteAudit(ctx context.Context, id string) error
	Close() error
}

// StorageManager owns the database connection and the storages built on it
type StorageManager interface {
	AuditStorage() AuditStorage
	Close() error
}
