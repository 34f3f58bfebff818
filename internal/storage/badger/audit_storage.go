package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/docvegas/internal/interfaces"
	"github.com/ternarybob/docvegas/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// AuditStorage implements the AuditStorage interface for Badger
type AuditStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewAuditStorage creates a new AuditStorage instance
func NewAuditStorage(db *BadgerDB, logger arbor.ILogger) interfaces.AuditStorage {
	return &AuditStorage{
		db:     db,
		logger: logger,
	}
}

func (s *AuditStorage) SaveAudit(ctx context.Context, record *models.AuditRecord) error {
	if record.ID == "" {
		return fmt.Errorf("audit ID is required")
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	if err := s.db.Store().Upsert(record.ID, record); err != nil {
		return fmt.Errorf("failed to save audit: %w", err)
	}

	s.logger.Debug().Str("audit_id", record.ID).Str("url", record.URL).Msg("Audit saved")
	return nil
}

func (s *AuditStorage) GetAudit(ctx context.Context, id string) (*models.AuditRecord, error) {
	var record models.AuditRecord
	if err := s.db.Store().Get(id, &record); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("%w: %s", interfaces.ErrAuditNotFound, id)
		}
		return nil, fmt.Errorf("failed to get audit: %w", err)
	}
	return &record, nil
}

func (s *AuditStorage) ListAudits(ctx context.Context, url string, limit int) ([]*models.AuditRecord, error) {
	query := badgerhold.Where("ID").Ne("")
	if url != "" {
		query = badgerhold.Where("URL").Eq(url)
	}
	query = query.SortBy("CreatedAt").Reverse()
	if limit > 0 {
		query = query.Limit(limit)
	}

	var records []models.AuditRecord
	if err := s.db.Store().Find(&records, query); err != nil {
		return nil, fmt.Errorf("failed to list audits: %w", err)
	}

	result := make([]*models.AuditRecord, len(records))
	for i := range records {
		result[i] = &records[i]
	}
	return result, nil
}

func (s *AuditStorage) DeleteAudit(ctx context.Context, id string) error {
	if err := s.db.Store().Delete(id, &models.AuditRecord{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil
		}
		return fmt.Errorf("failed to delete audit: %w", err)
	}
	return nil
}

// Close is a no-op; the Manager owns the connection
func (s *AuditStorage) Close() error {
	return nil
}
