package badger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/docvegas/internal/common"
	"github.com/ternarybob/docvegas/internal/interfaces"
	"github.com/ternarybob/docvegas/internal/models"
)

func newTestManager(t *testing.T) interfaces.StorageManager {
	t.Helper()
	config := &common.BadgerConfig{Path: filepath.Join(t.TempDir(), "audits")}
	manager, err := NewManager(arbor.NewLogger(), config)
	require.NoError(t, err)
	t.Cleanup(func() { _ = manager.Close() })
	return manager
}

func auditAt(id, url string, createdAt time.Time) *models.AuditRecord {
	meta := 140
	return &models.AuditRecord{
		ID:    id,
		URL:   url,
		Title: "Page " + id,
		Metrics: models.ContentMetrics{
			WordCount:             320,
			Keywords:              []string{"seo"},
			KeywordDensity:        map[string]float64{"seo": 1.25},
			HeadingStructure:      map[string]int{"h1": 1},
			MetaDescriptionLength: &meta,
			ContentIssues:         []string{},
		},
		Report:    "report " + id,
		CreatedAt: createdAt,
	}
}

func TestAuditStorage_SaveAndGet(t *testing.T) {
	storage := newTestManager(t).AuditStorage()
	ctx := context.Background()

	record := auditAt("audit_1", "https://example.com", time.Now().UTC())
	require.NoError(t, storage.SaveAudit(ctx, record))

	got, err := storage.GetAudit(ctx, "audit_1")
	require.NoError(t, err)
	assert.Equal(t, record.URL, got.URL)
	assert.Equal(t, 320, got.Metrics.WordCount)
	assert.Equal(t, 1.25, got.Metrics.KeywordDensity["seo"])
	require.NotNil(t, got.Metrics.MetaDescriptionLength)
	assert.Equal(t, 140, *got.Metrics.MetaDescriptionLength)
	assert.Nil(t, got.Metrics.TitleLength)
}

func TestAuditStorage_GetMissing(t *testing.T) {
	storage := newTestManager(t).AuditStorage()

	_, err := storage.GetAudit(context.Background(), "audit_missing")
	assert.ErrorIs(t, err, interfaces.ErrAuditNotFound)
}

func TestAuditStorage_SaveRequiresID(t *testing.T) {
	storage := newTestManager(t).AuditStorage()

	err := storage.SaveAudit(context.Background(), &models.AuditRecord{})
	assert.Error(t, err)
}

func TestAuditStorage_ListNewestFirst(t *testing.T) {
	storage := newTestManager(t).AuditStorage()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, storage.SaveAudit(ctx, auditAt("a1", "https://a.example", base)))
	require.NoError(t, storage.SaveAudit(ctx, auditAt("a2", "https://a.example", base.Add(time.Hour))))
	require.NoError(t, storage.SaveAudit(ctx, auditAt("b1", "https://b.example", base.Add(2*time.Hour))))

	all, err := storage.ListAudits(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"b1", "a2", "a1"}, []string{all[0].ID, all[1].ID, all[2].ID})

	forA, err := storage.ListAudits(ctx, "https://a.example", 0)
	require.NoError(t, err)
	require.Len(t, forA, 2)
	assert.Equal(t, "a2", forA[0].ID)

	limited, err := storage.ListAudits(ctx, "", 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "b1", limited[0].ID)
}

func TestAuditStorage_Delete(t *testing.T) {
	storage := newTestManager(t).AuditStorage()
	ctx := context.Background()

	require.NoError(t, storage.SaveAudit(ctx, auditAt("gone", "", time.Now())))
	require.NoError(t, storage.DeleteAudit(ctx, "gone"))
	require.NoError(t, storage.DeleteAudit(ctx, "gone"))

	_, err := storage.GetAudit(ctx, "gone")
	assert.ErrorIs(t, err, interfaces.ErrAuditNotFound)
}
