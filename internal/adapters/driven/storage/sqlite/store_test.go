package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/corpuslint/internal/core/domain"
)

// setupTestStore creates a SQLite store in a temporary directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})

	return store
}

func testReport(id string, at time.Time) *domain.Report {
	gate := domain.NewFinding(domain.KindGateViolation, 1, "uses \"dog\"", "rewrite").AtUnit(7)
	gate.Details.OffendingToken = "dog"
	gate.Details.SourcePosition = domain.PositionRef(25)

	tiling := domain.NewFinding(domain.KindTilingFailure, 0, "mismatch", "re-segment")
	tiling.Details.MissingTokens = []string{"to"}
	tiling.Details.Reconstruction = "I want go"

	return &domain.Report{
		ID:            id,
		CorpusVersion: "v1",
		GeneratedAt:   at,
		Findings:      []domain.Finding{tiling, gate},
		Summary: domain.Summary{
			Counts: []domain.SummaryCount{
				{Kind: domain.KindTilingFailure, Severity: domain.SeverityFatal, Count: 1},
				{Kind: domain.KindGateViolation, Severity: domain.SeverityFatal, Count: 1},
			},
			Fatal: 2,
		},
	}
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, DatabaseFile), store.Path())
	assert.FileExists(t, store.Path())
}

func TestNewStore_ReopenSkipsAppliedMigrations(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.ReportStore().Save(context.Background(), testReport("r1", time.Now())))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.ReportStore().Get(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "r1", got.ID)
}

func TestReportStore_SaveAndGet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	want := testReport("r1", at)
	require.NoError(t, store.ReportStore().Save(ctx, want))

	got, err := store.ReportStore().Get(ctx, "r1")
	require.NoError(t, err)

	assert.Equal(t, want.CorpusVersion, got.CorpusVersion)
	assert.True(t, want.GeneratedAt.Equal(got.GeneratedAt))
	assert.Equal(t, want.Summary, got.Summary)
	assert.Equal(t, want.Findings, got.Findings)
}

func TestReportStore_SaveReplaces(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	rs := store.ReportStore()

	require.NoError(t, rs.Save(ctx, testReport("r1", time.Now())))

	clean := &domain.Report{ID: "r1", CorpusVersion: "v2", GeneratedAt: time.Now(), Findings: []domain.Finding{}}
	require.NoError(t, rs.Save(ctx, clean))

	got, err := rs.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "v2", got.CorpusVersion)
	assert.Empty(t, got.Findings)
}

func TestReportStore_GetNotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.ReportStore().Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReportStore_List(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	rs := store.ReportStore()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "mid", "new"} {
		require.NoError(t, rs.Save(ctx, testReport(id, base.Add(time.Duration(i)*time.Hour))))
	}

	all, err := rs.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "new", all[0].ID)
	assert.Equal(t, "old", all[2].ID)
	assert.Equal(t, 2, all[0].Fatal)

	limited, err := rs.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "new", limited[0].ID)
}

func TestReportStore_Delete(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	rs := store.ReportStore()

	require.NoError(t, rs.Save(ctx, testReport("r1", time.Now())))
	require.NoError(t, rs.Delete(ctx, "r1"))

	_, err := rs.Get(ctx, "r1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var n int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM findings WHERE report_id = ?", "r1").Scan(&n))
	assert.Zero(t, n)

	assert.ErrorIs(t, rs.Delete(ctx, "r1"), domain.ErrNotFound)
}
