package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/corpuslint/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/corpuslint/internal/core/domain"
)

func TestReportService(t *testing.T) {
	ctx := context.Background()
	store := memory.NewReportStore()
	svc := NewReportService(store)

	_, err := svc.Latest(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.Save(ctx, &domain.Report{ID: "old", GeneratedAt: fixedTime}))
	require.NoError(t, store.Save(ctx, &domain.Report{ID: "new", GeneratedAt: fixedTime.Add(time.Hour)}))

	latest, err := svc.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new", latest.ID)

	list, err := svc.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	got, err := svc.Get(ctx, "old")
	require.NoError(t, err)
	assert.Equal(t, "old", got.ID)

	_, err = svc.Get(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReportService_Delete(t *testing.T) {
	ctx := context.Background()
	store := memory.NewReportStore()
	svc := NewReportService(store)
	require.NoError(t, store.Save(ctx, &domain.Report{ID: "r1", GeneratedAt: fixedTime}))

	assert.ErrorIs(t, svc.Delete(ctx, ""), domain.ErrInvalidInput)
	require.NoError(t, svc.Delete(ctx, "r1"))
	assert.ErrorIs(t, svc.Delete(ctx, "r1"), domain.ErrNotFound)

	_, err := svc.Latest(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
