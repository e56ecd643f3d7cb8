package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/corpuslint/internal/core/domain"
	"github.com/custodia-labs/corpuslint/internal/core/ports/driving"
)

// Ensure MockReportService implements the interface.
var _ driving.ReportService = (*MockReportService)(nil)

// MockReportService implements driving.ReportService for testing.
type MockReportService struct {
	GetFunc    func(ctx context.Context, id string) (*domain.Report, error)
	LatestFunc func(ctx context.Context) (*domain.Report, error)
	DeleteFunc func(ctx context.Context, id string) error
}

func (m *MockReportService) List(_ context.Context, _ int) ([]domain.ReportSummary, error) {
	return nil, nil
}

func (m *MockReportService) Get(ctx context.Context, id string) (*domain.Report, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *MockReportService) Latest(ctx context.Context) (*domain.Report, error) {
	if m.LatestFunc != nil {
		return m.LatestFunc(ctx)
	}
	return nil, domain.ErrNotFound
}

func (m *MockReportService) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func TestPorts_Validate(t *testing.T) {
	t.Run("missing report service", func(t *testing.T) {
		ports := &Ports{}
		assert.ErrorIs(t, ports.Validate(), ErrMissingReportService)
	})

	t.Run("report service set", func(t *testing.T) {
		ports := &Ports{Reports: &MockReportService{}}
		assert.NoError(t, ports.Validate())
	})
}
