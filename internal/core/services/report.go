package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/corpuslint/internal/core/domain"
	"github.com/custodia-labs/corpuslint/internal/core/ports/driven"
	"github.com/custodia-labs/corpuslint/internal/core/ports/driving"
)

// Ensure ReportService implements the interface.
var _ driving.ReportService = (*ReportService)(nil)

// ReportService reads saved validation reports.
type ReportService struct {
	store driven.ReportStore
}

// NewReportService creates a new report service.
func NewReportService(store driven.ReportStore) *ReportService {
	return &ReportService{store: store}
}

// List returns report headers, most recent first.
func (s *ReportService) List(ctx context.Context, limit int) ([]domain.ReportSummary, error) {
	return s.store.List(ctx, limit)
}

// Get retrieves a stored report.
func (s *ReportService) Get(ctx context.Context, id string) (*domain.Report, error) {
	if id == "" {
		return nil, fmt.Errorf("get report: %w: empty id", domain.ErrInvalidInput)
	}
	return s.store.Get(ctx, id)
}

// Latest returns the most recent report, or domain.ErrNotFound.
func (s *ReportService) Latest(ctx context.Context) (*domain.Report, error) {
	summaries, err := s.store.List(ctx, 1)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	if len(summaries) == 0 {
		return nil, domain.ErrNotFound
	}
	return s.store.Get(ctx, summaries[0].ID)
}

// Delete removes a stored report.
func (s *ReportService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("delete report: %w: empty id", domain.ErrInvalidInput)
	}
	return s.store.Delete(ctx, id)
}
