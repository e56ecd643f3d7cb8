package driven

import (
	"context"

	"github.com/custodia-labs/corpuslint/internal/core/domain"
)

// ReportStore persists validation reports.
// Backed by SQLite for history, or memory for tests and servers.
type ReportStore interface {
	// Save stores a report. Saving an existing ID replaces it.
	Save(ctx context.Context, report *domain.Report) error

	// Get retrieves a report by ID.
	// Returns domain.ErrNotFound if the report does not exist.
	Get(ctx context.Context, id string) (*domain.Report, error)

	// List returns report headers, most recent first.
	// A limit of zero or less returns all reports.
	List(ctx context.Context, limit int) ([]domain.ReportSummary, error)

	// Delete removes a report.
	Delete(ctx context.Context, id string) error
}
