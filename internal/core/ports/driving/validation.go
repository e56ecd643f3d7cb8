package driving

import (
	"context"

	"github.com/custodia-labs/corpuslint/internal/core/domain"
)

// ValidationService runs the full validation pipeline.
type ValidationService interface {
	// Validate runs evidence collection, the item validators and, when
	// phrases is non-nil, the gate validator, and returns one report.
	// Fatal findings do not produce an error; only a structurally invalid
	// corpus or cancellation does.
	Validate(ctx context.Context, corpus *domain.Corpus, phrases domain.PhraseSet) (*domain.Report, error)

	// Evidence builds the evidence snapshot on its own.
	Evidence(ctx context.Context, corpus *domain.Corpus) (*domain.EvidenceSnapshot, error)
}

// ReportService exposes stored reports to external actors.
type ReportService interface {
	// List returns report headers, most recent first.
	List(ctx context.Context, limit int) ([]domain.ReportSummary, error)

	// Get retrieves a stored report.
	Get(ctx context.Context, id string) (*domain.Report, error)

	// Latest returns the most recent report.
	Latest(ctx context.Context) (*domain.Report, error)

	// Delete removes a stored report.
	Delete(ctx context.Context, id string) error
}
