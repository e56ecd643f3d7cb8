package driven

import (
	"context"

	"github.com/custodia-labs/corpuslint/internal/core/domain"
)

// ItemValidator checks one item against the frozen evidence snapshot.
// Implementations must be total and free of shared mutable state:
// the pipeline calls ValidateItem concurrently for different items.
type ItemValidator interface {
	// Name returns the validator name for logging and configuration.
	Name() string

	// ValidateItem returns the findings for a single item.
	// Malformed records are reported as findings, never as panics.
	ValidateItem(item *domain.Item, evidence *domain.EvidenceSnapshot) []domain.Finding
}

// ItemPipeline runs a set of ItemValidators over a whole corpus.
type ItemPipeline interface {
	// Run validates every item and returns one finding buffer per shard,
	// in shard order.
	Run(ctx context.Context, corpus *domain.Corpus, evidence *domain.EvidenceSnapshot) ([][]domain.Finding, error)
}

// PhraseValidator checks generated content against the corpus.
type PhraseValidator interface {
	// Validate returns gate, operative-unit and culminating findings.
	Validate(ctx context.Context, corpus *domain.Corpus, phrases domain.PhraseSet) ([]domain.Finding, error)
}
