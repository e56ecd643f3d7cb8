// Package validators assembles the per-item validators into a pipeline
// that runs over a corpus in parallel shards.
package validators

import (
	"context"
	"fmt"

	"github.com/custodia-labs/corpuslint/internal/core/domain"
	"github.com/custodia-labs/corpuslint/internal/core/ports/driven"
	"github.com/custodia-labs/corpuslint/internal/shard"
)

// DefaultWorkers is the number of item shards used when none is configured.
const DefaultWorkers = 4

// Ensure Pipeline implements the interface.
var _ driven.ItemPipeline = (*Pipeline)(nil)

// Pipeline runs every validator over every item. Items are split into
// contiguous shards; each shard writes to its own buffer, so the output
// order is fixed by item order and validator order alone.
type Pipeline struct {
	validators []driven.ItemValidator
	workers    int
}

// NewPipeline creates a pipeline. Validators run in the order provided.
func NewPipeline(workers int, validators ...driven.ItemValidator) *Pipeline {
	if workers < 1 {
		workers = DefaultWorkers
	}
	return &Pipeline{
		validators: validators,
		workers:    workers,
	}
}

// Add appends a validator to the pipeline.
func (p *Pipeline) Add(v driven.ItemValidator) {
	p.validators = append(p.validators, v)
}

// Len returns the number of validators in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.validators)
}

// Names returns the validator names in run order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.validators))
	for i, v := range p.validators {
		names[i] = v.Name()
	}
	return names
}

// Run validates every item against the snapshot and returns one finding
// buffer per shard, in shard order.
func (p *Pipeline) Run(ctx context.Context, corpus *domain.Corpus, evidence *domain.EvidenceSnapshot) ([][]domain.Finding, error) {
	if corpus == nil {
		return nil, fmt.Errorf("run pipeline: %w: corpus is nil", domain.ErrInvalidInput)
	}
	if evidence == nil {
		return nil, fmt.Errorf("run pipeline: %w: evidence snapshot is nil", domain.ErrInvalidInput)
	}

	items := corpus.Items()
	buffers := make([][]domain.Finding, len(shard.Ranges(len(items), p.workers)))

	err := shard.Run(ctx, len(items), p.workers, func(ctx context.Context, i int, r shard.Range) error {
		var out []domain.Finding
		for idx := r.Start; idx < r.End; idx++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := &items[idx]
			for _, v := range p.validators {
				out = append(out, v.ValidateItem(item, evidence)...)
			}
		}
		buffers[i] = out
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("run pipeline: %w", err)
	}

	return buffers, nil
}
