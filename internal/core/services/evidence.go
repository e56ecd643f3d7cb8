package services

import (
	"context"
	"fmt"
	"runtime"

	"github.com/custodia-labs/corpuslint/internal/core/domain"
	"github.com/custodia-labs/corpuslint/internal/core/ports/driven"
	"github.com/custodia-labs/corpuslint/internal/logger"
	"github.com/custodia-labs/corpuslint/internal/shard"
)

// DefaultShards is the number of item shards used when none is configured.
const DefaultShards = 4

// EvidenceEngine builds the corpus-wide EvidenceSnapshot in one pass.
//
// Items are split into shards, at most GOMAXPROCS of them in flight, and
// each shard fills its own partial tables. Partial tables are merged with a min-by-position rule, so the
// snapshot is identical for any shard count, shard size or scheduling.
type EvidenceEngine struct {
	normaliser      driven.Normaliser
	shards          int
	normaliseSource bool
}

// EvidenceOption configures an EvidenceEngine.
type EvidenceOption func(*EvidenceEngine)

// WithNormalisedSource keys source realisations by their normalised text
// instead of the raw text.
func WithNormalisedSource(on bool) EvidenceOption {
	return func(e *EvidenceEngine) {
		e.normaliseSource = on
	}
}

// NewEvidenceEngine creates an engine. A shard count below 1 uses DefaultShards.
func NewEvidenceEngine(normaliser driven.Normaliser, shards int, opts ...EvidenceOption) *EvidenceEngine {
	if shards < 1 {
		shards = DefaultShards
	}
	e := &EvidenceEngine{
		normaliser: normaliser,
		shards:     shards,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Build sweeps every BASE unit and returns a frozen snapshot.
// On cancellation it returns the context error and no snapshot: a
// partially built snapshot is never exposed.
func (e *EvidenceEngine) Build(ctx context.Context, corpus *domain.Corpus) (*domain.EvidenceSnapshot, error) {
	if corpus == nil {
		return nil, fmt.Errorf("build evidence: %w: corpus is nil", domain.ErrInvalidInput)
	}

	ranges := shard.Ranges(corpus.Len(), e.shards)
	partials := make([]*evidenceTables, len(ranges))
	items := corpus.Items()

	err := shard.RunLimit(ctx, corpus.Len(), e.shards, runtime.GOMAXPROCS(0), func(ctx context.Context, i int, r shard.Range) error {
		t := newEvidenceTables()
		for idx := r.Start; idx < r.End; idx++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			e.observeItem(t, &items[idx])
		}
		partials[i] = t
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("build evidence: %w", err)
	}

	merged := newEvidenceTables()
	for _, p := range partials {
		merged.merge(p)
	}

	logger.Debug("evidence: %d canonical keys, %d adjacent pairs from %d shards",
		len(merged.canonical), len(merged.pairs), len(ranges))

	return merged.freeze(corpus.Version()), nil
}

// observeItem records the item's BASE units and adjacent BASE pairs.
// Composite units never enter either table.
func (e *EvidenceEngine) observeItem(t *evidenceTables, item *domain.Item) {
	keys := make([]string, len(item.Units))

	for j := range item.Units {
		u := &item.Units[j]
		if !u.IsBase() {
			continue
		}
		key := e.normaliser.Key(u.Target)
		if key == "" {
			continue
		}
		keys[j] = key
		t.observeUnit(key, u.Source, e.sourceKey(u.Source), u.Position)
	}

	for j := 0; j+1 < len(item.Units); j++ {
		if keys[j] == "" || keys[j+1] == "" {
			continue
		}
		t.observePair(domain.PairKey{Left: keys[j], Right: keys[j+1]}, item.Units[j].Position)
	}
}

func (e *EvidenceEngine) sourceKey(source string) string {
	if e.normaliseSource {
		return e.normaliser.Key(source)
	}
	return source
}

// evidenceTables is the mutable accumulator behind a snapshot.
type evidenceTables struct {
	canonical map[string]*domain.CanonicalEntry
	pairs     map[domain.PairKey]int
	pairFirst map[domain.PairKey]domain.Position
	marginals map[string]int
}

func newEvidenceTables() *evidenceTables {
	return &evidenceTables{
		canonical: make(map[string]*domain.CanonicalEntry),
		pairs:     make(map[domain.PairKey]int),
		pairFirst: make(map[domain.PairKey]domain.Position),
		marginals: make(map[string]int),
	}
}

// observeUnit records one standalone BASE occurrence.
func (t *evidenceTables) observeUnit(key, source, sourceKey string, pos domain.Position) {
	t.marginals[key]++

	entry, ok := t.canonical[key]
	if !ok {
		t.canonical[key] = &domain.CanonicalEntry{
			Key:            key,
			FirstPosition:  pos,
			FirstSource:    source,
			FirstSourceKey: sourceKey,
			Realisations: map[string]domain.Realisation{
				sourceKey: {Text: source, FirstPosition: pos},
			},
		}
		return
	}

	mergeRealisation(entry.Realisations, sourceKey, domain.Realisation{Text: source, FirstPosition: pos})
	if pos < entry.FirstPosition {
		entry.FirstPosition = pos
		entry.FirstSource = source
		entry.FirstSourceKey = sourceKey
	}
}

// observePair records one adjacent BASE pair whose left unit is at pos.
func (t *evidenceTables) observePair(k domain.PairKey, pos domain.Position) {
	if first, ok := t.pairFirst[k]; !ok || pos < first {
		t.pairFirst[k] = pos
	}
	t.pairs[k]++
}

// merge folds another partial table into t. Counts add; every "first"
// attribute takes the minimum position, which makes merge commutative
// and associative.
func (t *evidenceTables) merge(o *evidenceTables) {
	if o == nil {
		return
	}

	for key, n := range o.marginals {
		t.marginals[key] += n
	}

	for key, other := range o.canonical {
		entry, ok := t.canonical[key]
		if !ok {
			cp := *other
			cp.Realisations = make(map[string]domain.Realisation, len(other.Realisations))
			for rk, r := range other.Realisations {
				cp.Realisations[rk] = r
			}
			t.canonical[key] = &cp
			continue
		}
		for rk, r := range other.Realisations {
			mergeRealisation(entry.Realisations, rk, r)
		}
		if other.FirstPosition < entry.FirstPosition {
			entry.FirstPosition = other.FirstPosition
			entry.FirstSource = other.FirstSource
			entry.FirstSourceKey = other.FirstSourceKey
		}
	}

	for k, n := range o.pairs {
		t.pairs[k] += n
	}
	for k, pos := range o.pairFirst {
		if first, ok := t.pairFirst[k]; !ok || pos < first {
			t.pairFirst[k] = pos
		}
	}
}

// freeze hands the tables to an immutable snapshot. t must not be used afterwards.
func (t *evidenceTables) freeze(version string) *domain.EvidenceSnapshot {
	return domain.NewEvidenceSnapshot(version, t.canonical, t.pairs, t.pairFirst, t.marginals)
}

func mergeRealisation(into map[string]domain.Realisation, key string, r domain.Realisation) {
	existing, ok := into[key]
	if !ok || r.FirstPosition < existing.FirstPosition {
		into[key] = r
	}
}
