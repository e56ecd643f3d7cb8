// Package cooccurrence flags adjacent BASE units that almost always
// appear together and should likely be one COMPOSITE unit.
package cooccurrence

import (
	"fmt"

	"github.com/custodia-labs/corpuslint/internal/core/domain"
	"github.com/custodia-labs/corpuslint/internal/core/ports/driven"
)

// Name is the validator name used in configuration.
const Name = "cooccurrence"

const remediation = "consider merging the two units into a single COMPOSITE unit"

// Ensure Validator implements the interface.
var _ driven.ItemValidator = (*Validator)(nil)

// Validator compares each adjacent pair's rate with a threshold.
//
// A pair is reported once for the whole corpus, at its earliest
// occurrence, so the output does not depend on how often it repeats.
type Validator struct {
	normaliser   driven.Normaliser
	threshold    float64
	minPairCount int
}

// Option configures the co-occurrence validator.
type Option func(*Validator)

// WithThreshold sets the rate above which a pair is flagged.
func WithThreshold(threshold float64) Option {
	return func(v *Validator) {
		v.threshold = threshold
	}
}

// WithMinPairCount sets the minimum pair count before a pair can be flagged.
func WithMinPairCount(n int) Option {
	return func(v *Validator) {
		if n > 0 {
			v.minPairCount = n
		}
	}
}

// New creates a co-occurrence validator with the default threshold.
func New(normaliser driven.Normaliser, opts ...Option) *Validator {
	v := &Validator{
		normaliser:   normaliser,
		threshold:    domain.DefaultCooccurrenceThreshold,
		minPairCount: domain.DefaultMinPairCount,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Name returns the validator name.
func (v *Validator) Name() string {
	return Name
}

// ValidateItem flags pairs whose earliest occurrence is in this item.
func (v *Validator) ValidateItem(item *domain.Item, evidence *domain.EvidenceSnapshot) []domain.Finding {
	if evidence == nil {
		return nil
	}

	var findings []domain.Finding
	for j := 0; j+1 < len(item.Units); j++ {
		left, right := &item.Units[j], &item.Units[j+1]
		if !left.IsBase() || !right.IsBase() {
			continue
		}

		lk, rk := v.normaliser.Key(left.Target), v.normaliser.Key(right.Target)
		if lk == "" || rk == "" {
			continue
		}

		entry, ok := evidence.Adjacency(lk, rk)
		if !ok || entry.FirstPosition != left.Position {
			continue
		}
		if entry.PairCount < v.minPairCount {
			continue
		}

		rate := entry.Rate()
		if rate <= v.threshold {
			continue
		}

		f := domain.NewFinding(domain.KindCooccurrenceFlag, item.Index,
			fmt.Sprintf("%q is followed by %q in %d of %d occurrences (rate %.2f > %.2f)",
				left.Target, right.Target, entry.PairCount, entry.LeftMarginal, rate, v.threshold),
			remediation).AtUnit(left.Position)
		f.Details.Rate = &rate
		f.Details.PairCount = entry.PairCount
		f.Details.LeftMarginal = entry.LeftMarginal
		f.Details.Positions = []domain.Position{left.Position, right.Position}

		findings = append(findings, f)
	}

	return findings
}
