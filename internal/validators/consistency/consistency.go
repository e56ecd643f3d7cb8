// Package consistency enforces one canonical source realisation per
// recurring unit text (first come, first served).
package consistency

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/corpuslint/internal/core/domain"
	"github.com/custodia-labs/corpuslint/internal/core/ports/driven"
)

// Name is the validator name used in configuration.
const Name = "consistency"

// Remediation is the hint attached to every consistency violation.
const Remediation = "merge this unit with adjacent context into a COMPOSITE unit " +
	"so the ambiguous text is disambiguated by its surroundings."

// Ensure Validator implements the interface.
var _ driven.ItemValidator = (*Validator)(nil)

// Validator checks standalone BASE units against the canonical mapping.
// The earliest occurrence of a text is canonical and is never flagged.
// Source realisations are compared on the raw source text unless
// WithNormalisedSource is set; it must match the evidence engine's setting.
type Validator struct {
	normaliser      driven.Normaliser
	normaliseSource bool
}

// Option configures the consistency validator.
type Option func(*Validator)

// WithNormalisedSource compares source texts after normalisation.
func WithNormalisedSource(on bool) Option {
	return func(v *Validator) {
		v.normaliseSource = on
	}
}

// New creates a consistency validator.
func New(normaliser driven.Normaliser, opts ...Option) *Validator {
	v := &Validator{normaliser: normaliser}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Name returns the validator name.
func (v *Validator) Name() string {
	return Name
}

// ValidateItem flags BASE units whose source realisation diverges from
// the canonical one.
func (v *Validator) ValidateItem(item *domain.Item, evidence *domain.EvidenceSnapshot) []domain.Finding {
	if evidence == nil {
		return nil
	}

	var findings []domain.Finding
	for j := range item.Units {
		u := &item.Units[j]
		if !u.IsBase() {
			continue
		}

		key := v.normaliser.Key(u.Target)
		if key == "" {
			continue
		}

		entry, ok := evidence.Canonical(key)
		if !ok || !entry.Ambiguous() {
			continue
		}
		if u.Position == entry.FirstPosition {
			continue
		}
		if v.sourceKey(u.Source) == entry.FirstSourceKey {
			continue
		}

		realisations := entry.SortedRealisations()
		texts := make([]string, len(realisations))
		for i, r := range realisations {
			texts[i] = r.Text
		}

		f := domain.NewFinding(domain.KindConsistencyViolation, item.Index,
			fmt.Sprintf("%q is realised as %q at position %d, but position %d established %q (observed: %s)",
				u.Target, u.Source, u.Position, entry.FirstPosition, entry.FirstSource, quoteAll(texts)),
			Remediation).AtUnit(u.Position)
		f.Details.Realisations = texts
		f.Details.CanonicalPosition = domain.PositionRef(entry.FirstPosition)
		f.Details.CanonicalSource = entry.FirstSource

		findings = append(findings, f)
	}

	return findings
}

func (v *Validator) sourceKey(source string) string {
	if v.normaliseSource {
		return v.normaliser.Key(source)
	}
	return source
}

func quoteAll(texts []string) string {
	quoted := make([]string, len(texts))
	for i, t := range texts {
		quoted[i] = fmt.Sprintf("%q", t)
	}
	return strings.Join(quoted, ", ")
}
