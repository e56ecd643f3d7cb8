// Package tiling checks that an item's units reconstruct its target text.
package tiling

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/corpuslint/internal/core/domain"
	"github.com/custodia-labs/corpuslint/internal/core/ports/driven"
)

// Name is the validator name used in configuration.
const Name = "tiling"

const remediation = "re-segment the item so that its units, joined in order, reproduce the item's target text"

// Ensure Validator implements the interface.
var _ driven.ItemValidator = (*Validator)(nil)

// Validator joins unit targets and compares them with the item target
// after normalising both sides identically.
type Validator struct {
	normaliser driven.Normaliser
	joiner     string
}

// Option configures the tiling validator.
type Option func(*Validator)

// WithJoiner sets the string placed between unit targets.
func WithJoiner(joiner string) Option {
	return func(v *Validator) {
		v.joiner = joiner
	}
}

// New creates a tiling validator. The default joiner is a single space.
func New(normaliser driven.Normaliser, opts ...Option) *Validator {
	v := &Validator{
		normaliser: normaliser,
		joiner:     domain.DefaultJoiner,
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

// ValidateItem reports malformed records and reconstruction mismatches.
func (v *Validator) ValidateItem(item *domain.Item, _ *domain.EvidenceSnapshot) []domain.Finding {
	if len(item.Units) == 0 {
		return []domain.Finding{domain.NewFinding(domain.KindTilingFailure, item.Index,
			fmt.Sprintf("item %d has no units", item.Index),
			"decompose the item into at least one unit")}
	}

	want := v.normaliser.Tokens(item.Target)
	if len(want) == 0 {
		return []domain.Finding{domain.NewFinding(domain.KindTilingFailure, item.Index,
			fmt.Sprintf("item %d has an empty target text", item.Index),
			"supply the item's target text")}
	}

	var findings []domain.Finding
	parts := make([]string, len(item.Units))
	for j := range item.Units {
		u := &item.Units[j]
		parts[j] = u.Target
		if len(v.normaliser.Tokens(u.Target)) == 0 {
			findings = append(findings, domain.NewFinding(domain.KindTilingFailure, item.Index,
				fmt.Sprintf("unit %d of item %d has an empty target text", u.IntraIndex, item.Index),
				"remove the empty unit or give it the text it stands for").AtUnit(u.Position))
		}
	}

	reconstruction := strings.Join(parts, v.joiner)
	got := v.normaliser.Tokens(reconstruction)
	if equalTokens(want, got) {
		return findings
	}

	missing := difference(want, got)
	extra := difference(got, want)

	msg := fmt.Sprintf("units of item %d reconstruct %q instead of %q", item.Index, reconstruction, item.Target)
	if len(missing) == 0 && len(extra) == 0 {
		msg += " (token order or repetition differs)"
	}

	f := domain.NewFinding(domain.KindTilingFailure, item.Index, msg, remediation)
	f.Details.MissingTokens = missing
	f.Details.ExtraTokens = extra
	f.Details.Reconstruction = reconstruction

	return append(findings, f)
}

func equalTokens(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// difference returns the distinct tokens of a absent from b, in order of
// first appearance in a.
func difference(a, b []string) []string {
	inB := make(map[string]struct{}, len(b))
	for _, t := range b {
		inB[t] = struct{}{}
	}

	var out []string
	seen := make(map[string]struct{})
	for _, t := range a {
		if _, ok := inB[t]; ok {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
