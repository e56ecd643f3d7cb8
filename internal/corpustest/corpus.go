// Package corpustest builds small corpora for tests.
package corpustest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/corpuslint/internal/core/domain"
)

// Base returns a BASE unit.
func Base(target, source string) domain.Unit {
	return domain.Unit{Kind: domain.UnitKindBase, Target: target, Source: source}
}

// Composite returns a COMPOSITE unit with the given components.
func Composite(target, source string, components ...domain.SubPair) domain.Unit {
	return domain.Unit{Kind: domain.UnitKindComposite, Target: target, Source: source, Components: components}
}

// Pair returns a composite component.
func Pair(target, source string) domain.SubPair {
	return domain.SubPair{Target: target, Source: source}
}

// At returns u with an explicit position.
func At(u domain.Unit, p domain.Position) domain.Unit {
	u.Position = p
	return u
}

// Item returns an item with the given units.
func Item(source, target string, units ...domain.Unit) domain.Item {
	return domain.Item{Source: source, Target: target, Units: units}
}

// Corpus assigns sequential positions from 0 and builds the corpus.
func Corpus(t testing.TB, version string, items ...domain.Item) *domain.Corpus {
	t.Helper()
	domain.AssignPositions(items)
	c, err := domain.NewCorpus(version, items)
	require.NoError(t, err)
	return c
}

// Positioned fills item and intra indices but keeps the units' explicit
// positions, then builds the corpus.
func Positioned(t testing.TB, version string, items ...domain.Item) *domain.Corpus {
	t.Helper()
	for i := range items {
		items[i].Index = i
		for j := range items[i].Units {
			items[i].Units[j].ItemIndex = i
			items[i].Units[j].IntraIndex = j
		}
	}
	c, err := domain.NewCorpus(version, items)
	require.NoError(t, err)
	return c
}

// Kinds returns the kind of every finding, in order.
func Kinds(findings []domain.Finding) []domain.FindingKind {
	out := make([]domain.FindingKind, len(findings))
	for i, f := range findings {
		out[i] = f.Kind
	}
	return out
}

// OfKind returns the findings of one kind, in order.
func OfKind(findings []domain.Finding, kind domain.FindingKind) []domain.Finding {
	var out []domain.Finding
	for _, f := range findings {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}
