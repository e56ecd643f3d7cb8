package services

import (
	"sort"

	"github.com/custodia-labs/corpuslint/internal/core/domain"
)

// Aggregate merges validator buffers into a report without ID or
// timestamp. Findings are stably sorted by item index, then kind, then
// unit position (findings without a position first); equal findings keep
// buffer order. Every finding carries its kind's severity.
func Aggregate(corpusVersion string, buffers ...[]domain.Finding) *domain.Report {
	n := 0
	for _, b := range buffers {
		n += len(b)
	}

	findings := make([]domain.Finding, 0, n)
	for _, b := range buffers {
		for _, f := range b {
			f.Severity = f.Kind.DefaultSeverity()
			findings = append(findings, f)
		}
	}

	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.ItemIndex != b.ItemIndex {
			return a.ItemIndex < b.ItemIndex
		}
		if ra, rb := a.Kind.Rank(), b.Kind.Rank(); ra != rb {
			return ra < rb
		}
		return positionLess(a.UnitPosition, b.UnitPosition)
	})

	return &domain.Report{
		CorpusVersion: corpusVersion,
		Findings:      findings,
		Summary:       summarise(findings),
	}
}

func positionLess(a, b *domain.Position) bool {
	switch {
	case a == nil:
		return b != nil
	case b == nil:
		return false
	default:
		return *a < *b
	}
}

func summarise(findings []domain.Finding) domain.Summary {
	byKind := make(map[domain.FindingKind]int)
	s := domain.Summary{Counts: []domain.SummaryCount{}}

	for _, f := range findings {
		byKind[f.Kind]++
		if f.Severity == domain.SeverityFatal {
			s.Fatal++
		} else {
			s.Advisory++
		}
	}

	for _, sev := range []domain.Severity{domain.SeverityFatal, domain.SeverityAdvisory} {
		for _, kind := range domain.AllKinds() {
			if kind.DefaultSeverity() != sev || byKind[kind] == 0 {
				continue
			}
			s.Counts = append(s.Counts, domain.SummaryCount{Kind: kind, Severity: sev, Count: byKind[kind]})
		}
	}

	return s
}
