package domain

import "sort"

// Realisation is one distinct source-text realisation of a canonical key.
type Realisation struct {
	// Text is the raw source text seen at FirstPosition.
	Text string

	// FirstPosition is the earliest position this realisation occurs at.
	FirstPosition Position
}

// CanonicalEntry records every realisation of one normalised target text.
// FirstPosition is always the minimum position among all standalone BASE
// occurrences of Key, whatever order they were observed in.
type CanonicalEntry struct {
	// Key is the normalised target text.
	Key string

	// FirstPosition is the position that established the mapping.
	FirstPosition Position

	// FirstSource is the raw source text at FirstPosition.
	FirstSource string

	// FirstSourceKey is the normalised form of FirstSource.
	FirstSourceKey string

	// Realisations maps normalised source text to its realisation.
	Realisations map[string]Realisation
}

// Ambiguous reports whether more than one distinct realisation was observed.
func (e *CanonicalEntry) Ambiguous() bool {
	return len(e.Realisations) > 1
}

// SortedRealisations returns realisations ordered by first position.
func (e *CanonicalEntry) SortedRealisations() []Realisation {
	out := make([]Realisation, 0, len(e.Realisations))
	for _, r := range e.Realisations {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].FirstPosition < out[j].FirstPosition
	})
	return out
}

// PairKey is an ordered pair of normalised target texts.
type PairKey struct {
	Left  string
	Right string
}

// AdjacencyEntry holds co-occurrence counts for one ordered pair of
// immediately adjacent BASE units.
type AdjacencyEntry struct {
	// Key identifies the ordered pair.
	Key PairKey

	// PairCount is how often Right immediately followed Left.
	PairCount int

	// LeftMarginal is how often Left occurred as a BASE unit anywhere.
	LeftMarginal int

	// FirstPosition is the position of the left unit at the pair's
	// earliest occurrence.
	FirstPosition Position
}

// Rate returns PairCount / LeftMarginal, or 0 when Left was never seen.
func (e AdjacencyEntry) Rate() float64 {
	if e.LeftMarginal == 0 {
		return 0
	}
	return float64(e.PairCount) / float64(e.LeftMarginal)
}

// EvidenceSnapshot is the immutable, corpus-wide evidence built once per
// corpus version. It is safe for concurrent reads without locking.
type EvidenceSnapshot struct {
	version   string
	canonical map[string]*CanonicalEntry
	pairs     map[PairKey]int
	pairFirst map[PairKey]Position
	marginals map[string]int
}

// NewEvidenceSnapshot wraps fully built tables in a snapshot.
// Ownership of the maps passes to the snapshot; callers must not retain them.
func NewEvidenceSnapshot(
	version string,
	canonical map[string]*CanonicalEntry,
	pairs map[PairKey]int,
	pairFirst map[PairKey]Position,
	marginals map[string]int,
) *EvidenceSnapshot {
	return &EvidenceSnapshot{
		version:   version,
		canonical: canonical,
		pairs:     pairs,
		pairFirst: pairFirst,
		marginals: marginals,
	}
}

// Version returns the corpus version the snapshot was built from.
func (s *EvidenceSnapshot) Version() string {
	return s.version
}

// Canonical returns the canonical entry for a normalised target text.
func (s *EvidenceSnapshot) Canonical(key string) (*CanonicalEntry, bool) {
	e, ok := s.canonical[key]
	return e, ok
}

// CanonicalKeys returns all canonical keys in sorted order.
func (s *EvidenceSnapshot) CanonicalKeys() []string {
	keys := make([]string, 0, len(s.canonical))
	for k := range s.canonical {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Marginal returns how often a normalised text occurred as a BASE unit.
func (s *EvidenceSnapshot) Marginal(key string) int {
	return s.marginals[key]
}

// Adjacency returns the statistics for an ordered pair.
func (s *EvidenceSnapshot) Adjacency(left, right string) (AdjacencyEntry, bool) {
	k := PairKey{Left: left, Right: right}
	n, ok := s.pairs[k]
	if !ok {
		return AdjacencyEntry{}, false
	}
	return AdjacencyEntry{
		Key:           k,
		PairCount:     n,
		LeftMarginal:  s.marginals[left],
		FirstPosition: s.pairFirst[k],
	}, true
}

// Pairs returns every observed pair, ordered by first position.
func (s *EvidenceSnapshot) Pairs() []AdjacencyEntry {
	out := make([]AdjacencyEntry, 0, len(s.pairs))
	for k := range s.pairs {
		e, _ := s.Adjacency(k.Left, k.Right)
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FirstPosition != out[j].FirstPosition {
			return out[i].FirstPosition < out[j].FirstPosition
		}
		if out[i].Key.Left != out[j].Key.Left {
			return out[i].Key.Left < out[j].Key.Left
		}
		return out[i].Key.Right < out[j].Key.Right
	})
	return out
}
