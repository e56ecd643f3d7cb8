package domain

import "time"

// FindingKind classifies a validator output.
type FindingKind string

// Finding kinds, in report order.
const (
	KindTilingFailure        FindingKind = "TilingFailure"
	KindConsistencyViolation FindingKind = "ConsistencyViolation"
	KindCooccurrenceFlag     FindingKind = "CooccurrenceFlag"
	KindStructuralViolation  FindingKind = "StructuralViolation"
	KindGateViolation        FindingKind = "GateViolation"
	KindOperativeUnitMissing FindingKind = "OperativeUnitMissing"
	KindCulminatingMismatch  FindingKind = "CulminatingMismatch"
)

// AllKinds returns every finding kind in report order.
func AllKinds() []FindingKind {
	return []FindingKind{
		KindTilingFailure,
		KindConsistencyViolation,
		KindCooccurrenceFlag,
		KindStructuralViolation,
		KindGateViolation,
		KindOperativeUnitMissing,
		KindCulminatingMismatch,
	}
}

// Rank returns the kind's sort rank; unknown kinds sort last.
func (k FindingKind) Rank() int {
	for i, known := range AllKinds() {
		if k == known {
			return i
		}
	}
	return len(AllKinds())
}

// DefaultSeverity returns the severity a kind is always reported with.
func (k FindingKind) DefaultSeverity() Severity {
	switch k {
	case KindTilingFailure, KindGateViolation, KindOperativeUnitMissing, KindCulminatingMismatch:
		return SeverityFatal
	default:
		return SeverityAdvisory
	}
}

// String returns the string representation.
func (k FindingKind) String() string {
	return string(k)
}

// Severity says whether an artefact may still be used downstream.
type Severity string

// Available severities.
const (
	// SeverityFatal marks a structurally broken artefact.
	SeverityFatal Severity = "Fatal"

	// SeverityAdvisory marks a likely authoring or segmentation defect.
	SeverityAdvisory Severity = "Advisory"
)

// FindingDetails carries kind-specific evidence. Only the fields relevant
// to the finding's kind are set.
type FindingDetails struct {
	MissingTokens     []string   `json:"missing_tokens,omitempty"`
	ExtraTokens       []string   `json:"extra_tokens,omitempty"`
	Reconstruction    string     `json:"reconstruction,omitempty"`
	Realisations      []string   `json:"realisations,omitempty"`
	CanonicalPosition *Position  `json:"canonical_position,omitempty"`
	CanonicalSource   string     `json:"canonical_source,omitempty"`
	Rate              *float64   `json:"rate,omitempty"`
	PairCount         int        `json:"pair_count,omitempty"`
	LeftMarginal      int        `json:"left_marginal,omitempty"`
	RuleID            string     `json:"rule_id,omitempty"`
	Positions         []Position `json:"positions,omitempty"`
	OffendingToken    string     `json:"offending_token,omitempty"`
	SourcePosition    *Position  `json:"source_position,omitempty"`
	PhraseTarget      string     `json:"phrase_target,omitempty"`
}

// Finding is one immutable validator output.
type Finding struct {
	Kind            FindingKind    `json:"kind"`
	Severity        Severity       `json:"severity"`
	ItemIndex       int            `json:"item_index"`
	UnitPosition    *Position      `json:"unit_position,omitempty"`
	Message         string         `json:"message"`
	RemediationHint string         `json:"remediation_hint,omitempty"`
	Details         FindingDetails `json:"details"`
}

// NewFinding creates a finding with the kind's default severity.
func NewFinding(kind FindingKind, itemIndex int, message, hint string) Finding {
	return Finding{
		Kind:            kind,
		Severity:        kind.DefaultSeverity(),
		ItemIndex:       itemIndex,
		Message:         message,
		RemediationHint: hint,
	}
}

// AtUnit returns a copy of the finding anchored at a unit position.
func (f Finding) AtUnit(p Position) Finding {
	f.UnitPosition = PositionRef(p)
	return f
}

// PositionRef returns a pointer to a copy of p.
func PositionRef(p Position) *Position {
	return &p
}

// SummaryCount is the number of findings for one (kind, severity) pair.
type SummaryCount struct {
	Kind     FindingKind `json:"kind"`
	Severity Severity    `json:"severity"`
	Count    int         `json:"count"`
}

// Summary aggregates a report's findings.
type Summary struct {
	Counts   []SummaryCount `json:"counts"`
	Fatal    int            `json:"fatal"`
	Advisory int            `json:"advisory"`
}

// Report is the complete, deterministic output of one validation run.
type Report struct {
	ID            string    `json:"id"`
	CorpusVersion string    `json:"corpus_version"`
	GeneratedAt   time.Time `json:"generated_at"`
	Findings      []Finding `json:"findings"`
	Summary       Summary   `json:"summary"`
}

// HasFatal reports whether any finding is Fatal.
func (r *Report) HasFatal() bool {
	return r.Summary.Fatal > 0
}

// Count returns the number of findings of a kind.
func (r *Report) Count(kind FindingKind) int {
	n := 0
	for _, c := range r.Summary.Counts {
		if c.Kind == kind {
			n += c.Count
		}
	}
	return n
}

// ReportSummary is a stored report's header, used for history listings.
type ReportSummary struct {
	ID            string
	CorpusVersion string
	GeneratedAt   time.Time
	Fatal         int
	Advisory      int
}
