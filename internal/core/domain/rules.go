package domain

// Default rule values.
const (
	// DefaultCooccurrenceThreshold is the rate above which a pair is flagged.
	DefaultCooccurrenceThreshold = 0.70

	// DefaultMinPairCount flags pairs regardless of how often they occur.
	DefaultMinPairCount = 1

	// DefaultJoiner joins unit targets when reconstructing an item.
	DefaultJoiner = " "

	// TokeniserWhitespace splits normalised text on whitespace.
	TokeniserWhitespace = "whitespace"

	// TokeniserRune treats every letter or digit as its own token, for
	// scripts without whitespace-delimited words.
	TokeniserRune = "rune"

	// UnicodeFormNFKC applies compatibility composition before folding.
	UnicodeFormNFKC = "NFKC"

	// UnicodeFormNFC applies canonical composition before folding.
	UnicodeFormNFC = "NFC"

	// UnicodeFormNone leaves code points untouched.
	UnicodeFormNone = "none"
)

// TextSide selects which text of a unit a rule inspects.
type TextSide string

// Available text sides.
const (
	SideSource TextSide = "source"
	SideTarget TextSide = "target"
)

// Of returns the unit text on this side. Unknown sides read the source text.
func (s TextSide) Of(u *Unit) string {
	if s == SideTarget {
		return u.Target
	}
	return u.Source
}

// OfPair returns the sub-pair text on this side.
func (s TextSide) OfPair(p SubPair) string {
	if s == SideTarget {
		return p.Target
	}
	return p.Source
}

// RuleSet is the complete, corpus-independent configuration surface.
type RuleSet struct {
	Cooccurrence  CooccurrenceRules
	Consistency   ConsistencyRules
	Tiling        TilingRules
	Normalisation NormalisationRules
	Structural    StructuralRules
	Engine        EngineRules
}

// CooccurrenceRules configures the co-occurrence validator.
type CooccurrenceRules struct {
	// Threshold is compared with a strict greater-than.
	Threshold float64

	// MinPairCount is the minimum pair count before a pair can be flagged.
	MinPairCount int
}

// ConsistencyRules configures how source realisations are compared.
type ConsistencyRules struct {
	// NormaliseSource compares source texts after normalisation, so
	// "corre" and "Corre!" count as one realisation. Off by default.
	NormaliseSource bool
}

// TilingRules configures how units are joined back into an item.
type TilingRules struct {
	Joiner string
}

// NormalisationRules configures the pluggable text normaliser.
type NormalisationRules struct {
	FoldCase         bool
	StripPunctuation bool
	UnicodeForm      string
	Tokeniser        string
}

// PairingHeuristic flags a left unit from a closed class followed
// immediately by a right unit matching a pattern.
type PairingHeuristic struct {
	ID           string
	LeftClass    []string
	RightPattern string
	Side         TextSide
}

// StructuralRules configures the structural rule validator.
type StructuralRules struct {
	// BoundaryClassTexts must never open or close a multi-unit construction.
	BoundaryClassTexts []string

	// BoundarySide selects the text compared with BoundaryClassTexts.
	BoundarySide TextSide

	// FlagIsolatedBoundary also flags BASE units that consist solely of a
	// boundary-class text inside a multi-unit item.
	FlagIsolatedBoundary bool

	PairingHeuristics []PairingHeuristic
}

// EngineRules configures parallelism. Zero means "pick a default".
type EngineRules struct {
	Shards  int
	Workers int
}

// DefaultRuleSet returns the built-in configuration.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		Cooccurrence: CooccurrenceRules{
			Threshold:    DefaultCooccurrenceThreshold,
			MinPairCount: DefaultMinPairCount,
		},
		Tiling: TilingRules{
			Joiner: DefaultJoiner,
		},
		Normalisation: NormalisationRules{
			FoldCase:         true,
			StripPunctuation: true,
			UnicodeForm:      UnicodeFormNFKC,
			Tokeniser:        TokeniserWhitespace,
		},
		Structural: StructuralRules{
			BoundarySide: SideTarget,
		},
	}
}
