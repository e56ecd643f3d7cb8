package file

import "github.com/custodia-labs/corpuslint/internal/core/domain"

// rulesFile mirrors the TOML layout of the rule file.
type rulesFile struct {
	Cooccurrence  cooccurrenceSection  `toml:"cooccurrence"`
	Consistency   consistencySection   `toml:"consistency"`
	Tiling        tilingSection        `toml:"tiling"`
	Normalisation normalisationSection `toml:"normalisation"`
	Structural    structuralSection    `toml:"structural"`
	Engine        engineSection        `toml:"engine"`
}

type cooccurrenceSection struct {
	Threshold    float64 `toml:"threshold" validate:"gt=0,lte=1"`
	MinPairCount int     `toml:"min_pair_count" validate:"gte=1"`
}

type consistencySection struct {
	NormaliseSource bool `toml:"normalise_source"`
}

type tilingSection struct {
	Joiner string `toml:"joiner"`
}

type normalisationSection struct {
	FoldCase         bool   `toml:"fold_case"`
	StripPunctuation bool   `toml:"strip_punctuation"`
	UnicodeForm      string `toml:"unicode_form" validate:"oneof=NFKC NFC none"`
	Tokeniser        string `toml:"tokeniser" validate:"oneof=whitespace rune"`
}

type structuralSection struct {
	BoundaryClassTexts []string           `toml:"boundary_class_texts" validate:"dive,required"`
	BoundarySide       string             `toml:"boundary_side" validate:"oneof=source target"`
	IsolatedBoundary   bool               `toml:"isolated_boundary"`
	PairingHeuristics  []heuristicSection `toml:"pairing_heuristics" validate:"dive"`
}

type heuristicSection struct {
	ID           string   `toml:"id" validate:"required"`
	LeftClass    []string `toml:"left_class" validate:"required,min=1,dive,required"`
	RightPattern string   `toml:"right_pattern" validate:"required,regexp"`
	Side         string   `toml:"side,omitempty" validate:"omitempty,oneof=source target"`
}

type engineSection struct {
	Shards  int `toml:"shards" validate:"gte=0,lte=1024"`
	Workers int `toml:"workers" validate:"gte=0,lte=1024"`
}

func fromRuleSet(r domain.RuleSet) rulesFile {
	f := rulesFile{
		Cooccurrence: cooccurrenceSection{
			Threshold:    r.Cooccurrence.Threshold,
			MinPairCount: r.Cooccurrence.MinPairCount,
		},
		Consistency: consistencySection{NormaliseSource: r.Consistency.NormaliseSource},
		Tiling:      tilingSection{Joiner: r.Tiling.Joiner},
		Normalisation: normalisationSection{
			FoldCase:         r.Normalisation.FoldCase,
			StripPunctuation: r.Normalisation.StripPunctuation,
			UnicodeForm:      r.Normalisation.UnicodeForm,
			Tokeniser:        r.Normalisation.Tokeniser,
		},
		Structural: structuralSection{
			BoundaryClassTexts: r.Structural.BoundaryClassTexts,
			BoundarySide:       string(r.Structural.BoundarySide),
			IsolatedBoundary:   r.Structural.FlagIsolatedBoundary,
		},
		Engine: engineSection{
			Shards:  r.Engine.Shards,
			Workers: r.Engine.Workers,
		},
	}
	if f.Structural.BoundarySide == "" {
		f.Structural.BoundarySide = string(domain.SideTarget)
	}
	for _, h := range r.Structural.PairingHeuristics {
		f.Structural.PairingHeuristics = append(f.Structural.PairingHeuristics, heuristicSection{
			ID:           h.ID,
			LeftClass:    h.LeftClass,
			RightPattern: h.RightPattern,
			Side:         string(h.Side),
		})
	}
	return f
}

func (f rulesFile) toRuleSet() domain.RuleSet {
	r := domain.RuleSet{
		Cooccurrence: domain.CooccurrenceRules{
			Threshold:    f.Cooccurrence.Threshold,
			MinPairCount: f.Cooccurrence.MinPairCount,
		},
		Consistency: domain.ConsistencyRules{NormaliseSource: f.Consistency.NormaliseSource},
		Tiling:      domain.TilingRules{Joiner: f.Tiling.Joiner},
		Normalisation: domain.NormalisationRules{
			FoldCase:         f.Normalisation.FoldCase,
			StripPunctuation: f.Normalisation.StripPunctuation,
			UnicodeForm:      f.Normalisation.UnicodeForm,
			Tokeniser:        f.Normalisation.Tokeniser,
		},
		Structural: domain.StructuralRules{
			BoundaryClassTexts:   f.Structural.BoundaryClassTexts,
			BoundarySide:         domain.TextSide(f.Structural.BoundarySide),
			FlagIsolatedBoundary: f.Structural.IsolatedBoundary,
		},
		Engine: domain.EngineRules{
			Shards:  f.Engine.Shards,
			Workers: f.Engine.Workers,
		},
	}
	for _, h := range f.Structural.PairingHeuristics {
		side := domain.TextSide(h.Side)
		if side == "" {
			side = domain.SideSource
		}
		r.Structural.PairingHeuristics = append(r.Structural.PairingHeuristics, domain.PairingHeuristic{
			ID:           h.ID,
			LeftClass:    h.LeftClass,
			RightPattern: h.RightPattern,
			Side:         side,
		})
	}
	return r
}

// Template is the commented rule file written by "corpuslint rules init".
const Template = `# corpuslint rules

[cooccurrence]
# Flag adjacent BASE units whose pair rate exceeds this value (strictly greater).
threshold = 0.70
# Only flag pairs seen at least this many times.
min_pair_count = 1

[consistency]
# Compare source realisations after normalisation instead of verbatim.
normalise_source = false

[tiling]
# Placed between unit target texts when reconstructing an item.
joiner = " "

[normalisation]
fold_case = true
strip_punctuation = true
# One of NFKC, NFC, none.
unicode_form = "NFKC"
# "whitespace" splits on spaces; "rune" makes every letter a token.
tokeniser = "whitespace"

[structural]
# Texts that must not open or close a COMPOSITE unit.
boundary_class_texts = []
# Which side of a unit is compared: "source" or "target".
boundary_side = "target"
# Also flag BASE units consisting only of a boundary-class text.
isolated_boundary = false

# [[structural.pairing_heuristics]]
# id = "aux-participle"
# left_class = ["have", "has", "had"]
# right_pattern = "ed$"
# side = "target"

[engine]
# Zero picks a default.
shards = 0
workers = 0
`
