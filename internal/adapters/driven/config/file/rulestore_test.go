package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/corpuslint/internal/core/domain"
)

func newTestStore(t *testing.T) *RuleStore {
	t.Helper()
	store, err := NewRuleStore(filepath.Join(t.TempDir(), RulesFile))
	require.NoError(t, err)
	return store
}

func TestNewRuleStore_DefaultPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	store, err := NewRuleStore("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".corpuslint", RulesFile), store.Path())
}

func TestRuleStore_LoadMissingFileGivesDefaults(t *testing.T) {
	rules, err := newTestStore(t).Load()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultRuleSet(), rules)
}

func TestRuleStore_TemplateParsesToDefaults(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.WriteTemplate(false))

	rules, err := store.Load()
	require.NoError(t, err)

	want := domain.DefaultRuleSet()
	assert.Equal(t, want.Cooccurrence, rules.Cooccurrence)
	assert.Equal(t, want.Consistency, rules.Consistency)
	assert.Equal(t, want.Tiling, rules.Tiling)
	assert.Equal(t, want.Normalisation, rules.Normalisation)
	assert.Equal(t, domain.SideTarget, rules.Structural.BoundarySide)
	assert.Empty(t, rules.Structural.BoundaryClassTexts)
	assert.Empty(t, rules.Structural.PairingHeuristics)
}

func TestRuleStore_WriteTemplateRefusesOverwrite(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.WriteTemplate(false))

	assert.Error(t, store.WriteTemplate(false))
	assert.NoError(t, store.WriteTemplate(true))
}

func TestRuleStore_ParsePartialKeepsDefaults(t *testing.T) {
	rules, err := newTestStore(t).Parse([]byte(`
[cooccurrence]
threshold = 0.85

[structural]
boundary_class_texts = ["de", "que"]
isolated_boundary = true

[[structural.pairing_heuristics]]
id = "aux-participle"
left_class = ["have", "has"]
right_pattern = "ed$"
`))
	require.NoError(t, err)

	assert.InDelta(t, 0.85, rules.Cooccurrence.Threshold, 1e-9)
	assert.Equal(t, domain.DefaultMinPairCount, rules.Cooccurrence.MinPairCount)
	assert.Equal(t, domain.DefaultJoiner, rules.Tiling.Joiner)
	assert.Equal(t, []string{"de", "que"}, rules.Structural.BoundaryClassTexts)
	assert.True(t, rules.Structural.FlagIsolatedBoundary)
	require.Len(t, rules.Structural.PairingHeuristics, 1)
	assert.Equal(t, domain.PairingHeuristic{
		ID:           "aux-participle",
		LeftClass:    []string{"have", "has"},
		RightPattern: "ed$",
		Side:         domain.SideSource,
	}, rules.Structural.PairingHeuristics[0])
}

func TestRuleStore_ParseNormaliseSource(t *testing.T) {
	rules, err := newTestStore(t).Parse([]byte("[consistency]\nnormalise_source = true\n"))

	require.NoError(t, err)
	assert.True(t, rules.Consistency.NormaliseSource)
	assert.False(t, domain.DefaultRuleSet().Consistency.NormaliseSource)
}

func TestRuleStore_ParseEmptyJoiner(t *testing.T) {
	rules, err := newTestStore(t).Parse([]byte("[tiling]\njoiner = \"\"\n"))

	require.NoError(t, err)
	assert.Equal(t, "", rules.Tiling.Joiner)
}

func TestRuleStore_ParseInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"threshold above one", "[cooccurrence]\nthreshold = 1.5\n", "cooccurrence.threshold"},
		{"threshold zero", "[cooccurrence]\nthreshold = 0.0\n", "cooccurrence.threshold"},
		{"min pair count zero", "[cooccurrence]\nmin_pair_count = 0\n", "cooccurrence.min_pair_count"},
		{"unknown tokeniser", "[normalisation]\ntokeniser = \"bpe\"\n", "normalisation.tokeniser"},
		{"unknown form", "[normalisation]\nunicode_form = \"NFD\"\n", "normalisation.unicode_form"},
		{"bad side", "[structural]\nboundary_side = \"left\"\n", "structural.boundary_side"},
		{"bad pattern", "[[structural.pairing_heuristics]]\nid = \"x\"\nleft_class = [\"a\"]\nright_pattern = \"(\"\n", "right_pattern"},
		{"missing id", "[[structural.pairing_heuristics]]\nleft_class = [\"a\"]\nright_pattern = \"b\"\n", ".id"},
		{"empty left class", "[[structural.pairing_heuristics]]\nid = \"x\"\nleft_class = []\nright_pattern = \"b\"\n", "left_class"},
		{"duplicate id", "[[structural.pairing_heuristics]]\nid = \"x\"\nleft_class = [\"a\"]\nright_pattern = \"b\"\n" +
			"[[structural.pairing_heuristics]]\nid = \"x\"\nleft_class = [\"c\"]\nright_pattern = \"d\"\n", "duplicate"},
		{"unknown key", "[cooccurrence]\nthreshhold = 0.5\n", "threshhold"},
		{"malformed toml", "[cooccurrence\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestStore(t).Parse([]byte(tt.content))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidRules)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestRuleStore_SaveAndLoad(t *testing.T) {
	store := newTestStore(t)

	rules := domain.DefaultRuleSet()
	rules.Cooccurrence.Threshold = 0.9
	rules.Tiling.Joiner = ""
	rules.Normalisation.Tokeniser = domain.TokeniserRune
	rules.Structural.BoundaryClassTexts = []string{"of"}
	rules.Structural.PairingHeuristics = []domain.PairingHeuristic{
		{ID: "h1", LeftClass: []string{"will"}, RightPattern: "^go", Side: domain.SideTarget},
	}
	rules.Engine.Workers = 8

	require.NoError(t, store.Save(rules))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, rules, loaded)
}

func TestRuleStore_SaveRejectsInvalid(t *testing.T) {
	rules := domain.DefaultRuleSet()
	rules.Cooccurrence.Threshold = 2

	err := newTestStore(t).Save(rules)
	assert.ErrorIs(t, err, domain.ErrInvalidRules)
}

func TestRuleStore_EncodeRoundTrips(t *testing.T) {
	store := newTestStore(t)
	rules := domain.DefaultRuleSet()
	rules.Cooccurrence.Threshold = 0.8
	rules.Structural.BoundaryClassTexts = []string{"the", "a"}

	data, err := store.Encode(rules)
	require.NoError(t, err)
	assert.Contains(t, string(data), "0.8")

	parsed, err := store.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, rules.Cooccurrence, parsed.Cooccurrence)
	assert.Equal(t, rules.Structural.BoundaryClassTexts, parsed.Structural.BoundaryClassTexts)
}
