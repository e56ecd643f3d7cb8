package plaintext

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/corpuslint/internal/core/domain"
)

func TestNew(t *testing.T) {
	normaliser, err := New(domain.DefaultRuleSet().Normalisation)
	require.NoError(t, err)
	require.NotNil(t, normaliser)
	assert.Equal(t, "plaintext/whitespace", normaliser.Name())
}

func TestNew_UnsupportedTokeniser(t *testing.T) {
	rules := domain.DefaultRuleSet().Normalisation
	rules.Tokeniser = "morphological"

	_, err := New(rules)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnsupportedType))
}

func TestNew_UnsupportedUnicodeForm(t *testing.T) {
	rules := domain.DefaultRuleSet().Normalisation
	rules.UnicodeForm = "NFD"

	_, err := New(rules)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnsupportedType))
}

func TestTokens_Default(t *testing.T) {
	n := Default()

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"simple", "I want to go home now", []string{"i", "want", "to", "go", "home", "now"}},
		{"trailing punctuation", "Home now!", []string{"home", "now"}},
		{"collapses whitespace", "  I   want\tto ", []string{"i", "want", "to"}},
		{"keeps contractions whole", "Don't go", []string{"dont", "go"}},
		{"separates on loose punctuation", "yes, please", []string{"yes", "please"}},
		{"full-width compatibility", "ＡＢＣ", []string{"abc"}},
		{"case folding beyond ASCII", "ÉCOLE", []string{"école"}},
		{"empty", "", nil},
		{"punctuation only", "...", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, n.Tokens(tt.input))
		})
	}
}

func TestKey(t *testing.T) {
	n := Default()

	assert.Equal(t, "run", n.Key("Run."))
	assert.Equal(t, n.Key("I want"), n.Key("i  WANT"))
	assert.Equal(t, "", n.Key("?!"))
}

func TestTokens_NoFolding(t *testing.T) {
	n, err := New(domain.NormalisationRules{
		UnicodeForm: domain.UnicodeFormNone,
		Tokeniser:   domain.TokeniserWhitespace,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Home", "now!"}, n.Tokens("Home now!"))
}

func TestTokens_RuneTokeniser(t *testing.T) {
	rules := domain.DefaultRuleSet().Normalisation
	rules.Tokeniser = domain.TokeniserRune
	n, err := New(rules)
	require.NoError(t, err)

	assert.Equal(t, "plaintext/rune", n.Name())
	assert.Equal(t, []string{"我", "想", "回", "家"}, n.Tokens("我想回家。"))
	assert.Equal(t, "我 想", n.Key("我 想"))
	assert.Nil(t, n.Tokens("。 "))
}

func TestTokens_ConcurrentUse(t *testing.T) {
	n := Default()
	done := make(chan []string, 8)

	for i := 0; i < 8; i++ {
		go func() {
			done <- n.Tokens("Concurrent Callers SHARE one normaliser")
		}()
	}

	for i := 0; i < 8; i++ {
		assert.Equal(t, []string{"concurrent", "callers", "share", "one", "normaliser"}, <-done)
	}
}
