// Package plaintext provides the default text normaliser.
package plaintext

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/corpuslint/internal/core/domain"
	"github.com/custodia-labs/corpuslint/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser folds Unicode form, case and punctuation, then tokenises.
// It holds no mutable state and is safe for concurrent use.
type Normaliser struct {
	rules    domain.NormalisationRules
	form     *norm.Form
	tokenise func(string) []string
}

// New creates a normaliser from rules.
// Unknown tokenisers and Unicode forms return domain.ErrUnsupportedType.
func New(rules domain.NormalisationRules) (*Normaliser, error) {
	n := &Normaliser{rules: rules}

	switch rules.UnicodeForm {
	case domain.UnicodeFormNFKC, "":
		f := norm.NFKC
		n.form = &f
	case domain.UnicodeFormNFC:
		f := norm.NFC
		n.form = &f
	case domain.UnicodeFormNone:
	default:
		return nil, fmt.Errorf("%w: unicode form %q", domain.ErrUnsupportedType, rules.UnicodeForm)
	}

	switch rules.Tokeniser {
	case domain.TokeniserWhitespace, "":
		n.tokenise = strings.Fields
	case domain.TokeniserRune:
		n.tokenise = runeTokens
	default:
		return nil, fmt.Errorf("%w: tokeniser %q", domain.ErrUnsupportedType, rules.Tokeniser)
	}

	return n, nil
}

// Default returns a normaliser with the default rules.
func Default() *Normaliser {
	n, err := New(domain.DefaultRuleSet().Normalisation)
	if err != nil {
		panic(err) // defaults are always valid
	}
	return n
}

// Name returns the normaliser name.
func (n *Normaliser) Name() string {
	tok := n.rules.Tokeniser
	if tok == "" {
		tok = domain.TokeniserWhitespace
	}
	return "plaintext/" + tok
}

// Tokens returns the normalised tokens of text, or nil when there are none.
func (n *Normaliser) Tokens(text string) []string {
	if n.form != nil {
		text = n.form.String(text)
	}
	if n.rules.FoldCase {
		// Casers carry state, so one is created per call.
		text = cases.Fold().String(text)
	}
	if n.rules.StripPunctuation {
		text = stripPunctuation(text)
	}
	tokens := n.tokenise(text)
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

// Key returns the normalised tokens joined by single spaces.
func (n *Normaliser) Key(text string) string {
	return strings.Join(n.Tokens(text), " ")
}

// stripPunctuation deletes punctuation and symbols that sit between two
// letters or digits (so "don't" stays one word) and turns any other
// punctuation into whitespace.
func stripPunctuation(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))

	for i, r := range runes {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			b.WriteRune(r)
			continue
		}
		if i > 0 && i < len(runes)-1 && isWordRune(runes[i-1]) && isWordRune(runes[i+1]) {
			continue
		}
		b.WriteRune(' ')
	}

	return b.String()
}

// runeTokens makes every letter or digit its own token.
func runeTokens(s string) []string {
	var tokens []string
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		tokens = append(tokens, string(r))
	}
	return tokens
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}
