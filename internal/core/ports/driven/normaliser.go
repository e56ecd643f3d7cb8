package driven

// Normaliser folds text into comparison keys and tokens.
// Every validator in a run shares one Normaliser so that tiling,
// canonical mapping, co-occurrence and gating agree on what counts
// as "the same text".
type Normaliser interface {
	// Name returns the normaliser name for logging and configuration.
	Name() string

	// Tokens returns the normalised tokens of text, in order.
	// Punctuation-only and empty input produce no tokens.
	Tokens(text string) []string

	// Key returns the canonical comparison key of text.
	// Two texts are "the same" iff their keys are equal.
	Key(text string) string
}
