package driven

import "github.com/custodia-labs/corpuslint/internal/core/domain"

// RuleStore loads and persists the rule configuration.
// Implementations handle the file format (e.g., TOML) and validation.
type RuleStore interface {
	// Load reads the rule set. A missing file yields the defaults.
	// Invalid content returns an error wrapping domain.ErrInvalidRules.
	Load() (domain.RuleSet, error)

	// Save writes the rule set, replacing any existing file.
	Save(rules domain.RuleSet) error

	// Path returns the rule file path.
	Path() string
}
