package memory

import (
	"sync"

	"github.com/custodia-labs/corpuslint/internal/core/domain"
	"github.com/custodia-labs/corpuslint/internal/core/ports/driven"
)

// Ensure RuleStore implements the interface.
var _ driven.RuleStore = (*RuleStore)(nil)

// RuleStore is an in-memory implementation of driven.RuleStore for testing.
type RuleStore struct {
	mu    sync.RWMutex
	rules domain.RuleSet
}

// NewRuleStore creates a rule store holding the given rules.
func NewRuleStore(rules domain.RuleSet) *RuleStore {
	return &RuleStore{rules: rules}
}

// Load returns the stored rules.
func (s *RuleStore) Load() (domain.RuleSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rules, nil
}

// Save replaces the stored rules.
func (s *RuleStore) Save(rules domain.RuleSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules = rules
	return nil
}

// Path returns an empty string; nothing is persisted.
func (s *RuleStore) Path() string {
	return ""
}
