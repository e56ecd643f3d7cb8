package file

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/corpuslint/internal/core/domain"
	"github.com/custodia-labs/corpuslint/internal/core/ports/driven"
)

// RulesFile is the default rule file name.
const RulesFile = "rules.toml"

// Ensure RuleStore implements the interface.
var _ driven.RuleStore = (*RuleStore)(nil)

// RuleStore is a TOML-backed implementation of driven.RuleStore.
// The file is read on every Load so edits are picked up by watch mode.
type RuleStore struct {
	mu       sync.Mutex
	filePath string
	validate *validator.Validate
}

// NewRuleStore creates a rule store for the given file.
// If filePath is empty, defaults to ~/.corpuslint/rules.toml.
func NewRuleStore(filePath string) (*RuleStore, error) {
	if filePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		filePath = filepath.Join(home, ".corpuslint", RulesFile)
	}

	return &RuleStore{
		filePath: filePath,
		validate: newValidator(),
	}, nil
}

// Path returns the rule file path.
func (s *RuleStore) Path() string {
	return s.filePath
}

// Load reads the rule file. Keys absent from the file keep their default
// values; a missing file yields domain.DefaultRuleSet.
func (s *RuleStore) Load() (domain.RuleSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.DefaultRuleSet(), nil
		}
		return domain.RuleSet{}, fmt.Errorf("reading rules: %w", err)
	}

	return s.parse(data)
}

// Parse decodes and validates rule file content.
func (s *RuleStore) Parse(data []byte) (domain.RuleSet, error) {
	return s.parse(data)
}

func (s *RuleStore) parse(data []byte) (domain.RuleSet, error) {
	f := fromRuleSet(domain.DefaultRuleSet())

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return domain.RuleSet{}, fmt.Errorf("%w: %s", domain.ErrInvalidRules, strings.TrimSpace(strict.String()))
		}
		return domain.RuleSet{}, fmt.Errorf("%w: %v", domain.ErrInvalidRules, err)
	}

	if err := s.validate.Struct(f); err != nil {
		return domain.RuleSet{}, fmt.Errorf("%w: %s", domain.ErrInvalidRules, describe(err))
	}

	seen := make(map[string]bool, len(f.Structural.PairingHeuristics))
	for _, h := range f.Structural.PairingHeuristics {
		if seen[h.ID] {
			return domain.RuleSet{}, fmt.Errorf("%w: duplicate pairing heuristic id %q", domain.ErrInvalidRules, h.ID)
		}
		seen[h.ID] = true
	}

	return f.toRuleSet(), nil
}

// Encode validates a rule set and renders it as TOML.
func (s *RuleStore) Encode(rules domain.RuleSet) ([]byte, error) {
	f := fromRuleSet(rules)
	if err := s.validate.Struct(f); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidRules, describe(err))
	}

	data, err := toml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("marshalling rules: %w", err)
	}
	return data, nil
}

// Save writes the rule set, creating parent directories as needed.
func (s *RuleStore) Save(rules domain.RuleSet) error {
	data, err := s.Encode(rules)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.filePath), 0700); err != nil {
		return fmt.Errorf("creating rules directory: %w", err)
	}
	return os.WriteFile(s.filePath, data, 0600)
}

// WriteTemplate writes a commented default rule file. It refuses to
// overwrite an existing file unless force is set.
func (s *RuleStore) WriteTemplate(force bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !force {
		if _, err := os.Stat(s.filePath); err == nil {
			return fmt.Errorf("%s already exists", s.filePath)
		}
	}
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0700); err != nil {
		return fmt.Errorf("creating rules directory: %w", err)
	}
	return os.WriteFile(s.filePath, []byte(Template), 0600)
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("regexp", func(fl validator.FieldLevel) bool {
		_, err := regexp.Compile(fl.Field().String())
		return err == nil
	})

	return v
}

// describe turns validator errors into "field: constraint" messages.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "rulesFile.")
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s (got %v)", field, fe.Tag(), fe.Param(), fe.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s (got %v)", field, fe.Tag(), fe.Value()))
		}
	}
	return strings.Join(msgs, "; ")
}
