package validators

import (
	"fmt"
	"sort"

	"github.com/custodia-labs/corpuslint/internal/core/domain"
	"github.com/custodia-labs/corpuslint/internal/core/ports/driven"
)

// Dependencies are handed to every builder.
type Dependencies struct {
	Rules      domain.RuleSet
	Normaliser driven.Normaliser
}

// BuilderFunc creates an ItemValidator from the rule set.
type BuilderFunc func(deps Dependencies) (driven.ItemValidator, error)

// Registry maps validator names to their builders.
type Registry struct {
	builders map[string]BuilderFunc
}

// NewRegistry creates a new validator registry.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[string]BuilderFunc),
	}
}

// Register adds a validator builder to the registry.
// Name should be unique and match the validator's Name() return value.
func (r *Registry) Register(name string, builder BuilderFunc) {
	r.builders[name] = builder
}

// Build creates a validator by name.
func (r *Registry) Build(name string, deps Dependencies) (driven.ItemValidator, error) {
	builder, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown validator: %s", name)
	}
	return builder(deps)
}

// Has returns true if a validator with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.builders[name]
	return ok
}

// Names returns all registered validator names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuildPipeline builds the named validators, in order, into a pipeline.
func (r *Registry) BuildPipeline(names []string, deps Dependencies, workers int) (*Pipeline, error) {
	p := NewPipeline(workers)
	for _, name := range names {
		v, err := r.Build(name, deps)
		if err != nil {
			return nil, fmt.Errorf("build pipeline: %w", err)
		}
		p.Add(v)
	}
	return p, nil
}
