package validators

import (
	"github.com/custodia-labs/corpuslint/internal/core/ports/driven"
	"github.com/custodia-labs/corpuslint/internal/validators/consistency"
	"github.com/custodia-labs/corpuslint/internal/validators/cooccurrence"
	"github.com/custodia-labs/corpuslint/internal/validators/structural"
	"github.com/custodia-labs/corpuslint/internal/validators/tiling"
)

// DefaultOrder is the order the built-in item validators run in.
var DefaultOrder = []string{
	tiling.Name,
	consistency.Name,
	cooccurrence.Name,
	structural.Name,
}

// RegisterDefaults registers all built-in item validators with the registry.
func RegisterDefaults(r *Registry) {
	r.Register(tiling.Name, buildTiling)
	r.Register(consistency.Name, buildConsistency)
	r.Register(cooccurrence.Name, buildCooccurrence)
	r.Register(structural.Name, buildStructural)
}

// NewDefaultPipeline builds the built-in validators from the rule set.
func NewDefaultPipeline(deps Dependencies) (*Pipeline, error) {
	r := NewRegistry()
	RegisterDefaults(r)
	return r.BuildPipeline(DefaultOrder, deps, deps.Rules.Engine.Workers)
}

func buildTiling(deps Dependencies) (driven.ItemValidator, error) {
	return tiling.New(deps.Normaliser, tiling.WithJoiner(deps.Rules.Tiling.Joiner)), nil
}

func buildConsistency(deps Dependencies) (driven.ItemValidator, error) {
	return consistency.New(deps.Normaliser,
		consistency.WithNormalisedSource(deps.Rules.Consistency.NormaliseSource)), nil
}

func buildCooccurrence(deps Dependencies) (driven.ItemValidator, error) {
	var opts []cooccurrence.Option
	if deps.Rules.Cooccurrence.Threshold > 0 {
		opts = append(opts, cooccurrence.WithThreshold(deps.Rules.Cooccurrence.Threshold))
	}
	opts = append(opts, cooccurrence.WithMinPairCount(deps.Rules.Cooccurrence.MinPairCount))
	return cooccurrence.New(deps.Normaliser, opts...), nil
}

func buildStructural(deps Dependencies) (driven.ItemValidator, error) {
	return structural.New(deps.Normaliser, deps.Rules.Structural)
}
