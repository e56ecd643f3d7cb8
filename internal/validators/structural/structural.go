// Package structural applies configurable rules about where
// boundary-class texts may sit and which adjacent units belong together.
package structural

import (
	"fmt"
	"regexp"

	"github.com/custodia-labs/corpuslint/internal/core/domain"
	"github.com/custodia-labs/corpuslint/internal/core/ports/driven"
)

// Name is the validator name used in configuration.
const Name = "structural"

// Built-in rule identifiers.
const (
	RuleBoundaryFirst    = "boundary-first"
	RuleBoundaryLast     = "boundary-last"
	RuleBoundaryIsolated = "boundary-isolated"
)

// Ensure Validator implements the interface.
var _ driven.ItemValidator = (*Validator)(nil)

type heuristic struct {
	id      string
	left    map[string]struct{}
	pattern *regexp.Regexp
	side    domain.TextSide
}

// Validator checks item-local structure only; it ignores the evidence.
type Validator struct {
	normaliser driven.Normaliser
	boundary   map[string]struct{}
	side       domain.TextSide
	isolated   bool
	heuristics []heuristic
}

// New creates a structural validator. Boundary texts and left classes are
// normalised up front; right patterns are compiled and matched against
// the normalised text.
func New(normaliser driven.Normaliser, rules domain.StructuralRules) (*Validator, error) {
	side := rules.BoundarySide
	if side == "" {
		side = domain.SideTarget
	}

	v := &Validator{
		normaliser: normaliser,
		boundary:   keySet(normaliser, rules.BoundaryClassTexts),
		side:       side,
		isolated:   rules.FlagIsolatedBoundary,
	}

	for _, h := range rules.PairingHeuristics {
		re, err := regexp.Compile(h.RightPattern)
		if err != nil {
			return nil, fmt.Errorf("compile heuristic %q: %w: %v", h.ID, domain.ErrInvalidRules, err)
		}
		hs := h.Side
		if hs == "" {
			hs = domain.SideSource
		}
		v.heuristics = append(v.heuristics, heuristic{
			id:      h.ID,
			left:    keySet(normaliser, h.LeftClass),
			pattern: re,
			side:    hs,
		})
	}

	return v, nil
}

// Name returns the validator name.
func (v *Validator) Name() string {
	return Name
}

// ValidateItem returns one finding per rule hit, in unit order.
func (v *Validator) ValidateItem(item *domain.Item, _ *domain.EvidenceSnapshot) []domain.Finding {
	var findings []domain.Finding

	for j := range item.Units {
		u := &item.Units[j]

		if !u.IsBase() && len(u.Components) >= 2 {
			first := u.Components[0]
			last := u.Components[len(u.Components)-1]
			if v.isBoundary(v.side.OfPair(first)) {
				findings = append(findings, v.boundaryFinding(item, u, RuleBoundaryFirst,
					fmt.Sprintf("composite %q opens with boundary-class text %q", u.Target, v.side.OfPair(first)),
					"move the boundary-class text out of the composite and into the preceding unit"))
			}
			if v.isBoundary(v.side.OfPair(last)) {
				findings = append(findings, v.boundaryFinding(item, u, RuleBoundaryLast,
					fmt.Sprintf("composite %q closes with boundary-class text %q", u.Target, v.side.OfPair(last)),
					"move the boundary-class text out of the composite and into the following unit"))
			}
		}

		if v.isolated && u.IsBase() && len(item.Units) > 1 && v.isBoundary(v.side.Of(u)) {
			findings = append(findings, v.boundaryFinding(item, u, RuleBoundaryIsolated,
				fmt.Sprintf("unit %q consists only of boundary-class text", u.Target),
				"merge the boundary-class unit with the unit it belongs to"))
		}

		if j+1 < len(item.Units) {
			findings = append(findings, v.pairings(item, u, &item.Units[j+1])...)
		}
	}

	return findings
}

func (v *Validator) pairings(item *domain.Item, left, right *domain.Unit) []domain.Finding {
	var findings []domain.Finding
	for _, h := range v.heuristics {
		if _, ok := h.left[v.normaliser.Key(h.side.Of(left))]; !ok {
			continue
		}
		if !h.pattern.MatchString(v.normaliser.Key(h.side.Of(right))) {
			continue
		}
		f := domain.NewFinding(domain.KindStructuralViolation, item.Index,
			fmt.Sprintf("%q followed by %q matches pairing rule %s", h.side.Of(left), h.side.Of(right), h.id),
			"merge the two units into one COMPOSITE unit").AtUnit(left.Position)
		f.Details.RuleID = h.id
		f.Details.Positions = []domain.Position{left.Position, right.Position}
		findings = append(findings, f)
	}
	return findings
}

func (v *Validator) boundaryFinding(item *domain.Item, u *domain.Unit, rule, msg, hint string) domain.Finding {
	f := domain.NewFinding(domain.KindStructuralViolation, item.Index, msg, hint).AtUnit(u.Position)
	f.Details.RuleID = rule
	f.Details.Positions = []domain.Position{u.Position}
	return f
}

func (v *Validator) isBoundary(text string) bool {
	key := v.normaliser.Key(text)
	if key == "" {
		return false
	}
	_, ok := v.boundary[key]
	return ok
}

func keySet(n driven.Normaliser, texts []string) map[string]struct{} {
	out := make(map[string]struct{}, len(texts))
	for _, t := range texts {
		if k := n.Key(t); k != "" {
			out[k] = struct{}{}
		}
	}
	return out
}
