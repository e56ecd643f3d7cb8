// Package gate checks generated phrases against the position-ordered
// vocabulary: a phrase may only use tokens the learner has already met.
package gate

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/corpuslint/internal/core/domain"
	"github.com/custodia-labs/corpuslint/internal/core/ports/driven"
	"github.com/custodia-labs/corpuslint/internal/logger"
	"github.com/custodia-labs/corpuslint/internal/shard"
)

// DefaultWorkers is the number of phrase shards used when none is configured.
const DefaultWorkers = 4

// Ensure Validator implements the interface.
var _ driven.PhraseValidator = (*Validator)(nil)

// Validator runs the gate, operative-unit and culminating checks.
type Validator struct {
	normaliser driven.Normaliser
	workers    int

	mu           sync.Mutex
	swept        *domain.Corpus
	availability *Availability
}

// Option configures the gate validator.
type Option func(*Validator)

// WithWorkers sets the number of concurrent phrase shards.
func WithWorkers(n int) Option {
	return func(v *Validator) {
		if n > 0 {
			v.workers = n
		}
	}
}

// New creates a gate validator.
func New(normaliser driven.Normaliser, opts ...Option) *Validator {
	v := &Validator{
		normaliser: normaliser,
		workers:    DefaultWorkers,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

type job struct {
	owner  domain.Position
	phrase domain.GeneratedPhrase
}

// Validate checks every phrase. Findings come back in owner order, then
// phrase order, then token order.
func (v *Validator) Validate(ctx context.Context, corpus *domain.Corpus, phrases domain.PhraseSet) ([]domain.Finding, error) {
	if corpus == nil {
		return nil, fmt.Errorf("validate phrases: %w: corpus is nil", domain.ErrInvalidInput)
	}

	avail, err := v.availabilityFor(ctx, corpus)
	if err != nil {
		return nil, err
	}

	owners := phrases.Owners()
	jobs := make([]job, 0, phrases.Len())
	for _, owner := range owners {
		for _, p := range phrases[owner] {
			jobs = append(jobs, job{owner: owner, phrase: p})
		}
	}

	buffers := make([][]domain.Finding, len(shard.Ranges(len(jobs), v.workers)))
	err = shard.Run(ctx, len(jobs), v.workers, func(ctx context.Context, i int, r shard.Range) error {
		var out []domain.Finding
		for _, j := range jobs[r.Start:r.End] {
			if err := ctx.Err(); err != nil {
				return err
			}
			out = append(out, v.checkPhrase(corpus, avail, j)...)
		}
		buffers[i] = out
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("validate phrases: %w", err)
	}

	var findings []domain.Finding
	for _, b := range buffers {
		findings = append(findings, b...)
	}
	for _, owner := range owners {
		findings = append(findings, v.checkCulminating(corpus, owner, phrases[owner])...)
	}

	logger.Debug("gate: %d phrases across %d owners, %d findings", len(jobs), len(owners), len(findings))

	return findings, nil
}

// availabilityFor returns the frozen availability of the last swept
// corpus when it is this very corpus, and sweeps a fresh one otherwise.
// Corpora are immutable, but two loads of an edited file may share a
// version string, so the cache is keyed by identity.
func (v *Validator) availabilityFor(ctx context.Context, corpus *domain.Corpus) (*Availability, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.availability != nil && v.swept == corpus {
		return v.availability, nil
	}

	a := NewAvailability(v.normaliser)
	if err := a.Sweep(ctx, corpus); err != nil {
		return nil, err
	}
	v.swept = corpus
	v.availability = a
	return a, nil
}

func (v *Validator) checkPhrase(corpus *domain.Corpus, avail *Availability, j job) []domain.Finding {
	unit, ok := corpus.Unit(j.owner)
	if !ok {
		f := domain.NewFinding(domain.KindGateViolation, -1,
			fmt.Sprintf("phrase %q is owned by unknown position %d", j.phrase.Target, j.owner),
			"attach the phrase to an existing unit position")
		f.Details.PhraseTarget = j.phrase.Target
		return []domain.Finding{f}
	}

	tokens := v.normaliser.Tokens(j.phrase.Target)

	var findings []domain.Finding
	seen := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		if avail.Allowed(t, j.owner) {
			continue
		}

		var msg string
		intro, known := avail.IntroducedAt(t)
		if known {
			msg = fmt.Sprintf("phrase %q at position %d uses %q, which is first introduced at position %d",
				j.phrase.Target, j.owner, t, intro)
		} else {
			msg = fmt.Sprintf("phrase %q at position %d uses %q, which is never introduced by the corpus",
				j.phrase.Target, j.owner, t)
		}

		f := domain.NewFinding(domain.KindGateViolation, unit.ItemIndex, msg,
			"rewrite the phrase using only vocabulary introduced at or before its unit").AtUnit(j.owner)
		f.Details.OffendingToken = t
		f.Details.PhraseTarget = j.phrase.Target
		if known {
			f.Details.SourcePosition = domain.PositionRef(intro)
		}
		findings = append(findings, f)
	}

	operative := avail.UnitTokens(j.owner)
	if len(operative) > 0 && !containsRun(tokens, operative) {
		f := domain.NewFinding(domain.KindOperativeUnitMissing, unit.ItemIndex,
			fmt.Sprintf("phrase %q does not contain its unit's text %q", j.phrase.Target, unit.Target),
			"include the unit's own text in the phrase").AtUnit(j.owner)
		f.Details.PhraseTarget = j.phrase.Target
		findings = append(findings, f)
	}

	return findings
}

// checkCulminating requires exactly one anchor phrase equal to the item's
// full target text on every final unit that has phrases.
func (v *Validator) checkCulminating(corpus *domain.Corpus, owner domain.Position, phrases []domain.GeneratedPhrase) []domain.Finding {
	unit, ok := corpus.Unit(owner)
	if !ok || !unit.FinalInItem {
		return nil
	}
	item, ok := corpus.Item(unit.ItemIndex)
	if !ok {
		return nil
	}

	want := v.normaliser.Key(item.Target)

	var anchors []domain.GeneratedPhrase
	for _, p := range phrases {
		if p.Role == domain.RoleAnchor {
			anchors = append(anchors, p)
		}
	}

	var msg string
	switch {
	case len(anchors) == 0:
		msg = fmt.Sprintf("final unit at position %d has no anchor phrase for %q", owner, item.Target)
	case len(anchors) > 1:
		msg = fmt.Sprintf("final unit at position %d has %d anchor phrases; exactly one is required", owner, len(anchors))
	case v.normaliser.Key(anchors[0].Target) != want:
		msg = fmt.Sprintf("anchor phrase %q at position %d does not equal the item text %q",
			anchors[0].Target, owner, item.Target)
	default:
		return nil
	}

	f := domain.NewFinding(domain.KindCulminatingMismatch, unit.ItemIndex, msg,
		"make the anchor phrase reproduce the whole item text").AtUnit(owner)
	if len(anchors) == 1 {
		f.Details.PhraseTarget = anchors[0].Target
	}
	return []domain.Finding{f}
}

// containsRun reports whether needle occurs as a contiguous run in haystack.
func containsRun(haystack, needle []string) bool {
	if len(needle) == 0 {
		return true
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for k := range needle {
			if haystack[i+k] != needle[k] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
