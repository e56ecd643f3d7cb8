package validators

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/corpuslint/internal/core/domain"
	"github.com/custodia-labs/corpuslint/internal/core/services"
	ct "github.com/custodia-labs/corpuslint/internal/corpustest"
	"github.com/custodia-labs/corpuslint/internal/normalisers/plaintext"
)

// mockValidator reports one advisory finding per item, tagged with its name.
type mockValidator struct {
	name string
}

func (m *mockValidator) Name() string { return m.name }

func (m *mockValidator) ValidateItem(item *domain.Item, _ *domain.EvidenceSnapshot) []domain.Finding {
	return []domain.Finding{domain.NewFinding(domain.KindStructuralViolation, item.Index, m.name, "")}
}

func tenItems(t *testing.T) *domain.Corpus {
	items := make([]domain.Item, 10)
	for i := range items {
		items[i] = ct.Item("", fmt.Sprintf("w%d", i), ct.Base(fmt.Sprintf("w%d", i), ""))
	}
	return ct.Corpus(t, "v1", items...)
}

func snapshot(t *testing.T, c *domain.Corpus) *domain.EvidenceSnapshot {
	t.Helper()
	snap, err := services.NewEvidenceEngine(plaintext.Default(), 1).Build(context.Background(), c)
	require.NoError(t, err)
	return snap
}

func TestNewPipeline(t *testing.T) {
	p := NewPipeline(0)
	assert.Equal(t, 0, p.Len())
	assert.Equal(t, DefaultWorkers, p.workers)

	p.Add(&mockValidator{name: "a"})
	p.Add(&mockValidator{name: "b"})
	assert.Equal(t, 2, p.Len())
	assert.Equal(t, []string{"a", "b"}, p.Names())
}

func TestPipeline_RunOrder(t *testing.T) {
	c := tenItems(t)
	snap := snapshot(t, c)

	for _, workers := range []int{1, 3, 4, 20} {
		p := NewPipeline(workers, &mockValidator{name: "a"}, &mockValidator{name: "b"})

		buffers, err := p.Run(context.Background(), c, snap)
		require.NoError(t, err)

		var flat []domain.Finding
		for _, b := range buffers {
			flat = append(flat, b...)
		}
		require.Len(t, flat, 20, "workers=%d", workers)
		for i, f := range flat {
			assert.Equal(t, i/2, f.ItemIndex)
			assert.Equal(t, []string{"a", "b"}[i%2], f.Message)
		}
	}
}

func TestPipeline_RunRequiresEvidence(t *testing.T) {
	_, err := NewPipeline(1).Run(context.Background(), tenItems(t), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = NewPipeline(1).Run(context.Background(), nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPipeline_RunCancelled(t *testing.T) {
	c := tenItems(t)
	snap := snapshot(t, c)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	buffers, err := NewPipeline(2, &mockValidator{name: "a"}).Run(ctx, c, snap)
	assert.Nil(t, buffers)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.False(t, r.Has("tiling"))

	RegisterDefaults(r)
	assert.Equal(t, []string{"consistency", "cooccurrence", "structural", "tiling"}, r.Names())

	_, err := r.Build("nope", Dependencies{})
	assert.Error(t, err)
}

func TestNewDefaultPipeline(t *testing.T) {
	p, err := NewDefaultPipeline(Dependencies{Rules: domain.DefaultRuleSet(), Normaliser: plaintext.Default()})
	require.NoError(t, err)
	assert.Equal(t, DefaultOrder, p.Names())
}

func TestNewDefaultPipeline_InvalidRules(t *testing.T) {
	rules := domain.DefaultRuleSet()
	rules.Structural.PairingHeuristics = []domain.PairingHeuristic{{ID: "x", LeftClass: []string{"a"}, RightPattern: "["}}

	_, err := NewDefaultPipeline(Dependencies{Rules: rules, Normaliser: plaintext.Default()})
	assert.ErrorIs(t, err, domain.ErrInvalidRules)
}
