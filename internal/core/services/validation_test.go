package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/corpuslint/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/corpuslint/internal/core/domain"
	ct "github.com/custodia-labs/corpuslint/internal/corpustest"
	"github.com/custodia-labs/corpuslint/internal/normalisers/plaintext"
	"github.com/custodia-labs/corpuslint/internal/validators"
	"github.com/custodia-labs/corpuslint/internal/validators/gate"
)

var fixedTime = time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC)

// mockMetrics records what the service reports.
type mockMetrics struct {
	mu      sync.Mutex
	phases  []string
	reports int
}

func (m *mockMetrics) ObservePhase(phase string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.phases = append(m.phases, phase)
}

func (m *mockMetrics) RecordReport(_ *domain.Report) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports++
}

// failingStore rejects every save.
type failingStore struct {
	*memory.ReportStore
}

func (f failingStore) Save(_ context.Context, _ *domain.Report) error {
	return errors.New("disk full")
}

func newService(t *testing.T, opts ...ValidationOption) *ValidationService {
	t.Helper()
	n := plaintext.Default()
	pipeline, err := validators.NewDefaultPipeline(validators.Dependencies{Rules: domain.DefaultRuleSet(), Normaliser: n})
	require.NoError(t, err)

	opts = append([]ValidationOption{
		WithClock(func() time.Time { return fixedTime }),
		WithIDGenerator(func() string { return "report-1" }),
	}, opts...)
	return NewValidationService(NewEvidenceEngine(n, 3), pipeline, gate.New(n, gate.WithWorkers(3)), opts...)
}

// cleanCorpus passes every validator: units tile their items, realisations
// are consistent, no adjacent pair exceeds 0.70 and every phrase is gated.
func cleanCorpus(t *testing.T) (*domain.Corpus, domain.PhraseSet) {
	c := ct.Corpus(t, "clean",
		ct.Item("hola", "hello", ct.Base("hello", "hola")),
		ct.Item("buenos días", "good morning",
			ct.Composite("good morning", "buenos días", ct.Pair("good", "buenos"), ct.Pair("morning", "días"))),
		ct.Item("hola amigo", "hello friend", ct.Base("hello", "hola"), ct.Base("friend", "amigo")),
	)

	phrases := make(domain.PhraseSet)
	phrases.Add(domain.GeneratedPhrase{Owner: 0, Target: "Hello!", Role: domain.RoleAnchor})
	phrases.Add(domain.GeneratedPhrase{Owner: 1, Target: "good morning", Role: domain.RoleAnchor})
	phrases.Add(domain.GeneratedPhrase{Owner: 1, Target: "hello, good morning", Role: domain.RolePractice})
	phrases.Add(domain.GeneratedPhrase{Owner: 2, Target: "hello", Role: domain.RolePractice})
	phrases.Add(domain.GeneratedPhrase{Owner: 3, Target: "hello friend", Role: domain.RoleAnchor})
	return c, phrases
}

// dirtyCorpus trips each validator at least once.
func dirtyCorpus(t *testing.T) (*domain.Corpus, domain.PhraseSet) {
	c := ct.Corpus(t, "dirty",
		ct.Item("corre", "run", ct.Base("run", "corre")),
		ct.Item("quiero ir", "I want to go", ct.Base("I", "yo"), ct.Base("want", "quiero"), ct.Base("go", "ir")),
		ct.Item("corriendo", "run", ct.Base("run", "corriendo")),
	)

	phrases := make(domain.PhraseSet)
	phrases.Add(domain.GeneratedPhrase{Owner: 0, Target: "run go", Role: domain.RoleAnchor})
	return c, phrases
}

func TestValidationService_CleanCorpus(t *testing.T) {
	c, phrases := cleanCorpus(t)

	report, err := newService(t).Validate(context.Background(), c, phrases)
	require.NoError(t, err)

	assert.Empty(t, report.Findings)
	assert.Empty(t, report.Summary.Counts)
	assert.False(t, report.HasFatal())
	assert.Equal(t, "report-1", report.ID)
	assert.Equal(t, "clean", report.CorpusVersion)
	assert.Equal(t, fixedTime, report.GeneratedAt)
}

func TestValidationService_DirtyCorpus(t *testing.T) {
	c, phrases := dirtyCorpus(t)

	report, err := newService(t).Validate(context.Background(), c, phrases)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Count(domain.KindTilingFailure))
	assert.Equal(t, 1, report.Count(domain.KindConsistencyViolation))
	assert.Equal(t, 1, report.Count(domain.KindGateViolation))
	assert.Equal(t, 1, report.Count(domain.KindCulminatingMismatch))
	assert.True(t, report.HasFatal())

	var items []int
	for _, f := range report.Findings {
		items = append(items, f.ItemIndex)
	}
	assert.IsNonDecreasing(t, items)
}

func TestValidationService_Idempotent(t *testing.T) {
	c, phrases := dirtyCorpus(t)
	svc := newService(t)

	first, err := svc.Validate(context.Background(), c, phrases)
	require.NoError(t, err)
	second, err := svc.Validate(context.Background(), c, phrases)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestValidationService_NilPhrasesSkipsGate(t *testing.T) {
	c, _ := dirtyCorpus(t)

	report, err := newService(t).Validate(context.Background(), c, nil)
	require.NoError(t, err)

	assert.Zero(t, report.Count(domain.KindGateViolation))
	assert.Zero(t, report.Count(domain.KindCulminatingMismatch))
	assert.Equal(t, 1, report.Count(domain.KindTilingFailure))
}

func TestValidationService_SavesAndRecords(t *testing.T) {
	c, phrases := cleanCorpus(t)
	store := memory.NewReportStore()
	metrics := &mockMetrics{}

	report, err := newService(t, WithReportStore(store), WithMetrics(metrics)).Validate(context.Background(), c, phrases)
	require.NoError(t, err)

	saved, err := store.Get(context.Background(), report.ID)
	require.NoError(t, err)
	assert.Equal(t, report.CorpusVersion, saved.CorpusVersion)

	assert.Equal(t, 1, metrics.reports)
	assert.ElementsMatch(t, []string{PhaseEvidence, PhaseItems, PhasePhrases, PhaseAggregate}, metrics.phases)
}

func TestValidationService_SaveFailure(t *testing.T) {
	c, phrases := cleanCorpus(t)

	report, err := newService(t, WithReportStore(failingStore{memory.NewReportStore()})).
		Validate(context.Background(), c, phrases)

	assert.ErrorContains(t, err, "disk full")
	assert.NotNil(t, report)
}

func TestValidationService_Errors(t *testing.T) {
	svc := newService(t)

	_, err := svc.Validate(context.Background(), nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c, phrases := cleanCorpus(t)
	report, err := svc.Validate(ctx, c, phrases)
	assert.Nil(t, report)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidationService_Evidence(t *testing.T) {
	c, _ := dirtyCorpus(t)

	snap, err := newService(t).Evidence(context.Background(), c)
	require.NoError(t, err)

	entry, ok := snap.Canonical("run")
	require.True(t, ok)
	assert.Equal(t, "corre", entry.FirstSource)
}
