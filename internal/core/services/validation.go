package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/corpuslint/internal/core/domain"
	"github.com/custodia-labs/corpuslint/internal/core/ports/driven"
	"github.com/custodia-labs/corpuslint/internal/core/ports/driving"
	"github.com/custodia-labs/corpuslint/internal/logger"
)

// Ensure ValidationService implements the interface.
var _ driving.ValidationService = (*ValidationService)(nil)

// Validation phases, as reported to the metrics recorder.
const (
	PhaseEvidence  = "evidence"
	PhaseItems     = "items"
	PhasePhrases   = "phrases"
	PhaseAggregate = "aggregate"
)

// ValidationService runs evidence collection, then the item pipeline and
// the gate concurrently, then aggregation.
type ValidationService struct {
	evidence *EvidenceEngine
	pipeline driven.ItemPipeline
	gate     driven.PhraseValidator

	reports driven.ReportStore
	metrics driven.MetricsRecorder
	clock   func() time.Time
	newID   func() string
}

// ValidationOption configures a ValidationService.
type ValidationOption func(*ValidationService)

// WithReportStore saves every report after it is built.
func WithReportStore(store driven.ReportStore) ValidationOption {
	return func(s *ValidationService) {
		s.reports = store
	}
}

// WithMetrics records phase timings and finding counts.
func WithMetrics(m driven.MetricsRecorder) ValidationOption {
	return func(s *ValidationService) {
		s.metrics = m
	}
}

// WithClock overrides the report timestamp source.
func WithClock(clock func() time.Time) ValidationOption {
	return func(s *ValidationService) {
		s.clock = clock
	}
}

// WithIDGenerator overrides the report ID source.
func WithIDGenerator(newID func() string) ValidationOption {
	return func(s *ValidationService) {
		s.newID = newID
	}
}

// NewValidationService creates a validation service.
// The gate is optional (can be nil); phrases are then ignored.
func NewValidationService(
	engine *EvidenceEngine,
	pipeline driven.ItemPipeline,
	gate driven.PhraseValidator,
	opts ...ValidationOption,
) *ValidationService {
	s := &ValidationService{
		evidence: engine,
		pipeline: pipeline,
		gate:     gate,
		clock:    time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Evidence builds the evidence snapshot on its own.
func (s *ValidationService) Evidence(ctx context.Context, corpus *domain.Corpus) (*domain.EvidenceSnapshot, error) {
	done := logger.Timed(PhaseEvidence)
	snap, err := s.evidence.Build(ctx, corpus)
	s.observe(PhaseEvidence, done())
	return snap, err
}

// Validate runs every validator and returns the aggregated report.
// Findings never surface as errors; only invalid input, cancellation or
// a failed save do.
func (s *ValidationService) Validate(
	ctx context.Context, corpus *domain.Corpus, phrases domain.PhraseSet,
) (*domain.Report, error) {
	logger.Section("Validation")

	if corpus == nil {
		return nil, fmt.Errorf("validate: %w: corpus is nil", domain.ErrInvalidInput)
	}
	logger.Debug("Corpus %q: %d items, %d units, %d phrases",
		corpus.Version(), corpus.Len(), corpus.UnitCount(), phrases.Len())

	snap, err := s.Evidence(ctx, corpus)
	if err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	var (
		itemBuffers [][]domain.Finding
		gateResults []domain.Finding
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		done := logger.Timed(PhaseItems)
		defer func() { s.observe(PhaseItems, done()) }()

		var err error
		itemBuffers, err = s.pipeline.Run(gctx, corpus, snap)
		return err
	})
	if s.gate != nil && phrases != nil {
		g.Go(func() error {
			done := logger.Timed(PhasePhrases)
			defer func() { s.observe(PhasePhrases, done()) }()

			var err error
			gateResults, err = s.gate.Validate(gctx, corpus, phrases)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	done := logger.Timed(PhaseAggregate)
	report := Aggregate(corpus.Version(), append(itemBuffers, gateResults)...)
	report.ID = s.newID()
	report.GeneratedAt = s.clock().UTC()
	s.observe(PhaseAggregate, done())

	logger.Info("Report %s: %d fatal, %d advisory", report.ID, report.Summary.Fatal, report.Summary.Advisory)

	if s.metrics != nil {
		s.metrics.RecordReport(report)
	}

	if s.reports != nil {
		if err := s.reports.Save(ctx, report); err != nil {
			return report, fmt.Errorf("save report: %w", err)
		}
	}

	return report, nil
}

func (s *ValidationService) observe(phase string, d time.Duration) {
	if s.metrics != nil {
		s.metrics.ObservePhase(phase, d)
	}
}
