package mcp

import (
	"context"
	"time"

	"github.com/custodia-labs/corpuslint/internal/core/domain"
	"github.com/custodia-labs/corpuslint/internal/core/ports/driving"
)

var _ driving.ValidationService = (*mockValidationService)(nil)

// mockValidationService is a mock implementation of driving.ValidationService.
type mockValidationService struct {
	report *domain.Report
	err    error

	gotCorpus  *domain.Corpus
	gotPhrases domain.PhraseSet
}

func (m *mockValidationService) Validate(
	_ context.Context,
	corpus *domain.Corpus,
	phrases domain.PhraseSet,
) (*domain.Report, error) {
	m.gotCorpus = corpus
	m.gotPhrases = phrases
	if m.err != nil {
		return nil, m.err
	}
	if m.report != nil {
		return m.report, nil
	}
	return &domain.Report{ID: "rep-1", CorpusVersion: corpus.Version(), Findings: []domain.Finding{}}, nil
}

func (m *mockValidationService) Evidence(_ context.Context, _ *domain.Corpus) (*domain.EvidenceSnapshot, error) {
	return nil, m.err
}

var _ driving.ReportService = (*mockReportService)(nil)

// mockReportService is a mock implementation of driving.ReportService.
type mockReportService struct {
	summaries []domain.ReportSummary
	report    *domain.Report
	err       error

	gotID string
}

func (m *mockReportService) List(_ context.Context, _ int) ([]domain.ReportSummary, error) {
	return m.summaries, m.err
}

func (m *mockReportService) Get(_ context.Context, id string) (*domain.Report, error) {
	m.gotID = id
	return m.report, m.err
}

func (m *mockReportService) Latest(_ context.Context) (*domain.Report, error) {
	m.gotID = latestID
	return m.report, m.err
}

func (m *mockReportService) Delete(_ context.Context, id string) error {
	m.gotID = id
	return m.err
}

func sampleReport() *domain.Report {
	pos := domain.Position(20)
	return &domain.Report{
		ID:            "rep-42",
		CorpusVersion: "v3",
		GeneratedAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Findings: []domain.Finding{
			{
				Kind:         domain.KindTilingFailure,
				Severity:     domain.SeverityFatal,
				ItemIndex:    0,
				Message:      "units do not tile the item",
				UnitPosition: nil,
			},
			{
				Kind:            domain.KindConsistencyViolation,
				Severity:        domain.SeverityAdvisory,
				ItemIndex:       1,
				UnitPosition:    &pos,
				Message:         "\"dog\" is realised differently",
				RemediationHint: "use one realisation",
			},
		},
		Summary: domain.Summary{
			Counts: []domain.SummaryCount{
				{Kind: domain.KindTilingFailure, Severity: domain.SeverityFatal, Count: 1},
				{Kind: domain.KindConsistencyViolation, Severity: domain.SeverityAdvisory, Count: 1},
			},
			Fatal:    1,
			Advisory: 1,
		},
	}
}
