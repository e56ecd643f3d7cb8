package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/corpuslint/internal/core/domain"
)

func TestRecorder_RecordReport(t *testing.T) {
	r := NewRecorder()

	report := &domain.Report{
		Summary: domain.Summary{
			Counts: []domain.SummaryCount{
				{Kind: domain.KindGateViolation, Severity: domain.SeverityFatal, Count: 2},
				{Kind: domain.KindCooccurrenceFlag, Severity: domain.SeverityAdvisory, Count: 1},
			},
			Fatal:    2,
			Advisory: 1,
		},
	}
	r.RecordReport(report)
	r.RecordReport(report)

	assert.InDelta(t, 2, testutil.ToFloat64(r.runs), 1e-9)
	assert.InDelta(t, 4, testutil.ToFloat64(r.findings.WithLabelValues("GateViolation", "Fatal")), 1e-9)
	assert.InDelta(t, 2, testutil.ToFloat64(r.findings.WithLabelValues("CooccurrenceFlag", "Advisory")), 1e-9)
	assert.InDelta(t, 2, testutil.ToFloat64(r.lastFatal), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(r.lastAdvisory), 1e-9)
}

func TestRecorder_ObservePhase(t *testing.T) {
	r := NewRecorder()

	r.ObservePhase("evidence", 3*time.Millisecond)
	r.ObservePhase("gate", time.Millisecond)

	assert.Equal(t, 2, testutil.CollectAndCount(r.phaseDuration))
}

func TestRecorder_Handler(t *testing.T) {
	r := NewRecorder()
	r.RecordReport(&domain.Report{})

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "corpuslint_validation_runs_total 1")
}
