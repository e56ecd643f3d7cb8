package driven

import (
	"time"

	"github.com/custodia-labs/corpuslint/internal/core/domain"
)

// MetricsRecorder receives run telemetry. It is optional: services
// accept nil and skip recording.
type MetricsRecorder interface {
	// ObservePhase records how long a validation phase took.
	ObservePhase(phase string, d time.Duration)

	// RecordReport records the finding counts of a finished run.
	RecordReport(report *domain.Report)
}
