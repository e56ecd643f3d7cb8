package tui

import "errors"

// ErrMissingReportService is returned when the report service is not provided.
var ErrMissingReportService = errors.New("tui: report service is required")

// ErrNoReport is shown when there is no report to browse.
var ErrNoReport = errors.New("tui: no report to browse")
