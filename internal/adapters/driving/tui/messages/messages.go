// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/corpuslint/internal/core/domain"
)

// ReportLoaded carries a report from the report service.
type ReportLoaded struct {
	Report *domain.Report
	Err    error
}

// FindingSelected is sent when a finding is opened for detail.
type FindingSelected struct {
	Finding domain.Finding
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewFindings is the findings list.
	ViewFindings ViewType = iota
	// ViewDetail shows one finding in full.
	ViewDetail
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewFindings:
		return "findings"
	case ViewDetail:
		return "detail"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
