// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/corpuslint/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/corpuslint/internal/core/domain"
)

// Filter restricts the list to one severity.
type Filter int

// Available filters, in cycle order.
const (
	FilterAll Filter = iota
	FilterFatal
	FilterAdvisory
)

// String returns the filter label.
func (f Filter) String() string {
	switch f {
	case FilterFatal:
		return "fatal"
	case FilterAdvisory:
		return "advisory"
	default:
		return "all"
	}
}

// Next returns the following filter in the cycle.
func (f Filter) Next() Filter {
	return (f + 1) % 3
}

// Accepts reports whether a finding passes the filter.
func (f Filter) Accepts(finding *domain.Finding) bool {
	switch f {
	case FilterFatal:
		return finding.Severity == domain.SeverityFatal
	case FilterAdvisory:
		return finding.Severity == domain.SeverityAdvisory
	default:
		return true
	}
}

// FindingList displays report findings in a navigable, filterable list.
type FindingList struct {
	findings []domain.Finding
	visible  []int
	filter   Filter
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewFindingList creates a new finding list component.
func NewFindingList(s *styles.Styles) *FindingList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &FindingList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the finding list.
func (l *FindingList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *FindingList) Update(msg tea.Msg) (*FindingList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		case "home", "g":
			l.selected = 0
		case "end", "G":
			if len(l.visible) > 0 {
				l.selected = len(l.visible) - 1
			}
		case "f":
			l.SetFilter(l.filter.Next())
		}
	}
	return l, nil
}

// View renders the finding list.
func (l *FindingList) View() string {
	header := l.styles.Subtitle.Render(fmt.Sprintf("Findings (%d of %d, filter: %s)",
		len(l.visible), len(l.findings), l.filter))

	if len(l.visible) == 0 {
		return header + "\n\n" + l.styles.Muted.Render("No findings")
	}

	lines := make([]string, 0, len(l.visible)+2)
	lines = append(lines, header, "")

	// Each finding takes two lines.
	visibleCount := (l.height - 4) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if l.selected >= visibleCount {
		start = l.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(l.visible) {
		end = len(l.visible)
	}

	for i := start; i < end; i++ {
		lines = append(lines, l.renderFinding(i, &l.findings[l.visible[i]]))
	}

	return strings.Join(lines, "\n")
}

// renderFinding formats one finding as a heading and a message line.
func (l *FindingList) renderFinding(index int, f *domain.Finding) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	where := fmt.Sprintf("item %d", f.ItemIndex)
	if f.ItemIndex < 0 {
		where = "unowned"
	}
	if f.UnitPosition != nil {
		where += fmt.Sprintf(" @%d", *f.UnitPosition)
	}

	heading := fmt.Sprintf("%s%-22s %s", indicator, f.Kind, where)
	var headLine string
	if index == l.selected {
		headLine = l.styles.Selected.Render(heading)
	} else {
		headLine = l.styles.Severity(f.Severity).Render(heading)
	}

	msg := f.Message
	maxLen := l.width - 6
	if maxLen < 20 {
		maxLen = 20
	}
	if len(msg) > maxLen {
		msg = msg[:maxLen-3] + "..."
	}

	return headLine + "\n" + l.styles.Muted.Render("    "+msg)
}

// SetFindings replaces the findings and resets the selection.
func (l *FindingList) SetFindings(findings []domain.Finding) {
	l.findings = findings
	l.refilter()
}

// Findings returns all findings, ignoring the filter.
func (l *FindingList) Findings() []domain.Finding {
	return l.findings
}

// SetFilter applies a severity filter and resets the selection.
func (l *FindingList) SetFilter(f Filter) {
	l.filter = f
	l.refilter()
}

// Filter returns the active filter.
func (l *FindingList) Filter() Filter {
	return l.filter
}

func (l *FindingList) refilter() {
	l.visible = l.visible[:0]
	for i := range l.findings {
		if l.filter.Accepts(&l.findings[i]) {
			l.visible = append(l.visible, i)
		}
	}
	l.selected = 0
}

// Selected returns the index of the selected finding among the visible ones.
func (l *FindingList) Selected() int {
	return l.selected
}

// SelectedFinding returns the currently selected finding, or nil if none.
func (l *FindingList) SelectedFinding() *domain.Finding {
	if l.selected < 0 || l.selected >= len(l.visible) {
		return nil
	}
	return &l.findings[l.visible[l.selected]]
}

// MoveUp moves selection up.
func (l *FindingList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *FindingList) MoveDown() {
	if l.selected < len(l.visible)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *FindingList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of visible findings.
func (l *FindingList) Count() int {
	return len(l.visible)
}

// IsEmpty returns whether no finding is visible.
func (l *FindingList) IsEmpty() bool {
	return len(l.visible) == 0
}
