package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/corpuslint/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/corpuslint/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/corpuslint/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/corpuslint/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/corpuslint/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/corpuslint/internal/adapters/driving/tui/views/detail"
	"github.com/custodia-labs/corpuslint/internal/core/domain"
)

// App is the findings browser following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports *Ports
	ctx   context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	findings   *list.FindingList
	detailView *detail.View
	statusBar  *status.Bar

	// reportID selects the report to load; empty means the latest one.
	reportID string

	// report is set up front by WithReport or after loading.
	report *domain.Report

	currentView messages.ViewType
	err         error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new findings browser with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		findings:    list.NewFindingList(s),
		detailView:  detail.NewView(s),
		statusBar:   status.NewBar(s, km),
		currentView: messages.ViewFindings,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// WithReportID selects a stored report to browse instead of the latest.
func (a *App) WithReportID(id string) *App {
	a.reportID = id
	return a
}

// WithReport browses an in-memory report; nothing is loaded.
func (a *App) WithReport(report *domain.Report) *App {
	a.setReport(report)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	title := tea.SetWindowTitle("corpuslint - findings")
	if a.report != nil {
		return title
	}
	a.statusBar.SetState(status.StateLoading)
	return tea.Batch(title, a.loadReport())
}

// loadReport fetches the selected report in the background.
func (a *App) loadReport() tea.Cmd {
	ctx, reports, id := a.ctx, a.ports.Reports, a.reportID
	return func() tea.Msg {
		var (
			report *domain.Report
			err    error
		)
		if id == "" {
			report, err = reports.Latest(ctx)
		} else {
			report, err = reports.Get(ctx, id)
		}
		if errors.Is(err, domain.ErrNotFound) {
			err = ErrNoReport
		}
		return messages.ReportLoaded{Report: report, Err: err}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.ReportLoaded:
		if msg.Err != nil {
			a.setError(msg.Err)
			return a, nil
		}
		a.setReport(msg.Report)
		return a, nil

	case messages.FindingSelected:
		a.detailView.SetFinding(msg.Finding)
		a.currentView = messages.ViewDetail
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		a.syncStatus()
		return a, nil

	case messages.ErrorOccurred:
		a.setError(msg.Err)
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	if a.currentView == messages.ViewDetail {
		a.detailView, cmd = a.detailView.Update(msg)
	}
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewFindings:
		switch {
		case keymap.Matches(msg.String(), a.keymap.Quit):
			return a, tea.Quit
		case keymap.Matches(msg.String(), a.keymap.Help):
			a.currentView = messages.ViewHelp
			a.statusBar.SetState(status.StateHelp)
			return a, nil
		case keymap.Matches(msg.String(), a.keymap.Select):
			if f := a.findings.SelectedFinding(); f != nil {
				finding := *f
				return a, func() tea.Msg { return messages.FindingSelected{Finding: finding} }
			}
			return a, nil
		}
		a.findings, cmd = a.findings.Update(msg)
		return a, cmd

	case messages.ViewDetail:
		if keymap.Matches(msg.String(), a.keymap.Quit) {
			return a, tea.Quit
		}
		a.detailView, cmd = a.detailView.Update(msg)
		return a, cmd

	case messages.ViewHelp:
		if keymap.Matches(msg.String(), a.keymap.Back) || keymap.Matches(msg.String(), a.keymap.Help) {
			a.currentView = messages.ViewFindings
			a.syncStatus()
			return a, nil
		}
		if keymap.Matches(msg.String(), a.keymap.Quit) {
			return a, tea.Quit
		}
	}

	return a, nil
}

func (a *App) setReport(report *domain.Report) {
	a.report = report
	a.err = nil
	if report == nil {
		a.findings.SetFindings(nil)
	} else {
		a.findings.SetFindings(report.Findings)
	}
	a.statusBar.SetReport(report)
	a.syncStatus()
}

func (a *App) setError(err error) {
	a.err = err
	a.statusBar.SetState(status.StateError)
	a.statusBar.SetMessage(err.Error())
}

func (a *App) syncStatus() {
	if a.err != nil {
		return
	}
	if a.currentView == messages.ViewHelp {
		a.statusBar.SetState(status.StateHelp)
		return
	}
	a.statusBar.SetState(status.StateFindings)
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewDetail:
		body = a.detailView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.viewFindings()
	}

	return body + "\n" + a.statusBar.View()
}

func (a *App) viewFindings() string {
	if a.report == nil {
		if a.err != nil {
			return a.styles.Error.Render(a.err.Error())
		}
		return a.styles.Muted.Render("Loading report...")
	}

	header := a.styles.Title.Render(fmt.Sprintf("Report %s", a.report.ID)) + "\n" +
		a.styles.Muted.Render(fmt.Sprintf("corpus %s, generated %s",
			a.report.CorpusVersion, a.report.GeneratedAt.Format("2006-01-02 15:04:05")))

	return header + "\n\n" + a.findings.View()
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Findings:
  j/k, ↑/↓    Navigate findings
  g/G         First / last finding
  enter       Show finding details
  f           Cycle filter (all, fatal, advisory)
  q           Quit

Details:
  j/k, ↑/↓    Scroll
  esc         Back to findings

[esc] back to findings`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Report returns the report being browsed.
func (a *App) Report() *domain.Report {
	return a.report
}

// Findings returns the findings list component.
func (a *App) Findings() *list.FindingList {
	return a.findings
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	// Header and status bar take four lines.
	a.findings.SetDimensions(width, height-4)
	a.detailView.SetDimensions(width, height-1)
	a.statusBar.SetWidth(width)
}
