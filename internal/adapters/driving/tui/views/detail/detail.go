// Package detail provides the finding detail view for the TUI.
package detail

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/corpuslint/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/corpuslint/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/corpuslint/internal/core/domain"
)

// View shows every field of one finding.
type View struct {
	styles *styles.Styles

	finding      *domain.Finding
	scrollOffset int
	width        int
	height       int
	ready        bool
}

// NewView creates a new finding detail view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		width:  80,
		height: 24,
	}
}

// SetFinding sets the finding to display.
func (v *View) SetFinding(f domain.Finding) {
	v.finding = &f
	v.scrollOffset = 0
}

// Finding returns the displayed finding.
func (v *View) Finding() *domain.Finding {
	return v.finding
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the detail view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.scrollOffset > 0 {
				v.scrollOffset--
			}
		case "down", "j":
			if v.scrollOffset < v.maxScrollOffset() {
				v.scrollOffset++
			}
		case "esc":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewFindings}
			}
		}
	}

	return v, nil
}

// visibleLines returns the number of lines that can be displayed.
func (v *View) visibleLines() int {
	// Title, separator, help and padding
	available := v.height - 6
	if available < 1 {
		available = 1
	}
	return available
}

func (v *View) maxScrollOffset() int {
	maxOffset := len(v.buildContent()) - v.visibleLines()
	if maxOffset < 0 {
		maxOffset = 0
	}
	return maxOffset
}

// buildContent builds the label/value lines for the finding.
func (v *View) buildContent() []string {
	f := v.finding
	if f == nil {
		return nil
	}

	lines := []string{
		formatField("Kind", f.Kind.String()),
		formatField("Severity", string(f.Severity)),
		formatField("Item", strconv.Itoa(f.ItemIndex)),
	}
	if f.UnitPosition != nil {
		lines = append(lines, formatField("Position", strconv.Itoa(int(*f.UnitPosition))))
	}
	lines = append(lines, formatField("Message", f.Message))
	if f.RemediationHint != "" {
		lines = append(lines, formatField("Fix", f.RemediationHint))
	}

	d := f.Details
	var evidence []string
	addList := func(label string, values []string) {
		if len(values) > 0 {
			evidence = append(evidence, fmt.Sprintf("  %s: %s", label, strings.Join(values, ", ")))
		}
	}
	addText := func(label, value string) {
		if value != "" {
			evidence = append(evidence, fmt.Sprintf("  %s: %s", label, value))
		}
	}
	addPos := func(label string, p *domain.Position) {
		if p != nil {
			evidence = append(evidence, fmt.Sprintf("  %s: %d", label, *p))
		}
	}

	addList("missing", d.MissingTokens)
	addList("extra", d.ExtraTokens)
	addText("reconstruction", d.Reconstruction)
	addList("realisations", d.Realisations)
	addPos("canonical at", d.CanonicalPosition)
	addText("canonical", d.CanonicalSource)
	if d.Rate != nil {
		evidence = append(evidence, fmt.Sprintf("  rate: %.2f (%d of %d)", *d.Rate, d.PairCount, d.LeftMarginal))
	}
	addText("rule", d.RuleID)
	if len(d.Positions) > 0 {
		ps := make([]string, len(d.Positions))
		for i, p := range d.Positions {
			ps[i] = strconv.Itoa(int(p))
		}
		addList("positions", ps)
	}
	addText("token", d.OffendingToken)
	addPos("introduced at", d.SourcePosition)
	addText("phrase", d.PhraseTarget)

	if len(evidence) > 0 {
		lines = append(lines, "", "Evidence:")
		lines = append(lines, evidence...)
	}

	return lines
}

func formatField(label, value string) string {
	return fmt.Sprintf("%-10s %s", label+":", value)
}

// View renders the finding detail view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Finding"))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", min(max(v.width-4, 0), 60)))
	b.WriteString("\n\n")

	if v.finding == nil {
		b.WriteString(v.styles.Muted.Render("No finding selected"))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	lines := v.buildContent()
	visible := v.visibleLines()
	for i := v.scrollOffset; i < len(lines) && i < v.scrollOffset+visible; i++ {
		b.WriteString(v.renderLine(lines[i]))
		b.WriteString("\n")
	}

	if len(lines) > visible {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [Line %d-%d of %d]",
			v.scrollOffset+1, min(v.scrollOffset+visible, len(lines)), len(lines))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

func (v *View) renderLine(line string) string {
	switch {
	case line == "Evidence:":
		return v.styles.Subtitle.Render(line)
	case strings.HasPrefix(line, "Severity:"):
		parts := strings.SplitN(line, ":", 2)
		return v.styles.Subtitle.Render(parts[0]+":") + v.styles.Severity(v.finding.Severity).Render(parts[1])
	case strings.HasPrefix(line, "  "):
		parts := strings.SplitN(line, ":", 2)
		if len(parts) == 2 {
			return v.styles.Muted.Render(parts[0]+":") + v.styles.Normal.Render(parts[1])
		}
		return v.styles.Muted.Render(line)
	case strings.Contains(line, ":"):
		parts := strings.SplitN(line, ":", 2)
		return v.styles.Subtitle.Render(parts[0]+":") + v.styles.Normal.Render(parts[1])
	default:
		return v.styles.Normal.Render(line)
	}
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] scroll  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}
