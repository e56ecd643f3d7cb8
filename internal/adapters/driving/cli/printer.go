package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/custodia-labs/corpuslint/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/corpuslint/internal/core/domain"
)

// Status icons.
const (
	iconFatal    = "✗"
	iconAdvisory = "⚠"
	iconClean    = "✓"
)

// defaultWidth is used when the output is not a terminal.
const defaultWidth = 100

// printer renders reports for people. Colour is only used on a terminal.
type printer struct {
	w      io.Writer
	styles *styles.Styles
	styled bool
	width  int
}

func newPrinter(w io.Writer) *printer {
	p := &printer{
		w:      w,
		styles: styles.DefaultStyles(),
		width:  defaultWidth,
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.styled = true
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			p.width = width
		}
	}
	return p
}

func (p *printer) render(style lipgloss.Style, s string) string {
	if !p.styled {
		return s
	}
	return style.Render(s)
}

func (p *printer) println(s string) {
	fmt.Fprintln(p.w, s)
}

// Report prints a report header, its findings and the summary.
func (p *printer) Report(r *domain.Report) {
	p.println(p.render(p.styles.Title, "Report "+r.ID))
	p.println(p.render(p.styles.Muted, fmt.Sprintf("corpus %s, generated %s",
		r.CorpusVersion, r.GeneratedAt.Format(time.RFC3339))))
	p.println("")

	for i := range r.Findings {
		p.finding(&r.Findings[i])
	}
	if len(r.Findings) > 0 {
		p.println("")
	}

	p.Summary(r)
}

func (p *printer) finding(f *domain.Finding) {
	icon := iconAdvisory
	if f.Severity == domain.SeverityFatal {
		icon = iconFatal
	}

	where := fmt.Sprintf("item %d", f.ItemIndex)
	if f.ItemIndex < 0 {
		where = "unowned"
	}
	if f.UnitPosition != nil {
		where += fmt.Sprintf(" @%d", *f.UnitPosition)
	}

	head := fmt.Sprintf("%s %-22s %-14s ", icon, f.Kind, where)
	msg := truncate(f.Message, p.width-lipgloss.Width(head))
	p.println(p.render(p.styles.Severity(f.Severity), head) + msg)

	if f.RemediationHint != "" {
		p.println(p.render(p.styles.Muted, "    "+f.RemediationHint))
	}
}

// Summary prints per-kind counts and the totals.
func (p *printer) Summary(r *domain.Report) {
	if len(r.Findings) == 0 {
		p.println(p.render(p.styles.Success, iconClean+" No findings."))
		return
	}

	for _, c := range r.Summary.Counts {
		p.println(fmt.Sprintf("  %-22s %-8s %d", c.Kind, c.Severity, c.Count))
	}
	p.println("")

	total := fmt.Sprintf("%d fatal, %d advisory", r.Summary.Fatal, r.Summary.Advisory)
	if r.HasFatal() {
		p.println(p.render(p.styles.Fatal, iconFatal+" "+total))
		return
	}
	p.println(p.render(p.styles.Advisory, iconAdvisory+" "+total))
}

// History prints stored report headers.
func (p *printer) History(summaries []domain.ReportSummary) {
	if len(summaries) == 0 {
		p.println("No reports saved.")
		return
	}

	p.println(p.render(p.styles.Subtitle, fmt.Sprintf("%-36s  %-20s  %-24s  %5s  %8s",
		"ID", "GENERATED", "CORPUS", "FATAL", "ADVISORY")))
	for _, s := range summaries {
		line := fmt.Sprintf("%-36s  %-20s  %-24s  %5d  %8d",
			s.ID, s.GeneratedAt.Format("2006-01-02 15:04:05"), truncate(s.CorpusVersion, 24), s.Fatal, s.Advisory)
		if s.Fatal > 0 {
			line = p.render(p.styles.Fatal, line)
		}
		p.println(line)
	}
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if n < 8 {
		n = 8
	}
	if len(s) <= n {
		return s
	}
	return strings.TrimRightFunc(s[:n-3], func(r rune) bool { return r == ' ' }) + "..."
}
