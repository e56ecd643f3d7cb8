package list

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/corpuslint/internal/core/domain"
)

func sampleFindings() []domain.Finding {
	return []domain.Finding{
		domain.NewFinding(domain.KindTilingFailure, 0, "units do not reconstruct the item", "").AtUnit(3),
		domain.NewFinding(domain.KindConsistencyViolation, 1, "\"dog\" realised as \"perro\" and \"can\"", "pick one"),
		domain.NewFinding(domain.KindGateViolation, 2, "\"ran\" used before it is introduced", ""),
		domain.NewFinding(domain.KindCooccurrenceFlag, 4, "pair always appears together", ""),
	}
}

func TestNewFindingList(t *testing.T) {
	l := NewFindingList(nil)

	require.NotNil(t, l)
	assert.True(t, l.IsEmpty())
	assert.Nil(t, l.SelectedFinding())
	assert.Equal(t, FilterAll, l.Filter())
	assert.Nil(t, l.Init())
}

func TestFilter_Cycle(t *testing.T) {
	assert.Equal(t, FilterFatal, FilterAll.Next())
	assert.Equal(t, FilterAdvisory, FilterFatal.Next())
	assert.Equal(t, FilterAll, FilterAdvisory.Next())

	assert.Equal(t, "all", FilterAll.String())
	assert.Equal(t, "fatal", FilterFatal.String())
	assert.Equal(t, "advisory", FilterAdvisory.String())
}

func TestFindingList_Filter(t *testing.T) {
	l := NewFindingList(nil)
	l.SetFindings(sampleFindings())
	assert.Equal(t, 4, l.Count())

	l.SetFilter(FilterFatal)
	assert.Equal(t, 2, l.Count())
	require.NotNil(t, l.SelectedFinding())
	assert.Equal(t, domain.KindTilingFailure, l.SelectedFinding().Kind)
	l.MoveDown()
	assert.Equal(t, domain.KindGateViolation, l.SelectedFinding().Kind)

	l.SetFilter(FilterAdvisory)
	assert.Equal(t, 2, l.Count())
	assert.Equal(t, 0, l.Selected(), "filter change resets the selection")
	assert.Equal(t, domain.KindConsistencyViolation, l.SelectedFinding().Kind)

	assert.Len(t, l.Findings(), 4)
}

func TestFindingList_Navigation(t *testing.T) {
	l := NewFindingList(nil)
	l.SetFindings(sampleFindings())

	l.MoveUp()
	assert.Equal(t, 0, l.Selected())

	tests := []struct {
		key  tea.KeyMsg
		want int
	}{
		{tea.KeyMsg{Type: tea.KeyDown}, 1},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}, 2},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")}, 1},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")}, 3},
		{tea.KeyMsg{Type: tea.KeyDown}, 3},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")}, 0},
	}
	for _, tt := range tests {
		_, cmd := l.Update(tt.key)
		assert.Nil(t, cmd)
		assert.Equal(t, tt.want, l.Selected(), "after %q", tt.key.String())
	}
}

func TestFindingList_FilterKey(t *testing.T) {
	l := NewFindingList(nil)
	l.SetFindings(sampleFindings())

	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("f")})

	assert.Equal(t, FilterFatal, l.Filter())
	assert.Equal(t, 2, l.Count())
}

func TestFindingList_View(t *testing.T) {
	l := NewFindingList(nil)
	l.SetDimensions(100, 30)

	assert.Contains(t, l.View(), "No findings")

	l.SetFindings(sampleFindings())
	view := l.View()

	assert.Contains(t, view, "Findings (4 of 4, filter: all)")
	assert.Contains(t, view, "TilingFailure")
	assert.Contains(t, view, "item 0 @3")
	assert.Contains(t, view, "used before it is introduced")
}

func TestFindingList_ViewUnownedAndTruncated(t *testing.T) {
	l := NewFindingList(nil)
	l.SetDimensions(30, 30)

	long := domain.NewFinding(domain.KindGateViolation, -1,
		"phrase owner 999 is not a unit position in this corpus", "")
	l.SetFindings([]domain.Finding{long})

	view := l.View()
	assert.Contains(t, view, "unowned")
	assert.Contains(t, view, "...")
}
