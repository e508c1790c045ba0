package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cdmlens/cdmlens/pkg/graph"
	"github.com/cdmlens/cdmlens/pkg/layout"
)

func planTableFixture() PlanTableModel {
	g := graph.Graph{
		Nodes: []graph.Node{
			{ID: "obj-1", Label: "Customer"},
			{ID: "obj-2", Label: "Account"},
			{ID: "obj-3"},
		},
		Edges: []graph.Edge{
			{ID: "e1", From: "obj-1", To: "obj-2", Label: "owns"},
			{ID: "e2", From: "obj-1", To: "obj-2", Label: "manages"},
			{ID: "e3", From: "obj-3", To: "obj-3", Label: "contains"},
		},
	}
	plans := layout.Resolve(g.LayoutEdges(), layout.ModeRelationship)
	return NewPlanTableModel(g, plans)
}

func TestNewPlanTableModel(t *testing.T) {
	m := planTableFixture()

	if len(m.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(m.Rows))
	}

	// Display labels replace IDs where available.
	if !strings.Contains(m.Rows[0].edge, "Customer") || !strings.Contains(m.Rows[0].edge, "Account") {
		t.Errorf("row 0 edge = %q, want display labels", m.Rows[0].edge)
	}
	if !strings.Contains(m.Rows[2].edge, "obj-3") {
		t.Errorf("row 2 edge = %q, want node ID fallback", m.Rows[2].edge)
	}

	// Parallel flag marks only the shared (from, to) pair.
	if !m.Rows[0].parallel || !m.Rows[1].parallel {
		t.Error("parallel pair rows should be flagged")
	}
	if m.Rows[2].parallel {
		t.Error("self-loop singleton should not be flagged parallel")
	}

	// The self-loop shows its loop size.
	if m.Rows[2].loop == "—" {
		t.Errorf("row 2 loop = %q, want a size", m.Rows[2].loop)
	}
}

func TestPlanTableModelNavigation(t *testing.T) {
	m := planTableFixture()

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(PlanTableModel)
	if m.Cursor != 1 {
		t.Errorf("cursor after down = %d, want 1", m.Cursor)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(PlanTableModel)
	if m.Cursor != 0 {
		t.Errorf("cursor after up = %d, want 0", m.Cursor)
	}

	// Cursor does not move past the first row.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(PlanTableModel)
	if m.Cursor != 0 {
		t.Errorf("cursor clamped = %d, want 0", m.Cursor)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = next.(PlanTableModel)
	if cmd == nil {
		t.Error("q should quit")
	}
}

func TestPlanTableModelView(t *testing.T) {
	m := planTableFixture()
	view := m.View()

	if !strings.Contains(view, "Render Plan") {
		t.Error("view should contain the title")
	}
	if !strings.Contains(view, "Customer") {
		t.Error("view should list the edges")
	}
	if !strings.Contains(view, "[1/3]") {
		t.Error("view should show the cursor position")
	}
}
