package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/cdmlens/cdmlens/pkg/graph"
	"github.com/cdmlens/cdmlens/pkg/layout"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// PlanTableModel - Interactive render-plan browser
// =============================================================================

// planRow is one edge of the resolved plan, denormalized for display.
type planRow struct {
	edge      string
	curve     string
	roundness string
	loop      string
	parallel  bool
}

// PlanTableModel is the bubbletea model for browsing a resolved render plan.
type PlanTableModel struct {
	Rows   []planRow
	Cursor int
	Height int
	Offset int
}

// NewPlanTableModel builds the browsable view of a render plan. Node IDs
// are replaced by display labels where the graph has them.
func NewPlanTableModel(g graph.Graph, plans []layout.Plan) PlanTableModel {
	edges := make(map[string]graph.Edge, len(g.Edges))
	pairCount := make(map[string]int, len(g.Edges))
	for _, e := range g.Edges {
		edges[e.ID] = e
		pairCount[e.From+"\x00"+e.To]++
	}

	rows := make([]planRow, 0, len(plans))
	for _, p := range plans {
		e := edges[p.EdgeID]

		from, to := e.From, e.To
		if n := g.NodeByID(e.From); n != nil {
			from = n.DisplayLabel()
		}
		if n := g.NodeByID(e.To); n != nil {
			to = n.DisplayLabel()
		}

		label := from + " " + iconArrow + " " + to
		if e.Label != "" {
			label += " (" + e.Label + ")"
		}

		curve := string(p.CurveType)
		if p.CurveType == layout.CurveNone {
			curve = "straight"
		}

		loop := "—"
		if p.LoopSize > 0 {
			loop = fmt.Sprintf("%.0f", p.LoopSize)
		}

		rows = append(rows, planRow{
			edge:      label,
			curve:     curve,
			roundness: fmt.Sprintf("%.2f", p.Roundness),
			loop:      loop,
			parallel:  pairCount[e.From+"\x00"+e.To] > 1,
		})
	}

	return PlanTableModel{Rows: rows, Height: 15}
}

func (m PlanTableModel) Init() tea.Cmd {
	return nil
}

func (m PlanTableModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PlanTableModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Render Plan"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Rows) {
		end = len(m.Rows)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, r.edge, r.curve, r.roundness, r.loop})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Edge", "Curve", "Roundness", "Loop").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Rows) {
				return lipgloss.NewStyle()
			}
			r := m.Rows[actualIdx]
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			if isCurrent {
				if r.parallel {
					return base.Foreground(colorGreen).Bold(true)
				}
				return base.Bold(true)
			}
			if r.parallel {
				return base.Foreground(colorGreen)
			}
			return base.Foreground(colorDim)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	return b.String()
}
