package render

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/cdmlens/cdmlens/pkg/graph"
	"github.com/cdmlens/cdmlens/pkg/layout"
)

// Options configures DOT generation.
type Options struct {
	// Mode selects the color table; it should match the mode the plans
	// were resolved with.
	Mode layout.Mode

	// Detailed includes node properties in labels.
	// When false, only the display label is shown.
	Detailed bool
}

// ToDOT converts a graph and its render plan to Graphviz DOT source.
//
// The plan must cover the graph's edges (as produced by layout.Resolve on
// g.LayoutEdges()); edges without a plan entry render straight. Plan values
// are attached as curvetype/roundness/loopsize edge attributes for canvas
// surfaces that parse the DOT.
func ToDOT(g graph.Graph, plans []layout.Plan, opts Options) string {
	planByEdge := make(map[string]layout.Plan, len(plans))
	for _, p := range plans {
		planByEdge[p.EdgeID] = p
	}

	var buf bytes.Buffer
	buf.WriteString("digraph cdm {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=12, margin=\"0.15,0.08\"];\n")
	buf.WriteString("\n")

	for i := range g.Nodes {
		n := &g.Nodes[i]
		attrs := nodeAttrs(n, opts)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		attrs := edgeAttrs(e, planByEdge[e.ID])
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n *graph.Node, opts Options) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", nodeLabel(n, opts.Detailed)),
		fmt.Sprintf("fillcolor=%q", fillColor(n.Category, opts.Mode)),
	}
	if n.Category != "" {
		attrs = append(attrs, fmt.Sprintf("category=%q", n.Category))
	}
	return attrs
}

func nodeLabel(n *graph.Node, detailed bool) string {
	label := n.DisplayLabel()
	if !detailed || len(n.Properties) == 0 {
		return label
	}
	parts := []string{label}
	for _, k := range slices.Sorted(maps.Keys(n.Properties)) {
		parts = append(parts, fmt.Sprintf("%s: %s", k, n.Properties[k]))
	}
	return strings.Join(parts, "\n")
}

func edgeAttrs(e graph.Edge, p layout.Plan) []string {
	var attrs []string
	if e.Label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", e.Label))
	}

	attrs = append(attrs, fmt.Sprintf("curvetype=%q", curveOrNone(p)))
	if p.CurveType == layout.CurveCW || p.CurveType == layout.CurveCCW {
		if p.Roundness > 0 {
			attrs = append(attrs, fmt.Sprintf("roundness=\"%.4f\"", p.Roundness))
		}
	}
	if e.IsLoop() {
		attrs = append(attrs, fmt.Sprintf("loopsize=\"%.1f\"", p.LoopSize))
	}
	return attrs
}

// curveOrNone tolerates a missing plan entry (zero Plan) by falling back to
// a straight edge.
func curveOrNone(p layout.Plan) layout.CurveType {
	if p.CurveType == "" {
		return layout.CurveNone
	}
	return p.CurveType
}
