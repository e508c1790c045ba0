package graph

import (
	"fmt"

	"github.com/cdmlens/cdmlens/pkg/layout"
)

// =============================================================================
// Categories - Single Source of Truth
// =============================================================================

// Node categories. A category drives coloring and grouping in the rendering
// surface; it mirrors the catalog's classification levels.
const (
	CategoryBeing    = "being"
	CategoryAvatar   = "avatar"
	CategoryObject   = "object"
	CategoryList     = "list"
	CategoryPart     = "part"
	CategoryGroup    = "group"
	CategoryVariable = "variable"
)

// ValidCategories is the set of recognized node categories.
var ValidCategories = map[string]bool{
	CategoryBeing:    true,
	CategoryAvatar:   true,
	CategoryObject:   true,
	CategoryList:     true,
	CategoryPart:     true,
	CategoryGroup:    true,
	CategoryVariable: true,
}

// =============================================================================
// Graph - Catalog View Serialization
// =============================================================================

// Graph is the canonical serialization format for catalog graph views.
// Used for API responses, storage, caching, and file round trips.
type Graph struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// Node is a graph entity with a category tag and arbitrary key-value
// properties for the inspection panel.
type Node struct {
	ID         string            `json:"id" bson:"id"`
	Label      string            `json:"label,omitempty" bson:"label,omitempty"`
	Category   string            `json:"category,omitempty" bson:"category,omitempty"`
	Properties map[string]string `json:"properties,omitempty" bson:"properties,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge is a directed, labeled relationship between two nodes. Multiple
// edges may share the same ordered (From, To) pair, and From may equal To.
type Edge struct {
	ID         string            `json:"id" bson:"id"`
	From       string            `json:"from" bson:"from"`
	To         string            `json:"to" bson:"to"`
	Label      string            `json:"label,omitempty" bson:"label,omitempty"`
	Properties map[string]string `json:"properties,omitempty" bson:"properties,omitempty"`
}

// IsLoop reports whether the edge starts and ends on the same node.
func (e Edge) IsLoop() bool { return e.From == e.To }

// =============================================================================
// Validation
// =============================================================================

// Validate checks the graph's referential integrity: node IDs are unique,
// edge IDs are unique, and every edge endpoint references an existing node.
// Downstream consumers (the layout resolver in particular) assume a
// validated graph and perform no checks of their own.
func (g *Graph) Validate() error {
	nodes := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ID == "" {
			return fmt.Errorf("node with empty id")
		}
		if nodes[n.ID] {
			return fmt.Errorf("duplicate node id %q", n.ID)
		}
		nodes[n.ID] = true
	}

	edges := make(map[string]bool, len(g.Edges))
	for _, e := range g.Edges {
		if e.ID == "" {
			return fmt.Errorf("edge with empty id")
		}
		if edges[e.ID] {
			return fmt.Errorf("duplicate edge id %q", e.ID)
		}
		edges[e.ID] = true
		if !nodes[e.From] {
			return fmt.Errorf("edge %q references unknown node %q", e.ID, e.From)
		}
		if !nodes[e.To] {
			return fmt.Errorf("edge %q references unknown node %q", e.ID, e.To)
		}
	}
	return nil
}

// =============================================================================
// Layout Bridge
// =============================================================================

// LayoutEdges projects the graph's edges into the resolver's input view,
// preserving order.
func (g *Graph) LayoutEdges() []layout.Edge {
	out := make([]layout.Edge, len(g.Edges))
	for i, e := range g.Edges {
		out[i] = layout.Edge{ID: e.ID, From: e.From, To: e.To}
	}
	return out
}

// NodeByID returns the node with the given ID, or nil.
func (g *Graph) NodeByID(id string) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}
