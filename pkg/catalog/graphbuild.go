package catalog

import (
	"fmt"
	"strings"

	"github.com/cdmlens/cdmlens/pkg/errors"
	"github.com/cdmlens/cdmlens/pkg/graph"
)

// Edge labels used by the graph projection.
const (
	EdgeInstanceOf  = "instance_of"
	EdgeKindOf      = "kind_of"
	EdgeKeyPart     = "key_part"
	EdgeKeyGroup    = "key_group"
	EdgeKeyVariable = "key_variable"
	EdgeContains    = "contains"
)

// multiValueSep joins multi-valued object properties for the inspection
// panel, matching the CSV cell separator.
const multiValueSep = ";"

// builder accumulates nodes and edges with deterministic IDs.
type builder struct {
	g     graph.Graph
	nodes map[string]bool
	// pairCount numbers edges within each ordered (from,to) pair so that
	// re-projection of the same catalog produces identical edge IDs.
	pairCount map[[2]string]int
}

func newBuilder() *builder {
	return &builder{
		nodes:     make(map[string]bool),
		pairCount: make(map[[2]string]int),
	}
}

// addNode inserts a node unless one with the same ID already exists.
// Shared nodes (ontology levels, key components) are created on first
// reference.
func (b *builder) addNode(n graph.Node) {
	if b.nodes[n.ID] {
		return
	}
	b.nodes[n.ID] = true
	b.g.Nodes = append(b.g.Nodes, n)
}

// addEdge appends an edge with a deterministic ID derived from the ordered
// pair and the edge's ordinal within it.
func (b *builder) addEdge(from, to, label string, props map[string]string) {
	pair := [2]string{from, to}
	n := b.pairCount[pair]
	b.pairCount[pair] = n + 1
	b.g.Edges = append(b.g.Edges, graph.Edge{
		ID:         fmt.Sprintf("%s:%s#%d", from, to, n),
		From:       from,
		To:         to,
		Label:      label,
		Properties: props,
	})
}

// BuildGraph projects objects and lists into a node-link graph for
// visualization.
//
// Every relationship becomes one edge, so two relationships between the same
// objects yield parallel edges and a self-referential relationship yields a
// self-loop. Ontology levels and composite-key components become shared
// nodes. The projection is deterministic: the same catalog in the same
// order produces an identical graph, which keeps downstream layout stable
// across reloads.
//
// A relationship or list member referencing an unknown object is an
// integrity error: the projection is the validation gate for the layout
// resolver, which assumes well-formed input.
func BuildGraph(objects []Object, lists []List) (graph.Graph, error) {
	known := make(map[string]bool, len(objects))
	for i := range objects {
		if err := objects[i].Validate(); err != nil {
			return graph.Graph{}, err
		}
		known[objects[i].ID] = true
	}
	for i := range lists {
		if err := lists[i].Validate(); err != nil {
			return graph.Graph{}, err
		}
	}

	b := newBuilder()

	for i := range objects {
		o := &objects[i]
		b.addNode(graph.Node{
			ID:         o.ID,
			Label:      o.Name,
			Category:   graph.CategoryObject,
			Properties: objectProperties(o),
		})
	}

	for i := range objects {
		o := &objects[i]
		b.projectOntology(o)
		b.projectKeys(o)
		for _, r := range o.Relationships {
			if !known[r.TargetID] {
				return graph.Graph{}, errors.New(errors.ErrCodeInvalidGraph,
					"object %s relates to unknown object %s", o.ID, r.TargetID)
			}
			b.addEdge(o.ID, r.TargetID, r.Role, nil)
		}
	}

	for i := range lists {
		l := &lists[i]
		b.addNode(graph.Node{
			ID:         l.ID,
			Label:      l.Name,
			Category:   graph.CategoryList,
			Properties: driverProperties(l.Drivers),
		})
		for _, id := range l.MemberIDs {
			if !known[id] {
				return graph.Graph{}, errors.New(errors.ErrCodeInvalidGraph,
					"list %s contains unknown object %s", l.ID, id)
			}
			b.addEdge(l.ID, id, EdgeContains, nil)
		}
	}

	if err := b.g.Validate(); err != nil {
		return graph.Graph{}, errors.Wrap(errors.ErrCodeInvalidGraph, err, "projected graph")
	}
	return b.g, nil
}

// projectOntology links the object to its Being/Avatar classification:
// object → avatar → being when both levels are present, object → being
// when only the coarse level is set.
func (b *builder) projectOntology(o *Object) {
	being, avatar := o.Ontology.Being, o.Ontology.Avatar
	if avatar != "" {
		avatarID := "avatar:" + avatar
		b.addNode(graph.Node{ID: avatarID, Label: avatar, Category: graph.CategoryAvatar})
		b.addEdge(o.ID, avatarID, EdgeInstanceOf, nil)
		if being != "" {
			beingID := "being:" + being
			b.addNode(graph.Node{ID: beingID, Label: being, Category: graph.CategoryBeing})
			b.addEdge(avatarID, beingID, EdgeKindOf, nil)
		}
		return
	}
	if being != "" {
		beingID := "being:" + being
		b.addNode(graph.Node{ID: beingID, Label: being, Category: graph.CategoryBeing})
		b.addEdge(o.ID, beingID, EdgeInstanceOf, nil)
	}
}

// projectKeys links the object to its composite-key components. The section
// selector has no node category of its own; it rides along as an edge
// property on the part link.
func (b *builder) projectKeys(o *Object) {
	for _, k := range o.Identifiers.Composite {
		partID := "part:" + k.Part
		b.addNode(graph.Node{ID: partID, Label: k.Part, Category: graph.CategoryPart})
		var props map[string]string
		if k.Section != "" {
			props = map[string]string{"section": k.Section}
		}
		b.addEdge(o.ID, partID, EdgeKeyPart, props)

		if k.Group != "" {
			groupID := "group:" + k.Group
			b.addNode(graph.Node{ID: groupID, Label: k.Group, Category: graph.CategoryGroup})
			b.addEdge(o.ID, groupID, EdgeKeyGroup, nil)
		}
		if k.Variable != "" {
			varID := "variable:" + k.Variable
			b.addNode(graph.Node{ID: varID, Label: k.Variable, Category: graph.CategoryVariable})
			b.addEdge(o.ID, varID, EdgeKeyVariable, nil)
		}
	}
}

// objectProperties flattens an object's tags into inspection-panel
// properties. Multi-valued tags join with the CSV cell separator.
func objectProperties(o *Object) map[string]string {
	props := driverProperties(o.Drivers)
	if len(o.Variants) > 0 {
		if props == nil {
			props = make(map[string]string)
		}
		props["variants"] = strings.Join(o.Variants, multiValueSep)
	}
	if len(o.Identifiers.Unique) > 0 {
		if props == nil {
			props = make(map[string]string)
		}
		props["identifiers"] = strings.Join(o.Identifiers.Unique, multiValueSep)
	}
	return props
}

func driverProperties(drivers []Driver) map[string]string {
	if len(drivers) == 0 {
		return nil
	}
	byKind := make(map[DriverKind][]string)
	for _, d := range drivers {
		byKind[d.Kind] = append(byKind[d.Kind], d.Value)
	}
	props := make(map[string]string, len(byKind))
	for kind, values := range byKind {
		props[string(kind)] = strings.Join(values, multiValueSep)
	}
	return props
}
