// Package render paints catalog graph views as Graphviz DOT, SVG, and PNG.
//
// # Overview
//
// [ToDOT] converts a graph plus its resolved render plan into DOT source.
// Nodes are colored by category; edges carry the plan's curve type,
// roundness, and loop size as edge attributes so that canvas-based
// rendering surfaces can reproduce the exact fan the resolver computed.
// Graphviz's own SVG output separates parallel edges with splines and uses
// the plan only for styling, which is close enough for static exports.
//
// # Usage
//
//	plans := layout.Resolve(g.LayoutEdges(), layout.ModeDefault)
//	dot := render.ToDOT(g, plans, render.Options{Mode: layout.ModeDefault})
//	svg, err := render.SVG(dot)
//
// # Determinism
//
// ToDOT output depends only on its input, byte for byte: node and edge
// statements appear in graph order and attributes in fixed order, so DOT
// artifacts can be cached by content hash.
package render
