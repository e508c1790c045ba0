// Package layout resolves render plans for graph edges.
//
// # Overview
//
// Graph-database browsers draw multiple relationships between the same two
// nodes as a "fan" of curved edges so that each relationship stays visible
// and clickable. This package implements that fan: given the flat edge list
// of one graph view, [Resolve] assigns every edge a curve direction, a
// curvature magnitude (roundness), and, for self-loops, a loop size.
//
// The resolver is a pure function of its input. It keeps no state, performs
// no I/O, and produces one plan per input edge in input order, so calling it
// twice on the same slice yields identical output.
//
// # Grouping
//
// Edges are grouped by their ordered (From, To) pair. An edge from A to B is
// never grouped with an edge from B to A; the rendering surface already
// separates opposing arrows by direction. Within a group, an edge's position
// is its input-order index. Stable input ordering therefore keeps the layout
// deterministic across re-renders.
//
// # Modes
//
// Two view modes adjust the curvature range:
//
//   - [ModeDefault]: wide range [0.5, 1.0], strongly bowed edges.
//   - [ModeRelationship]: conservative range [0.25, 0.45], keeps edge
//     labels legible in relationship-centric views.
//
// # Usage
//
//	plans := layout.Resolve(edges, layout.ModeRelationship)
//	for _, p := range plans {
//	    // p.EdgeID, p.CurveType, p.Roundness, p.LoopSize
//	}
//
// # Preconditions
//
// The resolver assumes well-formed input: unique edge IDs and non-empty
// endpoints. Referential integrity is the caller's responsibility (see
// graph.Graph.Validate); the resolver performs no validation of its own
// because a degraded rendering beats aborting the whole graph view.
package layout
