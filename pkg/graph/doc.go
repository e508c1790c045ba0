// Package graph defines the node-link model and wire format for catalog
// graph views.
//
// This package is the canonical serialization boundary between the catalog
// (pkg/catalog), the layout resolver (pkg/layout), and external consumers:
// JSON files, API responses, cache entries, and Mongo documents all use
// these types.
//
// # Core Types
//
//   - [Graph]: a node-link graph for one catalog view
//   - [Node]: an entity with a category tag and inspection properties
//   - [Edge]: a directed, labeled relationship; parallel edges and
//     self-loops are both legal
//
// # Wire Format
//
// Graphs use a simple node-link JSON format:
//
//	{
//	  "nodes": [{"id": "obj-1", "label": "Customer", "category": "object"}],
//	  "edges": [{"id": "e1", "from": "obj-1", "to": "obj-2", "label": "owns"}]
//	}
//
// Common operations:
//
//	g, _ := graph.ReadFile("view.json")     // File → Graph
//	graph.WriteFile(g, "out.json")          // Graph → File
//	data, _ := graph.Marshal(g)             // Graph → []byte
//	g, _ = graph.Unmarshal(data)            // []byte → Graph
//
// # Validation
//
// [Graph.Validate] is the referential-integrity gate the layout resolver
// relies on: unique node IDs, unique edge IDs, and edge endpoints that
// reference existing nodes. Callers feeding a graph to the resolver or the
// renderer should validate once at the boundary.
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
