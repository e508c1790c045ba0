// Package catalog defines the CDM catalog's domain model: Objects and Lists
// carrying ontology classifications, driver tags, identifiers, relationships,
// and free-text variants.
//
// # Entities
//
//   - [Object]: a cataloged entity. Classified by a two-level ontology
//     (Being/Avatar), tagged with drivers (Sector, Domain, Country,
//     Clarifier), identified by unique IDs and composite keys built from
//     Part/Section/Group/Variable selectors, and related to other objects
//     by role-labeled relationships.
//   - [List]: a named collection of objects, tagged with drivers.
//
// # Graph Projection
//
// [BuildGraph] projects a set of objects and lists into a graph.Graph for
// visualization: one node per object, shared nodes for ontology levels and
// key components, and one edge per relationship. Two relationships between
// the same pair of objects become parallel edges; a self-referential
// relationship becomes a self-loop. Edge IDs are deterministic so that
// re-projecting the same catalog yields the same graph, which in turn keeps
// the layout resolver's output stable across reloads.
//
// # CSV
//
// [WriteCSV] and [ReadCSV] implement the bulk-edit round trip: one row per
// object, multi-valued cells separated by ";". See the function docs for
// the cell encodings.
package catalog
