// Package pkg provides the core libraries for CDM Lens catalog visualization.
//
// # Overview
//
// CDM Lens projects a graph-backed data catalog into relationship graph views
// and resolves how parallel edges between the same two objects should curve
// so they stay individually selectable. The pkg directory is organized around
// that flow:
//
//	Catalog objects (CSV / Mongo / API)
//	         ↓
//	    [catalog] package (projection into a graph view)
//	         ↓
//	    [layout] package (parallel-edge render plan)
//	         ↓
//	    [render] package (DOT / SVG / PNG output)
//
// # Main Packages
//
// [layout] - The parallel-edge layout resolver. Pure and deterministic:
// edges in, per-edge curve direction, roundness, and loop size out.
//
// [catalog] - The catalog domain: objects, ontology classification, drivers,
// composite keys, relationships, plus CSV round trips and graph projection.
//
// [graph] - Serialization types for graph views (JSON node-link format) and
// the bridge into the resolver.
//
// [render] - DOT generation carrying the plan as edge attributes, and
// SVG/PNG rendering via Graphviz.
//
// [pipeline] - The project → resolve → render pipeline with content-hash
// caching, shared by the CLI and the HTTP API.
//
// # Infrastructure
//
// [store] - Catalog persistence: in-memory for tests and single runs,
// MongoDB for deployments.
//
// [cache] - Plan and artifact caching: file cache for the CLI, Redis for
// deployments, null cache to disable.
//
// [config] - TOML server configuration with defaults and validation.
//
// [errors] - Structured errors with machine-readable codes.
//
// [retry] - Exponential-backoff retries for backend connections.
//
// [observability] - Hook interfaces for instrumenting the pipeline without
// binding it to a metrics backend.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/layout/...   # Specific package
//
// [layout]: https://pkg.go.dev/github.com/cdmlens/cdmlens/pkg/layout
// [catalog]: https://pkg.go.dev/github.com/cdmlens/cdmlens/pkg/catalog
// [graph]: https://pkg.go.dev/github.com/cdmlens/cdmlens/pkg/graph
// [render]: https://pkg.go.dev/github.com/cdmlens/cdmlens/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/cdmlens/cdmlens/pkg/pipeline
// [store]: https://pkg.go.dev/github.com/cdmlens/cdmlens/pkg/store
// [cache]: https://pkg.go.dev/github.com/cdmlens/cdmlens/pkg/cache
// [config]: https://pkg.go.dev/github.com/cdmlens/cdmlens/pkg/config
// [errors]: https://pkg.go.dev/github.com/cdmlens/cdmlens/pkg/errors
// [retry]: https://pkg.go.dev/github.com/cdmlens/cdmlens/pkg/retry
// [observability]: https://pkg.go.dev/github.com/cdmlens/cdmlens/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/cdmlens/cdmlens/pkg/buildinfo
package pkg
