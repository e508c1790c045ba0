// Package store persists catalog objects, lists, and saved graph views.
//
// Two backends implement the [Store] interface:
//
//   - [MemoryStore]: in-process map, for tests and single-shot CLI runs
//   - [MongoStore]: MongoDB-backed, for server deployments
//
// All operations are context-first. Lookups for missing documents return
// an error carrying the matching not-found code (errors.ErrCodeObjectNotFound,
// errors.ErrCodeNotFound for lists, errors.ErrCodeGraphNotFound) rather than
// a nil result.
package store

import (
	"context"

	"github.com/cdmlens/cdmlens/pkg/catalog"
	"github.com/cdmlens/cdmlens/pkg/graph"
)

// Store persists the catalog and saved graph views.
type Store interface {
	// PutObject inserts or replaces an object.
	PutObject(ctx context.Context, o catalog.Object) error

	// GetObject retrieves an object by ID.
	GetObject(ctx context.Context, id string) (catalog.Object, error)

	// ListObjects returns all objects. Order is backend-defined but
	// stable for a given backend state.
	ListObjects(ctx context.Context) ([]catalog.Object, error)

	// DeleteObject removes an object by ID.
	DeleteObject(ctx context.Context, id string) error

	// PutList inserts or replaces a list.
	PutList(ctx context.Context, l catalog.List) error

	// GetList retrieves a list by ID.
	GetList(ctx context.Context, id string) (catalog.List, error)

	// ListLists returns all lists.
	ListLists(ctx context.Context) ([]catalog.List, error)

	// DeleteList removes a list by ID.
	DeleteList(ctx context.Context, id string) error

	// PutGraph saves a projected graph view under a name.
	PutGraph(ctx context.Context, name string, g graph.Graph) error

	// GetGraph retrieves a saved graph view by name.
	GetGraph(ctx context.Context, name string) (graph.Graph, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}
