package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cdmlens/cdmlens/pkg/cache"
	"github.com/cdmlens/cdmlens/pkg/catalog"
	"github.com/cdmlens/cdmlens/pkg/graph"
	"github.com/cdmlens/cdmlens/pkg/layout"
	"github.com/cdmlens/cdmlens/pkg/observability"
	"github.com/cdmlens/cdmlens/pkg/render"
	"github.com/cdmlens/cdmlens/pkg/store"
)

// DefaultCacheTTL bounds how long cached projections, plans, and artifacts
// live when the caller does not configure a TTL. Entries are
// content-addressed, so staleness only costs disk, not correctness.
const DefaultCacheTTL = 24 * time.Hour

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is how long cache entries written by this runner live.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// The cache TTL defaults to DefaultCacheTTL; assign TTL to override.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    DefaultCacheTTL,
	}
}

// Result is the outcome of a pipeline execution.
type Result struct {
	Graph     graph.Graph       `json:"graph"`
	Plans     []layout.Plan     `json:"plans"`
	Artifacts map[string][]byte `json:"-"`
	GraphHash string            `json:"graph_hash"`
	Stats     Stats             `json:"stats"`
	CacheInfo CacheInfo         `json:"cache_info"`
}

// Stats carries per-stage timings and graph shape.
type Stats struct {
	ResolveTime time.Duration `json:"resolve_time"`
	RenderTime  time.Duration `json:"render_time"`
	NodeCount   int           `json:"node_count"`
	EdgeCount   int           `json:"edge_count"`
}

// CacheInfo reports which stages were served from cache.
type CacheInfo struct {
	PlanHit   bool `json:"plan_hit"`
	RenderHit bool `json:"render_hit"`
}

// Project builds a graph view from the catalog in s. This is stage 1 for
// callers starting from stored objects rather than a graph file. Projections
// are cached by catalog content, so an unchanged catalog skips the rebuild.
func (r *Runner) Project(ctx context.Context, s store.Store, opts Options) (graph.Graph, error) {
	objects, err := s.ListObjects(ctx)
	if err != nil {
		return graph.Graph{}, fmt.Errorf("load objects: %w", err)
	}
	var lists []catalog.List
	if opts.IncludeLists {
		if lists, err = s.ListLists(ctx); err != nil {
			return graph.Graph{}, fmt.Errorf("load lists: %w", err)
		}
	}

	input, err := json.Marshal(struct {
		Objects []catalog.Object `json:"objects"`
		Lists   []catalog.List   `json:"lists"`
	}{objects, lists})
	if err != nil {
		return graph.Graph{}, fmt.Errorf("hash catalog: %w", err)
	}
	key := r.Keyer.GraphKey(cache.Hash(input), cache.GraphKeyOpts{IncludeLists: opts.IncludeLists})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if g, err := graph.Unmarshal(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "graph")
				return g, nil
			}
			// Corrupt entry - fall through and rebuild
		}
	}
	observability.Cache().OnCacheMiss(ctx, "graph")

	g, err := catalog.BuildGraph(objects, lists)
	if err != nil {
		return graph.Graph{}, err
	}
	if data, err := graph.Marshal(g); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			r.Logger.Debug("graph cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "graph", len(data))
		}
	}
	return g, nil
}

// Execute runs resolve → render on a validated graph view with caching.
func (r *Runner) Execute(ctx context.Context, g graph.Graph, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("invalid graph: %w", err)
	}

	result := &Result{
		Graph:     g,
		Artifacts: make(map[string][]byte),
	}
	result.Stats.NodeCount = len(g.Nodes)
	result.Stats.EdgeCount = len(g.Edges)

	graphData, err := graph.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("hash graph: %w", err)
	}
	result.GraphHash = cache.Hash(graphData)

	// Stage 2: Resolve
	resolveStart := time.Now()
	observability.Pipeline().OnResolveStart(ctx, opts.Mode, len(g.Edges))
	plans, planHit, err := r.resolveWithCache(ctx, g, result.GraphHash, opts)
	observability.Pipeline().OnResolveComplete(ctx, opts.Mode, time.Since(resolveStart), err)
	if err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}
	result.Plans = plans
	result.Stats.ResolveTime = time.Since(resolveStart)
	result.CacheInfo.PlanHit = planHit

	r.Logger.Info("resolved render plan",
		"edges", len(plans),
		"mode", opts.Mode,
		"cached", planHit,
		"duration", result.Stats.ResolveTime)

	// Stage 3: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	renderHit, err := r.renderArtifacts(ctx, g, plans, result, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered artifacts",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// resolveWithCache returns the render plan for the graph, from cache when
// an unexpired entry exists and Refresh is unset.
func (r *Runner) resolveWithCache(ctx context.Context, g graph.Graph, graphHash string, opts Options) ([]layout.Plan, bool, error) {
	key := r.Keyer.PlanKey(graphHash, cache.PlanKeyOpts{Mode: opts.Mode})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var plans []layout.Plan
			if err := json.Unmarshal(data, &plans); err == nil {
				observability.Cache().OnCacheHit(ctx, "plan")
				return plans, true, nil
			}
			// Corrupt entry - fall through and recompute
		}
	}
	observability.Cache().OnCacheMiss(ctx, "plan")

	plans := layout.Resolve(g.LayoutEdges(), layout.Mode(opts.Mode))

	if data, err := json.Marshal(plans); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			r.Logger.Debug("plan cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "plan", len(data))
		}
	}
	return plans, false, nil
}

// renderArtifacts fills result.Artifacts for every requested format.
// It reports whether every artifact came from cache.
func (r *Runner) renderArtifacts(ctx context.Context, g graph.Graph, plans []layout.Plan, result *Result, opts Options) (bool, error) {
	planData, err := json.Marshal(plans)
	if err != nil {
		return false, fmt.Errorf("marshal plans: %w", err)
	}
	planHash := cache.Hash(planData)

	allHit := true
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(planHash, cache.ArtifactKeyOpts{Format: format, Mode: opts.Mode})

		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				result.Artifacts[format] = data
				continue
			}
		}
		allHit = false
		observability.Cache().OnCacheMiss(ctx, "artifact")

		data, err := r.renderOne(g, plans, planData, format, opts)
		if err != nil {
			return false, err
		}
		result.Artifacts[format] = data

		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			r.Logger.Debug("artifact cache write failed", "format", format, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return allHit, nil
}

func (r *Runner) renderOne(g graph.Graph, plans []layout.Plan, planData []byte, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatPlan:
		return planData, nil
	case FormatDOT:
		dot := render.ToDOT(g, plans, render.Options{
			Mode:     layout.Mode(opts.Mode),
			Detailed: opts.Detailed,
		})
		return []byte(dot), nil
	case FormatSVG:
		dot := render.ToDOT(g, plans, render.Options{
			Mode:     layout.Mode(opts.Mode),
			Detailed: opts.Detailed,
		})
		return render.SVG(dot)
	case FormatPNG:
		dot := render.ToDOT(g, plans, render.Options{
			Mode:     layout.Mode(opts.Mode),
			Detailed: opts.Detailed,
		})
		return render.PNG(dot, pngScale)
	default:
		return nil, ValidateFormat(format)
	}
}
