package layout

// =============================================================================
// Modes
// =============================================================================

// Mode selects the curvature range used for parallel edges.
type Mode string

const (
	// ModeDefault uses the wide curvature range. Every curved edge is
	// visibly bowed, at the cost of label legibility for large fans.
	ModeDefault Mode = "default"

	// ModeRelationship uses a conservative curvature range so that edge
	// labels stay legible in relationship-centric views.
	ModeRelationship Mode = "relationship-emphasis"
)

// ValidModes is the set of supported resolver modes.
var ValidModes = map[Mode]bool{
	ModeDefault:      true,
	ModeRelationship: true,
}

// =============================================================================
// Curve Types
// =============================================================================

// CurveType describes the direction an edge bows away from the straight
// line between its endpoints.
type CurveType string

const (
	// CurveNone renders the edge as a straight segment.
	CurveNone CurveType = "none"

	// CurveCW bows the edge clockwise.
	CurveCW CurveType = "cw"

	// CurveCCW bows the edge counter-clockwise.
	CurveCCW CurveType = "ccw"
)

// =============================================================================
// Tuning Constants
// =============================================================================

// Curvature tuning values. These are visual constants chosen empirically;
// they are not load-bearing beyond the ranges they define.
const (
	// EmphasisMinRoundness and EmphasisMaxRoundness bound curvature in
	// ModeRelationship. For exactly two parallel edges the boundary values
	// are assigned directly, giving the pairwise case maximum separation.
	EmphasisMinRoundness = 0.25
	EmphasisMaxRoundness = 0.45

	// DefaultMinRoundness floors curvature in ModeDefault so a curved edge
	// never renders near-straight. DefaultMaxRoundness caps the fan.
	DefaultMinRoundness = 0.5
	DefaultMaxRoundness = 1.0

	// defaultRoundnessStep grows curvature with the edge's position in its
	// group; defaultOffsetFactor adds separation by distance from the
	// group's center.
	defaultRoundnessStep = 0.4
	defaultOffsetFactor  = 0.2

	// SingleLoopSize is the loop size for a node's only self-loop. A
	// self-loop with no size degenerates to a point.
	SingleLoopSize = 25.0

	// GroupedLoopBase and GroupedLoopIncrement size self-loops that share
	// a node: the base plus the increment per step away from the group's
	// center, so sibling loops nest instead of overlapping.
	GroupedLoopBase      = 30.0
	GroupedLoopIncrement = 25.0
)

// =============================================================================
// Types
// =============================================================================

// Edge is the resolver's input view of a graph edge.
type Edge struct {
	ID   string `json:"id"`
	From string `json:"from"`
	To   string `json:"to"`
}

// IsLoop reports whether the edge starts and ends on the same node.
func (e Edge) IsLoop() bool { return e.From == e.To }

// Plan is the render plan for a single edge.
//
// Roundness is meaningful only when CurveType is CurveCW or CurveCCW.
// LoopSize is meaningful only for self-loops.
type Plan struct {
	EdgeID    string    `json:"edgeId"`
	CurveType CurveType `json:"curveType"`
	Roundness float64   `json:"roundness,omitempty"`
	LoopSize  float64   `json:"loopSize,omitempty"`
}

// =============================================================================
// Resolver
// =============================================================================

// Resolve assigns a render plan to every edge so that parallel edges between
// the same ordered node pair are visually separated.
//
// The returned slice has one entry per input edge, in input order. Edges in
// the same (From, To) group get plans differing in curve type or roundness,
// so parallel edges do not share an identical path. A singleton non-loop
// edge always renders straight.
//
// One caveat: in ModeDefault the roundness cap at DefaultMaxRoundness keeps
// plans distinct only for groups of four or fewer edges; larger fans repeat
// the capped plan. ModeRelationship keeps every plan in a group distinct
// regardless of group size.
//
// Resolve does not validate its input; see the package documentation.
func Resolve(edges []Edge, mode Mode) []Plan {
	groups := groupParallel(edges)

	plans := make([]Plan, len(edges))
	for i, e := range edges {
		g := groups[pairKey{e.From, e.To}]
		plans[i] = planEdge(e, g.index[i], g.total, mode)
	}
	return plans
}

// pairKey groups edges by their ordered endpoint pair. (A,B) and (B,A) are
// distinct groups.
type pairKey struct {
	from, to string
}

// group carries the per-group positions keyed by input index.
type group struct {
	total int
	index map[int]int // input index → 0-based position within the group
}

// groupParallel partitions edges by ordered pair, preserving input order
// within each group.
func groupParallel(edges []Edge) map[pairKey]*group {
	groups := make(map[pairKey]*group)
	for i, e := range edges {
		k := pairKey{e.From, e.To}
		g, ok := groups[k]
		if !ok {
			g = &group{index: make(map[int]int)}
			groups[k] = g
		}
		g.index[i] = g.total
		g.total++
	}
	return groups
}

// planEdge computes the plan for one edge given its position in its group.
func planEdge(e Edge, parallelIndex, totalParallel int, mode Mode) Plan {
	if e.IsLoop() {
		return planLoop(e, parallelIndex, totalParallel)
	}

	if totalParallel == 1 {
		return Plan{EdgeID: e.ID, CurveType: CurveNone}
	}

	return Plan{
		EdgeID:    e.ID,
		CurveType: alternate(parallelIndex),
		Roundness: roundness(parallelIndex, totalParallel, mode),
	}
}

// planLoop computes the plan for a self-loop. A lone self-loop still needs a
// non-zero loop size; grouped loops grow outward from the group's center.
func planLoop(e Edge, parallelIndex, totalParallel int) Plan {
	p := Plan{
		EdgeID:    e.ID,
		CurveType: alternate(parallelIndex),
	}
	if totalParallel == 1 {
		p.LoopSize = SingleLoopSize
		return p
	}
	off := offsetIndex(parallelIndex, totalParallel)
	p.LoopSize = GroupedLoopBase + absFloat(off)*GroupedLoopIncrement
	return p
}

// alternate bows adjacent edges of a group in opposite directions, which
// maximizes separation for the common 2-3 edge case.
func alternate(parallelIndex int) CurveType {
	if parallelIndex%2 == 0 {
		return CurveCCW
	}
	return CurveCW
}

// roundness computes the curvature magnitude for a curved, non-loop edge.
func roundness(parallelIndex, totalParallel int, mode Mode) float64 {
	if mode == ModeRelationship {
		return emphasisRoundness(parallelIndex, totalParallel)
	}
	return defaultRoundness(parallelIndex, totalParallel)
}

// emphasisRoundness distributes curvature across [EmphasisMinRoundness,
// EmphasisMaxRoundness]. The pairwise case gets the boundary values
// directly rather than an interpolation, since two edges separated by the
// full range are the easiest to tell apart.
func emphasisRoundness(parallelIndex, totalParallel int) float64 {
	if totalParallel == 2 {
		if parallelIndex == 0 {
			return EmphasisMinRoundness
		}
		return EmphasisMaxRoundness
	}

	span := EmphasisMaxRoundness - EmphasisMinRoundness
	r := EmphasisMinRoundness + float64(parallelIndex)*span/float64(totalParallel-1)
	return clamp(r, EmphasisMinRoundness, EmphasisMaxRoundness)
}

// defaultRoundness grows curvature with the edge's group position and its
// distance from the group's center, floored so curved edges never render
// near-straight and capped to keep large fans sane.
func defaultRoundness(parallelIndex, totalParallel int) float64 {
	off := offsetIndex(parallelIndex, totalParallel)
	r := DefaultMinRoundness +
		float64(parallelIndex)*defaultRoundnessStep +
		absFloat(off)*defaultOffsetFactor
	return clamp(r, DefaultMinRoundness, DefaultMaxRoundness)
}

// offsetIndex centers a group position around zero: for a group of n edges,
// position floor((n-1)/2) maps to 0.
func offsetIndex(parallelIndex, totalParallel int) int {
	return parallelIndex - (totalParallel-1)/2
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absFloat(i int) float64 {
	if i < 0 {
		return float64(-i)
	}
	return float64(i)
}
