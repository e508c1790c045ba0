package layout

import (
	"fmt"
	"math"
	"reflect"
	"testing"
)

// parallel builds n edges between the same ordered pair.
func parallel(n int, from, to string) []Edge {
	edges := make([]Edge, n)
	for i := range edges {
		edges[i] = Edge{ID: fmt.Sprintf("e%d", i), From: from, To: to}
	}
	return edges
}

func TestResolveSingleEdgeIsStraight(t *testing.T) {
	plans := Resolve([]Edge{{ID: "e1", From: "A", To: "B"}}, ModeDefault)

	want := []Plan{{EdgeID: "e1", CurveType: CurveNone}}
	if !reflect.DeepEqual(plans, want) {
		t.Errorf("Resolve() = %+v, want %+v", plans, want)
	}
}

func TestResolveUniquePairsAllStraight(t *testing.T) {
	edges := []Edge{
		{ID: "e1", From: "A", To: "B"},
		{ID: "e2", From: "B", To: "C"},
		{ID: "e3", From: "A", To: "C"},
		{ID: "e4", From: "B", To: "A"}, // reverse of e1, still its own group
	}

	for _, mode := range []Mode{ModeDefault, ModeRelationship} {
		plans := Resolve(edges, mode)
		if len(plans) != len(edges) {
			t.Fatalf("mode %s: got %d plans, want %d", mode, len(plans), len(edges))
		}
		for i, p := range plans {
			if p.CurveType != CurveNone {
				t.Errorf("mode %s: edge %s curveType = %s, want none", mode, edges[i].ID, p.CurveType)
			}
			if p.Roundness != 0 {
				t.Errorf("mode %s: edge %s roundness = %v, want 0", mode, edges[i].ID, p.Roundness)
			}
		}
	}
}

func TestResolvePairEmphasisMode(t *testing.T) {
	plans := Resolve(parallel(2, "A", "B"), ModeRelationship)

	want := []Plan{
		{EdgeID: "e0", CurveType: CurveCCW, Roundness: 0.25},
		{EdgeID: "e1", CurveType: CurveCW, Roundness: 0.45},
	}
	if !reflect.DeepEqual(plans, want) {
		t.Errorf("Resolve() = %+v, want %+v", plans, want)
	}
}

func TestResolveAlternatesCurveDirection(t *testing.T) {
	for _, mode := range []Mode{ModeDefault, ModeRelationship} {
		plans := Resolve(parallel(5, "A", "B"), mode)
		for i, p := range plans {
			want := CurveCCW
			if i%2 == 1 {
				want = CurveCW
			}
			if p.CurveType != want {
				t.Errorf("mode %s: index %d curveType = %s, want %s", mode, i, p.CurveType, want)
			}
		}
	}
}

func TestEmphasisRoundnessSpread(t *testing.T) {
	tests := []struct {
		n    int
		want []float64
	}{
		{2, []float64{0.25, 0.45}},
		{3, []float64{0.25, 0.35, 0.45}},
		{5, []float64{0.25, 0.30, 0.35, 0.40, 0.45}},
	}

	for _, tt := range tests {
		plans := Resolve(parallel(tt.n, "A", "B"), ModeRelationship)
		for i, p := range plans {
			if math.Abs(p.Roundness-tt.want[i]) > 1e-9 {
				t.Errorf("n=%d index %d roundness = %v, want %v", tt.n, i, p.Roundness, tt.want[i])
			}
		}
	}
}

func TestDefaultRoundnessFormula(t *testing.T) {
	// roundness = clamp(0.5 + i*0.4 + |i - (n-1)/2|*0.2, 0.5, 1.0)
	tests := []struct {
		n    int
		want []float64
	}{
		{2, []float64{0.5, 1.0}},
		{3, []float64{0.7, 0.9, 1.0}},
		{4, []float64{0.7, 0.9, 1.0, 1.0}},
	}

	for _, tt := range tests {
		plans := Resolve(parallel(tt.n, "A", "B"), ModeDefault)
		for i, p := range plans {
			if math.Abs(p.Roundness-tt.want[i]) > 1e-9 {
				t.Errorf("n=%d index %d roundness = %v, want %v", tt.n, i, p.Roundness, tt.want[i])
			}
		}
	}
}

func TestDefaultRoundnessStaysInRange(t *testing.T) {
	plans := Resolve(parallel(12, "A", "B"), ModeDefault)
	for i, p := range plans {
		if p.Roundness < DefaultMinRoundness || p.Roundness > DefaultMaxRoundness {
			t.Errorf("index %d roundness = %v, want within [%v, %v]",
				i, p.Roundness, DefaultMinRoundness, DefaultMaxRoundness)
		}
	}
}

// Parallel edges must never share both curve type and roundness. The default
// mode's cap can collapse roundness for very large fans, so this is asserted
// over the group sizes the formula keeps distinct.
func TestParallelPlansAreDistinct(t *testing.T) {
	tests := []struct {
		mode Mode
		ns   []int
	}{
		{ModeRelationship, []int{2, 3, 5, 8, 12}},
		{ModeDefault, []int{2, 3, 4}},
	}

	for _, tt := range tests {
		for _, n := range tt.ns {
			plans := Resolve(parallel(n, "A", "B"), tt.mode)
			seen := make(map[Plan]bool)
			for _, p := range plans {
				key := Plan{CurveType: p.CurveType, Roundness: p.Roundness}
				if seen[key] {
					t.Errorf("mode %s n=%d: duplicate plan %+v", tt.mode, n, key)
				}
				seen[key] = true
			}
		}
	}
}

// Past four edges the default formula saturates at the cap: the odd
// positions all land on cw/1.0 and the later even positions on ccw/1.0.
// This pins the documented cap behavior.
func TestDefaultLargeFanSaturatesAtCap(t *testing.T) {
	plans := Resolve(parallel(6, "A", "B"), ModeDefault)

	counts := make(map[Plan]int)
	for _, p := range plans {
		counts[Plan{CurveType: p.CurveType, Roundness: p.Roundness}]++
	}
	if counts[Plan{CurveType: CurveCW, Roundness: DefaultMaxRoundness}] != 3 {
		t.Errorf("capped cw plans = %v, want 3 at roundness %v", counts, DefaultMaxRoundness)
	}
	if counts[Plan{CurveType: CurveCCW, Roundness: DefaultMaxRoundness}] != 2 {
		t.Errorf("capped ccw plans = %v, want 2 at roundness %v", counts, DefaultMaxRoundness)
	}
}

func TestResolveSingleSelfLoop(t *testing.T) {
	plans := Resolve([]Edge{{ID: "e1", From: "A", To: "A"}}, ModeDefault)

	want := []Plan{{EdgeID: "e1", CurveType: CurveCCW, LoopSize: 25}}
	if !reflect.DeepEqual(plans, want) {
		t.Errorf("Resolve() = %+v, want %+v", plans, want)
	}
}

func TestResolveGroupedSelfLoops(t *testing.T) {
	// n=3: offsets -1, 0, 1 → sizes 55, 30, 55
	plans := Resolve(parallel(3, "A", "A"), ModeDefault)

	wantSizes := []float64{55, 30, 55}
	wantCurves := []CurveType{CurveCCW, CurveCW, CurveCCW}
	for i, p := range plans {
		if p.LoopSize != wantSizes[i] {
			t.Errorf("index %d loopSize = %v, want %v", i, p.LoopSize, wantSizes[i])
		}
		if p.CurveType != wantCurves[i] {
			t.Errorf("index %d curveType = %s, want %s", i, p.CurveType, wantCurves[i])
		}
	}
}

func TestGroupedLoopSizeGrowsFromCenter(t *testing.T) {
	for _, n := range []int{2, 4, 7} {
		plans := Resolve(parallel(n, "A", "A"), ModeDefault)
		for i, p := range plans {
			off := offsetIndex(i, n)
			want := GroupedLoopBase + absFloat(off)*GroupedLoopIncrement
			if p.LoopSize != want {
				t.Errorf("n=%d index %d loopSize = %v, want %v", n, i, p.LoopSize, want)
			}
		}
	}
}

func TestSelfLoopGroupIndependentOfNeighborEdges(t *testing.T) {
	// One self-loop on A plus three A→B edges: the loop is a singleton
	// group, the A→B edges a group of three.
	edges := []Edge{
		{ID: "loop", From: "A", To: "A"},
		{ID: "e1", From: "A", To: "B"},
		{ID: "e2", From: "A", To: "B"},
		{ID: "e3", From: "A", To: "B"},
	}

	plans := Resolve(edges, ModeRelationship)

	if plans[0].LoopSize != SingleLoopSize {
		t.Errorf("loop size = %v, want %v", plans[0].LoopSize, SingleLoopSize)
	}
	for _, p := range plans[1:] {
		if p.CurveType == CurveNone {
			t.Errorf("edge %s rendered straight, want curved", p.EdgeID)
		}
	}
}

func TestResolveInterleavedGroups(t *testing.T) {
	// Group membership follows input positions within each group, not
	// global positions.
	edges := []Edge{
		{ID: "ab0", From: "A", To: "B"},
		{ID: "cd0", From: "C", To: "D"},
		{ID: "ab1", From: "A", To: "B"},
	}

	plans := Resolve(edges, ModeRelationship)

	if plans[0].Roundness != 0.25 || plans[0].CurveType != CurveCCW {
		t.Errorf("ab0 plan = %+v, want ccw/0.25", plans[0])
	}
	if plans[1].CurveType != CurveNone {
		t.Errorf("cd0 plan = %+v, want straight", plans[1])
	}
	if plans[2].Roundness != 0.45 || plans[2].CurveType != CurveCW {
		t.Errorf("ab1 plan = %+v, want cw/0.45", plans[2])
	}
}

func TestResolveIdempotent(t *testing.T) {
	edges := append(parallel(4, "A", "B"), parallel(3, "B", "B")...)
	edges = append(edges, Edge{ID: "x", From: "B", To: "C"})

	first := Resolve(edges, ModeDefault)
	second := Resolve(edges, ModeDefault)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Resolve is not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestResolveEmptyInput(t *testing.T) {
	if plans := Resolve(nil, ModeDefault); len(plans) != 0 {
		t.Errorf("Resolve(nil) = %+v, want empty", plans)
	}
}

func TestResolvePreservesInputOrder(t *testing.T) {
	edges := []Edge{
		{ID: "z", From: "A", To: "B"},
		{ID: "a", From: "A", To: "B"},
		{ID: "m", From: "C", To: "C"},
	}

	plans := Resolve(edges, ModeDefault)
	for i, p := range plans {
		if p.EdgeID != edges[i].ID {
			t.Errorf("index %d plan for %s, want %s", i, p.EdgeID, edges[i].ID)
		}
	}
}
