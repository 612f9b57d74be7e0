package lanes

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func iv(id, cat string, start, end int64) Interval {
	return Interval{ID: id, Category: cat, Start: start, End: end}
}

func lanesOf(a Assignment) []int {
	out := make([]int, len(a.Placements))
	for i, p := range a.Placements {
		out[i] = p.Lane
	}
	return out
}

func TestAssignEmpty(t *testing.T) {
	a, err := Assign(nil, []string{"era", "event"}, nil)
	require.NoError(t, err)
	assert.Empty(t, a.Placements)
	assert.Empty(t, a.Categories)
	assert.Zero(t, a.LanesByCategory["era"])
	assert.Zero(t, a.TotalLanes())
}

func TestAssignSingle(t *testing.T) {
	for _, p := range []Policy{TolerantPolicy(), StrictPolicy(1), StrictPolicy(50)} {
		t.Run(p.String(), func(t *testing.T) {
			a, err := Assign([]Interval{iv("x", "c", -500, 300)}, nil, map[string]Policy{"c": p})
			require.NoError(t, err)
			assert.Equal(t, []int{1}, lanesOf(a))
			assert.Equal(t, 1, a.LanesByCategory["c"])
		})
	}
}

func TestAssignScenarios(t *testing.T) {
	tests := []struct {
		name      string
		intervals []Interval
		policies  map[string]Policy
		want      []int
	}{
		{
			name:      "tolerant touching share lane",
			intervals: []Interval{iv("1", "era", 0, 10), iv("2", "era", 10, 20)},
			policies:  map[string]Policy{"era": TolerantPolicy()},
			want:      []int{1, 1},
		},
		{
			name:      "strict touching split",
			intervals: []Interval{iv("1", "event", 0, 10), iv("2", "event", 10, 20)},
			policies:  map[string]Policy{"event": StrictPolicy(1)},
			want:      []int{1, 2},
		},
		{
			name:      "strict one unit apart share lane",
			intervals: []Interval{iv("1", "event", 0, 10), iv("2", "event", 11, 20)},
			policies:  map[string]Policy{"event": StrictPolicy(1)},
			want:      []int{1, 1},
		},
		{
			name:      "strict wide gap",
			intervals: []Interval{iv("1", "event", 0, 10), iv("2", "event", 14, 20)},
			policies:  map[string]Policy{"event": StrictPolicy(5)},
			want:      []int{1, 2},
		},
		{
			name: "three way overlap then reuse",
			intervals: []Interval{
				iv("a", "event", 0, 10),
				iv("b", "event", 5, 15),
				iv("c", "event", 8, 20),
				iv("d", "event", 21, 25),
			},
			policies: map[string]Policy{"event": StrictPolicy(1)},
			want:     []int{1, 2, 3, 1},
		},
		{
			name: "lowest lane preferred",
			intervals: []Interval{
				iv("a", "event", 0, 100),
				iv("b", "event", 0, 5),
				iv("c", "event", 10, 20),
			},
			policies: map[string]Policy{"event": TolerantPolicy()},
			want:     []int{1, 2, 2},
		},
		{
			name: "unsorted input",
			intervals: []Interval{
				iv("late", "era", 30, 40),
				iv("early", "era", 0, 35),
				iv("mid", "era", 20, 25),
			},
			policies: map[string]Policy{"era": TolerantPolicy()},
			want:     []int{2, 1, 2},
		},
		{
			name:      "zero length tolerant",
			intervals: []Interval{iv("a", "c", 5, 5), iv("b", "c", 5, 5)},
			policies:  map[string]Policy{"c": TolerantPolicy()},
			want:      []int{1, 1},
		},
		{
			name:      "zero length strict",
			intervals: []Interval{iv("a", "c", 5, 5), iv("b", "c", 5, 5)},
			policies:  map[string]Policy{"c": StrictPolicy(1)},
			want:      []int{1, 2},
		},
		{
			name:      "negative axis",
			intervals: []Interval{iv("a", "c", -3000, -2500), iv("b", "c", -2500, -100)},
			policies:  map[string]Policy{"c": TolerantPolicy()},
			want:      []int{1, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Assign(tt.intervals, nil, tt.policies)
			require.NoError(t, err)
			assert.Equal(t, tt.want, lanesOf(a))
		})
	}
}

func TestAssignCategoryStacking(t *testing.T) {
	intervals := []Interval{
		iv("e1", "event", 0, 10),
		iv("r1", "era", 0, 100),
		iv("e2", "event", 5, 15),
		iv("r2", "era", 50, 150),
		iv("e3", "event", 8, 20),
		iv("r3", "era", 100, 200),
	}
	policies := map[string]Policy{"era": TolerantPolicy(), "event": StrictPolicy(1)}

	a, err := Assign(intervals, []string{"era", "event"}, policies)
	require.NoError(t, err)

	assert.Equal(t, []string{"era", "event"}, a.Categories)
	assert.Equal(t, map[string]int{"era": 2, "event": 3}, a.LanesByCategory)
	assert.Equal(t, []int{1, 1, 2, 2, 3, 1}, lanesOf(a))
	assert.Equal(t, 5, a.TotalLanes())

	for i, p := range a.Placements {
		assert.Equal(t, intervals[i].ID, p.ID)
		assert.Equal(t, intervals[i].Category, p.Category)
	}
}

func TestAssignDefaultPolicy(t *testing.T) {
	intervals := []Interval{iv("1", "x", 0, 10), iv("2", "x", 10, 20)}

	a, err := Assign(intervals, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, lanesOf(a), "missing policy falls back to strict")

	a, err = Assign(intervals, nil, nil, WithDefaultPolicy(TolerantPolicy()))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1}, lanesOf(a))

	a, err = Assign(intervals, nil, map[string]Policy{"x": StrictPolicy(1)}, WithDefaultPolicy(TolerantPolicy()))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, lanesOf(a), "explicit policy wins over default")
}

func TestAssignInvalidInterval(t *testing.T) {
	intervals := []Interval{
		iv("ok", "c", 0, 10),
		iv("bad", "c", 20, 5),
		iv("worse", "c", 30, 1),
	}

	a, err := Assign(intervals, nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInterval)
	assert.Empty(t, a.Placements, "no partial results")

	var ie *InvalidIntervalError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "bad", ie.ID)
	assert.Contains(t, ie.Reason, "before start")
	assert.Contains(t, err.Error(), `"bad"`)
}

func TestAssignEndOfAxis(t *testing.T) {
	const top = math.MaxInt64
	intervals := []Interval{
		iv("a", "c", top-5, top),
		iv("b", "c", top-2, top),
		iv("c", "c", top, top),
	}

	a, err := Assign(intervals, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, lanesOf(a))
	assertNoOverlap(t, intervals, a, Policy{})

	a, err = Assign(intervals, nil, map[string]Policy{"c": TolerantPolicy()})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 1}, lanesOf(a))
}

func TestAssignZeroLengthTolerant(t *testing.T) {
	tests := []struct {
		name      string
		intervals []Interval
		want      []int
	}{
		{"point before span at same start", []Interval{iv("p", "c", 5, 5), iv("s", "c", 5, 7)}, []int{1, 1}},
		{"span before point at same start", []Interval{iv("s", "c", 5, 7), iv("p", "c", 5, 5)}, []int{1, 2}},
		{"point at span end", []Interval{iv("s", "c", 0, 5), iv("p", "c", 5, 5), iv("t", "c", 5, 9)}, []int{1, 1, 1}},
		{"stacked points", []Interval{iv("p", "c", 3, 3), iv("q", "c", 3, 3), iv("r", "c", 3, 3)}, []int{1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Assign(tt.intervals, nil, map[string]Policy{"c": TolerantPolicy()})
			require.NoError(t, err)
			assert.Equal(t, tt.want, lanesOf(a))
			assert.Equal(t, maxDepth(tt.intervals, 0), a.LanesByCategory["c"])
		})
	}
}

func TestAssignDeterministicTies(t *testing.T) {
	intervals := []Interval{
		iv("a", "c", 0, 10),
		iv("b", "c", 0, 10),
		iv("c", "c", 0, 10),
		iv("d", "c", 0, 3),
	}
	first, err := Assign(intervals, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, lanesOf(first), "ties follow input order")

	for i := 0; i < 20; i++ {
		again, err := Assign(intervals, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestAssignDoesNotMutateInput(t *testing.T) {
	intervals := []Interval{iv("b", "c", 10, 20), iv("a", "c", 0, 5)}
	orig := append([]Interval(nil), intervals...)

	_, err := Assign(intervals, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, orig, intervals)
}

func TestResolveOrder(t *testing.T) {
	intervals := []Interval{
		iv("1", "person", 0, 1),
		iv("2", "event", 0, 1),
		iv("3", "era", 0, 1),
		iv("4", "person", 0, 1),
		iv("5", "war", 0, 1),
	}

	tests := []struct {
		name  string
		order []string
		want  []string
	}{
		{"nil order uses first seen", nil, []string{"person", "event", "era", "war"}},
		{"full order", []string{"era", "event", "person", "war"}, []string{"era", "event", "person", "war"}},
		{"partial order appends rest", []string{"era"}, []string{"era", "person", "event", "war"}},
		{"absent categories dropped", []string{"dynasty", "era"}, []string{"era", "person", "event", "war"}},
		{"duplicates ignored", []string{"war", "war", "era"}, []string{"war", "era", "person", "event"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveOrder(tt.order, intervals))
		})
	}
}

func TestAssignmentByID(t *testing.T) {
	a, err := Assign([]Interval{iv("x", "c", 0, 10), iv("y", "c", 5, 15)}, nil, nil)
	require.NoError(t, err)

	m := a.ByID()
	assert.Equal(t, 1, m["x"].Lane)
	assert.Equal(t, 2, m["y"].Lane)
	assert.Equal(t, 2, a.Lane(1))
}

// randomIntervals returns n intervals in one category with lengths in
// [minLen, minLen+30].
func randomIntervals(r *rand.Rand, n int, minLen int64) []Interval {
	out := make([]Interval, n)
	for i := range out {
		start := r.Int64N(200) - 100
		out[i] = iv(fmt.Sprint(i), "c", start, start+minLen+r.Int64N(31))
	}
	return out
}

// maxDepth is the size of the largest clique of mutually conflicting
// intervals. Taking intervals in stable start order, each one conflicts with
// every earlier interval whose extended span [Start, End+gap) holds its
// start, and those earlier intervals all conflict with each other. This
// counts zero-length intervals correctly, which a plain point-depth does not.
func maxDepth(intervals []Interval, gap int64) int {
	order := make([]Interval, len(intervals))
	copy(order, intervals)
	sort.SliceStable(order, func(a, b int) bool { return order[a].Start < order[b].Start })

	best := 0
	for j, at := range order {
		n := 1
		for _, earlier := range order[:j] {
			if at.Start < earlier.End+gap {
				n++
			}
		}
		if n > best {
			best = n
		}
	}
	return best
}

// assertNoOverlap checks every pair sharing a lane against policy.
func assertNoOverlap(t *testing.T, intervals []Interval, a Assignment, policy Policy) {
	t.Helper()
	byLane := make(map[int][]int)
	for i, p := range a.Placements {
		byLane[p.Lane] = append(byLane[p.Lane], i)
	}
	for lane, idx := range byLane {
		sort.SliceStable(idx, func(x, y int) bool {
			return intervals[idx[x]].Start < intervals[idx[y]].Start
		})
		for x := 0; x < len(idx); x++ {
			for y := x + 1; y < len(idx); y++ {
				prev, next := intervals[idx[x]], intervals[idx[y]]
				assert.False(t, policy.Conflicts(prev, next),
					"lane %d: %v conflicts with %v", lane, prev, next)
			}
		}
	}
}

func TestAssignRandomInvariants(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 7))
	policies := []Policy{TolerantPolicy(), StrictPolicy(1), StrictPolicy(4)}

	for round := 0; round < 200; round++ {
		policy := policies[round%len(policies)]
		intervals := randomIntervals(r, 1+r.IntN(60), 0)

		a, err := Assign(intervals, nil, map[string]Policy{"c": policy})
		require.NoError(t, err)
		require.Len(t, a.Placements, len(intervals))

		for _, p := range a.Placements {
			require.GreaterOrEqual(t, p.Lane, 1)
			require.LessOrEqual(t, p.Lane, a.LanesByCategory["c"])
		}
		assertNoOverlap(t, intervals, a, policy)
		assert.Equal(t, maxDepth(intervals, policy.EffectiveGap()), a.LanesByCategory["c"],
			"round %d (%s): lane count should be minimal", round, policy)

		again, err := Assign(intervals, nil, map[string]Policy{"c": policy})
		require.NoError(t, err)
		assert.Equal(t, a, again)
	}
}

func BenchmarkAssign(b *testing.B) {
	r := rand.New(rand.NewPCG(1, 2))
	intervals := make([]Interval, 0, 3000)
	cats := []string{"era", "event", "person"}
	for i := 0; i < 3000; i++ {
		start := r.Int64N(5000) - 3000
		intervals = append(intervals, iv(fmt.Sprint(i), cats[i%3], start, start+r.Int64N(80)))
	}
	policies := map[string]Policy{"era": TolerantPolicy()}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Assign(intervals, cats, policies); err != nil {
			b.Fatal(err)
		}
	}
}
