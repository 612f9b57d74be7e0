package lanes

import "sort"

// Placement is the lane given to one interval. Lanes start at 1 and are
// local to the category block.
type Placement struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Lane     int    `json:"lane"`
}

// Assignment is the result of [Assign].
type Assignment struct {
	// Placements has one entry per input interval, in input order.
	Placements []Placement `json:"placements"`

	// LanesByCategory records the highest lane used by each category.
	// Categories without intervals are absent.
	LanesByCategory map[string]int `json:"lanes_by_category"`

	// Categories lists the non-empty categories in stacking order.
	Categories []string `json:"categories"`
}

// Lane returns the lane of the i-th input interval.
func (a Assignment) Lane(i int) int { return a.Placements[i].Lane }

// ByID indexes placements by interval ID. Later duplicates win.
func (a Assignment) ByID() map[string]Placement {
	m := make(map[string]Placement, len(a.Placements))
	for _, p := range a.Placements {
		m[p.ID] = p
	}
	return m
}

// TotalLanes sums the lanes of all category blocks.
func (a Assignment) TotalLanes() int {
	n := 0
	for _, c := range a.Categories {
		n += a.LanesByCategory[c]
	}
	return n
}

// Option configures [Assign].
type Option func(*config)

type config struct {
	defaultPolicy Policy
}

// WithDefaultPolicy sets the policy of categories missing from the policy map.
// The default is strict with [DefaultGap].
func WithDefaultPolicy(p Policy) Option {
	return func(c *config) { c.defaultPolicy = p }
}

// Assign places every interval in the lowest non-conflicting lane of its
// category block.
//
// order fixes the stacking order of category blocks; categories not listed
// follow in first-seen order. policies maps categories to their adjacency
// rule. Either may be nil.
//
// If any interval is invalid, Assign returns an [*InvalidIntervalError] and
// no placements.
func Assign(intervals []Interval, order []string, policies map[string]Policy, opts ...Option) (Assignment, error) {
	cfg := config{defaultPolicy: StrictPolicy(DefaultGap)}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := Validate(intervals); err != nil {
		return Assignment{}, err
	}

	result := Assignment{
		Placements:      make([]Placement, len(intervals)),
		LanesByCategory: make(map[string]int),
	}
	if len(intervals) == 0 {
		return result, nil
	}

	members := groupByCategory(intervals)
	result.Categories = ResolveOrder(order, intervals)

	for _, cat := range result.Categories {
		policy, ok := policies[cat]
		if !ok {
			policy = cfg.defaultPolicy
		}
		result.LanesByCategory[cat] = packCategory(intervals, members[cat], policy, result.Placements)
	}
	return result, nil
}

// packCategory assigns lanes to the intervals at idx and writes them into
// out. It returns the number of lanes used.
func packCategory(intervals []Interval, idx []int, policy Policy, out []Placement) int {
	sorted := make([]int, len(idx))
	copy(sorted, idx)
	sort.SliceStable(sorted, func(a, b int) bool {
		return intervals[sorted[a]].Start < intervals[sorted[b]].Start
	})

	// occupant[k] is the input index of the interval last placed in lane k+1.
	var occupant []int
	for _, i := range sorted {
		iv := intervals[i]
		lane := 0
		for k, prev := range occupant {
			if !policy.Conflicts(intervals[prev], iv) {
				lane = k + 1
				break
			}
		}
		if lane == 0 {
			occupant = append(occupant, i)
			lane = len(occupant)
		} else {
			occupant[lane-1] = i
		}
		out[i] = Placement{ID: iv.ID, Category: iv.Category, Lane: lane}
	}
	return len(occupant)
}

// groupByCategory returns input indices per category, in input order.
func groupByCategory(intervals []Interval) map[string][]int {
	m := make(map[string][]int)
	for i, iv := range intervals {
		m[iv.Category] = append(m[iv.Category], i)
	}
	return m
}

// ResolveOrder returns the categories present in intervals in stacking order:
// first those listed in order, then the rest in first-seen order.
// Duplicates and categories without intervals are dropped.
func ResolveOrder(order []string, intervals []Interval) []string {
	present := make(map[string]bool)
	var seen []string
	for _, iv := range intervals {
		if !present[iv.Category] {
			present[iv.Category] = true
			seen = append(seen, iv.Category)
		}
	}

	out := make([]string, 0, len(seen))
	used := make(map[string]bool, len(seen))
	for _, c := range order {
		if present[c] && !used[c] {
			used[c] = true
			out = append(out, c)
		}
	}
	for _, c := range seen {
		if !used[c] {
			used[c] = true
			out = append(out, c)
		}
	}
	return out
}
