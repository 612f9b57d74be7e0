package lanes_test

import (
	"fmt"

	"github.com/matzehuels/timelanes/pkg/lanes"
)

func ExampleAssign() {
	intervals := []lanes.Interval{
		{ID: "bronze", Category: "era", Start: -3300, End: -1200},
		{ID: "iron", Category: "era", Start: -1200, End: -550},
		{ID: "troy", Category: "event", Start: -1190, End: -1180},
		{ID: "homer", Category: "event", Start: -1185, End: -1100},
	}
	policies := map[string]lanes.Policy{
		"era":   lanes.TolerantPolicy(),
		"event": lanes.StrictPolicy(1),
	}

	a, err := lanes.Assign(intervals, []string{"era", "event"}, policies)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, p := range a.Placements {
		fmt.Println(p.ID, p.Lane)
	}
	fmt.Println("era lanes:", a.LanesByCategory["era"])
	fmt.Println("event lanes:", a.LanesByCategory["event"])
	// Output:
	// bronze 1
	// iron 1
	// troy 1
	// homer 2
	// era lanes: 1
	// event lanes: 2
}

func ExampleInvalidIntervalError() {
	_, err := lanes.Assign([]lanes.Interval{{ID: "oops", Start: 10, End: 5}}, nil, nil)
	fmt.Println(err)
	// Output:
	// invalid interval "oops": end 5 is before start 10
}
