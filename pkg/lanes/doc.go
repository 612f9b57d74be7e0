// Package lanes assigns timeline intervals to non-overlapping lanes.
//
// # Overview
//
// A timeline draws every event as a horizontal bar. Bars that overlap in time
// cannot share a row, so each bar needs a lane: a row index inside the
// vertical block of its category. This package computes those lanes.
//
// Given a set of [Interval] values, an optional category order and a
// [Policy] per category, [Assign] returns an [Assignment] that places every
// interval in the lowest lane whose current occupant does not conflict with
// it. Category blocks are reported in stacking order together with the number
// of lanes each one uses, so callers can compute vertical offsets by
// prefix-summing block heights.
//
// # Algorithm
//
// Each category is processed independently:
//
//  1. Intervals are sorted by start, ties broken by input order.
//  2. Each lane remembers the interval placed in it most recently.
//  3. An interval goes to the first lane (scanning from 1 upward) whose
//     occupant does not conflict with it, or opens a new lane.
//
// For intervals sorted by start this first-fit rule uses the minimum number of
// lanes, which equals the largest number of intervals in conflict at any
// single point.
//
// # Adjacency Policies
//
// Two intervals A (earlier) and B (later) conflict when:
//
//   - [Tolerant]: B.Start < A.End. Touching spans share a lane, which suits
//     contiguous eras or epochs.
//   - [Strict]: B.Start < A.End + Gap. A visible gap of at least Gap units is
//     kept between neighbours, which suits point-like events and persons.
//     Gap defaults to [DefaultGap].
//
// # Validation
//
// Intervals with End < Start are rejected with an [*InvalidIntervalError]
// before any lane is assigned. The package never clamps or repairs input.
//
// # Usage
//
//	a, err := lanes.Assign(intervals, []string{"era", "event"}, map[string]lanes.Policy{
//	    "era":   {Mode: lanes.Tolerant},
//	    "event": {Mode: lanes.Strict, Gap: 1},
//	})
//	if err != nil {
//	    return err
//	}
//	for i, p := range a.Placements {
//	    fmt.Println(intervals[i].Title, p.Lane)
//	}
//
// [Assign] is a pure function and safe for concurrent use.
package lanes
