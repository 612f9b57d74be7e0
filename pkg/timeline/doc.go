// Package timeline turns a layout request into stacked timeline rows.
//
// [lanes.Assign] only knows about lanes inside a category block. This package
// does the work around it that every timeline view needs on each redraw:
//
//   - drop intervals outside the visible [Window]
//   - drop categories toggled off via [Request.Hidden]
//   - optionally stretch short intervals to [Request.MinLength]
//   - stack category blocks with [Request.BlockGap] empty rows between them
//
// A [Request] is an immutable value built fresh whenever the view changes.
// [Build] returns a [Layout] whose rows carry an absolute Y row index:
//
//	y = block offset + lane
//
// Requests can be loaded from TOML or JSON files with [ReadRequestFile], and
// layouts written as JSON with [WriteLayoutFile].
package timeline
