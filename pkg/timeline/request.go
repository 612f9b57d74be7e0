package timeline

import (
	"math"

	"github.com/matzehuels/timelanes/pkg/errors"
	"github.com/matzehuels/timelanes/pkg/lanes"
)

// Window bounds the visible part of the axis. A nil bound is open.
type Window struct {
	Min *int64 `json:"min,omitempty" toml:"min"`
	Max *int64 `json:"max,omitempty" toml:"max"`
}

// Bounded returns a window with both bounds set.
func Bounded(min, max int64) Window {
	return Window{Min: &min, Max: &max}
}

// Contains reports whether iv lies entirely inside w.
func (w Window) Contains(iv lanes.Interval) bool {
	if w.Min != nil && iv.Start < *w.Min {
		return false
	}
	if w.Max != nil && iv.End > *w.Max {
		return false
	}
	return true
}

// IsOpen reports whether w has no bounds.
func (w Window) IsOpen() bool { return w.Min == nil && w.Max == nil }

// Request describes one timeline layout.
type Request struct {
	Intervals     []lanes.Interval        `json:"intervals" toml:"intervals"`
	CategoryOrder []string                `json:"category_order,omitempty" toml:"category_order"`
	Policies      map[string]lanes.Policy `json:"policies,omitempty" toml:"policies"`

	// DefaultPolicy applies to categories missing from Policies.
	DefaultPolicy lanes.Policy `json:"default_policy" toml:"default_policy"`

	Window Window   `json:"window" toml:"window"`
	Hidden []string `json:"hidden,omitempty" toml:"hidden"`

	// BlockGap is the number of empty rows between category blocks.
	BlockGap int `json:"block_gap" toml:"block_gap"`

	// MinLength stretches shorter intervals to this length before layout.
	// Zero disables stretching.
	MinLength int64 `json:"min_length" toml:"min_length"`
}

// Validate checks the whole request and returns the first problem found.
// Interval errors wrap [*lanes.InvalidIntervalError].
func (r Request) Validate() error {
	ids := make(map[string]bool, len(r.Intervals))
	for _, iv := range r.Intervals {
		if err := errors.ValidateIntervalID(iv.ID); err != nil {
			return err
		}
		if ids[iv.ID] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate interval id %q", iv.ID)
		}
		ids[iv.ID] = true

		if err := errors.ValidateCategory(iv.Category); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "interval %q", iv.ID)
		}
		if err := iv.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInterval, err, "interval rejected")
		}
	}

	if err := r.DefaultPolicy.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPolicy, err, "default policy")
	}
	for cat, p := range r.Policies {
		if err := p.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPolicy, err, "policy for category %q", cat)
		}
	}

	if r.Window.Min != nil && r.Window.Max != nil && *r.Window.Min > *r.Window.Max {
		return errors.New(errors.ErrCodeInvalidInput, "window min %d is after max %d", *r.Window.Min, *r.Window.Max)
	}
	if r.BlockGap < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "block gap must not be negative, got %d", r.BlockGap)
	}
	if r.MinLength < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "min length must not be negative, got %d", r.MinLength)
	}
	return nil
}

// Visible returns the intervals that survive the window and hidden
// categories, stretched to MinLength, in input order. Stretching stops at
// math.MaxInt64, so an interval near the end of the axis may stay shorter.
// The request must be valid.
func (r Request) Visible() []lanes.Interval {
	hidden := make(map[string]bool, len(r.Hidden))
	for _, c := range r.Hidden {
		hidden[c] = true
	}

	out := make([]lanes.Interval, 0, len(r.Intervals))
	for _, iv := range r.Intervals {
		if hidden[iv.Category] || !r.Window.Contains(iv) {
			continue
		}
		iv.End = max(iv.End, stretchedEnd(iv.Start, r.MinLength))
		out = append(out, iv)
	}
	return out
}

// stretchedEnd returns start+length, clamped to the end of the int64 axis.
func stretchedEnd(start, length int64) int64 {
	if start > math.MaxInt64-length {
		return math.MaxInt64
	}
	return start + length
}

// Categories returns the distinct categories of all intervals, hidden or not,
// in stacking order.
func (r Request) Categories() []string {
	return lanes.ResolveOrder(r.CategoryOrder, r.Intervals)
}
