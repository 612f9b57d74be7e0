package lanes

import (
	"errors"
	"fmt"
)

// Interval is a categorized span on a one-dimensional timeline axis.
// The unit and sign convention of Start and End are up to the caller.
type Interval struct {
	ID       string `json:"id" toml:"id"`
	Category string `json:"category" toml:"category"`
	Start    int64  `json:"start" toml:"start"`
	End      int64  `json:"end" toml:"end"`
	Title    string `json:"title,omitempty" toml:"title"`
}

// Length returns End - Start.
func (iv Interval) Length() int64 { return iv.End - iv.Start }

// ErrInvalidInterval is matched by every [*InvalidIntervalError] via errors.Is.
var ErrInvalidInterval = errors.New("invalid interval")

// InvalidIntervalError reports a malformed interval.
type InvalidIntervalError struct {
	ID     string
	Reason string
}

func (e *InvalidIntervalError) Error() string {
	return fmt.Sprintf("invalid interval %q: %s", e.ID, e.Reason)
}

// Is reports whether target is [ErrInvalidInterval].
func (e *InvalidIntervalError) Is(target error) bool {
	return target == ErrInvalidInterval
}

// Validate checks a single interval.
func (iv Interval) Validate() error {
	if iv.End < iv.Start {
		return &InvalidIntervalError{
			ID:     iv.ID,
			Reason: fmt.Sprintf("end %d is before start %d", iv.End, iv.Start),
		}
	}
	return nil
}

// Validate returns the first invalid interval in input order, or nil.
func Validate(intervals []Interval) error {
	for _, iv := range intervals {
		if err := iv.Validate(); err != nil {
			return err
		}
	}
	return nil
}
