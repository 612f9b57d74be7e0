package lanes

import (
	"fmt"
	"math"
)

// Mode selects how touching intervals are treated within a category.
type Mode string

const (
	// Strict keeps at least Policy.Gap units between intervals in one lane.
	Strict Mode = "strict"
	// Tolerant lets intervals that merely touch share a lane.
	Tolerant Mode = "tolerant"
)

// DefaultGap is the strict-mode gap used when Policy.Gap is zero.
const DefaultGap int64 = 1

// Policy is the adjacency rule of one category. The zero value is strict
// with [DefaultGap].
type Policy struct {
	Mode Mode  `json:"mode,omitempty" toml:"mode"`
	Gap  int64 `json:"gap,omitempty" toml:"gap"`
}

// TolerantPolicy returns a policy where touching intervals share a lane.
func TolerantPolicy() Policy { return Policy{Mode: Tolerant} }

// StrictPolicy returns a strict policy with the given gap.
func StrictPolicy(gap int64) Policy { return Policy{Mode: Strict, Gap: gap} }

// IsTolerant reports whether p uses [Tolerant] mode.
func (p Policy) IsTolerant() bool { return p.Mode == Tolerant }

// EffectiveGap returns the minimum gap enforced between neighbours.
// It is 0 for tolerant policies.
func (p Policy) EffectiveGap() int64 {
	if p.IsTolerant() {
		return 0
	}
	if p.Gap == 0 {
		return DefaultGap
	}
	return p.Gap
}

// Conflicts reports whether next may not follow prev in the same lane.
// prev must not start after next. The check saturates instead of
// overflowing when prev.End+gap exceeds the int64 range.
func (p Policy) Conflicts(prev, next Interval) bool {
	gap := p.EffectiveGap()
	if prev.End > math.MaxInt64-gap {
		return true
	}
	return next.Start < prev.End+gap
}

// Validate rejects unknown modes and negative gaps.
func (p Policy) Validate() error {
	switch p.Mode {
	case "", Strict, Tolerant:
	default:
		return fmt.Errorf("unknown adjacency mode %q (must be one of: strict, tolerant)", p.Mode)
	}
	if p.Gap < 0 {
		return fmt.Errorf("gap must not be negative, got %d", p.Gap)
	}
	return nil
}

func (p Policy) String() string {
	if p.IsTolerant() {
		return string(Tolerant)
	}
	return fmt.Sprintf("%s(gap=%d)", Strict, p.EffectiveGap())
}
