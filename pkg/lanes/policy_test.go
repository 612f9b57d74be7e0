package lanes

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicyEffectiveGap(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
		want   int64
	}{
		{"zero value is strict default", Policy{}, DefaultGap},
		{"strict without gap", Policy{Mode: Strict}, DefaultGap},
		{"strict with gap", StrictPolicy(3), 3},
		{"tolerant ignores gap", Policy{Mode: Tolerant, Gap: 9}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.policy.EffectiveGap())
		})
	}
}

func TestPolicyConflicts(t *testing.T) {
	a := Interval{Start: 0, End: 10}

	tests := []struct {
		name   string
		policy Policy
		next   Interval
		want   bool
	}{
		{"tolerant touching", TolerantPolicy(), Interval{Start: 10, End: 20}, false},
		{"tolerant overlapping", TolerantPolicy(), Interval{Start: 9, End: 20}, true},
		{"strict touching", StrictPolicy(1), Interval{Start: 10, End: 20}, true},
		{"strict at gap", StrictPolicy(1), Interval{Start: 11, End: 20}, false},
		{"strict inside gap", StrictPolicy(5), Interval{Start: 14, End: 20}, true},
		{"strict past gap", StrictPolicy(5), Interval{Start: 15, End: 20}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.policy.Conflicts(a, tt.next))
		})
	}
}

func TestPolicyConflictsNearMaxInt64(t *testing.T) {
	const top = math.MaxInt64
	prev := Interval{Start: top - 5, End: top}

	tests := []struct {
		name   string
		policy Policy
		prev   Interval
		next   Interval
		want   bool
	}{
		{"strict default gap at end of axis", Policy{}, prev, Interval{Start: top - 2, End: top}, true},
		{"strict touching end of axis", StrictPolicy(1), prev, Interval{Start: top, End: top}, true},
		{"huge gap", StrictPolicy(top), Interval{Start: 0, End: 10}, Interval{Start: top - 1, End: top}, true},
		{"huge gap fits exactly", StrictPolicy(top - 10), Interval{Start: 0, End: 10}, Interval{Start: top, End: top}, false},
		{"tolerant touching end of axis", TolerantPolicy(), prev, Interval{Start: top, End: top}, false},
		{"tolerant overlapping end of axis", TolerantPolicy(), prev, Interval{Start: top - 1, End: top}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.policy.Conflicts(tt.prev, tt.next))
		})
	}
}

func TestPolicyValidate(t *testing.T) {
	assert.NoError(t, Policy{}.Validate())
	assert.NoError(t, TolerantPolicy().Validate())
	assert.NoError(t, StrictPolicy(2).Validate())
	assert.ErrorContains(t, Policy{Mode: "loose"}.Validate(), "unknown adjacency mode")
	assert.ErrorContains(t, StrictPolicy(-1).Validate(), "must not be negative")
}

func TestPolicyString(t *testing.T) {
	assert.Equal(t, "tolerant", TolerantPolicy().String())
	assert.Equal(t, "strict(gap=1)", Policy{}.String())
	assert.Equal(t, "strict(gap=4)", StrictPolicy(4).String())
}

func TestIntervalValidate(t *testing.T) {
	assert.NoError(t, Interval{ID: "a", Start: 1, End: 1}.Validate())
	assert.NoError(t, Interval{ID: "a", Start: -10, End: -2}.Validate())

	err := Interval{ID: "a", Start: 3, End: 2}.Validate()
	assert.ErrorIs(t, err, ErrInvalidInterval)
	assert.EqualError(t, err, `invalid interval "a": end 2 is before start 3`)
	assert.Equal(t, int64(-1), Interval{Start: 3, End: 2}.Length())
}
