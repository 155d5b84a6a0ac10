package plan

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Limit is a resource cap: either a non-negative finite cap or unlimited.
// The tagged representation prevents accidental arithmetic on a sentinel
// value (the usual -1 or null tricks).
type Limit struct {
	n         int64
	unlimited bool
}

// Capped returns a finite limit. Panics on negative n: limits are
// configuration values validated at startup, a negative cap is a bug.
func Capped(n int64) Limit {
	if n < 0 {
		panic(fmt.Sprintf("plan: negative limit %d", n))
	}
	return Limit{n: n}
}

// Unlimited returns the unbounded limit.
func Unlimited() Limit {
	return Limit{unlimited: true}
}

// IsUnlimited reports whether the limit is unbounded.
func (l Limit) IsUnlimited() bool {
	return l.unlimited
}

// Cap returns the finite cap value and true, or 0 and false when unlimited.
func (l Limit) Cap() (int64, bool) {
	if l.unlimited {
		return 0, false
	}
	return l.n, true
}

// Allows reports whether one more unit may be added at the given current count.
func (l Limit) Allows(current int64) bool {
	if l.unlimited {
		return true
	}
	return current < l.n
}

func (l Limit) String() string {
	if l.unlimited {
		return "unlimited"
	}
	return strconv.FormatInt(l.n, 10)
}

// MarshalYAML encodes the limit as an integer, or the literal "unlimited".
func (l Limit) MarshalYAML() (any, error) {
	if l.unlimited {
		return "unlimited", nil
	}
	return l.n, nil
}

// UnmarshalYAML accepts an integer cap or the string "unlimited". A null
// value never reaches this method (the decoder zeroes the field first), so
// catalogs must spell the unbounded cap out explicitly.
func (l *Limit) UnmarshalYAML(value *yaml.Node) error {
	if value.Tag == "!!str" {
		if strings.EqualFold(strings.TrimSpace(value.Value), "unlimited") {
			*l = Unlimited()
			return nil
		}
		return fmt.Errorf("%w: %q", ErrInvalidLimit, value.Value)
	}

	var n int64
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLimit, value.Value)
	}
	if n < 0 {
		return fmt.Errorf("%w: negative cap %d", ErrInvalidLimit, n)
	}
	*l = Capped(n)
	return nil
}
