package plan

import "fmt"

// Tier identifies a subscription tier. The set of tiers is closed:
// an identifier outside this enumeration is a configuration error,
// not a runtime condition to recover from.
type Tier string

const (
	TierFree         Tier = "free"
	TierBasic        Tier = "basic"
	TierProfessional Tier = "professional"
	TierEnterprise   Tier = "enterprise"
)

// Tiers lists all known tiers in ascending order of capability.
func Tiers() []Tier {
	return []Tier{TierFree, TierBasic, TierProfessional, TierEnterprise}
}

// Valid reports whether t is a member of the closed tier enumeration.
func (t Tier) Valid() bool {
	switch t {
	case TierFree, TierBasic, TierProfessional, TierEnterprise:
		return true
	}
	return false
}

// ParseTier converts a raw plan identifier (e.g. from a tenant record)
// into a Tier. Returns ErrUnknownTier for identifiers outside the enumeration.
func ParseTier(s string) (Tier, error) {
	t := Tier(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTier, s)
	}
	return t, nil
}

func (t Tier) String() string {
	return string(t)
}
