package entitlement

import (
	"fmt"

	"github.com/fieldsuite/entitlement/pkg/plan"
)

// Decision is the engine's answer to a single entitlement question.
// Ephemeral by design: decisions are computed fresh per request and never
// persisted, so two checks with no intervening mutation agree.
type Decision struct {
	Allowed bool
	// Denial is set when Allowed is false.
	Denial *Denial
}

// Denial explains why an action was disallowed, with enough detail for an
// upgrade prompt: which cap or feature, where the tenant stands, and what
// the tier allows.
type Denial struct {
	Tier     plan.Tier
	Resource plan.Resource // set for quota denials
	Feature  plan.Feature  // set for feature denials
	Current  int64
	Limit    plan.Limit
}

func (d *Denial) String() string {
	if d.Feature != "" {
		return fmt.Sprintf("feature %s not available on tier %s", d.Feature, d.Tier)
	}
	return fmt.Sprintf("%s at %d of %s on tier %s", d.Resource, d.Current, d.Limit, d.Tier)
}

func allowed() Decision {
	return Decision{Allowed: true}
}

func denied(d Denial) Decision {
	return Decision{Denial: &d}
}

// DeniedError is the error WithEntitlement returns when the authoritative
// re-check denies the action. It matches ErrEntitlementDenied under errors.Is.
type DeniedError struct {
	Denial Denial
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("entitlement denied: %s", e.Denial.String())
}

// Is reports a match against the uniform denial sentinel.
func (e *DeniedError) Is(target error) bool {
	return target == ErrEntitlementDenied
}

// Requirement names what a guarded action needs: a free slot for one more
// unit of a resource, or a feature flag on the tenant's tier.
type Requirement struct {
	resource plan.Resource
	feature  plan.Feature
}

// CreateResource requires room for one more unit of the resource.
func CreateResource(res plan.Resource) Requirement {
	return Requirement{resource: res}
}

// RequireFeature requires the feature flag on the tenant's tier.
func RequireFeature(f plan.Feature) Requirement {
	return Requirement{feature: f}
}

func (r Requirement) String() string {
	if r.feature != "" {
		return fmt.Sprintf("feature:%s", r.feature)
	}
	return fmt.Sprintf("create:%s", r.resource)
}
