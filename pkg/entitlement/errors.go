package entitlement

import "errors"

// Domain errors for entitlement decisions
var (
	// ErrEntitlementDenied is the uniform guarded-action denial. It marks a
	// normal policy outcome, not a system failure; callers should surface an
	// upgrade call-to-action rather than an error page.
	ErrEntitlementDenied = errors.New("entitlement.errors.denied")

	ErrDowngradeNotPossible = errors.New("entitlement.errors.downgrade_not_possible")
	ErrNilTierResolver      = errors.New("entitlement.errors.nil_tier_resolver")
	ErrNilCatalogSource     = errors.New("entitlement.errors.nil_catalog_source")
	ErrNilAction            = errors.New("entitlement.errors.nil_action")
	ErrUnknownResource      = errors.New("entitlement.errors.unknown_resource")
)
