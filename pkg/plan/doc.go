// Package plan defines subscription tiers and the catalog mapping each tier
// to its resource caps and feature flags.
//
// The tier set is a closed enumeration (free, basic, professional,
// enterprise). Every tier has exactly one Limits record; the catalog is
// loaded once at startup, validated for completeness, and read-only
// thereafter.
//
// Caps are expressed with the Limit type, a tagged variant that is either a
// finite non-negative cap or unlimited. This keeps "no monthly cap" out of
// integer arithmetic entirely.
//
// Basic usage:
//
//	catalog, err := plan.NewCatalog(ctx, plan.NewBuiltinSource())
//	if err != nil {
//	    // configuration error, fail startup
//	}
//
//	limits, err := catalog.LimitsFor(plan.TierBasic)
//	if limits.MaxWorkOrdersPerMonth.IsUnlimited() {
//	    // skip the count query
//	}
//
// Catalogs can also be externalized to YAML with NewFileSource; the file
// accepts integer caps or the literal "unlimited".
package plan
