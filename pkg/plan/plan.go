package plan

import "slices"

// Feature is a tier-specific capability that can be switched on or off.
type Feature string

const (
	FeaturePDFExport        Feature = "pdf_export"
	FeatureAPIIntegration   Feature = "api_integration"
	FeatureDedicatedSupport Feature = "dedicated_support"
)

// Features lists all known feature flags.
func Features() []Feature {
	return []Feature{FeaturePDFExport, FeatureAPIIntegration, FeatureDedicatedSupport}
}

// Valid reports whether f is a known feature flag.
func (f Feature) Valid() bool {
	return slices.Contains(Features(), f)
}

// Limits is the value record attached to each tier: resource caps and
// feature flags. Immutable once loaded into a catalog.
type Limits struct {
	MaxTechnicians        Limit     `yaml:"max_technicians"`
	MaxWorkOrdersPerMonth Limit     `yaml:"max_work_orders_per_month"`
	EnabledFeatures       []Feature `yaml:"features"`
}

// HasFeature reports whether the feature flag is enabled for this tier.
func (l Limits) HasFeature(f Feature) bool {
	return slices.Contains(l.EnabledFeatures, f)
}

// clone returns a deep copy so catalog internals never alias caller state.
func (l Limits) clone() Limits {
	return Limits{
		MaxTechnicians:        l.MaxTechnicians,
		MaxWorkOrdersPerMonth: l.MaxWorkOrdersPerMonth,
		EnabledFeatures:       slices.Clone(l.EnabledFeatures),
	}
}

// LimitChange records a cap change between two tiers.
type LimitChange struct {
	From Limit
	To   Limit
}

// Comparison contains the differences between two tiers, used to validate
// downgrades and to word upgrade prompts.
type Comparison struct {
	GainedFeatures []Feature
	LostFeatures   []Feature
	RaisedLimits   map[Resource]LimitChange
	LoweredLimits  map[Resource]LimitChange
}

// HasLoweredLimits reports whether any cap decreases going current -> target.
func (c *Comparison) HasLoweredLimits() bool {
	return len(c.LoweredLimits) > 0
}

// Compare returns the differences between the current and target limits.
func Compare(current, target Limits) *Comparison {
	cmp := &Comparison{
		GainedFeatures: make([]Feature, 0),
		LostFeatures:   make([]Feature, 0),
		RaisedLimits:   make(map[Resource]LimitChange),
		LoweredLimits:  make(map[Resource]LimitChange),
	}

	for _, f := range target.EnabledFeatures {
		if !slices.Contains(current.EnabledFeatures, f) {
			cmp.GainedFeatures = append(cmp.GainedFeatures, f)
		}
	}
	for _, f := range current.EnabledFeatures {
		if !slices.Contains(target.EnabledFeatures, f) {
			cmp.LostFeatures = append(cmp.LostFeatures, f)
		}
	}

	compareLimit(cmp, ResourceTechnicians, current.MaxTechnicians, target.MaxTechnicians)
	compareLimit(cmp, ResourceWorkOrders, current.MaxWorkOrdersPerMonth, target.MaxWorkOrdersPerMonth)

	return cmp
}

func compareLimit(cmp *Comparison, res Resource, from, to Limit) {
	if from == to {
		return
	}
	change := LimitChange{From: from, To: to}

	// Leaving unlimited is always a decrease, reaching it always an increase.
	switch {
	case from.IsUnlimited():
		cmp.LoweredLimits[res] = change
	case to.IsUnlimited():
		cmp.RaisedLimits[res] = change
	default:
		fromCap, _ := from.Cap()
		toCap, _ := to.Cap()
		if toCap > fromCap {
			cmp.RaisedLimits[res] = change
		} else {
			cmp.LoweredLimits[res] = change
		}
	}
}
