package plan

import (
	"context"
	"errors"
	"fmt"
)

// Catalog maps every tier to its limits record. Loaded once at startup and
// read-only thereafter; thread-safety relies on that immutability.
type Catalog struct {
	limits map[Tier]Limits
}

// Source defines how a catalog is loaded.
type Source interface {
	Load(ctx context.Context) (map[Tier]Limits, error)
}

// NewCatalog loads and validates a catalog from the given source.
// The source must cover every tier in the closed enumeration: a hole in the
// catalog is a configuration error surfaced at startup, never at decision time.
func NewCatalog(ctx context.Context, src Source) (*Catalog, error) {
	limits, err := src.Load(ctx)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadCatalog, err)
	}

	if err := validate(limits); err != nil {
		return nil, err
	}

	copied := make(map[Tier]Limits, len(limits))
	for tier, l := range limits {
		copied[tier] = l.clone()
	}

	return &Catalog{limits: copied}, nil
}

// LimitsFor returns the limits record for the given tier. Total over the
// closed enumeration; an unknown tier reports ErrUnknownTier.
func (c *Catalog) LimitsFor(tier Tier) (Limits, error) {
	l, ok := c.limits[tier]
	if !ok {
		return Limits{}, fmt.Errorf("%w: %q", ErrUnknownTier, tier)
	}
	return l.clone(), nil
}

func validate(limits map[Tier]Limits) error {
	for _, tier := range Tiers() {
		l, ok := limits[tier]
		if !ok {
			return fmt.Errorf("%w: tier %q has no limits record", ErrIncompleteCatalog, tier)
		}
		for _, f := range l.EnabledFeatures {
			if !f.Valid() {
				return fmt.Errorf("%w: tier %q enables %q", ErrUnknownFeature, tier, f)
			}
		}
	}
	for tier := range limits {
		if !tier.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownTier, tier)
		}
	}
	return nil
}

// Builtin returns the catalog shipped with the product. Kept in code rather
// than configuration so tier changes go through review like any other
// behavior change.
func Builtin() map[Tier]Limits {
	return map[Tier]Limits{
		TierFree: {
			MaxTechnicians:        Capped(1),
			MaxWorkOrdersPerMonth: Capped(5),
			EnabledFeatures:       []Feature{},
		},
		TierBasic: {
			MaxTechnicians:        Capped(5),
			MaxWorkOrdersPerMonth: Unlimited(),
			EnabledFeatures:       []Feature{},
		},
		TierProfessional: {
			MaxTechnicians:        Capped(15),
			MaxWorkOrdersPerMonth: Unlimited(),
			EnabledFeatures:       []Feature{FeaturePDFExport, FeatureAPIIntegration},
		},
		TierEnterprise: {
			MaxTechnicians:        Unlimited(),
			MaxWorkOrdersPerMonth: Unlimited(),
			EnabledFeatures:       []Feature{FeaturePDFExport, FeatureAPIIntegration, FeatureDedicatedSupport},
		},
	}
}
