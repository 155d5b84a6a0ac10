package plan_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldsuite/entitlement/pkg/plan"
)

type failingSource struct {
	err error
}

func (s *failingSource) Load(ctx context.Context) (map[plan.Tier]plan.Limits, error) {
	return nil, s.err
}

func TestNewCatalog(t *testing.T) {
	t.Parallel()

	t.Run("builtin catalog is valid", func(t *testing.T) {
		t.Parallel()

		catalog, err := plan.NewCatalog(context.Background(), plan.NewBuiltinSource())

		require.NoError(t, err)
		assert.NotNil(t, catalog)
	})

	t.Run("source load error", func(t *testing.T) {
		t.Parallel()

		src := &failingSource{err: errors.New("load failed")}

		catalog, err := plan.NewCatalog(context.Background(), src)

		assert.ErrorIs(t, err, plan.ErrFailedToLoadCatalog)
		assert.Nil(t, catalog)
	})

	t.Run("missing tier", func(t *testing.T) {
		t.Parallel()

		limits := plan.Builtin()
		delete(limits, plan.TierEnterprise)

		catalog, err := plan.NewCatalog(context.Background(), plan.NewInMemSource(limits))

		assert.ErrorIs(t, err, plan.ErrIncompleteCatalog)
		assert.Nil(t, catalog)
	})

	t.Run("unknown feature flag", func(t *testing.T) {
		t.Parallel()

		limits := plan.Builtin()
		broken := limits[plan.TierBasic]
		broken.EnabledFeatures = []plan.Feature{"time_travel"}
		limits[plan.TierBasic] = broken

		catalog, err := plan.NewCatalog(context.Background(), plan.NewInMemSource(limits))

		assert.ErrorIs(t, err, plan.ErrUnknownFeature)
		assert.Nil(t, catalog)
	})

	t.Run("unknown tier key", func(t *testing.T) {
		t.Parallel()

		limits := plan.Builtin()
		limits[plan.Tier("platinum")] = limits[plan.TierFree]

		catalog, err := plan.NewCatalog(context.Background(), plan.NewInMemSource(limits))

		assert.ErrorIs(t, err, plan.ErrUnknownTier)
		assert.Nil(t, catalog)
	})
}

func TestCatalogLimitsFor(t *testing.T) {
	t.Parallel()

	catalog, err := plan.NewCatalog(context.Background(), plan.NewBuiltinSource())
	require.NoError(t, err)

	t.Run("total over the enumeration", func(t *testing.T) {
		t.Parallel()

		for _, tier := range plan.Tiers() {
			limits, err := catalog.LimitsFor(tier)
			require.NoError(t, err, "tier %s", tier)

			// Caps are either unlimited or finite non-negative.
			if n, ok := limits.MaxTechnicians.Cap(); ok {
				assert.GreaterOrEqual(t, n, int64(0))
			}
			if n, ok := limits.MaxWorkOrdersPerMonth.Cap(); ok {
				assert.GreaterOrEqual(t, n, int64(0))
			}
		}
	})

	t.Run("unknown tier is a configuration error", func(t *testing.T) {
		t.Parallel()

		_, err := catalog.LimitsFor(plan.Tier("platinum"))

		assert.ErrorIs(t, err, plan.ErrUnknownTier)
	})

	t.Run("free tier boundaries", func(t *testing.T) {
		t.Parallel()

		limits, err := catalog.LimitsFor(plan.TierFree)
		require.NoError(t, err)

		techs, ok := limits.MaxTechnicians.Cap()
		require.True(t, ok)
		assert.Equal(t, int64(1), techs)

		orders, ok := limits.MaxWorkOrdersPerMonth.Cap()
		require.True(t, ok)
		assert.Equal(t, int64(5), orders)

		assert.Empty(t, limits.EnabledFeatures)
	})

	t.Run("monthly cap unlimited on paid tiers only", func(t *testing.T) {
		t.Parallel()

		for _, tier := range []plan.Tier{plan.TierBasic, plan.TierProfessional, plan.TierEnterprise} {
			limits, err := catalog.LimitsFor(tier)
			require.NoError(t, err)
			assert.True(t, limits.MaxWorkOrdersPerMonth.IsUnlimited(), "tier %s", tier)
		}
	})

	t.Run("pdf export flag per tier", func(t *testing.T) {
		t.Parallel()

		enabled := map[plan.Tier]bool{
			plan.TierFree:         false,
			plan.TierBasic:        false,
			plan.TierProfessional: true,
			plan.TierEnterprise:   true,
		}
		for tier, want := range enabled {
			limits, err := catalog.LimitsFor(tier)
			require.NoError(t, err)
			assert.Equal(t, want, limits.HasFeature(plan.FeaturePDFExport), "tier %s", tier)
		}
	})

	t.Run("returned record is a copy", func(t *testing.T) {
		t.Parallel()

		limits, err := catalog.LimitsFor(plan.TierEnterprise)
		require.NoError(t, err)

		limits.EnabledFeatures[0] = "mutated"

		fresh, err := catalog.LimitsFor(plan.TierEnterprise)
		require.NoError(t, err)
		assert.True(t, fresh.HasFeature(plan.FeaturePDFExport))
	})
}

func TestParseTier(t *testing.T) {
	t.Parallel()

	tier, err := plan.ParseTier("professional")
	require.NoError(t, err)
	assert.Equal(t, plan.TierProfessional, tier)

	_, err = plan.ParseTier("gold")
	assert.ErrorIs(t, err, plan.ErrUnknownTier)
}

func TestCompare(t *testing.T) {
	t.Parallel()

	catalog, err := plan.NewCatalog(context.Background(), plan.NewBuiltinSource())
	require.NoError(t, err)

	free, err := catalog.LimitsFor(plan.TierFree)
	require.NoError(t, err)
	pro, err := catalog.LimitsFor(plan.TierProfessional)
	require.NoError(t, err)

	t.Run("upgrade free to professional", func(t *testing.T) {
		t.Parallel()

		cmp := plan.Compare(free, pro)

		assert.ElementsMatch(t, []plan.Feature{plan.FeaturePDFExport, plan.FeatureAPIIntegration}, cmp.GainedFeatures)
		assert.Empty(t, cmp.LostFeatures)
		assert.Contains(t, cmp.RaisedLimits, plan.ResourceTechnicians)
		assert.Contains(t, cmp.RaisedLimits, plan.ResourceWorkOrders)
		assert.False(t, cmp.HasLoweredLimits())
	})

	t.Run("downgrade professional to free", func(t *testing.T) {
		t.Parallel()

		cmp := plan.Compare(pro, free)

		assert.ElementsMatch(t, []plan.Feature{plan.FeaturePDFExport, plan.FeatureAPIIntegration}, cmp.LostFeatures)
		assert.True(t, cmp.HasLoweredLimits())
		// Leaving an unlimited monthly cap is a decrease.
		assert.Contains(t, cmp.LoweredLimits, plan.ResourceWorkOrders)
	})
}
