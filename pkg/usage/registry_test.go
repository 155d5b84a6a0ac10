package usage_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldsuite/entitlement/pkg/plan"
	"github.com/fieldsuite/entitlement/pkg/usage"
)

func TestRegistry(t *testing.T) {
	t.Parallel()

	t.Run("count via registered counter", func(t *testing.T) {
		t.Parallel()

		reg := usage.NewRegistry()
		reg.Register(plan.ResourceTechnicians, func(ctx context.Context, tenantID uuid.UUID, w usage.Window) (int64, error) {
			return 4, nil
		})

		n, err := reg.Count(context.Background(), uuid.New(), plan.ResourceTechnicians, usage.Window{})

		require.NoError(t, err)
		assert.Equal(t, int64(4), n)
	})

	t.Run("window passed through", func(t *testing.T) {
		t.Parallel()

		var got usage.Window
		reg := usage.NewRegistry()
		reg.Register(plan.ResourceWorkOrders, func(ctx context.Context, tenantID uuid.UUID, w usage.Window) (int64, error) {
			got = w
			return 0, nil
		})

		want := usage.MonthWindow(mustParseTime(t, "2025-06-10T08:00:00Z"))
		_, err := reg.Count(context.Background(), uuid.New(), plan.ResourceWorkOrders, want)

		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("unregistered resource", func(t *testing.T) {
		t.Parallel()

		reg := usage.NewRegistry()

		_, err := reg.Count(context.Background(), uuid.New(), plan.ResourceWorkOrders, usage.Window{})

		assert.ErrorIs(t, err, usage.ErrNoCounterRegistered)
	})

	t.Run("counter failure is never a zero count", func(t *testing.T) {
		t.Parallel()

		storeErr := errors.New("connection reset")
		reg := usage.NewRegistry()
		reg.Register(plan.ResourceTechnicians, func(ctx context.Context, tenantID uuid.UUID, w usage.Window) (int64, error) {
			return 0, storeErr
		})

		_, err := reg.Count(context.Background(), uuid.New(), plan.ResourceTechnicians, usage.Window{})

		require.Error(t, err)
		assert.ErrorIs(t, err, usage.ErrCountUnavailable)
		assert.ErrorIs(t, err, storeErr)
	})

	t.Run("negative counter result rejected", func(t *testing.T) {
		t.Parallel()

		reg := usage.NewRegistry()
		reg.Register(plan.ResourceTechnicians, func(ctx context.Context, tenantID uuid.UUID, w usage.Window) (int64, error) {
			return -1, nil
		})

		_, err := reg.Count(context.Background(), uuid.New(), plan.ResourceTechnicians, usage.Window{})

		assert.ErrorIs(t, err, usage.ErrCountUnavailable)
	})

	t.Run("nil counter panics at registration", func(t *testing.T) {
		t.Parallel()

		reg := usage.NewRegistry()
		assert.Panics(t, func() {
			reg.Register(plan.ResourceTechnicians, nil)
		})
	})
}

func mustParseTime(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return parsed
}
