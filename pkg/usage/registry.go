package usage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/fieldsuite/entitlement/pkg/plan"
)

// CounterFunc returns the current usage for a tenant resource within the
// given window. Counts are always recomputed from the source of truth;
// implementations must not cache, since a stale count could let a tenant
// slip past its cap.
//
// On failure the error is propagated, never swallowed into a zero count:
// zero would silently pass the subsequent limit comparison.
type CounterFunc func(ctx context.Context, tenantID uuid.UUID, window Window) (int64, error)

// Registry maps a resource to its CounterFunc.
// Not thread-safe: register all counters at startup only.
type Registry map[plan.Resource]CounterFunc

// NewRegistry returns a new, empty Registry.
func NewRegistry() Registry {
	return make(Registry)
}

// Register sets or replaces the CounterFunc for the given resource. Panics if fn is nil.
func (r Registry) Register(res plan.Resource, fn CounterFunc) {
	if fn == nil {
		panic(fmt.Sprintf("usage: CounterFunc for resource %q cannot be nil", res))
	}
	r[res] = fn
}

// Count invokes the registered counter for the resource.
func (r Registry) Count(ctx context.Context, tenantID uuid.UUID, res plan.Resource, window Window) (int64, error) {
	fn, ok := r[res]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNoCounterRegistered, res)
	}

	n, err := fn(ctx, tenantID, window)
	if err != nil {
		return 0, errors.Join(ErrCountUnavailable, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: counter for %q returned %d", ErrCountUnavailable, res, n)
	}
	return n, nil
}
