package tenant

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fieldsuite/entitlement/pkg/logger"
	"github.com/fieldsuite/entitlement/pkg/plan"
)

// PlanResolver maps a tenant identity to its current subscription tier.
//
// Resolution is fail-closed: when the tenant cannot be resolved, the most
// restrictive tier (free) is returned instead of an error, so a lookup
// failure can never grant unpaid entitlements. The two failure modes are
// logged at different levels so operators can tell "deliberately free" apart
// from "lookup failed":
//
//   - anonymous caller / record missing: debug
//   - store error: warn, with the underlying error attached
//
// The resolver never caches. Every call reads the current record, which is
// what keeps plan upgrades effective immediately and prevents a downgraded
// tenant from riding a stale tier.
type PlanResolver struct {
	provider Provider
	log      *slog.Logger
}

// PlanResolverOption configures a PlanResolver.
type PlanResolverOption func(*PlanResolver)

// WithPlanResolverLogger sets the logger used for fail-closed fallbacks.
func WithPlanResolverLogger(log *slog.Logger) PlanResolverOption {
	return func(r *PlanResolver) {
		if log != nil {
			r.log = log
		}
	}
}

// NewPlanResolver creates a resolver backed by the given provider.
func NewPlanResolver(provider Provider, opts ...PlanResolverOption) *PlanResolver {
	r := &PlanResolver{
		provider: provider,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CurrentTier returns the tenant's current tier.
//
// A zero tenant ID means the caller is not authenticated; that resolves to
// free without touching the store. A missing record or an unknown tier value
// on the record also resolves to free. A store failure resolves to free as
// well, but is logged as a distinguishable condition.
func (r *PlanResolver) CurrentTier(ctx context.Context, tenantID uuid.UUID) plan.Tier {
	if tenantID == uuid.Nil {
		r.log.LogAttrs(ctx, slog.LevelDebug, "plan resolution for anonymous caller, defaulting to free",
			logger.TenantID(tenantID),
		)
		return plan.TierFree
	}

	t, err := r.provider.GetByID(ctx, tenantID)
	switch {
	case err == nil:
	case errors.Is(err, ErrTenantNotFound):
		r.log.LogAttrs(ctx, slog.LevelDebug, "tenant record missing, defaulting to free",
			logger.TenantID(tenantID),
		)
		return plan.TierFree
	default:
		// Fail closed: a store outage must never read as a paid tier.
		r.log.LogAttrs(ctx, slog.LevelWarn, "tenant plan lookup failed, defaulting to free",
			logger.TenantID(tenantID),
			logger.Error(err),
		)
		return plan.TierFree
	}

	if !t.Tier.Valid() {
		r.log.LogAttrs(ctx, slog.LevelWarn, "tenant record carries unknown tier, defaulting to free",
			logger.TenantID(tenantID),
			logger.Tier(t.Tier),
		)
		return plan.TierFree
	}

	return t.Tier
}
