package entitlement

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fieldsuite/entitlement/pkg/notify"
	"github.com/fieldsuite/entitlement/pkg/plan"
	"github.com/fieldsuite/entitlement/pkg/usage"
)

// TierResolver maps a tenant identity to its current tier. Implementations
// are expected to be fail-closed: resolution trouble yields the free tier,
// never an error, which is why this interface cannot fail.
// tenant.PlanResolver is the standard implementation.
type TierResolver interface {
	CurrentTier(ctx context.Context, tenantID uuid.UUID) plan.Tier
}

// TierResolverFunc is an adapter to allow ordinary functions as TierResolvers.
type TierResolverFunc func(ctx context.Context, tenantID uuid.UUID) plan.Tier

// CurrentTier calls the function.
func (f TierResolverFunc) CurrentTier(ctx context.Context, tenantID uuid.UUID) plan.Tier {
	return f(ctx, tenantID)
}

// Engine answers entitlement questions for tenants: may this tenant create
// one more unit of a resource, is this feature on its tier, what are its
// limits. All operations are pure functions of (tenant, current tier,
// current counts); the engine holds no mutable state of its own, so it is
// safe for concurrent use and two back-to-back checks with no intervening
// mutation return the same decision.
//
// Denial is a normal outcome (Decision with Allowed=false), while an error
// return means the decision could not be made at all. Callers must treat
// the two differently: a denial drives an upgrade prompt, a hard failure
// drives a retry or error surface. Uncertainty never becomes an allow.
type Engine struct {
	catalog  *plan.Catalog
	counters usage.Registry
	tiers    TierResolver
	notifier notify.Notifier
	log      *slog.Logger
	now      func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithNotifier sets the upgrade-prompt notifier invoked on guarded-action
// denials. Prompts are best-effort; notifier failures are logged only.
func WithNotifier(n notify.Notifier) Option {
	return func(e *Engine) {
		if n != nil {
			e.notifier = n
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithClock overrides the time source used for counting windows.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// New creates an Engine. The catalog is loaded and validated eagerly so a
// misconfigured tier set fails startup, not a request. All collaborators are
// explicit parameters: the engine reads no ambient or global state, which
// keeps it independently testable with fakes.
func New(ctx context.Context, catalogSrc plan.Source, counters usage.Registry, tiers TierResolver, opts ...Option) (*Engine, error) {
	if tiers == nil {
		return nil, ErrNilTierResolver
	}
	if catalogSrc == nil {
		return nil, ErrNilCatalogSource
	}

	catalog, err := plan.NewCatalog(ctx, catalogSrc)
	if err != nil {
		return nil, err
	}

	if counters == nil {
		counters = usage.NewRegistry()
	}

	e := &Engine{
		catalog:  catalog,
		counters: counters,
		tiers:    tiers,
		notifier: notify.NoopNotifier{},
		log:      slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// CanCreate reports whether the tenant may create one more unit of the
// resource right now. An unlimited cap short-circuits without a count query.
// A counting failure is returned as an error, never as an allow: the caller
// cannot distinguish "0 used" from "count unknown", so the engine refuses to.
func (e *Engine) CanCreate(ctx context.Context, tenantID uuid.UUID, res plan.Resource) (Decision, error) {
	tier := e.tiers.CurrentTier(ctx, tenantID)

	limits, err := e.catalog.LimitsFor(tier)
	if err != nil {
		return Decision{}, err
	}

	limit, ok := limits.LimitFor(res)
	if !ok {
		return Decision{}, ErrUnknownResource
	}

	if limit.IsUnlimited() {
		return allowed(), nil
	}

	current, err := e.counters.Count(ctx, tenantID, res, e.windowFor(res))
	if err != nil {
		return Decision{}, err
	}

	if !limit.Allows(current) {
		return denied(Denial{
			Tier:     tier,
			Resource: res,
			Current:  current,
			Limit:    limit,
		}), nil
	}
	return allowed(), nil
}

// CanAddTechnician reports whether the tenant may add one more technician.
func (e *Engine) CanAddTechnician(ctx context.Context, tenantID uuid.UUID) (Decision, error) {
	return e.CanCreate(ctx, tenantID, plan.ResourceTechnicians)
}

// CanCreateWorkOrder reports whether the tenant may create one more work
// order in the current calendar month.
func (e *Engine) CanCreateWorkOrder(ctx context.Context, tenantID uuid.UUID) (Decision, error) {
	return e.CanCreate(ctx, tenantID, plan.ResourceWorkOrders)
}

// FeatureEnabled reports whether the feature flag is on for the tenant's
// current tier. Pure tier lookup with no dependency on resource counts.
func (e *Engine) FeatureEnabled(ctx context.Context, tenantID uuid.UUID, f plan.Feature) (bool, error) {
	tier := e.tiers.CurrentTier(ctx, tenantID)

	limits, err := e.catalog.LimitsFor(tier)
	if err != nil {
		return false, err
	}
	return limits.HasFeature(f), nil
}

// LimitsSnapshot exposes the tenant's full limits record for display
// purposes, e.g. a plan badge. No side effects.
func (e *Engine) LimitsSnapshot(ctx context.Context, tenantID uuid.UUID) (plan.Limits, error) {
	tier := e.tiers.CurrentTier(ctx, tenantID)
	return e.catalog.LimitsFor(tier)
}

// UsageInfo pairs a current count with the cap governing it.
type UsageInfo struct {
	Current int64      `json:"current"`
	Limit   plan.Limit `json:"limit"`
}

// Usage returns the current count and cap for the resource.
func (e *Engine) Usage(ctx context.Context, tenantID uuid.UUID, res plan.Resource) (UsageInfo, error) {
	tier := e.tiers.CurrentTier(ctx, tenantID)

	limits, err := e.catalog.LimitsFor(tier)
	if err != nil {
		return UsageInfo{}, err
	}
	limit, ok := limits.LimitFor(res)
	if !ok {
		return UsageInfo{}, ErrUnknownResource
	}

	current, err := e.counters.Count(ctx, tenantID, res, e.windowFor(res))
	if err != nil {
		return UsageInfo{}, err
	}
	return UsageInfo{Current: current, Limit: limit}, nil
}

// UsageSafe is a convenience wrapper for dashboards. It returns the zero
// value if usage cannot be obtained; it must never be used for enforcement.
func (e *Engine) UsageSafe(ctx context.Context, tenantID uuid.UUID, res plan.Resource) UsageInfo {
	info, _ := e.Usage(ctx, tenantID, res)
	return info
}

// UsagePercentage returns usage as a percentage (0-100, or -1 for unlimited).
func (e *Engine) UsagePercentage(ctx context.Context, tenantID uuid.UUID, res plan.Resource) int {
	info, err := e.Usage(ctx, tenantID, res)
	if err != nil {
		return 0
	}

	limitCap, ok := info.Limit.Cap()
	if !ok {
		return -1
	}
	if limitCap == 0 {
		return 100
	}
	return min(int((info.Current*100)/limitCap), 100)
}

// CanDowngrade checks whether the tenant's current usage fits inside the
// target tier's caps. Used by the billing flow before applying a downgrade.
func (e *Engine) CanDowngrade(ctx context.Context, tenantID uuid.UUID, target plan.Tier) error {
	targetLimits, err := e.catalog.LimitsFor(target)
	if err != nil {
		return err
	}

	for _, res := range []plan.Resource{plan.ResourceTechnicians, plan.ResourceWorkOrders} {
		limit, ok := targetLimits.LimitFor(res)
		if !ok || limit.IsUnlimited() {
			continue
		}

		limitCap, _ := limit.Cap()
		current, err := e.counters.Count(ctx, tenantID, res, e.windowFor(res))
		if err != nil {
			return err
		}
		if current > limitCap {
			return ErrDowngradeNotPossible
		}
	}
	return nil
}

// windowFor returns the counting window for a resource: calendar-month for
// work orders, all-time for present-state resources like technicians.
func (e *Engine) windowFor(res plan.Resource) usage.Window {
	if res == plan.ResourceWorkOrders {
		return usage.MonthWindow(e.now())
	}
	return usage.Window{}
}
