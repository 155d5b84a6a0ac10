// Package entitlement decides whether a tenant may perform plan-gated
// actions: adding technicians, creating work orders, exporting PDFs.
//
// The engine composes three collaborators, all injected explicitly: a plan
// catalog (tier -> limits), a tier resolver (tenant -> current tier,
// fail-closed to free), and a usage registry (tenant -> live counts). It
// holds no mutable state and caches nothing, so every decision reflects the
// tenant's current plan and current counts.
//
// Two kinds of "no" exist and must not be conflated. A Decision with
// Allowed=false is policy working as intended; it carries the denial detail
// an upgrade prompt needs. An error means the decision could not be made
// (catalog misconfiguration, counting failure) and is always fail-closed:
// the engine never converts uncertainty into permission.
//
// Typical wiring:
//
//	resolver := tenant.NewPlanResolver(provider)
//	counters := usage.NewRegistry()
//	pg := usage.NewPostgresCounters(pool)
//	counters.Register(plan.ResourceTechnicians, pg.ActiveTechnicians)
//	counters.Register(plan.ResourceWorkOrders, pg.WorkOrdersCreated)
//
//	engine, err := entitlement.New(ctx, plan.NewBuiltinSource(), counters, resolver,
//	    entitlement.WithNotifier(notify.NewLogNotifier(log)))
//
// UI affordances use the Can*/FeatureEnabled checks directly; mutations go
// through WithEntitlement, which re-checks authoritatively right before the
// action runs:
//
//	err := engine.WithEntitlement(ctx, tenantID,
//	    entitlement.CreateResource(plan.ResourceWorkOrders),
//	    func(ctx context.Context) error {
//	        return workOrders.Create(ctx, order)
//	    })
//	if errors.Is(err, entitlement.ErrEntitlementDenied) {
//	    // show upgrade call-to-action
//	}
//
// The re-check closes the stale-UI window but is not atomic with the write:
// two concurrent requests can both pass when one slot remains. That bounded
// one-unit overshoot is an accepted property of the soft-quota model.
package entitlement
