// Package usage computes live resource counts for entitlement decisions.
//
// A count is a derived value, recomputed from the source of truth on every
// call. Nothing here caches: staleness is the one failure mode that would
// let a tenant exceed its cap.
//
// Counters are registered per resource at startup:
//
//	counters := usage.NewRegistry()
//	pg := usage.NewPostgresCounters(pool)
//	counters.Register(plan.ResourceTechnicians, pg.ActiveTechnicians)
//	counters.Register(plan.ResourceWorkOrders, pg.WorkOrdersCreated)
//
// Windowed resources (work orders per month) receive the window computed by
// the caller, typically usage.MonthWindow(time.Now()). Counting failures
// propagate as errors joined with ErrCountUnavailable and are never folded
// into a zero count.
package usage
