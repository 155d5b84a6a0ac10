package entitlement

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fieldsuite/entitlement/pkg/logger"
	"github.com/fieldsuite/entitlement/pkg/notify"
)

// WithEntitlement runs the authoritative check for the requirement and
// invokes action only when it passes.
//
// This is the "double-check at the point of action" half of the contract:
// any earlier check that rendered a UI affordance may be stale by the time
// the user acts, so every gated mutation goes through this wrapper
// immediately before executing. The check and the action are not atomic —
// there is no per-tenant mutation lock — so two truly concurrent requests
// can both pass when one slot remains, a bounded one-unit overshoot the
// quota model accepts.
//
// On denial it returns a *DeniedError (matching ErrEntitlementDenied) and
// emits an upgrade prompt through the configured notifier, best-effort.
// Hard check failures propagate unchanged and the action never runs.
func (e *Engine) WithEntitlement(ctx context.Context, tenantID uuid.UUID, req Requirement, action func(ctx context.Context) error) error {
	if action == nil {
		return ErrNilAction
	}

	decision, err := e.evaluate(ctx, tenantID, req)
	if err != nil {
		return err
	}

	if !decision.Allowed {
		e.promptUpgrade(ctx, tenantID, *decision.Denial)
		return &DeniedError{Denial: *decision.Denial}
	}

	return action(ctx)
}

func (e *Engine) evaluate(ctx context.Context, tenantID uuid.UUID, req Requirement) (Decision, error) {
	if req.feature != "" {
		enabled, err := e.FeatureEnabled(ctx, tenantID, req.feature)
		if err != nil {
			return Decision{}, err
		}
		if !enabled {
			return denied(Denial{
				Tier:    e.tiers.CurrentTier(ctx, tenantID),
				Feature: req.feature,
			}), nil
		}
		return allowed(), nil
	}
	return e.CanCreate(ctx, tenantID, req.resource)
}

func (e *Engine) promptUpgrade(ctx context.Context, tenantID uuid.UUID, d Denial) {
	prompt := notify.Prompt{
		TenantID:  tenantID,
		Tier:      d.Tier,
		Resource:  d.Resource,
		Feature:   d.Feature,
		Current:   d.Current,
		Limit:     d.Limit,
		CreatedAt: e.now().UTC(),
	}

	if err := e.notifier.PromptUpgrade(ctx, prompt); err != nil {
		// Best effort: a lost prompt must not fail the denied request.
		e.log.LogAttrs(ctx, slog.LevelError, "failed to deliver upgrade prompt",
			logger.TenantID(tenantID),
			logger.Tier(d.Tier),
			logger.Error(err),
		)
	}
}

// Guard binds the engine, a tenant, and a requirement into a reusable
// guarded call, for call sites that gate the same action repeatedly.
type Guard struct {
	engine   *Engine
	tenantID uuid.UUID
	req      Requirement
}

// Guard returns a reusable guard for the tenant and requirement.
func (e *Engine) Guard(tenantID uuid.UUID, req Requirement) Guard {
	return Guard{engine: e, tenantID: tenantID, req: req}
}

// Do runs the guarded action; see WithEntitlement.
func (g Guard) Do(ctx context.Context, action func(ctx context.Context) error) error {
	return g.engine.WithEntitlement(ctx, g.tenantID, g.req, action)
}
