package tenant_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldsuite/entitlement/pkg/plan"
	"github.com/fieldsuite/entitlement/pkg/tenant"
)

// fakeProvider serves a fixed set of tenants, optionally failing every call.
type fakeProvider struct {
	tenants map[uuid.UUID]*tenant.Tenant
	err     error
}

func (p *fakeProvider) GetByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	if p.err != nil {
		return nil, p.err
	}
	t, ok := p.tenants[id]
	if !ok {
		return nil, tenant.ErrTenantNotFound
	}
	return t, nil
}

func (p *fakeProvider) GetByIdentifier(ctx context.Context, identifier string) (*tenant.Tenant, error) {
	if p.err != nil {
		return nil, p.err
	}
	for _, t := range p.tenants {
		if t.Subdomain == identifier || t.ID.String() == identifier {
			return t, nil
		}
	}
	return nil, tenant.ErrTenantNotFound
}

func newTestTenant(tier plan.Tier) *tenant.Tenant {
	return &tenant.Tenant{
		ID:        uuid.New(),
		Subdomain: "acme",
		Name:      "Acme Field Services",
		Tier:      tier,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
}

func TestPlanResolverCurrentTier(t *testing.T) {
	t.Parallel()

	t.Run("resolves current tier", func(t *testing.T) {
		t.Parallel()

		tn := newTestTenant(plan.TierProfessional)
		provider := &fakeProvider{tenants: map[uuid.UUID]*tenant.Tenant{tn.ID: tn}}
		resolver := tenant.NewPlanResolver(provider)

		assert.Equal(t, plan.TierProfessional, resolver.CurrentTier(context.Background(), tn.ID))
	})

	t.Run("anonymous caller resolves to free", func(t *testing.T) {
		t.Parallel()

		resolver := tenant.NewPlanResolver(&fakeProvider{})

		assert.Equal(t, plan.TierFree, resolver.CurrentTier(context.Background(), uuid.Nil))
	})

	t.Run("missing record resolves to free", func(t *testing.T) {
		t.Parallel()

		resolver := tenant.NewPlanResolver(&fakeProvider{tenants: map[uuid.UUID]*tenant.Tenant{}})

		assert.Equal(t, plan.TierFree, resolver.CurrentTier(context.Background(), uuid.New()))
	})

	t.Run("store error fails closed to free", func(t *testing.T) {
		t.Parallel()

		provider := &fakeProvider{err: errors.New("connection refused")}
		resolver := tenant.NewPlanResolver(provider)

		assert.Equal(t, plan.TierFree, resolver.CurrentTier(context.Background(), uuid.New()))
	})

	t.Run("store error is logged at warn", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		provider := &fakeProvider{err: errors.New("connection refused")}
		resolver := tenant.NewPlanResolver(provider, tenant.WithPlanResolverLogger(log))

		resolver.CurrentTier(context.Background(), uuid.New())

		out := buf.String()
		assert.Contains(t, out, "level=WARN")
		assert.Contains(t, out, "connection refused")
	})

	t.Run("missing record is not logged as a failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		resolver := tenant.NewPlanResolver(
			&fakeProvider{tenants: map[uuid.UUID]*tenant.Tenant{}},
			tenant.WithPlanResolverLogger(log),
		)

		resolver.CurrentTier(context.Background(), uuid.New())

		assert.Contains(t, buf.String(), "level=DEBUG")
		assert.NotContains(t, buf.String(), "level=WARN")
	})

	t.Run("unknown tier on record resolves to free", func(t *testing.T) {
		t.Parallel()

		tn := newTestTenant(plan.Tier("platinum"))
		provider := &fakeProvider{tenants: map[uuid.UUID]*tenant.Tenant{tn.ID: tn}}
		resolver := tenant.NewPlanResolver(provider)

		assert.Equal(t, plan.TierFree, resolver.CurrentTier(context.Background(), tn.ID))
	})

	t.Run("reads the current record on every call", func(t *testing.T) {
		t.Parallel()

		tn := newTestTenant(plan.TierFree)
		provider := &fakeProvider{tenants: map[uuid.UUID]*tenant.Tenant{tn.ID: tn}}
		resolver := tenant.NewPlanResolver(provider)

		require.Equal(t, plan.TierFree, resolver.CurrentTier(context.Background(), tn.ID))

		// Simulated upgrade through the billing flow takes effect immediately.
		tn.Tier = plan.TierEnterprise
		assert.Equal(t, plan.TierEnterprise, resolver.CurrentTier(context.Background(), tn.ID))
	})
}
