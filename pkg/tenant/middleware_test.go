package tenant_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldsuite/entitlement/pkg/plan"
	"github.com/fieldsuite/entitlement/pkg/tenant"
)

func TestMiddleware(t *testing.T) {
	t.Parallel()

	headerResolver := tenant.NewHeaderResolver("X-Tenant-ID")

	t.Run("resolves tenant into context", func(t *testing.T) {
		t.Parallel()

		tn := newTestTenant(plan.TierBasic)
		provider := &fakeProvider{tenants: map[uuid.UUID]*tenant.Tenant{tn.ID: tn}}

		var got *tenant.Tenant
		handler := tenant.Middleware(headerResolver, provider)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = tenant.FromContext(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Tenant-ID", tn.Subdomain)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, got)
		assert.Equal(t, tn.ID, got.ID)
	})

	t.Run("anonymous request passes through without tenant", func(t *testing.T) {
		t.Parallel()

		provider := &fakeProvider{tenants: map[uuid.UUID]*tenant.Tenant{}}

		var hadTenant bool
		handler := tenant.Middleware(headerResolver, provider)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, hadTenant = tenant.FromContext(r.Context())
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, hadTenant)
	})

	t.Run("unknown tenant is 404", func(t *testing.T) {
		t.Parallel()

		provider := &fakeProvider{tenants: map[uuid.UUID]*tenant.Tenant{}}
		handler := tenant.Middleware(headerResolver, provider)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Tenant-ID", "ghost")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("inactive tenant is 403", func(t *testing.T) {
		t.Parallel()

		tn := newTestTenant(plan.TierBasic)
		tn.Active = false
		provider := &fakeProvider{tenants: map[uuid.UUID]*tenant.Tenant{tn.ID: tn}}

		handler := tenant.Middleware(headerResolver, provider)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Tenant-ID", tn.Subdomain)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("inactive tenant allowed when not required active", func(t *testing.T) {
		t.Parallel()

		tn := newTestTenant(plan.TierBasic)
		tn.Active = false
		provider := &fakeProvider{tenants: map[uuid.UUID]*tenant.Tenant{tn.ID: tn}}

		handler := tenant.Middleware(headerResolver, provider, tenant.WithRequireActive(false))(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Tenant-ID", tn.Subdomain)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("skip paths bypass resolution", func(t *testing.T) {
		t.Parallel()

		provider := &fakeProvider{err: assert.AnError}
		handler := tenant.Middleware(headerResolver, provider, tenant.WithSkipPaths([]string{"/health"}))(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
		req.Header.Set("X-Tenant-ID", "acme")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireTenant(t *testing.T) {
	t.Parallel()

	handler := tenant.RequireTenant(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	t.Run("without tenant", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("with tenant", func(t *testing.T) {
		t.Parallel()

		tn := newTestTenant(plan.TierFree)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(tenant.WithTenant(req.Context(), tn))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
