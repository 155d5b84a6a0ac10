package tenant

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fieldsuite/entitlement/pkg/plan"
)

// Tenant represents a company account with the minimal attributes needed
// for request-scoped entitlement decisions and UI display.
type Tenant struct {
	ID        uuid.UUID `json:"id"`
	Subdomain string    `json:"subdomain"`
	Name      string    `json:"name"`
	Tier      plan.Tier `json:"tier"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// Provider loads tenant records from a data source. Implementations must
// return the current record on every call: entitlement freshness depends on
// the resolver never seeing a stale plan.
type Provider interface {
	// GetByID retrieves a tenant by its ID.
	// Returns ErrTenantNotFound if no tenant matches.
	GetByID(ctx context.Context, id uuid.UUID) (*Tenant, error)

	// GetByIdentifier retrieves a tenant using any unique identifier,
	// typically a subdomain or a UUID string. Used by the HTTP middleware.
	// Returns ErrTenantNotFound if no tenant matches.
	GetByIdentifier(ctx context.Context, identifier string) (*Tenant, error)
}
