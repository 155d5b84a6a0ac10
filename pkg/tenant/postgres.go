package tenant

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fieldsuite/entitlement/pkg/plan"
)

// PostgresProvider loads tenant records from the tenants table.
// Schema is managed by the migrations under migrations/.
type PostgresProvider struct {
	pool *pgxpool.Pool
}

// NewPostgresProvider creates a provider backed by the given connection pool.
func NewPostgresProvider(pool *pgxpool.Pool) *PostgresProvider {
	return &PostgresProvider{pool: pool}
}

const tenantColumns = `id, subdomain, name, tier, active, created_at`

// GetByID retrieves a tenant by its ID.
func (p *PostgresProvider) GetByID(ctx context.Context, id uuid.UUID) (*Tenant, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE id = $1`, id)
	return scanTenant(row)
}

// GetByIdentifier retrieves a tenant by subdomain, falling back to a UUID
// match when the identifier parses as one.
func (p *PostgresProvider) GetByIdentifier(ctx context.Context, identifier string) (*Tenant, error) {
	if identifier == "" {
		return nil, ErrInvalidIdentifier
	}

	if id, err := uuid.Parse(identifier); err == nil {
		return p.GetByID(ctx, id)
	}

	row := p.pool.QueryRow(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE subdomain = $1`, identifier)
	return scanTenant(row)
}

func scanTenant(row pgx.Row) (*Tenant, error) {
	var t Tenant
	var tier string
	err := row.Scan(&t.ID, &t.Subdomain, &t.Name, &tier, &t.Active, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTenantNotFound
		}
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	// A malformed tier on the record is surfaced as-is; the plan resolver
	// treats it as a fail-closed condition rather than an error.
	t.Tier = plan.Tier(tier)
	return &t, nil
}
