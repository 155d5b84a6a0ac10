package usage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresCounters builds counters over the technicians and work_orders
// tables. Schema is managed by the migrations under migrations/.
type PostgresCounters struct {
	pool *pgxpool.Pool
}

// NewPostgresCounters creates counters backed by the given connection pool.
func NewPostgresCounters(pool *pgxpool.Pool) *PostgresCounters {
	return &PostgresCounters{pool: pool}
}

// ActiveTechnicians counts technicians currently flagged active for the
// tenant. The window is ignored: "active" is a present-state flag, not a
// time-windowed event.
func (c *PostgresCounters) ActiveTechnicians(ctx context.Context, tenantID uuid.UUID, _ Window) (int64, error) {
	var n int64
	err := c.pool.QueryRow(ctx,
		`SELECT count(*) FROM technicians WHERE tenant_id = $1 AND active`, tenantID,
	).Scan(&n)
	if err != nil {
		return 0, errors.Join(ErrCountUnavailable, err)
	}
	return n, nil
}

// WorkOrdersCreated counts work orders the tenant created within the window.
func (c *PostgresCounters) WorkOrdersCreated(ctx context.Context, tenantID uuid.UUID, window Window) (int64, error) {
	var n int64
	var err error
	if window.IsZero() {
		err = c.pool.QueryRow(ctx,
			`SELECT count(*) FROM work_orders WHERE tenant_id = $1`, tenantID,
		).Scan(&n)
	} else {
		err = c.pool.QueryRow(ctx,
			`SELECT count(*) FROM work_orders WHERE tenant_id = $1 AND created_at >= $2 AND created_at < $3`,
			tenantID, window.From, window.To,
		).Scan(&n)
	}
	if err != nil {
		return 0, errors.Join(ErrCountUnavailable, err)
	}
	return n, nil
}
