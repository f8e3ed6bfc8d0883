package checkers

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultPingTimeout = time.Second

// PostgresChecker reports readiness of the backing database by pinging the
// connection pool. The ping carries its own timeout so a stalled database
// cannot hold the readiness probe for the caller's whole deadline.
type PostgresChecker struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresChecker(pool *pgxpool.Pool) *PostgresChecker {
	return &PostgresChecker{pool: pool, timeout: defaultPingTimeout}
}

// WithTimeout overrides the per-ping timeout.
func (c *PostgresChecker) WithTimeout(d time.Duration) *PostgresChecker {
	if d > 0 {
		c.timeout = d
	}
	return c
}

func (c *PostgresChecker) Name() string { return "postgres" }

func (c *PostgresChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.pool.Ping(ctx)
}
