package postgres

import (
	"context"
	"fmt"
)

// HealthCheck checks the primary database for GET /health. A reachable
// database that is missing embedded migrations is reported unhealthy.
type HealthCheck struct {
	pool Pool
}

func NewHealthCheck(pool Pool) *HealthCheck {
	return &HealthCheck{pool: pool}
}

func (h *HealthCheck) Ping(ctx context.Context) error {
	var applied int
	if err := h.pool.QueryRow(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&applied); err != nil {
		return fmt.Errorf("read schema_migrations: %w", err)
	}
	migrations, err := loadMigrations()
	if err != nil {
		return err
	}
	if pending := len(migrations) - applied; pending > 0 {
		return fmt.Errorf("%d pending migrations", pending)
	}
	return nil
}

func (h *HealthCheck) Name() string {
	return "postgres"
}
