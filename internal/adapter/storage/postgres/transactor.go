package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// lockTimeout bounds how long a sync transition waits on a connector row
// held by another transaction.
const lockTimeout = "5s"

// Transactor implements ports.DBTransactor. The sync orchestrator uses it to
// pair ledger writes with connector transitions.
type Transactor struct {
	pool Pool
}

// NewTransactor creates a new Transactor wrapping the connection pool.
func NewTransactor(pool Pool) *Transactor {
	return &Transactor{pool: pool}
}

// Begin starts a read committed transaction with a local lock timeout.
func (t *Transactor) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := t.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, "SET LOCAL lock_timeout = '"+lockTimeout+"'"); err != nil {
		_ = tx.Rollback(ctx)
		return nil, fmt.Errorf("set lock timeout: %w", err)
	}
	return tx, nil
}
