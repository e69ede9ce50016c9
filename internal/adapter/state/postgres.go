package state

import (
	"context"
	"fmt"

	"fundflow/internal/domain"
	"fundflow/internal/infra"
	"fundflow/internal/sqlinline"
)

// ledgerLockKey is the advisory lock that serializes ledger invocations.
const ledgerLockKey int64 = 0x66756e64666c6f77

// Postgres stores ledger state in a single key/value table.
type Postgres struct {
	runner infra.TxRunner
}

// NewPostgres returns a store running its transactions through runner.
func NewPostgres(runner infra.TxRunner) *Postgres {
	return &Postgres{runner: runner}
}

// Migrate creates the state table when missing.
func (p *Postgres) Migrate(ctx context.Context) error {
	return p.runner.InTx(ctx, func(db infra.SQLExecutor) error {
		if _, err := db.Exec(ctx, sqlinline.QCreateLedgerState); err != nil {
			return fmt.Errorf("create ledger_state: %w", err)
		}
		return nil
	})
}

// Atomically runs fn inside one transaction holding the ledger lock.
func (p *Postgres) Atomically(ctx context.Context, fn func(tx domain.StateTx) error) error {
	return p.runner.InTx(ctx, func(db infra.SQLExecutor) error {
		if _, err := db.Exec(ctx, sqlinline.QLockLedger, ledgerLockKey); err != nil {
			return fmt.Errorf("lock ledger: %w", err)
		}
		return fn(&postgresTx{db: db})
	})
}

type postgresTx struct {
	db infra.SQLExecutor
}

func (t *postgresTx) Get(ctx context.Context, key domain.DataKey, dest any) (bool, error) {
	var raw string
	if err := t.db.QueryRow(ctx, sqlinline.QGetLedgerState, key.StorageKey()).Scan(&raw); err != nil {
		if infra.IsNoRows(err) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", key.StorageKey(), err)
	}
	if err := decode(key, []byte(raw), dest); err != nil {
		return false, err
	}
	return true, nil
}

func (t *postgresTx) Set(ctx context.Context, key domain.DataKey, value any) error {
	raw, err := encode(key, value)
	if err != nil {
		return err
	}
	if _, err := t.db.Exec(ctx, sqlinline.QPutLedgerState, key.StorageKey(), string(raw)); err != nil {
		return fmt.Errorf("write %s: %w", key.StorageKey(), err)
	}
	return nil
}

var _ domain.StateStore = (*Postgres)(nil)
