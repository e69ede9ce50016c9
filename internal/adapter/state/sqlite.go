package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"fundflow/internal/domain"
	"fundflow/internal/infra"
	"fundflow/internal/sqlinline"
)

// SQLite stores ledger state in an embedded database file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and ensures the
// state table exists.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("ensure sqlite dir: %w", err)
	}
	dsn := "file:" + cleanPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_txlock=immediate"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One connection serializes invocations.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	s := &SQLite{db: db}
	if err := s.exec(ctx, db, sqlinline.QCreateLedgerStateSQLite); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create ledger_state: %w", err)
	}
	return s, nil
}

// Close closes the database handle.
func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Atomically runs fn inside one immediate transaction.
func (s *SQLite) Atomically(ctx context.Context, fn func(tx domain.StateTx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(&sqliteTx{store: s, tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *SQLite) exec(ctx context.Context, db execer, query string, args ...any) error {
	_, body, err := infra.ExtractMarker(query)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, body, args...)
	return err
}

type sqliteTx struct {
	store *SQLite
	tx    *sql.Tx
}

func (t *sqliteTx) Get(ctx context.Context, key domain.DataKey, dest any) (bool, error) {
	_, body, err := infra.ExtractMarker(sqlinline.QGetLedgerStateSQLite)
	if err != nil {
		return false, err
	}
	var raw string
	if err := t.tx.QueryRowContext(ctx, body, key.StorageKey()).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", key.StorageKey(), err)
	}
	if err := decode(key, []byte(raw), dest); err != nil {
		return false, err
	}
	return true, nil
}

func (t *sqliteTx) Set(ctx context.Context, key domain.DataKey, value any) error {
	raw, err := encode(key, value)
	if err != nil {
		return err
	}
	if err := t.store.exec(ctx, t.tx, sqlinline.QPutLedgerStateSQLite, key.StorageKey(), string(raw), time.Now().UTC().UnixMilli()); err != nil {
		return fmt.Errorf("write %s: %w", key.StorageKey(), err)
	}
	return nil
}

var _ domain.StateStore = (*SQLite)(nil)
