package state

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"fundflow/internal/domain"
	"fundflow/internal/infra"
)

// Open builds the store selected by cfg.StateBackend. The returned function
// releases any connections the store holds.
func Open(ctx context.Context, cfg *infra.Config, logger zerolog.Logger) (domain.StateStore, func(), error) {
	switch cfg.StateBackend {
	case infra.StateBackendMemory, "":
		return NewMemory(), func() {}, nil
	case infra.StateBackendSQLite:
		store, err := OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	case infra.StateBackendPostgres:
		pool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		store := NewPostgres(infra.NewSQLRunner(pool, logger))
		if err := store.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported state backend %q", cfg.StateBackend)
	}
}

// ApplyStoreURI points cfg at the store named by uri: "memory",
// "sqlite:<path>", or a postgres:// / postgresql:// connection URL.
func ApplyStoreURI(cfg *infra.Config, uri string) error {
	uri = strings.TrimSpace(uri)
	switch {
	case uri == infra.StateBackendMemory:
		cfg.StateBackend = infra.StateBackendMemory
	case strings.HasPrefix(uri, "sqlite:"):
		path := strings.TrimPrefix(uri, "sqlite:")
		if path == "" {
			return fmt.Errorf("store %q: missing sqlite path", uri)
		}
		cfg.StateBackend = infra.StateBackendSQLite
		cfg.SQLitePath = path
	case strings.HasPrefix(uri, "postgres://"), strings.HasPrefix(uri, "postgresql://"):
		cfg.StateBackend = infra.StateBackendPostgres
		cfg.DatabaseURL = uri
	default:
		return fmt.Errorf("unsupported store %q", uri)
	}
	return nil
}
