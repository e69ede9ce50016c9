// Package state provides domain.StateStore implementations: an in-memory
// store for tests and single-process use, PostgreSQL via pgx, and SQLite.
package state

import (
	"encoding/json"
	"fmt"

	"fundflow/internal/domain"
)

func encode(key domain.DataKey, value any) ([]byte, error) {
	b, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", key.StorageKey(), err)
	}
	return b, nil
}

func decode(key domain.DataKey, raw []byte, dest any) error {
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode %s: %w", key.StorageKey(), err)
	}
	return nil
}
