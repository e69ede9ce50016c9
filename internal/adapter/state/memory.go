package state

import (
	"context"
	"sync"

	"fundflow/internal/domain"
)

// Memory keeps ledger state in process memory. Writes made inside an
// invocation are staged and applied only when the invocation succeeds.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{data: map[string][]byte{}}
}

// Atomically runs fn with exclusive access to the store.
func (m *Memory) Atomically(ctx context.Context, fn func(tx domain.StateTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &memoryTx{base: m.data, staged: map[string][]byte{}}
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	for k, v := range tx.staged {
		m.data[k] = v
	}
	return nil
}

// Len reports the number of stored keys.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

type memoryTx struct {
	base   map[string][]byte
	staged map[string][]byte
}

func (t *memoryTx) Get(_ context.Context, key domain.DataKey, dest any) (bool, error) {
	k := key.StorageKey()
	raw, ok := t.staged[k]
	if !ok {
		raw, ok = t.base[k]
	}
	if !ok {
		return false, nil
	}
	if err := decode(key, raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (t *memoryTx) Set(_ context.Context, key domain.DataKey, value any) error {
	raw, err := encode(key, value)
	if err != nil {
		return err
	}
	t.staged[key.StorageKey()] = raw
	return nil
}

var _ domain.StateStore = (*Memory)(nil)
