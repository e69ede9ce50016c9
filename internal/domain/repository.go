package domain

import "context"

// StateStore is the durable key-value store the ledger runs against.
// Atomically runs fn as one invocation: every Set inside fn becomes visible
// together when fn returns nil, and none of them does when fn returns an
// error. Implementations serialize invocations.
type StateStore interface {
	Atomically(ctx context.Context, fn func(tx StateTx) error) error
}

// StateTx is the view of the store inside one invocation.
type StateTx interface {
	// Get decodes the value under key into dest and reports whether it existed.
	Get(ctx context.Context, key DataKey, dest any) (bool, error)
	Set(ctx context.Context, key DataKey, value any) error
}

// EventSink delivers published notifications to external observers.
type EventSink interface {
	Publish(ctx context.Context, topic string, payload []byte) error
}
