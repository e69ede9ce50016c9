package state

import (
	"context"
	"errors"
	"testing"

	"fundflow/internal/domain"
)

func TestMemoryCommitsOnSuccess(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	err := store.Atomically(ctx, func(tx domain.StateTx) error {
		if err := tx.Set(ctx, domain.LastCampaignIDKey, domain.CampaignID(7)); err != nil {
			return err
		}
		var got domain.CampaignID
		ok, err := tx.Get(ctx, domain.LastCampaignIDKey, &got)
		if err != nil {
			return err
		}
		if !ok || got != 7 {
			t.Fatalf("staged read = (%v, %d), want (true, 7)", ok, got)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Atomically() unexpected error: %v", err)
	}

	var got domain.CampaignID
	err = store.Atomically(ctx, func(tx domain.StateTx) error {
		_, err := tx.Get(ctx, domain.LastCampaignIDKey, &got)
		return err
	})
	if err != nil {
		t.Fatalf("Atomically() unexpected error: %v", err)
	}
	if got != 7 {
		t.Fatalf("committed value = %d, want 7", got)
	}
}

func TestMemoryDiscardsOnError(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	boom := errors.New("boom")

	err := store.Atomically(ctx, func(tx domain.StateTx) error {
		if err := tx.Set(ctx, domain.CampaignKey(1), domain.Campaign{ID: 1}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Atomically() error = %v, want %v", err, boom)
	}
	if store.Len() != 0 {
		t.Fatalf("store has %d keys after failed invocation, want 0", store.Len())
	}
}

func TestMemoryMissingKey(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	err := store.Atomically(ctx, func(tx domain.StateTx) error {
		var ids []domain.CampaignID
		ok, err := tx.Get(ctx, domain.CampaignIDsKey, &ids)
		if err != nil {
			return err
		}
		if ok || ids != nil {
			t.Fatalf("Get() on empty store = (%v, %v), want (false, nil)", ok, ids)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Atomically() unexpected error: %v", err)
	}
}

func TestMemoryRejectsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := NewMemory().Atomically(ctx, func(domain.StateTx) error {
		called = true
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Atomically() error = %v, want context.Canceled", err)
	}
	if called {
		t.Fatalf("fn ran with a cancelled context")
	}
}
