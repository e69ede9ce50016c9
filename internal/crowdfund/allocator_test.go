package crowdfund

import (
	"context"
	"errors"
	"math"
	"testing"

	"fundflow/internal/adapter/state"
	"fundflow/internal/domain"
)

func TestAllocatorStartsAtOneAndPersists(t *testing.T) {
	ctx := context.Background()
	store := state.NewMemory()
	var got []domain.CampaignID
	for i := 0; i < 3; i++ {
		err := store.Atomically(ctx, func(tx domain.StateTx) error {
			id, err := Allocator{}.NextID(ctx, tx)
			got = append(got, id)
			return err
		})
		if err != nil {
			t.Fatalf("NextID() unexpected error: %v", err)
		}
	}
	for i, id := range got {
		if id != domain.CampaignID(i+1) {
			t.Fatalf("NextID() sequence = %v, want [1 2 3]", got)
		}
	}
}

func TestAllocatorRollsBackWithInvocation(t *testing.T) {
	ctx := context.Background()
	store := state.NewMemory()
	boom := errors.New("boom")
	_ = store.Atomically(ctx, func(tx domain.StateTx) error {
		if _, err := (Allocator{}).NextID(ctx, tx); err != nil {
			return err
		}
		return boom
	})
	err := store.Atomically(ctx, func(tx domain.StateTx) error {
		id, err := Allocator{}.NextID(ctx, tx)
		if id != 1 {
			t.Fatalf("NextID() after aborted invocation = %d, want 1", id)
		}
		return err
	})
	if err != nil {
		t.Fatalf("NextID() unexpected error: %v", err)
	}
}

func TestAllocatorOverflow(t *testing.T) {
	ctx := context.Background()
	store := state.NewMemory()
	err := store.Atomically(ctx, func(tx domain.StateTx) error {
		if err := tx.Set(ctx, domain.LastCampaignIDKey, domain.CampaignID(math.MaxUint32)); err != nil {
			return err
		}
		_, err := Allocator{}.NextID(ctx, tx)
		return err
	})
	if !errors.Is(err, domain.ErrArithmeticOverflow) {
		t.Fatalf("NextID() error = %v, want ErrArithmeticOverflow", err)
	}
}
