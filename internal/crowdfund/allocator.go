package crowdfund

import (
	"context"
	"fmt"
	"math"

	"fundflow/internal/domain"
)

// Allocator hands out campaign ids from the persisted Last-Id Counter.
type Allocator struct{}

// NextID advances the counter inside tx and returns the new value. An unset
// counter reads as zero, so the first id is 1.
func (Allocator) NextID(ctx context.Context, tx domain.StateTx) (domain.CampaignID, error) {
	var last domain.CampaignID
	if _, err := tx.Get(ctx, domain.LastCampaignIDKey, &last); err != nil {
		return 0, fmt.Errorf("read last campaign id: %w", err)
	}
	if last == math.MaxUint32 {
		return 0, fmt.Errorf("allocate campaign id: %w", domain.ErrArithmeticOverflow)
	}
	next := last + 1
	if err := tx.Set(ctx, domain.LastCampaignIDKey, next); err != nil {
		return 0, fmt.Errorf("write last campaign id: %w", err)
	}
	return next, nil
}
