package crowdfund

import (
	"context"
	"fmt"

	"fundflow/internal/domain"
)

// CampaignStore reads and writes campaign records and the id registry through
// the state of the current invocation.
type CampaignStore struct {
	tx domain.StateTx
}

// NewCampaignStore binds a store to one invocation.
func NewCampaignStore(tx domain.StateTx) CampaignStore {
	return CampaignStore{tx: tx}
}

// Get loads a campaign, returning domain.ErrNotFound when no record exists.
func (s CampaignStore) Get(ctx context.Context, id domain.CampaignID) (domain.Campaign, error) {
	var c domain.Campaign
	ok, err := s.tx.Get(ctx, domain.CampaignKey(id), &c)
	if err != nil {
		return domain.Campaign{}, fmt.Errorf("read campaign %d: %w", id, err)
	}
	if !ok {
		return domain.Campaign{}, domain.ErrNotFound
	}
	return c, nil
}

// Put upserts the record keyed by c.ID.
func (s CampaignStore) Put(ctx context.Context, c domain.Campaign) error {
	if err := s.tx.Set(ctx, domain.CampaignKey(c.ID), c); err != nil {
		return fmt.Errorf("write campaign %d: %w", c.ID, err)
	}
	return nil
}

// ListIDs returns every id ever created, in creation order. An unset registry
// is empty.
func (s CampaignStore) ListIDs(ctx context.Context) ([]domain.CampaignID, error) {
	var ids []domain.CampaignID
	if _, err := s.tx.Get(ctx, domain.CampaignIDsKey, &ids); err != nil {
		return nil, fmt.Errorf("read campaign ids: %w", err)
	}
	if ids == nil {
		ids = []domain.CampaignID{}
	}
	return ids, nil
}

// AppendID adds id to the end of the registry.
func (s CampaignStore) AppendID(ctx context.Context, id domain.CampaignID) error {
	ids, err := s.ListIDs(ctx)
	if err != nil {
		return err
	}
	ids = append(ids, id)
	if err := s.tx.Set(ctx, domain.CampaignIDsKey, ids); err != nil {
		return fmt.Errorf("write campaign ids: %w", err)
	}
	return nil
}

// All loads every registered campaign in creation order.
func (s CampaignStore) All(ctx context.Context) ([]domain.Campaign, error) {
	ids, err := s.ListIDs(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Campaign, 0, len(ids))
	for _, id := range ids {
		c, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
