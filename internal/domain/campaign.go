package domain

// CampaignID identifies a campaign. Ids start at 1 and are never reused.
type CampaignID uint32

// Amount is a signed quantity of the campaign's unit of account.
type Amount int64

// Address is the identity of a principal, as proven by the execution host.
type Address string

// CampaignState enumerates lifecycle states.
type CampaignState string

const (
	CampaignStateActive CampaignState = "active"
	CampaignStateClosed CampaignState = "closed"
)

// Campaign is a fundraising record tracked by the ledger.
type Campaign struct {
	ID          CampaignID `json:"campaign_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Goal        Amount     `json:"goal"`
	Raised      Amount     `json:"raised"`
	Owner       Address    `json:"owner"`
	IsActive    bool       `json:"is_active"`
}

// State reports the lifecycle state derived from IsActive.
func (c Campaign) State() CampaignState {
	if c.IsActive {
		return CampaignStateActive
	}
	return CampaignStateClosed
}

// ProgressPercent returns how much of the goal has been raised, capped at 100.
func (c Campaign) ProgressPercent() int {
	if c.Goal <= 0 || c.Raised <= 0 {
		return 0
	}
	if c.Raised >= c.Goal {
		return 100
	}
	// Raised < Goal here, so Raised*100 only overflows for goals above MaxInt64/100.
	if c.Raised > maxAmount/100 {
		return int(c.Raised / (c.Goal / 100))
	}
	return int(c.Raised * 100 / c.Goal)
}
