package domain

import "time"

// EventName enumerates the notifications published after a committed transition.
type EventName string

const (
	EventCampaignCreated EventName = "CampaignCreated"
	EventDonationMade    EventName = "DonationMade"
	EventCampaignClosed  EventName = "CampaignClosed"
)

// Event is the envelope handed to an EventSink. Only the fields relevant to
// Name are populated.
type Event struct {
	ID         string     `json:"id"`
	Name       EventName  `json:"name"`
	CampaignID CampaignID `json:"campaign_id"`
	Owner      Address    `json:"owner,omitempty"`
	Donor      Address    `json:"donor,omitempty"`
	Goal       Amount     `json:"goal,omitempty"`
	Amount     Amount     `json:"amount,omitempty"`
	NewRaised  Amount     `json:"new_raised,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}
