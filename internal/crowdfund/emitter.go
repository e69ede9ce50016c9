package crowdfund

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"fundflow/internal/domain"
)

// Emitter publishes notifications for committed transitions. Events are
// collected in a Batch while an invocation runs and handed to the sink by
// Flush once the state store has committed.
type Emitter struct {
	sink   domain.EventSink
	logger zerolog.Logger
	nowFn  func() time.Time
	idFn   func() string
}

// NewEmitter builds an emitter over sink. A nil sink drops every event.
func NewEmitter(sink domain.EventSink, logger zerolog.Logger) *Emitter {
	return &Emitter{
		sink:   sink,
		logger: logger,
		nowFn:  func() time.Time { return time.Now().UTC() },
		idFn:   uuid.NewString,
	}
}

// Batch holds the events of one invocation, in emission order.
type Batch struct {
	emitter *Emitter
	events  []domain.Event
}

// Begin starts an empty batch.
func (e *Emitter) Begin() *Batch {
	return &Batch{emitter: e}
}

// Events returns the buffered events.
func (b *Batch) Events() []domain.Event {
	return b.events
}

func (b *Batch) add(ev domain.Event) {
	ev.ID = b.emitter.idFn()
	ev.OccurredAt = b.emitter.nowFn()
	b.events = append(b.events, ev)
}

func (b *Batch) CampaignCreated(owner domain.Address, id domain.CampaignID, goal domain.Amount) {
	b.add(domain.Event{Name: domain.EventCampaignCreated, CampaignID: id, Owner: owner, Goal: goal})
}

func (b *Batch) DonationMade(donor domain.Address, id domain.CampaignID, amount, newRaised domain.Amount) {
	b.add(domain.Event{Name: domain.EventDonationMade, CampaignID: id, Donor: donor, Amount: amount, NewRaised: newRaised})
}

func (b *Batch) CampaignClosed(id domain.CampaignID) {
	b.add(domain.Event{Name: domain.EventCampaignClosed, CampaignID: id})
}

// publishTimeout bounds delivery of one batch once it is detached from the
// caller's cancellation.
const publishTimeout = 5 * time.Second

// Flush publishes the batch in order. The batch describes committed state,
// so delivery ignores cancellation of ctx and is bounded by publishTimeout
// instead. Failures are logged and never reported to the caller.
func (e *Emitter) Flush(ctx context.Context, b *Batch) {
	if e.sink == nil || b == nil || len(b.events) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	for _, ev := range b.events {
		payload, err := json.Marshal(ev)
		if err != nil {
			e.logger.Error().Err(err).Str("event", string(ev.Name)).Msg("encode event")
			continue
		}
		if err := e.sink.Publish(ctx, string(ev.Name), payload); err != nil {
			e.logger.Error().Err(err).
				Str("event", string(ev.Name)).
				Uint32("campaign_id", uint32(ev.CampaignID)).
				Msg("publish event failed")
		}
	}
}
