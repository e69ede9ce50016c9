package crowdfund

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"fundflow/internal/domain"
)

const tracerName = "fundflow/internal/crowdfund"

// Service is the campaign lifecycle engine. Every operation runs as one
// atomic invocation of the state store; notifications are published only
// after that invocation commits.
type Service struct {
	state  domain.StateStore
	gate   Gate
	ids    Allocator
	events *Emitter
	logger zerolog.Logger
	tracer trace.Tracer
}

// Option customises a Service.
type Option func(*Service)

// WithEventSink publishes notifications to sink.
func WithEventSink(sink domain.EventSink) Option {
	return func(s *Service) { s.events.sink = sink }
}

// WithLogger sets the service logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
		s.events.logger = logger
	}
}

// WithClock overrides the time source used for event timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.events.nowFn = now }
}

// WithEventIDs overrides the event id generator.
func WithEventIDs(next func() string) Option {
	return func(s *Service) { s.events.idFn = next }
}

// WithTracerProvider records operation spans with tp instead of the global
// provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Service) { s.tracer = tp.Tracer(tracerName) }
}

// NewService wires the engine over a state store and the host authenticator.
func NewService(state domain.StateStore, auth Authenticator, opts ...Option) *Service {
	logger := zerolog.Nop()
	s := &Service{
		state:  state,
		gate:   NewGate(auth),
		events: NewEmitter(nil, logger),
		logger: logger,
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateCampaign registers a new active campaign owned by the caller and
// returns its id.
func (s *Service) CreateCampaign(ctx context.Context, title, description string, goal domain.Amount) (id domain.CampaignID, err error) {
	ctx, span := s.tracer.Start(ctx, "crowdfund.CreateCampaign")
	defer func() { endSpan(span, err) }()

	if !goal.Positive() {
		return 0, domain.ErrInvalidAmount
	}
	owner, err := s.gate.Authenticate(ctx)
	if err != nil {
		return 0, err
	}

	batch := s.events.Begin()
	err = s.state.Atomically(ctx, func(tx domain.StateTx) error {
		next, err := s.ids.NextID(ctx, tx)
		if err != nil {
			return err
		}
		store := NewCampaignStore(tx)
		campaign := domain.Campaign{
			ID:          next,
			Title:       title,
			Description: description,
			Goal:        goal,
			Raised:      0,
			Owner:       owner,
			IsActive:    true,
		}
		if err := store.Put(ctx, campaign); err != nil {
			return err
		}
		if err := store.AppendID(ctx, next); err != nil {
			return err
		}
		batch.CampaignCreated(owner, next, goal)
		id = next
		return nil
	})
	if err != nil {
		return 0, err
	}

	span.SetAttributes(attribute.Int64("campaign.id", int64(id)))
	s.logger.Info().Uint32("campaign_id", uint32(id)).Str("owner", string(owner)).Int64("goal", int64(goal)).Msg("campaign created")
	s.events.Flush(ctx, batch)
	return id, nil
}

// Donate adds amount to an active campaign's raised total and returns the new
// total. The caller is recorded as the donor.
func (s *Service) Donate(ctx context.Context, campaignID domain.CampaignID, amount domain.Amount) (raised domain.Amount, err error) {
	ctx, span := s.tracer.Start(ctx, "crowdfund.Donate", trace.WithAttributes(attribute.Int64("campaign.id", int64(campaignID))))
	defer func() { endSpan(span, err) }()

	if !amount.Positive() {
		return 0, domain.ErrInvalidAmount
	}
	donor, err := s.gate.Authenticate(ctx)
	if err != nil {
		return 0, err
	}

	batch := s.events.Begin()
	err = s.state.Atomically(ctx, func(tx domain.StateTx) error {
		store := NewCampaignStore(tx)
		campaign, err := store.Get(ctx, campaignID)
		if err != nil {
			return err
		}
		if !campaign.IsActive {
			return domain.ErrCampaignClosed
		}
		total, err := campaign.Raised.CheckedAdd(amount)
		if err != nil {
			return err
		}
		campaign.Raised = total
		if err := store.Put(ctx, campaign); err != nil {
			return err
		}
		batch.DonationMade(donor, campaignID, amount, total)
		raised = total
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info().Uint32("campaign_id", uint32(campaignID)).Str("donor", string(donor)).Int64("amount", int64(amount)).Int64("raised", int64(raised)).Msg("donation recorded")
	s.events.Flush(ctx, batch)
	return raised, nil
}

// GetCampaign returns the stored record. No authorization is required.
func (s *Service) GetCampaign(ctx context.Context, campaignID domain.CampaignID) (campaign domain.Campaign, err error) {
	ctx, span := s.tracer.Start(ctx, "crowdfund.GetCampaign", trace.WithAttributes(attribute.Int64("campaign.id", int64(campaignID))))
	defer func() { endSpan(span, err) }()

	err = s.state.Atomically(ctx, func(tx domain.StateTx) error {
		c, err := NewCampaignStore(tx).Get(ctx, campaignID)
		if err != nil {
			return err
		}
		campaign = c
		return nil
	})
	if err != nil {
		return domain.Campaign{}, err
	}
	return campaign, nil
}

// ListCampaigns returns every campaign id in creation order.
func (s *Service) ListCampaigns(ctx context.Context) (ids []domain.CampaignID, err error) {
	ctx, span := s.tracer.Start(ctx, "crowdfund.ListCampaigns")
	defer func() { endSpan(span, err) }()

	err = s.state.Atomically(ctx, func(tx domain.StateTx) error {
		list, err := NewCampaignStore(tx).ListIDs(ctx)
		if err != nil {
			return err
		}
		ids = list
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// ListCampaignDetails returns every campaign record in creation order, read
// in a single invocation.
func (s *Service) ListCampaignDetails(ctx context.Context) (campaigns []domain.Campaign, err error) {
	ctx, span := s.tracer.Start(ctx, "crowdfund.ListCampaignDetails")
	defer func() { endSpan(span, err) }()

	err = s.state.Atomically(ctx, func(tx domain.StateTx) error {
		campaigns, err = NewCampaignStore(tx).All(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return campaigns, nil
}

// Stats summarizes every campaign in a single read invocation.
func (s *Service) Stats(ctx context.Context) (stats domain.Stats, err error) {
	ctx, span := s.tracer.Start(ctx, "crowdfund.Stats")
	defer func() { endSpan(span, err) }()

	err = s.state.Atomically(ctx, func(tx domain.StateTx) error {
		campaigns, err := NewCampaignStore(tx).All(ctx)
		if err != nil {
			return err
		}
		stats, err = domain.Summarize(campaigns)
		return err
	})
	if err != nil {
		return domain.Stats{}, err
	}
	return stats, nil
}

// CloseCampaign moves a campaign owned by the caller to the closed state.
// Closing a campaign that is already closed succeeds without any effect.
func (s *Service) CloseCampaign(ctx context.Context, campaignID domain.CampaignID) (err error) {
	ctx, span := s.tracer.Start(ctx, "crowdfund.CloseCampaign", trace.WithAttributes(attribute.Int64("campaign.id", int64(campaignID))))
	defer func() { endSpan(span, err) }()

	if _, err := s.gate.Authenticate(ctx); err != nil {
		return err
	}

	batch := s.events.Begin()
	closed := false
	err = s.state.Atomically(ctx, func(tx domain.StateTx) error {
		store := NewCampaignStore(tx)
		campaign, err := store.Get(ctx, campaignID)
		if err != nil {
			return err
		}
		if err := s.gate.RequireCallerIs(ctx, campaign.Owner); err != nil {
			return err
		}
		if !campaign.IsActive {
			return nil
		}
		campaign.IsActive = false
		if err := store.Put(ctx, campaign); err != nil {
			return err
		}
		batch.CampaignClosed(campaignID)
		closed = true
		return nil
	})
	if err != nil {
		return err
	}

	if closed {
		s.logger.Info().Uint32("campaign_id", uint32(campaignID)).Msg("campaign closed")
	}
	s.events.Flush(ctx, batch)
	return nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
