package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/chanwit-s/ticketfair/internal/models"
	"github.com/chanwit-s/ticketfair/internal/pricing"
	"github.com/chanwit-s/ticketfair/internal/repository"
	"github.com/chanwit-s/ticketfair/pkg/rabbitmq"
)

var (
	ErrInvalidCapacity  = errors.New("total_tickets must be greater than 0")
	ErrInvalidPriceBand = errors.New("prices must satisfy floor <= base <= ceiling")
)

type EventService interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	GetEvent(ctx context.Context, id uint) (*models.Event, *pricing.Quote, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	// Quote recomputes the live price for an event. The result is advisory:
	// the price actually charged is recomputed under the event lock at
	// booking commit.
	Quote(ctx context.Context, eventID uint) (*pricing.Quote, error)
}

type eventService struct {
	eventRepo    repository.EventRepository
	bookingRepo  repository.BookingRepository
	engine       *pricing.Engine
	defaultRules models.PricingRules
	publisher    *rabbitmq.Publisher
}

func NewEventService(
	eventRepo repository.EventRepository,
	bookingRepo repository.BookingRepository,
	engine *pricing.Engine,
	defaultRules models.PricingRules,
	publisher *rabbitmq.Publisher,
) EventService {
	return &eventService{
		eventRepo:    eventRepo,
		bookingRepo:  bookingRepo,
		engine:       engine,
		defaultRules: defaultRules,
		publisher:    publisher,
	}
}

// CreateEvent stores a new event with zero bookings. Pricing rules are
// resolved here, once: an event keeps the rule weights it was created with
// even if the configured defaults change later.
func (s *eventService) CreateEvent(ctx context.Context, event *models.Event) error {
	if event.TotalTickets <= 0 {
		return ErrInvalidCapacity
	}
	if event.FloorPrice > event.BasePrice || event.BasePrice > event.CeilingPrice {
		return ErrInvalidPriceBand
	}

	event.BookedTickets = 0
	event.CurrentPrice = event.BasePrice
	if event.PricingRules == (models.PricingRules{}) {
		event.PricingRules = s.defaultRules
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("event.created", event)
	}

	return nil
}

func (s *eventService) GetEvent(ctx context.Context, id uint) (*models.Event, *pricing.Quote, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrEventNotFound
		}
		return nil, nil, err
	}

	quote, err := s.quoteFor(ctx, event)
	if err != nil {
		return nil, nil, err
	}
	return event, quote, nil
}

// ListEvents returns all events with CurrentPrice refreshed to the live
// computed price. The stored column stays untouched; it is a cache, not the
// price of record.
func (s *eventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	events, err := s.eventRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range events {
		quote, err := s.quoteFor(ctx, &events[i])
		if err != nil {
			return nil, err
		}
		events[i].CurrentPrice = quote.CurrentPrice
	}
	return events, nil
}

func (s *eventService) Quote(ctx context.Context, eventID uint) (*pricing.Quote, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return s.quoteFor(ctx, event)
}

func (s *eventService) quoteFor(ctx context.Context, event *models.Event) (*pricing.Quote, error) {
	now := time.Now()
	velocity, err := s.bookingRepo.CountSince(ctx, nil, event.ID, now.Add(-pricing.VelocityWindow))
	if err != nil {
		return nil, err
	}
	quote := s.engine.Compute(event, int(velocity), now)
	return &quote, nil
}
