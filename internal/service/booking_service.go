package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"gorm.io/gorm"

	"github.com/chanwit-s/ticketfair/internal/models"
	"github.com/chanwit-s/ticketfair/internal/pricing"
	"github.com/chanwit-s/ticketfair/internal/repository"
	"github.com/chanwit-s/ticketfair/internal/store"
	"github.com/chanwit-s/ticketfair/pkg/rabbitmq"
)

var (
	ErrInvalidEmail          = errors.New("valid email is required")
	ErrInvalidQuantity       = errors.New("quantity must be greater than 0")
	ErrEventNotFound         = errors.New("event not found")
	ErrInsufficientInventory = errors.New("not enough tickets available")
	// ErrStoreFailure wraps unexpected store errors. The whole operation is
	// safe to retry: nothing was persisted.
	ErrStoreFailure = errors.New("booking could not be committed")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Receipt is the committed result of a booking attempt, carrying the price
// actually charged per ticket.
type Receipt struct {
	BookingID        uint      `json:"booking_id"`
	EventID          uint      `json:"event_id"`
	Quantity         int       `json:"quantity"`
	PricePerTicket   float64   `json:"price_per_ticket"`
	TotalPrice       float64   `json:"total_price"`
	BookingTimestamp time.Time `json:"booking_timestamp"`
}

type BookingService interface {
	CreateBooking(ctx context.Context, eventID uint, userEmail string, quantity int) (*Receipt, error)
	ListBookings(ctx context.Context, eventID *uint) ([]models.Booking, error)
}

type bookingService struct {
	store       store.Store
	bookingRepo repository.BookingRepository
	eventRepo   repository.EventRepository
	engine      *pricing.Engine
	publisher   *rabbitmq.Publisher
}

func NewBookingService(
	st store.Store,
	bookingRepo repository.BookingRepository,
	eventRepo repository.EventRepository,
	engine *pricing.Engine,
	publisher *rabbitmq.Publisher,
) BookingService {
	return &bookingService{
		store:       st,
		bookingRepo: bookingRepo,
		eventRepo:   eventRepo,
		engine:      engine,
		publisher:   publisher,
	}
}

// CreateBooking reserves quantity tickets and charges the price valid at
// commit time. Availability check, price computation, booking insert and
// counter update all happen inside one transaction holding the event's row
// lock, so concurrent attempts for the same event serialize and the counter
// can never exceed capacity. There are no internal retries; a rejected or
// failed attempt persists nothing.
func (s *bookingService) CreateBooking(ctx context.Context, eventID uint, userEmail string, quantity int) (*Receipt, error) {
	if !emailPattern.MatchString(userEmail) {
		return nil, ErrInvalidEmail
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	var receipt *Receipt

	err := s.store.WithEventLock(ctx, eventID, func(tx *gorm.DB, event *models.Event) error {
		if event.Available() < quantity {
			return ErrInsufficientInventory
		}

		now := time.Now()
		velocity, err := s.bookingRepo.CountSince(ctx, tx, eventID, now.Add(-pricing.VelocityWindow))
		if err != nil {
			return err
		}

		quote := s.engine.Compute(event, int(velocity), now)

		booking := &models.Booking{
			EventID:          eventID,
			UserEmail:        userEmail,
			Quantity:         quantity,
			PricePaid:        quote.CurrentPrice,
			BookingTimestamp: now,
		}
		if err := s.bookingRepo.Create(ctx, tx, booking); err != nil {
			return err
		}
		if err := s.eventRepo.AddBooked(ctx, tx, eventID, quantity); err != nil {
			return err
		}

		receipt = &Receipt{
			BookingID:        booking.ID,
			EventID:          eventID,
			Quantity:         quantity,
			PricePerTicket:   quote.CurrentPrice,
			TotalPrice:       quote.CurrentPrice * float64(quantity),
			BookingTimestamp: now,
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrEventNotFound
		case errors.Is(err, ErrInsufficientInventory):
			return nil, err
		default:
			return nil, fmt.Errorf("%w: %v", ErrStoreFailure, err)
		}
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("booking.created", receipt)
	}

	return receipt, nil
}

func (s *bookingService) ListBookings(ctx context.Context, eventID *uint) ([]models.Booking, error) {
	return s.bookingRepo.FindAll(ctx, eventID)
}
