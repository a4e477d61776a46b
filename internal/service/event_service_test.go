package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/chanwit-s/ticketfair/internal/models"
	"github.com/chanwit-s/ticketfair/internal/pricing"
)

func defaultRules() models.PricingRules {
	return models.PricingRules{
		TimeBased: models.TimeRule{Enabled: true, Weight: 0.4},
		DemandBased: models.DemandRule{
			Enabled: true, Weight: 0.35, VelocityThreshold: 10, IncreasePercent: 15,
		},
		InventoryBased: models.InventoryRule{
			Enabled: true, Weight: 0.25, LowInventoryThreshold: 0.2, IncreasePercent: 25,
		},
	}
}

func newTestEventService(eventRepo *mockEventRepo, bookingRepo *mockBookingRepo) EventService {
	return NewEventService(eventRepo, bookingRepo, pricing.NewEngine(), defaultRules(), nil)
}

func TestCreateEvent_AppliesDefaultRules(t *testing.T) {
	eventRepo := &mockEventRepo{
		createFn: func(ctx context.Context, event *models.Event) error {
			event.ID = 1
			return nil
		},
	}
	svc := newTestEventService(eventRepo, &mockBookingRepo{})

	event := &models.Event{
		Name:         "Summer Music Festival",
		Date:         time.Now().AddDate(0, 0, 45),
		Venue:        "Central Park",
		TotalTickets: 5000,
		BasePrice:    75,
		FloorPrice:   50,
		CeilingPrice: 150,
	}

	err := svc.CreateEvent(context.Background(), event)

	require.NoError(t, err)
	assert.Equal(t, uint(1), event.ID)
	assert.Equal(t, 0, event.BookedTickets)
	assert.Equal(t, 75.0, event.CurrentPrice)
	assert.Equal(t, defaultRules(), event.PricingRules)
}

func TestCreateEvent_KeepsExplicitRules(t *testing.T) {
	svc := newTestEventService(&mockEventRepo{}, &mockBookingRepo{})

	rules := defaultRules()
	rules.TimeBased.Weight = 0.9
	rules.DemandBased.Enabled = false

	event := &models.Event{
		Name:         "Custom Rules",
		Date:         time.Now().AddDate(0, 1, 0),
		TotalTickets: 100,
		BasePrice:    20,
		FloorPrice:   10,
		CeilingPrice: 40,
		PricingRules: rules,
	}

	require.NoError(t, svc.CreateEvent(context.Background(), event))
	assert.Equal(t, rules, event.PricingRules)
}

func TestCreateEvent_InvalidCapacity(t *testing.T) {
	svc := newTestEventService(&mockEventRepo{}, &mockBookingRepo{})

	err := svc.CreateEvent(context.Background(), &models.Event{
		Name: "No Seats", TotalTickets: 0, BasePrice: 10, FloorPrice: 5, CeilingPrice: 20,
	})

	assert.ErrorIs(t, err, ErrInvalidCapacity)
}

func TestCreateEvent_InvalidPriceBand(t *testing.T) {
	svc := newTestEventService(&mockEventRepo{}, &mockBookingRepo{})

	tests := []struct {
		name                  string
		floor, base, ceiling  float64
	}{
		{"floor above base", 60, 50, 100},
		{"base above ceiling", 10, 120, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.CreateEvent(context.Background(), &models.Event{
				Name: "Bad Band", TotalTickets: 10,
				BasePrice: tt.base, FloorPrice: tt.floor, CeilingPrice: tt.ceiling,
			})
			assert.ErrorIs(t, err, ErrInvalidPriceBand)
		})
	}
}

func TestCreateEvent_RepoError(t *testing.T) {
	eventRepo := &mockEventRepo{
		createFn: func(ctx context.Context, event *models.Event) error {
			return errors.New("db connection failed")
		},
	}
	svc := newTestEventService(eventRepo, &mockBookingRepo{})

	err := svc.CreateEvent(context.Background(), &models.Event{
		Name: "Broken", TotalTickets: 10, BasePrice: 10, FloorPrice: 5, CeilingPrice: 20,
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "db connection failed")
}

func TestGetEvent_ReturnsFreshQuote(t *testing.T) {
	stored := sampleEvent()
	stored.CurrentPrice = 999 // stale cache
	eventRepo := &mockEventRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Event, error) {
			return stored, nil
		},
	}
	svc := newTestEventService(eventRepo, &mockBookingRepo{})

	event, quote, err := svc.GetEvent(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, stored.Name, event.Name)
	// All rules disabled on sampleEvent: fresh quote is the base price, not
	// the cached column.
	assert.Equal(t, 50.0, quote.CurrentPrice)
}

func TestGetEvent_NotFound(t *testing.T) {
	eventRepo := &mockEventRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Event, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := newTestEventService(eventRepo, &mockBookingRepo{})

	_, _, err := svc.GetEvent(context.Background(), 999)

	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestListEvents_RefreshesCurrentPrice(t *testing.T) {
	a := sampleEvent()
	a.CurrentPrice = 999
	b := sampleEvent()
	b.ID = 2
	b.BasePrice = 80
	b.CurrentPrice = 1

	eventRepo := &mockEventRepo{
		findAllFn: func(ctx context.Context) ([]models.Event, error) {
			return []models.Event{*a, *b}, nil
		},
	}
	svc := newTestEventService(eventRepo, &mockBookingRepo{})

	events, err := svc.ListEvents(context.Background())

	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, 50.0, events[0].CurrentPrice)
	assert.Equal(t, 80.0, events[1].CurrentPrice)
}

func TestQuote_NotFound(t *testing.T) {
	eventRepo := &mockEventRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Event, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := newTestEventService(eventRepo, &mockBookingRepo{})

	_, err := svc.Quote(context.Background(), 42)

	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestQuote_UsesVelocity(t *testing.T) {
	event := sampleEvent()
	event.PricingRules.DemandBased.Enabled = true
	eventRepo := &mockEventRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Event, error) {
			return event, nil
		},
	}
	svc := newTestEventService(eventRepo, &mockBookingRepo{velocity: 20})

	quote, err := svc.Quote(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 52.63, quote.CurrentPrice)
	require.Len(t, quote.Adjustments, 1)
	assert.Equal(t, pricing.RuleDemandBased, quote.Adjustments[0].Rule)
}
