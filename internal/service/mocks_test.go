package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/chanwit-s/ticketfair/internal/models"
)

// --- Mock EventRepository ---

type mockEventRepo struct {
	createFn    func(ctx context.Context, event *models.Event) error
	findByIDFn  func(ctx context.Context, id uint) (*models.Event, error)
	findAllFn   func(ctx context.Context) ([]models.Event, error)
	addBookedFn func(ctx context.Context, tx *gorm.DB, eventID uint, quantity int) error

	addBookedCalls []int
}

func (m *mockEventRepo) Create(ctx context.Context, event *models.Event) error {
	if m.createFn != nil {
		return m.createFn(ctx, event)
	}
	return nil
}

func (m *mockEventRepo) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockEventRepo) FindAll(ctx context.Context) ([]models.Event, error) {
	return m.findAllFn(ctx)
}

func (m *mockEventRepo) AddBooked(ctx context.Context, tx *gorm.DB, eventID uint, quantity int) error {
	m.addBookedCalls = append(m.addBookedCalls, quantity)
	if m.addBookedFn != nil {
		return m.addBookedFn(ctx, tx, eventID, quantity)
	}
	return nil
}

// --- Mock BookingRepository ---

type mockBookingRepo struct {
	createFn  func(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	findAllFn func(ctx context.Context, eventID *uint) ([]models.Booking, error)
	velocity  int64

	created []*models.Booking
}

func (m *mockBookingRepo) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	if m.createFn != nil {
		if err := m.createFn(ctx, tx, booking); err != nil {
			return err
		}
	}
	booking.ID = uint(len(m.created) + 1)
	m.created = append(m.created, booking)
	return nil
}

func (m *mockBookingRepo) FindAll(ctx context.Context, eventID *uint) ([]models.Booking, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx, eventID)
	}
	return nil, nil
}

func (m *mockBookingRepo) CountSince(ctx context.Context, tx *gorm.DB, eventID uint, since time.Time) (int64, error) {
	return m.velocity, nil
}

// --- Fake Store ---

// fakeStore hands fn a copy of the configured event, standing in for the
// row-locked read. Unit tests exercise the coordinator logic; the real lock
// semantics are covered by the integration suite.
type fakeStore struct {
	event *models.Event
	err   error
}

func (f *fakeStore) WithEventLock(ctx context.Context, eventID uint, fn func(tx *gorm.DB, event *models.Event) error) error {
	if f.err != nil {
		return f.err
	}
	event := *f.event
	return fn(nil, &event)
}
