package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/chanwit-s/ticketfair/internal/models"
)

type BookingRepository interface {
	// Create inserts the booking inside the caller's transaction so the row
	// commits atomically with the event counter update.
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	FindAll(ctx context.Context, eventID *uint) ([]models.Booking, error)
	// CountSince counts committed bookings for an event with a timestamp at
	// or after since — the demand-velocity signal.
	CountSince(ctx context.Context, tx *gorm.DB, eventID uint, since time.Time) (int64, error)
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindAll(ctx context.Context, eventID *uint) ([]models.Booking, error) {
	var bookings []models.Booking
	q := r.db.WithContext(ctx)
	if eventID != nil {
		q = q.Where("event_id = ?", *eventID)
	}
	if err := q.Order("id ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) CountSince(ctx context.Context, tx *gorm.DB, eventID uint, since time.Time) (int64, error) {
	if tx == nil {
		tx = r.db
	}
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("event_id = ? AND booking_timestamp >= ?", eventID, since).
		Count(&count).Error
	return count, err
}
