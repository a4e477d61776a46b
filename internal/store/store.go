// Package store provides the per-event exclusive-access primitive the
// booking coordinator relies on. Exclusivity is scoped to one event row, so
// bookings against different events never block each other.
package store

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/chanwit-s/ticketfair/internal/models"
)

// Store runs fn with serializable, exclusive access to one event. All writes
// performed inside fn commit or roll back atomically with the lock release.
type Store interface {
	WithEventLock(ctx context.Context, eventID uint, fn func(tx *gorm.DB, event *models.Event) error) error
}

type gormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// WithEventLock opens a transaction and reads the event row FOR UPDATE.
// The row lock is the serialization point: a concurrent booking for the same
// event blocks here until this transaction commits or rolls back, and then
// observes the updated counters. A missing event surfaces as
// gorm.ErrRecordNotFound.
func (s *gormStore) WithEventLock(ctx context.Context, eventID uint, fn func(tx *gorm.DB, event *models.Event) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&event, eventID).Error; err != nil {
			return err
		}
		return fn(tx, &event)
	})
}
