package models

import "time"

// Booking is one committed purchase. It is written in the same transaction
// that bumps the event's booked counter; a rejected attempt leaves no row.
type Booking struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	EventID   uint   `gorm:"not null;index" json:"event_id"`
	UserEmail string `gorm:"size:255;not null;index" json:"user_email"`
	Quantity  int    `gorm:"not null" json:"quantity"`
	// PricePaid is the per-ticket price computed at commit time, immutable.
	PricePaid        float64   `gorm:"type:decimal(10,2);not null" json:"price_paid"`
	BookingTimestamp time.Time `gorm:"not null;index" json:"booking_timestamp"`
	CreatedAt        time.Time `json:"created_at"`

	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}
