package models

import "time"

// TimeRule raises the price as the event date approaches. The bump is
// recomputed from the base price, not compounded onto earlier rules.
type TimeRule struct {
	Enabled bool    `json:"enabled"`
	Weight  float64 `json:"weight"`
}

// DemandRule raises the price when booking velocity (bookings in the
// trailing hour) exceeds VelocityThreshold.
type DemandRule struct {
	Enabled           bool    `json:"enabled"`
	Weight            float64 `json:"weight"`
	VelocityThreshold int     `json:"velocityThreshold"`
	IncreasePercent   float64 `json:"increasePercent"`
}

// InventoryRule raises the price once the remaining-ticket ratio drops
// to or below LowInventoryThreshold.
type InventoryRule struct {
	Enabled               bool    `json:"enabled"`
	Weight                float64 `json:"weight"`
	LowInventoryThreshold float64 `json:"lowInventoryThreshold"`
	IncreasePercent       float64 `json:"increasePercent"`
}

// PricingRules is resolved once at event creation and stored on the event
// row as JSON. It is never re-read from global configuration afterwards,
// so later config changes cannot drift prices of existing events.
type PricingRules struct {
	TimeBased      TimeRule      `json:"timeBased"`
	DemandBased    DemandRule    `json:"demandBased"`
	InventoryBased InventoryRule `json:"inventoryBased"`
}

type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	Venue       string    `gorm:"size:255;not null" json:"venue"`
	Description string    `gorm:"size:2000" json:"description"`

	TotalTickets  int `gorm:"not null" json:"total_tickets"`
	BookedTickets int `gorm:"not null;default:0" json:"booked_tickets"`

	BasePrice float64 `gorm:"type:decimal(10,2);not null" json:"base_price"`
	// CurrentPrice is a cached last-known value only; every booking
	// recomputes the price fresh under the event lock.
	CurrentPrice float64 `gorm:"type:decimal(10,2);not null" json:"current_price"`
	FloorPrice   float64 `gorm:"type:decimal(10,2);not null" json:"floor_price"`
	CeilingPrice float64 `gorm:"type:decimal(10,2);not null" json:"ceiling_price"`

	PricingRules PricingRules `gorm:"type:jsonb;serializer:json;not null" json:"pricing_rules"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Available is the number of tickets still sellable.
func (e *Event) Available() int {
	return e.TotalTickets - e.BookedTickets
}
