package dto

import (
	"time"

	"github.com/chanwit-s/ticketfair/internal/models"
)

type CreateBookingRequest struct {
	EventID   uint   `json:"eventId"`
	UserEmail string `json:"userEmail"`
	Quantity  int    `json:"quantity"`
}

// CreateEventRequest carries everything needed to open sales for an event.
// PricingRules may be omitted; the service then applies the configured
// defaults at creation time.
type CreateEventRequest struct {
	Name         string               `json:"name"`
	Date         time.Time            `json:"date"`
	Venue        string               `json:"venue"`
	Description  string               `json:"description"`
	TotalTickets int                  `json:"totalTickets"`
	BasePrice    float64              `json:"basePrice"`
	FloorPrice   float64              `json:"floorPrice"`
	CeilingPrice float64              `json:"ceilingPrice"`
	PricingRules *models.PricingRules `json:"pricingRules,omitempty"`
}

func (r *CreateEventRequest) ToModel() *models.Event {
	event := &models.Event{
		Name:         r.Name,
		Date:         r.Date,
		Venue:        r.Venue,
		Description:  r.Description,
		TotalTickets: r.TotalTickets,
		BasePrice:    r.BasePrice,
		FloorPrice:   r.FloorPrice,
		CeilingPrice: r.CeilingPrice,
	}
	if r.PricingRules != nil {
		event.PricingRules = *r.PricingRules
	}
	return event
}
