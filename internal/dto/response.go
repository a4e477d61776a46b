package dto

import (
	"time"

	"github.com/chanwit-s/ticketfair/internal/models"
	"github.com/chanwit-s/ticketfair/internal/pricing"
	"github.com/chanwit-s/ticketfair/internal/service"
)

type ReceiptResponse struct {
	BookingID        uint      `json:"booking_id"`
	EventID          uint      `json:"event_id"`
	Quantity         int       `json:"quantity"`
	PricePerTicket   float64   `json:"price_per_ticket"`
	TotalPrice       float64   `json:"total_price"`
	BookingTimestamp time.Time `json:"booking_timestamp"`
}

type BookingResponse struct {
	ID               uint      `json:"id"`
	EventID          uint      `json:"event_id"`
	UserEmail        string    `json:"user_email"`
	Quantity         int       `json:"quantity"`
	PricePaid        float64   `json:"price_paid"`
	BookingTimestamp time.Time `json:"booking_timestamp"`
}

type EventResponse struct {
	ID               uint                 `json:"id"`
	Name             string               `json:"name"`
	Date             time.Time            `json:"date"`
	Venue            string               `json:"venue"`
	Description      string               `json:"description"`
	TotalTickets     int                  `json:"total_tickets"`
	BookedTickets    int                  `json:"booked_tickets"`
	AvailableTickets int                  `json:"available_tickets"`
	BasePrice        float64              `json:"base_price"`
	CurrentPrice     float64              `json:"current_price"`
	FloorPrice       float64              `json:"floor_price"`
	CeilingPrice     float64              `json:"ceiling_price"`
	PriceAdjustments []pricing.Adjustment `json:"price_adjustments,omitempty"`
}

type PriceResponse struct {
	EventID      uint                 `json:"event_id"`
	CurrentPrice float64              `json:"currentPrice"`
	BasePrice    float64              `json:"basePrice"`
	Adjustments  []pricing.Adjustment `json:"adjustments"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToReceiptResponse(r *service.Receipt) ReceiptResponse {
	return ReceiptResponse{
		BookingID:        r.BookingID,
		EventID:          r.EventID,
		Quantity:         r.Quantity,
		PricePerTicket:   r.PricePerTicket,
		TotalPrice:       r.TotalPrice,
		BookingTimestamp: r.BookingTimestamp,
	}
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:               b.ID,
		EventID:          b.EventID,
		UserEmail:        b.UserEmail,
		Quantity:         b.Quantity,
		PricePaid:        b.PricePaid,
		BookingTimestamp: b.BookingTimestamp,
	}
}

func ToEventResponse(e *models.Event, quote *pricing.Quote) EventResponse {
	resp := EventResponse{
		ID:               e.ID,
		Name:             e.Name,
		Date:             e.Date,
		Venue:            e.Venue,
		Description:      e.Description,
		TotalTickets:     e.TotalTickets,
		BookedTickets:    e.BookedTickets,
		AvailableTickets: e.Available(),
		BasePrice:        e.BasePrice,
		CurrentPrice:     e.CurrentPrice,
		FloorPrice:       e.FloorPrice,
		CeilingPrice:     e.CeilingPrice,
	}
	if quote != nil {
		resp.CurrentPrice = quote.CurrentPrice
		resp.PriceAdjustments = quote.Adjustments
	}
	return resp
}
