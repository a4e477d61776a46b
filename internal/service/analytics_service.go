package service

import (
	"context"
	"errors"
	"math"

	"gorm.io/gorm"

	"github.com/chanwit-s/ticketfair/internal/repository"
)

// EventAnalytics is the read-side sales summary for one event. Revenue is
// derived from committed bookings only.
type EventAnalytics struct {
	EventID        uint    `json:"event_id"`
	EventName      string  `json:"event_name"`
	TotalTickets   int     `json:"total_tickets"`
	TotalSold      int     `json:"total_sold"`
	Remaining      int     `json:"remaining"`
	SoldPercentage float64 `json:"sold_percentage"`
	TotalRevenue   float64 `json:"total_revenue"`
	AveragePrice   float64 `json:"average_price"`
	CurrentPrice   float64 `json:"current_price"`
	BasePrice      float64 `json:"base_price"`
}

type EventStat struct {
	EventID      uint    `json:"event_id"`
	EventName    string  `json:"event_name"`
	TicketsSold  int     `json:"tickets_sold"`
	Revenue      float64 `json:"revenue"`
	AveragePrice float64 `json:"avg_price"`
}

type SummaryAnalytics struct {
	TotalEvents         int         `json:"total_events"`
	TotalBookings       int         `json:"total_bookings"`
	TotalTicketsSold    int         `json:"total_tickets_sold"`
	TotalRevenue        float64     `json:"total_revenue"`
	AverageBookingPrice float64     `json:"average_booking_price"`
	Events              []EventStat `json:"events"`
}

type AnalyticsService interface {
	EventAnalytics(ctx context.Context, eventID uint) (*EventAnalytics, error)
	Summary(ctx context.Context) (*SummaryAnalytics, error)
}

type analyticsService struct {
	eventRepo   repository.EventRepository
	bookingRepo repository.BookingRepository
}

func NewAnalyticsService(eventRepo repository.EventRepository, bookingRepo repository.BookingRepository) AnalyticsService {
	return &analyticsService{eventRepo: eventRepo, bookingRepo: bookingRepo}
}

func (s *analyticsService) EventAnalytics(ctx context.Context, eventID uint) (*EventAnalytics, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	bookings, err := s.bookingRepo.FindAll(ctx, &eventID)
	if err != nil {
		return nil, err
	}

	var revenue float64
	for _, b := range bookings {
		revenue += b.PricePaid * float64(b.Quantity)
	}

	totalSold := event.BookedTickets
	averagePrice := 0.0
	if len(bookings) > 0 && totalSold > 0 {
		averagePrice = revenue / float64(totalSold)
	}

	return &EventAnalytics{
		EventID:        event.ID,
		EventName:      event.Name,
		TotalTickets:   event.TotalTickets,
		TotalSold:      totalSold,
		Remaining:      event.Available(),
		SoldPercentage: round2(float64(totalSold) / float64(event.TotalTickets) * 100),
		TotalRevenue:   round2(revenue),
		AveragePrice:   round2(averagePrice),
		CurrentPrice:   event.CurrentPrice,
		BasePrice:      event.BasePrice,
	}, nil
}

func (s *analyticsService) Summary(ctx context.Context) (*SummaryAnalytics, error) {
	events, err := s.eventRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookingRepo.FindAll(ctx, nil)
	if err != nil {
		return nil, err
	}

	var totalRevenue float64
	totalTicketsSold := 0
	revenueByEvent := make(map[uint]float64, len(events))
	for _, b := range bookings {
		amount := b.PricePaid * float64(b.Quantity)
		totalRevenue += amount
		totalTicketsSold += b.Quantity
		revenueByEvent[b.EventID] += amount
	}

	averageBookingPrice := 0.0
	if len(bookings) > 0 {
		averageBookingPrice = totalRevenue / float64(len(bookings))
	}

	stats := make([]EventStat, len(events))
	for i, e := range events {
		avg := 0.0
		if e.BookedTickets > 0 {
			avg = revenueByEvent[e.ID] / float64(e.BookedTickets)
		}
		stats[i] = EventStat{
			EventID:      e.ID,
			EventName:    e.Name,
			TicketsSold:  e.BookedTickets,
			Revenue:      round2(revenueByEvent[e.ID]),
			AveragePrice: round2(avg),
		}
	}

	return &SummaryAnalytics{
		TotalEvents:         len(events),
		TotalBookings:       len(bookings),
		TotalTicketsSold:    totalTicketsSold,
		TotalRevenue:        round2(totalRevenue),
		AverageBookingPrice: round2(averageBookingPrice),
		Events:              stats,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
