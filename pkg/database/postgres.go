package database

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/chanwit-s/ticketfair/internal/models"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Event{}, &models.Booking{}); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// The velocity query scans by event and trailing window; keep it indexed.
	db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_event_timestamp
		ON bookings (event_id, booking_timestamp)
	`)

	return db
}

// Seed inserts sample events when the events table is empty. Dev-only,
// gated by SEED_DATA.
func Seed(db *gorm.DB) {
	var count int64
	db.Model(&models.Event{}).Count(&count)
	if count > 0 {
		return
	}

	defaultRules := models.PricingRules{
		TimeBased: models.TimeRule{Enabled: true, Weight: 0.4},
		DemandBased: models.DemandRule{
			Enabled: true, Weight: 0.35, VelocityThreshold: 10, IncreasePercent: 15,
		},
		InventoryBased: models.InventoryRule{
			Enabled: true, Weight: 0.25, LowInventoryThreshold: 0.2, IncreasePercent: 25,
		},
	}

	now := time.Now()
	events := []models.Event{
		{
			Name: "Summer Music Festival", Venue: "Central Park, New York",
			Description:  "A 3-day outdoor music festival featuring top artists from around the world.",
			Date:         now.AddDate(0, 0, 45),
			TotalTickets: 5000, BookedTickets: 1200,
			BasePrice: 75, CurrentPrice: 75, FloorPrice: 50, CeilingPrice: 150,
			PricingRules: defaultRules,
		},
		{
			Name: "Tech Conference", Venue: "Convention Center, San Francisco",
			Description:  "Annual technology conference with talks from industry leaders.",
			Date:         now.AddDate(0, 0, 20),
			TotalTickets: 2000, BookedTickets: 1450,
			BasePrice: 200, CurrentPrice: 210, FloorPrice: 150, CeilingPrice: 300,
			PricingRules: defaultRules,
		},
		{
			Name: "Rock Concert Tonight", Venue: "Madison Square Garden, New York",
			Description:  "Epic rock concert with multiple bands.",
			Date:         now.AddDate(0, 0, 1),
			TotalTickets: 15000, BookedTickets: 14700,
			BasePrice: 100, CurrentPrice: 135, FloorPrice: 80, CeilingPrice: 200,
			PricingRules: defaultRules,
		},
		{
			Name: "Comedy Show", Venue: "Comedy Club, Los Angeles",
			Description:  "Stand-up comedy night featuring renowned comedians.",
			Date:         now.AddDate(0, 0, 7),
			TotalTickets: 300, BookedTickets: 150,
			BasePrice: 40, CurrentPrice: 46, FloorPrice: 30, CeilingPrice: 80,
			PricingRules: defaultRules,
		},
	}

	for i := range events {
		if err := db.Create(&events[i]).Error; err != nil {
			log.Printf("[Seed] failed to insert %q: %v", events[i].Name, err)
		}
	}
	log.Printf("[Seed] inserted %d sample events", len(events))
}
