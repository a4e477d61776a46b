package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"

	"github.com/chanwit-s/ticketfair/config"
	"github.com/chanwit-s/ticketfair/internal/handler"
	"github.com/chanwit-s/ticketfair/internal/middleware"
	"github.com/chanwit-s/ticketfair/internal/pricing"
	"github.com/chanwit-s/ticketfair/internal/repository"
	"github.com/chanwit-s/ticketfair/internal/service"
	"github.com/chanwit-s/ticketfair/internal/store"
	"github.com/chanwit-s/ticketfair/pkg/database"
	"github.com/chanwit-s/ticketfair/pkg/rabbitmq"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("no .env file, using environment")
	}

	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())
	if cfg.SeedData {
		database.Seed(db)
	}

	// RabbitMQ is optional: without a broker URL the service runs standalone
	// and lifecycle messages are skipped.
	var publisher *rabbitmq.Publisher
	if cfg.RabbitURL != "" {
		var err error
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	}

	// Repositories and the per-event lock store
	eventRepo := repository.NewEventRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	txStore := store.NewGormStore(db)

	// Services
	engine := pricing.NewEngine()
	bookingSvc := service.NewBookingService(txStore, bookingRepo, eventRepo, engine, publisher)
	eventSvc := service.NewEventService(eventRepo, bookingRepo, engine, cfg.DefaultPricingRules(), publisher)
	analyticsSvc := service.NewAnalyticsService(eventRepo, bookingRepo)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	apiKeyAuth := echoMw.KeyAuthWithConfig(echoMw.KeyAuthConfig{
		KeyLookup: "header:x-api-key",
		Validator: func(key string, c echo.Context) (bool, error) {
			return key == cfg.APIKey, nil
		},
	})

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "ticketfair"})
	})

	handler.NewBookingHandler(bookingSvc).RegisterRoutes(e)
	handler.NewEventHandler(eventSvc).RegisterRoutes(e, apiKeyAuth)
	handler.NewAnalyticsHandler(analyticsSvc).RegisterRoutes(e)

	log.Printf("ticketfair starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
