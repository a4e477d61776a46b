package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/chanwit-s/ticketfair/internal/models"
)

type Config struct {
	ServerPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RabbitURL string
	APIKey    string
	SeedData  bool

	// Default rule weights applied to events created without explicit
	// pricing rules. Resolved once here; events keep the weights they were
	// created with.
	TimeWeight      float64
	DemandWeight    float64
	InventoryWeight float64
}

func Load() *Config {
	return &Config{
		ServerPort: getEnv("PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "ticketfair"),

		RabbitURL: getEnv("RABBITMQ_URL", ""),
		APIKey:    getEnv("API_KEY", "dev-api-key-2024"),
		SeedData:  getEnv("SEED_DATA", "false") == "true",

		TimeWeight:      getEnvFloat("PRICING_RULE_TIME_WEIGHT", 0.4),
		DemandWeight:    getEnvFloat("PRICING_RULE_DEMAND_WEIGHT", 0.35),
		InventoryWeight: getEnvFloat("PRICING_RULE_INVENTORY_WEIGHT", 0.25),
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

// DefaultPricingRules builds the rule block stamped onto new events when the
// creator does not supply one. Thresholds and increase percents match the
// product defaults; only the weights are configurable.
func (c *Config) DefaultPricingRules() models.PricingRules {
	return models.PricingRules{
		TimeBased: models.TimeRule{Enabled: true, Weight: c.TimeWeight},
		DemandBased: models.DemandRule{
			Enabled:           true,
			Weight:            c.DemandWeight,
			VelocityThreshold: 10,
			IncreasePercent:   15,
		},
		InventoryBased: models.InventoryRule{
			Enabled:               true,
			Weight:                c.InventoryWeight,
			LowInventoryThreshold: 0.2,
			IncreasePercent:       25,
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
