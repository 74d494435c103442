package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Tables maps the logical collections onto DynamoDB table names. Defaults
// match the collection names, which are the wire contract shared with the
// dashboard and the seeding tooling.
type Tables struct {
	Users              string
	Products           string
	Reviews            string
	Orders             string
	Carts              string
	Wishlists          string
	Categories         string
	SellerApplications string
}

// Config carries everything the gateway and the trigger binaries read from
// the environment.
type Config struct {
	Port   string
	Tables Tables

	// Queue feeding the account cleanup trigger.
	AccountEventsQueueURL string

	// Optional: when set, the stock trigger records a processed marker per
	// order and skips redeliveries. Leave empty for the original
	// fire-and-forget behavior.
	OrderDedupeTable string
	DedupeTTL        time.Duration
}

// Load reads configuration from the environment, optionally loading a .env
// file first. A missing .env is not an error; Lambda deployments configure
// everything through function environment variables.
func Load(envFile string) *Config {
	if envFile != "" {
		_ = godotenv.Load(envFile)
	}

	cfg := &Config{
		Port: getenv("PORT", "8080"),
		Tables: Tables{
			Users:              getenv("USERS_TABLE", "users"),
			Products:           getenv("PRODUCTS_TABLE", "products"),
			Reviews:            getenv("REVIEWS_TABLE", "reviews"),
			Orders:             getenv("ORDERS_TABLE", "orders"),
			Carts:              getenv("CARTS_TABLE", "carts"),
			Wishlists:          getenv("WISHLISTS_TABLE", "wishlists"),
			Categories:         getenv("CATEGORIES_TABLE", "categories"),
			SellerApplications: getenv("SELLER_APPLICATIONS_TABLE", "seller_applications"),
		},
		AccountEventsQueueURL: os.Getenv("ACCOUNT_EVENTS_QUEUE_URL"),
		OrderDedupeTable:      os.Getenv("ORDER_DEDUPE_TABLE"),
		DedupeTTL:             48 * time.Hour,
	}

	if raw := os.Getenv("DEDUPE_TTL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			cfg.DedupeTTL = d
		}
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
