package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the process reads from the environment.
// A .env file is honored in development; real deployments set vars
// directly.
type Config struct {
	Port      string `envconfig:"PORT" default:"8080"`
	AWSRegion string `envconfig:"AWS_REGION" default:"us-east-1"`

	MarketplaceBaseURL string `envconfig:"MARKETPLACE_BASE_URL" default:"https://www.pricecharting.com"`
	MarketplaceTimeout int    `envconfig:"MARKETPLACE_TIMEOUT_SECONDS" default:"15"`
	MarketplaceRetries int    `envconfig:"MARKETPLACE_RETRIES" default:"2"`

	SenderEmail string `envconfig:"SENDER_EMAIL" default:"notifications@gamevault.app"`

	// SnapshotRetentionDays drives the TTL attribute on price snapshots
	SnapshotRetentionDays int `envconfig:"SNAPSHOT_RETENTION_DAYS" default:"30"`
}

// Load reads the environment (and an optional .env file) into a Config
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment directly")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
