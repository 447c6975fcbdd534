package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Server
	Port        int
	Environment string

	// Data sources
	OperationsFile   string
	UserSettingsFile string
	MaxSourceBytes   int64

	// Report output
	ReportsDir string

	// Enrichment providers
	RatesURL          string
	QuotesURL         string
	QuotesAPIKey      string
	EnrichmentTimeout time.Duration

	// Report archive (optional)
	ArchiveBucket string
	ArchiveRegion string
	AWSEndpoint   string // For LocalStack in development
	EnableArchive bool
}

func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Port:              getEnvInt("PORT", 8080),
		Environment:       getEnv("ENVIRONMENT", "development"),
		OperationsFile:    getEnv("OPERATIONS_FILE", "data/operations.xlsx"),
		UserSettingsFile:  getEnv("USER_SETTINGS_FILE", "user_settings.json"),
		MaxSourceBytes:    int64(getEnvInt("MAX_SOURCE_BYTES", 10*1024*1024)),
		ReportsDir:        getEnv("REPORTS_DIR", "reports"),
		RatesURL:          getEnv("RATES_URL", "https://api.exchangeratesapi.io/latest"),
		QuotesURL:         getEnv("QUOTES_URL", "https://api.marketstack.com/v1/eod/latest"),
		QuotesAPIKey:      getEnv("QUOTES_API_KEY", ""),
		EnrichmentTimeout: getEnvDuration("ENRICHMENT_TIMEOUT", 10*time.Second),
		ArchiveBucket:     getEnv("ARCHIVE_BUCKET", ""),
		ArchiveRegion:     getEnv("ARCHIVE_REGION", "eu-central-1"),
		AWSEndpoint:       getEnv("AWS_ENDPOINT", ""),
		EnableArchive:     getEnvBool("ENABLE_ARCHIVE", false),
	}

	if cfg.OperationsFile == "" {
		return nil, fmt.Errorf("OPERATIONS_FILE is required")
	}
	if cfg.EnableArchive && cfg.ArchiveBucket == "" {
		return nil, fmt.Errorf("ARCHIVE_BUCKET is required when ENABLE_ARCHIVE is set")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
