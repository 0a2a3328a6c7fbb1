package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/solar-position-service/internal/solar"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	Site solar.Site

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	SampleInterval  time.Duration
	EventsCacheSize int

	// Kafka publishing configuration.
	PublishEnabled bool
	KafkaBrokers   []string
	KafkaTopic     string
}

// Load reads configuration from environment variables, applying defaults
// where unset. The site coordinates are validated here so that bad input
// fails at startup instead of surfacing as NaN results at runtime.
func Load() (*Config, error) {
	lat, err := parseFloat("SITE_LATITUDE", 36.62)
	if err != nil {
		return nil, err
	}
	lon, err := parseFloat("SITE_LONGITUDE", -121.904)
	if err != nil {
		return nil, err
	}
	tzOffset, err := parseInt("SITE_TZ_OFFSET", -8)
	if err != nil {
		return nil, err
	}

	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	sampleInterval, err := parseDuration("SAMPLE_INTERVAL", time.Minute)
	if err != nil {
		return nil, err
	}
	cacheSize, err := parseInt("EVENTS_CACHE_SIZE", 1000)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Site: solar.NewSite(tzOffset, lat, lon),

		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		SampleInterval:  sampleInterval,
		EventsCacheSize: cacheSize,

		PublishEnabled: os.Getenv("PUBLISH_ENABLED") == "true",
		KafkaBrokers:   parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:     envOrDefault("KAFKA_TOPIC", "solar-position-reports"),
	}

	if cfg.Site.Latitude < -90 || cfg.Site.Latitude > 90 {
		return nil, fmt.Errorf("SITE_LATITUDE %v outside [-90, 90]", cfg.Site.Latitude)
	}
	if cfg.Site.Longitude < -180 || cfg.Site.Longitude > 180 {
		return nil, fmt.Errorf("SITE_LONGITUDE %v outside [-180, 180]", cfg.Site.Longitude)
	}
	if cfg.Site.TZOffsetHours < -12 || cfg.Site.TZOffsetHours > 14 {
		return nil, fmt.Errorf("SITE_TZ_OFFSET %d outside [-12, 14]", cfg.Site.TZOffsetHours)
	}
	if sampleInterval <= 0 {
		return nil, errors.New("SAMPLE_INTERVAL must be positive")
	}
	if shutdownTimeout <= 0 {
		return nil, errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	if cacheSize <= 0 {
		return nil, errors.New("EVENTS_CACHE_SIZE must be positive")
	}
	if cfg.PublishEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("PUBLISH_ENABLED is true but KAFKA_BROKERS is empty")
		}
		if cfg.KafkaTopic == "" {
			return nil, errors.New("PUBLISH_ENABLED is true but KAFKA_TOPIC is empty")
		}
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func parseFloat(key string, fallback float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func parseInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
