package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultBroker = "localhost:9092"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 36.62, cfg.Site.Latitude)
	assert.Equal(t, -121.904, cfg.Site.Longitude)
	assert.Equal(t, -8, cfg.Site.TZOffsetHours)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, time.Minute, cfg.SampleInterval)
	assert.Equal(t, 1000, cfg.EventsCacheSize)
	assert.False(t, cfg.PublishEnabled)
	assert.Equal(t, []string{defaultBroker}, cfg.KafkaBrokers)
	assert.Equal(t, "solar-position-reports", cfg.KafkaTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("SITE_LATITUDE", "59.91")
	t.Setenv("SITE_LONGITUDE", "10.75")
	t.Setenv("SITE_TZ_OFFSET", "1")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("SAMPLE_INTERVAL", "15s")
	t.Setenv("EVENTS_CACHE_SIZE", "50")
	t.Setenv("PUBLISH_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_TOPIC", "custom-solar")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 59.91, cfg.Site.Latitude)
	assert.Equal(t, 10.75, cfg.Site.Longitude)
	assert.Equal(t, 1, cfg.Site.TZOffsetHours)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 15*time.Second, cfg.SampleInterval)
	assert.Equal(t, 50, cfg.EventsCacheSize)
	assert.True(t, cfg.PublishEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-solar", cfg.KafkaTopic)
}

func TestLoad_InvalidInputs(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		errText string
	}{
		{"latitude out of range", "SITE_LATITUDE", "91", "SITE_LATITUDE"},
		{"latitude not a number", "SITE_LATITUDE", "north", "SITE_LATITUDE"},
		{"longitude out of range", "SITE_LONGITUDE", "-200", "SITE_LONGITUDE"},
		{"tz offset out of range", "SITE_TZ_OFFSET", "-13", "SITE_TZ_OFFSET"},
		{"tz offset not an integer", "SITE_TZ_OFFSET", "eight", "SITE_TZ_OFFSET"},
		{"bad shutdown timeout", "SHUTDOWN_TIMEOUT", "not-a-duration", "SHUTDOWN_TIMEOUT"},
		{"negative shutdown timeout", "SHUTDOWN_TIMEOUT", "-1s", "SHUTDOWN_TIMEOUT"},
		{"zero sample interval", "SAMPLE_INTERVAL", "0s", "SAMPLE_INTERVAL"},
		{"bad cache size", "EVENTS_CACHE_SIZE", "tiny", "EVENTS_CACHE_SIZE"},
		{"zero cache size", "EVENTS_CACHE_SIZE", "0", "EVENTS_CACHE_SIZE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestLoad_PublishRequiresBrokers(t *testing.T) {
	t.Setenv("PUBLISH_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", " , ")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKERS")
}
