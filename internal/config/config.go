package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Config holds all service settings, loaded from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// USGS event catalog configuration.
	USGSBaseURL string
	USGSTimeout time.Duration

	RasterCacheSize int
	ExportDir       string

	// Initial dashboard query, overridable per request.
	DefaultStartDate    string
	DefaultEndDate      string
	DefaultMinMagnitude float64
	DefaultRasterPath   string

	// Kafka sink configuration.
	KafkaBrokers   []string
	KafkaSinkTopic string
	KafkaEnabled   bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	usgsTimeout, err := parseDuration("USGS_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}

	minMagnitude, err := parseMinMagnitude()
	if err != nil {
		return nil, err
	}

	cacheSize := parseRasterCacheSize()

	kafkaTopic := os.Getenv("KAFKA_SINK_TOPIC")
	kafkaEnabled := kafkaTopic != ""
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		USGSBaseURL: envOrDefault("USGS_BASE_URL", "https://earthquake.usgs.gov/fdsnws/event/1/query"),
		USGSTimeout: usgsTimeout,

		RasterCacheSize: cacheSize,
		ExportDir:       envOrDefault("EXPORT_DIR", "."),

		DefaultStartDate:    envOrDefault("DEFAULT_START_DATE", "2013-01-01"),
		DefaultEndDate:      envOrDefault("DEFAULT_END_DATE", "2023-01-31"),
		DefaultMinMagnitude: minMagnitude,
		DefaultRasterPath:   os.Getenv("DEFAULT_RASTER_PATH"),

		KafkaBrokers:   parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSinkTopic: kafkaTopic,
		KafkaEnabled:   kafkaEnabled,
	}

	if cfg.USGSBaseURL == "" {
		return nil, errors.New("USGS_BASE_URL is required")
	}
	if _, err := time.Parse(dateLayout, cfg.DefaultStartDate); err != nil {
		return nil, errors.New("invalid DEFAULT_START_DATE")
	}
	if _, err := time.Parse(dateLayout, cfg.DefaultEndDate); err != nil {
		return nil, errors.New("invalid DEFAULT_END_DATE")
	}
	if cfg.KafkaEnabled && cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_SINK_TOPIC is not set")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

func parseMinMagnitude() (float64, error) {
	v, err := strconv.ParseFloat(envOrDefault("DEFAULT_MIN_MAGNITUDE", "6.0"), 64)
	if err != nil {
		return 0, errors.New("invalid DEFAULT_MIN_MAGNITUDE")
	}
	return v, nil
}

func parseRasterCacheSize() int {
	if s := os.Getenv("RASTER_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 16
}

func parseBrokers(s string) []string {
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}
