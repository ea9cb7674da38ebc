package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all process settings, populated from environment variables.
type Config struct {
	WeatherBaseURL    string
	FlightPlanBaseURL string
	FetchTimeout      time.Duration // 0 disables the per-request timeout
	IncludeTAF        bool

	UserFile       string
	EventQueueSize int

	HTTPAddr        string // empty disables the status server
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Record publishing configuration.
	KafkaBrokers []string
	KafkaTopic   string
	KafkaEnabled bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("FETCH_TIMEOUT", "0s"))
	if err != nil || fetchTimeout < 0 {
		return nil, errors.New("invalid FETCH_TIMEOUT")
	}

	includeTAF, err := strconv.ParseBool(sharedcfg.EnvOrDefault("INCLUDE_TAF", "true"))
	if err != nil {
		return nil, errors.New("invalid INCLUDE_TAF")
	}

	queueSize, err := strconv.Atoi(sharedcfg.EnvOrDefault("EVENT_QUEUE_SIZE", "64"))
	if err != nil || queueSize <= 0 {
		return nil, errors.New("invalid EVENT_QUEUE_SIZE")
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}
	kafkaEnabled := len(brokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		WeatherBaseURL:    strings.TrimRight(sharedcfg.EnvOrDefault("WEATHER_BASE_URL", "https://aviationweather.gov/api/data"), "/"),
		FlightPlanBaseURL: strings.TrimRight(sharedcfg.EnvOrDefault("FLIGHTPLAN_BASE_URL", "https://www.simbrief.com/api"), "/"),
		FetchTimeout:      fetchTimeout,
		IncludeTAF:        includeTAF,
		UserFile:          sharedcfg.EnvOrDefault("USER_FILE", "user.json"),
		EventQueueSize:    queueSize,
		HTTPAddr:          os.Getenv("HTTP_ADDR"),
		LogLevel:          sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:         sharedcfg.EnvOrDefault("LOG_FORMAT", "text"),
		ShutdownTimeout:   shutdownTimeout,
		KafkaBrokers:      brokers,
		KafkaTopic:        sharedcfg.EnvOrDefault("KAFKA_TOPIC", "flypad-records"),
		KafkaEnabled:      kafkaEnabled,
	}
	if _, set := os.LookupEnv("HTTP_ADDR"); !set {
		cfg.HTTPAddr = ":8080"
	}

	if err := validateBaseURL("WEATHER_BASE_URL", cfg.WeatherBaseURL); err != nil {
		return nil, err
	}
	if err := validateBaseURL("FLIGHTPLAN_BASE_URL", cfg.FlightPlanBaseURL); err != nil {
		return nil, err
	}
	if cfg.UserFile == "" {
		return nil, errors.New("USER_FILE is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when publishing is enabled")
	}

	return cfg, nil
}

func validateBaseURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid %s %q: must be an absolute URL", name, raw)
	}
	return nil
}
