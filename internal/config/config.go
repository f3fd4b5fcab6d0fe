package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Environment string
	LogLevel    zerolog.Level
	HTTPTimeout time.Duration
	MaxRetries  int
	// Timezone is used to interpret requested dates and hours of day.
	Timezone     string
	ForecastDays int
	Providers    ProvidersConfig
	Tides        TideConfig
}

// TideConfig holds the tidal range thresholds used to classify a day.
// Defaults are calibrated for the UK coast.
type TideConfig struct {
	SpringRangeM float64 `yaml:"springRangeM"`
	NeapRangeM   float64 `yaml:"neapRangeM"`
}

type Option func(*Config)

// WithEnvironment allows setting the environment
func WithEnvironment(env string) Option {
	return func(c *Config) {
		c.Environment = env
	}
}

// WithLogLevel allows setting the log level
func WithLogLevel(level string) Option {
	return func(c *Config) {
		parsedLevel, err := zerolog.ParseLevel(level)
		if err != nil {
			parsedLevel = zerolog.InfoLevel
		}
		c.LogLevel = parsedLevel
	}
}

// WithHTTPTimeout allows setting the HTTP timeout
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.HTTPTimeout = timeout
	}
}

func WithMaxRetries(n int) Option {
	return func(c *Config) {
		c.MaxRetries = n
	}
}

func WithTimezone(tz string) Option {
	return func(c *Config) {
		c.Timezone = tz
	}
}

func WithForecastDays(days int) Option {
	return func(c *Config) {
		c.ForecastDays = days
	}
}

// WithProviders replaces the provider settings wholesale.
func WithProviders(p ProvidersConfig) Option {
	return func(c *Config) {
		c.Providers = p
	}
}

func WithTideThresholds(springRangeM, neapRangeM float64) Option {
	return func(c *Config) {
		c.Tides = TideConfig{SpringRangeM: springRangeM, NeapRangeM: neapRangeM}
	}
}

// New creates a new configuration with default values
func New(opts ...Option) *Config {
	cfg := &Config{
		Environment:  "production",
		LogLevel:     zerolog.InfoLevel,
		HTTPTimeout:  10 * time.Second,
		MaxRetries:   3,
		Timezone:     "Europe/London",
		ForecastDays: 6,
		Providers:    DefaultProviders(),
		Tides: TideConfig{
			SpringRangeM: 4.0,
			NeapRangeM:   3.0,
		},
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// Location resolves Timezone, falling back to UTC when it is unknown.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Warn().Err(err).Str("timezone", c.Timezone).Msg("Unknown timezone, using UTC")
		return time.UTC
	}
	return loc
}

// InitializeLogging sets up logging based on the configuration
func (c *Config) InitializeLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(c.LogLevel)

	// Setup console logger for development environments
	if c.Environment == "local" || c.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
}

// LoadFromEnv loads configuration from environment variables. A .env file in
// the working directory is read first when present; real environment
// variables win over it.
func LoadFromEnv() *Config {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("Loaded .env file")
	}

	providers := ProvidersFromEnv()
	if path := os.Getenv("PROVIDERS_FILE"); path != "" {
		fromFile, err := LoadProvidersFile(path, providers)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Ignoring unreadable providers file")
		} else {
			providers = fromFile
		}
	}

	return New(
		WithEnvironment(getEnvOrDefault("ENV", "production")),
		WithLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
		WithHTTPTimeout(getDurationEnvOrDefault("HTTP_TIMEOUT", 10*time.Second)),
		WithMaxRetries(getEnvInt("HTTP_MAX_RETRIES", 3)),
		WithTimezone(getEnvOrDefault("TIMEZONE", "Europe/London")),
		WithForecastDays(getEnvInt("FORECAST_DAYS", 6)),
		WithProviders(providers),
		WithTideThresholds(
			getEnvFloat("TIDE_SPRING_RANGE_M", 4.0),
			getEnvFloat("TIDE_NEAP_RANGE_M", 3.0),
		),
	)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
