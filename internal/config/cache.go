package config

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// Long-lived cache backends.
const (
	BackendMemory = "memory"
	BackendDynamo = "dynamo"
	BackendS3     = "s3"
	BackendSQLite = "sqlite"
)

// CacheConfig holds all cache-related configuration
type CacheConfig struct {
	// In-memory LRU settings, shared by both scopes
	LRUSize int

	// Provider TTLs
	WeatherTTLMinutes    int
	MarineTTLMinutes     int
	TidesTTLMinutes      int
	StormglassTTLMinutes int
	LocationTTLHours     int

	// Long-lived scope backend
	LongLivedBackend string
	DynamoTable      string
	DynamoEndpoint   string
	S3Bucket         string
	S3Prefix         string
	S3Endpoint       string
	SQLitePath       string

	// General settings
	EnableCache bool
}

const (
	// Default values
	defaultLRUSize              = 1000
	defaultWeatherTTLMinutes    = 60
	defaultMarineTTLMinutes     = 60
	defaultTidesTTLMinutes      = 6 * 60
	defaultStormglassTTLMinutes = 6 * 60
	defaultLocationTTLHours     = 24
	defaultDynamoTable          = "paddlewise-cache"
	defaultSQLitePath           = "data/paddlewise-cache.db"
)

// GetCacheConfig returns the cache configuration from environment variables or defaults
func GetCacheConfig() *CacheConfig {
	config := &CacheConfig{
		LRUSize:              getEnvInt("CACHE_LRU_SIZE", defaultLRUSize),
		WeatherTTLMinutes:    getEnvInt("CACHE_WEATHER_TTL_MINUTES", defaultWeatherTTLMinutes),
		MarineTTLMinutes:     getEnvInt("CACHE_MARINE_TTL_MINUTES", defaultMarineTTLMinutes),
		TidesTTLMinutes:      getEnvInt("CACHE_TIDES_TTL_MINUTES", defaultTidesTTLMinutes),
		StormglassTTLMinutes: getEnvInt("CACHE_STORMGLASS_TTL_MINUTES", defaultStormglassTTLMinutes),
		LocationTTLHours:     getEnvInt("CACHE_LOCATION_TTL_HOURS", defaultLocationTTLHours),
		LongLivedBackend:     getEnvOrDefault("CACHE_LONG_BACKEND", BackendMemory),
		DynamoTable:          getEnvOrDefault("CACHE_DYNAMO_TABLE", defaultDynamoTable),
		DynamoEndpoint:       os.Getenv("DYNAMODB_ENDPOINT"),
		S3Bucket:             os.Getenv("CACHE_S3_BUCKET"),
		S3Prefix:             getEnvOrDefault("CACHE_S3_PREFIX", "cache/"),
		S3Endpoint:           os.Getenv("S3_ENDPOINT"),
		SQLitePath:           getEnvOrDefault("CACHE_SQLITE_PATH", defaultSQLitePath),
		EnableCache:          getEnvBool("CACHE_ENABLE", true),
	}

	log.Debug().
		Int("LRUSize", config.LRUSize).
		Int("WeatherTTLMinutes", config.WeatherTTLMinutes).
		Int("MarineTTLMinutes", config.MarineTTLMinutes).
		Int("TidesTTLMinutes", config.TidesTTLMinutes).
		Int("StormglassTTLMinutes", config.StormglassTTLMinutes).
		Int("LocationTTLHours", config.LocationTTLHours).
		Str("LongLivedBackend", config.LongLivedBackend).
		Bool("EnableCache", config.EnableCache).
		Msg("Cache configuration loaded")

	return config
}

// Helper methods for the CacheConfig struct
func (c *CacheConfig) GetWeatherTTL() time.Duration {
	return time.Duration(c.WeatherTTLMinutes) * time.Minute
}

func (c *CacheConfig) GetMarineTTL() time.Duration {
	return time.Duration(c.MarineTTLMinutes) * time.Minute
}

func (c *CacheConfig) GetTidesTTL() time.Duration {
	return time.Duration(c.TidesTTLMinutes) * time.Minute
}

func (c *CacheConfig) GetStormglassTTL() time.Duration {
	return time.Duration(c.StormglassTTLMinutes) * time.Minute
}

// GetLocationTTL covers geocoding and coastline lookups.
func (c *CacheConfig) GetLocationTTL() time.Duration {
	return time.Duration(c.LocationTTLHours) * time.Hour
}

// Helper functions to get environment variables with defaults
func getEnvInt(key string, defaultVal int) int {
	if val, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
		log.Warn().Str("key", key).Msg("Invalid integer value in environment variable, using default")
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
		log.Warn().Str("key", key).Msg("Invalid number in environment variable, using default")
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val, exists := os.LookupEnv(key); exists {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}
