package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigWithDefaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, "Europe/London", cfg.Timezone)
	assert.Equal(t, 6, cfg.ForecastDays)
	assert.Equal(t, 4.0, cfg.Tides.SpringRangeM)
	assert.Equal(t, 3.0, cfg.Tides.NeapRangeM)
	assert.Equal(t, []string{"sg", "noaa", "meto", "smhi", "fcoo"}, cfg.Providers.SourcePriority)
	assert.False(t, cfg.Providers.PremiumEnabled())
}

func TestOptions(t *testing.T) {
	cfg := New(
		WithEnvironment("development"),
		WithLogLevel("debug"),
		WithHTTPTimeout(30*time.Second),
		WithTimezone("UTC"),
		WithTideThresholds(5, 2),
	)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, time.UTC, cfg.Location())
	assert.Equal(t, TideConfig{SpringRangeM: 5, NeapRangeM: 2}, cfg.Tides)
}

func TestWithLogLevelInvalid(t *testing.T) {
	cfg := New(WithLogLevel("chatty"))
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
}

func TestLocationFallsBackToUTC(t *testing.T) {
	cfg := New(WithTimezone("Atlantis/Lost"))
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestInitializeLogging(t *testing.T) {
	cfg := New(WithEnvironment("local"), WithLogLevel("debug"))
	cfg.InitializeLogging()

	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("STORMGLASS_API_KEY", "sg-key")
	t.Setenv("SOURCE_PRIORITY", "noaa, sg ,")
	t.Setenv("TIDE_SPRING_RANGE_M", "4.5")

	cfg := LoadFromEnv()

	assert.Equal(t, "test", cfg.Environment)
	assert.Equal(t, zerolog.WarnLevel, cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.True(t, cfg.Providers.PremiumEnabled())
	assert.Equal(t, []string{"noaa", "sg"}, cfg.Providers.SourcePriority)
	assert.Equal(t, 4.5, cfg.Tides.SpringRangeM)
}

func TestLoadProvidersFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "providers.yaml")
	content := `
stormglass:
  apiKey: from-file
sourcePriority: [meto, sg]
preferredSubSource: meto
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadProvidersFile(path, DefaultProviders())
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.Stormglass.APIKey)
	assert.Equal(t, "https://api.stormglass.io/v2", cfg.Stormglass.BaseURL)
	assert.Equal(t, []string{"meto", "sg"}, cfg.SourcePriority)
	assert.Equal(t, "meto", cfg.PreferredSubSource)
	assert.Equal(t, "LAT", cfg.WorldTides.Datum)
}

func TestLoadProvidersFileErrors(t *testing.T) {
	base := DefaultProviders()

	_, err := LoadProvidersFile(filepath.Join(t.TempDir(), "missing.yaml"), base)
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stormglass: [not, a, map"), 0o600))
	got, err := LoadProvidersFile(path, base)
	assert.Error(t, err)
	assert.Equal(t, base, got)
}
