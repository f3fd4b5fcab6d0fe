package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type StormglassConfig struct {
	// An empty APIKey disables the premium aggregator.
	APIKey  string `yaml:"apiKey"`
	BaseURL string `yaml:"baseUrl"`
	// Params is the comma separated list of quantities requested per hour.
	Params string `yaml:"params"`
}

type WorldTidesConfig struct {
	APIKey  string `yaml:"apiKey"`
	BaseURL string `yaml:"baseUrl"`
	Datum   string `yaml:"datum"`
	// StepSeconds is the spacing of the height curve.
	StepSeconds int `yaml:"stepSeconds"`
}

type NominatimConfig struct {
	BaseURL      string `yaml:"baseUrl"`
	UserAgent    string `yaml:"userAgent"`
	CountryCodes string `yaml:"countryCodes"`
	Limit        int    `yaml:"limit"`
}

type OverpassConfig struct {
	BaseURL      string  `yaml:"baseUrl"`
	RadiusMeters float64 `yaml:"radiusMeters"`
}

// ProvidersConfig holds upstream endpoints, keys and the sub-source policy
// of the premium aggregator.
type ProvidersConfig struct {
	Stormglass       StormglassConfig `yaml:"stormglass"`
	WorldTides       WorldTidesConfig `yaml:"worldtides"`
	OpenMeteoMarine  string           `yaml:"openMeteoMarineUrl"`
	OpenMeteoWeather string           `yaml:"openMeteoWeatherUrl"`
	Nominatim        NominatimConfig  `yaml:"nominatim"`
	Overpass         OverpassConfig   `yaml:"overpass"`
	// SourcePriority is consulted in order when the preferred sub-source
	// has no value for a sample.
	SourcePriority     []string `yaml:"sourcePriority"`
	PreferredSubSource string   `yaml:"preferredSubSource"`
}

const defaultStormglassParams = "waterTemperature,waveHeight,wavePeriod,waveDirection," +
	"swellHeight,swellPeriod,swellDirection,currentSpeed,currentDirection," +
	"airTemperature,windSpeed,windDirection,gust,precipitation,visibility,cloudCover"

func DefaultProviders() ProvidersConfig {
	return ProvidersConfig{
		Stormglass: StormglassConfig{
			BaseURL: "https://api.stormglass.io/v2",
			Params:  defaultStormglassParams,
		},
		WorldTides: WorldTidesConfig{
			BaseURL:     "https://www.worldtides.info/api/v3",
			Datum:       "LAT",
			StepSeconds: 1800,
		},
		OpenMeteoMarine:  "https://marine-api.open-meteo.com/v1/marine",
		OpenMeteoWeather: "https://api.open-meteo.com/v1/forecast",
		Nominatim: NominatimConfig{
			BaseURL:      "https://nominatim.openstreetmap.org",
			UserAgent:    "PaddleWise/1.0",
			CountryCodes: "gb",
			Limit:        5,
		},
		Overpass: OverpassConfig{
			BaseURL:      "https://overpass-api.de/api/interpreter",
			RadiusMeters: 50000,
		},
		SourcePriority:     []string{"sg", "noaa", "meto", "smhi", "fcoo"},
		PreferredSubSource: "sg",
	}
}

// ProvidersFromEnv starts from the defaults and applies environment overrides.
func ProvidersFromEnv() ProvidersConfig {
	p := DefaultProviders()
	p.Stormglass.APIKey = os.Getenv("STORMGLASS_API_KEY")
	p.Stormglass.BaseURL = getEnvOrDefault("STORMGLASS_BASE_URL", p.Stormglass.BaseURL)
	p.WorldTides.APIKey = os.Getenv("WORLDTIDES_API_KEY")
	p.WorldTides.BaseURL = getEnvOrDefault("WORLDTIDES_BASE_URL", p.WorldTides.BaseURL)
	p.WorldTides.Datum = getEnvOrDefault("WORLDTIDES_DATUM", p.WorldTides.Datum)
	p.OpenMeteoMarine = getEnvOrDefault("OPEN_METEO_MARINE_URL", p.OpenMeteoMarine)
	p.OpenMeteoWeather = getEnvOrDefault("OPEN_METEO_WEATHER_URL", p.OpenMeteoWeather)
	p.Nominatim.BaseURL = getEnvOrDefault("NOMINATIM_URL", p.Nominatim.BaseURL)
	p.Nominatim.UserAgent = getEnvOrDefault("NOMINATIM_USER_AGENT", p.Nominatim.UserAgent)
	p.Nominatim.CountryCodes = getEnvOrDefault("NOMINATIM_COUNTRY_CODES", p.Nominatim.CountryCodes)
	p.Overpass.BaseURL = getEnvOrDefault("OVERPASS_URL", p.Overpass.BaseURL)
	p.SourcePriority = getEnvList("SOURCE_PRIORITY", p.SourcePriority)
	p.PreferredSubSource = getEnvOrDefault("PREFERRED_SUB_SOURCE", p.PreferredSubSource)
	return p
}

// LoadProvidersFile overlays the YAML file at path onto base. Keys missing
// from the file keep their base value.
func LoadProvidersFile(path string, base ProvidersConfig) (ProvidersConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("reading providers file: %w", err)
	}

	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("parsing providers file: %w", err)
	}
	return cfg, nil
}

// PremiumEnabled reports whether the premium aggregator should be attempted.
func (p ProvidersConfig) PremiumEnabled() bool {
	return p.Stormglass.APIKey != ""
}
