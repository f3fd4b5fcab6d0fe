package models

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name,omitempty"`
}

// Place is a geocoding search result.
type Place struct {
	Name        string  `json:"name"`
	DisplayName string  `json:"displayName"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Type        string  `json:"type,omitempty"`

	// Address holds the structured address parts, keyed by component name.
	Address map[string]string `json:"address,omitempty"`
}

type TideConditions struct {
	TidalSummary
	HeightAtTime *float64  `json:"heightAtTime"`
	TrendAtTime  TideTrend `json:"trendAtTime,omitempty"`
}

type MarineConditions struct {
	Series  *HourlySeries        `json:"series"`
	Summary MarineSummary        `json:"summary"`
	AtTime  map[Channel]*float64 `json:"atTime,omitempty"`
}

type WeatherConditions struct {
	Series  *HourlySeries        `json:"series"`
	Summary WeatherSummary       `json:"summary"`
	AtTime  map[Channel]*float64 `json:"atTime,omitempty"`
}

// WindAdvisory is derived from the daytime wind summary.
type WindAdvisory struct {
	AverageKnots    *float64 `json:"averageKnots"`
	BeaufortForce   int      `json:"beaufortForce"`
	BeaufortLabel   string   `json:"beaufortLabel"`
	Compass         string   `json:"compass,omitempty"`
	PaddlerLevel    string   `json:"paddlerLevel"`
	Shore           string   `json:"shore,omitempty"`
	AgainstTideFlow bool     `json:"againstTideFlow"`
}

// Conditions is the assembled bundle handed to the display layer.
type Conditions struct {
	Location         Location          `json:"location"`
	Date             string            `json:"date"`
	Time             string            `json:"time"`
	Tides            TideConditions    `json:"tides"`
	Marine           MarineConditions  `json:"marine"`
	Weather          WeatherConditions `json:"weather"`
	CoastlineBearing *float64          `json:"coastlineBearing"`
	Wind             WindAdvisory      `json:"wind"`
	Risk             RiskAssessment    `json:"riskAssessment"`
}
