// Package geocoding searches place names with Nominatim.
package geocoding

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bbernstein/paddlewise/backend-go/internal/models"
	"github.com/bbernstein/paddlewise/backend-go/internal/observability"
	"github.com/bbernstein/paddlewise/backend-go/internal/source"
	"github.com/bbernstein/paddlewise/backend-go/pkg/http/client"
	"github.com/rs/zerolog/log"
)

const (
	ProviderName = "nominatim"
	// MinQueryLength is the shortest trimmed query sent upstream.
	MinQueryLength = 2
	// SearchFailedMessage is shown when a search cannot be completed.
	SearchFailedMessage = "Failed to search location. Please try again."
)

// Searcher finds places matching free text.
type Searcher interface {
	Search(ctx context.Context, query string) ([]models.Place, error)
}

type nominatimResult struct {
	PlaceID     int64             `json:"place_id"`
	Name        string            `json:"name"`
	DisplayName string            `json:"display_name"`
	Lat         string            `json:"lat"`
	Lon         string            `json:"lon"`
	Type        string            `json:"type"`
	Address     map[string]string `json:"address"`
}

type Options struct {
	UserAgent    string
	CountryCodes string
	Limit        int
	Metrics      *observability.Metrics
}

type Nominatim struct {
	httpClient client.Interface
	opts       Options
}

var _ Searcher = (*Nominatim)(nil)

func NewNominatim(httpClient client.Interface, opts Options) *Nominatim {
	if opts.Limit <= 0 {
		opts.Limit = 5
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "PaddleWise/1.0"
	}
	return &Nominatim{httpClient: httpClient, opts: opts}
}

func tooShort(query string) bool {
	return len([]rune(strings.TrimSpace(query))) < MinQueryLength
}

func (n *Nominatim) Search(ctx context.Context, query string) ([]models.Place, error) {
	if tooShort(query) {
		return []models.Place{}, nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(n.opts.Limit))
	params.Set("addressdetails", "1")
	if n.opts.CountryCodes != "" {
		params.Set("countrycodes", n.opts.CountryCodes)
	}

	start := time.Now()
	places, err := n.search(ctx, params)
	source.Observe(n.opts.Metrics, ProviderName, start, err)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("query", query).Int("results", len(places)).Msg("Location search complete")
	return places, nil
}

func (n *Nominatim) search(ctx context.Context, params url.Values) ([]models.Place, error) {
	resp, err := source.Get(ctx, n.httpClient, ProviderName, "/search",
		client.WithQuery(params),
		client.WithHeader("User-Agent", n.opts.UserAgent),
	)
	if err != nil {
		return nil, err
	}

	var results []nominatimResult
	if err := source.DecodeJSON(ProviderName, resp.Body, &results); err != nil {
		return nil, err
	}

	places := make([]models.Place, 0, len(results))
	for _, r := range results {
		place, err := toPlace(r)
		if err != nil {
			log.Debug().Err(err).Int64("placeId", r.PlaceID).Msg("Skipping result with bad coordinates")
			continue
		}
		places = append(places, place)
	}
	return places, nil
}

func toPlace(r nominatimResult) (models.Place, error) {
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return models.Place{}, err
	}
	lon, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return models.Place{}, err
	}

	name := r.Name
	if name == "" {
		name, _, _ = strings.Cut(r.DisplayName, ",")
	}

	return models.Place{
		Name:        name,
		DisplayName: r.DisplayName,
		Latitude:    lat,
		Longitude:   lon,
		Type:        r.Type,
		Address:     r.Address,
	}, nil
}
