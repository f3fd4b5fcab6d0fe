package geocoding

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bbernstein/paddlewise/backend-go/internal/cache"
	"github.com/bbernstein/paddlewise/backend-go/internal/models"
	"github.com/bbernstein/paddlewise/backend-go/pkg/http/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchPayload = `[
  {
    "place_id": 101,
    "name": "Salcombe",
    "display_name": "Salcombe, South Hams, Devon, England, TQ8 8, United Kingdom",
    "lat": "50.2383",
    "lon": "-3.7683",
    "type": "town",
    "address": {"town": "Salcombe", "county": "Devon", "country_code": "gb"}
  },
  {
    "place_id": 102,
    "display_name": "Salcombe Regis, East Devon, England",
    "lat": "50.6966",
    "lon": "-3.2031",
    "type": "village"
  },
  {
    "place_id": 103,
    "display_name": "Broken",
    "lat": "north",
    "lon": "-3.2"
  }
]`

type mockSearcher struct {
	searchFunc func(ctx context.Context, query string) ([]models.Place, error)
	calls      int
}

func (m *mockSearcher) Search(ctx context.Context, query string) ([]models.Place, error) {
	m.calls++
	return m.searchFunc(ctx, query)
}

func TestNominatimSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "PaddleWise-Test/1.0", r.Header.Get("User-Agent"))
		q := r.URL.Query()
		assert.Equal(t, "salcombe", q.Get("q"))
		assert.Equal(t, "json", q.Get("format"))
		assert.Equal(t, "gb", q.Get("countrycodes"))
		assert.Equal(t, "5", q.Get("limit"))
		assert.Equal(t, "1", q.Get("addressdetails"))
		_, _ = w.Write([]byte(searchPayload))
	}))
	defer server.Close()

	n := NewNominatim(client.New(client.Options{BaseURL: server.URL}), Options{
		UserAgent:    "PaddleWise-Test/1.0",
		CountryCodes: "gb",
	})

	places, err := n.Search(context.Background(), "salcombe")
	require.NoError(t, err)
	require.Len(t, places, 2)

	assert.Equal(t, "Salcombe", places[0].Name)
	assert.Equal(t, 50.2383, places[0].Latitude)
	assert.Equal(t, -3.7683, places[0].Longitude)
	assert.Equal(t, "town", places[0].Type)
	assert.Equal(t, "Devon", places[0].Address["county"])

	assert.Equal(t, "Salcombe Regis", places[1].Name)
	assert.Equal(t, "Salcombe Regis, East Devon, England", places[1].DisplayName)
}

func TestNominatimShortQuery(t *testing.T) {
	c := client.New(client.Options{})
	c.GetFunc = func(ctx context.Context, path string, opts ...client.RequestOption) (*client.Response, error) {
		t.Fatal("unexpected upstream call")
		return nil, nil
	}
	n := NewNominatim(c, Options{})

	for _, q := range []string{"", " ", "a", "  b  "} {
		places, err := n.Search(context.Background(), q)
		require.NoError(t, err)
		assert.Empty(t, places)
	}
}

func TestNominatimErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, body: `{}`, wantErr: models.ErrQuotaExceeded},
		{name: "forbidden", status: http.StatusForbidden, body: `blocked`, wantErr: models.ErrKeyRequired},
		{name: "server error", status: http.StatusInternalServerError, body: ``, wantErr: models.ErrProviderUnavailable},
		{name: "malformed", status: http.StatusOK, body: `{"not":"a list"}`, wantErr: models.ErrProviderUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			n := NewNominatim(client.New(client.Options{BaseURL: server.URL}), Options{})
			_, err := n.Search(context.Background(), "plymouth")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCachedSearch(t *testing.T) {
	store, err := cache.NewLRUStore(10, nil)
	require.NoError(t, err)

	next := &mockSearcher{searchFunc: func(ctx context.Context, query string) ([]models.Place, error) {
		return []models.Place{{Name: "Dartmouth", Latitude: 50.35, Longitude: -3.58}}, nil
	}}
	c := NewCached(next, store, 0)

	first, err := c.Search(context.Background(), "Dartmouth")
	require.NoError(t, err)
	second, err := c.Search(context.Background(), "dartmouth")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, next.calls)

	raw, err := store.Get(context.Background(), "geocode:dartmouth")
	require.NoError(t, err)
	assert.NotNil(t, raw)
}

func TestCachedSearchSkipsEmptyResults(t *testing.T) {
	store, err := cache.NewLRUStore(10, nil)
	require.NoError(t, err)

	next := &mockSearcher{searchFunc: func(ctx context.Context, query string) ([]models.Place, error) {
		return []models.Place{}, nil
	}}
	c := NewCached(next, store, 0)

	for i := 0; i < 2; i++ {
		places, err := c.Search(context.Background(), "atlantis")
		require.NoError(t, err)
		assert.Empty(t, places)
	}
	assert.Equal(t, 2, next.calls)
	assert.Equal(t, 0, store.Len())
}

func TestCachedSearchErrors(t *testing.T) {
	upstream := errors.New("boom")
	next := &mockSearcher{searchFunc: func(ctx context.Context, query string) ([]models.Place, error) {
		return nil, upstream
	}}
	c := NewCached(next, nil, 0)

	_, err := c.Search(context.Background(), "looe")
	assert.ErrorIs(t, err, upstream)

	places, err := c.Search(context.Background(), "l")
	require.NoError(t, err)
	assert.Empty(t, places)
	assert.Equal(t, 1, next.calls)
}
