package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bbernstein/paddlewise/backend-go/internal/handler"
	"github.com/bbernstein/paddlewise/backend-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubConditions struct{}

func (stubConditions) GetConditions(ctx context.Context, q models.Query) (*models.Conditions, error) {
	return &models.Conditions{Date: q.Date, Location: models.Location{Latitude: q.Latitude, Longitude: q.Longitude}}, nil
}

type stubSearcher struct{}

func (stubSearcher) Search(ctx context.Context, query string) ([]models.Place, error) {
	return []models.Place{{Name: query}}, nil
}

func newTestServer() *httptest.Server {
	return httptest.NewServer(newRouter(
		handler.NewConditionsHandler(stubConditions{}),
		handler.NewLocationsHandler(stubSearcher{}),
	))
}

func TestRouter(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantType   string
	}{
		{name: "conditions", path: "/conditions?lat=50.2&lon=-3.7&date=2025-06-01", wantStatus: http.StatusOK, wantType: "conditions"},
		{name: "bad conditions", path: "/conditions?lat=abc&lon=-3.7", wantStatus: http.StatusBadRequest, wantType: "error"},
		{name: "locations", path: "/locations?q=Fowey", wantStatus: http.StatusOK, wantType: "locations"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(server.URL + tt.path)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantType, body["responseType"])
		})
	}
}

func TestHealthAndMetrics(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	for _, path := range []string{"/healthz", "/metrics"} {
		resp, err := http.Get(server.URL + path)
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	resp, err := http.Post(server.URL+"/conditions", "application/json", nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
