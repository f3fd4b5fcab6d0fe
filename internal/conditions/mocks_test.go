package conditions

import (
	"context"

	"github.com/bbernstein/paddlewise/backend-go/internal/models"
	"github.com/bbernstein/paddlewise/backend-go/internal/stormglass"
	"github.com/stretchr/testify/mock"
)

type mockPremium struct {
	mock.Mock
}

func (m *mockPremium) Configured() bool {
	return m.Called().Bool(0)
}

func (m *mockPremium) Fetch(ctx context.Context, lat, lon float64, date, preferred string) (*stormglass.Bundle, error) {
	args := m.Called(ctx, lat, lon, date, preferred)
	bundle, _ := args.Get(0).(*stormglass.Bundle)
	return bundle, args.Error(1)
}

type mockTides struct {
	mock.Mock
}

func (m *mockTides) Fetch(ctx context.Context, lat, lon float64, date string) (*models.TideData, error) {
	args := m.Called(ctx, lat, lon, date)
	data, _ := args.Get(0).(*models.TideData)
	return data, args.Error(1)
}

type mockAdapter struct {
	mock.Mock
	name string
}

func (m *mockAdapter) Provider() string {
	return m.name
}

func (m *mockAdapter) Fetch(ctx context.Context, lat, lon float64, date string) (*models.HourlySeries, error) {
	args := m.Called(ctx, lat, lon, date)
	series, _ := args.Get(0).(*models.HourlySeries)
	return series, args.Error(1)
}

type mockFinder struct {
	mock.Mock
}

func (m *mockFinder) Bearing(ctx context.Context, lat, lon float64) *float64 {
	args := m.Called(ctx, lat, lon)
	bearing, _ := args.Get(0).(*float64)
	return bearing
}
