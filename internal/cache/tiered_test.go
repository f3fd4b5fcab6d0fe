package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bbernstein/paddlewise/backend-go/internal/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	getFunc func(ctx context.Context, key string) ([]byte, error)
	setFunc func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	sets    int
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, key)
	}
	return nil, nil
}

func (m *mockStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.sets++
	if m.setFunc != nil {
		return m.setFunc(ctx, key, value, ttl)
	}
	return nil
}

func TestTieredPromotesFromBack(t *testing.T) {
	ctx := context.Background()
	front, err := NewLRUStore(10, nil)
	require.NoError(t, err)
	back := &mockStore{getFunc: func(ctx context.Context, key string) ([]byte, error) {
		return []byte("from-back"), nil
	}}

	tiered := NewTiered(front, back, time.Hour)

	got, err := tiered.Get(ctx, "geocode:dartmouth")
	require.NoError(t, err)
	assert.Equal(t, []byte("from-back"), got)

	promoted, _ := front.Get(ctx, "geocode:dartmouth")
	assert.Equal(t, []byte("from-back"), promoted)
}

func TestTieredToleratesBackFailures(t *testing.T) {
	ctx := context.Background()
	front, err := NewLRUStore(10, nil)
	require.NoError(t, err)
	back := &mockStore{
		getFunc: func(ctx context.Context, key string) ([]byte, error) {
			return nil, errors.New("throttled")
		},
		setFunc: func(ctx context.Context, key string, value []byte, ttl time.Duration) error {
			return errors.New("throttled")
		},
	}

	tiered := NewTiered(front, back, time.Hour)

	got, err := tiered.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, tiered.Set(ctx, "k", []byte("v"), 24*time.Hour))
	assert.Equal(t, 1, back.sets)

	got, err = tiered.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

func TestInstrumentedCountsResults(t *testing.T) {
	ctx := context.Background()
	metrics := observability.NewMetricsForTesting()
	inner, err := NewLRUStore(10, nil)
	require.NoError(t, err)
	store := NewInstrumented(inner, ScopeSession, metrics)

	_, _ = store.Get(ctx, "k")
	require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Hour))
	_, _ = store.Get(ctx, "k")

	failing := NewInstrumented(&mockStore{getFunc: func(ctx context.Context, key string) ([]byte, error) {
		return nil, errors.New("boom")
	}}, ScopeLongLived, metrics)
	_, err = failing.Get(ctx, "k")
	assert.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("session", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("session", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("long_lived", "error")))
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	store, err := NewLRUStore(10, nil)
	require.NoError(t, err)

	type payload struct {
		Name  string  `json:"name"`
		Value float64 `json:"value"`
	}

	var dst payload
	found, err := GetJSON(ctx, store, "p", &dst)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, store, "p", payload{Name: "wave", Value: 1.2}, time.Hour))
	found, err = GetJSON(ctx, store, "p", &dst)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, payload{Name: "wave", Value: 1.2}, dst)

	require.NoError(t, store.Set(ctx, "corrupt", []byte("{not json"), time.Hour))
	found, err = GetJSON(ctx, store, "corrupt", &dst)
	require.NoError(t, err)
	assert.False(t, found)
}
