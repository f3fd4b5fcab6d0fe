package main

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/bbernstein/paddlewise/backend-go/internal/handler"
	"github.com/bbernstein/paddlewise/backend-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubConditions struct{}

func (stubConditions) GetConditions(ctx context.Context, q models.Query) (*models.Conditions, error) {
	return &models.Conditions{Date: q.Date}, nil
}

func resetGlobals(t *testing.T) {
	originalHandler, originalInit := conditionsHandler, initHandler
	t.Cleanup(func() {
		conditionsHandler = originalHandler
		initHandler = originalInit
		setupOnce = sync.Once{}
	})
	conditionsHandler = nil
	setupOnce = sync.Once{}
}

func TestHandleRequestNotInitialized(t *testing.T) {
	resetGlobals(t)

	resp, err := handleRequest(context.Background(), events.APIGatewayProxyRequest{})
	assert.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestInitializeService(t *testing.T) {
	resetGlobals(t)
	initHandler = func(ctx context.Context) (*handler.ConditionsHandler, error) {
		return handler.NewConditionsHandler(stubConditions{}), nil
	}

	require.NoError(t, InitializeService())

	resp, err := handleRequest(context.Background(), events.APIGatewayProxyRequest{
		QueryStringParameters: map[string]string{"lat": "50.2", "lon": "-3.7", "date": "2025-06-01"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestInitializeServiceError(t *testing.T) {
	resetGlobals(t)
	initHandler = func(ctx context.Context) (*handler.ConditionsHandler, error) {
		return nil, errors.New("unknown cache backend")
	}

	err := InitializeService()
	assert.ErrorContains(t, err, "failed to initialize handler")
	assert.Nil(t, conditionsHandler)
}
