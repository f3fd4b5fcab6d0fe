package main

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/bbernstein/paddlewise/backend-go/internal/app"
	"github.com/bbernstein/paddlewise/backend-go/internal/config"
	"github.com/bbernstein/paddlewise/backend-go/internal/handler"
	"github.com/bbernstein/paddlewise/backend-go/internal/observability"
	"github.com/rs/zerolog/log"
)

var (
	lambdaStart      = lambda.Start // Allow mocking of lambda.Start in tests
	locationsHandler *handler.LocationsHandler
	setupOnce        sync.Once
	initHandler      = defaultInitHandler
)

func defaultInitHandler(ctx context.Context) (*handler.LocationsHandler, error) {
	cfg := config.LoadFromEnv()
	cfg.InitializeLogging()

	a, err := app.New(ctx, cfg, config.GetCacheConfig(), observability.NewMetrics())
	if err != nil {
		return nil, err
	}
	return handler.NewLocationsHandler(a.Locations), nil
}

func InitializeService() error {
	var initError error
	setupOnce.Do(func() {
		var err error
		locationsHandler, err = initHandler(context.Background())
		if err != nil {
			initError = fmt.Errorf("failed to initialize handler: %w", err)
			log.Error().Err(err).Msg("Failed to initialize handler")
		}
	})
	return initError
}

func handleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if locationsHandler == nil {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Body:       `{"responseType":"error","error":"Handler not initialized"}`,
		}, fmt.Errorf("handler not initialized")
	}
	return locationsHandler.HandleRequest(ctx, request)
}

func main() {
	if err := InitializeService(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize service")
	}
	lambdaStart(handleRequest)
}
