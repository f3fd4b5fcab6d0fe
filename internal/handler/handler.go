package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/bbernstein/paddlewise/backend-go/internal/api"
	"github.com/bbernstein/paddlewise/backend-go/internal/conditions"
	"github.com/bbernstein/paddlewise/backend-go/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const internalErrorMessage = "Something went wrong. Please try again."

// withRequestLogger attaches a logger tagged with the request id to ctx.
// API Gateway's id is used when present.
func withRequestLogger(ctx context.Context, request events.APIGatewayProxyRequest) (context.Context, *zerolog.Logger) {
	id := request.RequestContext.RequestID
	if id == "" {
		id = uuid.NewString()
	}
	logger := log.With().Str("request_id", id).Str("path", request.Path).Logger()
	return logger.WithContext(ctx), &logger
}

// errorResponse maps err onto a status code and a message safe to show.
func errorResponse(logger *zerolog.Logger, err error) (events.APIGatewayProxyResponse, error) {
	var userErr *conditions.UserError
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		logger.Info().Err(err).Msg("Rejected request")
		return api.Error(err.Error(), http.StatusBadRequest)
	case errors.As(err, &userErr):
		logger.Warn().Err(err).Msg("Upstream failure")
		return api.Error(userErr.Message, http.StatusBadGateway)
	default:
		logger.Error().Err(err).Msg("Request failed")
		return api.Error(internalErrorMessage, http.StatusInternalServerError)
	}
}
