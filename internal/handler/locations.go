package handler

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/bbernstein/paddlewise/backend-go/internal/api"
	"github.com/bbernstein/paddlewise/backend-go/internal/geocoding"
)

type LocationsHandler struct {
	searcher geocoding.Searcher
}

func NewLocationsHandler(searcher geocoding.Searcher) *LocationsHandler {
	return &LocationsHandler{
		searcher: searcher,
	}
}

func (h *LocationsHandler) HandleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	ctx, logger := withRequestLogger(ctx, request)
	query := request.QueryStringParameters["q"]

	places, err := h.searcher.Search(ctx, query)
	if err != nil {
		logger.Warn().Err(err).Str("query", query).Msg("Location search failed")
		return api.Error(geocoding.SearchFailedMessage, http.StatusBadGateway)
	}

	return api.Success(api.NewLocationsResponse(places))
}
