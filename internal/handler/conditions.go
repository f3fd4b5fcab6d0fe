package handler

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/bbernstein/paddlewise/backend-go/internal/api"
	"github.com/bbernstein/paddlewise/backend-go/internal/models"
)

type ConditionsGetter interface {
	GetConditions(ctx context.Context, q models.Query) (*models.Conditions, error)
}

type ConditionsHandler struct {
	service ConditionsGetter
}

func NewConditionsHandler(service ConditionsGetter) *ConditionsHandler {
	return &ConditionsHandler{
		service: service,
	}
}

func (h *ConditionsHandler) HandleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	ctx, logger := withRequestLogger(ctx, request)

	q, err := api.ParseQuery(request.QueryStringParameters)
	if err != nil {
		return errorResponse(logger, err)
	}

	logger.Info().
		Float64("lat", q.Latitude).
		Float64("lon", q.Longitude).
		Str("date", q.Date).
		Str("time", q.Time).
		Msg("Handling conditions request")

	report, err := h.service.GetConditions(ctx, q)
	if err != nil {
		return errorResponse(logger, err)
	}

	logger.Debug().Int("riskCategory", report.Risk.Category).Msg("Conditions assembled")
	return api.Success(api.NewConditionsResponse(report))
}
