package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/bbernstein/paddlewise/backend-go/internal/models"
)

type APIResponse struct {
	ResponseType string `json:"responseType"`
}

type ConditionsResponse struct {
	APIResponse
	Conditions *models.Conditions `json:"conditions"`
}

type LocationsResponse struct {
	APIResponse
	Locations []models.Place `json:"locations"`
}

type ErrorResponse struct {
	APIResponse
	Error string `json:"error"`
}

func NewConditionsResponse(c *models.Conditions) *ConditionsResponse {
	return &ConditionsResponse{
		APIResponse: APIResponse{ResponseType: "conditions"},
		Conditions:  c,
	}
}

func NewLocationsResponse(places []models.Place) *LocationsResponse {
	if places == nil {
		places = []models.Place{}
	}
	return &LocationsResponse{
		APIResponse: APIResponse{ResponseType: "locations"},
		Locations:   places,
	}
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{
		APIResponse: APIResponse{ResponseType: "error"},
		Error:       message,
	}
}

var defaultHeaders = map[string]string{
	"Content-Type":                "application/json",
	"Access-Control-Allow-Origin": "*",
}

func headers() map[string]string {
	h := make(map[string]string, len(defaultHeaders))
	for k, v := range defaultHeaders {
		h[k] = v
	}
	return h
}

// Response helpers
func Success(body interface{}) (events.APIGatewayProxyResponse, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return Error("Internal Server Error", http.StatusInternalServerError)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    headers(),
		Body:       string(jsonBody),
	}, nil
}

func Error(message string, statusCode int) (events.APIGatewayProxyResponse, error) {
	body, _ := json.Marshal(NewErrorResponse(message))

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers:    headers(),
		Body:       string(body),
	}, nil
}

// Parameter parsing helpers

// ParseCoordinates reads the required lat and lon parameters.
func ParseCoordinates(params map[string]string) (float64, float64, error) {
	latStr, hasLat := params["lat"]
	lonStr, hasLon := params["lon"]

	if !hasLat || !hasLon {
		return 0, 0, models.NewInvalidInputError("coordinates", "lat and lon are required")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, models.NewInvalidInputError("latitude", "not a number")
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return 0, 0, models.NewInvalidInputError("longitude", "not a number")
	}

	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, models.NewInvalidInputError("coordinates", "out of range")
	}

	return lat, lon, nil
}

// ParseActivities reads a comma separated activity list. Empty entries are
// ignored.
func ParseActivities(raw string) ([]models.Activity, error) {
	var activities []models.Activity
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		a, err := models.ParseActivity(part)
		if err != nil {
			return nil, models.NewInvalidInputError("activities", err.Error())
		}
		activities = append(activities, a)
	}
	return activities, nil
}

// ParseQuery builds a conditions query from request parameters. Date and
// time are checked by the conditions service.
func ParseQuery(params map[string]string) (models.Query, error) {
	lat, lon, err := ParseCoordinates(params)
	if err != nil {
		return models.Query{}, err
	}

	activities, err := ParseActivities(params["activities"])
	if err != nil {
		return models.Query{}, err
	}

	return models.Query{
		Latitude:           lat,
		Longitude:          lon,
		Date:               strings.TrimSpace(params["date"]),
		Time:               strings.TrimSpace(params["time"]),
		PreferredSubSource: strings.TrimSpace(params["source"]),
		Activities:         activities,
	}, nil
}
