package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
	"github.com/bbernstein/sunnyweather/internal/async"
	"github.com/bbernstein/sunnyweather/internal/cache"
	"github.com/bbernstein/sunnyweather/internal/models"
)

type APIResponse struct {
	ResponseType string `json:"responseType"`
}

func (r APIResponse) GetResponseType() string {
	return r.ResponseType
}

type PlacesResponse struct {
	APIResponse
	Query  string         `json:"query"`
	Places []models.Place `json:"places"`
}

type SavedPlaceResponse struct {
	APIResponse
	Place models.Place `json:"place"`
}

type WeatherResponse struct {
	APIResponse
	Weather models.Weather `json:"weather"`
}

type ErrorResponse struct {
	APIResponse
	Error          string `json:"error"`
	Kind           string `json:"kind,omitempty"`
	Status         string `json:"status,omitempty"`
	RealtimeStatus string `json:"realtimeStatus,omitempty"`
	ForecastStatus string `json:"forecastStatus,omitempty"`
}

func NewPlacesResponse(query string, places []models.Place) *PlacesResponse {
	if places == nil {
		places = []models.Place{}
	}
	return &PlacesResponse{
		APIResponse: APIResponse{ResponseType: "places"},
		Query:       query,
		Places:      places,
	}
}

func NewSavedPlaceResponse(place models.Place) *SavedPlaceResponse {
	return &SavedPlaceResponse{
		APIResponse: APIResponse{ResponseType: "place"},
		Place:       place,
	}
}

func NewWeatherResponse(weather models.Weather) *WeatherResponse {
	return &WeatherResponse{
		APIResponse: APIResponse{ResponseType: "weather"},
		Weather:     weather,
	}
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{
		APIResponse: APIResponse{ResponseType: "error"},
		Error:       message,
	}
}

// Response helpers
func Success(body interface{}) (events.APIGatewayProxyResponse, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return Error("Internal Server Error", http.StatusInternalServerError)
	}
	return respond(http.StatusOK, jsonBody), nil
}

func Error(message string, statusCode int) (events.APIGatewayProxyResponse, error) {
	body, _ := json.Marshal(NewErrorResponse(message))
	return respond(statusCode, body), nil
}

// Failure renders a failed result, keeping the remote status strings.
func Failure(err *async.Error) (events.APIGatewayProxyResponse, error) {
	resp := NewErrorResponse(err.Error())
	resp.Kind = string(err.Kind)
	resp.Status = err.Status
	resp.RealtimeStatus = err.RealtimeStatus
	resp.ForecastStatus = err.ForecastStatus

	body, _ := json.Marshal(resp)
	return respond(ErrorStatus(err), body), nil
}

func respond(statusCode int, body []byte) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: string(body),
	}
}

// ErrorStatus maps an error to the HTTP status reported to the caller.
func ErrorStatus(err error) int {
	if errors.Is(err, cache.ErrPlaceNotSaved) {
		return http.StatusNotFound
	}
	var invalidCoordErr InvalidCoordinatesError
	var missingErr MissingParameterError
	if errors.As(err, &invalidCoordErr) || errors.As(err, &missingErr) {
		return http.StatusBadRequest
	}

	var asyncErr *async.Error
	if !errors.As(err, &asyncErr) {
		return http.StatusInternalServerError
	}
	switch asyncErr.Kind {
	case async.TransportError:
		return http.StatusServiceUnavailable
	case async.EmptyBody, async.StatusError, async.CombinedStatusError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Parameter parsing helpers

// ParseLocation reads lng and lat from params. The values are returned
// verbatim so the remote API sees exactly what the caller sent.
func ParseLocation(params map[string]string) (string, string, error) {
	lngStr, hasLng := params["lng"]
	latStr, hasLat := params["lat"]

	if !hasLng || lngStr == "" {
		return "", "", MissingParameterError{Name: "lng"}
	}
	if !hasLat || latStr == "" {
		return "", "", MissingParameterError{Name: "lat"}
	}

	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return "", "", InvalidCoordinatesError{}
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return "", "", InvalidCoordinatesError{}
	}

	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return "", "", InvalidCoordinatesError{}
	}

	return lngStr, latStr, nil
}

type InvalidCoordinatesError struct{}

func (e InvalidCoordinatesError) Error() string {
	return "Invalid coordinates"
}

type MissingParameterError struct {
	Name string
}

func (e MissingParameterError) Error() string {
	return "Missing required parameter: " + e.Name
}
