package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/bbernstein/sunnyweather/internal/api"
	"github.com/bbernstein/sunnyweather/internal/async"
	"github.com/bbernstein/sunnyweather/internal/cache"
	"github.com/bbernstein/sunnyweather/internal/models"
	"github.com/rs/zerolog/log"
)

type PlaceService interface {
	SearchPlaces(ctx context.Context, query string) *async.Stream[[]models.Place]
	SavePlace(ctx context.Context, place models.Place) error
	GetSavedPlace(ctx context.Context) (*models.Place, error)
}

type PlacesHandler struct {
	places PlaceService
}

func NewPlacesHandler(places PlaceService) *PlacesHandler {
	return &PlacesHandler{
		places: places,
	}
}

// HandleRequest serves place search on GET ?query= and the saved place on
// GET and PUT /place.
func (h *PlacesHandler) HandleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if isSavedPlacePath(request) {
		switch request.HTTPMethod {
		case "", http.MethodGet:
			return h.getSavedPlace(ctx)
		case http.MethodPut:
			return h.savePlace(ctx, request)
		default:
			return api.Error("Method not allowed", http.StatusMethodNotAllowed)
		}
	}

	if request.HTTPMethod != "" && request.HTTPMethod != http.MethodGet {
		return api.Error("Method not allowed", http.StatusMethodNotAllowed)
	}

	query := strings.TrimSpace(request.QueryStringParameters["query"])
	if query == "" {
		err := api.MissingParameterError{Name: "query"}
		return api.Error(err.Error(), api.ErrorStatus(err))
	}

	places, failure := awaitStream(ctx, h.places.SearchPlaces(ctx, query))
	if failure != nil {
		return api.Failure(failure)
	}

	return api.Success(api.NewPlacesResponse(query, places))
}

func (h *PlacesHandler) getSavedPlace(ctx context.Context) (events.APIGatewayProxyResponse, error) {
	place, err := h.places.GetSavedPlace(ctx)
	if err != nil {
		if errors.Is(err, cache.ErrPlaceNotSaved) {
			return api.Error("No place saved", http.StatusNotFound)
		}
		log.Error().Err(err).Msg("Error loading saved place")
		return api.Error("Error loading saved place", http.StatusInternalServerError)
	}
	return api.Success(api.NewSavedPlaceResponse(*place))
}

func (h *PlacesHandler) savePlace(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	body := []byte(request.Body)
	if request.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(request.Body)
		if err != nil {
			return api.Error("Invalid request body", http.StatusBadRequest)
		}
		body = decoded
	}

	var place models.Place
	if err := json.Unmarshal(body, &place); err != nil {
		return api.Error("Invalid request body", http.StatusBadRequest)
	}
	if place.Name == "" || place.Location.Lng == "" || place.Location.Lat == "" {
		return api.Error("Place requires a name and a location", http.StatusBadRequest)
	}

	if err := h.places.SavePlace(ctx, place); err != nil {
		log.Error().Err(err).Str("place", place.Name).Msg("Error saving place")
		return api.Error("Error saving place", http.StatusInternalServerError)
	}
	return api.Success(api.NewSavedPlaceResponse(place))
}

func isSavedPlacePath(request events.APIGatewayProxyRequest) bool {
	path := request.Resource
	if path == "" {
		path = request.Path
	}
	return strings.HasSuffix(strings.TrimSuffix(path, "/"), "/place")
}

// awaitStream waits for the stream's single result. A stream that ends
// without one is reported as a transport failure.
func awaitStream[T any](ctx context.Context, s *async.Stream[T]) (T, *async.Error) {
	var zero T
	r, ok := s.Await(ctx)
	if !ok {
		cause := ctx.Err()
		if cause == nil {
			cause = errors.New("stream closed without a result")
		}
		return zero, async.NewTransportError(cause)
	}
	if failure := r.Err(); failure != nil {
		return zero, failure
	}
	v, _ := r.Value()
	return v, nil
}
