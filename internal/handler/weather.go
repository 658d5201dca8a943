package handler

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/bbernstein/sunnyweather/internal/api"
	"github.com/bbernstein/sunnyweather/internal/async"
	"github.com/bbernstein/sunnyweather/internal/models"
)

type WeatherService interface {
	RefreshWeather(ctx context.Context, lng, lat string) *async.Stream[models.Weather]
}

type WeatherHandler struct {
	weather WeatherService
}

func NewWeatherHandler(weather WeatherService) *WeatherHandler {
	return &WeatherHandler{
		weather: weather,
	}
}

func (h *WeatherHandler) HandleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	lng, lat, err := api.ParseLocation(request.QueryStringParameters)
	if err != nil {
		return api.Error(err.Error(), api.ErrorStatus(err))
	}

	weather, failure := awaitStream(ctx, h.weather.RefreshWeather(ctx, lng, lat))
	if failure != nil {
		return api.Failure(failure)
	}

	return api.Success(api.NewWeatherResponse(weather))
}
