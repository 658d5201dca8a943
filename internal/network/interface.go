package network

import (
	"context"

	"github.com/bbernstein/sunnyweather/internal/models"
)

// Service is the remote data source used by the repository.
type Service interface {
	SearchPlaces(ctx context.Context, query string) (*models.PlaceResponse, error)
	GetRealtimeWeather(ctx context.Context, lng, lat string) (*models.RealtimeResponse, error)
	GetDailyWeather(ctx context.Context, lng, lat string) (*models.DailyResponse, error)
}
