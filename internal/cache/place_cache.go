package cache

import (
	"context"
	"errors"
	"time"

	"github.com/bbernstein/sunnyweather/internal/models"
)

// ErrPlaceNotSaved is returned by Load when no place has been saved yet.
var ErrPlaceNotSaved = errors.New("no saved place")

// PlaceCache persists the single saved place as one serialized blob.
type PlaceCache interface {
	Save(ctx context.Context, place models.Place) error
	Load(ctx context.Context) (*models.Place, error)
	Exists(ctx context.Context) (bool, error)
}

type clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}
