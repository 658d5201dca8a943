package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bbernstein/sunnyweather/internal/async"
	"github.com/bbernstein/sunnyweather/internal/cache"
	"github.com/bbernstein/sunnyweather/internal/models"
	"github.com/bbernstein/sunnyweather/internal/network"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// DefaultStaggerDelay spaces the realtime and daily requests to stay within
// the API's one-request-per-second limit.
const DefaultStaggerDelay = time.Second

// Repository decides where data comes from and hands every remote result back
// as a single-value stream.
type Repository struct {
	network      network.Service
	places       cache.PlaceCache
	staggerDelay time.Duration
}

type Option func(*Repository)

// WithStaggerDelay overrides the wait between the realtime and daily requests.
func WithStaggerDelay(d time.Duration) Option {
	return func(r *Repository) {
		r.staggerDelay = d
	}
}

func New(net network.Service, places cache.PlaceCache, opts ...Option) *Repository {
	r := &Repository{
		network:      net,
		places:       places,
		staggerDelay: DefaultStaggerDelay,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SearchPlaces looks up places matching query.
func (r *Repository) SearchPlaces(ctx context.Context, query string) *async.Stream[[]models.Place] {
	requestID := uuid.NewString()
	return async.Fire(ctx, func(ctx context.Context) (async.Result[[]models.Place], error) {
		resp, err := r.network.SearchPlaces(ctx, query)
		if err != nil {
			return async.Result[[]models.Place]{}, fmt.Errorf("searching places: %w", err)
		}
		if resp == nil {
			return async.Failure[[]models.Place](async.NewEmptyBodyError()), nil
		}

		if resp.Status != models.StatusOK {
			log.Debug().Str("request_id", requestID).Str("query", query).Str("status", resp.Status).Msg("Place search rejected")
			return async.Failure[[]models.Place](async.NewStatusError(resp.Status)), nil
		}

		log.Debug().Str("request_id", requestID).Str("query", query).Int("count", len(resp.Places)).Msg("Place search completed")
		return async.Success(resp.Places), nil
	})
}

// RefreshWeather fetches the realtime and daily weather for a location. The
// daily request is dispatched one stagger delay after the realtime one, and
// the result is produced only once both have completed.
func (r *Repository) RefreshWeather(ctx context.Context, lng, lat string) *async.Stream[models.Weather] {
	requestID := uuid.NewString()
	return async.Fire(ctx, func(ctx context.Context) (async.Result[models.Weather], error) {
		var (
			g        errgroup.Group
			realtime *models.RealtimeResponse
			daily    *models.DailyResponse
		)

		// The sibling request is never cancelled; a failed join discards its result.
		g.Go(recovered("realtime fetch", func() error {
			resp, err := r.network.GetRealtimeWeather(ctx, lng, lat)
			if err != nil {
				return fmt.Errorf("fetching realtime weather: %w", err)
			}
			realtime = resp
			return nil
		}))
		log.Debug().Str("request_id", requestID).Str("lng", lng).Str("lat", lat).Msg("Dispatched realtime request")

		if err := r.stagger(ctx); err != nil {
			return async.Result[models.Weather]{}, err
		}

		g.Go(recovered("daily fetch", func() error {
			resp, err := r.network.GetDailyWeather(ctx, lng, lat)
			if err != nil {
				return fmt.Errorf("fetching daily weather: %w", err)
			}
			daily = resp
			return nil
		}))
		log.Debug().Str("request_id", requestID).Str("lng", lng).Str("lat", lat).Msg("Dispatched daily request")

		if err := g.Wait(); err != nil {
			return async.Result[models.Weather]{}, err
		}
		if realtime == nil || daily == nil {
			return async.Failure[models.Weather](async.NewEmptyBodyError()), nil
		}

		if realtime.Status != models.StatusOK || daily.Status != models.StatusOK {
			log.Debug().
				Str("request_id", requestID).
				Str("realtime_status", realtime.Status).
				Str("daily_status", daily.Status).
				Msg("Weather refresh rejected")
			return async.Failure[models.Weather](async.NewCombinedStatusError(realtime.Status, daily.Status)), nil
		}

		log.Debug().Str("request_id", requestID).Msg("Weather refresh completed")
		return async.Success(models.Weather{
			Realtime: realtime.Result.Realtime,
			Daily:    daily.Result.Daily,
		}), nil
	})
}

// recovered turns a panic in fn into an error so it reaches the join instead
// of taking down the process.
func recovered(name string, fn func() error) func() error {
	return func() (err error) {
		defer func() {
			if p := recover(); p != nil {
				err = async.NewTransportError(fmt.Errorf("%s panicked: %v", name, p))
			}
		}()
		return fn()
	}
}

func (r *Repository) stagger(ctx context.Context) error {
	if r.staggerDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(r.staggerDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return async.NewTransportError(ctx.Err())
	}
}

// ErrNoPlaceCache is returned by the place operations of a Repository built
// without a place cache.
var ErrNoPlaceCache = errors.New("no place cache configured")

// SavePlace stores place as the saved location, replacing any previous one.
func (r *Repository) SavePlace(ctx context.Context, place models.Place) error {
	if r.places == nil {
		return ErrNoPlaceCache
	}
	if err := r.places.Save(ctx, place); err != nil {
		return fmt.Errorf("saving place: %w", err)
	}
	return nil
}

// GetSavedPlace returns the saved place, or cache.ErrPlaceNotSaved.
func (r *Repository) GetSavedPlace(ctx context.Context) (*models.Place, error) {
	if r.places == nil {
		return nil, ErrNoPlaceCache
	}
	place, err := r.places.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading saved place: %w", err)
	}
	return place, nil
}

func (r *Repository) IsPlaceSaved(ctx context.Context) (bool, error) {
	if r.places == nil {
		return false, ErrNoPlaceCache
	}
	saved, err := r.places.Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("checking saved place: %w", err)
	}
	return saved, nil
}
