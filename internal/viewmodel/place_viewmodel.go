package viewmodel

import (
	"context"

	"github.com/bbernstein/sunnyweather/internal/async"
	"github.com/bbernstein/sunnyweather/internal/models"
)

type PlaceRepository interface {
	SearchPlaces(ctx context.Context, query string) *async.Stream[[]models.Place]
	SavePlace(ctx context.Context, place models.Place) error
	GetSavedPlace(ctx context.Context) (*models.Place, error)
	IsPlaceSaved(ctx context.Context) (bool, error)
}

// PlaceViewModel drives place search. Only the results of the latest query
// reach observers.
type PlaceViewModel struct {
	repo   PlaceRepository
	places *KeyedStream[string, []models.Place]
}

func NewPlaceViewModel(ctx context.Context, repo PlaceRepository, dispatcher *Dispatcher) *PlaceViewModel {
	return &PlaceViewModel{
		repo:   repo,
		places: NewKeyedStream[string, []models.Place](ctx, repo.SearchPlaces, dispatcher),
	}
}

func (vm *PlaceViewModel) SearchPlaces(query string) {
	vm.places.SetKey(query)
}

func (vm *PlaceViewModel) Observe(fn Observer[[]models.Place]) func() {
	return vm.places.Observe(fn)
}

// Query returns the most recent search query.
func (vm *PlaceViewModel) Query() string {
	_, query := vm.places.State()
	return query
}

// PlaceList returns the places from the last successful search of the
// current query.
func (vm *PlaceViewModel) PlaceList() []models.Place {
	r, ok := vm.places.Latest()
	if !ok {
		return nil
	}
	places, _ := r.Value()
	return places
}

func (vm *PlaceViewModel) SavePlace(ctx context.Context, place models.Place) error {
	return vm.repo.SavePlace(ctx, place)
}

func (vm *PlaceViewModel) GetSavedPlace(ctx context.Context) (*models.Place, error) {
	return vm.repo.GetSavedPlace(ctx)
}

func (vm *PlaceViewModel) IsPlaceSaved(ctx context.Context) (bool, error) {
	return vm.repo.IsPlaceSaved(ctx)
}
