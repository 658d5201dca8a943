package viewmodel

import (
	"context"

	"github.com/bbernstein/sunnyweather/internal/async"
	"github.com/bbernstein/sunnyweather/internal/models"
)

type WeatherRepository interface {
	RefreshWeather(ctx context.Context, lng, lat string) *async.Stream[models.Weather]
}

// WeatherViewModel holds the place being displayed and refreshes its weather.
// LocationLng, LocationLat and PlaceName are owned by the caller and are not
// synchronized.
type WeatherViewModel struct {
	LocationLng string
	LocationLat string
	PlaceName   string

	weather *KeyedStream[models.Location, models.Weather]
}

func NewWeatherViewModel(ctx context.Context, repo WeatherRepository, dispatcher *Dispatcher) *WeatherViewModel {
	fetch := func(ctx context.Context, loc models.Location) *async.Stream[models.Weather] {
		return repo.RefreshWeather(ctx, loc.Lng.String(), loc.Lat.String())
	}
	return &WeatherViewModel{
		weather: NewKeyedStream[models.Location, models.Weather](ctx, fetch, dispatcher),
	}
}

// SetPlace copies the place's name and coordinates into the view model.
func (vm *WeatherViewModel) SetPlace(place models.Place) {
	vm.LocationLng = place.Location.Lng.String()
	vm.LocationLat = place.Location.Lat.String()
	vm.PlaceName = place.Name
}

// RefreshWeather starts a fetch for the coordinates. Refreshing the same
// coordinates fetches again.
func (vm *WeatherViewModel) RefreshWeather(lng, lat string) {
	vm.weather.SetKey(models.Location{
		Lng: models.Coordinate(lng),
		Lat: models.Coordinate(lat),
	})
}

func (vm *WeatherViewModel) Observe(fn Observer[models.Weather]) func() {
	return vm.weather.Observe(fn)
}

func (vm *WeatherViewModel) State() State {
	state, _ := vm.weather.State()
	return state
}
