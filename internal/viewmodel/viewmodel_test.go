package viewmodel

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bbernstein/sunnyweather/internal/async"
	"github.com/bbernstein/sunnyweather/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	mu             sync.Mutex
	weatherCalls   []models.Location
	searchPlacesFn func(ctx context.Context, query string) *async.Stream[[]models.Place]
	refreshFn      func(ctx context.Context, lng, lat string) *async.Stream[models.Weather]
	savePlaceFn    func(ctx context.Context, place models.Place) error
	getSavedFn     func(ctx context.Context) (*models.Place, error)
	isSavedFn      func(ctx context.Context) (bool, error)
}

func (m *mockRepository) SearchPlaces(ctx context.Context, query string) *async.Stream[[]models.Place] {
	return m.searchPlacesFn(ctx, query)
}

func (m *mockRepository) RefreshWeather(ctx context.Context, lng, lat string) *async.Stream[models.Weather] {
	m.mu.Lock()
	m.weatherCalls = append(m.weatherCalls, models.Location{Lng: models.Coordinate(lng), Lat: models.Coordinate(lat)})
	m.mu.Unlock()
	return m.refreshFn(ctx, lng, lat)
}

func (m *mockRepository) SavePlace(ctx context.Context, place models.Place) error {
	return m.savePlaceFn(ctx, place)
}

func (m *mockRepository) GetSavedPlace(ctx context.Context) (*models.Place, error) {
	return m.getSavedFn(ctx)
}

func (m *mockRepository) IsPlaceSaved(ctx context.Context) (bool, error) {
	return m.isSavedFn(ctx)
}

func TestPlaceViewModelSearch(t *testing.T) {
	d := NewDispatcher()
	defer d.Close()

	repo := &mockRepository{
		searchPlacesFn: func(ctx context.Context, query string) *async.Stream[[]models.Place] {
			return async.Just(async.Success([]models.Place{{Name: query + "市"}}))
		},
	}
	vm := NewPlaceViewModel(context.Background(), repo, d)
	assert.Nil(t, vm.PlaceList())

	delivered := make(chan async.Result[[]models.Place], 1)
	vm.Observe(func(r async.Result[[]models.Place]) { delivered <- r })

	vm.SearchPlaces("北京")
	assert.Equal(t, "北京", vm.Query())

	select {
	case r := <-delivered:
		places, ok := r.Value()
		require.True(t, ok)
		assert.Equal(t, []models.Place{{Name: "北京市"}}, places)
	case <-time.After(2 * time.Second):
		t.Fatal("no places delivered")
	}
	assert.Equal(t, []models.Place{{Name: "北京市"}}, vm.PlaceList())
}

func TestPlaceViewModelPersistence(t *testing.T) {
	d := NewDispatcher()
	defer d.Close()

	var saved *models.Place
	repo := &mockRepository{
		savePlaceFn: func(ctx context.Context, place models.Place) error {
			saved = &place
			return nil
		},
		getSavedFn: func(ctx context.Context) (*models.Place, error) {
			if saved == nil {
				return nil, errors.New("no saved place")
			}
			return saved, nil
		},
		isSavedFn: func(ctx context.Context) (bool, error) { return saved != nil, nil },
	}
	vm := NewPlaceViewModel(context.Background(), repo, d)
	ctx := context.Background()

	isSaved, err := vm.IsPlaceSaved(ctx)
	require.NoError(t, err)
	assert.False(t, isSaved)

	place := models.Place{Name: "Suzhou", Location: models.Location{Lng: "120.58", Lat: "31.30"}}
	require.NoError(t, vm.SavePlace(ctx, place))

	isSaved, err = vm.IsPlaceSaved(ctx)
	require.NoError(t, err)
	assert.True(t, isSaved)

	got, err := vm.GetSavedPlace(ctx)
	require.NoError(t, err)
	assert.Equal(t, place, *got)
}

func TestWeatherViewModelRefresh(t *testing.T) {
	d := NewDispatcher()
	defer d.Close()

	repo := &mockRepository{
		refreshFn: func(ctx context.Context, lng, lat string) *async.Stream[models.Weather] {
			return async.Just(async.Success(models.Weather{
				Realtime: models.Realtime{Skycon: "CLEAR_DAY", Temperature: 21},
			}))
		},
	}
	vm := NewWeatherViewModel(context.Background(), repo, d)
	vm.SetPlace(models.Place{Name: "北京市", Location: models.Location{Lng: "116.4073963", Lat: "39.9041999"}})
	assert.Equal(t, "北京市", vm.PlaceName)
	assert.Equal(t, Idle, vm.State())

	delivered := make(chan async.Result[models.Weather], 2)
	vm.Observe(func(r async.Result[models.Weather]) { delivered <- r })

	for i := 0; i < 2; i++ {
		vm.RefreshWeather(vm.LocationLng, vm.LocationLat)
		select {
		case r := <-delivered:
			weather, ok := r.Value()
			require.True(t, ok)
			assert.Equal(t, "CLEAR_DAY", weather.Realtime.Skycon)
		case <-time.After(2 * time.Second):
			t.Fatal("no weather delivered")
		}
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()
	want := models.Location{Lng: "116.4073963", Lat: "39.9041999"}
	assert.Equal(t, []models.Location{want, want}, repo.weatherCalls)
}

func TestWeatherViewModelFailure(t *testing.T) {
	d := NewDispatcher()
	defer d.Close()

	repo := &mockRepository{
		refreshFn: func(ctx context.Context, lng, lat string) *async.Stream[models.Weather] {
			return async.Just(async.Failure[models.Weather](async.NewCombinedStatusError("error", "ok")))
		},
	}
	vm := NewWeatherViewModel(context.Background(), repo, d)

	delivered := make(chan async.Result[models.Weather], 1)
	vm.Observe(func(r async.Result[models.Weather]) { delivered <- r })
	vm.RefreshWeather("1", "2")

	select {
	case r := <-delivered:
		require.True(t, r.IsFailure())
		assert.Equal(t, async.CombinedStatusError, r.Err().Kind)
		assert.Equal(t, "error", r.Err().RealtimeStatus)
		assert.Equal(t, "ok", r.Err().ForecastStatus)
	case <-time.After(2 * time.Second):
		t.Fatal("no failure delivered")
	}
	assert.Eventually(t, func() bool { return vm.State() == Delivered }, time.Second, 5*time.Millisecond)
}
