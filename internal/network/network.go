package network

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/bbernstein/sunnyweather/internal/models"
	"github.com/bbernstein/sunnyweather/pkg/http/client"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Token      string
	Lang       string
	DailySteps int
}

// Network is the single entry point to the weather API.
type Network struct {
	executor   client.Executor
	token      string
	lang       string
	dailySteps int
}

var _ Service = (*Network)(nil)

func New(executor client.Executor, opts Options) *Network {
	if opts.Lang == "" {
		opts.Lang = "zh_CN"
	}
	if opts.DailySteps == 0 {
		opts.DailySteps = 5
	}
	return &Network{
		executor:   executor,
		token:      opts.Token,
		lang:       opts.Lang,
		dailySteps: opts.DailySteps,
	}
}

func (n *Network) SearchPlaces(ctx context.Context, query string) (*models.PlaceResponse, error) {
	log.Debug().Str("query", query).Msg("Searching places")
	return Await[models.PlaceResponse](ctx, n.executor, client.Call{
		Path: "/v2/place",
		Query: url.Values{
			"query": {query},
			"token": {n.token},
			"lang":  {n.lang},
		},
	})
}

func (n *Network) GetRealtimeWeather(ctx context.Context, lng, lat string) (*models.RealtimeResponse, error) {
	log.Debug().Str("lng", lng).Str("lat", lat).Msg("Fetching realtime weather")
	return Await[models.RealtimeResponse](ctx, n.executor, client.Call{
		Path: n.weatherPath(lng, lat, "realtime.json"),
	})
}

func (n *Network) GetDailyWeather(ctx context.Context, lng, lat string) (*models.DailyResponse, error) {
	log.Debug().Str("lng", lng).Str("lat", lat).Msg("Fetching daily weather")
	return Await[models.DailyResponse](ctx, n.executor, client.Call{
		Path:  n.weatherPath(lng, lat, "daily"),
		Query: url.Values{"dailysteps": {strconv.Itoa(n.dailySteps)}},
	})
}

func (n *Network) weatherPath(lng, lat, resource string) string {
	return fmt.Sprintf("/v2.6/%s/%s,%s/%s",
		url.PathEscape(n.token), url.PathEscape(lng), url.PathEscape(lat), resource)
}
