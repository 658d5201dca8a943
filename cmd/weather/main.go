package main

import (
	"context"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/bbernstein/sunnyweather/internal/config"
	"github.com/bbernstein/sunnyweather/internal/handler"
	"github.com/bbernstein/sunnyweather/internal/network"
	"github.com/bbernstein/sunnyweather/internal/repository"
	"github.com/bbernstein/sunnyweather/pkg/http/client"
	"github.com/rs/zerolog/log"
)

var (
	lambdaStart    = lambda.Start // Allow mocking of lambda.Start in tests
	weatherHandler *handler.WeatherHandler
	setupOnce      sync.Once
)

func setup() {
	setupOnce.Do(func() {
		cfg := config.LoadFromEnv()
		cfg.InitializeLogging()

		httpClient := client.New(client.Options{
			BaseURL:     cfg.APIBaseURL,
			Timeout:     cfg.HTTPTimeout,
			MaxFailures: cfg.BreakerMaxFailures,
			OpenTimeout: cfg.BreakerOpenTimeout,
		})

		net := network.New(httpClient, network.Options{
			Token:      cfg.APIToken,
			Lang:       cfg.Lang,
			DailySteps: cfg.DailySteps,
		})

		// The saved place lives behind the places lambda. Without a place cache the
		// repository answers place operations with repository.ErrNoPlaceCache.
		weatherHandler = handler.NewWeatherHandler(repository.New(net, nil))

		log.Debug().Str("base_url", cfg.APIBaseURL).Msg("Weather lambda initialized")
	})
}

func handleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return weatherHandler.HandleRequest(ctx, request)
}

func main() {
	setup()
	lambdaStart(handleRequest)
}
