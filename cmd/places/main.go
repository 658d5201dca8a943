package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/bbernstein/sunnyweather/internal/cache"
	"github.com/bbernstein/sunnyweather/internal/config"
	"github.com/bbernstein/sunnyweather/internal/handler"
	"github.com/bbernstein/sunnyweather/internal/network"
	"github.com/bbernstein/sunnyweather/internal/repository"
	"github.com/bbernstein/sunnyweather/pkg/http/client"
	"github.com/rs/zerolog/log"
)

var (
	lambdaStart   = lambda.Start // Allow mocking of lambda.Start in tests
	placesHandler *handler.PlacesHandler
	setupOnce     sync.Once
	setupErr      error
)

func setup(ctx context.Context) error {
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

		placeCache, err := cache.New(ctx, config.GetPlaceCacheConfig())
		if err != nil {
			setupErr = fmt.Errorf("initializing place cache: %w", err)
			return
		}

		placesHandler = handler.NewPlacesHandler(repository.New(net, placeCache))
	})
	return setupErr
}

func handleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return placesHandler.HandleRequest(ctx, request)
}

func main() {
	if err := setup(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize places lambda")
	}
	lambdaStart(handleRequest)
}
