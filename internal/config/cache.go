package config

import (
	"github.com/rs/zerolog/log"
)

// PlaceCacheBackend names where the saved place blob lives.
type PlaceCacheBackend string

const (
	BackendS3     PlaceCacheBackend = "s3"
	BackendDynamo PlaceCacheBackend = "dynamo"
)

// PlaceCacheConfig holds the saved-place storage settings
type PlaceCacheConfig struct {
	Backend    PlaceCacheBackend
	Bucket     string
	Table      string
	RecordName string

	// Endpoint overrides the AWS endpoint, for local emulators.
	S3Endpoint     string
	DynamoEndpoint string
}

const (
	defaultPlaceCacheTable  = "sunny-weather-place"
	defaultPlaceCacheRecord = "place"
)

// GetPlaceCacheConfig returns the place cache configuration from environment variables or defaults
func GetPlaceCacheConfig() *PlaceCacheConfig {
	backend := PlaceCacheBackend(getEnvOrDefault("PLACE_CACHE_BACKEND", string(BackendS3)))
	switch backend {
	case BackendS3, BackendDynamo:
	default:
		log.Warn().Str("backend", string(backend)).Msg("Unknown place cache backend, using s3")
		backend = BackendS3
	}

	config := &PlaceCacheConfig{
		Backend:        backend,
		Bucket:         getEnvOrDefault("PLACE_CACHE_BUCKET", ""),
		Table:          getEnvOrDefault("PLACE_CACHE_TABLE", defaultPlaceCacheTable),
		RecordName:     getEnvOrDefault("PLACE_CACHE_RECORD", defaultPlaceCacheRecord),
		S3Endpoint:     getEnvOrDefault("S3_ENDPOINT", ""),
		DynamoEndpoint: getEnvOrDefault("DYNAMODB_ENDPOINT", ""),
	}

	log.Debug().
		Str("Backend", string(config.Backend)).
		Str("Bucket", config.Bucket).
		Str("Table", config.Table).
		Str("RecordName", config.RecordName).
		Msg("Place cache configuration loaded")

	return config
}
