package cache

import (
	"context"
	"testing"

	"github.com/bbernstein/sunnyweather/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	ctx := context.Background()

	dynamo, err := New(ctx, &config.PlaceCacheConfig{
		Backend:        config.BackendDynamo,
		Table:          "places",
		RecordName:     "place",
		DynamoEndpoint: "http://localhost:8000",
	})
	require.NoError(t, err)
	assert.IsType(t, &DynamoPlaceCache{}, dynamo)

	s3Cache, err := New(ctx, &config.PlaceCacheConfig{
		Backend:    config.BackendS3,
		Bucket:     "sunny-weather",
		RecordName: "place",
		S3Endpoint: "http://localhost:4566",
	})
	require.NoError(t, err)
	assert.IsType(t, &S3PlaceCache{}, s3Cache)

	_, err = New(ctx, &config.PlaceCacheConfig{Backend: config.BackendS3})
	assert.Error(t, err)

	_, err = New(ctx, &config.PlaceCacheConfig{Backend: "redis"})
	assert.Error(t, err)
}
