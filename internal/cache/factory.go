package cache

import (
	"context"
	"fmt"

	"github.com/bbernstein/sunnyweather/internal/config"
)

// New builds the place cache selected by cfg.
func New(ctx context.Context, cfg *config.PlaceCacheConfig) (PlaceCache, error) {
	switch cfg.Backend {
	case config.BackendDynamo:
		client, err := NewDynamoClient(ctx, cfg.DynamoEndpoint)
		if err != nil {
			return nil, fmt.Errorf("creating DynamoDB client: %w", err)
		}
		return NewDynamoPlaceCache(client, cfg.Table, cfg.RecordName), nil
	case config.BackendS3, "":
		if cfg.Bucket == "" {
			return nil, fmt.Errorf("place cache bucket is not configured")
		}
		client, err := NewS3Client(ctx, cfg.S3Endpoint)
		if err != nil {
			return nil, fmt.Errorf("creating S3 client: %w", err)
		}
		return NewS3PlaceCache(client, cfg.Bucket, cfg.RecordName), nil
	default:
		return nil, fmt.Errorf("unknown place cache backend %q", cfg.Backend)
	}
}
