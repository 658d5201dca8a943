package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/bbernstein/sunnyweather/internal/models"
	"github.com/rs/zerolog/log"
)

// S3Client defines the interface for S3 operations we need
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

const keyPrefix = "sunny_weather/"

// S3PlaceCache keeps the saved place as a JSON object under a fixed key
type S3PlaceCache struct {
	client     S3Client
	bucketName string
	key        string
}

var _ PlaceCache = (*S3PlaceCache)(nil)

func NewS3PlaceCache(client S3Client, bucketName, recordName string) *S3PlaceCache {
	return &S3PlaceCache{
		client:     client,
		bucketName: bucketName,
		key:        keyPrefix + recordName + ".json",
	}
}

func (c *S3PlaceCache) Save(ctx context.Context, place models.Place) error {
	if c.bucketName == "" {
		return fmt.Errorf("empty bucket name")
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(place); err != nil {
		return fmt.Errorf("encoding place: %w", err)
	}

	_, err := c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucketName),
		Key:         aws.String(c.key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("saving to S3: %w", err)
	}

	log.Debug().Str("key", c.key).Str("place", place.Name).Msg("Saved place to S3")
	return nil
}

func (c *S3PlaceCache) Load(ctx context.Context) (*models.Place, error) {
	if c.bucketName == "" {
		return nil, fmt.Errorf("empty bucket name")
	}

	result, err := c.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(c.key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, ErrPlaceNotSaved
		}
		return nil, fmt.Errorf("getting place from S3: %w", err)
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing S3 object body")
		}
	}(result.Body)

	var place models.Place
	if err := json.NewDecoder(result.Body).Decode(&place); err != nil {
		return nil, fmt.Errorf("decoding place: %w", err)
	}
	return &place, nil
}

func (c *S3PlaceCache) Exists(ctx context.Context) (bool, error) {
	if c.bucketName == "" {
		return false, fmt.Errorf("empty bucket name")
	}

	_, err := c.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(c.key),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("checking place in S3: %w", err)
	}
	return true, nil
}

func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	return errors.As(err, &noSuchKey) || errors.As(err, &notFound)
}
