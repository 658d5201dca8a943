package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/bbernstein/sunnyweather/internal/models"
	"github.com/rs/zerolog/log"
)

// DynamoDBClient defines the DynamoDB operations the place cache uses
type DynamoDBClient interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// DynamoPlaceCache keeps the saved place as a single item keyed by record name
type DynamoPlaceCache struct {
	client     DynamoDBClient
	tableName  string
	recordName string
	clock      clock
}

var _ PlaceCache = (*DynamoPlaceCache)(nil)

func NewDynamoPlaceCache(client DynamoDBClient, tableName, recordName string) *DynamoPlaceCache {
	return &DynamoPlaceCache{
		client:     client,
		tableName:  tableName,
		recordName: recordName,
		clock:      systemClock{},
	}
}

func (c *DynamoPlaceCache) Save(ctx context.Context, place models.Place) error {
	payload, err := json.Marshal(place)
	if err != nil {
		return fmt.Errorf("encoding place: %w", err)
	}

	record := models.PlaceRecord{
		RecordName:  c.recordName,
		Payload:     string(payload),
		LastUpdated: c.clock.Now().Unix(),
	}
	if err := record.Validate(); err != nil {
		return fmt.Errorf("invalid place record: %w", err)
	}

	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("marshaling place record: %w", err)
	}

	if _, err := c.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.tableName),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("putting place in DynamoDB: %w", err)
	}

	log.Debug().Str("record", c.recordName).Str("place", place.Name).Msg("Saved place to DynamoDB")
	return nil
}

func (c *DynamoPlaceCache) Load(ctx context.Context) (*models.Place, error) {
	result, err := c.client.GetItem(ctx, c.getItemInput(false))
	if err != nil {
		return nil, fmt.Errorf("getting place from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, ErrPlaceNotSaved
	}

	var record models.PlaceRecord
	if err := attributevalue.UnmarshalMap(result.Item, &record); err != nil {
		return nil, fmt.Errorf("unmarshaling place record: %w", err)
	}

	var place models.Place
	if err := json.Unmarshal([]byte(record.Payload), &place); err != nil {
		return nil, fmt.Errorf("decoding place: %w", err)
	}
	return &place, nil
}

func (c *DynamoPlaceCache) Exists(ctx context.Context) (bool, error) {
	result, err := c.client.GetItem(ctx, c.getItemInput(true))
	if err != nil {
		return false, fmt.Errorf("checking place in DynamoDB: %w", err)
	}
	return result.Item != nil, nil
}

func (c *DynamoPlaceCache) getItemInput(keyOnly bool) *dynamodb.GetItemInput {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(c.tableName),
		Key: map[string]types.AttributeValue{
			"recordName": &types.AttributeValueMemberS{Value: c.recordName},
		},
		ConsistentRead: aws.Bool(true),
	}
	if keyOnly {
		input.ProjectionExpression = aws.String("recordName")
	}
	return input
}
