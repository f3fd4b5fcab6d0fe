package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// DynamoDBClient is the subset of the DynamoDB API the store needs.
type DynamoDBClient interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// DynamoRecord is one cache entry. TTL doubles as the table's DynamoDB TTL
// attribute so expired rows are eventually deleted server side.
type DynamoRecord struct {
	Key         string `dynamodbav:"cacheKey"`
	Value       []byte `dynamodbav:"value"`
	LastUpdated int64  `dynamodbav:"lastUpdated"`
	TTL         int64  `dynamodbav:"ttl"`
}

// DynamoStore keeps entries in a DynamoDB table keyed by cacheKey.
type DynamoStore struct {
	client    DynamoDBClient
	tableName string
	clock     clockwork.Clock
}

func NewDynamoStore(client DynamoDBClient, tableName string, clock clockwork.Clock) *DynamoStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &DynamoStore{client: client, tableName: tableName, clock: clock}
}

func (s *DynamoStore) Get(ctx context.Context, key string) ([]byte, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"cacheKey": &types.AttributeValueMemberS{Value: key},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("getting item from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, nil
	}

	var record DynamoRecord
	if err := attributevalue.UnmarshalMap(result.Item, &record); err != nil {
		return nil, fmt.Errorf("unmarshaling cache record: %w", err)
	}

	// DynamoDB deletes expired items lazily, so check ourselves
	if s.clock.Now().Unix() >= record.TTL {
		log.Debug().Str("key", key).Msg("Cache expired")
		return nil, nil
	}

	return record.Value, nil
}

func (s *DynamoStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	now := s.clock.Now().Unix()
	record := DynamoRecord{
		Key:         key,
		Value:       value,
		LastUpdated: now,
		TTL:         now + int64(ttl.Seconds()),
	}

	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("marshaling cache record: %w", err)
	}

	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("putting item in DynamoDB: %w", err)
	}

	log.Debug().Str("key", key).Msg("Saved entry to DynamoDB cache")
	return nil
}
