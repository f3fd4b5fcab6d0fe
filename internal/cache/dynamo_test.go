package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockDynamoDBClient struct {
	items map[string]map[string]types.AttributeValue
	err   error
}

var _ DynamoDBClient = (*mockDynamoDBClient)(nil)

func newMockDynamo() *mockDynamoDBClient {
	return &mockDynamoDBClient{items: make(map[string]map[string]types.AttributeValue)}
}

func (m *mockDynamoDBClient) GetItem(_ context.Context, params *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	key := params.Key["cacheKey"].(*types.AttributeValueMemberS).Value
	return &dynamodb.GetItemOutput{Item: m.items[key]}, nil
}

func (m *mockDynamoDBClient) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	key := params.Item["cacheKey"].(*types.AttributeValueMemberS).Value
	m.items[key] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

func TestDynamoStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClockAt(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	client := newMockDynamo()
	store := NewDynamoStore(client, "paddlewise-cache", clock)

	require.NoError(t, store.Set(ctx, "coastline:50.3500:-3.5800", []byte("182.5"), 24*time.Hour))

	var record DynamoRecord
	require.NoError(t, attributevalue.UnmarshalMap(client.items["coastline:50.3500:-3.5800"], &record))
	assert.Equal(t, clock.Now().Unix()+86400, record.TTL)

	got, err := store.Get(ctx, "coastline:50.3500:-3.5800")
	require.NoError(t, err)
	assert.Equal(t, []byte("182.5"), got)

	clock.Advance(25 * time.Hour)
	got, err = store.Get(ctx, "coastline:50.3500:-3.5800")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDynamoStoreMissAndError(t *testing.T) {
	ctx := context.Background()
	client := newMockDynamo()
	store := NewDynamoStore(client, "paddlewise-cache", nil)

	got, err := store.Get(ctx, "nothing")
	require.NoError(t, err)
	assert.Nil(t, got)

	client.err = errors.New("ProvisionedThroughputExceeded")
	_, err = store.Get(ctx, "nothing")
	assert.ErrorContains(t, err, "ProvisionedThroughputExceeded")
	assert.Error(t, store.Set(ctx, "k", []byte("v"), time.Hour))
}
