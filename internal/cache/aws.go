package cache

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

// loadAWSConfig uses the default credential chain, or static dummy
// credentials when a local endpoint (DynamoDB Local, MinIO) is configured.
func loadAWSConfig(ctx context.Context, endpoint string) (aws.Config, error) {
	if endpoint == "" {
		return config.LoadDefaultConfig(ctx)
	}

	return config.LoadDefaultConfig(ctx,
		config.WithRegion("local"),
		config.WithClientLogMode(aws.LogRetries),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("local", "local", "")),
	)
}

// NewDynamoClient creates a new DynamoDB client based on environment
func NewDynamoClient(ctx context.Context, endpoint string) (*dynamodb.Client, error) {
	cfg, err := loadAWSConfig(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	if endpoint == "" {
		return dynamodb.NewFromConfig(cfg), nil
	}

	log.Debug().Str("endpoint", endpoint).Msg("Using local DynamoDB endpoint")
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	}), nil
}

// NewS3Client creates an S3 client. Local endpoints use path-style addressing.
func NewS3Client(ctx context.Context, endpoint string) (*s3.Client, error) {
	cfg, err := loadAWSConfig(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	if endpoint == "" {
		return s3.NewFromConfig(cfg), nil
	}

	log.Debug().Str("endpoint", endpoint).Msg("Using local S3 endpoint")
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	}), nil
}
