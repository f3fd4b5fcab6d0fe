package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// S3Client defines the interface for S3 operations we need
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Record is the JSON envelope stored per key.
type S3Record struct {
	Value       []byte `json:"value"`
	LastUpdated int64  `json:"lastUpdated"`
	TTL         int64  `json:"ttl"`
}

// S3Store keeps one JSON object per cache key under prefix.
type S3Store struct {
	client     S3Client
	bucketName string
	prefix     string
	clock      clockwork.Clock
}

func NewS3Store(client S3Client, bucketName, prefix string, clock clockwork.Clock) *S3Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &S3Store{client: client, bucketName: bucketName, prefix: prefix, clock: clock}
}

func (s *S3Store) objectKey(key string) string {
	return s.prefix + url.PathEscape(key) + ".json"
}

func (s *S3Store) Get(ctx context.Context, key string) ([]byte, error) {
	if s.bucketName == "" {
		return nil, fmt.Errorf("empty bucket name")
	}

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting object from S3: %w", err)
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			log.Error().Err(err).Msg("Error closing S3 object body")
		}
	}(result.Body)

	var record S3Record
	if err := json.NewDecoder(result.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("decoding cache record: %w", err)
	}

	if s.clock.Now().Unix() >= record.TTL {
		log.Debug().Str("key", key).Msg("S3 cache entry expired")
		return nil, nil
	}

	return record.Value, nil
}

func (s *S3Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if s.bucketName == "" {
		return fmt.Errorf("empty bucket name")
	}

	now := s.clock.Now().Unix()
	record := S3Record{
		Value:       value,
		LastUpdated: now,
		TTL:         now + int64(ttl.Seconds()),
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(record); err != nil {
		return fmt.Errorf("encoding cache record: %w", err)
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(s.objectKey(key)),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("saving to S3: %w", err)
	}

	log.Debug().Str("key", key).Msg("Saved entry to S3 cache")
	return nil
}
