// Package s3store keeps objects in an S3-compatible service (AWS S3 or MinIO).
package s3store

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/dmitrijs2005/foodlog/internal/objectstore"
)

// seams for tests
var (
	loadDefaultAWSConfig  = config.LoadDefaultConfig
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// API is the part of *s3.Client the store uses.
type API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObjects(ctx context.Context, in *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
}

type Options struct {
	Region       string
	AccessKey    string
	SecretKey    string
	BaseEndpoint string
	// PublicBaseURL prefixes public object URLs: {PublicBaseURL}/{bucket}/{path}.
	PublicBaseURL string
}

type Store struct {
	api           API
	publicBaseURL string
}

var _ objectstore.Store = (*Store)(nil)

// New builds a client with static credentials and path-style addressing so
// MinIO endpoints work.
func New(ctx context.Context, opts Options) (*Store, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(opts.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey,
			opts.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if opts.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(opts.BaseEndpoint)
		}
		o.UsePathStyle = true
	})

	return NewWithAPI(client, opts.PublicBaseURL), nil
}

func NewWithAPI(api API, publicBaseURL string) *Store {
	return &Store{api: api, publicBaseURL: publicBaseURL}
}

func (s *Store) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error {
	_, err := s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(path),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
		CacheControl:  aws.String("max-age=3600"),
	})
	if err != nil {
		return fmt.Errorf("put object %s/%s: %w", bucket, path, err)
	}
	return nil
}

func (s *Store) PublicURL(bucket, path string) string {
	return objectstore.JoinURL(s.publicBaseURL, bucket, path)
}

// Remove issues one DeleteObjects call. Per-key failures reported by the
// service are returned as an error naming the first failed key.
func (s *Store) Remove(ctx context.Context, bucket string, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}

	ids := make([]types.ObjectIdentifier, 0, len(paths))
	for _, p := range paths {
		ids = append(ids, types.ObjectIdentifier{Key: aws.String(p)})
	}

	out, err := s.api.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(bucket),
		Delete: &types.Delete{Objects: ids, Quiet: aws.Bool(true)},
	})
	if err != nil {
		return fmt.Errorf("delete objects in %s: %w", bucket, err)
	}
	if out != nil && len(out.Errors) > 0 {
		e := out.Errors[0]
		return fmt.Errorf("delete %s/%s: %s", bucket, aws.ToString(e.Key), aws.ToString(e.Message))
	}
	return nil
}
