// Package storage provides read-only access to the S3 media bucket.
package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/idance/opstools/internal/core/domain"
)

// Client is the subset of the S3 API the lister needs. Narrow on purpose so
// tests can fake it.
type Client interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Paginator walks ListObjectsV2 pages.
type Paginator interface {
	HasMorePages() bool
	NextPage(ctx context.Context, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// PaginatorFactory builds a Paginator for one listing request.
type PaginatorFactory func(client Client, params *s3.ListObjectsV2Input) Paginator

// Config holds the settings for reaching one bucket.
type Config struct {
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// BucketLister enumerates every object in a bucket via paginated
// ListObjectsV2 calls.
type BucketLister struct {
	client    Client
	bucket    string
	paginator PaginatorFactory
}

// Option configures a BucketLister.
type Option func(*BucketLister)

// WithClient sets a pre-built S3 client. Useful for tests.
func WithClient(client Client) Option {
	return func(l *BucketLister) {
		l.client = client
	}
}

// WithPaginatorFactory replaces the default paginator construction. Useful
// for tests together with WithClient.
func WithPaginatorFactory(factory PaginatorFactory) Option {
	return func(l *BucketLister) {
		l.paginator = factory
	}
}

// NewBucketLister builds a lister for cfg.Bucket. Static credentials are
// used when provided; otherwise the default AWS credential chain applies.
func NewBucketLister(ctx context.Context, cfg Config, opts ...Option) (*BucketLister, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("bucket is required")
	}

	lister := &BucketLister{bucket: cfg.Bucket}
	for _, opt := range opts {
		opt(lister)
	}

	if lister.client == nil {
		awsOptions := []func(*awsconfig.LoadOptions) error{
			awsconfig.WithRegion(cfg.Region),
		}
		if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
			awsOptions = append(awsOptions, awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
			))
		}

		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsOptions...)
		if err != nil {
			return nil, fmt.Errorf("load AWS config: %w", err)
		}
		lister.client = s3.NewFromConfig(awsCfg)
	}

	if lister.paginator == nil {
		lister.paginator = func(c Client, params *s3.ListObjectsV2Input) Paginator {
			if real, ok := c.(*s3.Client); ok {
				return s3.NewListObjectsV2Paginator(real, params)
			}
			return nil
		}
	}
	return lister, nil
}

// ListAll walks the whole bucket and returns every object.
func (l *BucketLister) ListAll(ctx context.Context) ([]domain.StorageObject, error) {
	paginator := l.paginator(l.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(l.bucket),
	})
	if paginator == nil {
		return nil, fmt.Errorf("paginator factory returned nil")
	}

	var objects []domain.StorageObject
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list objects: %w", err)
		}
		for _, obj := range page.Contents {
			record := domain.StorageObject{
				Key: aws.ToString(obj.Key),
			}
			if obj.Size != nil {
				record.Size = *obj.Size
			}
			if obj.LastModified != nil {
				record.LastModified = *obj.LastModified
			}
			objects = append(objects, record)
		}
	}
	return objects, nil
}
