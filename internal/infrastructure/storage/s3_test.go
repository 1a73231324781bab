package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct{}

func (fakeClient) ListObjectsV2(context.Context, *s3.ListObjectsV2Input, ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	return nil, errors.New("fake client: paginator should be used instead")
}

type fakePaginator struct {
	pages []*s3.ListObjectsV2Output
	err   error
	index int
}

func (p *fakePaginator) HasMorePages() bool {
	return p.index < len(p.pages) || (p.err != nil && p.index == 0)
}

func (p *fakePaginator) NextPage(context.Context, ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	if p.err != nil {
		return nil, p.err
	}
	page := p.pages[p.index]
	p.index++
	return page, nil
}

func s3Object(key string, size int64, modified time.Time) types.Object {
	return types.Object{
		Key:          aws.String(key),
		Size:         aws.Int64(size),
		LastModified: aws.Time(modified),
	}
}

func newTestLister(t *testing.T, paginator *fakePaginator) *BucketLister {
	t.Helper()
	lister, err := NewBucketLister(context.Background(), Config{Bucket: "media"},
		WithClient(fakeClient{}),
		WithPaginatorFactory(func(Client, *s3.ListObjectsV2Input) Paginator {
			return paginator
		}),
	)
	require.NoError(t, err)
	return lister
}

func TestListAll_WalksAllPages(t *testing.T) {
	modified := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	paginator := &fakePaginator{pages: []*s3.ListObjectsV2Output{
		{Contents: []types.Object{
			s3Object("videos/a.mp4", 100, modified),
			s3Object("videos/b.mp4", 200, modified),
		}},
		{Contents: []types.Object{
			s3Object("thumbnails/a.jpg", 50, modified),
		}},
	}}
	lister := newTestLister(t, paginator)

	objects, err := lister.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, objects, 3)
	assert.Equal(t, "videos/a.mp4", objects[0].Key)
	assert.Equal(t, int64(200), objects[1].Size)
	assert.Equal(t, modified, objects[2].LastModified)
}

func TestListAll_EmptyBucket(t *testing.T) {
	lister := newTestLister(t, &fakePaginator{})

	objects, err := lister.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, objects)
}

func TestListAll_PageError(t *testing.T) {
	lister := newTestLister(t, &fakePaginator{err: errors.New("throttled")})

	_, err := lister.ListAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}

func TestNewBucketLister_RequiresBucket(t *testing.T) {
	_, err := NewBucketLister(context.Background(), Config{}, WithClient(fakeClient{}))
	require.Error(t, err)
}
