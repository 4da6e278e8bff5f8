package memory

import (
	"context"
	"testing"

	"vidtok/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryVideoRepository_PutAndGet(t *testing.T) {
	repo := NewMemoryVideoRepository()
	ctx := context.Background()

	video := &domain.Video{ID: "v1", Title: "First"}
	require.NoError(t, repo.Put(ctx, video))

	got, err := repo.GetByID(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, "First", got.Title)
}

func TestMemoryVideoRepository_GetUnknown(t *testing.T) {
	repo := NewMemoryVideoRepository()

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrVideoNotFound)
}

func TestMemoryVideoRepository_ListKeepsFeedOrder(t *testing.T) {
	repo := NewMemoryVideoRepository()
	ctx := context.Background()

	for _, id := range []domain.VideoID{"a", "b", "c"} {
		require.NoError(t, repo.Put(ctx, &domain.Video{ID: id}))
	}

	videos, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, videos, 3)
	assert.Equal(t, domain.VideoID("a"), videos[0].ID)
	assert.Equal(t, domain.VideoID("b"), videos[1].ID)
	assert.Equal(t, domain.VideoID("c"), videos[2].ID)
}

func TestMemoryVideoRepository_PutReplacesInPlace(t *testing.T) {
	repo := NewMemoryVideoRepository()
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, &domain.Video{ID: "a", Title: "old"}))
	require.NoError(t, repo.Put(ctx, &domain.Video{ID: "b"}))
	require.NoError(t, repo.Put(ctx, &domain.Video{ID: "a", Title: "new"}))

	videos, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, domain.VideoID("a"), videos[0].ID)
	assert.Equal(t, "new", videos[0].Title)
}

func TestSeedSampleFeed(t *testing.T) {
	repo := NewMemoryVideoRepository()
	require.NoError(t, SeedSampleFeed(context.Background(), repo))

	videos, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, videos, 3)
	assert.Equal(t, "Big Buck Bunny", videos[0].Title)
	assert.True(t, videos[0].Creator.Verified)
	assert.False(t, videos[1].Creator.Verified)
}
