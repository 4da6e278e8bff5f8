package cached

import (
	"context"
	"sync"
	"testing"

	"vidtok/internal/core/domain"
	"vidtok/internal/core/ports"
	"vidtok/internal/infrastructure/repositories/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingRepository wraps a repository and counts reads that reach it.
type countingRepository struct {
	inner ports.VideoRepository

	mu       sync.Mutex
	listHits int
	getHits  int
}

func (r *countingRepository) List(ctx context.Context) ([]*domain.Video, error) {
	r.mu.Lock()
	r.listHits++
	r.mu.Unlock()
	return r.inner.List(ctx)
}

func (r *countingRepository) GetByID(ctx context.Context, id domain.VideoID) (*domain.Video, error) {
	r.mu.Lock()
	r.getHits++
	r.mu.Unlock()
	return r.inner.GetByID(ctx, id)
}

func (r *countingRepository) Put(ctx context.Context, video *domain.Video) error {
	return r.inner.Put(ctx, video)
}

func newCountingRepo(t *testing.T) (*countingRepository, *CachedVideoRepository) {
	t.Helper()

	counting := &countingRepository{inner: memory.NewMemoryVideoRepository()}
	repo := NewCachedVideoRepository(counting)
	t.Cleanup(repo.Stop)
	return counting, repo
}

func TestCachedVideoRepository_ListIsCached(t *testing.T) {
	counting, repo := newCountingRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Put(ctx, &domain.Video{ID: "v1"}))

	for i := 0; i < 3; i++ {
		videos, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, videos, 1)
	}
	assert.Equal(t, 1, counting.listHits)
}

func TestCachedVideoRepository_GetByIDIsCached(t *testing.T) {
	counting, repo := newCountingRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Put(ctx, &domain.Video{ID: "v1", Title: "old"}))

	for i := 0; i < 3; i++ {
		_, err := repo.GetByID(ctx, "v1")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, counting.getHits)
}

func TestCachedVideoRepository_PutInvalidates(t *testing.T) {
	_, repo := newCountingRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Put(ctx, &domain.Video{ID: "v1", Title: "old"}))

	// Prime both cache entries.
	_, err := repo.List(ctx)
	require.NoError(t, err)
	_, err = repo.GetByID(ctx, "v1")
	require.NoError(t, err)

	require.NoError(t, repo.Put(ctx, &domain.Video{ID: "v1", Title: "new"}))

	got, err := repo.GetByID(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Title)

	videos, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "new", videos[0].Title)
}

func TestCachedVideoRepository_MissIsNotCached(t *testing.T) {
	counting, repo := newCountingRepo(t)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrVideoNotFound)
	assert.Equal(t, 1, counting.getHits)
}
