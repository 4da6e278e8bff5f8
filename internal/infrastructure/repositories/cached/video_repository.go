package cached

import (
	"context"
	"time"

	"vidtok/internal/core/domain"
	"vidtok/internal/core/ports"
	"vidtok/pkg/cache"
)

const (
	listKey    = "videos:list"
	videoKey   = "videos:id:"
	defaultTTL = 30 * time.Second
)

// CachedVideoRepository wraps another video repository with a short-lived
// read cache. Writes invalidate both the list and the touched id so feed
// reads after a like toggle stay coherent.
type CachedVideoRepository struct {
	inner ports.VideoRepository
	cache *cache.Cache
}

func NewCachedVideoRepository(inner ports.VideoRepository) *CachedVideoRepository {
	return &CachedVideoRepository{
		inner: inner,
		cache: cache.NewCache(defaultTTL),
	}
}

func (r *CachedVideoRepository) List(ctx context.Context) ([]*domain.Video, error) {
	if v, ok := r.cache.Get(listKey); ok {
		if videos, ok := v.([]*domain.Video); ok {
			return videos, nil
		}
	}

	videos, err := r.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	r.cache.Set(listKey, videos)
	return videos, nil
}

func (r *CachedVideoRepository) GetByID(ctx context.Context, id domain.VideoID) (*domain.Video, error) {
	key := videoKey + string(id)
	if v, ok := r.cache.Get(key); ok {
		if video, ok := v.(*domain.Video); ok {
			return video, nil
		}
	}

	video, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.cache.Set(key, video)
	return video, nil
}

func (r *CachedVideoRepository) Put(ctx context.Context, video *domain.Video) error {
	if err := r.inner.Put(ctx, video); err != nil {
		return err
	}
	r.cache.Delete(listKey)
	r.cache.Delete(videoKey + string(video.ID))
	return nil
}

// Stop releases the cache cleanup goroutine.
func (r *CachedVideoRepository) Stop() {
	r.cache.Stop()
}

var _ ports.VideoRepository = (*CachedVideoRepository)(nil)
