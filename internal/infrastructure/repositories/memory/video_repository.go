package memory

import (
	"context"
	"sync"

	"vidtok/internal/core/domain"
	"vidtok/internal/core/ports"
)

type MemoryVideoRepository struct {
	mu     sync.RWMutex
	videos []*domain.Video
	byID   map[domain.VideoID]*domain.Video
}

// NewMemoryVideoRepository starts empty; callers seed it (see SampleVideos)
// or fill it from an external source.
func NewMemoryVideoRepository() *MemoryVideoRepository {
	return &MemoryVideoRepository{
		byID: make(map[domain.VideoID]*domain.Video),
	}
}

// List returns videos in feed order.
func (r *MemoryVideoRepository) List(ctx context.Context) ([]*domain.Video, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	videos := make([]*domain.Video, len(r.videos))
	copy(videos, r.videos)
	return videos, nil
}

func (r *MemoryVideoRepository) GetByID(ctx context.Context, id domain.VideoID) (*domain.Video, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	video, exists := r.byID[id]
	if !exists {
		return nil, domain.ErrVideoNotFound
	}
	return video, nil
}

// Put appends the video to the feed, or replaces it in place if the id is
// already present.
func (r *MemoryVideoRepository) Put(ctx context.Context, video *domain.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[video.ID]; exists {
		for i, v := range r.videos {
			if v.ID == video.ID {
				r.videos[i] = video
				break
			}
		}
	} else {
		r.videos = append(r.videos, video)
	}
	r.byID[video.ID] = video
	return nil
}

var _ ports.VideoRepository = (*MemoryVideoRepository)(nil)
