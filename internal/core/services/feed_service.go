package services

import (
	"context"
	"fmt"
	"sync"

	"vidtok/internal/core/domain"
	"vidtok/internal/core/ports"

	"go.uber.org/zap"
)

// Gesture thresholds. Offset and velocity are independent triggers: a slow
// long drag and a fast short flick both qualify.
const (
	dragOffsetThreshold   = 100.0 // px
	dragVelocityThreshold = 500.0 // px/s
)

type feedService struct {
	mu sync.Mutex

	videos []*domain.Video
	index  int

	liked     map[domain.VideoID]struct{}
	following map[domain.CreatorID]struct{}

	logger *zap.SugaredLogger
}

// NewFeedService loads the feed once from the repository. An empty feed is
// valid: every transition becomes a permanent no-op.
func NewFeedService(ctx context.Context, videoRepo ports.VideoRepository, logger *zap.SugaredLogger) (ports.FeedService, error) {
	videos, err := videoRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load feed: %w", err)
	}

	return &feedService{
		videos:    videos,
		liked:     make(map[domain.VideoID]struct{}),
		following: make(map[domain.CreatorID]struct{}),
		logger:    logger,
	}, nil
}

func (s *feedService) Items() []*domain.Video {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]*domain.Video, len(s.videos))
	copy(items, s.videos)
	return items
}

func (s *feedService) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.videos)
}

func (s *feedService) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

func (s *feedService) Current() (*domain.Video, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.videos) == 0 {
		return nil, false
	}
	return s.videos[s.index], true
}

// OnDragEnd interprets the end of a vertical drag. Negative offset/velocity
// is a swipe up (next item). When both directions would trigger, next wins.
// Boundary hits are silent no-ops.
func (s *feedService) OnDragEnd(offsetY, velocityY float64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case offsetY < -dragOffsetThreshold || velocityY < -dragVelocityThreshold:
		if s.index < len(s.videos)-1 {
			s.index++
			s.logger.Debugw("feed cursor advanced",
				"index", s.index,
				"offset_y", offsetY,
				"velocity_y", velocityY,
			)
		}
	case offsetY > dragOffsetThreshold || velocityY > dragVelocityThreshold:
		if s.index > 0 {
			s.index--
			s.logger.Debugw("feed cursor moved back",
				"index", s.index,
				"offset_y", offsetY,
				"velocity_y", velocityY,
			)
		}
	}

	return s.index
}

// OnKey handles keyboard navigation. Keys other than ArrowUp/ArrowDown are
// ignored.
func (s *feedService) OnKey(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch key {
	case "ArrowDown":
		if s.index < len(s.videos)-1 {
			s.index++
		}
	case "ArrowUp":
		if s.index > 0 {
			s.index--
		}
	}

	return s.index
}

// ToggleLike flips liked-set membership for the video and reports the new
// membership. Applying it twice restores the original state.
func (s *feedService) ToggleLike(id domain.VideoID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.liked[id]; ok {
		delete(s.liked, id)
		return false
	}
	s.liked[id] = struct{}{}
	return true
}

func (s *feedService) ToggleFollow(id domain.CreatorID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.following[id]; ok {
		delete(s.following, id)
		return false
	}
	s.following[id] = struct{}{}
	return true
}

func (s *feedService) IsLiked(id domain.VideoID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.liked[id]
	return ok
}

func (s *feedService) IsFollowing(id domain.CreatorID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.following[id]
	return ok
}

// DisplayedLikes is the baseline counter plus one if the session has liked
// the video. The overlay never mutates the baseline itself.
func (s *feedService) DisplayedLikes(id domain.VideoID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range s.videos {
		if v.ID == id {
			if _, ok := s.liked[id]; ok {
				return v.Likes + 1, nil
			}
			return v.Likes, nil
		}
	}
	return 0, domain.ErrVideoNotFound
}
