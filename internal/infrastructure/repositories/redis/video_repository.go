package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"vidtok/internal/core/domain"
	"vidtok/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

type RedisVideoRepository struct {
	client *redis.Client
	prefix string
}

func NewRedisVideoRepository(client *redis.Client) ports.VideoRepository {
	return &RedisVideoRepository{
		client: client,
		prefix: "vidtok:video:",
	}
}

func (r *RedisVideoRepository) videoKey(id domain.VideoID) string {
	return r.prefix + string(id)
}

// feedKey is the list holding feed order.
func (r *RedisVideoRepository) feedKey() string {
	return r.prefix + "feed"
}

func (r *RedisVideoRepository) List(ctx context.Context) ([]*domain.Video, error) {
	ids, err := r.client.LRange(ctx, r.feedKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read feed order from Redis: %w", err)
	}

	videos := make([]*domain.Video, 0, len(ids))
	for _, id := range ids {
		video, err := r.GetByID(ctx, domain.VideoID(id))
		if err != nil {
			return nil, err
		}
		videos = append(videos, video)
	}
	return videos, nil
}

func (r *RedisVideoRepository) GetByID(ctx context.Context, id domain.VideoID) (*domain.Video, error) {
	data, err := r.client.Get(ctx, r.videoKey(id)).Result()
	if err == redis.Nil {
		return nil, domain.ErrVideoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get video from Redis: %w", err)
	}

	var video domain.Video
	if err := json.Unmarshal([]byte(data), &video); err != nil {
		return nil, fmt.Errorf("failed to unmarshal video: %w", err)
	}
	return &video, nil
}

func (r *RedisVideoRepository) Put(ctx context.Context, video *domain.Video) error {
	data, err := json.Marshal(video)
	if err != nil {
		return fmt.Errorf("failed to marshal video: %w", err)
	}

	key := r.videoKey(video.ID)
	existed, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to check video in Redis: %w", err)
	}

	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set video in Redis: %w", err)
	}

	// Only append to feed order on first insert; replacements keep position.
	if existed == 0 {
		if err := r.client.RPush(ctx, r.feedKey(), string(video.ID)).Err(); err != nil {
			return fmt.Errorf("failed to append video to feed: %w", err)
		}
	}
	return nil
}
