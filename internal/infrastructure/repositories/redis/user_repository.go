package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"vidtok/internal/core/domain"
	"vidtok/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

type userRecord struct {
	User     *domain.User `json:"user"`
	Password string       `json:"password"`
}

type RedisUserRepository struct {
	client *redis.Client
	prefix string
}

func NewRedisUserRepository(client *redis.Client) ports.UserRepository {
	return &RedisUserRepository{
		client: client,
		prefix: "vidtok:user:",
	}
}

func (r *RedisUserRepository) userKey(email string) string {
	return r.prefix + strings.ToLower(email)
}

func (r *RedisUserRepository) Create(ctx context.Context, user *domain.User, password string) error {
	data, err := json.Marshal(userRecord{User: user, Password: password})
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	// SetNX keeps account creation atomic: duplicate emails lose the race.
	created, err := r.client.SetNX(ctx, r.userKey(user.Email), data, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to set user in Redis: %w", err)
	}
	if !created {
		return fmt.Errorf("account already exists: %s", user.Email)
	}
	return nil
}

func (r *RedisUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	rec, err := r.getRecord(ctx, email)
	if err != nil {
		return nil, err
	}
	return rec.User, nil
}

func (r *RedisUserRepository) VerifyPassword(ctx context.Context, email, password string) (*domain.User, bool) {
	rec, err := r.getRecord(ctx, email)
	if err != nil || rec.Password != password {
		return nil, false
	}
	return rec.User, true
}

func (r *RedisUserRepository) getRecord(ctx context.Context, email string) (*userRecord, error) {
	data, err := r.client.Get(ctx, r.userKey(email)).Result()
	if err == redis.Nil {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user from Redis: %w", err)
	}

	var rec userRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &rec, nil
}
