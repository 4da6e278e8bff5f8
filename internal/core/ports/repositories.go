package ports

import (
	"context"

	"vidtok/internal/core/domain"
)

type VideoRepository interface {
	List(ctx context.Context) ([]*domain.Video, error)
	GetByID(ctx context.Context, id domain.VideoID) (*domain.Video, error)
	Put(ctx context.Context, video *domain.Video) error
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User, password string) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// VerifyPassword returns the user when the email/password pair matches.
	// A failed match and an unknown email are indistinguishable to callers.
	VerifyPassword(ctx context.Context, email, password string) (*domain.User, bool)
}
