package ports

import (
	"context"

	"vidtok/internal/core/domain"
)

// FeedService owns the feed cursor and the like/follow overlay. All index
// transitions go through OnDragEnd or OnKey; the index never leaves
// [0, ItemCount-1].
type FeedService interface {
	Items() []*domain.Video
	ItemCount() int
	CurrentIndex() int
	Current() (*domain.Video, bool)
	OnDragEnd(offsetY, velocityY float64) int
	OnKey(key string) int
	ToggleLike(id domain.VideoID) bool
	ToggleFollow(id domain.CreatorID) bool
	IsLiked(id domain.VideoID) bool
	IsFollowing(id domain.CreatorID) bool
	DisplayedLikes(id domain.VideoID) (int, error)
}

// LiveService is the broadcast session state machine. StopStream releases
// the capture handle and cancels the simulation timers before returning.
type LiveService interface {
	StartStream(ctx context.Context) (domain.LiveSnapshot, error)
	StopStream() domain.LiveSnapshot
	Snapshot() domain.LiveSnapshot
	SubmitComment(ctx context.Context, text string) (*domain.LiveComment, error)
	AddLike() int
	ToggleVideo() bool
	ToggleAudio() bool
}

// Identity exposes the authenticated user attached to a request context.
type Identity interface {
	CurrentUser(ctx context.Context) (*domain.User, bool)
}

// AuthService is the identity capability. Login and Signup return only a
// boolean outcome; the rendering layer shows a generic message on false.
type AuthService interface {
	Identity
	Login(ctx context.Context, in domain.LoginInput) (string, bool)
	Signup(ctx context.Context, in domain.SignupInput) (string, bool)
	Logout(token string)
	ValidateToken(token string) (*domain.User, error)
}

// Navigator maps a requested location to the one the user is allowed at.
type Navigator interface {
	Resolve(loc domain.Location, authenticated bool) domain.Location
}
