package domain

import "errors"

var (
	ErrVideoNotFound   = errors.New("video not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrNotLive         = errors.New("no live session in progress")
	ErrAlreadyLive     = errors.New("live session already in progress")
	ErrUnauthenticated = errors.New("no authenticated identity")
)
