package domain

import "time"

type UserID string

type User struct {
	ID        UserID
	Username  string
	Email     string
	Avatar    string
	CreatedAt time.Time
}
