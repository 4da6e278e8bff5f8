package services

import (
	"vidtok/internal/core/domain"
	"vidtok/internal/core/ports"
)

type navigator struct{}

// NewNavigator builds the navigation capability: unauthenticated users only
// ever land on auth, authenticated ones on feed or live, and unknown
// locations fall back to the feed.
func NewNavigator() ports.Navigator {
	return navigator{}
}

func (navigator) Resolve(loc domain.Location, authenticated bool) domain.Location {
	if !authenticated {
		return domain.LocationAuth
	}

	switch loc {
	case domain.LocationFeed, domain.LocationLive:
		return loc
	case domain.LocationAuth:
		// Already signed in; auth screen redirects home.
		return domain.LocationFeed
	default:
		return domain.LocationFeed
	}
}
