package domain

// Location is a logical screen the rendering layer can navigate to.
type Location string

const (
	LocationFeed Location = "feed"
	LocationAuth Location = "auth"
	LocationLive Location = "live"
)
