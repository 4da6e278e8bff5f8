package domain

type VideoID string
type CreatorID string

// Creator is the author shown on a feed item.
type Creator struct {
	ID       CreatorID
	Username string
	Avatar   string
	Verified bool
}

// Video is one feed entry. Instances are created when the feed is loaded
// and stay immutable for the session; the engagement counters are the
// server-origin baseline and are never decremented.
type Video struct {
	ID          VideoID
	URL         string
	Thumbnail   string
	Title       string
	Description string
	Likes       int
	Comments    int
	Shares      int
	Creator     Creator
}
