package domain

import "time"

type CommentID string

// LivePhase is the broadcast state machine phase. Ended behaves like Idle
// for re-entry purposes; Acquiring is transient while device capture is
// being requested.
type LivePhase string

const (
	PhaseIdle      LivePhase = "idle"
	PhaseAcquiring LivePhase = "acquiring"
	PhaseLive      LivePhase = "live"
	PhaseEnded     LivePhase = "ended"
)

// LiveComment is one entry of the append-only live chat log.
type LiveComment struct {
	ID        CommentID `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// LiveSnapshot is a point-in-time copy of a live session's observable
// state, safe to hand to the rendering layer.
type LiveSnapshot struct {
	Phase        LivePhase     `json:"phase"`
	ViewerCount  int           `json:"viewer_count"`
	Likes        int           `json:"likes"`
	Comments     []LiveComment `json:"comments"`
	VideoEnabled bool          `json:"video_enabled"`
	AudioEnabled bool          `json:"audio_enabled"`
	Degraded     bool          `json:"degraded"`
}

// LiveEventType enumerates events pushed to live spectators.
type LiveEventType string

const (
	EventViewerCount LiveEventType = "viewer_count"
	EventComment     LiveEventType = "comment"
	EventLike        LiveEventType = "like"
	EventPhase       LiveEventType = "phase"
)

type LiveEvent struct {
	Type        LiveEventType `json:"type"`
	ViewerCount int           `json:"viewer_count,omitempty"`
	Likes       int           `json:"likes,omitempty"`
	Comment     *LiveComment  `json:"comment,omitempty"`
	Phase       LivePhase     `json:"phase,omitempty"`
}
