package ports

import (
	"context"

	"vidtok/internal/core/domain"
)

// MediaElement is one playable media surface. Play is asynchronous in
// spirit: a rejection (autoplay denied) is reported as an error and handled
// silently by the playback controller.
type MediaElement interface {
	Play(ctx context.Context) error
	Pause()
	Seek(seconds float64)
	SetMuted(muted bool)
	CurrentTime() float64
	Duration() float64
	// Attach registers the listener that receives element events. At most
	// one listener is attached per element.
	Attach(listener MediaListener)
}

// MediaListener receives media element events, mirroring the load/progress
// lifecycle of a platform media surface.
type MediaListener interface {
	OnLoadStart()
	OnLoadedMetadata(durationSeconds float64)
	OnCanPlay()
	OnTimeUpdate(currentTimeSeconds, durationSeconds float64)
	OnEnded()
}

// CaptureHandle owns an acquired capture device. The live session controller
// is its single owner; track toggles and release must route through it.
type CaptureHandle interface {
	SetVideoEnabled(enabled bool)
	SetAudioEnabled(enabled bool)
	// Stop releases every track the handle owns. Safe to call once per
	// handle on any exit path.
	Stop()
}

// CaptureDevice acquires a capture handle with the given track flags.
type CaptureDevice interface {
	Acquire(ctx context.Context, video, audio bool) (CaptureHandle, error)
}

// LiveEventSink receives live session events for fan-out to spectators.
type LiveEventSink interface {
	Publish(event domain.LiveEvent)
}
