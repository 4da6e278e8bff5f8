package services

import (
	"context"
	"sync"
	"time"

	"vidtok/internal/core/domain"
	"vidtok/internal/core/ports"

	"go.uber.org/zap"
)

// controlsHideDelay is how long the transient controls overlay stays
// visible after a tap. A new tap resets the window.
const controlsHideDelay = 2 * time.Second

// PlaybackController owns the lifecycle of one mounted media element:
// autoplay on activation, pause on deactivation, loop on end, mute, tap
// toggling, progress and loading state. It implements ports.MediaListener
// to receive element events.
type PlaybackController struct {
	mu sync.Mutex

	video   *domain.Video
	element ports.MediaElement

	active          bool
	playing         bool
	muted           bool
	loading         bool
	controlsVisible bool
	progress        float64
	duration        float64

	hideTimer *time.Timer

	logger *zap.SugaredLogger
}

// NewPlaybackController mounts a controller on an element. Players start
// muted (autoplay policy) and in the loading state until the element
// reports readiness.
func NewPlaybackController(video *domain.Video, element ports.MediaElement, logger *zap.SugaredLogger) *PlaybackController {
	c := &PlaybackController{
		video:   video,
		element: element,
		muted:   true,
		loading: true,
		logger:  logger,
	}
	element.SetMuted(true)
	element.Attach(c)
	return c
}

// SetActive drives the autoplay policy. Activation requests playback; a
// rejected start (autoplay denied) leaves the player paused with loading
// cleared and is not surfaced as an error. Deactivation pauses but keeps
// the progress position for instant resume.
func (c *PlaybackController) SetActive(ctx context.Context, active bool) {
	c.mu.Lock()
	if c.active == active {
		c.mu.Unlock()
		return
	}
	c.active = active
	el := c.element
	c.mu.Unlock()

	if !active {
		el.Pause()
		c.mu.Lock()
		c.playing = false
		c.mu.Unlock()
		return
	}

	err := el.Play(ctx)

	c.mu.Lock()
	c.loading = false
	c.playing = err == nil
	c.mu.Unlock()

	if err != nil {
		c.logger.Debugw("autoplay rejected",
			"video_id", c.video.ID,
			"error", err,
		)
	}
}

// Tap toggles play/pause and opens the transient controls window.
func (c *PlaybackController) Tap(ctx context.Context) {
	c.mu.Lock()
	wasPlaying := c.playing
	el := c.element
	c.mu.Unlock()

	var playing bool
	if wasPlaying {
		el.Pause()
		playing = false
	} else {
		playing = el.Play(ctx) == nil
	}

	c.mu.Lock()
	c.playing = playing
	c.showControlsLocked()
	c.mu.Unlock()
}

// ToggleMute flips the mute flag and applies it to the element without
// touching playback.
func (c *PlaybackController) ToggleMute() bool {
	c.mu.Lock()
	c.muted = !c.muted
	muted := c.muted
	el := c.element
	c.mu.Unlock()

	el.SetMuted(muted)
	return muted
}

// Snapshot returns the current playback state.
func (c *PlaybackController) Snapshot() domain.PlaybackState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return domain.PlaybackState{
		VideoID:          c.video.ID,
		Playing:          c.playing,
		Muted:            c.muted,
		Loading:          c.loading,
		ControlsVisible:  c.controlsVisible,
		ProgressFraction: c.progress,
		DurationSeconds:  c.duration,
	}
}

// Close unmounts the controller: playback stops and the controls timer is
// cancelled so nothing keeps running in the background.
func (c *PlaybackController) Close() {
	c.mu.Lock()
	if c.hideTimer != nil {
		c.hideTimer.Stop()
		c.hideTimer = nil
	}
	c.active = false
	c.playing = false
	el := c.element
	c.mu.Unlock()

	el.Pause()
}

func (c *PlaybackController) OnLoadStart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = true
}

func (c *PlaybackController) OnLoadedMetadata(durationSeconds float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.duration = durationSeconds
	c.loading = false
}

func (c *PlaybackController) OnCanPlay() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
}

// OnTimeUpdate recomputes the progress fraction. Progress is left unchanged
// until the element reports a positive duration.
func (c *PlaybackController) OnTimeUpdate(currentTimeSeconds, durationSeconds float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if durationSeconds > 0 {
		c.duration = durationSeconds
		c.progress = currentTimeSeconds / durationSeconds
	}
}

// OnEnded loops: seek back to the start and resume immediately. The player
// must never be left paused at the end of the media.
func (c *PlaybackController) OnEnded() {
	c.mu.Lock()
	c.progress = 0
	el := c.element
	c.mu.Unlock()

	el.Seek(0)
	err := el.Play(context.Background())

	c.mu.Lock()
	c.playing = err == nil
	c.mu.Unlock()
}

func (c *PlaybackController) showControlsLocked() {
	c.controlsVisible = true
	if c.hideTimer != nil {
		c.hideTimer.Stop()
	}
	c.hideTimer = time.AfterFunc(controlsHideDelay, func() {
		c.mu.Lock()
		c.controlsVisible = false
		c.mu.Unlock()
	})
}
