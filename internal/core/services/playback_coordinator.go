package services

import (
	"context"
	"fmt"
	"sync"

	"vidtok/internal/core/domain"
	"vidtok/internal/core/ports"

	"go.uber.org/zap"
)

// PlaybackCoordinator mounts one playback controller per feed item and
// keeps the feed autoplay invariant: at most one controller is active, the
// one bound to the feed cursor. Inactive controllers keep their paused
// progress for instant resume.
type PlaybackCoordinator struct {
	mu sync.Mutex

	controllers []*PlaybackController
	active      int // -1 when nothing is active

	logger *zap.SugaredLogger
}

// NewPlaybackCoordinator builds a controller for every video using the
// element factory. Nothing plays until SetActiveIndex is called.
func NewPlaybackCoordinator(videos []*domain.Video, newElement func(*domain.Video) ports.MediaElement, logger *zap.SugaredLogger) *PlaybackCoordinator {
	controllers := make([]*PlaybackController, 0, len(videos))
	for _, v := range videos {
		controllers = append(controllers, NewPlaybackController(v, newElement(v), logger))
	}

	return &PlaybackCoordinator{
		controllers: controllers,
		active:      -1,
		logger:      logger,
	}
}

// SetActiveIndex deactivates the previously active controller and activates
// the one at index. Activating the already-active index is a no-op.
func (p *PlaybackCoordinator) SetActiveIndex(ctx context.Context, index int) error {
	p.mu.Lock()
	if index < 0 || index >= len(p.controllers) {
		p.mu.Unlock()
		return fmt.Errorf("playback index out of range: %d", index)
	}
	if index == p.active {
		p.mu.Unlock()
		return nil
	}

	prev := p.active
	p.active = index
	var prevCtl *PlaybackController
	if prev >= 0 {
		prevCtl = p.controllers[prev]
	}
	nextCtl := p.controllers[index]
	p.mu.Unlock()

	if prevCtl != nil {
		prevCtl.SetActive(ctx, false)
	}
	nextCtl.SetActive(ctx, true)
	return nil
}

// Active returns the controller bound to the cursor, or nil before the
// first activation.
func (p *PlaybackCoordinator) Active() *PlaybackController {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.active < 0 {
		return nil
	}
	return p.controllers[p.active]
}

// Controller returns the controller at index for direct inspection.
func (p *PlaybackCoordinator) Controller(index int) (*PlaybackController, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if index < 0 || index >= len(p.controllers) {
		return nil, false
	}
	return p.controllers[index], true
}

// Shutdown unmounts every controller. Called when the feed screen goes
// away; no playback or timer may survive it.
func (p *PlaybackCoordinator) Shutdown() {
	p.mu.Lock()
	controllers := p.controllers
	p.active = -1
	p.mu.Unlock()

	for _, c := range controllers {
		c.Close()
	}
}
