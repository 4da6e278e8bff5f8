package media

import (
	"context"
	"sync"
	"time"

	"vidtok/internal/core/domain"
	"vidtok/internal/core/ports"
)

const defaultTickInterval = 250 * time.Millisecond

// SimulatedElement is a clock-driven stand-in for a platform media surface.
// It reports metadata on first play, advances a playhead on a ticker while
// playing, and emits listener events the way a real element would. The
// advance goroutine runs only while playing, so a paused element holds no
// background resources.
type SimulatedElement struct {
	mu sync.Mutex

	listener ports.MediaListener

	duration float64
	current  float64
	playing  bool
	muted    bool
	loaded   bool
	running  bool

	tickInterval time.Duration
}

// ElementOption customizes a simulated element.
type ElementOption func(*SimulatedElement)

// WithTickInterval changes how often the playhead advances.
func WithTickInterval(d time.Duration) ElementOption {
	return func(e *SimulatedElement) { e.tickInterval = d }
}

// NewSimulatedElement creates an element with a fixed media duration in
// seconds.
func NewSimulatedElement(durationSeconds float64, opts ...ElementOption) *SimulatedElement {
	e := &SimulatedElement{
		duration:     durationSeconds,
		tickInterval: defaultTickInterval,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewElementFactory returns a factory producing one simulated element per
// feed item, all sharing the same nominal duration.
func NewElementFactory(durationSeconds float64, opts ...ElementOption) func(*domain.Video) ports.MediaElement {
	return func(*domain.Video) ports.MediaElement {
		return NewSimulatedElement(durationSeconds, opts...)
	}
}

func (e *SimulatedElement) Attach(listener ports.MediaListener) {
	e.mu.Lock()
	e.listener = listener
	e.mu.Unlock()

	if listener != nil {
		listener.OnLoadStart()
	}
}

func (e *SimulatedElement) Play(ctx context.Context) error {
	e.mu.Lock()
	if e.playing {
		e.mu.Unlock()
		return nil
	}
	e.playing = true

	firstLoad := !e.loaded
	e.loaded = true

	startLoop := !e.running
	e.running = true

	listener := e.listener
	duration := e.duration
	e.mu.Unlock()

	if firstLoad && listener != nil {
		listener.OnLoadedMetadata(duration)
		listener.OnCanPlay()
	}
	if startLoop {
		go e.run()
	}
	return nil
}

func (e *SimulatedElement) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.playing = false
}

func (e *SimulatedElement) Seek(seconds float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if seconds < 0 {
		seconds = 0
	}
	if seconds > e.duration {
		seconds = e.duration
	}
	e.current = seconds
}

func (e *SimulatedElement) SetMuted(muted bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.muted = muted
}

func (e *SimulatedElement) CurrentTime() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

func (e *SimulatedElement) Duration() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.duration
}

// run advances the playhead until paused or the media ends. Listener events
// fire outside the lock; the end-of-media event typically re-enters via
// Seek and Play.
func (e *SimulatedElement) run() {
	ticker := time.NewTicker(e.tickInterval)
	defer ticker.Stop()

	for range ticker.C {
		e.mu.Lock()
		if !e.playing {
			e.running = false
			e.mu.Unlock()
			return
		}

		e.current += e.tickInterval.Seconds()
		ended := e.current >= e.duration
		if ended {
			e.current = e.duration
			e.playing = false
			e.running = false
		}
		current, duration := e.current, e.duration
		listener := e.listener
		e.mu.Unlock()

		if listener != nil {
			listener.OnTimeUpdate(current, duration)
			if ended {
				listener.OnEnded()
			}
		}
		if ended {
			return
		}
	}
}

var _ ports.MediaElement = (*SimulatedElement)(nil)
