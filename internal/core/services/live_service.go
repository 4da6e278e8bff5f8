package services

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"vidtok/internal/core/domain"
	"vidtok/internal/core/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	viewerDriftInterval      = 2 * time.Second
	syntheticCommentInterval = 3 * time.Second
)

// syntheticComments is the fixed pool the chat simulation draws from; a
// stand-in for the real-time chat feed collaborator.
var syntheticComments = []domain.LiveComment{
	{Author: "viewer123", Text: "Great stream! 🔥"},
	{Author: "fan_account", Text: "Love your content!"},
	{Author: "music_lover", Text: "Can you play that song again?"},
}

type liveService struct {
	mu sync.Mutex

	phase        domain.LivePhase
	viewerCount  int
	likes        int
	comments     []domain.LiveComment
	videoEnabled bool
	audioEnabled bool

	handle   ports.CaptureHandle
	degraded bool

	cancel context.CancelFunc
	wg     sync.WaitGroup

	capture  ports.CaptureDevice
	identity ports.Identity
	sink     ports.LiveEventSink

	rng             *rand.Rand
	viewerInterval  time.Duration
	commentInterval time.Duration
	degradedHook    func(error)

	logger *zap.SugaredLogger
}

// LiveOption customizes a live service, mainly for tests.
type LiveOption func(*liveService)

// WithRand replaces the pseudo-random source driving the simulation.
func WithRand(rng *rand.Rand) LiveOption {
	return func(s *liveService) { s.rng = rng }
}

// WithIntervals overrides the simulation tick intervals.
func WithIntervals(viewerDrift, syntheticComment time.Duration) LiveOption {
	return func(s *liveService) {
		s.viewerInterval = viewerDrift
		s.commentInterval = syntheticComment
	}
}

// WithDegradedHook installs an observer invoked when a session enters live
// without a capture handle. Diagnostics only; user-visible behavior is the
// same either way.
func WithDegradedHook(hook func(error)) LiveOption {
	return func(s *liveService) { s.degradedHook = hook }
}

func NewLiveService(
	capture ports.CaptureDevice,
	identity ports.Identity,
	sink ports.LiveEventSink,
	logger *zap.SugaredLogger,
	opts ...LiveOption,
) ports.LiveService {
	s := &liveService{
		phase:           domain.PhaseIdle,
		videoEnabled:    true,
		audioEnabled:    true,
		capture:         capture,
		identity:        identity,
		sink:            sink,
		rng:             rand.New(rand.NewSource(time.Now().UnixNano())),
		viewerInterval:  viewerDriftInterval,
		commentInterval: syntheticCommentInterval,
		logger:          logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartStream moves idle → acquiring → live. A failed device acquisition
// does not fail the transition: the session enters live in degraded mode
// with no capture handle, an intentional demo-friendly fallback.
func (s *liveService) StartStream(ctx context.Context) (domain.LiveSnapshot, error) {
	s.mu.Lock()
	if s.phase == domain.PhaseAcquiring || s.phase == domain.PhaseLive {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, domain.ErrAlreadyLive
	}
	s.phase = domain.PhaseAcquiring
	video, audio := s.videoEnabled, s.audioEnabled
	s.mu.Unlock()

	handle, err := s.capture.Acquire(ctx, video, audio)

	s.mu.Lock()
	if err != nil {
		s.handle = nil
		s.degraded = true
		s.logger.Warnw("capture acquisition failed, entering degraded live mode",
			"error", err,
		)
		if s.degradedHook != nil {
			hook := s.degradedHook
			defer hook(err)
		}
	} else {
		s.handle = handle
		s.degraded = false
	}

	s.phase = domain.PhaseLive
	s.viewerCount = s.rng.Intn(50) + 10

	simCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.wg.Add(1)
	go s.simulate(simCtx)

	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(domain.LiveEvent{Type: domain.EventPhase, Phase: domain.PhaseLive})
	s.publish(domain.LiveEvent{Type: domain.EventViewerCount, ViewerCount: snap.ViewerCount})

	s.logger.Infow("live session started",
		"viewer_count", snap.ViewerCount,
		"degraded", snap.Degraded,
	)
	return snap, nil
}

// StopStream cancels the simulation timers, releases the capture handle and
// resets the session. Both must have happened before the phase reads ended.
// Stopping a session that is not live is a no-op.
func (s *liveService) StopStream() domain.LiveSnapshot {
	s.mu.Lock()
	if s.phase != domain.PhaseLive {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap
	}
	cancel := s.cancel
	s.cancel = nil
	handle := s.handle
	s.handle = nil
	s.mu.Unlock()

	cancel()
	s.wg.Wait()
	if handle != nil {
		handle.Stop()
	}

	s.mu.Lock()
	s.phase = domain.PhaseEnded
	s.viewerCount = 0
	s.likes = 0
	s.comments = nil
	s.degraded = false
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(domain.LiveEvent{Type: domain.EventPhase, Phase: domain.PhaseEnded})
	s.logger.Infow("live session stopped")
	return snap
}

func (s *liveService) Snapshot() domain.LiveSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// SubmitComment appends a viewer comment under the authenticated user's
// handle. Blank text and a missing identity leave the log unchanged; both
// are inline conditions, not failures of the session. The chat log only
// exists while the session is live.
func (s *liveService) SubmitComment(ctx context.Context, text string) (*domain.LiveComment, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, &domain.ValidationError{Field: "text", Reason: "comment must not be empty"}
	}

	user, ok := s.identity.CurrentUser(ctx)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}

	comment := domain.LiveComment{
		ID:        domain.CommentID(uuid.NewString()),
		Author:    user.Username,
		Text:      trimmed,
		Timestamp: time.Now(),
	}

	s.mu.Lock()
	if s.phase != domain.PhaseLive {
		s.mu.Unlock()
		return nil, domain.ErrNotLive
	}
	s.comments = append(s.comments, comment)
	s.mu.Unlock()

	s.publish(domain.LiveEvent{Type: domain.EventComment, Comment: &comment})
	return &comment, nil
}

// AddLike increments the accumulated-likes counter. Every increment stands
// alone; the UI keys its pulse animation off the counter value.
func (s *liveService) AddLike() int {
	s.mu.Lock()
	s.likes++
	likes := s.likes
	s.mu.Unlock()

	s.publish(domain.LiveEvent{Type: domain.EventLike, Likes: likes})
	return likes
}

// ToggleVideo flips the video flag and, when a handle is bound, toggles the
// track in place without renegotiating capture.
func (s *liveService) ToggleVideo() bool {
	s.mu.Lock()
	s.videoEnabled = !s.videoEnabled
	enabled := s.videoEnabled
	handle := s.handle
	s.mu.Unlock()

	if handle != nil {
		handle.SetVideoEnabled(enabled)
	}
	return enabled
}

func (s *liveService) ToggleAudio() bool {
	s.mu.Lock()
	s.audioEnabled = !s.audioEnabled
	enabled := s.audioEnabled
	handle := s.handle
	s.mu.Unlock()

	if handle != nil {
		handle.SetAudioEnabled(enabled)
	}
	return enabled
}

// simulate drives the two session timers: viewer-count drift and synthetic
// incoming comments. It exits only through context cancellation, which
// StopStream awaits.
func (s *liveService) simulate(ctx context.Context) {
	defer s.wg.Done()

	viewerTick := time.NewTicker(s.viewerInterval)
	defer viewerTick.Stop()
	commentTick := time.NewTicker(s.commentInterval)
	defer commentTick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-viewerTick.C:
			s.driftViewers()
		case <-commentTick.C:
			s.maybeSyntheticComment()
		}
	}
}

// driftViewers perturbs the viewer count by a delta in [-4,+5], never below
// zero.
func (s *liveService) driftViewers() {
	s.mu.Lock()
	if s.phase != domain.PhaseLive {
		s.mu.Unlock()
		return
	}
	s.viewerCount += s.rng.Intn(10) - 4
	if s.viewerCount < 0 {
		s.viewerCount = 0
	}
	count := s.viewerCount
	s.mu.Unlock()

	s.publish(domain.LiveEvent{Type: domain.EventViewerCount, ViewerCount: count})
}

// maybeSyntheticComment appends one pool comment with 30% probability per
// tick, with a fresh id and timestamp.
func (s *liveService) maybeSyntheticComment() {
	s.mu.Lock()
	if s.phase != domain.PhaseLive || s.rng.Float64() <= 0.7 {
		s.mu.Unlock()
		return
	}
	comment := syntheticComments[s.rng.Intn(len(syntheticComments))]
	comment.ID = domain.CommentID(uuid.NewString())
	comment.Timestamp = time.Now()
	s.comments = append(s.comments, comment)
	s.mu.Unlock()

	s.publish(domain.LiveEvent{Type: domain.EventComment, Comment: &comment})
}

func (s *liveService) snapshotLocked() domain.LiveSnapshot {
	comments := make([]domain.LiveComment, len(s.comments))
	copy(comments, s.comments)

	return domain.LiveSnapshot{
		Phase:        s.phase,
		ViewerCount:  s.viewerCount,
		Likes:        s.likes,
		Comments:     comments,
		VideoEnabled: s.videoEnabled,
		AudioEnabled: s.audioEnabled,
		Degraded:     s.degraded,
	}
}

func (s *liveService) publish(event domain.LiveEvent) {
	if s.sink != nil {
		s.sink.Publish(event)
	}
}
