package capture

import (
	"context"
	"sync"
	"time"

	"vidtok/internal/core/ports"

	"github.com/pion/webrtc/v3"
	"github.com/pion/webrtc/v3/pkg/media"
	"go.uber.org/zap"
)

const (
	videoFrameInterval = 33 * time.Millisecond // ~30 fps
	audioFrameInterval = 20 * time.Millisecond // Opus frame size
)

// SyntheticDevice simulates local camera/microphone capture with pion local
// tracks: blank timed samples feed the preview pipeline so the live session
// has real tracks to own, toggle, and release. There is no peer connection;
// writing to unbound tracks is a no-op, which is exactly the offline demo
// behavior wanted here.
type SyntheticDevice struct {
	failure error
	logger  *zap.SugaredLogger
}

// DeviceOption customizes a synthetic device.
type DeviceOption func(*SyntheticDevice)

// WithAcquireFailure makes every acquisition fail, exercising the degraded
// live mode the same way denied hardware permissions would.
func WithAcquireFailure(err error) DeviceOption {
	return func(d *SyntheticDevice) { d.failure = err }
}

func NewSyntheticDevice(logger *zap.SugaredLogger, opts ...DeviceOption) *SyntheticDevice {
	d := &SyntheticDevice{logger: logger}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Acquire creates the requested tracks and starts the sample pump. The
// returned handle is the single owner of the tracks.
func (d *SyntheticDevice) Acquire(ctx context.Context, video, audio bool) (ports.CaptureHandle, error) {
	if d.failure != nil {
		return nil, d.failure
	}

	h := &handle{
		videoEnabled: video,
		audioEnabled: audio,
		logger:       d.logger,
	}

	if video {
		track, err := webrtc.NewTrackLocalStaticSample(
			webrtc.RTPCodecCapability{MimeType: webrtc.MimeTypeVP8},
			"video", "vidtok-capture",
		)
		if err != nil {
			return nil, err
		}
		h.videoTrack = track
	}
	if audio {
		track, err := webrtc.NewTrackLocalStaticSample(
			webrtc.RTPCodecCapability{MimeType: webrtc.MimeTypeOpus},
			"audio", "vidtok-capture",
		)
		if err != nil {
			return nil, err
		}
		h.audioTrack = track
	}

	pumpCtx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	h.wg.Add(1)
	go h.pump(pumpCtx)

	d.logger.Debugw("capture acquired", "video", video, "audio", audio)
	return h, nil
}

type handle struct {
	mu sync.Mutex

	videoTrack *webrtc.TrackLocalStaticSample
	audioTrack *webrtc.TrackLocalStaticSample

	videoEnabled bool
	audioEnabled bool
	stopped      bool

	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *zap.SugaredLogger
}

// SetVideoEnabled gates the video track in place; capture itself is not
// renegotiated.
func (h *handle) SetVideoEnabled(enabled bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.videoEnabled = enabled
}

func (h *handle) SetAudioEnabled(enabled bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.audioEnabled = enabled
}

// Stop halts the sample pump and releases the tracks. Idempotent.
func (h *handle) Stop() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.stopped = true
	cancel := h.cancel
	h.mu.Unlock()

	cancel()
	h.wg.Wait()
	h.logger.Debugw("capture released")
}

// VideoTrack exposes the local video track for preview binding.
func (h *handle) VideoTrack() *webrtc.TrackLocalStaticSample {
	return h.videoTrack
}

// AudioTrack exposes the local audio track for preview binding.
func (h *handle) AudioTrack() *webrtc.TrackLocalStaticSample {
	return h.audioTrack
}

// pump writes blank samples to the enabled tracks at their frame cadence
// until the handle is stopped.
func (h *handle) pump(ctx context.Context) {
	defer h.wg.Done()

	videoTick := time.NewTicker(videoFrameInterval)
	defer videoTick.Stop()
	audioTick := time.NewTicker(audioFrameInterval)
	defer audioTick.Stop()

	videoFrame := make([]byte, 64)
	audioFrame := make([]byte, 32)

	for {
		select {
		case <-ctx.Done():
			return
		case <-videoTick.C:
			h.mu.Lock()
			track, enabled := h.videoTrack, h.videoEnabled
			h.mu.Unlock()
			if track != nil && enabled {
				_ = track.WriteSample(media.Sample{Data: videoFrame, Duration: videoFrameInterval})
			}
		case <-audioTick.C:
			h.mu.Lock()
			track, enabled := h.audioTrack, h.audioEnabled
			h.mu.Unlock()
			if track != nil && enabled {
				_ = track.WriteSample(media.Sample{Data: audioFrame, Duration: audioFrameInterval})
			}
		}
	}
}

var _ ports.CaptureDevice = (*SyntheticDevice)(nil)
var _ ports.CaptureHandle = (*handle)(nil)
