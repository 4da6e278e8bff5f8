package monitoring

import (
	"vidtok/internal/core/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusCollector exports feed, playback, and live session metrics.
type PrometheusCollector struct {
	feedPosition    prometheus.Gauge
	feedTransitions *prometheus.CounterVec
	likeToggles     prometheus.Counter
	followToggles   prometheus.Counter

	playbackTaps prometheus.Counter

	liveSessionsTotal  prometheus.Counter
	liveDegradedTotal  prometheus.Counter
	liveViewers        prometheus.Gauge
	liveLikes          prometheus.Gauge
	liveCommentsTotal  prometheus.Counter
	liveSpectatorConns prometheus.Gauge
}

func NewPrometheusCollector() *PrometheusCollector {
	return &PrometheusCollector{
		feedPosition: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "vidtok_feed_position",
			Help: "Current feed cursor index",
		}),

		feedTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vidtok_feed_transitions_total",
			Help: "Feed cursor transitions by input source",
		}, []string{"source"}),

		likeToggles: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vidtok_like_toggles_total",
			Help: "Total like toggles on feed items",
		}),

		followToggles: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vidtok_follow_toggles_total",
			Help: "Total follow toggles on creators",
		}),

		playbackTaps: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vidtok_playback_taps_total",
			Help: "Total play/pause taps on the active player",
		}),

		liveSessionsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vidtok_live_sessions_total",
			Help: "Live sessions started",
		}),

		liveDegradedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vidtok_live_degraded_total",
			Help: "Live sessions that entered degraded mode without a capture device",
		}),

		liveViewers: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "vidtok_live_viewers",
			Help: "Simulated viewer count of the current live session",
		}),

		liveLikes: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "vidtok_live_likes",
			Help: "Accumulated likes of the current live session",
		}),

		liveCommentsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vidtok_live_comments_total",
			Help: "Comments appended to live chat logs",
		}),

		liveSpectatorConns: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "vidtok_live_spectator_connections",
			Help: "Open WebSocket spectator connections",
		}),
	}
}

func (p *PrometheusCollector) SetFeedPosition(index int) {
	p.feedPosition.Set(float64(index))
}

func (p *PrometheusCollector) RecordFeedTransition(source string) {
	p.feedTransitions.WithLabelValues(source).Inc()
}

func (p *PrometheusCollector) RecordLikeToggle() {
	p.likeToggles.Inc()
}

func (p *PrometheusCollector) RecordFollowToggle() {
	p.followToggles.Inc()
}

func (p *PrometheusCollector) RecordPlaybackTap() {
	p.playbackTaps.Inc()
}

func (p *PrometheusCollector) RecordLiveSessionStarted(degraded bool) {
	p.liveSessionsTotal.Inc()
	if degraded {
		p.liveDegradedTotal.Inc()
	}
}

func (p *PrometheusCollector) SetSpectatorConnections(n int) {
	p.liveSpectatorConns.Set(float64(n))
}

// ObserveLiveEvent mirrors published live events into gauges; wired as a
// tee alongside the WebSocket hub.
func (p *PrometheusCollector) ObserveLiveEvent(event domain.LiveEvent) {
	switch event.Type {
	case domain.EventViewerCount:
		p.liveViewers.Set(float64(event.ViewerCount))
	case domain.EventLike:
		p.liveLikes.Set(float64(event.Likes))
	case domain.EventComment:
		p.liveCommentsTotal.Inc()
	case domain.EventPhase:
		if event.Phase == domain.PhaseEnded {
			p.liveViewers.Set(0)
			p.liveLikes.Set(0)
		}
	}
}
