package http

import (
	stderrors "errors"
	"net/http"

	"vidtok/internal/core/domain"
	"vidtok/internal/core/ports"
	"vidtok/internal/infrastructure/monitoring"
	"vidtok/pkg/errors"

	"github.com/gin-gonic/gin"
)

// LiveHandler exposes the broadcast session: start/stop, engagement, and
// device toggles. All routes require an authenticated broadcaster except the
// read-only snapshot.
type LiveHandler struct {
	live      ports.LiveService
	collector *monitoring.PrometheusCollector
}

func NewLiveHandler(live ports.LiveService, collector *monitoring.PrometheusCollector) *LiveHandler {
	return &LiveHandler{
		live:      live,
		collector: collector,
	}
}

type commentRequest struct {
	Text string `json:"text" binding:"required,max=500"`
}

func (h *LiveHandler) GetSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.live.Snapshot())
}

// StartStream begins a broadcast. Capture acquisition failure is not an
// error; the session continues degraded with the flag set in the snapshot.
func (h *LiveHandler) StartStream(c *gin.Context) {
	snap, err := h.live.StartStream(c.Request.Context())
	if err != nil {
		if stderrors.Is(err, domain.ErrAlreadyLive) {
			c.Error(errors.NewConflictError("stream already live"))
			return
		}
		c.Error(errors.NewInternalError("failed to start stream"))
		return
	}

	if h.collector != nil {
		h.collector.RecordLiveSessionStarted(snap.Degraded)
	}

	c.JSON(http.StatusOK, snap)
}

// StopStream ends the broadcast and resets the session counters. Stopping
// when not live is an accepted no-op.
func (h *LiveHandler) StopStream(c *gin.Context) {
	c.JSON(http.StatusOK, h.live.StopStream())
}

func (h *LiveHandler) AddLike(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"likes": h.live.AddLike()})
}

func (h *LiveHandler) SubmitComment(c *gin.Context) {
	var req commentRequest
	if err := c.BindJSON(&req); err != nil {
		c.Error(errors.NewInvalidInputError("invalid request format"))
		return
	}

	comment, err := h.live.SubmitComment(c.Request.Context(), req.Text)
	if err != nil {
		var vErr *domain.ValidationError
		switch {
		case stderrors.As(err, &vErr):
			c.Error(errors.NewInvalidInputError(vErr.Reason))
		case stderrors.Is(err, domain.ErrUnauthenticated):
			c.Error(errors.NewUnauthorizedError("login required to comment"))
		case stderrors.Is(err, domain.ErrNotLive):
			c.Error(errors.NewConflictError("stream not live"))
		default:
			c.Error(errors.NewInternalError("failed to submit comment"))
		}
		return
	}

	c.JSON(http.StatusCreated, comment)
}

func (h *LiveHandler) ToggleVideo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"video_enabled": h.live.ToggleVideo()})
}

func (h *LiveHandler) ToggleAudio(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"audio_enabled": h.live.ToggleAudio()})
}
