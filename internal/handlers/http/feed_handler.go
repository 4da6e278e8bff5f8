package http

import (
	"net/http"

	"vidtok/internal/core/domain"
	"vidtok/internal/core/ports"
	"vidtok/internal/core/services"
	"vidtok/internal/infrastructure/monitoring"
	"vidtok/pkg/errors"
	"vidtok/pkg/utils"

	"github.com/gin-gonic/gin"
)

// FeedHandler exposes feed navigation, engagement toggles, and the playback
// state of the item under the cursor.
type FeedHandler struct {
	feed        ports.FeedService
	coordinator *services.PlaybackCoordinator
	collector   *monitoring.PrometheusCollector
}

func NewFeedHandler(feed ports.FeedService, coordinator *services.PlaybackCoordinator, collector *monitoring.PrometheusCollector) *FeedHandler {
	return &FeedHandler{
		feed:        feed,
		coordinator: coordinator,
		collector:   collector,
	}
}

type dragRequest struct {
	OffsetY   float64 `json:"offset_y"`
	VelocityY float64 `json:"velocity_y"`
}

type keyRequest struct {
	Key string `json:"key" binding:"required,max=32"`
}

type creatorView struct {
	ID        domain.CreatorID `json:"id"`
	Username  string           `json:"username"`
	Avatar    string           `json:"avatar"`
	Verified  bool             `json:"verified"`
	Following bool             `json:"following"`
}

type feedItemView struct {
	ID            domain.VideoID `json:"id"`
	URL           string         `json:"url"`
	Thumbnail     string         `json:"thumbnail"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Likes         int            `json:"likes"`
	LikesLabel    string         `json:"likes_label"`
	Comments      int            `json:"comments"`
	CommentsLabel string         `json:"comments_label"`
	Shares        int            `json:"shares"`
	SharesLabel   string         `json:"shares_label"`
	Liked         bool           `json:"liked"`
	Creator       creatorView    `json:"creator"`
}

func (h *FeedHandler) GetFeed(c *gin.Context) {
	items := h.feed.Items()
	views := make([]feedItemView, 0, len(items))
	for _, v := range items {
		views = append(views, h.itemView(v))
	}

	c.JSON(http.StatusOK, gin.H{
		"items":         views,
		"current_index": h.feed.CurrentIndex(),
	})
}

// DragEnd interprets the end of a vertical drag gesture and moves the feed
// cursor. Playback follows the cursor.
func (h *FeedHandler) DragEnd(c *gin.Context) {
	var req dragRequest
	if err := c.BindJSON(&req); err != nil {
		c.Error(errors.NewInvalidInputError("invalid request format"))
		return
	}

	index := h.feed.OnDragEnd(req.OffsetY, req.VelocityY)
	h.activate(c, index, "drag")

	c.JSON(http.StatusOK, gin.H{"current_index": index})
}

// Key handles ArrowUp/ArrowDown navigation. Other keys are accepted and
// ignored.
func (h *FeedHandler) Key(c *gin.Context) {
	var req keyRequest
	if err := c.BindJSON(&req); err != nil {
		c.Error(errors.NewInvalidInputError("invalid request format"))
		return
	}

	index := h.feed.OnKey(req.Key)
	h.activate(c, index, "key")

	c.JSON(http.StatusOK, gin.H{"current_index": index})
}

func (h *FeedHandler) ToggleLike(c *gin.Context) {
	id := domain.VideoID(c.Param("id"))

	if _, err := h.feed.DisplayedLikes(id); err != nil {
		c.Error(errors.NewNotFoundError("video"))
		return
	}

	liked := h.feed.ToggleLike(id)
	if h.collector != nil {
		h.collector.RecordLikeToggle()
	}

	displayed, _ := h.feed.DisplayedLikes(id)
	c.JSON(http.StatusOK, gin.H{
		"liked":       liked,
		"likes":       displayed,
		"likes_label": utils.FormatCount(displayed),
	})
}

func (h *FeedHandler) ToggleFollow(c *gin.Context) {
	id := domain.CreatorID(c.Param("id"))

	following := h.feed.ToggleFollow(id)
	if h.collector != nil {
		h.collector.RecordFollowToggle()
	}

	c.JSON(http.StatusOK, gin.H{"following": following})
}

// GetPlayback reports the playback state of the active item.
func (h *FeedHandler) GetPlayback(c *gin.Context) {
	ctl := h.coordinator.Active()
	if ctl == nil {
		c.Error(errors.NewNotFoundError("active playback"))
		return
	}

	h.playbackResponse(c, ctl.Snapshot())
}

// Tap toggles play/pause on the active item and opens the controls overlay.
func (h *FeedHandler) Tap(c *gin.Context) {
	ctl := h.coordinator.Active()
	if ctl == nil {
		c.Error(errors.NewNotFoundError("active playback"))
		return
	}

	ctl.Tap(c.Request.Context())
	if h.collector != nil {
		h.collector.RecordPlaybackTap()
	}

	h.playbackResponse(c, ctl.Snapshot())
}

// ToggleMute flips the mute flag on the active item.
func (h *FeedHandler) ToggleMute(c *gin.Context) {
	ctl := h.coordinator.Active()
	if ctl == nil {
		c.Error(errors.NewNotFoundError("active playback"))
		return
	}

	ctl.ToggleMute()
	h.playbackResponse(c, ctl.Snapshot())
}

func (h *FeedHandler) playbackResponse(c *gin.Context, state domain.PlaybackState) {
	position := state.ProgressFraction * state.DurationSeconds
	c.JSON(http.StatusOK, gin.H{
		"playback":       state,
		"position_label": utils.FormatTimecode(position),
		"duration_label": utils.FormatTimecode(state.DurationSeconds),
	})
}

// activate points playback at the new cursor position and records the
// transition.
func (h *FeedHandler) activate(c *gin.Context, index int, source string) {
	if h.feed.ItemCount() == 0 {
		return
	}
	if err := h.coordinator.SetActiveIndex(c.Request.Context(), index); err != nil {
		return
	}
	if h.collector != nil {
		h.collector.SetFeedPosition(index)
		h.collector.RecordFeedTransition(source)
	}
}

func (h *FeedHandler) itemView(v *domain.Video) feedItemView {
	displayed, err := h.feed.DisplayedLikes(v.ID)
	if err != nil {
		displayed = v.Likes
	}

	return feedItemView{
		ID:            v.ID,
		URL:           v.URL,
		Thumbnail:     v.Thumbnail,
		Title:         v.Title,
		Description:   v.Description,
		Likes:         displayed,
		LikesLabel:    utils.FormatCount(displayed),
		Comments:      v.Comments,
		CommentsLabel: utils.FormatCount(v.Comments),
		Shares:        v.Shares,
		SharesLabel:   utils.FormatCount(v.Shares),
		Liked:         h.feed.IsLiked(v.ID),
		Creator: creatorView{
			ID:        v.Creator.ID,
			Username:  v.Creator.Username,
			Avatar:    v.Creator.Avatar,
			Verified:  v.Creator.Verified,
			Following: h.feed.IsFollowing(v.Creator.ID),
		},
	}
}
