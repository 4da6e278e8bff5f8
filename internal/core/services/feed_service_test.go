package services

import (
	"context"
	"testing"

	"vidtok/internal/core/domain"
	"vidtok/internal/core/ports"
	"vidtok/internal/infrastructure/repositories/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestFeed(t *testing.T) ports.FeedService {
	t.Helper()

	repo := memory.NewMemoryVideoRepository()
	require.NoError(t, memory.SeedSampleFeed(context.Background(), repo))

	feed, err := NewFeedService(context.Background(), repo, zap.NewNop().Sugar())
	require.NoError(t, err)
	return feed
}

func TestFeedService_StartsAtFirstItem(t *testing.T) {
	feed := newTestFeed(t)

	assert.Equal(t, 3, feed.ItemCount())
	assert.Equal(t, 0, feed.CurrentIndex())

	current, ok := feed.Current()
	require.True(t, ok)
	assert.Equal(t, feed.Items()[0].ID, current.ID)
}

func TestFeedService_DragAdvancesAndStopsAtEnd(t *testing.T) {
	feed := newTestFeed(t)

	// Swipe up past the offset threshold advances.
	assert.Equal(t, 1, feed.OnDragEnd(-120, 0))
	// A fast flick advances even with a small offset.
	assert.Equal(t, 2, feed.OnDragEnd(-10, -600))
	// At the last item the same gesture is a no-op.
	assert.Equal(t, 2, feed.OnDragEnd(-120, -600))
}

func TestFeedService_DragMovesBackAndStopsAtStart(t *testing.T) {
	feed := newTestFeed(t)

	// At the first item a swipe down is a no-op.
	assert.Equal(t, 0, feed.OnDragEnd(150, 0))

	feed.OnDragEnd(-120, 0)
	assert.Equal(t, 0, feed.OnDragEnd(150, 0))
	assert.Equal(t, 0, feed.OnDragEnd(10, 600))
}

func TestFeedService_DragBelowThresholdsIsNoOp(t *testing.T) {
	feed := newTestFeed(t)

	assert.Equal(t, 0, feed.OnDragEnd(-99, -499))
	assert.Equal(t, 0, feed.OnDragEnd(99, 499))
	assert.Equal(t, 0, feed.OnDragEnd(0, 0))
}

func TestFeedService_ConflictingGesturePrefersNext(t *testing.T) {
	feed := newTestFeed(t)

	// Offset says previous, velocity says next: next wins.
	assert.Equal(t, 1, feed.OnDragEnd(150, -600))
}

func TestFeedService_KeyNavigation(t *testing.T) {
	feed := newTestFeed(t)

	assert.Equal(t, 1, feed.OnKey("ArrowDown"))
	assert.Equal(t, 2, feed.OnKey("ArrowDown"))
	assert.Equal(t, 2, feed.OnKey("ArrowDown"))
	assert.Equal(t, 1, feed.OnKey("ArrowUp"))
	assert.Equal(t, 0, feed.OnKey("ArrowUp"))
	assert.Equal(t, 0, feed.OnKey("ArrowUp"))

	// Unrelated keys are ignored.
	assert.Equal(t, 0, feed.OnKey("Enter"))
	assert.Equal(t, 0, feed.OnKey(" "))
}

func TestFeedService_ToggleLikeIsInvolutive(t *testing.T) {
	feed := newTestFeed(t)
	id := feed.Items()[0].ID

	assert.False(t, feed.IsLiked(id))
	assert.True(t, feed.ToggleLike(id))
	assert.True(t, feed.IsLiked(id))
	assert.False(t, feed.ToggleLike(id))
	assert.False(t, feed.IsLiked(id))
}

func TestFeedService_DisplayedLikes(t *testing.T) {
	feed := newTestFeed(t)
	video := feed.Items()[1]

	likes, err := feed.DisplayedLikes(video.ID)
	require.NoError(t, err)
	assert.Equal(t, video.Likes, likes)

	feed.ToggleLike(video.ID)
	likes, err = feed.DisplayedLikes(video.ID)
	require.NoError(t, err)
	assert.Equal(t, video.Likes+1, likes)

	feed.ToggleLike(video.ID)
	likes, err = feed.DisplayedLikes(video.ID)
	require.NoError(t, err)
	assert.Equal(t, video.Likes, likes)
}

func TestFeedService_DisplayedLikesUnknownVideo(t *testing.T) {
	feed := newTestFeed(t)

	_, err := feed.DisplayedLikes("nope")
	assert.ErrorIs(t, err, domain.ErrVideoNotFound)
}

func TestFeedService_ToggleFollowPerCreator(t *testing.T) {
	feed := newTestFeed(t)
	creator := feed.Items()[0].Creator.ID
	other := feed.Items()[1].Creator.ID

	assert.True(t, feed.ToggleFollow(creator))
	assert.True(t, feed.IsFollowing(creator))
	assert.False(t, feed.IsFollowing(other))

	assert.False(t, feed.ToggleFollow(creator))
	assert.False(t, feed.IsFollowing(creator))
}

func TestFeedService_EmptyFeed(t *testing.T) {
	repo := memory.NewMemoryVideoRepository()
	feed, err := NewFeedService(context.Background(), repo, zap.NewNop().Sugar())
	require.NoError(t, err)

	assert.Equal(t, 0, feed.ItemCount())
	_, ok := feed.Current()
	assert.False(t, ok)

	// Every transition is a permanent no-op.
	assert.Equal(t, 0, feed.OnDragEnd(-500, -1000))
	assert.Equal(t, 0, feed.OnKey("ArrowDown"))
}
