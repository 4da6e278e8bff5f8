package services

import (
	"context"
	"testing"

	"vidtok/internal/core/domain"
	"vidtok/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCoordinator(t *testing.T, count int) (*PlaybackCoordinator, []*fakeElement) {
	t.Helper()

	videos := make([]*domain.Video, 0, count)
	for i := 0; i < count; i++ {
		videos = append(videos, testVideo(string(rune('a'+i))))
	}

	elements := make([]*fakeElement, 0, count)
	factory := func(v *domain.Video) ports.MediaElement {
		el := &fakeElement{}
		elements = append(elements, el)
		return el
	}

	return NewPlaybackCoordinator(videos, factory, zap.NewNop().Sugar()), elements
}

func TestPlaybackCoordinator_NothingActiveInitially(t *testing.T) {
	coord, elements := newTestCoordinator(t, 3)

	assert.Nil(t, coord.Active())
	for _, el := range elements {
		plays, _ := el.counts()
		assert.Equal(t, 0, plays)
	}
}

func TestPlaybackCoordinator_SingleActiveController(t *testing.T) {
	coord, elements := newTestCoordinator(t, 3)
	ctx := context.Background()

	require.NoError(t, coord.SetActiveIndex(ctx, 0))
	require.NoError(t, coord.SetActiveIndex(ctx, 1))
	require.NoError(t, coord.SetActiveIndex(ctx, 2))

	for i, el := range elements {
		ctl, ok := coord.Controller(i)
		require.True(t, ok)
		if i == 2 {
			assert.True(t, ctl.Snapshot().Playing)
			continue
		}
		assert.False(t, ctl.Snapshot().Playing)
		_, pauses := el.counts()
		assert.Equal(t, 1, pauses)
	}
}

func TestPlaybackCoordinator_SameIndexIsNoOp(t *testing.T) {
	coord, elements := newTestCoordinator(t, 2)
	ctx := context.Background()

	require.NoError(t, coord.SetActiveIndex(ctx, 0))
	require.NoError(t, coord.SetActiveIndex(ctx, 0))

	plays, _ := elements[0].counts()
	assert.Equal(t, 1, plays)
}

func TestPlaybackCoordinator_IndexOutOfRange(t *testing.T) {
	coord, _ := newTestCoordinator(t, 2)
	ctx := context.Background()

	assert.Error(t, coord.SetActiveIndex(ctx, -1))
	assert.Error(t, coord.SetActiveIndex(ctx, 2))
	assert.Nil(t, coord.Active())
}

func TestPlaybackCoordinator_ControllerLookup(t *testing.T) {
	coord, _ := newTestCoordinator(t, 2)

	_, ok := coord.Controller(1)
	assert.True(t, ok)
	_, ok = coord.Controller(5)
	assert.False(t, ok)
}

func TestPlaybackCoordinator_ShutdownStopsAll(t *testing.T) {
	coord, _ := newTestCoordinator(t, 3)
	ctx := context.Background()
	require.NoError(t, coord.SetActiveIndex(ctx, 1))

	coord.Shutdown()

	assert.Nil(t, coord.Active())
	for i := 0; i < 3; i++ {
		ctl, ok := coord.Controller(i)
		require.True(t, ok)
		assert.False(t, ctl.Snapshot().Playing)
	}
}

func TestPlaybackCoordinator_EmptyFeed(t *testing.T) {
	coord, _ := newTestCoordinator(t, 0)

	assert.Error(t, coord.SetActiveIndex(context.Background(), 0))
	assert.Nil(t, coord.Active())
	coord.Shutdown()
}
