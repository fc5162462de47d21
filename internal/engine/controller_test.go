package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/queryviz/internal/domain/stage"
)

func newTestController(t *testing.T, cfg Config) (*Controller, *MockObserver) {
	t.Helper()
	ctrl := newTestEngine(t, cfg).NewController()
	obs := &MockObserver{}
	ctrl.AddObserver(obs)
	t.Cleanup(ctrl.Close)
	return ctrl, obs
}

func TestController_StartsAtFromJoin(t *testing.T) {
	ctrl, _ := newTestController(t, fastConfig())
	assert.Equal(t, stage.FromJoin, ctrl.Step())
	assert.Equal(t, stage.FromJoin, ctrl.Current().Step)
	assert.NotEmpty(t, ctrl.SessionID())
}

func TestController_SessionsDiffer(t *testing.T) {
	eng := newTestEngine(t, fastConfig())
	assert.NotEqual(t, eng.NewController().SessionID(), eng.NewController().SessionID())
}

func TestController_AdvanceRetreat(t *testing.T) {
	ctrl, obs := newTestController(t, fastConfig())

	assert.Equal(t, stage.On, ctrl.Advance().Step)
	assert.Equal(t, stage.Where, ctrl.Advance().Step)
	assert.Equal(t, stage.On, ctrl.Retreat().Step)
	assert.Equal(t, 3, obs.Count(EventStepChanged))
}

func TestController_BoundsAreNoOps(t *testing.T) {
	ctrl, obs := newTestController(t, fastConfig())

	assert.Equal(t, stage.FromJoin, ctrl.Retreat().Step)
	assert.Empty(t, obs.Types())

	ctrl.JumpTo(stage.Limit)
	before := len(obs.Types())
	assert.Equal(t, stage.Limit, ctrl.Advance().Step)
	assert.Len(t, obs.Types(), before)
}

func TestController_JumpToClamps(t *testing.T) {
	ctrl, _ := newTestController(t, fastConfig())

	assert.Equal(t, stage.Limit, ctrl.JumpTo(stage.Step(12)).Step)
	assert.Equal(t, stage.FromJoin, ctrl.JumpTo(stage.Step(-4)).Step)
	assert.Equal(t, stage.Having, ctrl.JumpTo(stage.Having).Step)
}

func TestController_Reset(t *testing.T) {
	ctrl, _ := newTestController(t, fastConfig())

	ctrl.JumpTo(stage.OrderBy)
	assert.Equal(t, stage.FromJoin, ctrl.Reset().Step)
}

func TestController_FrameMatchesEngine(t *testing.T) {
	ctrl, _ := newTestController(t, fastConfig())

	f := ctrl.JumpTo(stage.Select)
	assert.Equal(t, ctrl.engine.Frame(stage.Select), f)
}

func TestController_TransitionWhereToGroupBy(t *testing.T) {
	ctrl, obs := newTestController(t, fastConfig())
	ctrl.JumpTo(stage.Where)

	f := ctrl.Advance()
	require.Equal(t, stage.GroupBy, f.Step)
	assert.True(t, f.Transitioning)
	assert.Len(t, f.Particles, 8)
	assert.NotEmpty(t, f.Ghosts)
	assert.Equal(t, 1, obs.Count(EventTransitionStarted))

	// the resting grid is the same with or without the artifacts
	assert.Equal(t, ctrl.engine.Frame(stage.GroupBy).Cells, f.Cells)

	require.Eventually(t, func() bool {
		return !ctrl.Current().Transitioning
	}, time.Second, 5*time.Millisecond)

	assert.Empty(t, ctrl.Current().Particles)
	assert.Empty(t, ctrl.Current().Ghosts)
	assert.Equal(t, 1, obs.Count(EventTransitionCleared))
}

func TestController_NoTransitionOnOtherMoves(t *testing.T) {
	ctrl, obs := newTestController(t, fastConfig())

	ctrl.JumpTo(stage.GroupBy) // from FROM_JOIN, not WHERE
	assert.False(t, ctrl.Current().Transitioning)

	ctrl.JumpTo(stage.Where)
	ctrl.JumpTo(stage.Having)
	assert.False(t, ctrl.Current().Transitioning)
	assert.Zero(t, obs.Count(EventTransitionStarted))
}

func TestController_MovingCancelsTransition(t *testing.T) {
	ctrl, obs := newTestController(t, fastConfig())
	ctrl.JumpTo(stage.Where)
	ctrl.Advance()

	f := ctrl.Advance()
	assert.Equal(t, stage.Having, f.Step)
	assert.False(t, f.Transitioning)
	assert.Equal(t, 1, obs.Count(EventTransitionCancelled))

	time.Sleep(3 * fastConfig().TransitionDuration)
	assert.Zero(t, obs.Count(EventTransitionCleared), "stopped timer must not clear")
}

func TestController_StaleTimerIgnored(t *testing.T) {
	cfg := fastConfig()
	ctrl, obs := newTestController(t, cfg)

	ctrl.JumpTo(stage.Where)
	ctrl.Advance()

	ctrl.mu.Lock()
	staleGen := ctrl.gen
	ctrl.mu.Unlock()

	// leave and re-enter so a newer transition is running
	ctrl.Retreat()
	ctrl.Advance()

	ctrl.clearTransition(staleGen)
	assert.True(t, ctrl.Current().Transitioning, "old generation must not clear the new transition")
	assert.Zero(t, obs.Count(EventTransitionCleared))

	require.Eventually(t, func() bool {
		return obs.Count(EventTransitionCleared) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestController_PlayRunsToLimit(t *testing.T) {
	ctrl, obs := newTestController(t, fastConfig())

	ctrl.Play(context.Background())
	assert.True(t, ctrl.Playing())

	require.Eventually(t, func() bool {
		return !ctrl.Playing()
	}, 2*time.Second, 5*time.Millisecond)

	assert.Equal(t, stage.Limit, ctrl.Step())
	assert.Equal(t, 7, obs.Count(EventStepChanged))
	assert.Equal(t, 1, obs.Count(EventPlayStarted))
	require.Eventually(t, func() bool {
		return obs.Count(EventPlayStopped) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestController_PlayAtLimitIsNoOp(t *testing.T) {
	ctrl, obs := newTestController(t, fastConfig())
	ctrl.JumpTo(stage.Limit)
	before := len(obs.Types())

	ctrl.Play(context.Background())
	assert.False(t, ctrl.Playing())
	assert.Len(t, obs.Types(), before)
}

func TestController_Pause(t *testing.T) {
	cfg := fastConfig()
	cfg.PlayInterval = time.Hour
	ctrl, obs := newTestController(t, cfg)

	ctrl.Play(context.Background())
	ctrl.Play(context.Background()) // already playing
	ctrl.Pause()

	assert.False(t, ctrl.Playing())
	assert.Equal(t, stage.FromJoin, ctrl.Step())
	assert.Equal(t, 1, obs.Count(EventPlayStarted))
	assert.Equal(t, 1, obs.Count(EventPlayStopped))

	ctrl.Pause() // not playing
}

func TestController_PlayStopsOnContextCancel(t *testing.T) {
	cfg := fastConfig()
	cfg.PlayInterval = time.Hour
	ctrl, obs := newTestController(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	ctrl.Play(ctx)
	cancel()

	require.Eventually(t, func() bool {
		return !ctrl.Playing() && obs.Count(EventPlayStopped) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestController_Close(t *testing.T) {
	cfg := fastConfig()
	cfg.PlayInterval = time.Hour
	ctrl, obs := newTestController(t, cfg)

	ctrl.JumpTo(stage.Where)
	ctrl.Advance()
	ctrl.Play(context.Background())
	ctrl.Close()

	assert.False(t, ctrl.Playing())
	assert.Equal(t, stage.GroupBy, ctrl.Advance().Step, "moves after Close are no-ops")
	assert.False(t, ctrl.Current().Transitioning)

	time.Sleep(3 * cfg.TransitionDuration)
	assert.Zero(t, obs.Count(EventTransitionCleared))

	ctrl.Close() // idempotent
}

func TestController_ConcurrentUse(t *testing.T) {
	ctrl, _ := newTestController(t, fastConfig())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				switch (i + j) % 4 {
				case 0:
					ctrl.Advance()
				case 1:
					ctrl.Retreat()
				case 2:
					ctrl.JumpTo(stage.Step(j % 9))
				default:
					ctrl.Current()
				}
			}
		}(i)
	}
	wg.Wait()

	assert.True(t, ctrl.Step().Valid())
}
