package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/leengari/queryviz/internal/domain/stage"
	"github.com/leengari/queryviz/internal/transition"
)

// Controller owns the current step of one viewer, the transient transition
// state and the timers that clear it. All methods are safe for concurrent
// use. Observers must not call Pause or Close from OnEvent.
type Controller struct {
	engine    *Engine
	cfg       Config
	sessionID string

	mu         sync.Mutex
	step       stage.Step
	gen        uint64 // bumped on every step change, stale timers compare against it
	active     *transition.Transition
	clearTimer *time.Timer
	playCancel context.CancelFunc
	playDone   chan struct{}
	closed     bool

	obsMu     sync.RWMutex
	observers []Observer
}

// NewController creates a controller at FROM_JOIN using the engine's timings
func (e *Engine) NewController() *Controller {
	return &Controller{
		engine:    e,
		cfg:       e.cfg,
		sessionID: uuid.NewString(),
		step:      stage.First,
		observers: make([]Observer, 0),
	}
}

// SessionID identifies the controller in events and logs
func (c *Controller) SessionID() string {
	return c.sessionID
}

// Step returns the current step
func (c *Controller) Step() stage.Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// Current returns the frame of the current step, with particles and ghosts
// while a transition is running
func (c *Controller) Current() Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frameLocked()
}

func (c *Controller) frameLocked() Frame {
	f := c.engine.Frame(c.step)
	if c.active != nil {
		f.Transitioning = true
		f.Particles = append([]transition.Particle(nil), c.active.Particles...)
		f.Ghosts = append(f.Ghosts, c.active.Ghosts...)
	}
	return f
}

// Advance moves one step forward. It is a no-op at LIMIT.
func (c *Controller) Advance() Frame {
	return c.move(func(s stage.Step) stage.Step { return s + 1 })
}

// Retreat moves one step back. It is a no-op at FROM_JOIN.
func (c *Controller) Retreat() Frame {
	return c.move(func(s stage.Step) stage.Step { return s - 1 })
}

// Reset returns to FROM_JOIN
func (c *Controller) Reset() Frame {
	return c.move(func(stage.Step) stage.Step { return stage.First })
}

// JumpTo moves to step, clamped into the pipeline
func (c *Controller) JumpTo(step stage.Step) Frame {
	return c.move(func(stage.Step) stage.Step { return step })
}

func (c *Controller) move(next func(stage.Step) stage.Step) Frame {
	c.mu.Lock()
	events := c.transitionLocked(stage.Clamp(next(c.step)))
	f := c.frameLocked()
	c.mu.Unlock()

	c.notify(events...)
	return f
}

// transitionLocked switches to target and returns the events to emit once
// the lock is released
func (c *Controller) transitionLocked(target stage.Step) []Event {
	if c.closed || target == c.step {
		return nil
	}

	var events []Event
	from := c.step

	if c.active != nil {
		events = append(events, Event{
			Type: EventTransitionCancelled,
			Data: TransitionInfo{From: c.active.From, To: c.active.To},
		})
	}
	c.stopTransitionLocked()

	c.gen++
	c.step = target
	events = append(events, Event{Type: EventStepChanged, Data: StepChange{From: from, To: target}})

	if transition.Applies(from, target) {
		tr := c.engine.Transition()
		c.active = &tr
		gen := c.gen
		c.clearTimer = time.AfterFunc(c.cfg.TransitionDuration, func() { c.clearTransition(gen) })

		events = append(events, Event{
			Type: EventTransitionStarted,
			Data: TransitionInfo{From: tr.From, To: tr.To, Particles: len(tr.Particles)},
		})
	}

	return events
}

func (c *Controller) stopTransitionLocked() {
	if c.clearTimer != nil {
		c.clearTimer.Stop()
		c.clearTimer = nil
	}
	c.active = nil
}

// clearTransition runs on the timer goroutine. A timer that fired for an
// older step change finds a newer gen and does nothing.
func (c *Controller) clearTransition(gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.gen || c.active == nil {
		c.mu.Unlock()
		return
	}
	tr := c.active
	c.active = nil
	c.clearTimer = nil
	c.mu.Unlock()

	c.notify(Event{
		Type: EventTransitionCleared,
		Data: TransitionInfo{From: tr.From, To: tr.To, Particles: len(tr.Particles)},
	})
}

// Playing reports whether auto-advance is running
func (c *Controller) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playCancel != nil
}

// Play starts advancing every PlayInterval until LIMIT, Pause, Close or
// ctx is done. It does nothing at LIMIT or when already playing.
func (c *Controller) Play(ctx context.Context) {
	c.mu.Lock()
	if c.closed || c.playCancel != nil || c.step == stage.Last {
		c.mu.Unlock()
		return
	}
	playCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	c.playCancel = cancel
	c.playDone = done
	from := c.step
	c.mu.Unlock()

	c.notify(Event{Type: EventPlayStarted, Data: StepChange{From: from, To: stage.Last}})
	go c.play(playCtx, done)
}

func (c *Controller) play(ctx context.Context, done chan struct{}) {
	ticker := time.NewTicker(c.cfg.PlayInterval)
	defer func() {
		ticker.Stop()

		c.mu.Lock()
		if c.playDone == done {
			c.playCancel()
			c.playCancel = nil
			c.playDone = nil
		}
		at := c.step
		c.mu.Unlock()

		c.notify(Event{Type: EventPlayStopped, Data: StepChange{From: at, To: at}})
		close(done)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if f := c.Advance(); f.Step == stage.Last {
				return
			}
		}
	}
}

// Pause stops auto-advance and waits for the play loop to exit
func (c *Controller) Pause() {
	c.mu.Lock()
	cancel, done := c.playCancel, c.playDone
	c.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Close stops every timer and the play loop. Later moves are no-ops.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.stopTransitionLocked()
	cancel, done := c.playCancel, c.playDone
	c.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}

	slog.Debug("controller closed", slog.String("session_id", c.sessionID))
}

// AddObserver registers an observer to receive lifecycle events
func (c *Controller) AddObserver(observer Observer) {
	c.obsMu.Lock()
	defer c.obsMu.Unlock()
	c.observers = append(c.observers, observer)
}

// RemoveObserver unregisters an observer
func (c *Controller) RemoveObserver(observer Observer) {
	c.obsMu.Lock()
	defer c.obsMu.Unlock()
	for i, o := range c.observers {
		if o == observer {
			c.observers = append(c.observers[:i], c.observers[i+1:]...)
			return
		}
	}
}

// notify sends events to all registered observers
func (c *Controller) notify(events ...Event) {
	if len(events) == 0 {
		return
	}

	c.obsMu.RLock()
	observers := append([]Observer(nil), c.observers...)
	c.obsMu.RUnlock()

	now := time.Now()
	for _, event := range events {
		event.SessionID = c.sessionID
		event.Timestamp = now
		for _, observer := range observers {
			observer.OnEvent(event)
		}
	}
}
