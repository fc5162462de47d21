package engine

import (
	"time"

	"github.com/leengari/queryviz/internal/domain/stage"
)

// EventType represents different lifecycle phases of a controller
type EventType string

const (
	EventStepChanged         EventType = "step_changed"
	EventTransitionStarted   EventType = "transition_started"
	EventTransitionCleared   EventType = "transition_cleared"
	EventTransitionCancelled EventType = "transition_cancelled"
	EventPlayStarted         EventType = "play_started"
	EventPlayStopped         EventType = "play_stopped"
)

// Event represents a lifecycle event of a controller
type Event struct {
	Type      EventType   // Type of event
	SessionID string      // Controller session for tracing
	Timestamp time.Time   // When the event occurred
	Data      interface{} // Event-specific data (StepChange, TransitionInfo)
}

// StepChange is the data of EventStepChanged
type StepChange struct {
	From stage.Step
	To   stage.Step
}

// TransitionInfo is the data of the transition events
type TransitionInfo struct {
	From      stage.Step
	To        stage.Step
	Particles int
}

// Observer interface for event subscribers
// Observers are called outside the controller lock but must not block
type Observer interface {
	OnEvent(event Event)
}
