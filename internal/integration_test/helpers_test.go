package integration

import (
	"sync"
	"testing"
	"time"

	"github.com/leengari/queryviz/databases"
	"github.com/leengari/queryviz/internal/engine"
)

// MockObserver records events from any goroutine
type MockObserver struct {
	mu     sync.Mutex
	Events []engine.Event
}

func (m *MockObserver) OnEvent(event engine.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
}

func (m *MockObserver) types() []engine.EventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]engine.EventType, len(m.Events))
	for i, e := range m.Events {
		types[i] = e.Type
	}
	return types
}

// loadEngine builds an engine from the embedded seed with fast timers
func loadEngine(t *testing.T) *engine.Engine {
	t.Helper()
	cfg := engine.DefaultConfig()
	cfg.PlayInterval = 10 * time.Millisecond
	cfg.TransitionDuration = 50 * time.Millisecond

	eng, err := engine.Load(databases.Content, "main", cfg)
	if err != nil {
		t.Fatalf("Failed to load engine: %v", err)
	}
	return eng
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}
