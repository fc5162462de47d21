package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/queryviz/databases"
	"github.com/leengari/queryviz/internal/domain/stage"
	"github.com/leengari/queryviz/internal/query/operations/testutil"
	"github.com/leengari/queryviz/internal/storage"
)

func fastConfig() Config {
	return Config{
		PlayInterval:       10 * time.Millisecond,
		TransitionDuration: 100 * time.Millisecond,
		Stagger:            5 * time.Millisecond,
		GhostOpacity:       0.35,
	}
}

func newTestEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	eng, err := New(&storage.Seed{Name: "test", Users: testutil.Users(), Orders: testutil.Orders()}, cfg)
	require.NoError(t, err)
	return eng
}

func TestLoad_EmbeddedSeed(t *testing.T) {
	eng, err := Load(databases.Content, "main", DefaultConfig())
	require.NoError(t, err)

	assert.Len(t, eng.Rows(), 8)
	assert.Equal(t, testutil.UnifiedRows(), eng.Rows())
}

func TestLoad_MissingDatabase(t *testing.T) {
	_, err := Load(databases.Content, "nope", DefaultConfig())
	assert.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 2*time.Second, cfg.PlayInterval)
	assert.Equal(t, 1500*time.Millisecond, cfg.TransitionDuration)
	assert.Equal(t, 120*time.Millisecond, cfg.Stagger)
}

func TestFrame_Memoized(t *testing.T) {
	eng := newTestEngine(t, fastConfig())

	for _, s := range stage.All() {
		a, b := eng.Frame(s), eng.Frame(s)
		assert.Equal(t, a, b, s.String())
		assert.Equal(t, s, a.Step)
		assert.Equal(t, s.String(), a.Stage)
		assert.NotEmpty(t, a.Title)
		assert.NotEmpty(t, a.Cells)
		assert.Len(t, a.Clauses, 9)
		assert.Empty(t, a.Particles)
		assert.False(t, a.Transitioning)
	}
}

func TestFrame_CellsAreCopies(t *testing.T) {
	eng := newTestEngine(t, fastConfig())

	f := eng.Frame(stage.Where)
	f.Cells[0].Key = "mutated"
	assert.NotEqual(t, "mutated", eng.Frame(stage.Where).Cells[0].Key)
}

func TestFrame_Clamped(t *testing.T) {
	eng := newTestEngine(t, fastConfig())
	assert.Equal(t, stage.Limit, eng.Frame(stage.Step(99)).Step)
	assert.Equal(t, stage.FromJoin, eng.Frame(stage.Step(-1)).Step)
}

func TestFrame_LimitResult(t *testing.T) {
	eng := newTestEngine(t, fastConfig())

	res := eng.Frame(stage.Limit).Result
	require.True(t, res.Aggregated)
	require.Len(t, res.Groups, 2)
	assert.Equal(t, "USA", res.Groups[0].Key)
	assert.False(t, res.Groups[0].Dimmed)
	assert.True(t, res.Groups[1].Dimmed)
}

func TestTransition_Precomputed(t *testing.T) {
	eng := newTestEngine(t, fastConfig())

	tr := eng.Transition()
	assert.Len(t, tr.Particles, 8)
	assert.Equal(t, 3*5*time.Millisecond, tr.Span())
}
