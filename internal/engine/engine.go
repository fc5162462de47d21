package engine

import (
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/leengari/queryviz/internal/console"
	"github.com/leengari/queryviz/internal/domain/data"
	"github.com/leengari/queryviz/internal/domain/stage"
	"github.com/leengari/queryviz/internal/executor"
	"github.com/leengari/queryviz/internal/layout"
	"github.com/leengari/queryviz/internal/query"
	"github.com/leengari/queryviz/internal/query/operations/join"
	"github.com/leengari/queryviz/internal/storage"
	"github.com/leengari/queryviz/internal/transition"
)

// Config holds the timings of controllers created by an Engine
type Config struct {
	PlayInterval       time.Duration
	TransitionDuration time.Duration
	Stagger            time.Duration
	GhostOpacity       float64
}

// DefaultConfig returns the stock timings
func DefaultConfig() Config {
	tc := transition.DefaultConfig()
	return Config{
		PlayInterval:       2 * time.Second,
		TransitionDuration: 1500 * time.Millisecond,
		Stagger:            tc.Stagger,
		GhostOpacity:       tc.GhostOpacity,
	}
}

// Frame is everything a renderer needs to draw one step
type Frame struct {
	Step          stage.Step            `json:"step"`
	Stage         string                `json:"stage"`
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	Result        *executor.Result      `json:"result"`
	Cells         []layout.Cell         `json:"cells"`
	Particles     []transition.Particle `json:"particles,omitempty"`
	Ghosts        []layout.Cell         `json:"ghosts,omitempty"`
	Clauses       []console.Line        `json:"clauses"`
	Transitioning bool                  `json:"transitioning"`
}

type stageFrame struct {
	result *executor.Result
	cells  []layout.Cell
}

// Engine holds the evaluated stages of the fixed query over one seed.
// It is read-only after New and safe to share between controllers.
type Engine struct {
	seed       *storage.Seed
	rows       []data.UnifiedRow
	stages     [stage.Last + 1]stageFrame
	transition transition.Transition
	cfg        Config
}

// Load builds an Engine from database dbName in fsys
func Load(fsys fs.FS, dbName string, cfg Config) (*Engine, error) {
	seed, err := storage.LoadSeed(fsys, dbName)
	if err != nil {
		return nil, fmt.Errorf("failed to load seed: %w", err)
	}
	return New(seed, cfg)
}

// New evaluates every step of the query over seed once
func New(seed *storage.Seed, cfg Config) (*Engine, error) {
	e := &Engine{
		seed: seed,
		rows: join.Build(seed.Users, seed.Orders, join.CountryIn(query.WhereCountries...)),
		cfg:  cfg,
	}

	for _, s := range stage.All() {
		res, err := executor.Evaluate(s, e.rows)
		if err != nil {
			return nil, fmt.Errorf("evaluating %s: %w", s, err)
		}
		e.stages[s] = stageFrame{result: res, cells: layout.Assign(res)}
	}

	e.transition = transition.Plan(
		e.stages[stage.Where].result,
		e.stages[stage.GroupBy].result,
		transition.Config{Stagger: cfg.Stagger, GhostOpacity: cfg.GhostOpacity},
	)

	slog.Info("Engine ready",
		slog.String("seed", seed.Name),
		slog.Int("unified_rows", len(e.rows)),
		slog.Int("particles", len(e.transition.Particles)),
	)

	return e, nil
}

// Config returns the timings controllers of e use
func (e *Engine) Config() Config {
	return e.cfg
}

// Rows returns the unified rows every stage is evaluated from
func (e *Engine) Rows() []data.UnifiedRow {
	return e.rows
}

// Transition returns the WHERE to GROUP_BY transition
func (e *Engine) Transition() transition.Transition {
	return e.transition
}

// Frame returns the resting frame of step, without transition artifacts.
// step is clamped.
func (e *Engine) Frame(step stage.Step) Frame {
	step = stage.Clamp(step)
	sf := e.stages[step]
	info := console.Info(step)

	cells := make([]layout.Cell, len(sf.cells))
	copy(cells, sf.cells)

	return Frame{
		Step:        step,
		Stage:       step.String(),
		Title:       info.Title,
		Description: info.Description,
		Result:      sf.result,
		Cells:       cells,
		Clauses:     console.Lines(step),
	}
}
