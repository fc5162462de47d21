// Package transition computes the visual-only artifacts of the one
// discontinuous step change, WHERE to GROUP_BY: particles carrying each
// row's values into its group, and ghost rows fading where the rows were.
// Nothing here feeds back into evaluation.
package transition

import (
	"log/slog"
	"time"

	"github.com/leengari/queryviz/internal/domain/stage"
	"github.com/leengari/queryviz/internal/executor"
	"github.com/leengari/queryviz/internal/layout"
	"github.com/leengari/queryviz/internal/query/operations/projection"
)

// Kind tells which value a particle carries
type Kind string

const (
	KindMeasure Kind = "measure" // the amount, flying to the group total
	KindKey     Kind = "key"     // the country, flying to the group key
)

// Particle is a value moving from its pre-aggregation cell to its group cell
type Particle struct {
	Key     string        `json:"key"`
	Kind    Kind          `json:"kind"`
	Source  layout.Coord  `json:"source"`
	Target  layout.Coord  `json:"target"`
	Payload any           `json:"payload"`
	Delay   time.Duration `json:"delay"`
}

// Transition is the advisory side output of entering GROUP_BY
type Transition struct {
	From      stage.Step    `json:"from"`
	To        stage.Step    `json:"to"`
	Particles []Particle    `json:"particles"`
	Ghosts    []layout.Cell `json:"ghosts"`
}

// Config tunes particle staggering and ghost fading
type Config struct {
	Stagger      time.Duration
	GhostOpacity float64
}

// DefaultConfig returns the stock timings
func DefaultConfig() Config {
	return Config{
		Stagger:      120 * time.Millisecond,
		GhostOpacity: 0.35,
	}
}

// Applies reports whether moving from one step to another is the grouping
// transition
func Applies(from, to stage.Step) bool {
	return from == stage.Where && to == stage.GroupBy
}

// Plan computes particles and ghosts from the WHERE result and the GROUP_BY
// result it collapses into. Row i launches i*Stagger after the transition
// starts so particles queue instead of overlapping.
func Plan(where, grouped *executor.Result, cfg Config) Transition {
	t := Transition{From: stage.Where, To: stage.GroupBy}

	rowTable := layout.TableFor(layout.PhaseJoined)
	groupTable := layout.TableFor(layout.PhaseAggregate)

	amountCol, _ := rowTable.Col(layout.ColOrderAmount)
	countryCol, _ := rowTable.Col(layout.ColUserCountry)
	totalCol, _ := groupTable.Col(projection.ColumnTotal)
	keyCol, _ := groupTable.Col(projection.ColumnCountry)

	groupRow := make(map[string]int, len(grouped.Groups))
	for i, g := range grouped.Groups {
		groupRow[g.Key] = layout.StartRow + i
	}

	for i, row := range where.Rows {
		if !row.IsMatched || row.User == nil || row.Order == nil {
			continue
		}
		target, ok := groupRow[row.Country()]
		if !ok {
			continue
		}

		srcRow := layout.StartRow + i
		delay := time.Duration(i) * cfg.Stagger

		t.Particles = append(t.Particles,
			Particle{
				Key:     "p:" + row.RowID + ":measure",
				Kind:    KindMeasure,
				Source:  layout.Coord{Row: srcRow, Col: amountCol},
				Target:  layout.Coord{Row: target, Col: totalCol},
				Payload: row.Amount(),
				Delay:   delay,
			},
			Particle{
				Key:     "p:" + row.RowID + ":key",
				Kind:    KindKey,
				Source:  layout.Coord{Row: srcRow, Col: countryCol},
				Target:  layout.Coord{Row: target, Col: keyCol},
				Payload: row.Country(),
				Delay:   delay,
			},
		)
	}

	t.Ghosts = Ghosts(layout.Assign(where), cfg.GhostOpacity)

	slog.Debug("transition planned",
		slog.Int("particles", len(t.Particles)),
		slog.Int("ghosts", len(t.Ghosts)),
	)

	return t
}

// Ghosts turns the data cells of a stage into faded residue with keys of
// their own, so they never collide with live cells
func Ghosts(cells []layout.Cell, opacity float64) []layout.Cell {
	ghosts := make([]layout.Cell, 0, len(cells))
	for _, c := range cells {
		if c.Role != layout.RoleData {
			continue
		}
		c.Key = "ghost:" + c.Key
		c.Ghost = true
		c.Opacity = opacity
		ghosts = append(ghosts, c)
	}
	return ghosts
}

// Span is how long after the transition starts the last particle launches
func (t Transition) Span() time.Duration {
	var last time.Duration
	for _, p := range t.Particles {
		if p.Delay > last {
			last = p.Delay
		}
	}
	return last
}
