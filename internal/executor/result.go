package executor

import (
	"github.com/leengari/queryviz/internal/domain/data"
	"github.com/leengari/queryviz/internal/domain/stage"
)

// Result is the relational state of one stage. Exactly one of Rows and
// Groups is meaningful, selected by Aggregated.
type Result struct {
	Step       stage.Step        `json:"step"`
	Aggregated bool              `json:"aggregated"`
	Rows       []data.UnifiedRow `json:"rows,omitempty"`
	Groups     []data.Group      `json:"groups,omitempty"`
	// Columns lists the projected group columns of aggregated stages
	Columns []string `json:"columns,omitempty"`
}

// ActiveGroups returns the groups not dimmed by LIMIT
func (r *Result) ActiveGroups() []data.Group {
	active := make([]data.Group, 0, len(r.Groups))
	for _, g := range r.Groups {
		if !g.Dimmed {
			active = append(active, g)
		}
	}
	return active
}

// Len is the number of rows or groups the stage yields
func (r *Result) Len() int {
	if r.Aggregated {
		return len(r.Groups)
	}
	return len(r.Rows)
}
