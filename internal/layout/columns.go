package layout

import (
	"github.com/leengari/queryviz/internal/domain/stage"
	"github.com/leengari/queryviz/internal/query/operations/projection"
)

// Grid rows: the header sits on row 1 and data starts right below
const (
	HeaderRow = 1
	StartRow  = 2
)

// Row-phase column names
const (
	ColUserID       = "user_id"
	ColUserName     = "user_name"
	ColUserCountry  = "user_country"
	ColOrderID      = "order_id"
	ColOrderUID     = "order_uid"
	ColOrderProduct = "order_product"
	ColOrderAmount  = "order_amount"
)

// Phase groups the steps that share one column layout
type Phase int

const (
	PhasePreJoin   Phase = iota // two floating tables
	PhaseJoined                 // one merged band, rows compact as filters apply
	PhaseAggregate              // one row per group, every aggregate column
	PhaseProjected              // one row per group, SELECT list only
)

func (p Phase) String() string {
	switch p {
	case PhasePreJoin:
		return "pre-join"
	case PhaseJoined:
		return "joined"
	case PhaseAggregate:
		return "aggregate"
	case PhaseProjected:
		return "projected"
	default:
		return "unknown"
	}
}

// PhaseFor resolves the layout phase of a step
func PhaseFor(step stage.Step) Phase {
	switch {
	case step <= stage.FromJoin:
		return PhasePreJoin
	case step < stage.GroupBy:
		return PhaseJoined
	case step < stage.Select:
		return PhaseAggregate
	default:
		return PhaseProjected
	}
}

// ColumnTable maps logical column names to grid columns for one phase
type ColumnTable struct {
	phase Phase
	cols  map[string]int
}

var columnTables = map[Phase]ColumnTable{
	PhasePreJoin: {PhasePreJoin, map[string]int{
		ColUserID: 1, ColUserName: 2, ColUserCountry: 3,
		// gap at 4 and 5 keeps the tables apart
		ColOrderID: 6, ColOrderUID: 7, ColOrderProduct: 8, ColOrderAmount: 9,
	}},
	PhaseJoined: {PhaseJoined, map[string]int{
		ColUserID: 1, ColUserName: 2, ColUserCountry: 3,
		// uid snaps next to the user it references
		ColOrderUID: 4, ColOrderID: 5, ColOrderProduct: 6, ColOrderAmount: 7,
	}},
	PhaseAggregate: {PhaseAggregate, map[string]int{
		projection.ColumnCountry:     3,
		projection.ColumnPlaceholder: 4,
		projection.ColumnCount:       5,
		projection.ColumnAverage:     6,
		projection.ColumnTotal:       7,
	}},
	PhaseProjected: {PhaseProjected, map[string]int{
		projection.ColumnCountry: 4,
		projection.ColumnTotal:   5,
	}},
}

// TableFor returns the column table of a phase
func TableFor(p Phase) ColumnTable {
	return columnTables[p]
}

// Phase returns the phase the table belongs to
func (t ColumnTable) Phase() Phase { return t.phase }

// Col returns the grid column of name. ok is false for names the phase
// does not show; callers omit such cells.
func (t ColumnTable) Col(name string) (col int, ok bool) {
	col, ok = t.cols[name]
	return col, ok
}

// Width is the number of grid columns the phase spans
func (t ColumnTable) Width() int {
	w := 0
	for _, c := range t.cols {
		if c > w {
			w = c
		}
	}
	return w
}
