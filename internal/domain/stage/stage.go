package stage

import "fmt"

// Step is one clause of the fixed query in logical evaluation order
type Step int

const (
	FromJoin Step = iota
	On
	Where
	GroupBy
	Having
	OrderBy
	Select
	Limit
)

// First and Last bound the pipeline
const (
	First = FromJoin
	Last  = Limit
)

var names = [...]string{
	FromJoin: "FROM_JOIN",
	On:       "ON",
	Where:    "WHERE",
	GroupBy:  "GROUP_BY",
	Having:   "HAVING",
	OrderBy:  "ORDER_BY",
	Select:   "SELECT",
	Limit:    "LIMIT",
}

func (s Step) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Step(%d)", int(s))
	}
	return names[s]
}

// Valid reports whether s is inside [First, Last]
func (s Step) Valid() bool {
	return s >= First && s <= Last
}

// Clamp pins s into [First, Last]
func Clamp(s Step) Step {
	if s < First {
		return First
	}
	if s > Last {
		return Last
	}
	return s
}

// All returns every step in pipeline order
func All() []Step {
	steps := make([]Step, 0, Last+1)
	for s := First; s <= Last; s++ {
		steps = append(steps, s)
	}
	return steps
}

// Parse resolves a step from its name (e.g. "GROUP_BY")
func Parse(name string) (Step, bool) {
	for i, n := range names {
		if n == name {
			return Step(i), true
		}
	}
	return 0, false
}

// Aggregated reports whether rows have been collapsed into groups at s
func (s Step) Aggregated() bool {
	return s >= GroupBy
}
