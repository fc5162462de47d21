package join

import "github.com/leengari/queryviz/internal/domain/data"

// JoinType represents the type of JOIN operation
type JoinType int

const (
	JoinTypeInner JoinType = iota // Returns only matching rows from both tables
	JoinTypeFull                  // Returns all rows from both tables, NULLs where no match
)

// String returns the string representation of the JOIN type
func (jt JoinType) String() string {
	switch jt {
	case JoinTypeInner:
		return "INNER JOIN"
	case JoinTypeFull:
		return "FULL OUTER JOIN"
	default:
		return "UNKNOWN JOIN"
	}
}

// Predicate is the WHERE condition evaluated against the left side
type Predicate func(data.User) bool

// CountryIn accepts users whose country is one of countries
func CountryIn(countries ...string) Predicate {
	set := make(map[string]struct{}, len(countries))
	for _, c := range countries {
		set[c] = struct{}{}
	}
	return func(u data.User) bool {
		_, ok := set[u.Country]
		return ok
	}
}

// Filter keeps the rows matching the join type
func Filter(rows []data.UnifiedRow, jt JoinType) []data.UnifiedRow {
	if jt == JoinTypeFull {
		return rows
	}
	out := make([]data.UnifiedRow, 0, len(rows))
	for _, r := range rows {
		if r.IsMatched {
			out = append(out, r)
		}
	}
	return out
}
