package testutil

import (
	"github.com/leengari/queryviz/internal/domain/data"
	"github.com/leengari/queryviz/internal/query"
	"github.com/leengari/queryviz/internal/query/operations/join"
)

// Users returns the canonical users seed, a fresh copy per call
func Users() []data.User {
	return []data.User{
		{ID: 1, Name: "Alice", Country: "USA"},
		{ID: 2, Name: "Chen", Country: "Taiwan"},
		{ID: 3, Name: "Eiko", Country: "Japan"},
		{ID: 4, Name: "Bob", Country: "UK"},
		{ID: 5, Name: "Dieter", Country: "Korea"},
	}
}

// Orders returns the canonical orders seed; order 107 dangles (uid 9)
func Orders() []data.Order {
	return []data.Order{
		{ID: 101, UID: 4, Product: "Laptop", Amount: 1200},
		{ID: 102, UID: 5, Product: "Keyboard", Amount: 150},
		{ID: 103, UID: 2, Product: "Desk", Amount: 200},
		{ID: 104, UID: 2, Product: "Mouse", Amount: 80},
		{ID: 105, UID: 1, Product: "Headset", Amount: 200},
		{ID: 106, UID: 1, Product: "Dock", Amount: 80},
		{ID: 107, UID: 9, Product: "Unknown", Amount: 999},
	}
}

// UnifiedRows builds the unified rows of the canonical seed and predicate
func UnifiedRows() []data.UnifiedRow {
	return join.Build(Users(), Orders(), join.CountryIn(query.WhereCountries...))
}
