package testutil

import (
	"testing"

	"github.com/leengari/queryviz/internal/domain/data"
)

// RowIDs lists the row ids of rows in order
func RowIDs(rows []data.UnifiedRow) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.RowID
	}
	return ids
}

// GroupKeys lists the keys of groups in order
func GroupKeys(groups []data.Group) []string {
	keys := make([]string, len(groups))
	for i, g := range groups {
		keys[i] = g.Key
	}
	return keys
}

// AssertSubset checks that every row id of sub also appears in super
func AssertSubset(t *testing.T, sub, super []data.UnifiedRow, context string) {
	t.Helper()
	seen := make(map[string]bool, len(super))
	for _, r := range super {
		seen[r.RowID] = true
	}
	for _, r := range sub {
		if !seen[r.RowID] {
			t.Errorf("%s: row %s is not in the superset", context, r.RowID)
		}
	}
}

// FindRow returns the row with the given id
func FindRow(t *testing.T, rows []data.UnifiedRow, rowID string) data.UnifiedRow {
	t.Helper()
	for _, r := range rows {
		if r.RowID == rowID {
			return r
		}
	}
	t.Fatalf("row %s not found", rowID)
	return data.UnifiedRow{}
}
