package integration

import (
	"testing"

	"github.com/leengari/queryviz/internal/domain/stage"
)

// TestPipelineOverEmbeddedSeed walks every step of the embedded seed and
// checks the relational result of each
func TestPipelineOverEmbeddedSeed(t *testing.T) {
	eng := loadEngine(t)

	wantRows := map[stage.Step][]string{
		stage.FromJoin: {"u-1-o-105", "u-1-o-106", "u-2-o-103", "u-2-o-104", "u-3-null", "u-4-o-101", "u-5-o-102", "null-o-107"},
		stage.On:       {"u-1-o-105", "u-1-o-106", "u-2-o-103", "u-2-o-104", "u-4-o-101", "u-5-o-102"},
		stage.Where:    {"u-1-o-105", "u-1-o-106", "u-4-o-101", "u-5-o-102"},
	}
	wantGroups := map[stage.Step][]string{
		stage.GroupBy: {"Korea", "UK", "USA"},
		stage.Having:  {"UK", "USA"},
		stage.OrderBy: {"USA", "UK"},
		stage.Select:  {"USA", "UK"},
		stage.Limit:   {"USA", "UK"},
	}

	for _, s := range stage.All() {
		res := eng.Frame(s).Result

		if want, ok := wantRows[s]; ok {
			if res.Aggregated {
				t.Fatalf("%s: expected rows, got groups", s)
			}
			if len(res.Rows) != len(want) {
				t.Fatalf("%s: expected %d rows, got %d", s, len(want), len(res.Rows))
			}
			for i, id := range want {
				if res.Rows[i].RowID != id {
					t.Errorf("%s row %d: expected %s, got %s", s, i, id, res.Rows[i].RowID)
				}
			}
			continue
		}

		want := wantGroups[s]
		if !res.Aggregated {
			t.Fatalf("%s: expected groups, got rows", s)
		}
		if len(res.Groups) != len(want) {
			t.Fatalf("%s: expected %d groups, got %d", s, len(want), len(res.Groups))
		}
		for i, key := range want {
			if res.Groups[i].Key != key {
				t.Errorf("%s group %d: expected %s, got %s", s, i, key, res.Groups[i].Key)
			}
		}
	}

	limit := eng.Frame(stage.Limit).Result
	if limit.Groups[0].Dimmed || !limit.Groups[1].Dimmed {
		t.Errorf("LIMIT 1 should dim every group but the first: %+v", limit.Groups)
	}
	if limit.Groups[0].Sum != 280 || limit.Groups[0].Count != 2 {
		t.Errorf("USA group wrong: %+v", limit.Groups[0])
	}
}

// TestCellKeysStayUniqueAndStable checks keys end to end: unique within each
// frame, and a surviving entity keeps its key from one step to the next
func TestCellKeysStayUniqueAndStable(t *testing.T) {
	eng := loadEngine(t)

	for _, s := range stage.All() {
		seen := make(map[string]bool)
		for _, c := range eng.Frame(s).Cells {
			if seen[c.Key] {
				t.Fatalf("%s: duplicate cell key %s", s, c.Key)
			}
			seen[c.Key] = true
		}
	}

	where := make(map[string]bool)
	for _, c := range eng.Frame(stage.Where).Cells {
		where[c.Key] = true
	}
	for _, key := range []string{"h:country", "h:amount"} {
		if !where[key] {
			t.Errorf("WHERE is missing shared header %s", key)
		}
		found := false
		for _, c := range eng.Frame(stage.GroupBy).Cells {
			if c.Key == key {
				found = true
			}
		}
		if !found {
			t.Errorf("GROUP_BY is missing shared header %s", key)
		}
	}
}
