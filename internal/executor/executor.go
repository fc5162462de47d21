package executor

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/leengari/queryviz/internal/domain/data"
	"github.com/leengari/queryviz/internal/domain/stage"
	"github.com/leengari/queryviz/internal/plan"
	"github.com/leengari/queryviz/internal/planner"
	"github.com/leengari/queryviz/internal/query/operations/join"
	"github.com/leengari/queryviz/internal/query/operations/projection"
)

// Evaluate computes the stage result of step from the full unified row set.
// It never reuses a previous stage's result, so the same step always yields
// the same result.
func Evaluate(step stage.Step, rows []data.UnifiedRow) (*Result, error) {
	step = stage.Clamp(step)

	res, err := Execute(planner.Plan(step), rows)
	if err != nil {
		return nil, err
	}
	res.Step = step

	slog.Debug("stage evaluated",
		slog.String("step", step.String()),
		slog.Bool("aggregated", res.Aggregated),
		slog.Int("size", res.Len()),
	)
	return res, nil
}

// Execute evaluates a plan tree bottom-up over rows
func Execute(node plan.Node, rows []data.UnifiedRow) (*Result, error) {
	switch n := node.(type) {
	case *plan.JoinNode:
		return &Result{Step: n.Step(), Rows: join.Filter(rows, n.JoinType)}, nil
	case *plan.FilterNode:
		return executeFilter(n, rows)
	case *plan.GroupNode:
		return executeGroup(n, rows)
	case *plan.HavingNode:
		return executeHaving(n, rows)
	case *plan.SortNode:
		return executeSort(n, rows)
	case *plan.ProjectNode:
		return executeProject(n, rows)
	case *plan.LimitNode:
		return executeLimit(n, rows)
	case nil:
		return nil, fmt.Errorf("nil plan node")
	default:
		return nil, fmt.Errorf("unsupported plan node: %s", node.NodeType())
	}
}

func executeFilter(n *plan.FilterNode, rows []data.UnifiedRow) (*Result, error) {
	in, err := executeRows(n.Child(), rows)
	if err != nil {
		return nil, err
	}

	out := make([]data.UnifiedRow, 0, len(in.Rows))
	for _, r := range in.Rows {
		if n.Keep == nil || n.Keep(r) {
			out = append(out, r)
		}
	}
	return &Result{Step: n.Step(), Rows: out}, nil
}

// executeGroup aggregates matched rows by country. Groups come out in
// alphabetical key order, which ORDER BY's stable sort starts from.
func executeGroup(n *plan.GroupNode, rows []data.UnifiedRow) (*Result, error) {
	in, err := executeRows(n.Child(), rows)
	if err != nil {
		return nil, err
	}

	byKey := make(map[string]*data.Group)
	for _, r := range in.Rows {
		if r.User == nil || r.Order == nil {
			continue
		}
		key := r.Country()
		g, ok := byKey[key]
		if !ok {
			g = &data.Group{Key: key}
			byKey[key] = g
		}
		g.Add(r.Amount())
	}

	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	groups := make([]data.Group, len(keys))
	for i, k := range keys {
		groups[i] = *byKey[k]
	}

	return &Result{
		Step:       n.Step(),
		Aggregated: true,
		Groups:     groups,
		Columns:    projection.AggregateColumns(),
	}, nil
}

func executeHaving(n *plan.HavingNode, rows []data.UnifiedRow) (*Result, error) {
	in, err := executeGroups(n.Child(), rows)
	if err != nil {
		return nil, err
	}

	out := make([]data.Group, 0, len(in.Groups))
	for _, g := range in.Groups {
		if g.Sum > n.Threshold {
			out = append(out, g)
		}
	}
	in.Groups = out
	in.Step = n.Step()
	return in, nil
}

func executeSort(n *plan.SortNode, rows []data.UnifiedRow) (*Result, error) {
	in, err := executeGroups(n.Child(), rows)
	if err != nil {
		return nil, err
	}

	groups := append([]data.Group(nil), in.Groups...)
	sort.SliceStable(groups, func(i, j int) bool {
		if n.Asc {
			return groups[i].Sum < groups[j].Sum
		}
		return groups[i].Sum > groups[j].Sum
	})
	in.Groups = groups
	in.Step = n.Step()
	return in, nil
}

func executeProject(n *plan.ProjectNode, rows []data.UnifiedRow) (*Result, error) {
	in, err := executeGroups(n.Child(), rows)
	if err != nil {
		return nil, err
	}
	if err := projection.ValidateProjection(n.Projection); err != nil {
		return nil, err
	}

	in.Columns = n.Projection.Names()
	in.Step = n.Step()
	return in, nil
}

func executeLimit(n *plan.LimitNode, rows []data.UnifiedRow) (*Result, error) {
	in, err := executeGroups(n.Child(), rows)
	if err != nil {
		return nil, err
	}

	groups := append([]data.Group(nil), in.Groups...)
	for i := range groups {
		groups[i].Dimmed = i >= n.Count
	}
	in.Groups = groups
	in.Step = n.Step()
	return in, nil
}

func executeRows(node plan.Node, rows []data.UnifiedRow) (*Result, error) {
	res, err := Execute(node, rows)
	if err != nil {
		return nil, err
	}
	if res.Aggregated {
		return nil, fmt.Errorf("%s expects rows, got groups", node.NodeType())
	}
	return res, nil
}

func executeGroups(node plan.Node, rows []data.UnifiedRow) (*Result, error) {
	res, err := Execute(node, rows)
	if err != nil {
		return nil, err
	}
	if !res.Aggregated {
		return nil, fmt.Errorf("%s expects groups, got rows", node.NodeType())
	}
	return res, nil
}
