package planner

import (
	"fmt"
	"strings"

	"github.com/leengari/queryviz/internal/domain/data"
	"github.com/leengari/queryviz/internal/domain/stage"
	"github.com/leengari/queryviz/internal/plan"
	"github.com/leengari/queryviz/internal/query"
	"github.com/leengari/queryviz/internal/query/operations/join"
	"github.com/leengari/queryviz/internal/query/operations/projection"
)

// Plan builds the logical plan of the fixed query cut at step. Each step's
// tree contains every clause up to and including its own, so evaluating it
// from the unified rows reproduces the stage from scratch. Out-of-range
// steps are clamped.
func Plan(step stage.Step) plan.Node {
	step = stage.Clamp(step)

	leftScan := &plan.ScanNode{TableName: query.LeftTable}
	leftScan.Metadata()["scan_type"] = "sequential"
	rightScan := &plan.ScanNode{TableName: query.RightTable}
	rightScan.Metadata()["scan_type"] = "sequential"

	joinType := join.JoinTypeFull
	if step >= stage.On {
		joinType = join.JoinTypeInner
	}
	var root plan.Node = plan.NewJoinNode(leftScan, rightScan, joinType, data.LeftJoinColumn, data.RightJoinColumn)

	if step >= stage.Where {
		desc := fmt.Sprintf("%s IN (%s)", query.GroupColumn, strings.Join(query.WhereCountries, ", "))
		root = plan.NewFilterNode(root, desc, func(r data.UnifiedRow) bool {
			return !r.IsFilteredByPredicate
		})
	}

	if step >= stage.GroupBy {
		root = plan.NewGroupNode(root, query.GroupColumn, query.MeasureColumn)
	}

	if step >= stage.Having {
		root = plan.NewHavingNode(root, query.HavingThreshold)
	}

	if step >= stage.OrderBy {
		root = plan.NewSortNode(root, true)
	}

	if step >= stage.Select {
		root = plan.NewProjectNode(root, projection.SelectList())
	}

	if step >= stage.Limit {
		root = plan.NewLimitNode(root, query.LimitCount)
	}

	root.Metadata()["step"] = step.String()
	return root
}
