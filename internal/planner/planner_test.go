package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/queryviz/internal/domain/stage"
	"github.com/leengari/queryviz/internal/plan"
	"github.com/leengari/queryviz/internal/query/operations/join"
)

func TestPlan_GrowsOneClausePerStep(t *testing.T) {
	// FROM_JOIN and ON share the JOIN node shape
	want := map[stage.Step]int{
		stage.FromJoin: 3,
		stage.On:       3,
		stage.Where:    4,
		stage.GroupBy:  5,
		stage.Having:   6,
		stage.OrderBy:  7,
		stage.Select:   8,
		stage.Limit:    9,
	}
	for step, n := range want {
		assert.Equal(t, n, plan.CountNodes(Plan(step)), step.String())
	}
}

func TestPlan_RootIsStepClause(t *testing.T) {
	for _, step := range stage.All() {
		root := Plan(step)
		if step == stage.FromJoin {
			assert.Equal(t, stage.FromJoin, root.Step())
			continue
		}
		assert.Equal(t, step, root.Step(), step.String())
		assert.Equal(t, step.String(), root.Metadata()["step"])
	}
}

func TestPlan_JoinType(t *testing.T) {
	j, ok := plan.Find[*plan.JoinNode](Plan(stage.FromJoin))
	require.True(t, ok)
	assert.Equal(t, join.JoinTypeFull, j.JoinType)

	j, ok = plan.Find[*plan.JoinNode](Plan(stage.Where))
	require.True(t, ok)
	assert.Equal(t, join.JoinTypeInner, j.JoinType)
}

func TestPlan_Clamps(t *testing.T) {
	assert.Equal(t, plan.PrintTree(Plan(stage.Limit)), plan.PrintTree(Plan(99)))
	assert.Equal(t, plan.PrintTree(Plan(stage.FromJoin)), plan.PrintTree(Plan(-1)))
}

func TestPlan_PrintLimit(t *testing.T) {
	out := plan.PrintTree(Plan(stage.Limit))

	assert.Contains(t, out, "LIMIT 1")
	assert.Contains(t, out, "PROJECT country, total")
	assert.Contains(t, out, "SORT SUM ASC")
	assert.Contains(t, out, "HAVING SUM > 200")
	assert.Contains(t, out, "FILTER country IN (USA, Korea, UK)")
	assert.Contains(t, out, "JOIN INNER JOIN ON users.id = orders.uid")
}
