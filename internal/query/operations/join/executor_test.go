package join_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/queryviz/internal/domain/data"
	"github.com/leengari/queryviz/internal/query/operations/join"
	"github.com/leengari/queryviz/internal/query/operations/testutil"
)

func TestBuild_EmissionOrder(t *testing.T) {
	rows := testutil.UnifiedRows()

	assert.Equal(t, []string{
		"u-1-o-105", "u-1-o-106",
		"u-2-o-103", "u-2-o-104",
		"u-3-null",
		"u-4-o-101",
		"u-5-o-102",
		"null-o-107",
	}, testutil.RowIDs(rows))
}

func TestBuild_MatchFlags(t *testing.T) {
	users, orders := testutil.Users(), testutil.Orders()
	rows := join.Build(users, orders, nil)

	pairs := 0
	for _, u := range users {
		for _, o := range orders {
			if o.UID == u.ID {
				pairs++
			}
		}
	}

	matched := 0
	for _, r := range rows {
		switch {
		case r.User != nil && r.Order != nil:
			assert.True(t, r.IsMatched, r.RowID)
			assert.Equal(t, r.User.ID, r.Order.UID, r.RowID)
			matched++
		case r.User != nil:
			assert.False(t, r.IsMatched, r.RowID)
			assert.Equal(t, -1, r.OriginalRightIndex)
		case r.Order != nil:
			assert.False(t, r.IsMatched, r.RowID)
			assert.Equal(t, -1, r.OriginalLeftIndex)
		default:
			t.Errorf("row %s has neither side", r.RowID)
		}
	}
	assert.Equal(t, pairs, matched)
}

func TestBuild_SecondaryDuplicates(t *testing.T) {
	rows := testutil.UnifiedRows()

	assert.False(t, testutil.FindRow(t, rows, "u-1-o-105").IsSecondaryDuplicate)
	assert.True(t, testutil.FindRow(t, rows, "u-1-o-106").IsSecondaryDuplicate)
	assert.False(t, testutil.FindRow(t, rows, "u-2-o-103").IsSecondaryDuplicate)
	assert.True(t, testutil.FindRow(t, rows, "u-2-o-104").IsSecondaryDuplicate)
	assert.False(t, testutil.FindRow(t, rows, "u-4-o-101").IsSecondaryDuplicate)
}

func TestBuild_PredicateFlags(t *testing.T) {
	rows := testutil.UnifiedRows()

	assert.False(t, testutil.FindRow(t, rows, "u-1-o-105").IsFilteredByPredicate, "USA passes")
	assert.True(t, testutil.FindRow(t, rows, "u-2-o-103").IsFilteredByPredicate, "Taiwan is rejected")
	assert.True(t, testutil.FindRow(t, rows, "u-3-null").IsFilteredByPredicate, "Japan is rejected")
	assert.True(t, testutil.FindRow(t, rows, "null-o-107").IsFilteredByPredicate, "no user is always filtered")
}

func TestBuild_OriginalIndexes(t *testing.T) {
	rows := testutil.UnifiedRows()

	dock := testutil.FindRow(t, rows, "u-1-o-106")
	assert.Equal(t, 0, dock.OriginalLeftIndex)
	assert.Equal(t, 5, dock.OriginalRightIndex)

	orphan := testutil.FindRow(t, rows, "null-o-107")
	assert.Equal(t, 6, orphan.OriginalRightIndex)
}

func TestBuild_Deterministic(t *testing.T) {
	assert.Equal(t, testutil.UnifiedRows(), testutil.UnifiedRows())
}

func TestBuild_Empty(t *testing.T) {
	assert.Empty(t, join.Build(nil, nil, nil))

	rows := join.Build(nil, []data.Order{{ID: 1, UID: 1}}, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, "null-o-1", rows[0].RowID)
}

func TestFilter(t *testing.T) {
	rows := testutil.UnifiedRows()

	assert.Len(t, join.Filter(rows, join.JoinTypeFull), 8)

	inner := join.Filter(rows, join.JoinTypeInner)
	assert.Len(t, inner, 6)
	for _, r := range inner {
		assert.True(t, r.IsMatched)
	}
}

func TestJoinTypeString(t *testing.T) {
	assert.Equal(t, "INNER JOIN", join.JoinTypeInner.String())
	assert.Equal(t, "FULL OUTER JOIN", join.JoinTypeFull.String())
	assert.Equal(t, "UNKNOWN JOIN", join.JoinType(9).String())
}
