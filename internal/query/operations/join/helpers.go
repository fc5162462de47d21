package join

import "github.com/leengari/queryviz/internal/domain/data"

// buildJoinIndex maps each foreign key to the positions of its orders, in
// seed order
func buildJoinIndex(orders []data.Order) map[int][]int {
	hashIndex := make(map[int][]int, len(orders))
	for i, o := range orders {
		hashIndex[o.UID] = append(hashIndex[o.UID], i)
	}
	return hashIndex
}

// combineRows builds the unified row of a matched pair
func combineRows(user *data.User, order *data.Order, userPos, orderPos int, secondary bool, pred Predicate) data.UnifiedRow {
	return data.UnifiedRow{
		RowID:                 data.NewMatchedRowID(user.ID, order.ID),
		User:                  user,
		Order:                 order,
		IsMatched:             true,
		IsSecondaryDuplicate:  secondary,
		IsFilteredByPredicate: !pred(*user),
		OriginalLeftIndex:     userPos,
		OriginalRightIndex:    orderPos,
	}
}

// combineRowsWithNull builds the unified row of an orphan. Exactly one of
// user and order is nil.
func combineRowsWithNull(user *data.User, order *data.Order, pos int, pred Predicate) data.UnifiedRow {
	if order == nil {
		return data.UnifiedRow{
			RowID:                 data.NewUnmatchedLeftRowID(user.ID),
			User:                  user,
			IsFilteredByPredicate: !pred(*user),
			OriginalLeftIndex:     pos,
			OriginalRightIndex:    -1,
		}
	}
	return data.UnifiedRow{
		RowID:                 data.NewUnmatchedRightRowID(order.ID),
		Order:                 order,
		IsFilteredByPredicate: true,
		OriginalLeftIndex:     -1,
		OriginalRightIndex:    pos,
	}
}
