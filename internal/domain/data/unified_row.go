package data

import "fmt"

// UnifiedRow is the pre-aggregation unit: a matched (user, order) pair, or
// an orphan from either side. Built once and never mutated.
type UnifiedRow struct {
	RowID string `json:"row_id"`
	User  *User  `json:"user"`
	Order *Order `json:"order"`

	IsMatched bool `json:"is_matched"`
	// Set on the 2nd..nth row sharing a user; only the pre-join layout uses it
	IsSecondaryDuplicate bool `json:"is_secondary_duplicate"`
	// True when the WHERE predicate rejects the row (always true without a user)
	IsFilteredByPredicate bool `json:"is_filtered_by_predicate"`

	// Positions in the seed arrays, -1 when the side is absent
	OriginalLeftIndex  int `json:"original_left_index"`
	OriginalRightIndex int `json:"original_right_index"`
}

// NewMatchedRowID, NewUnmatchedLeftRowID and NewUnmatchedRightRowID derive
// row identities from entity ids so they survive re-evaluation.
func NewMatchedRowID(userID, orderID int) string {
	return fmt.Sprintf("u-%d-o-%d", userID, orderID)
}

func NewUnmatchedLeftRowID(userID int) string {
	return fmt.Sprintf("u-%d-null", userID)
}

func NewUnmatchedRightRowID(orderID int) string {
	return fmt.Sprintf("null-o-%d", orderID)
}

// Country returns the grouping value, empty when the row has no user
func (r UnifiedRow) Country() string {
	if r.User == nil {
		return ""
	}
	return r.User.Country
}

// Amount returns the measure, 0 when the row has no order
func (r UnifiedRow) Amount() float64 {
	if r.Order == nil {
		return 0
	}
	return r.Order.Amount
}

func (r UnifiedRow) String() string {
	return fmt.Sprintf("UnifiedRow(%s, matched=%t)", r.RowID, r.IsMatched)
}
