package join

import (
	"log/slog"

	"github.com/leengari/queryviz/internal/domain/data"
)

// Build performs the full outer pre-join of users and orders once. Matched
// pairs come first in user order with each user's orders in seed order,
// unmatched users in place, then orders no user claimed. The emission order
// is the FROM_JOIN row order and must stay reproducible.
func Build(users []data.User, orders []data.Order, pred Predicate) []data.UnifiedRow {
	if pred == nil {
		pred = func(data.User) bool { return true }
	}

	hashIndex := buildJoinIndex(orders)
	results := make([]data.UnifiedRow, 0, len(users)+len(orders))
	matchedRightRows := make(map[int]bool)

	// Phase 1: users with their orders, or alone
	for userPos := range users {
		user := &users[userPos]
		orderPositions := hashIndex[user.ID]

		if len(orderPositions) == 0 {
			results = append(results, combineRowsWithNull(user, nil, userPos, pred))
			continue
		}

		for i, orderPos := range orderPositions {
			matchedRightRows[orderPos] = true
			results = append(results, combineRows(user, &orders[orderPos], userPos, orderPos, i > 0, pred))
		}
	}

	// Phase 2: orders whose foreign key matched nobody
	for orderPos := range orders {
		if !matchedRightRows[orderPos] {
			results = append(results, combineRowsWithNull(nil, &orders[orderPos], orderPos, pred))
		}
	}

	slog.Debug("unified rows built",
		slog.Int("result_rows", len(results)),
		slog.Int("matched_right", len(matchedRightRows)),
		slog.Int("unmatched_right", len(orders)-len(matchedRightRows)),
	)

	return results
}
