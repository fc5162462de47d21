// Package query holds the constants of the one fixed query the pipeline
// visualizes:
//
//	SELECT Country, SUM(Amount)
//	FROM Users INNER JOIN Orders ON Users.ID = Orders.UID
//	WHERE Country IN ('USA', 'Korea', 'UK')
//	GROUP BY Country
//	HAVING SUM(Amount) > 200
//	ORDER BY SUM(Amount) ASC
//	LIMIT 1
package query

const (
	LeftTable  = "users"
	RightTable = "orders"

	GroupColumn   = "country"
	MeasureColumn = "amount"

	HavingThreshold = 200.0
	LimitCount      = 1
)

// WhereCountries is the IN list of the WHERE clause, in query text order
var WhereCountries = []string{"USA", "Korea", "UK"}
