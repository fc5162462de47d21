package projection

import (
	"strconv"

	"github.com/leengari/queryviz/internal/domain/data"
)

// Field is one projected value of a group row
type Field struct {
	Column string
	Value  any
}

// ProjectGroup applies projection to a single group.
// Columns unknown to the aggregate relation are skipped, never an error.
func ProjectGroup(g data.Group, proj *Projection) []Field {
	names := proj.Names()
	fields := make([]Field, 0, len(names))

	for _, name := range names {
		value, ok := groupValue(g, name)
		if !ok {
			continue
		}
		fields = append(fields, Field{Column: name, Value: value})
	}

	return fields
}

func groupValue(g data.Group, column string) (any, bool) {
	switch column {
	case ColumnCountry:
		return g.Key, true
	case ColumnPlaceholder:
		return "...", true
	case ColumnCount:
		return g.Count, true
	case ColumnAverage:
		return FormatAverage(g.Avg), true
	case ColumnTotal:
		return g.Sum, true
	default:
		return nil, false
	}
}

// FormatAverage renders an average with no decimals
func FormatAverage(avg float64) string {
	return strconv.FormatFloat(avg, 'f', 0, 64)
}
