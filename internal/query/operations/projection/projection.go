package projection

// Columns of the aggregated relation
const (
	ColumnCountry     = "country"
	ColumnPlaceholder = "placeholder"
	ColumnCount       = "count"
	ColumnAverage     = "average"
	ColumnTotal       = "total"
)

// ColumnRef represents one projected column of a group row
type ColumnRef struct {
	Column string // logical column name (e.g., "total")
	Alias  string // optional output label (e.g., "SUM(Amount)")
}

// Projection represents which group columns are shown.
// If SelectAll is true, every aggregate column is returned in fixed order.
type Projection struct {
	Columns   []ColumnRef
	SelectAll bool
}

// NewProjection creates a projection of every aggregate column
func NewProjection() *Projection {
	return &Projection{
		SelectAll: true,
		Columns:   []ColumnRef{},
	}
}

// NewProjectionWithColumns creates a projection for specific columns
func NewProjectionWithColumns(columns ...ColumnRef) *Projection {
	return &Projection{
		SelectAll: false,
		Columns:   columns,
	}
}

// AggregateColumns is every column the GROUP BY view shows, identifying
// column first and measures last
func AggregateColumns() []string {
	return []string{ColumnCountry, ColumnPlaceholder, ColumnCount, ColumnAverage, ColumnTotal}
}

// SelectList is the projection of the SELECT clause: Country, SUM(Amount)
func SelectList() *Projection {
	return NewProjectionWithColumns(
		ColumnRef{Column: ColumnCountry, Alias: "Country"},
		ColumnRef{Column: ColumnTotal, Alias: "SUM(Amount)"},
	)
}

// Names resolves the projected column names in output order
func (p *Projection) Names() []string {
	if p == nil || p.SelectAll {
		return AggregateColumns()
	}
	names := make([]string, len(p.Columns))
	for i, c := range p.Columns {
		names[i] = c.Column
	}
	return names
}
