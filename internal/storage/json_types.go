package storage

type DatabaseMeta struct {
	Name    string   `json:"name"`
	Version int      `json:"version"`
	Tables  []string `json:"tables,omitempty"`
}

type TableMeta struct {
	Name     string       `json:"name"`
	Columns  []ColumnMeta `json:"columns"`
	RowCount int64        `json:"row_count,omitempty"`
}

type ColumnMeta struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	PrimaryKey bool   `json:"primary_key"`
	Unique     bool   `json:"unique"`
	NotNull    bool   `json:"not_null"`
}

// ColumnNames returns the declared column names in order
func (m TableMeta) ColumnNames() []string {
	names := make([]string, len(m.Columns))
	for i, c := range m.Columns {
		names[i] = c.Name
	}
	return names
}
