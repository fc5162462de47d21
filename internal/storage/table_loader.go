package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"slices"
)

// loadTable reads meta.json and data.json of one table directory and decodes
// the rows into out. The declared columns must equal want, in order.
func loadTable(fsys fs.FS, dir string, want []string, out any) (*TableMeta, error) {
	metaBytes, err := fs.ReadFile(fsys, path.Join(dir, "meta.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to read table meta: %w", err)
	}

	var meta TableMeta
	if err := json.Unmarshal(metaBytes, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse table meta: %w", err)
	}

	if got := meta.ColumnNames(); !slices.Equal(got, want) {
		return nil, &SchemaError{Table: meta.Name, Want: want, Got: got}
	}

	dataBytes, err := fs.ReadFile(fsys, path.Join(dir, "data.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to read table data: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(dataBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return nil, fmt.Errorf("failed to parse table data for %s: %w", meta.Name, err)
	}

	slog.Debug("table loaded",
		slog.String("table", meta.Name),
		slog.Int("columns", len(meta.Columns)),
	)

	return &meta, nil
}

// SchemaError reports a seed table whose columns differ from the relation model
type SchemaError struct {
	Table string
	Want  []string
	Got   []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("table %s: expected columns %v, got %v", e.Table, e.Want, e.Got)
}
