package projection

import "fmt"

// ValidateProjection checks that every column in the projection exists in the
// aggregate relation
func ValidateProjection(proj *Projection) error {
	if proj == nil || proj.SelectAll {
		return nil
	}

	known := AggregateColumns()
	for _, colRef := range proj.Columns {
		found := false
		for _, name := range known {
			if name == colRef.Column {
				found = true
				break
			}
		}

		if !found {
			return fmt.Errorf("column '%s' does not exist in the aggregate relation", colRef.Column)
		}
	}

	return nil
}
