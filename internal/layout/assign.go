package layout

import (
	"fmt"

	"github.com/leengari/queryviz/internal/domain/data"
	"github.com/leengari/queryviz/internal/executor"
	"github.com/leengari/queryviz/internal/query/operations/projection"
)

type header struct {
	key      string
	label    string
	subtitle string
	column   string
	origin   Origin
	theme    Theme
	opacity  float64
}

// Header keys are shared between phases where the same logical column
// survives: the user country becomes the group key and the order amount
// becomes the total.
var rowHeaders = []header{
	{key: "h:user_id", label: "USER ID", column: ColUserID, origin: OriginLeft, theme: ThemeCyan},
	{key: "h:user_name", label: "NAME", column: ColUserName, origin: OriginLeft, theme: ThemeCyan},
	{key: "h:country", label: "COUNTRY", column: ColUserCountry, origin: OriginLeft, theme: ThemeCyan},
	{key: "h:order_id", label: "ORDER ID", column: ColOrderID, origin: OriginRight, theme: ThemeFuchsia},
	{key: "h:order_uid", label: "UID", column: ColOrderUID, origin: OriginRight, theme: ThemeFuchsia},
	{key: "h:order_product", label: "PRODUCT", column: ColOrderProduct, origin: OriginRight, theme: ThemeFuchsia},
	{key: "h:amount", label: "AMOUNT", column: ColOrderAmount, origin: OriginRight, theme: ThemeFuchsia},
}

var groupHeaders = map[string]header{
	projection.ColumnCountry:     {key: "h:country", label: "COUNTRY", theme: ThemeEmerald},
	projection.ColumnPlaceholder: {key: "h:placeholder", label: "...", theme: ThemeEmeraldSoft},
	projection.ColumnCount:       {key: "h:count", label: "ORDER COUNT", subtitle: "COUNT(*)", theme: ThemeEmeraldSoft},
	projection.ColumnAverage:     {key: "h:average", label: "AVG AMOUNT", subtitle: "AVG(AMOUNT)", theme: ThemeEmeraldSoft},
	projection.ColumnTotal:       {key: "h:amount", label: "TOTAL AMOUNT", subtitle: "SUM(AMOUNT)", theme: ThemeEmerald},
}

// Opacity of the soft aggregate columns
const softOpacity = 0.8

// Assign maps a stage result to the cells of its grid. Cells are recomputed
// in full on every call; only keys carry over across steps.
func Assign(res *executor.Result) []Cell {
	table := TableFor(PhaseFor(res.Step))

	if res.Aggregated {
		return assignGroups(res, table)
	}
	return assignRows(res.Rows, table)
}

func assignRows(rows []data.UnifiedRow, table ColumnTable) []Cell {
	cells := make([]Cell, 0, len(rowHeaders)*(len(rows)+1))

	for _, h := range rowHeaders {
		col, ok := table.Col(h.column)
		if !ok {
			continue
		}
		cells = append(cells, Cell{
			Key:        h.key,
			Content:    h.label,
			Role:       RoleHeader,
			Origin:     h.origin,
			ColumnName: h.column,
			Row:        HeaderRow,
			Col:        col,
			Opacity:    1,
			Theme:      h.theme,
		})
	}

	preJoin := table.Phase() == PhasePreJoin

	for idx, row := range rows {
		userRow := StartRow + idx
		orderRow := StartRow + idx
		if preJoin {
			// each table keeps its own seed positions until the join aligns them
			userRow = StartRow + row.OriginalLeftIndex
			orderRow = StartRow + row.OriginalRightIndex
		}

		if row.User != nil && !(preJoin && row.IsSecondaryDuplicate) {
			cells = appendUserCells(cells, row, userRow, table)
		}
		if row.Order != nil {
			cells = appendOrderCells(cells, *row.Order, orderRow, table)
		}
	}

	return cells
}

func appendUserCells(cells []Cell, row data.UnifiedRow, gridRow int, table ColumnTable) []Cell {
	u := row.User
	suffix := ""
	if row.IsSecondaryDuplicate {
		suffix = ":" + row.RowID
	}

	fields := []struct {
		column string
		field  string
		value  any
	}{
		{ColUserID, "id", u.ID},
		{ColUserName, "name", u.Name},
		{ColUserCountry, "country", u.Country},
	}

	for _, f := range fields {
		col, ok := table.Col(f.column)
		if !ok {
			continue
		}
		cells = append(cells, Cell{
			Key:        fmt.Sprintf("u:%d:%s%s", u.ID, f.field, suffix),
			Content:    f.value,
			Role:       RoleData,
			Origin:     OriginLeft,
			ColumnName: f.column,
			Row:        gridRow,
			Col:        col,
			Opacity:    1,
			Theme:      ThemeCyan,
		})
	}
	return cells
}

func appendOrderCells(cells []Cell, o data.Order, gridRow int, table ColumnTable) []Cell {
	fields := []struct {
		column string
		field  string
		value  any
	}{
		{ColOrderID, "id", o.ID},
		{ColOrderUID, "uid", o.UID},
		{ColOrderProduct, "product", o.Product},
		{ColOrderAmount, "amount", o.Amount},
	}

	for _, f := range fields {
		col, ok := table.Col(f.column)
		if !ok {
			continue
		}
		cells = append(cells, Cell{
			Key:        fmt.Sprintf("o:%d:%s", o.ID, f.field),
			Content:    f.value,
			Role:       RoleData,
			Origin:     OriginRight,
			ColumnName: f.column,
			Row:        gridRow,
			Col:        col,
			Opacity:    1,
			Theme:      ThemeFuchsia,
		})
	}
	return cells
}

func assignGroups(res *executor.Result, table ColumnTable) []Cell {
	proj := projection.NewProjection()
	if len(res.Columns) > 0 {
		refs := make([]projection.ColumnRef, len(res.Columns))
		for i, c := range res.Columns {
			refs[i] = projection.ColumnRef{Column: c}
		}
		proj = projection.NewProjectionWithColumns(refs...)
	}

	cells := make([]Cell, 0, len(res.Columns)*(len(res.Groups)+1))

	for _, name := range proj.Names() {
		h, known := groupHeaders[name]
		col, ok := table.Col(name)
		if !known || !ok {
			continue
		}
		cells = append(cells, Cell{
			Key:        h.key,
			Content:    h.label,
			Subtitle:   h.subtitle,
			Role:       RoleHeader,
			Origin:     OriginGroup,
			ColumnName: name,
			Row:        HeaderRow,
			Col:        col,
			Opacity:    themeOpacity(h.theme),
			Theme:      h.theme,
		})
	}

	for idx, g := range res.Groups {
		gridRow := StartRow + idx
		for _, f := range projection.ProjectGroup(g, proj) {
			col, ok := table.Col(f.Column)
			if !ok {
				continue
			}
			theme := groupHeaders[f.Column].theme
			cells = append(cells, Cell{
				Key:        GroupCellKey(g.Key, f.Column),
				Content:    f.Value,
				Role:       RoleData,
				Origin:     OriginGroup,
				ColumnName: f.Column,
				Row:        gridRow,
				Col:        col,
				Dimmed:     g.Dimmed,
				Opacity:    themeOpacity(theme),
				Theme:      theme,
			})
		}
	}

	return cells
}

// GroupCellKey is the identity of one group field across aggregate steps
func GroupCellKey(groupKey, column string) string {
	return fmt.Sprintf("g:%s:%s", groupKey, column)
}

func themeOpacity(t Theme) float64 {
	if t == ThemeEmeraldSoft {
		return softOpacity
	}
	return 1
}
