package layout

// Role separates header cells from data cells
type Role string

const (
	RoleHeader Role = "header"
	RoleData   Role = "data"
)

// Origin is the relation a cell's value comes from
type Origin string

const (
	OriginLeft  Origin = "left"
	OriginRight Origin = "right"
	OriginGroup Origin = "group"
)

// Theme is the color family a renderer paints a cell with
type Theme string

const (
	ThemeCyan        Theme = "cyan"
	ThemeFuchsia     Theme = "fuchsia"
	ThemeEmerald     Theme = "emerald"
	ThemeEmeraldSoft Theme = "emeraldSoft"
	ThemeNeutral     Theme = "neutral"
)

// DimmedOpacity is what a dimmed cell is drawn at regardless of Opacity
const DimmedOpacity = 0.15

// Cell is one positioned, styled unit of the grid. Key identifies the same
// entity across steps so a renderer can move a cell instead of replacing it.
type Cell struct {
	Key        string  `json:"key"`
	Content    any     `json:"content"`
	Subtitle   string  `json:"subtitle,omitempty"`
	Role       Role    `json:"role"`
	Origin     Origin  `json:"origin"`
	ColumnName string  `json:"column_name"`
	Row        int     `json:"row"`
	Col        int     `json:"col"`
	Dimmed     bool    `json:"dimmed"`
	Ghost      bool    `json:"ghost"`
	Opacity    float64 `json:"opacity"`
	Theme      Theme   `json:"theme"`
}

// EffectiveOpacity is the opacity the cell should be drawn at
func (c Cell) EffectiveOpacity() float64 {
	if c.Dimmed {
		return DimmedOpacity
	}
	return c.Opacity
}

// Coord is a grid position
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Coord returns the cell's position
func (c Cell) Coord() Coord {
	return Coord{Row: c.Row, Col: c.Col}
}

// Extent returns the highest row and column any cell occupies
func Extent(cells []Cell) (rows, cols int) {
	for _, c := range cells {
		if c.Row > rows {
			rows = c.Row
		}
		if c.Col > cols {
			cols = c.Col
		}
	}
	return rows, cols
}
