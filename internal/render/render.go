// Package render draws frames on a terminal.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/leengari/queryviz/internal/console"
	"github.com/leengari/queryviz/internal/domain/stage"
	"github.com/leengari/queryviz/internal/engine"
	"github.com/leengari/queryviz/internal/layout"
	"github.com/leengari/queryviz/internal/parser/lexer"
	"github.com/leengari/queryviz/internal/transition"
)

const (
	gap        = 2 // spaces between grid columns
	emptyCol   = 3 // width of a grid column nothing occupies
	faintBelow = 0.5
)

var themeColors = map[layout.Theme]color.Attribute{
	layout.ThemeCyan:        color.FgCyan,
	layout.ThemeFuchsia:     color.FgMagenta,
	layout.ThemeEmerald:     color.FgGreen,
	layout.ThemeEmeraldSoft: color.FgGreen,
	layout.ThemeNeutral:     color.FgWhite,
}

var classColors = map[lexer.Class]*color.Color{
	lexer.ClassKeyword:  color.New(color.FgCyan, color.Bold),
	lexer.ClassFunction: color.New(color.FgMagenta),
	lexer.ClassLiteral:  color.New(color.FgYellow),
	lexer.ClassOperator: color.New(color.FgHiBlack),
}

// Frame draws the step title, the query console, the grid and any particles
func Frame(w io.Writer, f engine.Frame) {
	title := color.New(color.Bold)
	fmt.Fprintf(w, "%s  %s\n", title.Sprintf("[%d] %s", int(f.Step), f.Title), f.Description)
	fmt.Fprintln(w)
	Query(w, f.Clauses)
	fmt.Fprintln(w)
	Grid(w, f.Cells, f.Ghosts)
	if len(f.Particles) > 0 {
		fmt.Fprintln(w)
		Particles(w, f.Particles)
	}
}

// Query draws the clause lines, lighting the active ones
func Query(w io.Writer, lines []console.Line) {
	marker := color.New(color.FgCyan, color.Bold)
	faint := color.New(color.Faint)

	for _, l := range lines {
		prefix := "  "
		if l.Active {
			prefix = marker.Sprint("> ")
		}
		indent := strings.Repeat("  ", l.Indent)

		if !l.Active {
			fmt.Fprintf(w, "%s%s%s\n", prefix, indent, faint.Sprint(l.Text))
			continue
		}
		fmt.Fprintf(w, "%s%s%s\n", prefix, indent, Highlight(l.Text, l.Tokens))
	}
}

// Highlight colors the tokens of text by class, keeping the spacing between
// them as written
func Highlight(text string, tokens []lexer.Token) string {
	var b strings.Builder
	last := 0
	for _, tok := range tokens {
		if tok.Pos < last || tok.End > len(text) {
			continue
		}
		b.WriteString(text[last:tok.Pos])
		span := text[tok.Pos:tok.End]
		if c, ok := classColors[tok.Class()]; ok {
			b.WriteString(c.Sprint(span))
		} else {
			b.WriteString(span)
		}
		last = tok.End
	}
	b.WriteString(text[last:])
	return b.String()
}

// Grid draws cells at their grid positions. Ghost cells fill only the slots
// no live cell occupies.
func Grid(w io.Writer, cells, ghosts []layout.Cell) {
	slots := make(map[layout.Coord]layout.Cell, len(cells)+len(ghosts))
	for _, c := range ghosts {
		slots[c.Coord()] = c
	}
	for _, c := range cells {
		slots[c.Coord()] = c
	}
	if len(slots) == 0 {
		fmt.Fprintln(w, "(empty)")
		return
	}

	all := make([]layout.Cell, 0, len(slots))
	for _, c := range slots {
		all = append(all, c)
	}
	rows, cols := layout.Extent(all)

	widths := make([]int, cols+1)
	for c := 1; c <= cols; c++ {
		widths[c] = emptyCol
	}
	hasSubtitle := false
	for _, c := range all {
		widths[c.Col] = max(widths[c.Col], utf8.RuneCountInString(Text(c)), utf8.RuneCountInString(c.Subtitle))
		if c.Role == layout.RoleHeader && c.Subtitle != "" {
			hasSubtitle = true
		}
	}

	for r := layout.HeaderRow; r <= rows; r++ {
		writeRow(w, slots, widths, r, Text)
		if r == layout.HeaderRow && hasSubtitle {
			writeRow(w, slots, widths, r, func(c layout.Cell) string { return c.Subtitle })
		}
	}
}

func writeRow(w io.Writer, slots map[layout.Coord]layout.Cell, widths []int, row int, text func(layout.Cell) string) {
	var b strings.Builder
	for col := 1; col < len(widths); col++ {
		if col > 1 {
			b.WriteString(strings.Repeat(" ", gap))
		}
		c, ok := slots[layout.Coord{Row: row, Col: col}]
		if !ok {
			b.WriteString(strings.Repeat(" ", widths[col]))
			continue
		}
		s := text(c)
		// pad on the plain text so color escapes do not skew the columns
		padded := s + strings.Repeat(" ", widths[col]-utf8.RuneCountInString(s))
		b.WriteString(style(c).Sprint(padded))
	}
	fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
}

func style(c layout.Cell) *color.Color {
	attrs := []color.Attribute{themeColors[c.Theme]}
	if c.Role == layout.RoleHeader {
		attrs = append(attrs, color.Bold)
	}
	if c.Ghost || c.EffectiveOpacity() < faintBelow {
		attrs = append(attrs, color.Faint)
	}
	return color.New(attrs...)
}

// Text is how a cell's content prints
func Text(c layout.Cell) string {
	switch v := c.Content.(type) {
	case nil:
		return "NULL"
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Particles lists particles in launch order
func Particles(w io.Writer, particles []transition.Particle) {
	kindColors := map[transition.Kind]*color.Color{
		transition.KindMeasure: color.New(color.FgGreen),
		transition.KindKey:     color.New(color.FgCyan),
	}
	for _, p := range particles {
		payload := Text(layout.Cell{Content: p.Payload})
		fmt.Fprintf(w, "  %s %-8s (%d,%d) -> (%d,%d)  +%s\n",
			kindColors[p.Kind].Sprintf("%-7s", p.Kind),
			payload,
			p.Source.Row, p.Source.Col,
			p.Target.Row, p.Target.Col,
			p.Delay.Round(time.Millisecond),
		)
	}
}

// Steps lists every step, marking current
func Steps(w io.Writer, infos []console.StepInfo, current stage.Step) {
	active := color.New(color.FgCyan, color.Bold)
	for _, info := range infos {
		line := fmt.Sprintf("%d  %-12s %s", int(info.Step), info.Title, info.Description)
		if info.Step == current {
			fmt.Fprintln(w, active.Sprint("> "+line))
			continue
		}
		fmt.Fprintln(w, "  "+line)
	}
}
