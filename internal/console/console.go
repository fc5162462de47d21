// Package console describes the query as the console shows it: clause
// lines tagged with the step each becomes active on, plus a title and a
// description per step.
package console

import (
	"fmt"

	"github.com/leengari/queryviz/internal/domain/stage"
	"github.com/leengari/queryviz/internal/parser/lexer"
	"github.com/leengari/queryviz/internal/query"
)

// Line is one clause line of the console
type Line struct {
	ID     string        `json:"id"`
	Text   string        `json:"text"`
	Step   stage.Step    `json:"step"`
	Indent int           `json:"indent,omitempty"`
	Active bool          `json:"active"`
	Tokens []lexer.Token `json:"-"`
}

// StepInfo is the sidebar entry of a step
type StepInfo struct {
	Step        stage.Step `json:"step"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
}

var lines = []Line{
	{ID: "select", Text: "SELECT Country, SUM(Amount)", Step: stage.Select},
	{ID: "from", Text: "FROM Users", Step: stage.FromJoin},
	{ID: "join", Text: "INNER JOIN Orders", Step: stage.FromJoin},
	{ID: "on", Text: "ON Users.ID = Orders.UID", Step: stage.On, Indent: 1},
	{ID: "where", Text: fmt.Sprintf("WHERE Country IN (%s)", quoteList(query.WhereCountries)), Step: stage.Where},
	{ID: "group", Text: "GROUP BY Country", Step: stage.GroupBy},
	{ID: "having", Text: fmt.Sprintf("HAVING SUM(Amount) > %g", query.HavingThreshold), Step: stage.Having},
	{ID: "order", Text: "ORDER BY SUM(Amount) ASC", Step: stage.OrderBy},
	{ID: "limit", Text: fmt.Sprintf("LIMIT %d", query.LimitCount), Step: stage.Limit},
}

var infos = [...]StepInfo{
	stage.FromJoin: {stage.FromJoin, "FROM & JOIN",
		"Load USERS (5 rows) and ORDERS (7 rows). Two independent tables side by side."},
	stage.On: {stage.On, "ON CONDITION",
		"INNER JOIN on users.id = orders.uid. Orders snap next to their users. Alice and Chen have two orders each. Eiko and the Unknown order vanish."},
	stage.Where: {stage.Where, "WHERE",
		"Keep only USA, Korea and UK. Chen's Taiwan orders drop out."},
	stage.GroupBy: {stage.GroupBy, "GROUP BY",
		"Rows collapse into one row per country. Amounts fly into their group totals."},
	stage.Having: {stage.Having, "HAVING",
		"Keep groups whose SUM(Amount) is above 200. Korea drops out."},
	stage.OrderBy: {stage.OrderBy, "ORDER BY",
		"Sort groups by SUM(Amount) ascending. USA rises above UK."},
	stage.Select: {stage.Select, "SELECT",
		"Projection. Only Country and SUM(Amount) remain."},
	stage.Limit: {stage.Limit, "LIMIT",
		"Final cut. Only the first group stays lit."},
}

// Lines returns the clause lines with Active set for step. Each call
// returns a fresh slice.
func Lines(step stage.Step) []Line {
	step = stage.Clamp(step)
	out := make([]Line, len(lines))
	for i, l := range lines {
		l.Active = l.Step == step
		// every line is fixed text the lexer accepts
		l.Tokens, _ = lexer.Tokenize(l.Text)
		out[i] = l
	}
	return out
}

// ActiveLines returns only the lines step lights up
func ActiveLines(step stage.Step) []Line {
	var active []Line
	for _, l := range Lines(step) {
		if l.Active {
			active = append(active, l)
		}
	}
	return active
}

// Info returns the title and description of step
func Info(step stage.Step) StepInfo {
	return infos[stage.Clamp(step)]
}

// Infos returns every step's entry in pipeline order
func Infos() []StepInfo {
	out := make([]StepInfo, len(infos))
	copy(out, infos[:])
	return out
}

func quoteList(values []string) string {
	s := ""
	for i, v := range values {
		if i > 0 {
			s += ", "
		}
		s += "'" + v + "'"
	}
	return s
}
