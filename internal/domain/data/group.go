package data

import "fmt"

// Group is one aggregated bucket of unified rows sharing a grouping key
type Group struct {
	Key    string  `json:"key"`
	Count  int     `json:"count"`
	Sum    float64 `json:"sum"`
	Avg    float64 `json:"avg"`
	Dimmed bool    `json:"dimmed"`
}

// Add folds one measure into the group and refreshes the average
func (g *Group) Add(amount float64) {
	g.Count++
	g.Sum += amount
	g.Avg = Average(g.Sum, g.Count)
}

// Average is sum/count, 0 for an empty group
func Average(sum float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

func (g Group) String() string {
	return fmt.Sprintf("Group(%s, count=%d, sum=%g)", g.Key, g.Count, g.Sum)
}
