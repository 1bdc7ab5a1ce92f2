// Package ranking derives read-only views over a session history.
package ranking

import (
	"fmt"
	"sort"

	"alfredoptarigan/essay-grader/internal/models"
)

// TopN returns at most n scored entries ordered by total score descending.
// Equal scores keep submission order. Entries without a total score are
// skipped and entries is left untouched.
func TopN(entries []models.HistoryEntry, n int) []models.HistoryEntry {
	if n <= 0 {
		return []models.HistoryEntry{}
	}

	scored := make([]models.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		if e.TotalScore() != nil {
			scored = append(scored, e)
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		a, b := *scored[i].TotalScore(), *scored[j].TotalScore()
		if a != b {
			return a > b
		}
		return scored[i].SequenceIndex < scored[j].SequenceIndex
	})

	if len(scored) > n {
		scored = scored[:n]
	}
	return scored
}

// ChartPoint is one bar of the top-N chart.
type ChartPoint struct {
	Label         string `json:"label"`
	Score         int    `json:"score"`
	Theme         string `json:"theme"`
	SequenceIndex int    `json:"sequence_index"`
}

// Chart labels the top-N entries "Top 1", "Top 2", ... for plotting.
func Chart(entries []models.HistoryEntry, n int) []ChartPoint {
	top := TopN(entries, n)
	points := make([]ChartPoint, 0, len(top))
	for i, e := range top {
		points = append(points, ChartPoint{
			Label:         fmt.Sprintf("Top %d", i+1),
			Score:         *e.TotalScore(),
			Theme:         e.Theme,
			SequenceIndex: e.SequenceIndex,
		})
	}
	return points
}

type ThemeAverage struct {
	Theme   string  `json:"theme"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

// ThemeAverages returns the mean total score per theme, in order of each
// theme's first scored submission. Unscored entries are ignored.
func ThemeAverages(entries []models.HistoryEntry) []ThemeAverage {
	var order []string
	sums := make(map[string]int)
	counts := make(map[string]int)

	for _, e := range entries {
		score := e.TotalScore()
		if score == nil {
			continue
		}
		if _, ok := counts[e.Theme]; !ok {
			order = append(order, e.Theme)
		}
		sums[e.Theme] += *score
		counts[e.Theme]++
	}

	out := make([]ThemeAverage, 0, len(order))
	for _, theme := range order {
		out = append(out, ThemeAverage{
			Theme:   theme,
			Count:   counts[theme],
			Average: float64(sums[theme]) / float64(counts[theme]),
		})
	}
	return out
}
