package resilience

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// GroupSummary aggregates the headline percentages of every label in one
// group. Groups are typically region types (ARMS vs CEN) but the grouping is
// caller-defined; this package never parses labels.
type GroupSummary struct {
	// Group name, e.g. "ARMS".
	Group string

	// N is the number of labels in the group.
	N int

	// MeanTolerance and StdevTolerance describe pct-error-tolerant across
	// the group's labels.
	MeanTolerance  float64
	StdevTolerance float64

	// MeanWithErrors is the mean pct-with-errors across the group's labels.
	MeanWithErrors float64

	// MeanRetention is the mean usable-marker percentage across the group's
	// labels.
	MeanRetention float64
}

// Summarize groups per-label statistics by groups (a label -> group name
// mapping; unmapped labels land in the "" group) and reduces each group's
// headline percentages. Returned summaries are sorted by group name.
func Summarize(stats map[string]*Stats, groups map[string]string) []GroupSummary {
	tolerance := make(map[string][]float64)
	withErrors := make(map[string][]float64)
	retention := make(map[string][]float64)

	for _, label := range sortedLabels(stats) {
		s := stats[label]
		g := groups[label]
		tolerance[g] = append(tolerance[g], s.PctErrorTolerant())
		withErrors[g] = append(withErrors[g], s.PctWithErrors())
		retention[g] = append(retention[g], s.Retention())
	}

	names := make([]string, 0, len(tolerance))
	for g := range tolerance {
		names = append(names, g)
	}
	sort.Strings(names)

	summaries := make([]GroupSummary, 0, len(names))
	for _, g := range names {
		gs := GroupSummary{
			Group:          g,
			N:              len(tolerance[g]),
			MeanTolerance:  stat.Mean(tolerance[g], nil),
			MeanWithErrors: stat.Mean(withErrors[g], nil),
			MeanRetention:  stat.Mean(retention[g], nil),
		}
		// sample stddev is undefined for a single label; report 0
		if gs.N > 1 {
			gs.StdevTolerance = stat.StdDev(tolerance[g], nil)
		}
		summaries = append(summaries, gs)
	}
	return summaries
}
