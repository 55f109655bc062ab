package metrics

import (
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes a distribution of trial scores.
type Summary struct {
	Trials   int
	Mean     float64
	StdDev   float64
	Min      float64
	Median   float64
	Max      float64
	GoalRate float64
}

// Summarize aggregates the trial records of one agent.
func Summarize(records []TrialMetric) Summary {
	if len(records) == 0 {
		return Summary{}
	}

	scores := make([]float64, len(records))
	goals := 0
	for i, r := range records {
		scores[i] = r.TotalReward
		if r.Outcome == OutcomeGoal {
			goals++
		}
	}
	sorted := slices.Clone(scores)
	slices.Sort(sorted)

	s := Summary{
		Trials:   len(scores),
		Mean:     stat.Mean(scores, nil),
		Min:      floats.Min(scores),
		Median:   stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Max:      floats.Max(scores),
		GoalRate: float64(goals) / float64(len(scores)),
	}
	if len(scores) > 1 {
		s.StdDev = stat.StdDev(scores, nil)
	}
	return s
}
