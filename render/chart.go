package render

import (
	"fmt"
	"io"
	"slices"

	"gridmcts/experiments/metrics"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// ScoreChart writes an HTML page with the mean score per agent and the score
// of every trial per agent. Agents appear in order of first record.
func ScoreChart(w io.Writer, records []metrics.TrialRecord) error {
	var agents []string
	byAgent := map[string][]metrics.TrialMetric{}
	for _, r := range records {
		if _, ok := byAgent[r.Agent]; !ok {
			agents = append(agents, r.Agent)
		}
		byAgent[r.Agent] = append(byAgent[r.Agent], r.TrialMetric)
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Mean score per agent"}),
		charts.WithInitializationOpts(opts.Initialization{Theme: "shine"}),
	)
	means := make([]opts.BarData, 0, len(agents))
	goals := make([]opts.BarData, 0, len(agents))
	for _, agent := range agents {
		summary := metrics.Summarize(byAgent[agent])
		means = append(means, opts.BarData{Value: summary.Mean})
		goals = append(goals, opts.BarData{Value: 100 * summary.GoalRate})
	}
	bar.SetXAxis(agents).
		AddSeries("mean score", means).
		AddSeries("goal rate %", goals)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Score per trial"}),
		charts.WithInitializationOpts(opts.Initialization{Theme: "shine"}),
	)
	numTrials := 0
	for _, trials := range byAgent {
		numTrials = max(numTrials, len(trials))
	}
	xs := make([]string, numTrials)
	for i := range xs {
		xs[i] = fmt.Sprintf("%d", i+1)
	}
	line.SetXAxis(xs)
	for _, agent := range agents {
		trials := slices.Clone(byAgent[agent])
		slices.SortFunc(trials, func(a, b metrics.TrialMetric) int { return a.Trial - b.Trial })
		items := make([]opts.LineData, 0, len(trials))
		for _, trial := range trials {
			items = append(items, opts.LineData{Value: trial.TotalReward})
		}
		line.AddSeries(agent, items)
	}

	page := components.NewPage()
	page.AddCharts(bar, line)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render score chart: %w", err)
	}
	return nil
}
