package experiments

import (
	"fmt"
	"os"

	"gridmcts/experiments/metrics"
	"gridmcts/render"
)

const ChartFile = "scores.html"

func writeChart(path string, records []metrics.TrialRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := render.ScoreChart(f, records); err != nil {
		return err
	}
	return f.Close()
}
