package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// AgentConfig identifies an agent and the search settings it ran with.
type AgentConfig struct {
	ID                  int
	Name                string
	Iterations          int
	RolloutDepth        int
	ExplorationConstant float64
	RolloutPolicy       string
	Epsilon             float64
	Transitions         string
	MaxNodes            int
	TreeReuse           bool
}

type TrialRecord struct {
	ID      int
	AgentID int // AgentConfig.ID
	TrialMetric
}

type DecisionRecord struct {
	Trial int // TrialRecord.ID
	DecisionMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<name>/<timestamp> to hold one experiment's output.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) Path(name string) string {
	return filepath.Join(w.baseDir, name)
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "name", "iterations", "rollout_depth", "exploration_constant",
		"rollout_policy", "epsilon", "transitions", "max_nodes", "tree_reuse"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Name,
			strconv.Itoa(config.Iterations),
			strconv.Itoa(config.RolloutDepth),
			formatFloat(config.ExplorationConstant),
			config.RolloutPolicy,
			formatFloat(config.Epsilon),
			config.Transitions,
			strconv.Itoa(config.MaxNodes),
			strconv.FormatBool(config.TreeReuse),
		})
	}
	return w.writeCSV("agent_configs.csv", header, rows)
}

func (w *Writer) WriteTrialRecords(records []TrialRecord) error {
	header := []string{"id", "agent", "agent_name", "trial", "seed", "total_reward", "steps",
		"outcome", "start_time", "end_time", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.AgentID),
			record.Agent,
			strconv.Itoa(record.Trial),
			strconv.FormatUint(record.Seed, 10),
			formatFloat(record.TotalReward),
			strconv.Itoa(record.Steps),
			record.Outcome,
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	return w.writeCSV("trial_records.csv", header, rows)
}

func (w *Writer) WriteDecisionRecords(records []DecisionRecord) error {
	header := []string{"trial", "step", "action", "duration", "iterations", "nodes_created",
		"full_playouts", "fallback", "is_tree_reused"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Trial),
			strconv.Itoa(record.Step),
			record.Action,
			record.Duration.String(),
			strconv.Itoa(record.Iterations),
			strconv.Itoa(record.NodesCreated),
			strconv.Itoa(record.FullPlayouts),
			strconv.FormatBool(record.Fallback),
			strconv.FormatBool(record.TreeReused),
		})
	}
	return w.writeCSV("decision_records.csv", header, rows)
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	path := w.Path(name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}

	for _, row := range rows {
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write %s row: %w", name, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", name, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
