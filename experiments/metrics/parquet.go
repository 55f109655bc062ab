package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// TrialRow is the archived form of a TrialRecord.
type TrialRow struct {
	ID          int32   `parquet:"id"`
	AgentID     int32   `parquet:"agent_id"`
	Agent       string  `parquet:"agent,dict"`
	Trial       int32   `parquet:"trial"`
	Seed        uint64  `parquet:"seed"`
	TotalReward float64 `parquet:"total_reward"`
	Steps       int32   `parquet:"steps"`
	Outcome     string  `parquet:"outcome,dict"`
	DurationNs  int64   `parquet:"duration_ns"`
}

func toTrialRows(records []TrialRecord) []TrialRow {
	rows := make([]TrialRow, len(records))
	for i, r := range records {
		rows[i] = TrialRow{
			ID:          int32(r.ID),
			AgentID:     int32(r.AgentID),
			Agent:       r.Agent,
			Trial:       int32(r.Trial),
			Seed:        r.Seed,
			TotalReward: r.TotalReward,
			Steps:       int32(r.Steps),
			Outcome:     r.Outcome,
			DurationNs:  r.Duration.Nanoseconds(),
		}
	}
	return rows
}

// WriteTrialParquet archives trial records next to the CSV output.
func (w *Writer) WriteTrialParquet(records []TrialRecord) error {
	return WriteTrialParquet(w.Path("trials.parquet"), records)
}

// WriteTrialParquet writes to a temp file and renames it into place.
func WriteTrialParquet(outPath string, records []TrialRecord) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, toTrialRows(records),
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "trial_v1"),
	); err != nil {
		return fmt.Errorf("write parquet: %w", err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}

func ReadTrialParquet(path string) ([]TrialRow, error) {
	rows, err := parquet.ReadFile[TrialRow](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet: %w", err)
	}
	return rows, nil
}
