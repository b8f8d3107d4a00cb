package sim

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Exporter persists the results of a batch.
type Exporter interface {
	Export(ctx context.Context, stats *GameStats) error
}

// CSVExporter writes one row per game.
type CSVExporter struct {
	W io.Writer
}

var csvHeader = []string{"sim_id", "seed", "result", "turns", "energy_a", "energy_b"}

func (e CSVExporter) Export(ctx context.Context, stats *GameStats) error {
	w := csv.NewWriter(e.W)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range stats.Results {
		if err := ctx.Err(); err != nil {
			return err
		}
		row := []string{
			strconv.Itoa(r.SimID),
			strconv.FormatUint(uint64(r.Seed), 10),
			r.Result.String(),
			strconv.Itoa(r.Turns),
			strconv.Itoa(r.Energy[0]),
			strconv.Itoa(r.Energy[1]),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", r.SimID, err)
		}
	}
	w.Flush()
	return w.Error()
}
