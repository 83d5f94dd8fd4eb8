package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/fightlab/go-fight-metrics/internal/features"
	"github.com/fightlab/go-fight-metrics/internal/model"
	"github.com/fightlab/go-fight-metrics/internal/storage"
)

// datasetRow is one training example: the feature map computed as of the
// bout date, plus the known outcome as the label.
type datasetRow struct {
	FighterA  string             `json:"fighter_a"`
	FighterB  string             `json:"fighter_b"`
	EventDate string             `json:"event_date"`
	AWon      int                `json:"a_won"`
	Features  map[string]float64 `json:"features"`
}

var (
	datasetOut     string
	datasetWorkers int
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Build a leakage-safe training dataset from stored bouts",
	Long: `Emits one JSON record per stored bout: the prediction feature map for the
two fighters computed as of the bout date, plus the actual outcome as the
label. Each record's features are derived only from bouts dated strictly
before that record's own date, eliminating temporal lookahead bias.

Bouts stored from both fighters' perspectives are emitted once, from the
principal perspective of the lexicographically smaller name.

Example:
  fightmetrics dataset --out training.json`,
	RunE: runDataset,
}

func init() {
	datasetCmd.Flags().StringVar(&datasetOut, "out", "", "output file path (stdout if omitted)")
	datasetCmd.Flags().IntVar(&datasetWorkers, "workers", runtime.NumCPU(), "concurrent feature builders")
}

func runDataset(_ *cobra.Command, _ []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	p, err := loadProfiler(db)
	if err != nil {
		return err
	}
	bouts, err := db.AllBouts()
	if err != nil {
		return fmt.Errorf("query bouts: %w", err)
	}

	candidates := dedupeSymmetric(bouts)
	fmt.Fprintf(os.Stderr, "building features for %d bout(s) with %d worker(s)\n",
		len(candidates), datasetWorkers)

	asm := features.New(p)
	rows := make([]*datasetRow, len(candidates))

	var g errgroup.Group
	g.SetLimit(datasetWorkers)
	for i, b := range candidates {
		g.Go(func() error {
			feats := asm.PredictionFeatures(b.Fighter, b.Opponent, b.Date)
			if len(feats) == 0 {
				return nil // unknown fighter on either side: not predictable
			}
			aWon := 0
			if b.Outcome == model.OutcomeWin {
				aWon = 1
			}
			rows[i] = &datasetRow{
				FighterA:  b.Fighter,
				FighterB:  b.Opponent,
				EventDate: b.Date.Format("2006-01-02"),
				AWon:      aWon,
				Features:  feats,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := make([]*datasetRow, 0, len(rows))
	for _, r := range rows {
		if r != nil {
			out = append(out, r)
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	if datasetOut == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(datasetOut, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", datasetOut, err)
	}
	fmt.Fprintf(os.Stderr, "wrote %d record(s) to %s (%d skipped)\n",
		len(out), datasetOut, len(candidates)-len(out))
	return nil
}

// dedupeSymmetric keeps one row per bout when the store holds both
// fighters' perspectives, preferring the lexicographically smaller
// principal so output is deterministic.
func dedupeSymmetric(bouts []model.Bout) []model.Bout {
	seen := make(map[string]struct{}, len(bouts))
	var out []model.Bout
	for _, b := range bouts {
		lo, hi := b.Fighter, b.Opponent
		if lo > hi {
			lo, hi = hi, lo
		}
		key := lo + "\x00" + hi + "\x00" + b.Date.Format("2006-01-02")
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		if b.Fighter > b.Opponent {
			b = flipPerspective(b)
		}
		out = append(out, b)
	}
	return out
}

// flipPerspective rewrites a bout row from the opponent's point of view.
// Only the fields the dataset uses (names, date, outcome) can be flipped
// faithfully; per-round stat strings belong to the original principal and
// are dropped.
func flipPerspective(b model.Bout) model.Bout {
	outcome := model.OutcomeLoss
	if b.Outcome == model.OutcomeLoss {
		outcome = model.OutcomeWin
	}
	return model.Bout{
		Fighter:  b.Opponent,
		Opponent: b.Fighter,
		Date:     b.Date,
		Outcome:  outcome,
		Method:   b.Method,
		Round:    b.Round,
		Time:     b.Time,
	}
}
