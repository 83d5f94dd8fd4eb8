package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fightlab/go-fight-metrics/internal/features"
	"github.com/fightlab/go-fight-metrics/internal/matchup"
	"github.com/fightlab/go-fight-metrics/internal/report"
	"github.com/fightlab/go-fight-metrics/internal/storage"
)

var (
	matchupAsOf string
	matchupFull bool
)

var matchupCmd = &cobra.Command{
	Use:   "matchup <fighter-a> <fighter-b>",
	Short: "Compare two fighters as of a date",
	Long: `Derives both profiles from bouts strictly before the reference date and
prints the comparative feature set. Positive advantage values favor the
first fighter. With --full, prints the complete flattened feature map used
as classifier input (both profiles prefixed a_/b_ plus matchup features).

Example:
  fightmetrics matchup "Alex Pereira" "Jan Blachowicz" --as-of 2023-11-04`,
	Args: cobra.ExactArgs(2),
	RunE: runMatchup,
}

func init() {
	matchupCmd.Flags().StringVar(&matchupAsOf, "as-of", "", "reference date YYYY-MM-DD (default: today)")
	matchupCmd.Flags().BoolVar(&matchupFull, "full", false, "print the full prediction feature map")
}

func runMatchup(_ *cobra.Command, args []string) error {
	asOf, err := parseAsOf(matchupAsOf)
	if err != nil {
		return err
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	p, err := loadProfiler(db)
	if err != nil {
		return err
	}

	a, b := args[0], args[1]
	var feats map[string]float64
	if matchupFull {
		feats = features.New(p).PredictionFeatures(a, b, asOf)
	} else {
		feats = matchup.New(p).Features(a, b, asOf)
	}
	report.PrintMatchup(os.Stdout, a, b, feats)
	return nil
}
