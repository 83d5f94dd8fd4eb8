package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fightlab/go-fight-metrics/internal/report"
	"github.com/fightlab/go-fight-metrics/internal/storage"
)

var profileAsOf string

var profileCmd = &cobra.Command{
	Use:   "profile <fighter>",
	Short: "Show a fighter's statistical profile as of a date",
	Long: `Derives the fighter's profile from bouts dated strictly before the
reference date, so a profile for a past date reflects only what was known
then.

Example:
  fightmetrics profile "Alex Pereira" --as-of 2023-11-04`,
	Args: cobra.ExactArgs(1),
	RunE: runProfile,
}

func init() {
	profileCmd.Flags().StringVar(&profileAsOf, "as-of", "", "reference date YYYY-MM-DD (default: today)")
}

func runProfile(_ *cobra.Command, args []string) error {
	asOf, err := parseAsOf(profileAsOf)
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

	prof := p.GetProfile(args[0], asOf)
	if prof == nil {
		return fmt.Errorf("no fighter named %q in store", args[0])
	}
	report.PrintProfile(os.Stdout, prof)
	return nil
}
