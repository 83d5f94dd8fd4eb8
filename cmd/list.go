package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fightlab/go-fight-metrics/internal/report"
	"github.com/fightlab/go-fight-metrics/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list [fighter]",
	Short: "List stored fighters, or one fighter's bout history",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runList,
}

func runList(_ *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	if len(args) == 1 {
		fighter, err := db.GetFighter(args[0])
		if err != nil {
			return fmt.Errorf("query fighter: %w", err)
		}
		if fighter == nil {
			return fmt.Errorf("no fighter named %q in store", args[0])
		}
		bouts, err := db.BoutsForFighter(fighter.Name)
		if err != nil {
			return fmt.Errorf("query bouts: %w", err)
		}
		fmt.Fprintf(os.Stdout, "\n%s  (%s)\n\n", fighter.Name, fighter.Record)
		report.PrintBoutHistory(os.Stdout, bouts)
		return nil
	}

	fighters, err := db.AllFighters()
	if err != nil {
		return fmt.Errorf("query fighters: %w", err)
	}
	report.PrintFighterList(os.Stdout, fighters)
	return nil
}
