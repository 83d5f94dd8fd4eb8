package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fightlab/go-fight-metrics/internal/storage"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show store-wide counts and date coverage",
	RunE:  runSummary,
}

func runSummary(_ *cobra.Command, _ []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	o, err := db.GetOverview()
	if err != nil {
		return fmt.Errorf("query overview: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Fighters: %d\nBouts:    %d\n", o.Fighters, o.Bouts)
	if o.Bouts > 0 {
		fmt.Fprintf(os.Stdout, "Range:    %s .. %s\n", o.FirstBout, o.LastBout)
	}
	return nil
}
