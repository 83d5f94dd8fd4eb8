package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fightlab/go-fight-metrics/internal/model"
	"github.com/fightlab/go-fight-metrics/internal/storage"
)

var (
	importFighters string
	importBouts    string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import fighter and bout CSV files into the database",
	Long: `Reads scraped fighter rosters and bout histories from CSV files and stores
them idempotently (re-importing the same rows replaces them in place).

Fighter columns: name, height, weight, reach, stance, record, rank,
slpm, str_acc, sapm, str_def, td_avg, td_acc, td_def, sub_avg.

Bout columns: fighter, opponent, date (YYYY-MM-DD), outcome, method, round,
time, knockdowns, sig_str, total_str, head_str, body_str, leg_str,
takedowns, sub_att, ctrl.

Example:
  fightmetrics import --fighters fighters.csv --bouts bouts.csv`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importFighters, "fighters", "", "fighters CSV file")
	importCmd.Flags().StringVar(&importBouts, "bouts", "", "bouts CSV file")
}

func runImport(_ *cobra.Command, _ []string) error {
	if importFighters == "" && importBouts == "" {
		return fmt.Errorf("nothing to import: pass --fighters and/or --bouts")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	if importFighters != "" {
		fighters, err := readFighterCSV(importFighters)
		if err != nil {
			return fmt.Errorf("read %s: %w", importFighters, err)
		}
		if err := db.InsertFighters(fighters); err != nil {
			return fmt.Errorf("store fighters: %w", err)
		}
		fmt.Fprintf(os.Stderr, "imported %d fighter(s)\n", len(fighters))
	}

	if importBouts != "" {
		bouts, skipped, err := readBoutCSV(importBouts)
		if err != nil {
			return fmt.Errorf("read %s: %w", importBouts, err)
		}
		if err := db.InsertBouts(bouts); err != nil {
			return fmt.Errorf("store bouts: %w", err)
		}
		fmt.Fprintf(os.Stderr, "imported %d bout(s), skipped %d malformed row(s)\n", len(bouts), skipped)
	}
	return nil
}

// csvRows reads a CSV file and returns a column-name index plus data rows.
func csvRows(path string) (map[string]int, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		rows = append(rows, rec)
	}
	return cols, rows, nil
}

func field(cols map[string]int, row []string, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func readFighterCSV(path string) ([]model.Fighter, error) {
	cols, rows, err := csvRows(path)
	if err != nil {
		return nil, err
	}
	if _, ok := cols["name"]; !ok {
		return nil, fmt.Errorf("missing required column %q", "name")
	}

	var out []model.Fighter
	for _, row := range rows {
		f := model.Fighter{
			Name:   field(cols, row, "name"),
			Height: field(cols, row, "height"),
			Weight: field(cols, row, "weight"),
			Reach:  field(cols, row, "reach"),
			Stance: field(cols, row, "stance"),
			Record: field(cols, row, "record"),
			Rank:   field(cols, row, "rank"),
			SLpM:   field(cols, row, "slpm"),
			StrAcc: field(cols, row, "str_acc"),
			SApM:   field(cols, row, "sapm"),
			StrDef: field(cols, row, "str_def"),
			TDAvg:  field(cols, row, "td_avg"),
			TDAcc:  field(cols, row, "td_acc"),
			TDDef:  field(cols, row, "td_def"),
			SubAvg: field(cols, row, "sub_avg"),
		}
		if f.Name == "" {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

// readBoutCSV parses bout rows. Rows without a parsable date or with missing
// names are skipped rather than failing the whole import.
func readBoutCSV(path string) (bouts []model.Bout, skipped int, err error) {
	cols, rows, err := csvRows(path)
	if err != nil {
		return nil, 0, err
	}
	for _, required := range []string{"fighter", "opponent", "date"} {
		if _, ok := cols[required]; !ok {
			return nil, 0, fmt.Errorf("missing required column %q", required)
		}
	}

	for _, row := range rows {
		b := model.Bout{
			Fighter:   field(cols, row, "fighter"),
			Opponent:  field(cols, row, "opponent"),
			Method:    field(cols, row, "method"),
			Time:      field(cols, row, "time"),
			SigStr:    field(cols, row, "sig_str"),
			TotalStr:  field(cols, row, "total_str"),
			HeadStr:   field(cols, row, "head_str"),
			BodyStr:   field(cols, row, "body_str"),
			LegStr:    field(cols, row, "leg_str"),
			Takedowns: field(cols, row, "takedowns"),
			Ctrl:      field(cols, row, "ctrl"),
		}
		b.Outcome = model.ParseOutcome(field(cols, row, "outcome"))
		b.SubAtt, _ = strconv.Atoi(field(cols, row, "sub_att"))
		b.Round, _ = strconv.Atoi(field(cols, row, "round"))
		b.Knockdowns, _ = strconv.Atoi(field(cols, row, "knockdowns"))
		b.Date, err = time.Parse("2006-01-02", field(cols, row, "date"))
		if err != nil || b.Fighter == "" || b.Opponent == "" {
			skipped++
			err = nil
			continue
		}
		bouts = append(bouts, b)
	}
	return bouts, skipped, nil
}
