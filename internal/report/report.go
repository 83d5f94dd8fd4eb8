package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/fightlab/go-fight-metrics/internal/model"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintProfile writes one fighter's profile: an identity header followed by
// a grouped stat table.
func PrintProfile(w io.Writer, p *model.Profile) {
	fmt.Fprintf(w, "\n%s  |  as of %s  |  %s  |  %s / %s\n\n",
		p.Name, p.AsOf.Format("2006-01-02"), p.Stance, p.StrikingStyle, p.GrapplingStyle)

	table := newTable(w)
	table.Header("GROUP", "STAT", "VALUE")
	rows := []struct {
		group, stat string
		value       string
	}{
		{"career", "record", fmt.Sprintf("%.0f-%.0f-%.0f", p.Wins, p.Losses, p.Draws)},
		{"career", "win pct", fmt.Sprintf("%.0f%%", 100*p.CareerWinPct)},
		{"career", "rank score", fmt.Sprintf("%.2f", p.RankScore)},
		{"form", "recent fights", fmt.Sprintf("%.0f", p.RecentFights)},
		{"form", "weighted win rate", fmt.Sprintf("%.2f", p.WeightedWinRate)},
		{"form", "finish rate", fmt.Sprintf("%.2f", p.FinishRate)},
		{"form", "years inactive", fmt.Sprintf("%.1f", p.YearsInactive)},
		{"form", "inactivity penalty", fmt.Sprintf("%.2f", p.InactivityPenalty)},
		{"striking", "strikes/min", fmt.Sprintf("%.2f", p.StrikesPerMin)},
		{"striking", "accuracy", fmt.Sprintf("%.0f%%", 100*p.StrikeAccuracy)},
		{"striking", "defense", fmt.Sprintf("%.0f%%", 100*p.StrikeDefense)},
		{"striking", "knockdowns/fight", fmt.Sprintf("%.2f", p.KnockdownRate)},
		{"grappling", "takedowns/15min", fmt.Sprintf("%.2f", p.TakedownAvg)},
		{"grappling", "td defense", fmt.Sprintf("%.0f%%", 100*p.TakedownDefense)},
		{"grappling", "sub attempts/15min", fmt.Sprintf("%.2f", p.SubAttemptAvg)},
		{"grappling", "control sec/fight", fmt.Sprintf("%.0f", p.AvgControlSeconds)},
		{"risk", "ko loss share", fmt.Sprintf("%.2f", p.KOLossShare)},
		{"risk", "sub loss share", fmt.Sprintf("%.2f", p.SubLossShare)},
		{"risk", "cardio fade", fmt.Sprintf("%.2f", p.CardioFade)},
		{"opposition", "avg opp quality", fmt.Sprintf("%.2f", p.AvgOppQuality)},
		{"opposition", "elite wins", fmt.Sprintf("%.0f", p.EliteWins)},
	}
	for _, r := range rows {
		table.Append(r.group, r.stat, r.value)
	}
	table.Render()
}

// PrintMatchup writes the comparative feature table for an ordered pair.
// Features are sorted by name for a stable, diffable layout.
func PrintMatchup(w io.Writer, a, b string, feats map[string]float64) {
	if len(feats) == 0 {
		fmt.Fprintf(w, "no matchup features for %s vs %s (unknown fighter?)\n", a, b)
		return
	}
	fmt.Fprintf(w, "\n%s vs %s  (positive favors %s)\n\n", a, b, a)

	names := make([]string, 0, len(feats))
	for name := range feats {
		names = append(names, name)
	}
	sort.Strings(names)

	table := newTable(w)
	table.Header("FEATURE", "VALUE")
	for _, name := range names {
		table.Append(name, fmt.Sprintf("%+.3f", feats[name]))
	}
	table.Render()
}

// PrintFighterList writes the roster table.
func PrintFighterList(w io.Writer, fighters []model.Fighter) {
	table := newTable(w)
	table.Header("NAME", "RECORD", "RANK", "STANCE", "HEIGHT", "WEIGHT", "REACH")
	for _, f := range fighters {
		table.Append(f.Name, f.Record, orDash(f.Rank), orDash(f.Stance),
			orDash(f.Height), orDash(f.Weight), orDash(f.Reach))
	}
	table.Render()
	fmt.Fprintf(w, "\n%s fighters\n", strconv.Itoa(len(fighters)))
}

// PrintBoutHistory writes a fighter's bout list, newest first.
func PrintBoutHistory(w io.Writer, bouts []model.Bout) {
	table := newTable(w)
	table.Header("DATE", "OPPONENT", "RESULT", "METHOD", "RD", "TIME")
	for _, b := range bouts {
		table.Append(
			b.Date.Format("2006-01-02"),
			b.Opponent,
			string(b.Outcome),
			orDash(b.Method),
			strconv.Itoa(b.Round),
			orDash(b.Time),
		)
	}
	table.Render()
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
