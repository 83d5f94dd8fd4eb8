package matchup

import (
	"testing"
	"time"

	"github.com/fightlab/go-fight-metrics/internal/model"
	"github.com/fightlab/go-fight-metrics/internal/profiler"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func fighter(name, record string) model.Fighter {
	return model.Fighter{Name: name, Record: record, Height: `5' 10"`, Weight: "170 lbs.", Reach: `72"`}
}

func bout(f, o string, on time.Time, outcome model.Outcome) model.Bout {
	return model.Bout{Fighter: f, Opponent: o, Date: on, Outcome: outcome, Method: "Decision", Round: 3, Time: "5:00"}
}

func newAnalyzer(fighters []model.Fighter, bouts []model.Bout) *Analyzer {
	return New(profiler.New(fighters, bouts))
}

func TestFeaturesUnknownFighterEmpty(t *testing.T) {
	m := newAnalyzer([]model.Fighter{fighter("A", "5-0-0")}, nil)
	if got := m.Features("A", "Nobody", date(2024, 1, 1)); len(got) != 0 {
		t.Fatalf("Features with unknown fighter = %d entries, want empty", len(got))
	}
	if got := m.Features("Nobody", "A", date(2024, 1, 1)); len(got) != 0 {
		t.Fatalf("Features with unknown fighter = %d entries, want empty", len(got))
	}
}

func TestHeadToHeadAntisymmetric(t *testing.T) {
	fighters := []model.Fighter{fighter("A", "3-1-0"), fighter("B", "1-3-0")}
	bouts := []model.Bout{
		bout("A", "B", date(2022, 1, 1), model.OutcomeWin),
		bout("B", "A", date(2022, 1, 1), model.OutcomeLoss),
		bout("A", "B", date(2023, 1, 1), model.OutcomeWin),
		bout("B", "A", date(2023, 1, 1), model.OutcomeLoss),
		bout("A", "B", date(2023, 6, 1), model.OutcomeLoss),
		bout("B", "A", date(2023, 6, 1), model.OutcomeWin),
	}
	m := newAnalyzer(fighters, bouts)
	asOf := date(2024, 1, 1)

	ab := m.Features("A", "B", asOf)
	ba := m.Features("B", "A", asOf)
	if ab["fought_before"] != 1 || ba["fought_before"] != 1 {
		t.Fatal("fought_before not set for fighters with direct meetings")
	}
	if ab["h2h_record_advantage"] != 1 {
		t.Fatalf("h2h_record_advantage(A,B) = %v, want 1", ab["h2h_record_advantage"])
	}
	if ab["h2h_record_advantage"] != -ba["h2h_record_advantage"] {
		t.Fatalf("h2h not antisymmetric: %v vs %v",
			ab["h2h_record_advantage"], ba["h2h_record_advantage"])
	}
}

func TestCommonOpponentUsesMostRecentResult(t *testing.T) {
	fighters := []model.Fighter{fighter("A", "2-1-0"), fighter("B", "1-1-0"), fighter("X", "1-2-0")}
	bouts := []model.Bout{
		// A lost to X first, then avenged it: most recent result is a win.
		bout("A", "X", date(2021, 1, 1), model.OutcomeLoss),
		bout("A", "X", date(2023, 1, 1), model.OutcomeWin),
		bout("B", "X", date(2022, 6, 1), model.OutcomeLoss),
	}
	m := newAnalyzer(fighters, bouts)
	f := m.Features("A", "B", date(2024, 1, 1))

	if f["common_opponent_count"] != 1 {
		t.Fatalf("common_opponent_count = %v, want 1", f["common_opponent_count"])
	}
	if f["common_opponent_advantage"] != 1 {
		t.Fatalf("common_opponent_advantage = %v, want 1 (rematch win should count)",
			f["common_opponent_advantage"])
	}
}

func TestHistoryFeaturesExcludeFutureBouts(t *testing.T) {
	fighters := []model.Fighter{fighter("A", "1-0-0"), fighter("B", "0-1-0")}
	bouts := []model.Bout{
		bout("A", "B", date(2024, 6, 1), model.OutcomeWin),
		bout("B", "A", date(2024, 6, 1), model.OutcomeLoss),
	}
	m := newAnalyzer(fighters, bouts)
	f := m.Features("A", "B", date(2024, 1, 1))

	if f["fought_before"] != 0 || f["h2h_record_advantage"] != 0 {
		t.Fatalf("future meeting leaked into history features: fought=%v h2h=%v",
			f["fought_before"], f["h2h_record_advantage"])
	}
}

func TestInactivityAdvantageDirection(t *testing.T) {
	fighters := []model.Fighter{fighter("A", "1-0-0"), fighter("B", "1-0-0")}
	bouts := []model.Bout{
		bout("A", "X", date(2023, 11, 1), model.OutcomeWin), // fresh
		bout("B", "Y", date(2019, 1, 1), model.OutcomeWin),  // long layoff
	}
	m := newAnalyzer(fighters, bouts)
	f := m.Features("A", "B", date(2024, 1, 1))
	if f["inactivity_advantage"] <= 0 {
		t.Fatalf("inactivity_advantage = %v, want > 0 for the fresher fighter",
			f["inactivity_advantage"])
	}
}
