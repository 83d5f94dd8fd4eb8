package profiler

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/fightlab/go-fight-metrics/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func testFighter(name string) model.Fighter {
	return model.Fighter{
		Name:   name,
		Record: "10-2-0",
		Height: `5' 11"`,
		Weight: "155 lbs.",
		Reach:  `72"`,
		Stance: "Orthodox",
		SLpM:   "4.50",
		StrAcc: "48%",
		SApM:   "3.10",
		StrDef: "60%",
		TDAvg:  "1.80",
		TDAcc:  "40%",
		TDDef:  "75%",
		SubAvg: "0.50",
	}
}

func win(fighter, opponent string, on time.Time, method string) model.Bout {
	return model.Bout{
		Fighter:  fighter,
		Opponent: opponent,
		Date:     on,
		Outcome:  model.OutcomeWin,
		Method:   method,
		Round:    3,
		Time:     "5:00",
		SigStr:   "60 of 120",
		HeadStr:  "40 of 90",
		BodyStr:  "12 of 20",
		LegStr:   "8 of 10",
	}
}

func loss(fighter, opponent string, on time.Time, method string, round int) model.Bout {
	b := win(fighter, opponent, on, method)
	b.Outcome = model.OutcomeLoss
	b.Round = round
	return b
}

func TestGetProfileUnknownFighter(t *testing.T) {
	p := New([]model.Fighter{testFighter("Known Guy")}, nil)
	if got := p.GetProfile("Nobody", date(2024, 6, 1)); got != nil {
		t.Fatalf("GetProfile for unknown fighter = %+v, want nil", got)
	}
}

func TestGetProfileExcludesFutureBouts(t *testing.T) {
	asOf := date(2024, 1, 1)
	bouts := []model.Bout{
		win("A", "B", date(2023, 6, 1), "KO"),
		win("A", "C", date(2023, 9, 1), "KO"),
		// Dated after the reference instant: must not influence anything.
		loss("A", "D", date(2024, 6, 1), "KO", 1),
		loss("A", "E", date(2025, 1, 1), "Submission", 1),
	}
	p := New([]model.Fighter{testFighter("A")}, bouts)

	prof := p.GetProfile("A", asOf)
	if prof == nil {
		t.Fatal("GetProfile returned nil for known fighter")
	}
	if prof.RecentFights != 2 {
		t.Fatalf("RecentFights = %v, want 2 (future bouts leaked in)", prof.RecentFights)
	}
	if prof.KOLossShare != 0 || prof.SubLossShare != 0 {
		t.Fatalf("loss shares %v/%v nonzero: future losses leaked into profile",
			prof.KOLossShare, prof.SubLossShare)
	}

	// A bout dated exactly at the instant is also excluded.
	bouts = append(bouts, win("A", "F", asOf, "KO"))
	p = New([]model.Fighter{testFighter("A")}, bouts)
	if got := p.GetProfile("A", asOf).RecentFights; got != 2 {
		t.Fatalf("RecentFights = %v, want 2 (bout at instant included)", got)
	}
}

func TestGetProfileIdempotent(t *testing.T) {
	asOf := date(2024, 1, 1)
	p := New(
		[]model.Fighter{testFighter("A")},
		[]model.Bout{win("A", "B", date(2023, 6, 1), "Decision")},
	)
	first := p.GetProfile("A", asOf)
	second := p.GetProfile("A", asOf)
	if first != second {
		t.Fatal("repeated GetProfile for the same instant returned distinct profiles")
	}
}

func TestGetProfileNoHistoryDefaults(t *testing.T) {
	p := New([]model.Fighter{testFighter("A")}, nil)
	prof := p.GetProfile("A", date(2024, 1, 1))
	if prof == nil {
		t.Fatal("GetProfile returned nil for known fighter without bouts")
	}
	if prof.YearsInactive != 10.0 {
		t.Fatalf("YearsInactive = %v, want sentinel 10.0", prof.YearsInactive)
	}
	if prof.InactivityPenalty != 1.0 {
		t.Fatalf("InactivityPenalty = %v, want 1.0 past the cutoff", prof.InactivityPenalty)
	}
	if prof.RecentFights != 0 || prof.FinishRate != 0 {
		t.Fatalf("window stats nonzero without history: fights=%v finish=%v",
			prof.RecentFights, prof.FinishRate)
	}
	if prof.Wins != 10 || prof.Losses != 2 {
		t.Fatalf("career record = %v-%v, want 10-2", prof.Wins, prof.Losses)
	}
}

func TestGetProfileAllValuesFinite(t *testing.T) {
	bouts := []model.Bout{
		{Fighter: "A", Opponent: "B", Date: date(2023, 1, 1), Outcome: model.OutcomeWin, Method: "KO"},
		{Fighter: "A", Opponent: "C", Date: date(2023, 3, 1), Outcome: model.OutcomeLoss, Method: "???"},
		{Fighter: "A", Opponent: "D", Date: date(2023, 5, 1), Outcome: model.OutcomeWin, Method: ""},
	}
	f := testFighter("A")
	f.Record = "garbage"
	f.SLpM = ""
	f.StrAcc = "--"
	p := New([]model.Fighter{f}, bouts)

	prof := p.GetProfile("A", date(2024, 1, 1))
	for name, v := range prof.Numeric() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("feature %q = %v, want finite", name, v)
		}
	}
}

func TestRecentWindowCapped(t *testing.T) {
	var bouts []model.Bout
	for i := 0; i < 9; i++ {
		bouts = append(bouts, win("A", fmt.Sprintf("Opp %d", i), date(2023, 1, 1+i), "Decision"))
	}
	p := New([]model.Fighter{testFighter("A")}, bouts)
	if got := p.GetProfile("A", date(2024, 1, 1)).RecentFights; got != recentWindow {
		t.Fatalf("RecentFights = %v, want %d", got, recentWindow)
	}
}

func TestVulnerabilityNeedsMinimumHistory(t *testing.T) {
	bouts := []model.Bout{
		loss("A", "B", date(2023, 1, 1), "KO", 1),
		loss("A", "C", date(2023, 3, 1), "KO", 3),
	}
	p := New([]model.Fighter{testFighter("A")}, bouts)
	prof := p.GetProfile("A", date(2024, 1, 1))
	if prof.KOLossShare != 0 || prof.CardioFade != 0 {
		t.Fatalf("vulnerability stats reported on %d bouts: ko=%v fade=%v",
			len(bouts), prof.KOLossShare, prof.CardioFade)
	}

	bouts = append(bouts, loss("A", "D", date(2023, 5, 1), "Submission", 3))
	p = New([]model.Fighter{testFighter("A")}, bouts)
	prof = p.GetProfile("A", date(2024, 1, 1))
	if prof.KOLossShare == 0 {
		t.Fatal("KOLossShare zero with three qualifying losses")
	}
	wantFade := 1.0 // 1.5 * 2/3 = 1.0
	if math.Abs(prof.CardioFade-wantFade) > 1e-9 {
		t.Fatalf("CardioFade = %v, want %v", prof.CardioFade, wantFade)
	}
}

func TestInactivityPenaltyAppliedOnceToWinRates(t *testing.T) {
	// A single win 1.5 years before the instant puts the fighter inside
	// the penalty band, so win-side rates must come out below the raw
	// 1-of-1 rate while loss-side and ratio stats stay untouched.
	asOf := date(2024, 7, 1)
	bouts := []model.Bout{win("A", "B", date(2023, 1, 1), "KO")}
	p := New([]model.Fighter{testFighter("A")}, bouts)

	prof := p.GetProfile("A", asOf)
	if prof.InactivityPenalty >= 1.0 {
		t.Fatalf("InactivityPenalty = %v, want < 1.0 inside the band", prof.InactivityPenalty)
	}
	if math.Abs(prof.KOWinRate-prof.InactivityPenalty) > 1e-9 {
		t.Fatalf("KOWinRate = %v, want penalty %v applied to raw 1.0",
			prof.KOWinRate, prof.InactivityPenalty)
	}
	if math.Abs(prof.StrikeAccuracy-0.48) > 1e-9 {
		t.Fatalf("StrikeAccuracy = %v, want unpenalized 0.48", prof.StrikeAccuracy)
	}
}

func TestRankScore(t *testing.T) {
	cases := []struct {
		rank string
		want float64
	}{
		{"C", 1.0},
		{"Champion", 1.0},
		{"1", 0.95},
		{"#3", 0.85},
		{"5", 0.75},
		{"6", 0.71},
		{"10", 0.55},
		{"11", 0.52},
		{"15", 0.40},
		{"16", 0.40},
		{"", 0.40},
		{"NR", 0.40},
	}
	for _, tc := range cases {
		if got := RankScore(tc.rank); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("RankScore(%q) = %v, want %v", tc.rank, got, tc.want)
		}
	}
}

func TestOpponentQualityBounds(t *testing.T) {
	champ := testFighter("Champ")
	champ.Rank = "C"
	champ.Record = "30-0-0"
	p := New([]model.Fighter{testFighter("A"), champ}, nil)

	if q := p.opponentQuality("Champ"); q <= 0.9 || q > 1.0 {
		t.Fatalf("opponentQuality(champ) = %v, want (0.9, 1.0]", q)
	}
	// Unknown opponents get the unranked default rank and nothing else.
	if q := p.opponentQuality("Mystery"); math.Abs(q-0.2) > 1e-9 {
		t.Fatalf("opponentQuality(unknown) = %v, want 0.2", q)
	}
}
