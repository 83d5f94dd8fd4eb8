package model

import (
	"math"
	"testing"
)

func TestClassifyMethod(t *testing.T) {
	cases := []struct {
		method string
		want   MethodKind
	}{
		{"KO/TKO", MethodKO},
		{"TKO - Doctor's Stoppage", MethodKO},
		{"Knockout", MethodKO},
		{"Submission", MethodSubmission},
		{"SUB (rear naked choke)", MethodSubmission},
		{"Decision - Unanimous", MethodDecision},
		{"Decision - Split", MethodDecision},
		{"DQ", MethodOther},
		{"", MethodOther},
	}
	for _, tc := range cases {
		if got := ClassifyMethod(tc.method); got != tc.want {
			t.Errorf("ClassifyMethod(%q) = %v, want %v", tc.method, got, tc.want)
		}
	}
}

func TestParseOutcome(t *testing.T) {
	for _, s := range []string{"win", "Win", "W", " w "} {
		if got := ParseOutcome(s); got != OutcomeWin {
			t.Errorf("ParseOutcome(%q) = %v, want win", s, got)
		}
	}
	for _, s := range []string{"loss", "L", "nc", ""} {
		if got := ParseOutcome(s); got != OutcomeLoss {
			t.Errorf("ParseOutcome(%q) = %v, want loss", s, got)
		}
	}
}

func TestSanitizeClearsNonFinite(t *testing.T) {
	p := &Profile{
		Wins:            3,
		CareerWinPct:    math.NaN(),
		StrikesPerMin:   math.Inf(1),
		TakedownDefense: math.Inf(-1),
	}
	p.Sanitize()
	if p.CareerWinPct != 0 || p.StrikesPerMin != 0 || p.TakedownDefense != 0 {
		t.Errorf("non-finite fields survived Sanitize: %v %v %v",
			p.CareerWinPct, p.StrikesPerMin, p.TakedownDefense)
	}
	if p.Wins != 3 {
		t.Errorf("Wins = %v, want finite values untouched", p.Wins)
	}
}

func TestNumericCoversAllFloatFields(t *testing.T) {
	m := (&Profile{}).Numeric()
	for _, name := range []string{"wins", "ko_win_rate", "avg_opp_quality", "cardio_fade", "rank_score"} {
		if _, ok := m[name]; !ok {
			t.Errorf("Numeric() missing %q", name)
		}
	}
}
