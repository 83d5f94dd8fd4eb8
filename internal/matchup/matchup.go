// Package matchup derives comparative features for an ordered pair of
// fighters at a reference instant. The analyzer is stateless: every call is
// a pure function of the two cached profiles and the pre-instant history,
// so results are cheap to recompute and never cached here.
package matchup

import (
	"time"

	"github.com/fightlab/go-fight-metrics/internal/model"
	"github.com/fightlab/go-fight-metrics/internal/profiler"
)

// Analyzer computes matchup features on top of a shared Profiler.
type Analyzer struct {
	profiles *profiler.Profiler
}

// New returns an Analyzer over the given profiler. The analyzer keeps a
// reference; it never owns or mutates the underlying collections.
func New(p *profiler.Profiler) *Analyzer {
	return &Analyzer{profiles: p}
}

// Features returns the comparative feature map for fighter a versus
// fighter b as of the reference instant. Positive "advantage" values favor
// a. If either fighter cannot be profiled, the map is empty.
func (m *Analyzer) Features(a, b string, asOf time.Time) map[string]float64 {
	if asOf.IsZero() {
		asOf = time.Now()
	}
	asOf = asOf.UTC()

	pa := m.profiles.GetProfile(a, asOf)
	pb := m.profiles.GetProfile(b, asOf)
	if pa == nil || pb == nil {
		return map[string]float64{}
	}

	f := map[string]float64{
		"height_advantage": pa.HeightIn - pb.HeightIn,
		"reach_advantage":  pa.ReachIn - pb.ReachIn,
		"weight_advantage": pa.WeightLbs - pb.WeightLbs,

		"experience_advantage":        pa.CareerFights - pb.CareerFights,
		"win_pct_advantage":           pa.CareerWinPct - pb.CareerWinPct,
		"weighted_win_rate_advantage": pa.WeightedWinRate - pb.WeightedWinRate,

		"striking_volume_advantage":   pa.StrikesPerMin - pb.StrikesPerMin,
		"striking_accuracy_advantage": pa.StrikeAccuracy - pb.StrikeAccuracy,
		"striking_defense_advantage":  pa.StrikeDefense - pb.StrikeDefense,
		"ko_potential":                pa.KOWinRate*pb.KOLossShare - pb.KOWinRate*pa.KOLossShare,

		"takedown_advantage":          pa.TakedownAvg - pb.TakedownAvg,
		"takedown_accuracy_advantage": pa.TakedownAccuracy - pb.TakedownAccuracy,
		"takedown_defense_advantage":  pa.TakedownDefense - pb.TakedownDefense,
		"control_time_advantage":      pa.AvgControlSeconds - pb.AvgControlSeconds,
		"sub_potential":               pa.SubWinRate*pb.SubLossShare - pb.SubWinRate*pa.SubLossShare,

		"opp_quality_advantage":  pa.AvgOppQuality - pb.AvgOppQuality,
		"elite_wins_advantage":   pa.EliteWins - pb.EliteWins,
		"loss_quality_advantage": pa.AvgLossQuality - pb.AvgLossQuality,

		// Positive when a has fought more recently than b.
		"inactivity_advantage": pb.YearsInactive - pa.YearsInactive,
	}

	m.fillHistory(f, a, b, asOf)
	return f
}

// fillHistory adds head-to-head and shared-opponent features from bouts
// strictly before the reference instant.
func (m *Analyzer) fillHistory(f map[string]float64, a, b string, asOf time.Time) {
	historyA := m.profiles.History(a, asOf)
	historyB := m.profiles.History(b, asOf)

	var fought, h2h float64
	for _, bout := range historyA {
		if bout.Opponent != b {
			continue
		}
		fought = 1
		switch bout.Outcome {
		case model.OutcomeWin:
			h2h++
		case model.OutcomeLoss:
			h2h--
		}
	}
	f["fought_before"] = fought
	f["h2h_record_advantage"] = h2h

	// Histories are newest-first, so the first bout seen against an
	// opponent is the most recent meeting.
	latestA := latestResults(historyA, b)
	latestB := latestResults(historyB, a)

	var shared, advantage float64
	for opp, ra := range latestA {
		rb, ok := latestB[opp]
		if !ok {
			continue
		}
		shared++
		switch {
		case ra == model.OutcomeWin && rb == model.OutcomeLoss:
			advantage++
		case ra == model.OutcomeLoss && rb == model.OutcomeWin:
			advantage--
		}
	}
	f["common_opponent_count"] = shared
	f["common_opponent_advantage"] = advantage
}

// latestResults maps each opponent (excluding the direct rival) to the
// outcome of the most recent meeting in a newest-first history.
func latestResults(history []model.Bout, rival string) map[string]model.Outcome {
	out := make(map[string]model.Outcome)
	for _, b := range history {
		if b.Opponent == rival {
			continue
		}
		if _, seen := out[b.Opponent]; !seen {
			out[b.Opponent] = b.Outcome
		}
	}
	return out
}
