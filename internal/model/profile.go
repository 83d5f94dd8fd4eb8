package model

import (
	"math"
	"time"
)

// Profile is the derived statistical summary for one fighter at one
// reference instant. Every numeric field is built only from bouts dated
// strictly before AsOf, and each volume/output field is scaled by at most
// one inactivity-penalty factor. Categorical fields (Stance, style labels)
// describe the fighter but are excluded from the numeric feature vector.
type Profile struct {
	Name string
	AsOf time.Time

	Stance         string
	StrikingStyle  string
	GrapplingStyle string

	// Identity and career record.
	Wins, Losses, Draws float64
	CareerFights        float64
	CareerWinPct        float64
	HeightIn            float64
	ReachIn             float64
	WeightLbs           float64
	RankScore           float64

	// Recent form, from the most recent qualifying bouts.
	YearsInactive     float64
	InactivityPenalty float64
	RecentFights      float64
	FinishRate        float64
	KOWinRate         float64
	SubWinRate        float64
	DecisionWinRate   float64
	WeightedWinRate   float64
	AvgFightMinutes   float64

	// Striking.
	StrikesPerMin         float64
	StrikeAccuracy        float64
	StrikesAbsorbedPerMin float64
	StrikeDefense         float64
	AvgStrikesLanded      float64
	AvgStrikesAttempted   float64
	KnockdownRate         float64
	HeadStrikeShare       float64
	BodyStrikeShare       float64
	LegStrikeShare        float64

	// Grappling.
	TakedownAvg           float64
	TakedownAccuracy      float64
	TakedownDefense       float64
	SubAttemptAvg         float64
	AvgTakedownsLanded    float64
	AvgTakedownsAttempted float64
	AvgControlSeconds     float64

	// Vulnerability, from losses in the recent window.
	KOLossShare  float64
	SubLossShare float64
	CardioFade   float64

	// Opposition quality.
	AvgOppQuality  float64
	EliteWins      float64
	AvgLossQuality float64
}

type namedValue struct {
	name string
	v    *float64
}

// numericFields enumerates every numeric field with its feature name.
// The order here fixes the iteration order of Numeric.
func (p *Profile) numericFields() []namedValue {
	return []namedValue{
		{"wins", &p.Wins},
		{"losses", &p.Losses},
		{"draws", &p.Draws},
		{"career_fights", &p.CareerFights},
		{"career_win_pct", &p.CareerWinPct},
		{"height_in", &p.HeightIn},
		{"reach_in", &p.ReachIn},
		{"weight_lbs", &p.WeightLbs},
		{"rank_score", &p.RankScore},
		{"years_inactive", &p.YearsInactive},
		{"inactivity_penalty", &p.InactivityPenalty},
		{"recent_fights", &p.RecentFights},
		{"finish_rate", &p.FinishRate},
		{"ko_win_rate", &p.KOWinRate},
		{"sub_win_rate", &p.SubWinRate},
		{"decision_win_rate", &p.DecisionWinRate},
		{"weighted_win_rate", &p.WeightedWinRate},
		{"avg_fight_minutes", &p.AvgFightMinutes},
		{"strikes_per_min", &p.StrikesPerMin},
		{"strike_accuracy", &p.StrikeAccuracy},
		{"strikes_absorbed_per_min", &p.StrikesAbsorbedPerMin},
		{"strike_defense", &p.StrikeDefense},
		{"avg_strikes_landed", &p.AvgStrikesLanded},
		{"avg_strikes_attempted", &p.AvgStrikesAttempted},
		{"knockdown_rate", &p.KnockdownRate},
		{"head_strike_share", &p.HeadStrikeShare},
		{"body_strike_share", &p.BodyStrikeShare},
		{"leg_strike_share", &p.LegStrikeShare},
		{"takedown_avg", &p.TakedownAvg},
		{"takedown_accuracy", &p.TakedownAccuracy},
		{"takedown_defense", &p.TakedownDefense},
		{"sub_attempt_avg", &p.SubAttemptAvg},
		{"avg_takedowns_landed", &p.AvgTakedownsLanded},
		{"avg_takedowns_attempted", &p.AvgTakedownsAttempted},
		{"avg_control_seconds", &p.AvgControlSeconds},
		{"ko_loss_share", &p.KOLossShare},
		{"sub_loss_share", &p.SubLossShare},
		{"cardio_fade", &p.CardioFade},
		{"avg_opp_quality", &p.AvgOppQuality},
		{"elite_wins", &p.EliteWins},
		{"avg_loss_quality", &p.AvgLossQuality},
	}
}

// Numeric returns the profile's numeric fields as a flat feature map.
func (p *Profile) Numeric() map[string]float64 {
	fields := p.numericFields()
	out := make(map[string]float64, len(fields))
	for _, f := range fields {
		out[f.name] = *f.v
	}
	return out
}

// Sanitize replaces any NaN or infinite numeric field with 0.0.
// Called once, after all analysis steps, before the profile is returned.
func (p *Profile) Sanitize() {
	for _, f := range p.numericFields() {
		if math.IsNaN(*f.v) || math.IsInf(*f.v, 0) {
			*f.v = 0.0
		}
	}
}
