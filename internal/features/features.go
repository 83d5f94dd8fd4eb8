// Package features assembles the flat numeric feature map consumed by a
// downstream classifier. Categorical profile fields (names, stance, style
// labels) are deliberately excluded from the numeric vector; they appear in
// human-readable reports only.
package features

import (
	"math"
	"time"

	"github.com/fightlab/go-fight-metrics/internal/matchup"
	"github.com/fightlab/go-fight-metrics/internal/profiler"
)

// Assembler flattens two profiles and their matchup features into one map.
type Assembler struct {
	profiles *profiler.Profiler
	matchups *matchup.Analyzer
}

// New returns an Assembler sharing the given profiler with its analyzer, so
// both draw from the same profile cache.
func New(p *profiler.Profiler) *Assembler {
	return &Assembler{profiles: p, matchups: matchup.New(p)}
}

// PredictionFeatures returns the combined feature map for fighter a versus
// fighter b as of the reference instant: every numeric profile field of a
// prefixed "a_", every numeric field of b prefixed "b_", plus all matchup
// features. Empty map if either fighter is unknown. Every value in a
// non-empty result is finite.
func (s *Assembler) PredictionFeatures(a, b string, asOf time.Time) map[string]float64 {
	if asOf.IsZero() {
		asOf = time.Now()
	}
	asOf = asOf.UTC()

	pa := s.profiles.GetProfile(a, asOf)
	pb := s.profiles.GetProfile(b, asOf)
	if pa == nil || pb == nil {
		return map[string]float64{}
	}

	out := make(map[string]float64, 128)
	for name, v := range pa.Numeric() {
		out["a_"+name] = v
	}
	for name, v := range pb.Numeric() {
		out["b_"+name] = v
	}
	for name, v := range s.matchups.Features(a, b, asOf) {
		out[name] = v
	}
	for name, v := range out {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			out[name] = 0
		}
	}
	return out
}
