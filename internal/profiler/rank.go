package profiler

import (
	"strings"

	"github.com/fightlab/go-fight-metrics/internal/normalize"
)

// unrankedScore is the rank score assigned to unranked or unknown fighters.
const unrankedScore = 0.4

// rankBand maps a contiguous run of ranking positions onto a linearly
// decreasing score.
type rankBand struct {
	maxRank int
	base    float64 // score at the band's first position minus one
	step    float64 // score lost per position within the band
	offset  int     // last position of the previous band
}

// rankBands encodes the divisional ranking policy: top five drop five
// points per place, six through ten four points, eleven through fifteen
// three points. Anything below fifteen scores the unranked floor.
var rankBands = []rankBand{
	{maxRank: 5, base: 1.00, step: 0.05, offset: 0},
	{maxRank: 10, base: 0.75, step: 0.04, offset: 5},
	{maxRank: 15, base: 0.55, step: 0.03, offset: 10},
}

// RankScore converts a free-text divisional ranking into a [0, 1] score.
// "C" and anything containing "champion" score 1.0; numbered ranks follow
// the band table; everything else scores the unranked floor.
func RankScore(rank string) float64 {
	s := strings.TrimSpace(strings.ToLower(rank))
	if s == "" {
		return unrankedScore
	}
	if s == "c" || strings.Contains(s, "champ") {
		return 1.0
	}
	n := int(normalize.Number(strings.TrimPrefix(s, "#")))
	if n <= 0 {
		return unrankedScore
	}
	for _, band := range rankBands {
		if n <= band.maxRank {
			return band.base - band.step*float64(n-band.offset)
		}
	}
	return unrankedScore
}

// strikingStyle labels a fighter's striking identity from unpenalized
// lifetime and window rates. The first matching label wins.
func strikingStyle(slpm, accuracy, kdRate, legShare float64) string {
	switch {
	case kdRate >= 0.5:
		return "knockout artist"
	case slpm >= 5.5:
		return "volume striker"
	case accuracy >= 0.55 && slpm > 0:
		return "precision striker"
	case legShare >= 0.25:
		return "kicker"
	case slpm > 0:
		return "balanced striker"
	default:
		return "unknown"
	}
}

// grapplingStyle labels a fighter's grappling identity from unpenalized
// lifetime rates.
func grapplingStyle(tdAvg, subAvg, tdDef float64) string {
	switch {
	case subAvg >= 1.0:
		return "submission hunter"
	case tdAvg >= 3.0:
		return "wrestler"
	case tdDef >= 0.8:
		return "sprawl and brawl"
	case tdAvg > 0 || subAvg > 0:
		return "balanced grappler"
	default:
		return "unknown"
	}
}
