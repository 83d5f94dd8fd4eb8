// Package temporal holds the recency-decay and inactivity-penalty policy
// used by the profiler. Both are pure threshold functions driven by a
// Config so the constants can be tuned without touching control flow.
package temporal

import (
	"math"
	"time"
)

const hoursPerYear = 24 * 365.25

// Config carries the temporal weighting policy constants.
type Config struct {
	RecencyBase      float64 // weight of an event at the reference instant
	RecencyDecay     float64 // per-year multiplicative decay
	MinRecencyWeight float64 // floor, also used when a timestamp is missing

	InactivityDecay    float64 // per-year decay inside the penalty band
	GracePeriodYears   float64 // no penalty at or below this
	PenaltyCutoffYears float64 // no penalty at or above this
	PenaltyFloor       float64
}

// DefaultConfig returns the production weighting policy.
func DefaultConfig() Config {
	return Config{
		RecencyBase:        1.0,
		RecencyDecay:       0.7,
		MinRecencyWeight:   0.1,
		InactivityDecay:    0.6,
		GracePeriodYears:   1.2,
		PenaltyCutoffYears: 2.0,
		PenaltyFloor:       0.05,
	}
}

// YearsBetween returns the elapsed years from earlier to later,
// clamped to >= 0.
func YearsBetween(earlier, later time.Time) float64 {
	years := later.Sub(earlier).Hours() / hoursPerYear
	if years < 0 {
		return 0
	}
	return years
}

// RecencyWeight returns the decayed weight of an event relative to the
// reference instant. A missing timestamp on either side yields the floor
// weight (unknown is treated as stale). An event at or after the reference
// instant is maximally recent. Monotonically non-increasing in elapsed time.
func (c Config) RecencyWeight(eventTime, ref time.Time) float64 {
	if eventTime.IsZero() || ref.IsZero() {
		return c.MinRecencyWeight
	}
	w := c.RecencyBase * math.Pow(c.RecencyDecay, YearsBetween(eventTime, ref))
	if w < c.MinRecencyWeight {
		return c.MinRecencyWeight
	}
	if w > c.RecencyBase {
		return c.RecencyBase
	}
	return w
}

// InactivityPenalty returns the multiplier applied to volume/output
// statistics for a fighter who has been inactive. The penalty applies only
// inside the band (grace period, cutoff): at or below the grace period and
// at or beyond the cutoff the multiplier is 1.0. The asymmetric band is
// the business rule the historical datasets were scored under; keep the
// exact thresholds.
func (c Config) InactivityPenalty(yearsInactive float64) float64 {
	if yearsInactive <= c.GracePeriodYears || yearsInactive >= c.PenaltyCutoffYears {
		return 1.0
	}
	p := math.Pow(c.InactivityDecay, yearsInactive-c.GracePeriodYears)
	if p < c.PenaltyFloor {
		return c.PenaltyFloor
	}
	return p
}

// RecencyWeight applies the default policy.
func RecencyWeight(eventTime, ref time.Time) float64 {
	return DefaultConfig().RecencyWeight(eventTime, ref)
}

// InactivityPenalty applies the default policy.
func InactivityPenalty(yearsInactive float64) float64 {
	return DefaultConfig().InactivityPenalty(yearsInactive)
}
