// Package normalize converts the heterogeneous textual fields of scraped
// fighter and bout records into typed numeric values. Every function
// degrades to a neutral zero default on malformed input; a bad field must
// never abort profile construction.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	recordRe  = regexp.MustCompile(`(\d+)\s*-\s*(\d+)\s*-\s*(\d+)`)
	heightRe  = regexp.MustCompile(`(\d+)\s*'\s*(\d+)`)
	numberRe  = regexp.MustCompile(`-?\d+(?:\.\d+)?`)
	ofCountRe = regexp.MustCompile(`(\d+)\s+of\s+(\d+)`)
	clockRe   = regexp.MustCompile(`(\d+):(\d{1,2})`)
)

// Record parses a "W-L-D" career record ("26-6-0", "26-6-0 (1 NC)").
// Non-conforming strings yield (0, 0, 0).
func Record(s string) (wins, losses, draws int) {
	m := recordRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, 0
	}
	wins, _ = strconv.Atoi(m[1])
	losses, _ = strconv.Atoi(m[2])
	draws, _ = strconv.Atoi(m[3])
	return wins, losses, draws
}

// Height parses a feet-and-inches height string (`5' 11"`) into inches.
// Falls back to Number for plain-inch strings; returns 0 when unparseable.
func Height(s string) float64 {
	if m := heightRe.FindStringSubmatch(s); m != nil {
		feet, _ := strconv.Atoi(m[1])
		inches, _ := strconv.Atoi(m[2])
		return float64(feet*12 + inches)
	}
	return Number(s)
}

// Number extracts the first numeric token from free text (`76"` → 76,
// "155 lbs." → 155, "4.21" → 4.21). Returns 0 when none exists.
func Number(s string) float64 {
	m := numberRe.FindString(s)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}

// Percent parses a percentage string ("57%") into a [0, 1] fraction.
// Values already in [0, 1] pass through, so "0.57" also works.
func Percent(s string) float64 {
	v := Number(s)
	if strings.Contains(s, "%") || v > 1 {
		return v / 100
	}
	return v
}

// OfCount parses a "landed of attempted" pair ("45 of 102").
// Returns (0, 0) for malformed input.
func OfCount(s string) (landed, attempted int) {
	m := ofCountRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0
	}
	landed, _ = strconv.Atoi(m[1])
	attempted, _ = strconv.Atoi(m[2])
	return landed, attempted
}

// Clock parses an "mm:ss" clock string ("4:32") into seconds.
// Returns 0 for malformed input.
func Clock(s string) float64 {
	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	minutes, _ := strconv.Atoi(m[1])
	seconds, _ := strconv.Atoi(m[2])
	return float64(minutes*60 + seconds)
}
