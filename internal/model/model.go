package model

import (
	"strings"
	"time"
)

// Outcome is the bout result from the principal fighter's perspective.
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
)

// ParseOutcome maps stored outcome text to an Outcome. Anything that is not
// a win counts as a loss row; draws and no-contests are filtered at import.
func ParseOutcome(s string) Outcome {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "win", "w":
		return OutcomeWin
	}
	return OutcomeLoss
}

// MethodKind classifies how a bout ended.
type MethodKind int

const (
	MethodOther MethodKind = iota
	MethodKO
	MethodSubmission
	MethodDecision
)

func (m MethodKind) String() string {
	switch m {
	case MethodKO:
		return "KO/TKO"
	case MethodSubmission:
		return "Submission"
	case MethodDecision:
		return "Decision"
	default:
		return "?"
	}
}

// ClassifyMethod maps free-form method text ("KO/TKO (punches)",
// "Submission (rear-naked choke)", "Decision - Unanimous", ...) to a
// MethodKind. Unrecognized text maps to MethodOther.
func ClassifyMethod(s string) MethodKind {
	t := strings.ToLower(s)
	switch {
	case strings.Contains(t, "ko") || strings.Contains(t, "knockout"):
		return MethodKO
	case strings.Contains(t, "sub"):
		return MethodSubmission
	case strings.Contains(t, "dec"):
		return MethodDecision
	default:
		return MethodOther
	}
}

// ---- Input records (owned by the storage collaborator) ----

// Fighter is one row of the fighters collection. Physical, record, and
// lifetime-rate fields are kept as scraped text; the profiler normalizes
// them, so inconsistent source formatting never breaks ingestion.
type Fighter struct {
	Name   string
	Height string // e.g. `5' 11"`
	Weight string // e.g. "155 lbs."
	Reach  string // e.g. `76"`
	Stance string // "Orthodox", "Southpaw", "Switch", or empty
	Record string // e.g. "26-6-0" or "26-6-0 (1 NC)"
	Rank   string // "C" for champion, "#3", or empty when unranked

	// Lifetime rate statistics, free text as published.
	SLpM   string // significant strikes landed per minute
	StrAcc string // striking accuracy, e.g. "57%"
	SApM   string // significant strikes absorbed per minute
	StrDef string // striking defense, e.g. "61%"
	TDAvg  string // takedowns landed per 15 minutes
	TDAcc  string // takedown accuracy
	TDDef  string // takedown defense
	SubAvg string // submission attempts per 15 minutes
}

// Bout is one historical contest from the principal fighter's perspective.
// Each contest appears once per participant, so selecting rows by Fighter
// yields that fighter's own history. Round-level stat fields keep the
// "X of Y" and "mm:ss" textual encodings of the source.
type Bout struct {
	Fighter  string // principal
	Opponent string
	Date     time.Time
	Outcome  Outcome
	Method   string
	Round    int    // final round
	Time     string // final-round clock, "4:32"

	Knockdowns int
	SigStr     string // significant strikes, "45 of 102"
	TotalStr   string
	HeadStr    string
	BodyStr    string
	LegStr     string
	Takedowns  string // "2 of 5"
	SubAtt     int
	Ctrl       string // control time, "2:35"
}
