// Package profiler derives per-fighter statistical profiles as of an
// arbitrary reference instant, using only bouts dated strictly before that
// instant. The profiler is the only stateful component of the engine: it
// owns copies of the input collections and a cache keyed by
// (fighter, reference instant).
package profiler

import (
	"sort"
	"sync"
	"time"

	"github.com/fightlab/go-fight-metrics/internal/model"
	"github.com/fightlab/go-fight-metrics/internal/normalize"
	"github.com/fightlab/go-fight-metrics/internal/temporal"
)

const (
	// recentWindow is the number of most recent qualifying bouts used for
	// form, volume, vulnerability, and opposition statistics.
	recentWindow = 5

	// minVulnerabilityBouts is the minimum qualifying history required
	// before loss-composition statistics are reported.
	minVulnerabilityBouts = 3

	// inactiveSentinelYears stands in for years-inactive when a fighter
	// has no prior bouts at all.
	inactiveSentinelYears = 10.0

	// eliteQualityThreshold marks an opponent as elite.
	eliteQualityThreshold = 0.75

	roundMinutes = 5.0
)

type cacheKey struct {
	name string
	asOf int64
}

// Profiler computes and caches fighter profiles. Safe for concurrent use:
// cache access is serialized, and recomputing an entry for the same key is
// idempotent.
type Profiler struct {
	cfg      temporal.Config
	fighters map[string]model.Fighter
	history  map[string][]model.Bout // principal-perspective rows per fighter

	mu    sync.Mutex
	cache map[cacheKey]*model.Profile
}

// New builds a Profiler over the given collections with the default
// temporal policy. The collections are copied; the caller's slices are
// never mutated or retained.
func New(fighters []model.Fighter, bouts []model.Bout) *Profiler {
	return NewWithConfig(fighters, bouts, temporal.DefaultConfig())
}

// NewWithConfig is New with an explicit temporal policy.
func NewWithConfig(fighters []model.Fighter, bouts []model.Bout, cfg temporal.Config) *Profiler {
	p := &Profiler{
		cfg:      cfg,
		fighters: make(map[string]model.Fighter, len(fighters)),
		history:  make(map[string][]model.Bout),
		cache:    make(map[cacheKey]*model.Profile),
	}
	for _, f := range fighters {
		p.fighters[f.Name] = f
	}
	for _, b := range bouts {
		p.history[b.Fighter] = append(p.history[b.Fighter], b)
	}
	return p
}

// Known reports whether a fighter exists in the subject collection.
func (p *Profiler) Known(name string) bool {
	_, ok := p.fighters[name]
	return ok
}

// History returns the fighter's bouts dated strictly before asOf,
// most recent first.
func (p *Profiler) History(name string, asOf time.Time) []model.Bout {
	var out []model.Bout
	for _, b := range p.history[name] {
		if b.Date.Before(asOf) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

// GetProfile returns the fighter's profile as of the reference instant.
// A zero asOf means "now". Returns nil for an unknown fighter: that is the
// expected "cannot profile" signal, not an error. Results are cached per
// (fighter, instant) for the lifetime of the Profiler.
func (p *Profiler) GetProfile(name string, asOf time.Time) *model.Profile {
	if asOf.IsZero() {
		asOf = time.Now()
	}
	asOf = asOf.UTC()

	fighter, ok := p.fighters[name]
	if !ok {
		return nil
	}

	key := cacheKey{name: name, asOf: asOf.UnixNano()}
	p.mu.Lock()
	if cached, ok := p.cache[key]; ok {
		p.mu.Unlock()
		return cached
	}
	p.mu.Unlock()

	prof := p.build(fighter, asOf)

	p.mu.Lock()
	p.cache[key] = prof
	p.mu.Unlock()
	return prof
}

// build runs all analysis steps for one (fighter, instant) pair.
func (p *Profiler) build(f model.Fighter, asOf time.Time) *model.Profile {
	history := p.History(f.Name, asOf)
	recent := history
	if len(recent) > recentWindow {
		recent = recent[:recentWindow]
	}

	yearsInactive := inactiveSentinelYears
	if len(history) > 0 {
		yearsInactive = temporal.YearsBetween(history[0].Date, asOf)
	}
	penalty := p.cfg.InactivityPenalty(yearsInactive)

	prof := &model.Profile{
		Name:              f.Name,
		AsOf:              asOf,
		Stance:            f.Stance,
		YearsInactive:     yearsInactive,
		InactivityPenalty: penalty,
		RecentFights:      float64(len(recent)),
	}

	p.fillBasics(prof, f)
	p.fillRecentForm(prof, recent, asOf, penalty)
	p.fillStriking(prof, f, recent, penalty)
	p.fillGrappling(prof, f, recent, penalty)
	p.fillVulnerability(prof, recent)
	p.fillOpposition(prof, recent, asOf, penalty)

	prof.Sanitize()
	return prof
}

func (p *Profiler) fillBasics(prof *model.Profile, f model.Fighter) {
	w, l, d := normalize.Record(f.Record)
	prof.Wins, prof.Losses, prof.Draws = float64(w), float64(l), float64(d)
	prof.CareerFights = float64(w + l + d)
	if prof.CareerFights > 0 {
		prof.CareerWinPct = prof.Wins / prof.CareerFights
	}
	prof.HeightIn = normalize.Height(f.Height)
	prof.ReachIn = normalize.Number(f.Reach)
	prof.WeightLbs = normalize.Number(f.Weight)
	prof.RankScore = RankScore(f.Rank)
}

// fillRecentForm computes win-method rates over the recent window. Win-side
// rates carry the inactivity penalty; the loss side of the ledger is never
// inactivity-discounted.
func (p *Profiler) fillRecentForm(prof *model.Profile, recent []model.Bout, asOf time.Time, penalty float64) {
	if len(recent) == 0 {
		return
	}
	n := float64(len(recent))

	var koWins, subWins, decWins int
	var weightedWins, weightSum float64
	var minutes float64
	for _, b := range recent {
		w := p.cfg.RecencyWeight(b.Date, asOf)
		weightSum += w
		if b.Outcome == model.OutcomeWin {
			weightedWins += w
			switch model.ClassifyMethod(b.Method) {
			case model.MethodKO:
				koWins++
			case model.MethodSubmission:
				subWins++
			case model.MethodDecision:
				decWins++
			}
		}
		minutes += boutMinutes(b)
	}

	prof.KOWinRate = penalty * float64(koWins) / n
	prof.SubWinRate = penalty * float64(subWins) / n
	prof.DecisionWinRate = penalty * float64(decWins) / n
	prof.FinishRate = penalty * float64(koWins+subWins) / n
	if weightSum > 0 {
		prof.WeightedWinRate = penalty * weightedWins / weightSum
	}
	prof.AvgFightMinutes = minutes / n
}

func (p *Profiler) fillStriking(prof *model.Profile, f model.Fighter, recent []model.Bout, penalty float64) {
	slpm := normalize.Number(f.SLpM)
	sapm := normalize.Number(f.SApM)

	// Volume-type lifetime rates carry the penalty; accuracy and defense
	// ratios do not.
	prof.StrikesPerMin = penalty * slpm
	prof.StrikesAbsorbedPerMin = penalty * sapm
	prof.StrikeAccuracy = normalize.Percent(f.StrAcc)
	prof.StrikeDefense = normalize.Percent(f.StrDef)

	var landed, attempted, knockdowns int
	var head, body, leg int
	for _, b := range recent {
		l, a := normalize.OfCount(b.SigStr)
		landed += l
		attempted += a
		knockdowns += b.Knockdowns
		hl, _ := normalize.OfCount(b.HeadStr)
		bl, _ := normalize.OfCount(b.BodyStr)
		ll, _ := normalize.OfCount(b.LegStr)
		head += hl
		body += bl
		leg += ll
	}

	var kdRate float64
	if n := float64(len(recent)); n > 0 {
		prof.AvgStrikesLanded = penalty * float64(landed) / n
		prof.AvgStrikesAttempted = penalty * float64(attempted) / n
		kdRate = float64(knockdowns) / n
		prof.KnockdownRate = penalty * kdRate
	}
	if regional := head + body + leg; regional > 0 {
		prof.HeadStrikeShare = float64(head) / float64(regional)
		prof.BodyStrikeShare = float64(body) / float64(regional)
		prof.LegStrikeShare = float64(leg) / float64(regional)
	}

	// Style labels use the unpenalized rates: inactivity changes output,
	// not identity.
	prof.StrikingStyle = strikingStyle(slpm, prof.StrikeAccuracy, kdRate, prof.LegStrikeShare)
}

func (p *Profiler) fillGrappling(prof *model.Profile, f model.Fighter, recent []model.Bout, penalty float64) {
	tdAvg := normalize.Number(f.TDAvg)
	subAvg := normalize.Number(f.SubAvg)
	tdDef := normalize.Percent(f.TDDef)

	prof.TakedownAvg = penalty * tdAvg
	prof.SubAttemptAvg = penalty * subAvg
	prof.TakedownAccuracy = normalize.Percent(f.TDAcc)
	prof.TakedownDefense = tdDef

	var tdLanded, tdAttempted int
	var ctrlSeconds float64
	for _, b := range recent {
		l, a := normalize.OfCount(b.Takedowns)
		tdLanded += l
		tdAttempted += a
		ctrlSeconds += normalize.Clock(b.Ctrl)
	}
	if n := float64(len(recent)); n > 0 {
		prof.AvgTakedownsLanded = penalty * float64(tdLanded) / n
		prof.AvgTakedownsAttempted = penalty * float64(tdAttempted) / n
		prof.AvgControlSeconds = penalty * ctrlSeconds / n
	}

	prof.GrapplingStyle = grapplingStyle(tdAvg, subAvg, tdDef)
}

// fillVulnerability derives loss-composition statistics from the recent
// window. Requires minVulnerabilityBouts of qualifying history; with less,
// every field stays zero. Loss composition is not volume, so none of these
// carry the inactivity penalty.
func (p *Profiler) fillVulnerability(prof *model.Profile, recent []model.Bout) {
	if len(recent) < minVulnerabilityBouts {
		return
	}
	var losses, koLosses, subLosses, lateLosses int
	for _, b := range recent {
		if b.Outcome != model.OutcomeLoss {
			continue
		}
		losses++
		switch model.ClassifyMethod(b.Method) {
		case model.MethodKO:
			koLosses++
		case model.MethodSubmission:
			subLosses++
		}
		if b.Round >= 3 {
			lateLosses++
		}
	}
	if losses > 0 {
		prof.KOLossShare = float64(koLosses) / float64(losses)
		prof.SubLossShare = float64(subLosses) / float64(losses)
	}
	fade := 1.5 * float64(lateLosses) / float64(len(recent))
	if fade > 1.0 {
		fade = 1.0
	}
	prof.CardioFade = fade
}

// fillOpposition scores the quality of opposition faced in the recent
// window. The recency-weighted average carries the penalty; elite-win
// counts and loss quality never do.
func (p *Profiler) fillOpposition(prof *model.Profile, recent []model.Bout, asOf time.Time, penalty float64) {
	if len(recent) == 0 {
		return
	}
	qualities := make(map[string]float64)
	quality := func(name string) float64 {
		if q, ok := qualities[name]; ok {
			return q
		}
		q := p.opponentQuality(name)
		qualities[name] = q
		return q
	}

	var qSum, wSum float64
	var lossQSum, lossWSum float64
	var eliteWins int
	for _, b := range recent {
		q := quality(b.Opponent)
		w := p.cfg.RecencyWeight(b.Date, asOf)
		qSum += w * q
		wSum += w
		switch b.Outcome {
		case model.OutcomeWin:
			if q > eliteQualityThreshold {
				eliteWins++
			}
		case model.OutcomeLoss:
			lossQSum += w * q
			lossWSum += w
		}
	}
	if wSum > 0 {
		prof.AvgOppQuality = penalty * qSum / wSum
	}
	prof.EliteWins = float64(eliteWins)
	if lossWSum > 0 {
		prof.AvgLossQuality = lossQSum / lossWSum
	}
}

// opponentQuality blends rank, career win percentage, and experience into a
// [0, 1] score. Unknown opponents fall back to the unranked defaults.
func (p *Profiler) opponentQuality(name string) float64 {
	opp, ok := p.fighters[name]
	var winPct, experience float64
	rank := unrankedScore
	if ok {
		w, l, d := normalize.Record(opp.Record)
		total := float64(w + l + d)
		if total > 0 {
			winPct = float64(w) / total
		}
		experience = total / 25.0
		if experience > 1 {
			experience = 1
		}
		rank = RankScore(opp.Rank)
	}
	q := 0.5*rank + 0.3*winPct + 0.2*experience
	if q < 0 {
		return 0
	}
	if q > 1 {
		return 1
	}
	return q
}

// boutMinutes estimates a bout's duration from the final round number and
// the final-round clock.
func boutMinutes(b model.Bout) float64 {
	completed := float64(b.Round - 1)
	if completed < 0 {
		completed = 0
	}
	return completed*roundMinutes + normalize.Clock(b.Time)/60
}
