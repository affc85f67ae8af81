package analytics

import (
	"fmt"
	"strings"
	"time"

	"github.com/meltforce/liftsight/internal/models"
)

// InsightCategory buckets insights for display styling.
type InsightCategory string

const (
	CategoryMotivation InsightCategory = "motivation"
	CategoryForm       InsightCategory = "form"
	CategoryRest       InsightCategory = "rest"
	CategoryDefault    InsightCategory = "default"
)

// Insight is a single rule-generated observation. ID is stable across
// recomputes so consumers can deduplicate and dismiss without flicker.
type Insight struct {
	ID       string          `json:"id"`
	Category InsightCategory `json:"category"`
	Text     string          `json:"text"`
}

// InsightContext carries the aggregates the rule table inspects.
// Split may be nil (no split configured); a malformed stored config
// must be degraded to nil by the caller before reaching the engine.
type InsightContext struct {
	Groups        map[string]*MuscleGroupStat
	SelectedGroup string
	Split         *models.SplitConfig
	Now           time.Time
	TodayVolume   float64
}

// maxInsights caps how many insights one pass returns.
const maxInsights = 2

// lowVolumeThreshold is the daily volume below which the low-volume
// nudge (or its rest-day substitute) fires.
const lowVolumeThreshold = 500

// Push/pull/legs buckets for the balance rule.
var (
	pushGroups = []string{"chest", "shoulders", "triceps"}
	pullGroups = []string{"back", "biceps", "forearms"}
	legGroups  = []string{"legs"}
)

// GenerateInsights runs the fixed rule table against ctx and returns
// at most two insights. Rules run in a fixed sequence and each may
// stage at most one insight (the push/pull/legs rule may additionally
// stage the legs insight); priority is purely evaluation order, so the
// first two staged insights win.
func GenerateInsights(ctx InsightContext) []Insight {
	set := newInsightSet()

	ruleImbalance(ctx, set)
	rulePushPullBalance(ctx, set)
	ruleTrend(ctx, set)
	ruleFrequencySkew(ctx, set)
	ruleDailyVolume(ctx, set)

	return set.first(maxInsights)
}

// insightSet is an insertion-ordered set keyed by insight id.
type insightSet struct {
	seen  map[string]struct{}
	order []Insight
}

func newInsightSet() *insightSet {
	return &insightSet{seen: make(map[string]struct{})}
}

func (s *insightSet) add(in Insight) {
	if _, dup := s.seen[in.ID]; dup {
		return
	}
	s.seen[in.ID] = struct{}{}
	s.order = append(s.order, in)
}

func (s *insightSet) first(n int) []Insight {
	if len(s.order) <= n {
		return s.order
	}
	return s.order[:n]
}

// activeGroups returns the groups with nonzero volume.
func activeGroups(groups map[string]*MuscleGroupStat) map[string]*MuscleGroupStat {
	out := make(map[string]*MuscleGroupStat, len(groups))
	for name, stat := range groups {
		if stat.TotalVolume > 0 {
			out[name] = stat
		}
	}
	return out
}

// ruleImbalance compares the dominant and weakest groups. A ratio
// above 3 is a strong imbalance; above 2, moderate. At most one fires.
func ruleImbalance(ctx InsightContext, set *insightSet) {
	active := activeGroups(ctx.Groups)
	if len(active) < 3 {
		return
	}

	var maxName, minName string
	var maxVol, minVol float64
	for name, stat := range active {
		if maxName == "" {
			maxName, maxVol = name, stat.TotalVolume
			minName, minVol = name, stat.TotalVolume
			continue
		}
		if stat.TotalVolume > maxVol || (stat.TotalVolume == maxVol && name < maxName) {
			maxName, maxVol = name, stat.TotalVolume
		}
		if stat.TotalVolume < minVol || (stat.TotalVolume == minVol && name < minName) {
			minName, minVol = name, stat.TotalVolume
		}
	}
	if minVol == 0 {
		return
	}

	ratio := maxVol / minVol
	switch {
	case ratio > 3:
		set.add(Insight{
			ID:       "imbalance_strong",
			Category: CategoryForm,
			Text: fmt.Sprintf("Strong imbalance: %s gets %.1fx the volume of %s. Consider adding %s work.",
				maxName, ratio, minName, minName),
		})
	case ratio > 2:
		set.add(Insight{
			ID:       "imbalance_moderate",
			Category: CategoryForm,
			Text: fmt.Sprintf("Moderate imbalance between %s and %s (%.1fx). Keep an eye on %s volume.",
				maxName, minName, ratio, minName),
		})
	}
}

// rulePushPullBalance checks push/pull share of combined volume, and
// independently whether legs fall below a 20%% share. The legs insight
// can co-fire with a push or pull insight.
func rulePushPullBalance(ctx InsightContext, set *insightSet) {
	active := activeGroups(ctx.Groups)
	if len(active) < 4 {
		return
	}

	sum := func(names []string) float64 {
		var total float64
		for _, n := range names {
			if stat, ok := active[n]; ok {
				total += stat.TotalVolume
			}
		}
		return total
	}

	pushVol := sum(pushGroups)
	pullVol := sum(pullGroups)
	legVol := sum(legGroups)
	combined := pushVol + pullVol + legVol
	if combined == 0 {
		return
	}

	pushPct := pushVol / combined * 100
	pullPct := pullVol / combined * 100
	legPct := legVol / combined * 100

	if pushPct > 40 && pullPct < 30 {
		set.add(Insight{
			ID:       "push_heavy",
			Category: CategoryForm,
			Text: fmt.Sprintf("Push volume (%.0f%%) is far ahead of pull (%.0f%%). Add rows or pull-ups to balance.",
				pushPct, pullPct),
		})
	} else if pullPct > 40 && pushPct < 30 {
		set.add(Insight{
			ID:       "pull_heavy",
			Category: CategoryForm,
			Text: fmt.Sprintf("Pull volume (%.0f%%) is far ahead of push (%.0f%%). Add pressing work to balance.",
				pullPct, pushPct),
		})
	}

	if legPct < 20 && combined > 5000 {
		set.add(Insight{
			ID:       "legs_underdeveloped",
			Category: CategoryForm,
			Text:     fmt.Sprintf("Legs are only %.0f%% of your training volume. Don't skip leg day.", legPct),
		})
	}
}

// ruleTrend compares the most recent session of the selected group
// against the 4th-most-recent. Only the first matching branch fires.
func ruleTrend(ctx InsightContext, set *insightSet) {
	if ctx.SelectedGroup == "" {
		return
	}
	stat, ok := ctx.Groups[strings.ToLower(ctx.SelectedGroup)]
	if !ok || len(stat.Sessions) < 4 {
		return
	}

	recent := stat.Sessions[len(stat.Sessions)-1]
	earlier := stat.Sessions[len(stat.Sessions)-4]

	switch {
	case recent.Volume > earlier.Volume:
		set.add(Insight{
			ID:       "trend_volume_up",
			Category: CategoryMotivation,
			Text: fmt.Sprintf("%s volume is up %.0f%% over your last four sessions. Keep it going.",
				ctx.SelectedGroup, pctChange(earlier.Volume, recent.Volume)),
		})
	case recent.MaxWeight > earlier.MaxWeight:
		set.add(Insight{
			ID:       "trend_weight_up",
			Category: CategoryMotivation,
			Text: fmt.Sprintf("New territory: %s max weight is up %.1fkg over four sessions.",
				ctx.SelectedGroup, recent.MaxWeight-earlier.MaxWeight),
		})
	case earlier.Volume > 0 && recent.Volume < 0.8*earlier.Volume:
		set.add(Insight{
			ID:       "trend_volume_down",
			Category: CategoryForm,
			Text: fmt.Sprintf("%s volume is down %.0f%% over four sessions. Check your recovery.",
				ctx.SelectedGroup, -pctChange(earlier.Volume, recent.Volume)),
		})
	}
}

// ruleFrequencySkew flags a gap of more than 5 sessions between the
// most- and least-trained groups.
func ruleFrequencySkew(ctx InsightContext, set *insightSet) {
	active := activeGroups(ctx.Groups)
	if len(active) < 2 {
		return
	}

	var maxName, minName string
	maxSessions, minSessions := -1, -1
	for name, stat := range active {
		n := len(stat.Sessions)
		if maxSessions == -1 || n > maxSessions || (n == maxSessions && name < maxName) {
			maxName, maxSessions = name, n
		}
		if minSessions == -1 || n < minSessions || (n == minSessions && name < minName) {
			minName, minSessions = name, n
		}
	}

	if maxSessions-minSessions > 5 {
		set.add(Insight{
			ID:       "frequency_skew",
			Category: CategoryDefault,
			Text: fmt.Sprintf("You've trained %s %d times but %s only %d. A little more balance could help.",
				maxName, maxSessions, minName, minSessions),
		})
	}
}

// ruleDailyVolume nudges on a low-volume day. When today is a planned
// rest day in the split configuration, a rest message replaces the
// generic nudge; never both.
func ruleDailyVolume(ctx InsightContext, set *insightSet) {
	if ctx.TodayVolume >= lowVolumeThreshold {
		return
	}

	if _, schedule, ok := ctx.Split.Resolve(); ok {
		entry, found := schedule[isoWeekday(ctx.Now)]
		if found && (strings.EqualFold(entry.Name, "Rest") || len(entry.Muscles) == 0) {
			set.add(Insight{
				ID:       "rest_day",
				Category: CategoryRest,
				Text:     "Today is a planned rest day. Recovery is where the growth happens.",
			})
			return
		}
	}

	set.add(Insight{
		ID:       "low_volume",
		Category: CategoryMotivation,
		Text:     "Not much logged today. Even a short session keeps the streak alive.",
	})
}

// pctChange returns the percentage change from prev to cur, or 0 when
// prev is zero.
func pctChange(prev, cur float64) float64 {
	if prev == 0 {
		return 0
	}
	return (cur - prev) / prev * 100
}
