package analytics

import (
	"strings"
	"testing"
	"time"

	"github.com/meltforce/liftsight/internal/models"
)

func groupStat(volume float64, sessionVolumes ...float64) *MuscleGroupStat {
	stat := &MuscleGroupStat{TotalVolume: volume}
	base := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
	for i, v := range sessionVolumes {
		stat.Sessions = append(stat.Sessions, &SessionStat{
			Date:   base.AddDate(0, 0, i*2),
			Volume: v,
		})
	}
	return stat
}

func TestGenerateInsightsCapAndOrder(t *testing.T) {
	// A context satisfying many rules at once: strong imbalance,
	// push-heavy, legs underdeveloped, rising trend, frequency skew,
	// and an empty day.
	ctx := InsightContext{
		Groups: map[string]*MuscleGroupStat{
			"chest": groupStat(10000, 1000, 1200, 1100, 1300, 1400, 1500, 1600),
			"back":  groupStat(1000, 1000),
			"legs":  groupStat(500, 500),
			"shoulders": groupStat(2000, 1000, 1000),
		},
		SelectedGroup: "chest",
		Now:           time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC),
		TodayVolume:   0,
	}

	insights := GenerateInsights(ctx)
	if len(insights) != 2 {
		t.Fatalf("got %d insights, want exactly 2", len(insights))
	}
	if insights[0].ID != "imbalance_strong" {
		t.Errorf("first insight = %q, want imbalance_strong", insights[0].ID)
	}
	if insights[1].ID != "push_heavy" {
		t.Errorf("second insight = %q, want push_heavy", insights[1].ID)
	}
}

// TestImbalanceBoundary pins the exclusive boundary: a max/min ratio
// of exactly 3.0 is moderate, not strong.
func TestImbalanceBoundary(t *testing.T) {
	tests := []struct {
		name    string
		volumes [3]float64
		wantID  string
	}{
		{"ratio exactly 3 is moderate", [3]float64{300, 150, 100}, "imbalance_moderate"},
		{"ratio above 3 is strong", [3]float64{301, 150, 100}, "imbalance_strong"},
		{"ratio exactly 2 fires nothing", [3]float64{200, 150, 100}, ""},
		{"ratio above 2 is moderate", [3]float64{201, 150, 100}, "imbalance_moderate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := newInsightSet()
			ruleImbalance(InsightContext{Groups: map[string]*MuscleGroupStat{
				"chest": {TotalVolume: tt.volumes[0]},
				"back":  {TotalVolume: tt.volumes[1]},
				"legs":  {TotalVolume: tt.volumes[2]},
			}}, set)

			if tt.wantID == "" {
				if len(set.order) != 0 {
					t.Fatalf("expected no insight, got %v", set.order)
				}
				return
			}
			if len(set.order) != 1 || set.order[0].ID != tt.wantID {
				t.Fatalf("got %v, want single %s", set.order, tt.wantID)
			}
		})
	}
}

func TestImbalanceNeedsThreeGroups(t *testing.T) {
	set := newInsightSet()
	ruleImbalance(InsightContext{Groups: map[string]*MuscleGroupStat{
		"chest": {TotalVolume: 300},
		"back":  {TotalVolume: 100},
	}}, set)
	if len(set.order) != 0 {
		t.Errorf("imbalance fired with only two groups: %v", set.order)
	}
}

func TestPushPullBalanceRule(t *testing.T) {
	tests := []struct {
		name    string
		groups  map[string]*MuscleGroupStat
		wantIDs []string
	}{
		{
			name: "push heavy",
			groups: map[string]*MuscleGroupStat{
				"chest": {TotalVolume: 3000}, "shoulders": {TotalVolume: 1500},
				"back": {TotalVolume: 1000}, "legs": {TotalVolume: 4500},
			},
			// push 45%, pull 10%, legs 45%: push-heavy only
			wantIDs: []string{"push_heavy"},
		},
		{
			name: "pull heavy",
			groups: map[string]*MuscleGroupStat{
				"back": {TotalVolume: 3000}, "biceps": {TotalVolume: 1500},
				"chest": {TotalVolume: 1000}, "legs": {TotalVolume: 4500},
			},
			wantIDs: []string{"pull_heavy"},
		},
		{
			name: "legs insight co-fires",
			groups: map[string]*MuscleGroupStat{
				"chest": {TotalVolume: 5000}, "shoulders": {TotalVolume: 1000},
				"back": {TotalVolume: 1500}, "legs": {TotalVolume: 1000},
			},
			// combined 8500: push 70.6%, pull 17.6%, legs 11.8%
			wantIDs: []string{"push_heavy", "legs_underdeveloped"},
		},
		{
			name: "legs fine under small combined volume",
			groups: map[string]*MuscleGroupStat{
				"chest": {TotalVolume: 1000}, "shoulders": {TotalVolume: 500},
				"back": {TotalVolume: 1400}, "legs": {TotalVolume: 100},
			},
			// legs 3% but combined 3000 <= 5000: no legs insight
			wantIDs: []string{},
		},
		{
			name: "fewer than four groups",
			groups: map[string]*MuscleGroupStat{
				"chest": {TotalVolume: 9000}, "back": {TotalVolume: 100},
				"legs": {TotalVolume: 100},
			},
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := newInsightSet()
			rulePushPullBalance(InsightContext{Groups: tt.groups}, set)

			var got []string
			for _, in := range set.order {
				got = append(got, in.ID)
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %v, want %v", got, tt.wantIDs)
			}
			for i := range got {
				if got[i] != tt.wantIDs[i] {
					t.Fatalf("got %v, want %v", got, tt.wantIDs)
				}
			}
		})
	}
}

func TestTrendRuleBranches(t *testing.T) {
	sessions := func(volumes []float64, weights []float64) []*SessionStat {
		out := make([]*SessionStat, len(volumes))
		base := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
		for i := range volumes {
			out[i] = &SessionStat{
				Date:      base.AddDate(0, 0, i*2),
				Volume:    volumes[i],
				MaxWeight: weights[i],
			}
		}
		return out
	}

	tests := []struct {
		name    string
		volumes []float64
		weights []float64
		wantID  string
	}{
		{"volume up wins first", []float64{1000, 900, 950, 1200}, []float64{100, 100, 100, 110}, "trend_volume_up"},
		{"weight up when volume flat", []float64{1000, 900, 950, 1000}, []float64{100, 100, 100, 105}, "trend_weight_up"},
		{"volume down below 80 percent", []float64{1000, 900, 950, 700}, []float64{100, 100, 100, 100}, "trend_volume_down"},
		{"small dip fires nothing", []float64{1000, 900, 950, 900}, []float64{100, 100, 100, 100}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := newInsightSet()
			ruleTrend(InsightContext{
				SelectedGroup: "chest",
				Groups: map[string]*MuscleGroupStat{
					"chest": {TotalVolume: 4000, Sessions: sessions(tt.volumes, tt.weights)},
				},
			}, set)

			if tt.wantID == "" {
				if len(set.order) != 0 {
					t.Fatalf("expected no insight, got %v", set.order)
				}
				return
			}
			if len(set.order) != 1 || set.order[0].ID != tt.wantID {
				t.Fatalf("got %v, want single %s", set.order, tt.wantID)
			}
		})
	}
}

func TestTrendRuleNeedsFourSessions(t *testing.T) {
	set := newInsightSet()
	ruleTrend(InsightContext{
		SelectedGroup: "chest",
		Groups: map[string]*MuscleGroupStat{
			"chest": groupStat(3000, 900, 1000, 1200),
		},
	}, set)
	if len(set.order) != 0 {
		t.Errorf("trend fired with three sessions: %v", set.order)
	}
}

func TestFrequencySkewRule(t *testing.T) {
	set := newInsightSet()
	ruleFrequencySkew(InsightContext{Groups: map[string]*MuscleGroupStat{
		"chest": groupStat(7000, 1000, 1000, 1000, 1000, 1000, 1000, 1000),
		"legs":  groupStat(1000, 1000),
	}}, set)

	if len(set.order) != 1 || set.order[0].ID != "frequency_skew" {
		t.Fatalf("got %v, want frequency_skew", set.order)
	}
	if !strings.Contains(set.order[0].Text, "chest") || !strings.Contains(set.order[0].Text, "legs") {
		t.Errorf("skew text should name both groups: %q", set.order[0].Text)
	}

	// Gap of exactly 5 does not fire.
	set = newInsightSet()
	ruleFrequencySkew(InsightContext{Groups: map[string]*MuscleGroupStat{
		"chest": groupStat(6000, 1000, 1000, 1000, 1000, 1000, 1000),
		"legs":  groupStat(1000, 1000),
	}}, set)
	if len(set.order) != 0 {
		t.Errorf("skew fired at a gap of exactly 5: %v", set.order)
	}
}

// TestRestDayOverride verifies the rest message replaces the generic
// low-volume nudge instead of adding to it.
func TestRestDayOverride(t *testing.T) {
	sunday := time.Date(2025, 6, 22, 9, 0, 0, 0, time.UTC)

	restCfg := &models.SplitConfig{
		Type: models.SplitCustom,
		CustomSplit: &models.CustomSplit{
			Name: "My Split",
			Schedule: map[int]models.SplitDay{
				7: {Name: "Rest"},
			},
		},
	}

	tests := []struct {
		name   string
		split  *models.SplitConfig
		wantID string
	}{
		{"rest day substitutes", restCfg, "rest_day"},
		{"no split gives generic nudge", nil, "low_volume"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := newInsightSet()
			ruleDailyVolume(InsightContext{Split: tt.split, Now: sunday, TodayVolume: 0}, set)
			if len(set.order) != 1 || set.order[0].ID != tt.wantID {
				t.Fatalf("got %v, want single %s", set.order, tt.wantID)
			}
		})
	}

	// Plenty of volume today: neither message.
	set := newInsightSet()
	ruleDailyVolume(InsightContext{Split: restCfg, Now: sunday, TodayVolume: 5000}, set)
	if len(set.order) != 0 {
		t.Errorf("daily volume rule fired despite high volume: %v", set.order)
	}
}

func TestInsightSetDeduplicates(t *testing.T) {
	set := newInsightSet()
	set.add(Insight{ID: "a", Text: "first"})
	set.add(Insight{ID: "b", Text: "second"})
	set.add(Insight{ID: "a", Text: "duplicate"})

	if len(set.order) != 2 {
		t.Fatalf("set has %d insights, want 2", len(set.order))
	}
	if set.order[0].Text != "first" {
		t.Error("duplicate add replaced the original insight")
	}
}

// TestGenerateInsightsEmptyContext: an empty context still produces a
// well-formed result (the low-volume nudge), never a nil panic.
func TestGenerateInsightsEmptyContext(t *testing.T) {
	insights := GenerateInsights(InsightContext{Now: time.Now()})
	if len(insights) != 1 || insights[0].ID != "low_volume" {
		t.Errorf("empty context insights = %v, want just low_volume", insights)
	}
}
