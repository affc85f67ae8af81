package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/liftsight/internal/analytics"
)

// defaultTimeRange returns start/end defaulting to the last 7 days.
func defaultTimeRange(startStr, endStr string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		end = time.Now()
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = end.AddDate(0, 0, -7)
	}

	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

// --- Tool definitions ---

var toolGetWorkouts = mcp.NewTool("get_workouts",
	mcp.WithDescription("Query logged workouts. Returns full workout detail including exercises and individual sets (weight, reps, difficulty)."),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to 7 days ago.")),
	mcp.WithString("end", mcp.Description("End date (ISO 8601 or YYYY-MM-DD). Defaults to now.")),
)

var toolGetMuscleGroupStats = mcp.NewTool("get_muscle_group_stats",
	mcp.WithDescription("Per-muscle-group training volume, sets, reps, and max weight, with a per-day session timeline. Groups are ranked by total volume."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 30 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
	mcp.WithString("group", mcp.Description("Return only this muscle group (e.g. 'chest', 'back', 'legs')")),
)

var toolGetSplitComparison = mcp.NewTool("get_split_comparison",
	mcp.WithDescription("Compare training days against the configured split (or plain weekdays when none is set). Returns per-day totals, per-session averages, and max weights."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 30 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
)

var toolGetTrainingSummary = mcp.NewTool("get_training_summary",
	mcp.WithDescription("Aggregate totals for a time range: volume, sets, reps, max weight, and average intensity across all workouts."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 7 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
)

var toolGetInsights = mcp.NewTool("get_insights",
	mcp.WithDescription("Rule-based training insights: muscle balance, push/pull ratio, volume trends, and frequency skew. Returns at most two insights."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 30 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
	mcp.WithString("group", mcp.Description("Muscle group to focus trend analysis on")),
)

// --- Tool handlers ---

// analysisTimeRange is defaultTimeRange with a 30-day default window,
// used by the tools that need enough history for trends.
func analysisTimeRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, end, err := defaultTimeRange(startStr, endStr)
	if err != nil {
		return start, end, err
	}
	if startStr == "" {
		start = end.AddDate(0, 0, -30)
	}
	return start, end, nil
}

func (h *handlers) getWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	uid := UserIDFromContext(ctx)
	workouts, err := h.ds.QueryWorkouts(ctx, start, end, uid)
	if err != nil {
		h.log.Error("mcp get_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(workouts)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getMuscleGroupStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := analysisTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	uid := UserIDFromContext(ctx)
	workouts, err := h.ds.QueryWorkouts(ctx, start, end, uid)
	if err != nil {
		h.log.Error("mcp get_muscle_group_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	stats := analytics.AggregateMuscleGroups(workouts)

	if group := req.GetString("group", ""); group != "" {
		stat, ok := stats[group]
		if !ok {
			return mcp.NewToolResultError("no data for muscle group " + group), nil
		}
		result, err := mcp.NewToolResultJSON(map[string]any{"name": group, "stats": stat})
		if err != nil {
			return mcp.NewToolResultError("serialization failed"), nil
		}
		return result, nil
	}

	result, err := mcp.NewToolResultJSON(analytics.RankMuscleGroups(stats))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSplitComparison(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := analysisTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	uid := UserIDFromContext(ctx)
	workouts, err := h.ds.QueryWorkouts(ctx, start, end, uid)
	if err != nil {
		h.log.Error("mcp get_split_comparison", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	cfg, err := h.ds.GetSplitConfig(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_split_comparison config", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(analytics.AggregateSplit(workouts, cfg).Ranked())
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getTrainingSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	uid := UserIDFromContext(ctx)
	workouts, err := h.ds.QueryWorkouts(ctx, start, end, uid)
	if err != nil {
		h.log.Error("mcp get_training_summary", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"workout_count": len(workouts),
		"metrics":       analytics.AggregateWorkouts(workouts),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getInsights(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := analysisTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	uid := UserIDFromContext(ctx)
	workouts, err := h.ds.QueryWorkouts(ctx, start, end, uid)
	if err != nil {
		h.log.Error("mcp get_insights", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	cfg, err := h.ds.GetSplitConfig(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_insights config", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	now := time.Now()
	today := analytics.FilterByRange(workouts, analytics.RangeSpec{Kind: analytics.RangeToday}, now)

	insights := analytics.GenerateInsights(analytics.InsightContext{
		Groups:        analytics.AggregateMuscleGroups(workouts),
		SelectedGroup: req.GetString("group", ""),
		Split:         cfg,
		Now:           now,
		TodayVolume:   analytics.AggregateWorkouts(today).TotalVolume,
	})

	result, err := mcp.NewToolResultJSON(insights)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
