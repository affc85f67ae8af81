package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/meltforce/liftsight/internal/analytics"
	"github.com/meltforce/liftsight/internal/models"
)

type ingestPayload struct {
	Workouts []models.Workout `json:"workouts"`
}

type ingestResult struct {
	Received int   `json:"received"`
	Inserted int64 `json:"inserted"`
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var payload ingestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	uid := userIDFromContext(r)
	for i := range payload.Workouts {
		payload.Workouts[i].UserID = uid
	}

	inserted, err := s.db.InsertWorkouts(r.Context(), payload.Workouts)
	if err != nil {
		s.log.Error("ingest error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, ingestResult{Received: len(payload.Workouts), Inserted: inserted})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userInfoFromContext(r))
}

func (s *Server) handleQueryWorkouts(w http.ResponseWriter, r *http.Request) {
	workouts, spec, ok := s.workoutsForRange(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"range":    spec.Label(),
		"workouts": workouts,
	})
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	workoutID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout ID"})
		return
	}

	detail, err := s.db.GetWorkout(r.Context(), workoutID, userIDFromContext(r))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleMuscleGroups(w http.ResponseWriter, r *http.Request) {
	workouts, spec, ok := s.workoutsForRange(w, r)
	if !ok {
		return
	}

	stats := analytics.AggregateMuscleGroups(workouts)
	writeJSON(w, http.StatusOK, map[string]any{
		"range":  spec.Label(),
		"groups": analytics.RankMuscleGroups(stats),
	})
}

func (s *Server) handleSplitComparison(w http.ResponseWriter, r *http.Request) {
	workouts, spec, ok := s.workoutsForRange(w, r)
	if !ok {
		return
	}

	cfg, err := s.db.GetSplitConfig(r.Context(), userIDFromContext(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	result := analytics.AggregateSplit(workouts, cfg)
	writeJSON(w, http.StatusOK, map[string]any{
		"range":  spec.Label(),
		"groups": result.Ranked(),
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	workouts, spec, ok := s.workoutsForRange(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"range":         spec.Label(),
		"workout_count": len(workouts),
		"metrics":       analytics.AggregateWorkouts(workouts),
	})
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	workouts, _, ok := s.workoutsForRange(w, r)
	if !ok {
		return
	}

	uid := userIDFromContext(r)
	cfg, err := s.db.GetSplitConfig(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	now := time.Now()
	today := analytics.FilterByRange(workouts, analytics.RangeSpec{Kind: analytics.RangeToday}, now)

	insights := analytics.GenerateInsights(analytics.InsightContext{
		Groups:        analytics.AggregateMuscleGroups(workouts),
		SelectedGroup: r.URL.Query().Get("group"),
		Split:         cfg,
		Now:           now,
		TodayVolume:   analytics.AggregateWorkouts(today).TotalVolume,
	})

	if s.insights.Enabled() {
		insights = s.insights.RephraseAll(r.Context(), insights)
	}

	writeJSON(w, http.StatusOK, map[string]any{"insights": insights})
}

func (s *Server) handleGetSplitConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.db.GetSplitConfig(r.Context(), userIDFromContext(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if cfg == nil {
		cfg = &models.SplitConfig{Type: models.SplitNone}
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) handlePutSplitConfig(w http.ResponseWriter, r *http.Request) {
	var cfg models.SplitConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	if _, _, ok := cfg.Resolve(); !ok && cfg.Type != models.SplitNone && cfg.Type != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown split type or empty schedule"})
		return
	}

	if err := s.db.SetSplitConfig(r.Context(), userIDFromContext(r), &cfg); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.GetDataStats(r.Context(), userIDFromContext(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// workoutsForRange parses the range selection, loads a covering window
// from storage, and applies the exact in-memory filter. On failure the
// error response has already been written and ok is false.
func (s *Server) workoutsForRange(w http.ResponseWriter, r *http.Request) ([]models.Workout, analytics.RangeSpec, bool) {
	spec, err := parseRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return nil, spec, false
	}

	now := time.Now()
	start, end := queryWindow(spec, now)
	workouts, err := s.db.QueryWorkouts(r.Context(), start, end, userIDFromContext(r))
	if err != nil {
		s.log.Error("loading workouts", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return nil, spec, false
	}
	return analytics.FilterByRange(workouts, spec, now), spec, true
}

// parseRange reads the range selection from query params:
// range=today|7d|30d|90d or date=YYYY-MM-DD. Defaults to the last 7
// days.
func parseRange(r *http.Request) (analytics.RangeSpec, error) {
	if d := r.URL.Query().Get("date"); d != "" {
		date, err := time.Parse("2006-01-02", d)
		if err != nil {
			return analytics.RangeSpec{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", d)
		}
		return analytics.RangeSpec{Kind: analytics.RangeSpecificDate, Date: date}, nil
	}

	switch r.URL.Query().Get("range") {
	case "", "7d":
		return analytics.LastNDays(7), nil
	case "today":
		return analytics.RangeSpec{Kind: analytics.RangeToday}, nil
	case "30d":
		return analytics.LastNDays(30), nil
	case "90d":
		return analytics.LastNDays(90), nil
	default:
		return analytics.RangeSpec{}, fmt.Errorf("invalid range %q, want today|7d|30d|90d", r.URL.Query().Get("range"))
	}
}

// queryWindow widens a RangeSpec into a [start, end) window for the
// database query. The precise filter runs in memory afterwards.
func queryWindow(spec analytics.RangeSpec, now time.Time) (time.Time, time.Time) {
	switch spec.Kind {
	case analytics.RangeToday:
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 0, 1)
	case analytics.RangeSpecificDate:
		d := spec.Date
		start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
		return start, start.AddDate(0, 0, 1)
	default:
		return now.AddDate(0, 0, -spec.Days), now.AddDate(0, 0, 1)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
