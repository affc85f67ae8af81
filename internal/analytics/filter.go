package analytics

import (
	"fmt"
	"time"

	"github.com/meltforce/liftsight/internal/models"
)

// RangeKind selects how a RangeSpec filters workouts.
type RangeKind string

const (
	RangeToday        RangeKind = "today"
	RangeSpecificDate RangeKind = "specificDate"
	RangeLastNDays    RangeKind = "lastNDays"
)

// RangeSpec describes a date selection. Date is used by specificDate,
// Days by lastNDays.
type RangeSpec struct {
	Kind RangeKind
	Date time.Time
	Days int
}

// LastNDays is a convenience constructor for rolling windows.
func LastNDays(n int) RangeSpec {
	return RangeSpec{Kind: RangeLastNDays, Days: n}
}

// FilterByRange returns the workouts matching spec, evaluated against
// now. The input slice is never mutated or reordered; the result is a
// fresh slice preserving input order.
//
//   - today: workouts on the same calendar day as now (local time).
//   - specificDate: workouts on the same calendar day as spec.Date.
//   - lastNDays: workouts dated at or after now minus n days. The
//     boundary is inclusive, so a workout stamped exactly now is kept
//     even for n=0.
func FilterByRange(workouts []models.Workout, spec RangeSpec, now time.Time) []models.Workout {
	out := make([]models.Workout, 0, len(workouts))
	switch spec.Kind {
	case RangeToday:
		for _, w := range workouts {
			if sameDay(w.Date, now) {
				out = append(out, w)
			}
		}
	case RangeSpecificDate:
		for _, w := range workouts {
			if sameDay(w.Date, spec.Date) {
				out = append(out, w)
			}
		}
	case RangeLastNDays:
		cutoff := now.AddDate(0, 0, -spec.Days)
		for _, w := range workouts {
			if !w.Date.Before(cutoff) {
				out = append(out, w)
			}
		}
	}
	return out
}

// Label renders the range for display, e.g. "Today", "Jan 2, 2006",
// or "Last 7 days".
func (r RangeSpec) Label() string {
	switch r.Kind {
	case RangeToday:
		return "Today"
	case RangeSpecificDate:
		return r.Date.Format("Jan 2, 2006")
	case RangeLastNDays:
		if r.Days == 1 {
			return "Last day"
		}
		return fmt.Sprintf("Last %d days", r.Days)
	}
	return ""
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
