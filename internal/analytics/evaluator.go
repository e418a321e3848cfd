package analytics

import (
	"errors"
	"fmt"
	"time"

	"github.com/Dias221467/HealthMetrics_Tracker/internal/models"
)

// PeriodWindow is the concrete instance of a goal period containing today.
// Start and End are inclusive calendar dates.
type PeriodWindow struct {
	Start time.Time
	End   time.Time
}

// Finished reports whether the window has closed as of today. A goal that
// is under target must stay ON_TRACK until then.
func (w PeriodWindow) Finished(today time.Time) bool {
	return !models.Day(today).Before(w.End)
}

// CurrentPeriod computes the period window containing today for a goal that
// started on goalStart:
//
//   - DAILY: [today, today].
//   - WEEKLY: the trailing 7-day window [today-6, today]. When the goal
//     started inside that window the start is clamped to the start date and
//     the end moves forward, keeping the window 7 days long.
//   - MONTHLY: the calendar month containing today, start clamped to the
//     goal's start date.
//
// A goal never claims progress before it existed.
func CurrentPeriod(kind models.PeriodKind, goalStart, today time.Time) (PeriodWindow, error) {
	day := models.Day(today)
	start := models.Day(goalStart)

	switch kind {
	case models.PeriodDaily:
		return PeriodWindow{Start: day, End: day}, nil
	case models.PeriodWeekly:
		w := PeriodWindow{Start: day.AddDate(0, 0, -6), End: day}
		if start.After(w.Start) {
			w.Start = start
			w.End = start.AddDate(0, 0, 6)
		}
		return w, nil
	case models.PeriodMonthly:
		w := PeriodWindow{
			Start: time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(day.Year(), day.Month()+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1),
		}
		if start.After(w.Start) {
			w.Start = start
		}
		return w, nil
	}
	return PeriodWindow{}, fmt.Errorf("period kind %q: %w", kind, ErrInvalidGoalConfig)
}

// ObservationRange is the half-open date range of observations relevant to
// the window as of today. The window end may lie in the future; progress is
// never aggregated past today.
func (w PeriodWindow) ObservationRange(today time.Time) models.DateRange {
	end := models.Day(today)
	if w.End.Before(end) {
		end = w.End
	}
	return models.DateRange{Start: w.Start, End: end.AddDate(0, 0, 1)}
}

// Evaluate derives a goal's progress for its current period. It is a pure
// function of the goal, the observation slice, today, and the maintain
// tolerance: it never reads the wall clock and holds no state, so identical
// inputs always produce identical output.
//
// Goal enumerations and target are re-checked on every call even though the
// store validates them at creation; goals are long-lived and the enumeration
// set could drift underneath a stored document.
func Evaluate(goal models.Goal, observations []models.Observation, mt models.MetricType, today time.Time, tolerance float64) (models.GoalProgress, error) {
	if goal.TargetValue <= 0 {
		return models.GoalProgress{}, fmt.Errorf("target %v: %w", goal.TargetValue, ErrInvalidGoalConfig)
	}
	if !goal.Direction.Valid() {
		return models.GoalProgress{}, fmt.Errorf("direction %q: %w", goal.Direction, ErrInvalidGoalConfig)
	}

	window, err := CurrentPeriod(goal.Period, goal.StartDate, today)
	if err != nil {
		return models.GoalProgress{}, err
	}

	progress := models.GoalProgress{
		GoalID:      goal.ID,
		MetricType:  mt.Name,
		Unit:        mt.Unit,
		PeriodStart: window.Start,
		PeriodEnd:   window.End,
		Target:      goal.TargetValue,
		Direction:   goal.Direction,
		Precision:   mt.Precision,
	}

	// Terminal states short-circuit aggregation entirely.
	if !goal.Active {
		progress.Status = models.StatusInactive
		return progress, nil
	}
	if goal.Expired(today) {
		progress.Status = models.StatusExpired
		return progress, nil
	}

	slice := FilterRange(observations, window.ObservationRange(today))
	summary, err := Summarize(slice, mt)
	if err != nil && !errors.Is(err, ErrEmptyRange) {
		return models.GoalProgress{}, err
	}
	// ErrEmptyRange leaves the zero summary: no data counts as zero progress.

	progress.Value = progressValue(goal, summary)
	progress.Status = decide(goal.Direction, progress.Value, goal.TargetValue, window.Finished(today), tolerance)
	return progress, nil
}

// progressValue selects the aggregate a goal is judged by. Daily goals use
// the day's single value. Cumulative weekly/monthly goals (INCREASE and
// DECREASE) use the period total, reusing average*count from the same
// summary. MAINTAIN goals are judged on the plain average.
func progressValue(goal models.Goal, summary models.Summary) float64 {
	if goal.Period == models.PeriodDaily || goal.Direction == models.DirectionMaintain {
		return summary.Average
	}
	return summary.Total()
}

func decide(direction models.Direction, value, target float64, finished bool, tolerance float64) models.GoalStatus {
	met := false
	switch direction {
	case models.DirectionIncrease:
		met = value >= target
	case models.DirectionDecrease:
		met = value <= target
	case models.DirectionMaintain:
		band := tolerance * target
		met = value >= target-band && value <= target+band
	}

	switch {
	case met:
		return models.StatusMet
	case finished:
		return models.StatusNotMet
	default:
		return models.StatusOnTrack
	}
}
