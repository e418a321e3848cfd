package analytics

import (
	"testing"
	"time"

	"github.com/Dias221467/HealthMetrics_Tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const tolerance = 0.10

func goalFixture(period models.PeriodKind, direction models.Direction, target float64, start time.Time) models.Goal {
	return models.Goal{
		ID:          primitive.NewObjectID(),
		UserID:      primitive.NewObjectID(),
		TargetValue: target,
		Period:      period,
		Direction:   direction,
		Active:      true,
		StartDate:   start,
		CreatedAt:   start,
	}
}

func TestCurrentPeriodDaily(t *testing.T) {
	today := date(2026, time.May, 14)
	w, err := CurrentPeriod(models.PeriodDaily, date(2026, time.January, 1), today)
	require.NoError(t, err)
	assert.Equal(t, today, w.Start)
	assert.Equal(t, today, w.End)
	assert.True(t, w.Finished(today))
}

func TestCurrentPeriodWeeklyTrailingWindow(t *testing.T) {
	today := date(2026, time.May, 14)
	w, err := CurrentPeriod(models.PeriodWeekly, date(2026, time.January, 1), today)
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.May, 8), w.Start)
	assert.Equal(t, today, w.End)
	assert.True(t, w.Finished(today))
}

func TestCurrentPeriodWeeklyClampedToGoalStart(t *testing.T) {
	today := date(2026, time.May, 14)
	start := date(2026, time.May, 12) // goal started 3 days ago

	w, err := CurrentPeriod(models.PeriodWeekly, start, today)
	require.NoError(t, err)
	assert.Equal(t, start, w.Start)
	assert.Equal(t, date(2026, time.May, 18), w.End)
	assert.False(t, w.Finished(today))
}

func TestCurrentPeriodMonthly(t *testing.T) {
	today := date(2026, time.February, 10)
	w, err := CurrentPeriod(models.PeriodMonthly, date(2025, time.June, 1), today)
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.February, 1), w.Start)
	assert.Equal(t, date(2026, time.February, 28), w.End)
	assert.False(t, w.Finished(today))
	assert.True(t, w.Finished(date(2026, time.February, 28)))
}

func TestCurrentPeriodMonthlyClamped(t *testing.T) {
	today := date(2026, time.February, 10)
	start := date(2026, time.February, 5)

	w, err := CurrentPeriod(models.PeriodMonthly, start, today)
	require.NoError(t, err)
	assert.Equal(t, start, w.Start)
	assert.Equal(t, date(2026, time.February, 28), w.End)
}

func TestEvaluateDailyIncreaseMet(t *testing.T) {
	today := date(2026, time.April, 2)
	goal := goalFixture(models.PeriodDaily, models.DirectionIncrease, 10000, date(2026, time.January, 1))
	obs := []models.Observation{{Value: 10000, RecordedDate: today}}

	progress, err := Evaluate(goal, obs, steps(), today, tolerance)
	require.NoError(t, err)
	assert.Equal(t, models.StatusMet, progress.Status)
	assert.Equal(t, 10000.0, progress.Value)
}

func TestEvaluateDailyIncreaseNotMetSameDay(t *testing.T) {
	// Daily periods have no future sub-period: 9999 today is NOT_MET, not
	// ON_TRACK, even though the day is "still in progress".
	today := date(2026, time.April, 2)
	goal := goalFixture(models.PeriodDaily, models.DirectionIncrease, 10000, date(2026, time.January, 1))
	obs := []models.Observation{{Value: 9999, RecordedDate: today}}

	progress, err := Evaluate(goal, obs, steps(), today, tolerance)
	require.NoError(t, err)
	assert.Equal(t, models.StatusNotMet, progress.Status)
}

func TestEvaluateDailyNoDataFallsBackToZero(t *testing.T) {
	today := date(2026, time.April, 2)
	goal := goalFixture(models.PeriodDaily, models.DirectionIncrease, 10000, date(2026, time.January, 1))

	progress, err := Evaluate(goal, nil, steps(), today, tolerance)
	require.NoError(t, err)
	assert.Equal(t, 0.0, progress.Value)
	assert.Equal(t, models.StatusNotMet, progress.Status)
}

func TestEvaluateWeeklyIncreaseOnTrackMidPeriod(t *testing.T) {
	// Goal started 3 days ago, 20000 of 50000 steps so far, window still
	// open: must report ON_TRACK, not a premature NOT_MET.
	today := date(2026, time.May, 14)
	start := date(2026, time.May, 12)
	goal := goalFixture(models.PeriodWeekly, models.DirectionIncrease, 50000, start)
	obs := obsSeries(start, 7000, 6000, 7000)

	progress, err := Evaluate(goal, obs, steps(), today, tolerance)
	require.NoError(t, err)
	assert.Equal(t, models.StatusOnTrack, progress.Status)
	assert.Equal(t, 20000.0, progress.Value)
	assert.Equal(t, start, progress.PeriodStart)
	assert.Equal(t, date(2026, time.May, 18), progress.PeriodEnd)
}

func TestEvaluateWeeklyIncreaseMet(t *testing.T) {
	today := date(2026, time.May, 14)
	goal := goalFixture(models.PeriodWeekly, models.DirectionIncrease, 50000, date(2026, time.January, 1))
	obs := obsSeries(date(2026, time.May, 8), 8000, 8000, 8000, 8000, 8000, 8000, 8000)

	progress, err := Evaluate(goal, obs, steps(), today, tolerance)
	require.NoError(t, err)
	assert.Equal(t, models.StatusMet, progress.Status)
	assert.Equal(t, 56000.0, progress.Value)
}

func TestEvaluateWeeklyIgnoresObservationsOutsideWindow(t *testing.T) {
	today := date(2026, time.May, 14)
	goal := goalFixture(models.PeriodWeekly, models.DirectionIncrease, 50000, date(2026, time.January, 1))
	// one observation well before the trailing window, one inside
	obs := []models.Observation{
		{Value: 90000, RecordedDate: date(2026, time.April, 1)},
		{Value: 12000, RecordedDate: date(2026, time.May, 10)},
	}

	progress, err := Evaluate(goal, obs, steps(), today, tolerance)
	require.NoError(t, err)
	assert.Equal(t, 12000.0, progress.Value)
}

func TestEvaluateMaintainWithinBand(t *testing.T) {
	today := date(2026, time.June, 10)
	goal := goalFixture(models.PeriodWeekly, models.DirectionMaintain, 70.0, date(2026, time.January, 1))
	weight := models.MetricType{Name: "weight", Unit: "kg", Precision: 1, Active: true}
	obs := []models.Observation{
		{Value: 73.0, RecordedDate: date(2026, time.June, 8)},
		{Value: 75.0, RecordedDate: date(2026, time.June, 9)},
	}

	progress, err := Evaluate(goal, obs, weight, today, tolerance)
	require.NoError(t, err)
	// average 74.0 sits within [63, 77]
	assert.Equal(t, 74.0, progress.Value)
	assert.Equal(t, models.StatusMet, progress.Status)
}

func TestEvaluateMaintainOutsideBandAfterPeriodEnd(t *testing.T) {
	today := date(2026, time.June, 10)
	goal := goalFixture(models.PeriodWeekly, models.DirectionMaintain, 70.0, date(2026, time.January, 1))
	weight := models.MetricType{Name: "weight", Unit: "kg", Precision: 1, Active: true}
	obs := []models.Observation{{Value: 80.0, RecordedDate: date(2026, time.June, 9)}}

	progress, err := Evaluate(goal, obs, weight, today, tolerance)
	require.NoError(t, err)
	assert.Equal(t, models.StatusNotMet, progress.Status)
}

func TestEvaluateMaintainOutsideBandMidPeriodIsOnTrack(t *testing.T) {
	today := date(2026, time.June, 10)
	start := date(2026, time.June, 8) // window still open until June 14
	goal := goalFixture(models.PeriodWeekly, models.DirectionMaintain, 70.0, start)
	weight := models.MetricType{Name: "weight", Unit: "kg", Precision: 1, Active: true}
	obs := []models.Observation{{Value: 80.0, RecordedDate: date(2026, time.June, 9)}}

	progress, err := Evaluate(goal, obs, weight, today, tolerance)
	require.NoError(t, err)
	assert.Equal(t, models.StatusOnTrack, progress.Status)
}

func TestEvaluateDecreaseMet(t *testing.T) {
	today := date(2026, time.July, 20)
	goal := goalFixture(models.PeriodDaily, models.DirectionDecrease, 2000, date(2026, time.January, 1))
	calories := models.MetricType{Name: "calories", Unit: "kcal", Active: true}
	obs := []models.Observation{{Value: 1800, RecordedDate: today}}

	progress, err := Evaluate(goal, obs, calories, today, tolerance)
	require.NoError(t, err)
	assert.Equal(t, models.StatusMet, progress.Status)
}

func TestEvaluateInactiveGoalAlwaysInactive(t *testing.T) {
	today := date(2026, time.April, 2)
	goal := goalFixture(models.PeriodDaily, models.DirectionIncrease, 10000, date(2026, time.January, 1))
	goal.Active = false
	obs := []models.Observation{{Value: 99999, RecordedDate: today}}

	progress, err := Evaluate(goal, obs, steps(), today, tolerance)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInactive, progress.Status)
	assert.Equal(t, 0.0, progress.Value)
}

func TestEvaluateExpiredGoal(t *testing.T) {
	today := date(2026, time.April, 2)
	goal := goalFixture(models.PeriodDaily, models.DirectionIncrease, 10000, date(2026, time.January, 1))
	end := date(2026, time.March, 31)
	goal.EndDate = &end

	progress, err := Evaluate(goal, nil, steps(), today, tolerance)
	require.NoError(t, err)
	assert.Equal(t, models.StatusExpired, progress.Status)
}

func TestEvaluateEndDateTodayIsNotExpired(t *testing.T) {
	today := date(2026, time.April, 2)
	goal := goalFixture(models.PeriodDaily, models.DirectionIncrease, 10000, date(2026, time.January, 1))
	goal.EndDate = &today
	obs := []models.Observation{{Value: 12000, RecordedDate: today}}

	progress, err := Evaluate(goal, obs, steps(), today, tolerance)
	require.NoError(t, err)
	assert.Equal(t, models.StatusMet, progress.Status)
}

func TestEvaluateInvalidConfiguration(t *testing.T) {
	today := date(2026, time.April, 2)

	cases := map[string]func(g *models.Goal){
		"zero target":       func(g *models.Goal) { g.TargetValue = 0 },
		"negative target":   func(g *models.Goal) { g.TargetValue = -5 },
		"unknown period":    func(g *models.Goal) { g.Period = "FORTNIGHTLY" },
		"unknown direction": func(g *models.Goal) { g.Direction = "OSCILLATE" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			goal := goalFixture(models.PeriodDaily, models.DirectionIncrease, 10000, date(2026, time.January, 1))
			mutate(&goal)
			_, err := Evaluate(goal, nil, steps(), today, tolerance)
			assert.ErrorIs(t, err, ErrInvalidGoalConfig)
		})
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	today := date(2026, time.May, 14)
	goal := goalFixture(models.PeriodWeekly, models.DirectionIncrease, 50000, date(2026, time.May, 12))
	obs := obsSeries(date(2026, time.May, 12), 7000, 6000, 7000)

	first, err := Evaluate(goal, obs, steps(), today, tolerance)
	require.NoError(t, err)
	second, err := Evaluate(goal, obs, steps(), today, tolerance)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
