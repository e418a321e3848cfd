package analytics

import (
	"testing"
	"time"

	"github.com/Dias221467/HealthMetrics_Tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestComposeDashboardOrdersByNearestPeriodEnd(t *testing.T) {
	today := date(2026, time.May, 14)
	a := models.GoalProgress{GoalID: primitive.NewObjectID(), Status: models.StatusOnTrack, PeriodEnd: date(2026, time.May, 31)}
	b := models.GoalProgress{GoalID: primitive.NewObjectID(), Status: models.StatusMet, PeriodEnd: date(2026, time.May, 14)}
	c := models.GoalProgress{GoalID: primitive.NewObjectID(), Status: models.StatusNotMet, PeriodEnd: date(2026, time.May, 18)}

	view := ComposeDashboard([]models.GoalProgress{a, b, c}, nil, today)

	require.Len(t, view.Goals, 3)
	assert.Equal(t, b.GoalID, view.Goals[0].GoalID)
	assert.Equal(t, c.GoalID, view.Goals[1].GoalID)
	assert.Equal(t, a.GoalID, view.Goals[2].GoalID)
	assert.Equal(t, today, view.Date)
}

func TestComposeDashboardTieBreaksByCreationOrder(t *testing.T) {
	today := date(2026, time.May, 14)
	end := date(2026, time.May, 18)
	first := models.GoalProgress{GoalID: primitive.NewObjectID(), Status: models.StatusOnTrack, PeriodEnd: end}
	second := models.GoalProgress{GoalID: primitive.NewObjectID(), Status: models.StatusOnTrack, PeriodEnd: end}

	// input arrives in creation order; equal period ends must preserve it
	view := ComposeDashboard([]models.GoalProgress{first, second}, nil, today)

	require.Len(t, view.Goals, 2)
	assert.Equal(t, first.GoalID, view.Goals[0].GoalID)
	assert.Equal(t, second.GoalID, view.Goals[1].GoalID)
}

func TestComposeDashboardDropsTerminalGoals(t *testing.T) {
	today := date(2026, time.May, 14)
	live := models.GoalProgress{GoalID: primitive.NewObjectID(), Status: models.StatusOnTrack, PeriodEnd: today}
	inactive := models.GoalProgress{GoalID: primitive.NewObjectID(), Status: models.StatusInactive, PeriodEnd: today}
	expired := models.GoalProgress{GoalID: primitive.NewObjectID(), Status: models.StatusExpired, PeriodEnd: today}

	view := ComposeDashboard([]models.GoalProgress{inactive, live, expired}, nil, today)

	require.Len(t, view.Goals, 1)
	assert.Equal(t, live.GoalID, view.Goals[0].GoalID)
	assert.Equal(t, 1, view.ActiveGoals)
}

func TestComposeDashboardCountsOnTrack(t *testing.T) {
	today := date(2026, time.May, 14)
	progress := []models.GoalProgress{
		{GoalID: primitive.NewObjectID(), Status: models.StatusMet, PeriodEnd: today},
		{GoalID: primitive.NewObjectID(), Status: models.StatusOnTrack, PeriodEnd: today},
		{GoalID: primitive.NewObjectID(), Status: models.StatusNotMet, PeriodEnd: today},
	}

	view := ComposeDashboard(progress, nil, today)
	assert.Equal(t, 3, view.ActiveGoals)
	assert.Equal(t, 2, view.GoalsOnTrack)
}

func TestComposeDashboardCarriesSummaries(t *testing.T) {
	today := date(2026, time.May, 14)
	summaries := map[string]models.MetricSummary{
		"steps": {
			MetricType: "steps",
			Unit:       "steps",
			Summary:    models.Summary{Count: 7, Min: 4000, Max: 12000, Average: 8000},
		},
	}

	view := ComposeDashboard(nil, summaries, today)
	require.Contains(t, view.Summaries, "steps")
	assert.Equal(t, 7, view.Summaries["steps"].Summary.Count)
	assert.Empty(t, view.Goals)
}
