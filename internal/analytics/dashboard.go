package analytics

import (
	"sort"
	"time"

	"github.com/Dias221467/HealthMetrics_Tracker/internal/models"
)

// ComposeDashboard assembles the dashboard read model from already-evaluated
// goal progress and trailing-week summaries. Pure composition: terminal
// (INACTIVE, EXPIRED) entries are dropped and the rest are ordered by nearest
// period end first. The input order is goal creation order, and the stable
// sort preserves it for ties, keeping output deterministic.
func ComposeDashboard(progress []models.GoalProgress, summaries map[string]models.MetricSummary, today time.Time) models.DashboardView {
	live := make([]models.GoalProgress, 0, len(progress))
	onTrack := 0
	for _, p := range progress {
		switch p.Status {
		case models.StatusInactive, models.StatusExpired:
			continue
		case models.StatusOnTrack, models.StatusMet:
			onTrack++
		}
		live = append(live, p)
	}

	sort.SliceStable(live, func(i, j int) bool {
		return live[i].PeriodEnd.Before(live[j].PeriodEnd)
	})

	if summaries == nil {
		summaries = map[string]models.MetricSummary{}
	}

	return models.DashboardView{
		Date:         models.Day(today),
		Goals:        live,
		Summaries:    summaries,
		ActiveGoals:  len(live),
		GoalsOnTrack: onTrack,
	}
}
