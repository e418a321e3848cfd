package models

import "time"

// Summary holds descriptive statistics over a slice of observations for one
// metric type. Average is kept at full float64 precision; rounding to the
// metric type's display precision happens only at the HTTP boundary.
type Summary struct {
	Count     int       `json:"count"`
	Min       float64   `json:"min"`
	Max       float64   `json:"max"`
	Average   float64   `json:"average"`
	FirstDate time.Time `json:"first_date"`
	LastDate  time.Time `json:"last_date"`
}

// Total is the cumulative value over the summarized slice. The unique
// (user, metric type, date) key makes this the per-period sum used by
// cumulative goal evaluation.
func (s Summary) Total() float64 {
	return s.Average * float64(s.Count)
}

// TrendPoint is one point of a moving-average series.
type TrendPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// MetricSummary pairs a Summary with its metric type for dashboard output.
type MetricSummary struct {
	MetricType string  `json:"metric_type"`
	Unit       string  `json:"unit"`
	Precision  int     `json:"-"`
	Summary    Summary `json:"summary"`
}

// DashboardView is the combined read model returned by the dashboard
// endpoint: evaluated progress for every live goal plus trailing-week
// summaries and a few headline counters.
type DashboardView struct {
	Date                 time.Time                `json:"date"`
	Goals                []GoalProgress           `json:"goals"`
	Summaries            map[string]MetricSummary `json:"summaries"`
	ActiveGoals          int                      `json:"active_goals"`
	GoalsOnTrack         int                      `json:"goals_on_track"`
	TotalObservations    int64                    `json:"total_observations"`
	ObservationsThisWeek int64                    `json:"observations_this_week"`
	RecentObservations   []Observation            `json:"recent_observations"`
}
