package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dias221467/HealthMetrics_Tracker/internal/analytics"
	"github.com/Dias221467/HealthMetrics_Tracker/internal/models"
	"github.com/Dias221467/HealthMetrics_Tracker/internal/repository"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const recentObservationLimit = 5

// DashboardService combines goal evaluation and trailing-week summaries
// into the single dashboard read model. It performs all the I/O up front
// and hands the pure composition to the analytics package.
type DashboardService struct {
	goalService    *GoalService
	obsRepo        *repository.ObservationRepository
	metricTypeRepo *repository.MetricTypeRepository

	// summaryDays is the width of the trailing summary window, in days.
	summaryDays int
}

// NewDashboardService creates a new instance of DashboardService.
func NewDashboardService(goalService *GoalService, obsRepo *repository.ObservationRepository, metricTypeRepo *repository.MetricTypeRepository, summaryDays int) *DashboardService {
	return &DashboardService{
		goalService:    goalService,
		obsRepo:        obsRepo,
		metricTypeRepo: metricTypeRepo,
		summaryDays:    summaryDays,
	}
}

// GetDashboard builds the dashboard for a user as of today.
func (s *DashboardService) GetDashboard(ctx context.Context, userID primitive.ObjectID, today time.Time) (models.DashboardView, error) {
	goals, err := s.goalService.GetGoals(ctx, userID, false)
	if err != nil {
		return models.DashboardView{}, fmt.Errorf("failed to fetch goals: %v", err)
	}

	progress := make([]models.GoalProgress, 0, len(goals))
	for _, goal := range goals {
		p, err := s.goalService.evaluate(ctx, goal, today)
		if err != nil {
			if errors.Is(err, analytics.ErrInvalidGoalConfig) {
				// A malformed goal must not poison the whole dashboard,
				// and silently inventing progress for it is worse.
				logrus.WithError(err).WithField("goalID", goal.ID.Hex()).Warn("Skipping malformed goal on dashboard")
				continue
			}
			return models.DashboardView{}, err
		}
		progress = append(progress, p)
	}

	summaries, err := s.trailingSummaries(ctx, userID, today)
	if err != nil {
		return models.DashboardView{}, err
	}

	view := analytics.ComposeDashboard(progress, summaries, today)

	total, err := s.obsRepo.CountObservations(ctx, userID, nil)
	if err != nil {
		return models.DashboardView{}, err
	}
	weekAgo := models.Day(today).AddDate(0, 0, -(s.summaryDays - 1))
	thisWeek, err := s.obsRepo.CountObservations(ctx, userID, &weekAgo)
	if err != nil {
		return models.DashboardView{}, err
	}
	recent, err := s.obsRepo.GetRecentObservations(ctx, userID, recentObservationLimit)
	if err != nil {
		return models.DashboardView{}, err
	}

	view.TotalObservations = total
	view.ObservationsThisWeek = thisWeek
	view.RecentObservations = recent
	return view, nil
}

// trailingSummaries summarizes each active metric type over the trailing
// summary window ending today. Types with no data in the window are simply
// absent from the map — an empty range is a valid dashboard answer.
func (s *DashboardService) trailingSummaries(ctx context.Context, userID primitive.ObjectID, today time.Time) (map[string]models.MetricSummary, error) {
	types, err := s.metricTypeRepo.ListMetricTypes(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list metric types: %v", err)
	}

	day := models.Day(today)
	window := models.DateRange{
		Start: day.AddDate(0, 0, -(s.summaryDays - 1)),
		End:   day.AddDate(0, 0, 1),
	}

	summaries := make(map[string]models.MetricSummary, len(types))
	for _, mt := range types {
		observations, err := s.obsRepo.FetchObservations(ctx, userID, mt.ID, window)
		if err != nil {
			return nil, err
		}

		summary, err := analytics.Summarize(observations, mt)
		if err != nil {
			if errors.Is(err, analytics.ErrEmptyRange) {
				continue
			}
			return nil, err
		}

		summaries[mt.Name] = models.MetricSummary{
			MetricType: mt.Name,
			Unit:       mt.Unit,
			Precision:  mt.Precision,
			Summary:    summary,
		}
	}
	return summaries, nil
}
