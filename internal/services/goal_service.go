package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/HealthMetrics_Tracker/internal/analytics"
	"github.com/Dias221467/HealthMetrics_Tracker/internal/models"
	"github.com/Dias221467/HealthMetrics_Tracker/internal/repository"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GoalService encapsulates the business logic for goals and their evaluated
// progress. Progress is derived on every read; nothing computed here is
// ever written back.
type GoalService struct {
	repo           *repository.GoalRepository
	obsRepo        *repository.ObservationRepository
	metricTypeRepo *repository.MetricTypeRepository

	// maintainTolerance is the ± band (as a fraction of target) within
	// which a MAINTAIN goal counts as met.
	maintainTolerance float64
}

// NewGoalService creates a new instance of GoalService.
func NewGoalService(repo *repository.GoalRepository, obsRepo *repository.ObservationRepository, metricTypeRepo *repository.MetricTypeRepository, maintainTolerance float64) *GoalService {
	return &GoalService{
		repo:              repo,
		obsRepo:           obsRepo,
		metricTypeRepo:    metricTypeRepo,
		maintainTolerance: maintainTolerance,
	}
}

// CreateGoal validates and stores a new goal.
func (s *GoalService) CreateGoal(ctx context.Context, goal *models.Goal) (*models.Goal, error) {
	if goal.TargetValue <= 0 {
		logrus.WithField("target", goal.TargetValue).Warn("Non-positive goal target during creation")
		return nil, fmt.Errorf("target %v: %w", goal.TargetValue, analytics.ErrInvalidGoalConfig)
	}
	if !goal.Period.Valid() {
		return nil, fmt.Errorf("period %q: %w", goal.Period, analytics.ErrInvalidGoalConfig)
	}
	if !goal.Direction.Valid() {
		return nil, fmt.Errorf("direction %q: %w", goal.Direction, analytics.ErrInvalidGoalConfig)
	}

	mt, err := s.metricTypeRepo.GetMetricTypeByID(ctx, goal.MetricTypeID)
	if err != nil {
		return nil, fmt.Errorf("unknown metric type: %v", err)
	}
	if !mt.Active {
		return nil, fmt.Errorf("metric type %q is not active", mt.Name)
	}

	if goal.StartDate.IsZero() {
		goal.StartDate = models.Day(time.Now())
	} else {
		goal.StartDate = models.Day(goal.StartDate)
	}
	if goal.EndDate != nil {
		end := models.Day(*goal.EndDate)
		if end.Before(goal.StartDate) {
			return nil, fmt.Errorf("end date must not precede start date")
		}
		goal.EndDate = &end
	}

	// One active goal per (user, metric type, period); same rule the
	// partial unique index enforces, checked here for a friendlier error.
	if existing, _ := s.repo.GetActiveGoal(ctx, goal.UserID, goal.MetricTypeID, goal.Period); existing != nil {
		return nil, fmt.Errorf("an active %s goal for %s already exists", goal.Period, mt.Name)
	}

	goal.Active = true
	created, err := s.repo.CreateGoal(ctx, goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %v", err)
	}

	logrus.WithField("goalID", created.ID.Hex()).Info("Goal created in service layer")
	return created, nil
}

// GetGoal retrieves a goal by its ID, checking ownership.
func (s *GoalService) GetGoal(ctx context.Context, id string, userID primitive.ObjectID) (*models.Goal, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		logrus.WithField("goalID", id).WithError(err).Warn("Invalid goal ID in GetGoal")
		return nil, fmt.Errorf("invalid goal ID: %v", err)
	}

	goal, err := s.repo.GetGoalByID(ctx, objID)
	if err != nil {
		return nil, fmt.Errorf("failed to get goal: %v", err)
	}
	if goal.UserID != userID {
		return nil, fmt.Errorf("goal does not belong to the requesting user")
	}
	return goal, nil
}

// GetGoals retrieves a user's goals in creation order.
func (s *GoalService) GetGoals(ctx context.Context, userID primitive.ObjectID, includeInactive bool) ([]models.Goal, error) {
	goals, err := s.repo.GetGoals(ctx, userID, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch goals: %v", err)
	}
	return goals, nil
}

// UpdateGoal updates the end date of a goal. Target, metric type, period
// and direction are immutable once created; deactivation has its own path.
func (s *GoalService) UpdateGoal(ctx context.Context, id string, userID primitive.ObjectID, endDate *time.Time) (*models.Goal, error) {
	goal, err := s.GetGoal(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if endDate != nil {
		end := models.Day(*endDate)
		if end.Before(goal.StartDate) {
			return nil, fmt.Errorf("end date must not precede start date")
		}
		goal.EndDate = &end
	} else {
		goal.EndDate = nil
	}

	updated, err := s.repo.UpdateGoal(ctx, goal.ID, goal)
	if err != nil {
		return nil, fmt.Errorf("failed to update goal: %v", err)
	}
	return updated, nil
}

// DeactivateGoal turns a goal's active flag off without deleting it.
func (s *GoalService) DeactivateGoal(ctx context.Context, id string, userID primitive.ObjectID) error {
	goal, err := s.GetGoal(ctx, id, userID)
	if err != nil {
		return err
	}
	return s.repo.DeactivateGoal(ctx, goal.ID)
}

// DeleteGoal removes a goal from the database.
func (s *GoalService) DeleteGoal(ctx context.Context, id string, userID primitive.ObjectID) error {
	goal, err := s.GetGoal(ctx, id, userID)
	if err != nil {
		return err
	}
	return s.repo.DeleteGoal(ctx, goal.ID)
}

// GetActiveGoals returns the user's active, non-expired goals as of today.
func (s *GoalService) GetActiveGoals(ctx context.Context, userID primitive.ObjectID, today time.Time) ([]models.Goal, error) {
	goals, err := s.repo.GetGoals(ctx, userID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch goals: %v", err)
	}

	live := make([]models.Goal, 0, len(goals))
	for _, goal := range goals {
		if !goal.Expired(today) {
			live = append(live, goal)
		}
	}
	return live, nil
}

// EvaluateGoal derives the goal's progress for the period containing today.
// Today is always supplied by the caller; the evaluator itself never reads
// the clock.
func (s *GoalService) EvaluateGoal(ctx context.Context, id string, userID primitive.ObjectID, today time.Time) (models.GoalProgress, error) {
	goal, err := s.GetGoal(ctx, id, userID)
	if err != nil {
		return models.GoalProgress{}, err
	}
	return s.evaluate(ctx, *goal, today)
}

func (s *GoalService) evaluate(ctx context.Context, goal models.Goal, today time.Time) (models.GoalProgress, error) {
	mt, err := s.metricTypeRepo.GetMetricTypeByID(ctx, goal.MetricTypeID)
	if err != nil {
		return models.GoalProgress{}, fmt.Errorf("unknown metric type: %v", err)
	}

	observations, err := s.fetchPeriodObservations(ctx, goal, today)
	if err != nil {
		return models.GoalProgress{}, err
	}

	progress, err := analytics.Evaluate(goal, observations, *mt, today, s.maintainTolerance)
	if err != nil {
		logrus.WithError(err).WithField("goalID", goal.ID.Hex()).Warn("Goal evaluation failed")
		return models.GoalProgress{}, err
	}
	return progress, nil
}

// fetchPeriodObservations reads only the slice the current period can use.
// Terminal and malformed goals skip the read: the evaluator resolves them
// without data.
func (s *GoalService) fetchPeriodObservations(ctx context.Context, goal models.Goal, today time.Time) ([]models.Observation, error) {
	if !goal.Active || goal.Expired(today) {
		return nil, nil
	}

	window, err := analytics.CurrentPeriod(goal.Period, goal.StartDate, today)
	if err != nil {
		// Let the evaluator report the configuration error.
		return nil, nil
	}

	return s.obsRepo.FetchObservations(ctx, goal.UserID, goal.MetricTypeID, window.ObservationRange(today))
}
