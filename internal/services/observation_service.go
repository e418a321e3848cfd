package services

import (
	"context"
	"fmt"

	"github.com/Dias221467/HealthMetrics_Tracker/internal/analytics"
	"github.com/Dias221467/HealthMetrics_Tracker/internal/models"
	"github.com/Dias221467/HealthMetrics_Tracker/internal/repository"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ObservationService encapsulates the business logic for recording
// observations and reading aggregated views over them. All computation is
// delegated to the analytics package; this layer only performs I/O and
// validation.
type ObservationService struct {
	repo           *repository.ObservationRepository
	metricTypeRepo *repository.MetricTypeRepository
}

// NewObservationService creates a new instance of ObservationService.
func NewObservationService(repo *repository.ObservationRepository, metricTypeRepo *repository.MetricTypeRepository) *ObservationService {
	return &ObservationService{
		repo:           repo,
		metricTypeRepo: metricTypeRepo,
	}
}

// RecordObservation validates an observation against its metric type bounds
// and the one-entry-per-day rule, then stores it.
func (s *ObservationService) RecordObservation(ctx context.Context, obs *models.Observation) (*models.Observation, error) {
	mt, err := s.metricTypeRepo.GetMetricTypeByID(ctx, obs.MetricTypeID)
	if err != nil {
		return nil, fmt.Errorf("unknown metric type: %v", err)
	}
	if !mt.Active {
		return nil, fmt.Errorf("metric type %q is not active", mt.Name)
	}
	if !mt.InRange(obs.Value) {
		logrus.WithFields(logrus.Fields{
			"metricType": mt.Name,
			"value":      obs.Value,
		}).Warn("Observation value outside metric type bounds")
		return nil, fmt.Errorf("value %v for %s: %w", obs.Value, mt.Name, analytics.ErrOutOfRange)
	}

	day := models.Day(obs.RecordedDate)
	if existing, _ := s.repo.GetObservationByNaturalKey(ctx, obs.UserID, obs.MetricTypeID, day); existing != nil {
		return nil, fmt.Errorf("an observation for %s on %s already exists", mt.Name, day.Format(models.DateLayout))
	}

	created, err := s.repo.CreateObservation(ctx, obs)
	if err != nil {
		return nil, fmt.Errorf("failed to record observation: %v", err)
	}
	return created, nil
}

// GetObservation retrieves a single observation owned by the requester.
func (s *ObservationService) GetObservation(ctx context.Context, id string, userID primitive.ObjectID) (*models.Observation, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid observation ID: %v", err)
	}

	obs, err := s.repo.GetObservationByID(ctx, objID)
	if err != nil {
		return nil, fmt.Errorf("failed to get observation: %v", err)
	}
	if obs.UserID != userID {
		return nil, fmt.Errorf("observation does not belong to the requesting user")
	}
	return obs, nil
}

// ListObservations returns the user's observations for a metric type inside
// the half-open date range, ascending by date.
func (s *ObservationService) ListObservations(ctx context.Context, userID primitive.ObjectID, metricTypeID string, dateRange models.DateRange) ([]models.Observation, error) {
	mtID, err := primitive.ObjectIDFromHex(metricTypeID)
	if err != nil {
		return nil, fmt.Errorf("invalid metric type ID: %v", err)
	}
	return s.repo.FetchObservations(ctx, userID, mtID, dateRange)
}

// UpdateObservation updates value/notes of an observation after re-checking
// bounds and ownership.
func (s *ObservationService) UpdateObservation(ctx context.Context, id string, userID primitive.ObjectID, value float64, notes string) (*models.Observation, error) {
	obs, err := s.GetObservation(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	mt, err := s.metricTypeRepo.GetMetricTypeByID(ctx, obs.MetricTypeID)
	if err != nil {
		return nil, fmt.Errorf("unknown metric type: %v", err)
	}
	if !mt.InRange(value) {
		return nil, fmt.Errorf("value %v for %s: %w", value, mt.Name, analytics.ErrOutOfRange)
	}

	return s.repo.UpdateObservation(ctx, obs.ID, value, notes)
}

// DeleteObservation removes an observation owned by the requester.
func (s *ObservationService) DeleteObservation(ctx context.Context, id string, userID primitive.ObjectID) error {
	obs, err := s.GetObservation(ctx, id, userID)
	if err != nil {
		return err
	}
	return s.repo.DeleteObservation(ctx, obs.ID)
}

// GetSummary fetches the relevant observation slice and computes its
// descriptive statistics. The metric type is returned alongside so the HTTP
// layer can apply display rounding.
func (s *ObservationService) GetSummary(ctx context.Context, userID primitive.ObjectID, metricTypeID string, dateRange models.DateRange) (models.Summary, *models.MetricType, error) {
	mtID, err := primitive.ObjectIDFromHex(metricTypeID)
	if err != nil {
		return models.Summary{}, nil, fmt.Errorf("invalid metric type ID: %v", err)
	}

	mt, err := s.metricTypeRepo.GetMetricTypeByID(ctx, mtID)
	if err != nil {
		return models.Summary{}, nil, fmt.Errorf("unknown metric type: %v", err)
	}

	observations, err := s.repo.FetchObservations(ctx, userID, mtID, dateRange)
	if err != nil {
		return models.Summary{}, nil, err
	}
	s.warnOutOfRange(observations, *mt)

	summary, err := analytics.Summarize(observations, *mt)
	if err != nil {
		return models.Summary{}, mt, err
	}
	return summary, mt, nil
}

// GetTrend fetches the relevant observation slice and materializes its
// moving-average series.
func (s *ObservationService) GetTrend(ctx context.Context, userID primitive.ObjectID, metricTypeID string, dateRange models.DateRange, window int) ([]models.TrendPoint, *models.MetricType, error) {
	if window < 1 {
		return nil, nil, fmt.Errorf("trend window must be at least 1, got %d", window)
	}

	mtID, err := primitive.ObjectIDFromHex(metricTypeID)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid metric type ID: %v", err)
	}

	mt, err := s.metricTypeRepo.GetMetricTypeByID(ctx, mtID)
	if err != nil {
		return nil, nil, fmt.Errorf("unknown metric type: %v", err)
	}

	observations, err := s.repo.FetchObservations(ctx, userID, mtID, dateRange)
	if err != nil {
		return nil, nil, err
	}
	valid, invalid := analytics.SplitOutOfRange(observations, *mt)
	s.logInvalid(invalid, *mt)

	var points []models.TrendPoint
	for point := range analytics.Trend(valid, window) {
		points = append(points, point)
	}
	return points, mt, nil
}

func (s *ObservationService) warnOutOfRange(observations []models.Observation, mt models.MetricType) {
	_, invalid := analytics.SplitOutOfRange(observations, mt)
	s.logInvalid(invalid, mt)
}

// logInvalid surfaces stored observations violating their bounds. The store
// rejects these on write, so any hit here is a data-integrity problem worth
// an operator's attention; aggregation has already excluded them.
func (s *ObservationService) logInvalid(invalid []models.Observation, mt models.MetricType) {
	for _, obs := range invalid {
		logrus.WithFields(logrus.Fields{
			"observationID": obs.ID.Hex(),
			"metricType":    mt.Name,
			"value":         obs.Value,
		}).Warn("Stored observation violates metric type bounds; excluded from aggregation")
	}
}
