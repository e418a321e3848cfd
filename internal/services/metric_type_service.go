package services

import (
	"context"
	"fmt"

	"github.com/Dias221467/HealthMetrics_Tracker/internal/models"
	"github.com/Dias221467/HealthMetrics_Tracker/internal/repository"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MetricTypeService encapsulates the business logic for metric type
// reference data. Metric types are admin-managed and immutable from the
// point of view of the aggregation core.
type MetricTypeService struct {
	repo *repository.MetricTypeRepository
}

// NewMetricTypeService creates a new instance of MetricTypeService.
func NewMetricTypeService(repo *repository.MetricTypeRepository) *MetricTypeService {
	return &MetricTypeService{
		repo: repo,
	}
}

// CreateMetricType validates and stores a new metric type.
func (s *MetricTypeService) CreateMetricType(ctx context.Context, mt *models.MetricType) (*models.MetricType, error) {
	if mt.Name == "" || mt.Unit == "" {
		logrus.Warn("Metric type name or unit missing during creation")
		return nil, fmt.Errorf("metric type name and unit are required")
	}
	if mt.MinValue != nil && mt.MaxValue != nil && *mt.MinValue > *mt.MaxValue {
		logrus.WithFields(logrus.Fields{
			"min": *mt.MinValue,
			"max": *mt.MaxValue,
		}).Warn("Inverted bounds during metric type creation")
		return nil, fmt.Errorf("min_value cannot exceed max_value")
	}
	if mt.Precision < 0 {
		return nil, fmt.Errorf("precision cannot be negative")
	}

	if existing, _ := s.repo.GetMetricTypeByName(ctx, mt.Name); existing != nil {
		return nil, fmt.Errorf("metric type %q already exists", mt.Name)
	}

	mt.Active = true
	created, err := s.repo.CreateMetricType(ctx, mt)
	if err != nil {
		return nil, fmt.Errorf("failed to create metric type: %v", err)
	}

	logrus.WithField("metricType", created.Name).Info("Metric type created in service layer")
	return created, nil
}

// GetMetricType retrieves a metric type by its ID.
func (s *MetricTypeService) GetMetricType(ctx context.Context, id string) (*models.MetricType, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid metric type ID: %v", err)
	}
	return s.repo.GetMetricTypeByID(ctx, objID)
}

// ListMetricTypes returns metric types ordered by name.
func (s *MetricTypeService) ListMetricTypes(ctx context.Context, activeOnly bool) ([]models.MetricType, error) {
	types, err := s.repo.ListMetricTypes(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list metric types: %v", err)
	}
	return types, nil
}

// UpdateMetricType updates descriptive fields and bounds of a metric type.
func (s *MetricTypeService) UpdateMetricType(ctx context.Context, id string, mt *models.MetricType) (*models.MetricType, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid metric type ID: %v", err)
	}
	if mt.MinValue != nil && mt.MaxValue != nil && *mt.MinValue > *mt.MaxValue {
		return nil, fmt.Errorf("min_value cannot exceed max_value")
	}
	return s.repo.UpdateMetricType(ctx, objID, mt)
}

// DeleteMetricType removes a metric type.
func (s *MetricTypeService) DeleteMetricType(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid metric type ID: %v", err)
	}
	return s.repo.DeleteMetricType(ctx, objID)
}
