package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/HealthMetrics_Tracker/internal/analytics"
	"github.com/Dias221467/HealthMetrics_Tracker/internal/models"
	"github.com/Dias221467/HealthMetrics_Tracker/internal/repository"
	"github.com/Dias221467/HealthMetrics_Tracker/pkg/metrics"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IntegrityScanner checks recently stored observations against their metric
// type bounds. The write path rejects out-of-range values, so anything this
// scan finds points at a bypassed validation or a later bounds change;
// aggregation already excludes such rows, the scan only surfaces them.
type IntegrityScanner struct {
	ObsRepo        *repository.ObservationRepository
	MetricTypeRepo *repository.MetricTypeRepository
}

// NewIntegrityScanner creates a new instance of IntegrityScanner.
func NewIntegrityScanner(obsRepo *repository.ObservationRepository, metricTypeRepo *repository.MetricTypeRepository) *IntegrityScanner {
	return &IntegrityScanner{
		ObsRepo:        obsRepo,
		MetricTypeRepo: metricTypeRepo,
	}
}

// RunDailyScan inspects the last day of observations.
func (s *IntegrityScanner) RunDailyScan(ctx context.Context) error {
	today := models.Day(time.Now())
	window := models.DateRange{
		Start: today.AddDate(0, 0, -1),
		End:   today.AddDate(0, 0, 1),
	}

	types, err := s.MetricTypeRepo.ListMetricTypes(ctx, false)
	if err != nil {
		return fmt.Errorf("failed to list metric types: %v", err)
	}
	byID := make(map[primitive.ObjectID]models.MetricType, len(types))
	for _, mt := range types {
		byID[mt.ID] = mt
	}

	observations, err := s.ObsRepo.FetchByDateRange(ctx, window)
	if err != nil {
		return fmt.Errorf("failed to fetch observations: %v", err)
	}

	violations := 0
	for _, obs := range observations {
		mt, ok := byID[obs.MetricTypeID]
		if !ok {
			logrus.WithField("observationID", obs.ID.Hex()).Warn("Observation references unknown metric type")
			continue
		}
		if _, invalid := analytics.SplitOutOfRange([]models.Observation{obs}, mt); len(invalid) > 0 {
			violations++
			metrics.IntegrityViolations.WithLabelValues(mt.Name).Inc()
			logrus.WithFields(logrus.Fields{
				"observationID": obs.ID.Hex(),
				"metricType":    mt.Name,
				"value":         obs.Value,
			}).Warn("Observation violates metric type bounds")
		}
	}

	logrus.WithFields(logrus.Fields{
		"scanned":    len(observations),
		"violations": violations,
	}).Info("Observation integrity scan completed")
	return nil
}
