package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/HealthMetrics_Tracker/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MetricTypeRepository handles database operations for metric type
// reference data.
type MetricTypeRepository struct {
	collection *mongo.Collection
}

// NewMetricTypeRepository creates a new instance of MetricTypeRepository.
func NewMetricTypeRepository(db *mongo.Database) *MetricTypeRepository {
	return &MetricTypeRepository{
		collection: db.Collection("metric_types"),
	}
}

// EnsureIndexes creates the unique name index.
func (r *MetricTypeRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create metric type index: %v", err)
	}
	return nil
}

// CreateMetricType inserts a new metric type.
func (r *MetricTypeRepository) CreateMetricType(ctx context.Context, mt *models.MetricType) (*models.MetricType, error) {
	mt.CreatedAt = time.Now()
	mt.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, mt)
	if err != nil {
		logrus.WithError(err).WithField("name", mt.Name).Error("Failed to insert metric type")
		return nil, fmt.Errorf("failed to insert metric type: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logrus.Error("Failed to cast inserted ID to ObjectID")
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	mt.ID = insertedID

	logrus.WithField("metricType", mt.Name).Info("Metric type created")
	return mt, nil
}

// GetMetricTypeByID fetches a metric type by its ID.
func (r *MetricTypeRepository) GetMetricTypeByID(ctx context.Context, id primitive.ObjectID) (*models.MetricType, error) {
	var mt models.MetricType
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&mt)
	if err != nil {
		logrus.WithError(err).WithField("metricTypeID", id.Hex()).Warn("Failed to find metric type")
		return nil, fmt.Errorf("failed to find metric type: %v", err)
	}
	return &mt, nil
}

// GetMetricTypeByName fetches a metric type by its unique name.
func (r *MetricTypeRepository) GetMetricTypeByName(ctx context.Context, name string) (*models.MetricType, error) {
	var mt models.MetricType
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&mt)
	if err != nil {
		return nil, fmt.Errorf("failed to find metric type %q: %v", name, err)
	}
	return &mt, nil
}

// ListMetricTypes fetches metric types ordered by name, optionally only
// active ones.
func (r *MetricTypeRepository) ListMetricTypes(ctx context.Context, activeOnly bool) ([]models.MetricType, error) {
	filter := bson.M{}
	if activeOnly {
		filter["active"] = true
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch metric types")
		return nil, fmt.Errorf("failed to fetch metric types: %v", err)
	}
	defer cursor.Close(ctx)

	var types []models.MetricType
	for cursor.Next(ctx) {
		var mt models.MetricType
		if err := cursor.Decode(&mt); err != nil {
			logrus.WithError(err).Error("Failed to decode metric type")
			return nil, fmt.Errorf("failed to decode metric type: %v", err)
		}
		types = append(types, mt)
	}
	return types, nil
}

// UpdateMetricType updates mutable fields of a metric type.
func (r *MetricTypeRepository) UpdateMetricType(ctx context.Context, id primitive.ObjectID, mt *models.MetricType) (*models.MetricType, error) {
	mt.UpdatedAt = time.Now()

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": mt})
	if err != nil {
		logrus.WithError(err).WithField("metricTypeID", id.Hex()).Error("Failed to update metric type")
		return nil, fmt.Errorf("failed to update metric type: %v", err)
	}

	logrus.WithField("metricTypeID", id.Hex()).Info("Metric type updated")
	return mt, nil
}

// DeleteMetricType removes a metric type. Observations reference types by
// ID, so callers should deactivate rather than delete types with history.
func (r *MetricTypeRepository) DeleteMetricType(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logrus.WithError(err).WithField("metricTypeID", id.Hex()).Error("Failed to delete metric type")
		return fmt.Errorf("failed to delete metric type: %v", err)
	}

	logrus.WithField("metricTypeID", id.Hex()).Info("Metric type deleted")
	return nil
}
