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

// ObservationRepository handles database operations for metric observations.
// It is the ordered, date-filtered read side the aggregation core depends on.
type ObservationRepository struct {
	collection *mongo.Collection
}

// NewObservationRepository creates a new instance of ObservationRepository.
func NewObservationRepository(db *mongo.Database) *ObservationRepository {
	return &ObservationRepository{
		collection: db.Collection("observations"),
	}
}

// EnsureIndexes creates the unique (user, metric type, date) natural key.
// Per-day values must be deterministic for aggregation.
func (r *ObservationRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "metric_type_id", Value: 1},
			{Key: "recorded_date", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create observation index: %v", err)
	}
	return nil
}

// CreateObservation inserts a new observation.
func (r *ObservationRepository) CreateObservation(ctx context.Context, obs *models.Observation) (*models.Observation, error) {
	obs.RecordedDate = models.Day(obs.RecordedDate)
	obs.CreatedAt = time.Now()
	obs.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, obs)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert observation")
		return nil, fmt.Errorf("failed to insert observation: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logrus.Error("Failed to cast inserted ID to ObjectID")
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	obs.ID = insertedID

	logrus.WithFields(logrus.Fields{
		"observationID": obs.ID.Hex(),
		"userID":        obs.UserID.Hex(),
	}).Info("Observation created")
	return obs, nil
}

// GetObservationByID fetches a single observation.
func (r *ObservationRepository) GetObservationByID(ctx context.Context, id primitive.ObjectID) (*models.Observation, error) {
	var obs models.Observation
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&obs)
	if err != nil {
		logrus.WithError(err).WithField("observationID", id.Hex()).Warn("Failed to find observation")
		return nil, fmt.Errorf("failed to find observation: %v", err)
	}
	return &obs, nil
}

// GetObservationByNaturalKey fetches the observation for (user, metric type,
// date), used to reject duplicate daily entries before insert.
func (r *ObservationRepository) GetObservationByNaturalKey(ctx context.Context, userID, metricTypeID primitive.ObjectID, day time.Time) (*models.Observation, error) {
	var obs models.Observation
	filter := bson.M{
		"user_id":        userID,
		"metric_type_id": metricTypeID,
		"recorded_date":  models.Day(day),
	}
	err := r.collection.FindOne(ctx, filter).Decode(&obs)
	if err != nil {
		return nil, err
	}
	return &obs, nil
}

// FetchObservations returns a user's observations for a metric type inside
// the half-open date range, ascending by date. Zero bounds are open.
func (r *ObservationRepository) FetchObservations(ctx context.Context, userID, metricTypeID primitive.ObjectID, dateRange models.DateRange) ([]models.Observation, error) {
	filter := bson.M{
		"user_id":        userID,
		"metric_type_id": metricTypeID,
	}
	if dateFilter := rangeFilter(dateRange); len(dateFilter) > 0 {
		filter["recorded_date"] = dateFilter
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "recorded_date", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		logrus.WithError(err).WithField("userID", userID.Hex()).Error("Failed to fetch observations")
		return nil, fmt.Errorf("failed to fetch observations: %v", err)
	}
	defer cursor.Close(ctx)

	var observations []models.Observation
	for cursor.Next(ctx) {
		var obs models.Observation
		if err := cursor.Decode(&obs); err != nil {
			logrus.WithError(err).Error("Failed to decode observation")
			return nil, fmt.Errorf("failed to decode observation: %v", err)
		}
		observations = append(observations, obs)
	}
	return observations, nil
}

// FetchByDateRange returns observations for ALL users inside the half-open
// range, used by the nightly integrity scan.
func (r *ObservationRepository) FetchByDateRange(ctx context.Context, dateRange models.DateRange) ([]models.Observation, error) {
	filter := bson.M{}
	if dateFilter := rangeFilter(dateRange); len(dateFilter) > 0 {
		filter["recorded_date"] = dateFilter
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "recorded_date", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch observations by date range")
		return nil, fmt.Errorf("failed to fetch observations: %v", err)
	}
	defer cursor.Close(ctx)

	var observations []models.Observation
	for cursor.Next(ctx) {
		var obs models.Observation
		if err := cursor.Decode(&obs); err != nil {
			return nil, fmt.Errorf("failed to decode observation: %v", err)
		}
		observations = append(observations, obs)
	}
	return observations, nil
}

// GetRecentObservations returns a user's latest observations across all
// metric types, newest first.
func (r *ObservationRepository) GetRecentObservations(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.Observation, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "recorded_date", Value: -1}, {Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		logrus.WithError(err).WithField("userID", userID.Hex()).Error("Failed to fetch recent observations")
		return nil, fmt.Errorf("failed to fetch recent observations: %v", err)
	}
	defer cursor.Close(ctx)

	var observations []models.Observation
	for cursor.Next(ctx) {
		var obs models.Observation
		if err := cursor.Decode(&obs); err != nil {
			return nil, fmt.Errorf("failed to decode observation: %v", err)
		}
		observations = append(observations, obs)
	}
	return observations, nil
}

// CountObservations counts a user's observations, optionally only those
// recorded on or after since.
func (r *ObservationRepository) CountObservations(ctx context.Context, userID primitive.ObjectID, since *time.Time) (int64, error) {
	filter := bson.M{"user_id": userID}
	if since != nil {
		filter["recorded_date"] = bson.M{"$gte": models.Day(*since)}
	}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		logrus.WithError(err).WithField("userID", userID.Hex()).Error("Failed to count observations")
		return 0, fmt.Errorf("failed to count observations: %v", err)
	}
	return count, nil
}

// UpdateObservation updates the value and notes of an observation.
func (r *ObservationRepository) UpdateObservation(ctx context.Context, id primitive.ObjectID, value float64, notes string) (*models.Observation, error) {
	update := bson.M{
		"$set": bson.M{
			"value":      value,
			"notes":      notes,
			"updated_at": time.Now(),
		},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		logrus.WithError(err).WithField("observationID", id.Hex()).Error("Failed to update observation")
		return nil, fmt.Errorf("failed to update observation: %v", err)
	}

	logrus.WithField("observationID", id.Hex()).Info("Observation updated")
	return r.GetObservationByID(ctx, id)
}

// DeleteObservation removes an observation.
func (r *ObservationRepository) DeleteObservation(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logrus.WithError(err).WithField("observationID", id.Hex()).Error("Failed to delete observation")
		return fmt.Errorf("failed to delete observation: %v", err)
	}

	logrus.WithField("observationID", id.Hex()).Info("Observation deleted")
	return nil
}

// rangeFilter translates a half-open DateRange into a Mongo date filter.
func rangeFilter(r models.DateRange) bson.M {
	filter := bson.M{}
	if !r.Start.IsZero() {
		filter["$gte"] = models.Day(r.Start)
	}
	if !r.End.IsZero() {
		filter["$lt"] = models.Day(r.End)
	}
	return filter
}
