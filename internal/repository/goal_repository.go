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

// GoalRepository handles database operations related to goals.
type GoalRepository struct {
	collection *mongo.Collection
}

// NewGoalRepository creates a new instance of GoalRepository.
func NewGoalRepository(db *mongo.Database) *GoalRepository {
	return &GoalRepository{
		collection: db.Collection("goals"),
	}
}

// EnsureIndexes enforces at most one active goal per (user, metric type,
// period kind) via a partial unique index.
func (r *GoalRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "metric_type_id", Value: 1},
			{Key: "period", Value: 1},
		},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"active": true}),
	})
	if err != nil {
		return fmt.Errorf("failed to create goal index: %v", err)
	}
	return nil
}

// CreateGoal creates a new goal in the database.
func (r *GoalRepository) CreateGoal(ctx context.Context, goal *models.Goal) (*models.Goal, error) {
	goal.CreatedAt = time.Now()
	goal.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, goal)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert goal")
		return nil, fmt.Errorf("failed to insert goal: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logrus.Error("Failed to cast inserted ID to ObjectID")
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	goal.ID = insertedID

	logrus.WithField("goalID", goal.ID.Hex()).Info("Goal created successfully")
	return goal, nil
}

// GetGoalByID fetches a goal by its ID.
func (r *GoalRepository) GetGoalByID(ctx context.Context, id primitive.ObjectID) (*models.Goal, error) {
	var goal models.Goal
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&goal)
	if err != nil {
		logrus.WithError(err).WithField("goalID", id.Hex()).Warn("Failed to find goal by ID")
		return nil, fmt.Errorf("failed to find goal: %v", err)
	}
	return &goal, nil
}

// GetGoals fetches a user's goals in creation order. Inactive goals are
// included only when requested; creation order is what the dashboard uses
// to break period-end ties deterministically.
func (r *GoalRepository) GetGoals(ctx context.Context, userID primitive.ObjectID, includeInactive bool) ([]models.Goal, error) {
	filter := bson.M{"user_id": userID}
	if !includeInactive {
		filter["active"] = true
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		logrus.WithError(err).WithField("userID", userID.Hex()).Error("Failed to fetch goals")
		return nil, fmt.Errorf("failed to fetch goals: %v", err)
	}
	defer cursor.Close(ctx)

	var goals []models.Goal
	for cursor.Next(ctx) {
		var goal models.Goal
		if err := cursor.Decode(&goal); err != nil {
			logrus.WithError(err).Error("Failed to decode goal")
			return nil, fmt.Errorf("failed to decode goal: %v", err)
		}
		goals = append(goals, goal)
	}

	logrus.WithFields(logrus.Fields{
		"userID": userID.Hex(),
		"count":  len(goals),
	}).Info("Goals fetched successfully")
	return goals, nil
}

// GetActiveGoal fetches the single active goal for (user, metric type,
// period), if any. Used to enforce uniqueness before insert.
func (r *GoalRepository) GetActiveGoal(ctx context.Context, userID, metricTypeID primitive.ObjectID, period models.PeriodKind) (*models.Goal, error) {
	var goal models.Goal
	filter := bson.M{
		"user_id":        userID,
		"metric_type_id": metricTypeID,
		"period":         period,
		"active":         true,
	}
	err := r.collection.FindOne(ctx, filter).Decode(&goal)
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// UpdateGoal updates an existing goal in the database.
func (r *GoalRepository) UpdateGoal(ctx context.Context, id primitive.ObjectID, goal *models.Goal) (*models.Goal, error) {
	goal.UpdatedAt = time.Now()

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": goal})
	if err != nil {
		logrus.WithError(err).WithField("goalID", id.Hex()).Error("Failed to update goal")
		return nil, fmt.Errorf("failed to update goal: %v", err)
	}

	logrus.WithField("goalID", id.Hex()).Info("Goal updated successfully")
	return goal, nil
}

// DeactivateGoal flips the active flag off. This is the only goal mutation
// the evaluation core ever observes; a deactivated goal stays readable but
// terminal.
func (r *GoalRepository) DeactivateGoal(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{
		"$set": bson.M{
			"active":     false,
			"updated_at": time.Now(),
		},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		logrus.WithError(err).WithField("goalID", id.Hex()).Error("Failed to deactivate goal")
		return fmt.Errorf("failed to deactivate goal: %v", err)
	}

	logrus.WithField("goalID", id.Hex()).Info("Goal deactivated")
	return nil
}

// DeleteGoal deletes a goal from the database by its ID.
func (r *GoalRepository) DeleteGoal(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logrus.WithError(err).WithField("goalID", id.Hex()).Error("Failed to delete goal")
		return fmt.Errorf("failed to delete goal: %v", err)
	}

	logrus.WithField("goalID", id.Hex()).Info("Goal deleted successfully")
	return nil
}
