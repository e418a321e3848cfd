package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/HealthMetrics_Tracker/internal/config"
	"github.com/Dias221467/HealthMetrics_Tracker/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ConnectDB establishes the MongoDB connection and returns the database
// handle the repositories operate on.
func ConnectDB(cfg *config.Config) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %v", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %v", err)
	}

	logger.Log.WithField("database", cfg.DBName).Info("Connected to MongoDB")
	return client.Database(cfg.DBName), nil
}
