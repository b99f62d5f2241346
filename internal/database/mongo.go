package database

import (
	"context"
	"fmt"
	"time"

	"quickbite/internal/config"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const mongoTimeout = 10 * time.Second

// ConnectMongo connects to MongoDB and verifies the primary is reachable.
// The returned database handle shares the client; close it with DisconnectMongo.
func ConnectMongo(ctx context.Context, cfg config.MongoConfig, logger zerolog.Logger) (*mongo.Database, error) {
	logger = logger.With().Str("component", "mongo").Logger()

	connectCtx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	logger.Info().
		Str("database", cfg.Database).
		Msg("connecting to MongoDB")

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.Info().Msg("MongoDB connection established successfully")

	return client.Database(cfg.Database), nil
}

// DisconnectMongo gracefully disconnects the client behind db.
func DisconnectMongo(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()
	return db.Client().Disconnect(ctx)
}
