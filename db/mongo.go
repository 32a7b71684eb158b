package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"go-shop/config"
)

// Connect opens a MongoDB client and verifies the connection with a ping.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("db: connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("db: ping: %w", err)
	}

	return client, nil
}

// EnsureIndexes creates the unique indexes the application relies on.
// Uniqueness of emails and catalog names is enforced here, at the storage
// layer, so concurrent inserts of the same value cannot both succeed.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)

	indexes := map[string]mongo.IndexModel{
		"users":      {Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		"categories": {Keys: bson.D{{Key: "name", Value: 1}}, Options: unique},
		"products":   {Keys: bson.D{{Key: "name", Value: 1}}, Options: unique},
	}

	for collection, model := range indexes {
		if _, err := database.Collection(collection).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("db: create index on %s: %w", collection, err)
		}
	}

	return nil
}
