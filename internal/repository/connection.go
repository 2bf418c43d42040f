package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func ConnectMongoDB(ctx context.Context, uri, database string) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(100).
		SetMinPoolSize(10)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Ping to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(database), nil
}

// EnsureIndexes creates the indexes every collection relies on. Safe to call
// on every startup, index creation is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	creators := []interface {
		CreateIndexes(ctx context.Context) error
	}{
		&mongoProductRepository{collection: db.Collection("products")},
		&mongoUserRepository{collection: db.Collection("users")},
		&mongoOrderRepository{collection: db.Collection("orders")},
		&mongoPromoRepository{collection: db.Collection("promocodes")},
	}
	for _, c := range creators {
		if err := c.CreateIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}
