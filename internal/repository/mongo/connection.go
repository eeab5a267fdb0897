// Package mongo implements the persistence interfaces on MongoDB.
package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RepositoryConfig holds the shared dependencies of the repository
// implementations in this package.
type RepositoryConfig struct {
	DB          *mongo.Database
	Collections *CollectionNames
	Logger      *slog.Logger
}

// Connect creates a MongoDB client from a connection string and verifies the
// connection with a ping. The returned client is safe for concurrent use.
func Connect(ctx context.Context, uri, database string) (*mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client.Database(database), nil
}
