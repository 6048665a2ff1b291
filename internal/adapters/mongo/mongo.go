package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/rafaelleal24/storefront/internal/adapters/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

const appName = "storefront"

// NewConnection connects with majority write concern so an acknowledged
// catalog write survives a primary failover.
func NewConnection(config config.MongoConfig) (*mongo.Client, error) {
	clientOpts := options.Client().
		ApplyURI(config.URI).
		SetAppName(appName).
		SetTimeout(config.Timeout).
		SetConnectTimeout(config.ConnectTimeout).
		SetServerSelectionTimeout(config.ServerSelectionTimeout).
		SetMaxPoolSize(config.MaxPoolSize).
		SetMinPoolSize(config.MinPoolSize).
		SetRetryWrites(true).
		SetWriteConcern(writeconcern.Majority())

	ctx, cancel := context.WithTimeout(context.Background(), config.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := Ping(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

// Ping checks that the primary is reachable. Writes and transactions need it,
// so a secondary answering is not enough.
func Ping(ctx context.Context, client *mongo.Client) error {
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("failed to ping MongoDB primary: %w", err)
	}
	return nil
}

func Disconnect(client *mongo.Client) error {
	if client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}

	return nil
}
