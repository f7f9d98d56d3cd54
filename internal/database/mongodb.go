package database

import (
	"context"
	"fmt"
	"time"

	"github.com/gogotex/datastore/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ConnectMongo creates a client for uri. The driver connects lazily, so a
// nil error does not mean the server is reachable; use WaitForMongo for that.
// Caller should call client.Disconnect(ctx).
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	clientOpts := options.Client().ApplyURI(uri).SetServerSelectionTimeout(timeout)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	return client, nil
}

// WaitForMongo pings the primary up to attempts times, doubling the pause
// between tries starting at backoff. It returns the last ping error.
func WaitForMongo(ctx context.Context, client *mongo.Client, attempts int, backoff, timeout time.Duration) error {
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		err = client.Ping(pctx, readpref.Primary())
		cancel()
		if err == nil {
			return nil
		}
		logger.Warnf("attempt %d/%d: failed to reach MongoDB: %v", attempt, attempts, err)
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return fmt.Errorf("mongo ping: %w", err)
}
