package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gogotex/datastore/internal/config"
	"github.com/gogotex/datastore/internal/database"
	"github.com/gogotex/datastore/internal/storage"
	"github.com/gogotex/datastore/pkg/logger"
)

var ErrUnknownBackend = errors.New("unknown store backend")

// CloseFunc releases whatever Open acquired.
type CloseFunc func(ctx context.Context) error

func noopClose(context.Context) error { return nil }

// Open builds the Service selected by cfg.Store.Backend.
//
// For mongo the client is created once and pinged with backoff. If the
// server never answers, Open still succeeds: requests fail until the driver
// reaches it and /ready reports the store as down.
func Open(ctx context.Context, cfg *config.Config) (Service, CloseFunc, error) {
	switch cfg.Store.Backend {
	case "memory":
		logger.Infof("using in-memory document store")
		return NewMemoryService(), noopClose, nil

	case "minio":
		st, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
		if err != nil {
			return nil, nil, fmt.Errorf("open minio store: %w", err)
		}
		logger.Infof("using MinIO document store: bucket=%s prefix=%s", cfg.MinIO.Bucket, cfg.MinIO.Prefix)
		return NewObjectService(st, cfg.MinIO.Prefix), noopClose, nil

	case "", "mongo":
		client, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		if err != nil {
			return nil, nil, fmt.Errorf("open mongo store: %w", err)
		}
		if err := database.WaitForMongo(ctx, client, cfg.MongoDB.ConnectAttempts, time.Second, cfg.MongoDB.Timeout); err != nil {
			logger.Warnf("could not reach MongoDB after %d attempts, continuing: %v", cfg.MongoDB.ConnectAttempts, err)
		}
		col := client.Database(cfg.MongoDB.Database).Collection(cfg.MongoDB.Collection)
		logger.Infof("using MongoDB document store: %s.%s", cfg.MongoDB.Database, cfg.MongoDB.Collection)
		return NewMongoService(col), client.Disconnect, nil
	}
	return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Store.Backend)
}
