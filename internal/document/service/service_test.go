package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gogotex/datastore/internal/config"
	"github.com/gogotex/datastore/internal/document"
	"github.com/gogotex/datastore/internal/storage"
	"github.com/gogotex/datastore/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

// fakeRepo returns canned results for testing
type fakeRepo struct {
	docs      []document.Document
	insertErr error
	listErr   error
	inserted  []document.Document
}

func (f *fakeRepo) Insert(_ context.Context, d document.Document) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, d)
	return nil
}

func (f *fakeRepo) ListAll(context.Context) ([]document.Document, error) {
	return f.docs, f.listErr
}

func (f *fakeRepo) Ping(context.Context) error { return nil }

func TestListAll_StripsIdentifier(t *testing.T) {
	repo := &fakeRepo{docs: []document.Document{{"_id": "abc", "a": float64(1)}}}
	svc := New(repo)

	list, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, []document.Document{{"a": float64(1)}}, list)
}

func TestListAll_EmptyIsNotNil(t *testing.T) {
	svc := New(&fakeRepo{})
	list, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)
}

func TestInsert_CountsAndErrors(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{}
	svc := New(repo)

	inserted := testutil.ToFloat64(metrics.DocumentsInserted)
	require.NoError(t, svc.Insert(ctx, document.Document{"k": "v"}))
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.DocumentsInserted)-inserted)
	require.Len(t, repo.inserted, 1)

	failures := testutil.ToFloat64(metrics.StoreErrors.WithLabelValues("insert"))
	repo.insertErr = errors.New("db down")
	require.EqualError(t, svc.Insert(ctx, document.Document{}), "db down")
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.StoreErrors.WithLabelValues("insert"))-failures)

	listFailures := testutil.ToFloat64(metrics.StoreErrors.WithLabelValues("list"))
	repo.listErr = errors.New("db down")
	_, err := svc.ListAll(ctx)
	require.Error(t, err)
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.StoreErrors.WithLabelValues("list"))-listFailures)
}

func TestMemoryService_RoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := NewMemoryService()
	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Insert(ctx, document.Document{"n": float64(i)}))
	}
	list, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.NoError(t, svc.Ping(ctx))
}

func TestOpen_Backends(t *testing.T) {
	ctx := context.Background()

	svc, closeFn, err := Open(ctx, &config.Config{Store: config.StoreConfig{Backend: "memory"}})
	require.NoError(t, err)
	require.NotNil(t, svc)
	require.NoError(t, closeFn(ctx))

	_, _, err = Open(ctx, &config.Config{Store: config.StoreConfig{Backend: "cassandra"}})
	require.ErrorIs(t, err, ErrUnknownBackend)

	_, _, err = Open(ctx, &config.Config{Store: config.StoreConfig{Backend: "minio"}})
	require.ErrorIs(t, err, storage.ErrNotConfigured)

	_, _, err = Open(ctx, &config.Config{Store: config.StoreConfig{Backend: "mongo"}, MongoDB: config.MongoDBConfig{URI: "not-a-uri", ConnectAttempts: 1}})
	require.Error(t, err)
}
