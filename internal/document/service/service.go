package service

import (
	"context"

	"github.com/gogotex/datastore/internal/document"
	"github.com/gogotex/datastore/internal/document/repository"
	"github.com/gogotex/datastore/pkg/metrics"
	"go.mongodb.org/mongo-driver/mongo"
)

// Service defines the document operations used by the handler layer.
type Service interface {
	Insert(ctx context.Context, d document.Document) error
	ListAll(ctx context.Context) ([]document.Document, error)
	Ping(ctx context.Context) error
}

// New returns a Service over any repository.
func New(repo repository.Repository) Service {
	return &documentService{repo: repo}
}

// NewMemoryService returns a Service backed by the in-memory repository.
func NewMemoryService() Service {
	return New(repository.NewMemoryRepo())
}

// NewMongoService returns a Service backed by a MongoDB collection.
// Caller is responsible for creating the collection (and client) and passing it in.
func NewMongoService(col *mongo.Collection) Service {
	return New(repository.NewMongoRepo(col))
}

// NewObjectService returns a Service storing one object per document under prefix.
func NewObjectService(store repository.ObjectStore, prefix string) Service {
	return New(repository.NewObjectRepo(store, prefix))
}

type documentService struct {
	repo repository.Repository
}

func (s *documentService) Insert(ctx context.Context, d document.Document) error {
	if err := s.repo.Insert(ctx, d); err != nil {
		metrics.StoreErrors.WithLabelValues("insert").Inc()
		return err
	}
	metrics.DocumentsInserted.Inc()
	return nil
}

// ListAll returns every stored document with the identifier removed. The
// result is never nil so it encodes as [] when the collection is empty.
func (s *documentService) ListAll(ctx context.Context) ([]document.Document, error) {
	list, err := s.repo.ListAll(ctx)
	if err != nil {
		metrics.StoreErrors.WithLabelValues("list").Inc()
		return nil, err
	}
	out := make([]document.Document, 0, len(list))
	for _, d := range list {
		out = append(out, d.WithoutID())
	}
	metrics.DocumentsListed.Observe(float64(len(out)))
	return out, nil
}

func (s *documentService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
