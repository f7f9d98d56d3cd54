package repository

import (
	"context"
	"errors"

	"github.com/gogotex/datastore/internal/document"
)

var (
	// ErrNotObject is returned when an insert is attempted with a nil document.
	ErrNotObject = errors.New("document must be a JSON object")
)

// Repository is the persistence contract every store backend satisfies.
type Repository interface {
	Insert(ctx context.Context, doc document.Document) error
	ListAll(ctx context.Context) ([]document.Document, error)
	Ping(ctx context.Context) error
}
