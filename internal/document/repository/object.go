package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gogotex/datastore/internal/document"
	"github.com/google/uuid"
)

// ObjectStore is the subset of an object storage client the object
// repository needs. storage.MinIOStorage satisfies it.
type ObjectStore interface {
	UploadFile(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	DownloadFile(ctx context.Context, key string) (io.ReadCloser, error)
	ListKeys(ctx context.Context, prefix string) ([]string, error)
	Ping(ctx context.Context) error
}

// ObjectRepo stores each document as its own JSON object under prefix.
type ObjectRepo struct {
	store  ObjectStore
	prefix string
}

func NewObjectRepo(store ObjectStore, prefix string) *ObjectRepo {
	return &ObjectRepo{store: store, prefix: prefix}
}

func (o *ObjectRepo) key() string {
	return o.prefix + uuid.NewString() + ".json"
}

func (o *ObjectRepo) Insert(ctx context.Context, doc document.Document) error {
	if doc == nil {
		return ErrNotObject
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := o.store.UploadFile(ctx, o.key(), bytes.NewReader(b), int64(len(b)), "application/json"); err != nil {
		return fmt.Errorf("upload document: %w", err)
	}
	return nil
}

func (o *ObjectRepo) ListAll(ctx context.Context) ([]document.Document, error) {
	keys, err := o.store.ListKeys(ctx, o.prefix)
	if err != nil {
		return nil, fmt.Errorf("list objects: %w", err)
	}
	out := make([]document.Document, 0, len(keys))
	for _, k := range keys {
		if !strings.HasSuffix(k, ".json") {
			continue
		}
		d, err := o.read(ctx, k)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (o *ObjectRepo) read(ctx context.Context, key string) (document.Document, error) {
	rc, err := o.store.DownloadFile(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", key, err)
	}
	defer rc.Close()
	d, err := document.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return d, nil
}

func (o *ObjectRepo) Ping(ctx context.Context) error {
	return o.store.Ping(ctx)
}
