package repository

import (
	"bytes"
	"context"
	"fmt"

	"github.com/gogotex/datastore/internal/document"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoRepo implements a MongoDB-backed repository for documents.
// Documents are inserted as-is; the server assigns _id, which is projected
// away again on read.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	return &MongoRepo{col: col}
}

func (m *MongoRepo) Insert(ctx context.Context, doc document.Document) error {
	if doc == nil {
		return ErrNotObject
	}
	if _, err := m.col.InsertOne(ctx, map[string]interface{}(doc)); err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (m *MongoRepo) ListAll(ctx context.Context) ([]document.Document, error) {
	opts := options.Find().SetProjection(bson.D{{Key: document.IDField, Value: 0}})
	cur, err := m.col.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find documents: %w", err)
	}
	defer cur.Close(ctx)

	out := []document.Document{}
	for cur.Next(ctx) {
		var raw bson.D
		if err := cur.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		d, err := fromBSON(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return out, nil
}

func (m *MongoRepo) Ping(ctx context.Context) error {
	return m.col.Database().Client().Ping(ctx, readpref.Primary())
}

// fromBSON converts a stored document to plain JSON types through relaxed
// Extended JSON: numbers keep their literal text, BSON-only types become
// $-wrapped objects.
func fromBSON(raw bson.D) (document.Document, error) {
	b, err := bson.MarshalExtJSON(raw, false, false)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	d, err := document.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode document json: %w", err)
	}
	return d, nil
}
