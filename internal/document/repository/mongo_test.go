package repository

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/gogotex/datastore/internal/document"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("insert", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewMongoRepo(mt.Coll)
		require.NoError(mt, repo.Insert(context.Background(), document.Document{"a": json.Number("1")}))
	})

	mt.Run("insert nil", func(mt *mtest.T) {
		repo := NewMongoRepo(mt.Coll)
		require.ErrorIs(mt, repo.Insert(context.Background(), nil), ErrNotObject)
	})

	mt.Run("insert write error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}))
		repo := NewMongoRepo(mt.Coll)
		err := repo.Insert(context.Background(), document.Document{"_id": "dup"})
		require.Error(mt, err)
		require.Contains(mt, err.Error(), "insert document")
	})

	mt.Run("list", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		first := mtest.CreateCursorResponse(1, ns, mtest.FirstBatch,
			bson.D{{Key: "a", Value: int32(1)}},
			bson.D{
				{Key: "nested", Value: bson.D{{Key: "b", Value: "x"}}},
				{Key: "arr", Value: bson.A{int32(1), "two", 2.5}},
				{Key: "flag", Value: true},
				{Key: "none", Value: nil},
			},
		)
		last := mtest.CreateCursorResponse(0, ns, mtest.NextBatch)
		mt.AddMockResponses(first, last)

		repo := NewMongoRepo(mt.Coll)
		list, err := repo.ListAll(context.Background())
		require.NoError(mt, err)
		require.Len(mt, list, 2)
		require.Equal(mt, document.Document{"a": json.Number("1")}, list[0])
		require.Equal(mt, document.Document{
			"nested": map[string]interface{}{"b": "x"},
			"arr":    []interface{}{json.Number("1"), "two", json.Number("2.5")},
			"flag":   true,
			"none":   nil,
		}, list[1])
	})

	mt.Run("list empty", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		repo := NewMongoRepo(mt.Coll)
		list, err := repo.ListAll(context.Background())
		require.NoError(mt, err)
		require.NotNil(mt, list)
		require.Empty(mt, list)
	})

	mt.Run("list large integers", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "i64", Value: int64(9007199254740993)}, {Key: "neg", Value: int64(-9007199254740995)}}))

		repo := NewMongoRepo(mt.Coll)
		list, err := repo.ListAll(context.Background())
		require.NoError(mt, err)
		require.Len(mt, list, 1)
		require.Equal(mt, json.Number("9007199254740993"), list[0]["i64"])
		require.Equal(mt, json.Number("-9007199254740995"), list[0]["neg"])

		out, err := json.Marshal(list[0])
		require.NoError(mt, err)
		require.JSONEq(mt, `{"i64":9007199254740993,"neg":-9007199254740995}`, string(out))
	})

	mt.Run("list bson-only types", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "ref", Value: oid}}))

		repo := NewMongoRepo(mt.Coll)
		list, err := repo.ListAll(context.Background())
		require.NoError(mt, err)
		require.Len(mt, list, 1)
		require.Equal(mt, map[string]interface{}{"$oid": oid.Hex()}, list[0]["ref"])
	})

	mt.Run("list command error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 13, Name: "Unauthorized", Message: "not authorized"}))
		repo := NewMongoRepo(mt.Coll)
		_, err := repo.ListAll(context.Background())
		require.Error(mt, err)
		require.Contains(mt, err.Error(), "find documents")
	})

	mt.Run("ping", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewMongoRepo(mt.Coll)
		require.NoError(mt, repo.Ping(context.Background()))
	})
}
