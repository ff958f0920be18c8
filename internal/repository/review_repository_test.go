package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"review-app/internal/models"
)

func reviewDoc(id primitive.ObjectID, userName string, createdAt time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "reviewId", Value: "rv-" + userName},
		{Key: "productId", Value: "P1"},
		{Key: "userId", Value: nil},
		{Key: "userName", Value: userName},
		{Key: "rating", Value: 4.5},
		{Key: "content", Value: ""},
		{Key: "images", Value: bson.A{}},
		{Key: "createdAt", Value: createdAt},
		{Key: "updatedAt", Value: createdAt},
		{Key: "helpful", Value: 0},
		{Key: "helpfulUsers", Value: bson.A{}},
		{Key: "status", Value: models.StatusActive},
	}
}

func namespace(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func TestReviewRepository_Save(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("inserts stamped copy", func(mt *mtest.T) {
		repo := &ReviewRepository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		in := &models.Review{ProductID: "P1", UserName: "Alice", Rating: 4.5}
		got, err := repo.Save(context.Background(), in)
		require.NoError(mt, err)

		assert.False(mt, got.ID.IsZero())
		assert.Equal(mt, models.StatusActive, got.Status)
		assert.True(mt, in.ID.IsZero())

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "insert", evt.CommandName)
		docs, err := evt.Command.Lookup("documents").Array().Values()
		require.NoError(mt, err)
		require.Len(mt, docs, 1)
		assert.Equal(mt, got.ID, docs[0].Document().Lookup("_id").ObjectID())
		assert.Equal(mt, "Alice", docs[0].Document().Lookup("userName").StringValue())
	})

	mt.Run("write error wraps persistence", func(mt *mtest.T) {
		repo := &ReviewRepository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "duplicate key error",
		}))

		_, err := repo.Save(context.Background(), &models.Review{ProductID: "P1"})
		require.ErrorIs(mt, err, models.ErrPersistence)
		assert.Contains(mt, err.Error(), "insert review")
	})
}

func TestReviewRepository_ListRecent(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	mt.Run("sorts newest first and applies limit", func(mt *mtest.T) {
		repo := &ReviewRepository{collection: mt.Coll}
		newer, older := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			reviewDoc(newer, "B", base.Add(time.Second)),
			reviewDoc(older, "A", base),
		))

		reviews, err := repo.ListRecent(context.Background(), 3)
		require.NoError(mt, err)
		require.Len(mt, reviews, 2)
		assert.Equal(mt, newer, reviews[0].ID)
		assert.Equal(mt, "B", reviews[0].UserName)
		assert.Equal(mt, older, reviews[1].ID)
		assert.True(mt, reviews[1].CreatedAt.Equal(base))

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "find", evt.CommandName)
		assert.Equal(mt, int64(3), evt.Command.Lookup("limit").AsInt64())

		sortDoc := evt.Command.Lookup("sort").Document()
		elems, err := sortDoc.Elements()
		require.NoError(mt, err)
		require.Len(mt, elems, 2)
		assert.Equal(mt, "createdAt", elems[0].Key())
		assert.Equal(mt, int64(-1), elems[0].Value().AsInt64())
		assert.Equal(mt, "_id", elems[1].Key())
		assert.Equal(mt, int64(-1), elems[1].Value().AsInt64())
	})

	mt.Run("non-positive limit uses default", func(mt *mtest.T) {
		repo := &ReviewRepository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		_, err := repo.ListRecent(context.Background(), 0)
		require.NoError(mt, err)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, int64(models.DefaultRecentLimit), evt.Command.Lookup("limit").AsInt64())
	})

	mt.Run("empty collection returns empty slice", func(mt *mtest.T) {
		repo := &ReviewRepository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		reviews, err := repo.ListRecent(context.Background(), 5)
		require.NoError(mt, err)
		assert.NotNil(mt, reviews)
		assert.Empty(mt, reviews)
	})

	mt.Run("find error wraps persistence", func(mt *mtest.T) {
		repo := &ReviewRepository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 2, Name: "BadValue", Message: "bad query",
		}))

		_, err := repo.ListRecent(context.Background(), 5)
		require.ErrorIs(mt, err, models.ErrPersistence)
		assert.Contains(mt, err.Error(), "find reviews")
	})

	mt.Run("decode error wraps persistence", func(mt *mtest.T) {
		repo := &ReviewRepository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "rating", Value: "five"}},
		))

		_, err := repo.ListRecent(context.Background(), 5)
		require.ErrorIs(mt, err, models.ErrPersistence)
		assert.Contains(mt, err.Error(), "decode reviews")
	})
}

func TestReviewRepository_EnsureIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("creates recent index", func(mt *mtest.T) {
		repo := &ReviewRepository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		require.NoError(mt, repo.EnsureIndexes(context.Background()))

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "createIndexes", evt.CommandName)
		indexes, err := evt.Command.Lookup("indexes").Array().Values()
		require.NoError(mt, err)
		require.Len(mt, indexes, 1)
		keys, err := indexes[0].Document().Lookup("key").Document().Elements()
		require.NoError(mt, err)
		require.Len(mt, keys, 2)
		assert.Equal(mt, "createdAt", keys[0].Key())
		assert.Equal(mt, "_id", keys[1].Key())
	})

	mt.Run("command error wraps persistence", func(mt *mtest.T) {
		repo := &ReviewRepository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 13, Name: "Unauthorized", Message: "not authorized",
		}))

		err := repo.EnsureIndexes(context.Background())
		assert.ErrorIs(mt, err, models.ErrPersistence)
	})
}
