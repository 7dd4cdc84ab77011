package notes

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/technotes/internal/common"
	"github.com/dmitrijs2005/technotes/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newMongoRepo(mt *mtest.T) (*MongoRepository, string) {
	repo := NewMongoRepository(mt.DB)
	repo.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return repo, mt.DB.Name() + "." + CollectionName
}

func TestMongoRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("list", func(mt *mtest.T) {
		repo, ns := newMongoRepo(mt)
		id, owner := primitive.NewObjectID(), primitive.NewObjectID()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "user", Value: owner},
			{Key: "title", Value: "Printer"},
			{Key: "text", Value: "Fix it"},
			{Key: "completed", Value: true},
		}))

		got, err := repo.List(context.Background())
		require.NoError(mt, err)
		require.Len(mt, got, 1)
		assert.Equal(mt, id.Hex(), got[0].ID)
		assert.Equal(mt, owner.Hex(), got[0].User)
		assert.True(mt, got[0].Completed)
	})

	mt.Run("get by id malformed", func(mt *mtest.T) {
		repo, _ := newMongoRepo(mt)

		_, err := repo.GetByID(context.Background(), "12")
		require.ErrorIs(mt, err, common.ErrorNotFound)
	})

	mt.Run("get by title", func(mt *mtest.T) {
		repo, ns := newMongoRepo(mt)
		id := primitive.NewObjectID()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "user", Value: primitive.NewObjectID()},
			{Key: "title", Value: "Printer"},
		}))

		got, err := repo.GetByTitle(context.Background(), "Printer")
		require.NoError(mt, err)
		assert.Equal(mt, id.Hex(), got.ID)
	})

	mt.Run("get by title missing", func(mt *mtest.T) {
		repo, ns := newMongoRepo(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.GetByTitle(context.Background(), "Printer")
		require.ErrorIs(mt, err, common.ErrorNotFound)
	})

	mt.Run("create", func(mt *mtest.T) {
		repo, _ := newMongoRepo(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		got, err := repo.Create(context.Background(), &models.Note{
			User:  primitive.NewObjectID().Hex(),
			Title: "Printer",
			Text:  "Fix it",
		})
		require.NoError(mt, err)
		assert.NotEmpty(mt, got.ID)
		assert.Equal(mt, repo.now().UTC(), got.UpdatedAt)
	})

	mt.Run("create malformed owner", func(mt *mtest.T) {
		repo, _ := newMongoRepo(mt)

		_, err := repo.Create(context.Background(), &models.Note{User: "x", Title: "Printer"})
		require.ErrorIs(mt, err, common.ErrorNotFound)
	})

	mt.Run("create duplicate title", func(mt *mtest.T) {
		repo, _ := newMongoRepo(mt)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Code: 11000, Message: "dup"}))

		_, err := repo.Create(context.Background(), &models.Note{User: primitive.NewObjectID().Hex(), Title: "Printer"})
		require.ErrorIs(mt, err, common.ErrorAlreadyExists)
	})

	mt.Run("update", func(mt *mtest.T) {
		repo, _ := newMongoRepo(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		n := &models.Note{ID: primitive.NewObjectID().Hex(), User: primitive.NewObjectID().Hex(), Title: "Printer"}
		_, err := repo.Update(context.Background(), n)
		require.NoError(mt, err)
	})

	mt.Run("update missing", func(mt *mtest.T) {
		repo, _ := newMongoRepo(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		n := &models.Note{ID: primitive.NewObjectID().Hex(), User: primitive.NewObjectID().Hex()}
		_, err := repo.Update(context.Background(), n)
		require.ErrorIs(mt, err, common.ErrorNotFound)
	})

	mt.Run("delete", func(mt *mtest.T) {
		repo, _ := newMongoRepo(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		require.NoError(mt, repo.Delete(context.Background(), primitive.NewObjectID().Hex()))
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		repo, _ := newMongoRepo(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := repo.Delete(context.Background(), primitive.NewObjectID().Hex())
		require.ErrorIs(mt, err, common.ErrorNotFound)
	})

	mt.Run("ensure indexes", func(mt *mtest.T) {
		repo, _ := newMongoRepo(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		require.NoError(mt, repo.EnsureIndexes(context.Background()))
	})
}
