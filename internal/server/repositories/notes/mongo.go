package notes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/technotes/internal/common"
	"github.com/dmitrijs2005/technotes/internal/server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the Mongo collection holding notes.
const CollectionName = "notes"

type noteDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	User      primitive.ObjectID `bson:"user"`
	Title     string             `bson:"title"`
	Text      string             `bson:"text"`
	Completed bool               `bson:"completed"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d *noteDocument) toModel() *models.Note {
	return &models.Note{
		ID:        d.ID.Hex(),
		User:      d.User.Hex(),
		Title:     d.Title,
		Text:      d.Text,
		Completed: d.Completed,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type MongoRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CollectionName), now: time.Now}
}

// EnsureIndexes creates the unique title index and the owner lookup index.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "title", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("title_unique"),
		},
		{
			Keys:    bson.D{{Key: "user", Value: 1}},
			Options: options.Index().SetName("user"),
		},
	})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *MongoRepository) List(ctx context.Context) ([]models.Note, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	var docs []noteDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	notes := make([]models.Note, 0, len(docs))
	for i := range docs {
		notes = append(notes, *docs[i].toModel())
	}
	return notes, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*models.Note, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, common.ErrorNotFound
	}
	return r.findOne(ctx, bson.D{{Key: "_id", Value: oid}})
}

func (r *MongoRepository) GetByTitle(ctx context.Context, title string) (*models.Note, error) {
	return r.findOne(ctx, bson.D{{Key: "title", Value: title}})
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.D) (*models.Note, error) {
	var doc noteDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return doc.toModel(), nil
}

func (r *MongoRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	owner, err := primitive.ObjectIDFromHex(note.User)
	if err != nil {
		return nil, fmt.Errorf("owner %q: %w", note.User, common.ErrorNotFound)
	}

	now := r.now().UTC()
	doc := noteDocument{
		User:      owner,
		Title:     note.Title,
		Text:      note.Text,
		Completed: note.Completed,
		CreatedAt: now,
		UpdatedAt: now,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		note.ID = oid.Hex()
	}
	note.CreatedAt = now
	note.UpdatedAt = now
	return note, nil
}

func (r *MongoRepository) Update(ctx context.Context, note *models.Note) (*models.Note, error) {
	oid, err := primitive.ObjectIDFromHex(note.ID)
	if err != nil {
		return nil, common.ErrorNotFound
	}
	owner, err := primitive.ObjectIDFromHex(note.User)
	if err != nil {
		return nil, fmt.Errorf("owner %q: %w", note.User, common.ErrorNotFound)
	}

	now := r.now().UTC()
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "user", Value: owner},
		{Key: "title", Value: note.Title},
		{Key: "text", Value: note.Text},
		{Key: "completed", Value: note.Completed},
		{Key: "updatedAt", Value: now},
	}}}

	res, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: oid}}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, common.ErrorNotFound
	}

	note.UpdatedAt = now
	return note, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return common.ErrorNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if res.DeletedCount == 0 {
		return common.ErrorNotFound
	}
	return nil
}
