// internal/app/store/uploads/uploadstore.go
package uploadstore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/talentgate/hirehub/internal/domain/models"
)

var ErrNotFound = errors.New("file not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("uploads")}
}

func (s *Store) Create(ctx context.Context, f models.StoredFile) (models.StoredFile, error) {
	f.ID = primitive.NewObjectID()
	f.UploadedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, f); err != nil {
		return models.StoredFile{}, err
	}
	return f, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.StoredFile, error) {
	var f models.StoredFile
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&f)
	if err == mongo.ErrNoDocuments {
		return models.StoredFile{}, ErrNotFound
	}
	if err != nil {
		return models.StoredFile{}, err
	}
	return f, nil
}

// FindRecent lists the most recently uploaded files.
func (s *Store) FindRecent(ctx context.Context, limit int64) ([]models.StoredFile, error) {
	cur, err := s.c.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "uploaded_at", Value: -1}}).SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var files []models.StoredFile
	if err := cur.All(ctx, &files); err != nil {
		return nil, err
	}
	return files, nil
}
