// internal/app/store/feedback/feedbackstore.go
package feedbackstore

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

var ErrNotFound = errors.New("feedback not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("feedback")}
}

// Create inserts a feedback record. Records are insert-only; resubmitting
// for the same event adds a newer record rather than editing the old one.
func (s *Store) Create(ctx context.Context, fb models.Feedback) (models.Feedback, error) {
	now := time.Now().UTC()
	fb.ID = primitive.NewObjectID()
	fb.CreatedAt = now
	fb.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, fb); err != nil {
		return models.Feedback{}, err
	}
	return fb, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Feedback, error) {
	var fb models.Feedback
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&fb)
	if err == mongo.ErrNoDocuments {
		return models.Feedback{}, ErrNotFound
	}
	if err != nil {
		return models.Feedback{}, err
	}
	return fb, nil
}

// LatestByEvent returns the newest feedback record for an event.
func (s *Store) LatestByEvent(ctx context.Context, eventID primitive.ObjectID) (models.Feedback, error) {
	var fb models.Feedback
	err := s.c.FindOne(ctx, bson.M{"event_id": eventID},
		options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})).Decode(&fb)
	if err == mongo.ErrNoDocuments {
		return models.Feedback{}, ErrNotFound
	}
	if err != nil {
		return models.Feedback{}, err
	}
	return fb, nil
}

// FindByEvent lists every feedback record for an event, newest first.
func (s *Store) FindByEvent(ctx context.Context, eventID primitive.ObjectID) ([]models.Feedback, error) {
	cur, err := s.c.Find(ctx, bson.M{"event_id": eventID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var fbs []models.Feedback
	if err := cur.All(ctx, &fbs); err != nil {
		return nil, err
	}
	return fbs, nil
}
