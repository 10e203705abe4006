// internal/app/store/events/eventstore.go
package eventstore

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

var ErrNotFound = errors.New("event not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("events")}
}

// Create inserts a new event record. Status defaults to pending.
func (s *Store) Create(ctx context.Context, ev models.Event) (models.Event, error) {
	now := time.Now().UTC()
	ev.ID = primitive.NewObjectID()
	if ev.Status == "" {
		ev.Status = models.EventPending
	}
	ev.CreatedAt = now
	ev.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, ev); err != nil {
		return models.Event{}, err
	}
	return ev, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Event, error) {
	var ev models.Event
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&ev)
	if err == mongo.ErrNoDocuments {
		return models.Event{}, ErrNotFound
	}
	if err != nil {
		return models.Event{}, err
	}
	return ev, nil
}

// SetStatus updates the event status field only.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (models.Event, error) {
	return s.findOneAndUpdate(ctx, id, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
}

// Reschedule moves the interview date and appends the prior date to the
// reschedule history in one atomic update.
func (s *Store) Reschedule(ctx context.Context, id primitive.ObjectID, newDate time.Time, entry models.Reschedule) (models.Event, error) {
	return s.findOneAndUpdate(ctx, id, bson.M{
		"$set": bson.M{
			"interview_date": newDate.UTC(),
			"updated_at":     time.Now().UTC(),
		},
		"$push": bson.M{"reschedule_history": entry},
	})
}

// MarkReminderSent flags the event so the reminder sweep does not mail
// the same event twice.
func (s *Store) MarkReminderSent(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"reminder_sent": true,
		"updated_at":    time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (models.Event, error) {
	var ev models.Event
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&ev)
	if err == mongo.ErrNoDocuments {
		return models.Event{}, ErrNotFound
	}
	if err != nil {
		return models.Event{}, err
	}
	return ev, nil
}

// FindByCandidate lists every event for one candidate, newest interview
// first.
func (s *Store) FindByCandidate(ctx context.Context, candidateID primitive.ObjectID) ([]models.Event, error) {
	return s.Find(ctx, bson.M{"candidate.candidate_id": candidateID},
		options.Find().SetSort(bson.D{{Key: "interview_date", Value: -1}}))
}

// FindByInterviewer lists events assigned to one interviewer.
func (s *Store) FindByInterviewer(ctx context.Context, interviewerID primitive.ObjectID, filter bson.M, opts ...*options.FindOptions) ([]models.Event, error) {
	f := bson.M{"interviewer.interviewer_id": interviewerID}
	for k, v := range filter {
		f[k] = v
	}
	return s.Find(ctx, f, opts...)
}

// FindDueForReminder returns pending events whose interview falls inside
// the window and which have not been reminded yet.
func (s *Store) FindDueForReminder(ctx context.Context, from, to time.Time) ([]models.Event, error) {
	return s.Find(ctx, bson.M{
		"status":         models.EventPending,
		"reminder_sent":  false,
		"interview_date": bson.M{"$gte": from.UTC(), "$lt": to.UTC()},
	})
}

func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Event, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var evs []models.Event
	if err := cur.All(ctx, &evs); err != nil {
		return nil, err
	}
	return evs, nil
}

func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
