// internal/app/store/jobs/jobstore.go
package jobstore

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

var (
	ErrNotFound      = errors.New("job post not found")
	ErrAlreadyLinked = errors.New("candidate already added to this job post")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("job_posts")}
}

func (s *Store) Create(ctx context.Context, job models.JobPost) (models.JobPost, error) {
	now := time.Now().UTC()
	job.ID = primitive.NewObjectID()
	if job.Status == "" {
		job.Status = models.JobActive
	}
	if job.Priority == "" {
		job.Priority = models.JobPriorityMedium
	}
	if job.PostDate.IsZero() {
		job.PostDate = now
	}
	job.CreatedAt = now
	job.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, job); err != nil {
		return models.JobPost{}, err
	}
	return job, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.JobPost, error) {
	var job models.JobPost
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&job)
	if err == mongo.ErrNoDocuments {
		return models.JobPost{}, ErrNotFound
	}
	if err != nil {
		return models.JobPost{}, err
	}
	return job, nil
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (models.JobPost, error) {
	set["updated_at"] = time.Now().UTC()
	var job models.JobPost
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&job)
	if err == mongo.ErrNoDocuments {
		return models.JobPost{}, ErrNotFound
	}
	if err != nil {
		return models.JobPost{}, err
	}
	return job, nil
}

// AddCandidate links a candidate to the posting. The filter excludes
// postings that already carry the candidate, so a double add maps to
// ErrAlreadyLinked rather than a duplicate entry.
func (s *Store) AddCandidate(ctx context.Context, id primitive.ObjectID, link models.JobCandidate) (models.JobPost, error) {
	var job models.JobPost
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{
			"_id":                      id,
			"candidates.candidate_id": bson.M{"$ne": link.CandidateID},
		},
		bson.M{
			"$push": bson.M{"candidates": link},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&job)
	if err == mongo.ErrNoDocuments {
		// Distinguish a missing post from an existing link.
		if _, getErr := s.GetByID(ctx, id); getErr != nil {
			return models.JobPost{}, getErr
		}
		return models.JobPost{}, ErrAlreadyLinked
	}
	if err != nil {
		return models.JobPost{}, err
	}
	return job, nil
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.JobPost, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var jobs []models.JobPost
	if err := cur.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
