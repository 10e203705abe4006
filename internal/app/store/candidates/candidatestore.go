// internal/app/store/candidates/candidatestore.go
package candidatestore

import (
	"context"
	"errors"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/talentgate/hirehub/internal/app/system/search"
	"github.com/talentgate/hirehub/internal/domain/models"
)

// Sentinel errors surfaced to the engines.
var (
	ErrNotFound  = errors.New("candidate not found")
	ErrDuplicate = errors.New("a candidate with this email or mobile already exists")
)

// SearchFields lists every string-typed candidate field scanned by the
// universal keyword search.
var SearchFields = []string{
	"name", "email", "mobile", "degree", "domain", "dob",
	"graduation_year", "skills", "self_rating", "relevent_exp",
	"exp_including_training", "experience_years", "current_ctc",
	"expected_ctc", "job_change_reason", "interviews_attended",
	"companies_applied_six_months", "offer_details", "individual_role",
	"foreign_work", "bond_willing", "bond_details",
	"preferred_location", "current_location", "availability",
	"poc", "resume", "status",
}

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("candidates")}
}

// Create inserts a new candidate. Email is lowercased; status defaults
// to pending; the remark history starts empty.
func (s *Store) Create(ctx context.Context, cand models.Candidate) (models.Candidate, error) {
	now := time.Now().UTC()
	cand.ID = primitive.NewObjectID()
	cand.Email = strings.ToLower(strings.TrimSpace(cand.Email))
	cand.Mobile = strings.TrimSpace(cand.Mobile)
	if cand.Status == "" {
		cand.Status = models.CandidatePending
	}
	if cand.Remark == nil {
		cand.Remark = []models.Remark{}
	}
	cand.CreatedAt = now
	cand.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, cand); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Candidate{}, ErrDuplicate
		}
		return models.Candidate{}, err
	}
	return cand, nil
}

// GetByID loads one candidate.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Candidate, error) {
	var cand models.Candidate
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&cand)
	if err == mongo.ErrNoDocuments {
		return models.Candidate{}, ErrNotFound
	}
	if err != nil {
		return models.Candidate{}, err
	}
	return cand, nil
}

// GetByEmailOrMobile returns the existing record colliding with either
// identity field, or ErrNotFound.
func (s *Store) GetByEmailOrMobile(ctx context.Context, email, mobile string) (models.Candidate, error) {
	var cand models.Candidate
	filter := bson.M{"$or": []bson.M{
		{"email": strings.ToLower(strings.TrimSpace(email))},
		{"mobile": strings.TrimSpace(mobile)},
	}}
	err := s.c.FindOne(ctx, filter).Decode(&cand)
	if err == mongo.ErrNoDocuments {
		return models.Candidate{}, ErrNotFound
	}
	if err != nil {
		return models.Candidate{}, err
	}
	return cand, nil
}

// Assign overwrites ownership. Re-assigning an already-assigned
// candidate simply transfers it; there is no conflict case.
func (s *Store) Assign(ctx context.Context, id, hrUserID primitive.ObjectID) (models.Candidate, error) {
	return s.findOneAndUpdate(ctx, id, bson.M{"$set": bson.M{
		"assigned_to": hrUserID,
		"is_assigned": true,
		"updated_at":  time.Now().UTC(),
	}})
}

// SetStatus updates the status field only.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (models.Candidate, error) {
	return s.findOneAndUpdate(ctx, id, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
}

// PushRemark appends one remark atomically. Prior entries are never
// touched; concurrent appends cannot lose each other.
func (s *Store) PushRemark(ctx context.Context, id primitive.ObjectID, remark models.Remark) (models.Candidate, error) {
	return s.findOneAndUpdate(ctx, id, bson.M{
		"$push": bson.M{"remark": remark},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
}

// AttachConsent stores the inline consent document and moves the
// candidate to shortlisted in a single update.
func (s *Store) AttachConsent(ctx context.Context, id primitive.ObjectID, consentForm string) (models.Candidate, error) {
	return s.findOneAndUpdate(ctx, id, bson.M{"$set": bson.M{
		"status":              models.CandidateShortlisted,
		"consent_form":        consentForm,
		"is_consent_uploaded": true,
		"updated_at":          time.Now().UTC(),
	}})
}

func (s *Store) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (models.Candidate, error) {
	var cand models.Candidate
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&cand)
	if err == mongo.ErrNoDocuments {
		return models.Candidate{}, ErrNotFound
	}
	if err != nil {
		return models.Candidate{}, err
	}
	return cand, nil
}

// Find returns candidates matching filter with the supplied options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Candidate, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var cands []models.Candidate
	if err := cur.All(ctx, &cands); err != nil {
		return nil, err
	}
	return cands, nil
}

// Count returns the number of candidates matching filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// AssignedRow is a candidate joined with their assigned HR user.
type AssignedRow struct {
	models.Candidate `bson:",inline"`
	User             struct {
		ID        primitive.ObjectID `bson:"_id" json:"id"`
		FirstName string             `bson:"first_name" json:"firstName"`
		LastName  string             `bson:"last_name" json:"lastName"`
		Email     string             `bson:"email" json:"email"`
	} `bson:"user" json:"user"`
}

// FindAssignedWithHR lists assigned candidates joined with their HR
// owner, optionally filtered by a search term matching the candidate or
// the HR user's name. Results are newest-updated first.
func (s *Store) FindAssignedWithHR(ctx context.Context, match bson.M, term string, skip, limit int64) ([]AssignedRow, int64, error) {
	base := bson.M{"is_assigned": true}
	for k, v := range match {
		base[k] = v
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: base}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "assigned_to",
			"foreignField": "_id",
			"as":           "user",
		}}},
		{{Key: "$unwind", Value: "$user"}},
	}
	if term = strings.TrimSpace(term); term != "" {
		re := search.Regex(term)
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{"$or": []bson.M{
			{"name": re},
			{"email": re},
			{"status": re},
			{"user.first_name": re},
			{"user.last_name": re},
		}}}})
	}

	countPipeline := append(mongo.Pipeline{}, pipeline...)
	countPipeline = append(countPipeline, bson.D{{Key: "$count", Value: "total"}})
	cur, err := s.c.Aggregate(ctx, countPipeline)
	if err != nil {
		return nil, 0, err
	}
	var counts []struct {
		Total int64 `bson:"total"`
	}
	if err := cur.All(ctx, &counts); err != nil {
		return nil, 0, err
	}
	var total int64
	if len(counts) > 0 {
		total = counts[0].Total
	}

	pipeline = append(pipeline,
		bson.D{{Key: "$sort", Value: bson.D{{Key: "updated_at", Value: -1}}}},
		bson.D{{Key: "$skip", Value: skip}},
		bson.D{{Key: "$limit", Value: limit}},
	)
	cur, err = s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)
	var rows []AssignedRow
	if err := cur.All(ctx, &rows); err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
