package jobstore_test

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	jobstore "github.com/talentgate/hirehub/internal/app/store/jobs"
	"github.com/talentgate/hirehub/internal/domain/models"
	"github.com/talentgate/hirehub/internal/testutil"
)

func TestStore_Create_Defaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := jobstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.JobPost{
		Title:        "DV Engineer",
		Location:     "Bengaluru",
		Organization: "Acme Semiconductors",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.Status != models.JobActive {
		t.Errorf("status: got %q, want %q", created.Status, models.JobActive)
	}
	if created.Priority != models.JobPriorityMedium {
		t.Errorf("priority: got %q, want %q", created.Priority, models.JobPriorityMedium)
	}
	if created.PostDate.IsZero() {
		t.Error("expected post_date to default to now")
	}
}

func TestStore_AddCandidate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := jobstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	post := fixtures.CreateJobPost(ctx, "Verification Lead", "Beta Systems")
	link := models.JobCandidate{
		CandidateID: primitive.NewObjectID(),
		AddedByHR:   primitive.NewObjectID(),
		AddedAt:     time.Now().UTC(),
	}

	updated, err := store.AddCandidate(ctx, post.ID, link)
	if err != nil {
		t.Fatalf("AddCandidate failed: %v", err)
	}
	if len(updated.Candidates) != 1 {
		t.Fatalf("candidates: got %d, want 1", len(updated.Candidates))
	}
	if updated.Candidates[0].CandidateID != link.CandidateID {
		t.Errorf("candidate_id: got %v, want %v", updated.Candidates[0].CandidateID, link.CandidateID)
	}

	if _, err := store.AddCandidate(ctx, post.ID, link); !errors.Is(err, jobstore.ErrAlreadyLinked) {
		t.Errorf("expected ErrAlreadyLinked, got %v", err)
	}

	if _, err := store.AddCandidate(ctx, primitive.NewObjectID(), link); !errors.Is(err, jobstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := jobstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	post := fixtures.CreateJobPost(ctx, "RTL Engineer", "Acme Semiconductors")

	updated, err := store.Update(ctx, post.ID, bson.M{"status": models.JobFilled})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Status != models.JobFilled {
		t.Errorf("status: got %q, want %q", updated.Status, models.JobFilled)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := jobstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	post := fixtures.CreateJobPost(ctx, "Short-lived", "Acme Semiconductors")

	if err := store.Delete(ctx, post.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.GetByID(ctx, post.ID); !errors.Is(err, jobstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
