package feedbackstore_test

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	feedbackstore "github.com/talentgate/hirehub/internal/app/store/feedback"
	"github.com/talentgate/hirehub/internal/domain/models"
	"github.com/talentgate/hirehub/internal/testutil"
)

func TestStore_LatestByEvent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := feedbackstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	eventID := primitive.NewObjectID()

	if _, err := store.Create(ctx, models.Feedback{EventID: eventID, Rating: 3, Decision: "hold"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	// Mongo stores created_at at millisecond precision; keep the two
	// records distinct so the sort is deterministic.
	time.Sleep(5 * time.Millisecond)
	newest, err := store.Create(ctx, models.Feedback{EventID: eventID, Rating: 4, Decision: "proceed"})
	if err != nil {
		t.Fatalf("second Create failed: %v", err)
	}

	latest, err := store.LatestByEvent(ctx, eventID)
	if err != nil {
		t.Fatalf("LatestByEvent failed: %v", err)
	}
	if latest.ID != newest.ID {
		t.Errorf("latest: got %v, want %v", latest.ID, newest.ID)
	}
	if latest.Decision != "proceed" {
		t.Errorf("decision: got %q, want %q", latest.Decision, "proceed")
	}

	all, err := store.FindByEvent(ctx, eventID)
	if err != nil {
		t.Fatalf("FindByEvent failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("records: got %d, want 2", len(all))
	}

	if _, err := store.LatestByEvent(ctx, primitive.NewObjectID()); !errors.Is(err, feedbackstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown event, got %v", err)
	}
}
