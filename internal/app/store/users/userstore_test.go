package userstore_test

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	userstore "github.com/talentgate/hirehub/internal/app/store/users"
	"github.com/talentgate/hirehub/internal/domain/models"
	"github.com/talentgate/hirehub/internal/testutil"
)

func TestStore_Create_FoldsEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		FirstName: "Priya",
		LastName:  "Nair",
		Email:     "  Priya.Nair@HireHub.Test ",
		Role:      models.RoleHR,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Email != "Priya.Nair@HireHub.Test" {
		t.Errorf("email: got %q, want trimmed original", created.Email)
	}
	if created.EmailCI != "priya.nair@hirehub.test" {
		t.Errorf("email_ci: got %q, want folded", created.EmailCI)
	}
}

func TestStore_GetByEmail_CaseInsensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		FirstName: "Rahul",
		Email:     "rahul@hirehub.test",
		Role:      models.RoleInterviewer,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	found, err := store.GetByEmail(ctx, "RAHUL@HIREHUB.TEST")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("got %v, want %v", found.ID, created.ID)
	}

	if _, err := store.GetByEmail(ctx, "nobody@hirehub.test"); !errors.Is(err, userstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.User{FirstName: "A", Email: "dup@hirehub.test", Role: models.RoleHR}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Folding makes the collision case insensitive.
	if _, err := store.Create(ctx, models.User{FirstName: "B", Email: "DUP@hirehub.test", Role: models.RoleHR}); !errors.Is(err, userstore.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestStore_Update_RefoldsEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{FirstName: "Meera", Email: "meera@hirehub.test", Role: models.RoleAccounts})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := store.Update(ctx, created.ID, bson.M{"email": "Meera.S@HireHub.Test"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.EmailCI != "meera.s@hirehub.test" {
		t.Errorf("email_ci after update: got %q, want refolded", updated.EmailCI)
	}
}

func TestStore_FindByRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateInterviewer(ctx, "Zara", "zara@hirehub.test")
	fixtures.CreateInterviewer(ctx, "Arun", "arun@hirehub.test")
	fixtures.CreateHR(ctx, "Priya", "priya2@hirehub.test")

	interviewers, err := store.FindByRole(ctx, models.RoleInterviewer)
	if err != nil {
		t.Fatalf("FindByRole failed: %v", err)
	}
	if len(interviewers) != 2 {
		t.Fatalf("interviewers: got %d, want 2", len(interviewers))
	}
	if interviewers[0].FirstName != "Arun" {
		t.Errorf("expected first_name sort, got %q first", interviewers[0].FirstName)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{FirstName: "Temp", Email: "temp@hirehub.test", Role: models.RoleHR})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete(ctx, created.ID); !errors.Is(err, userstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}
