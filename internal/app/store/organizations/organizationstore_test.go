package organizationstore_test

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	organizationstore "github.com/talentgate/hirehub/internal/app/store/organizations"
	"github.com/talentgate/hirehub/internal/domain/models"
	"github.com/talentgate/hirehub/internal/testutil"
)

func TestStore_Create_FoldsName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := organizationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Organization{
		Name:  "  Acme Semiconductors ",
		Email: "contact@acme.test",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.Name != "Acme Semiconductors" {
		t.Errorf("name: got %q, want trimmed", created.Name)
	}
	if created.NameCI != "acme semiconductors" {
		t.Errorf("name_ci: got %q, want folded", created.NameCI)
	}
	if !created.IsActive {
		t.Error("expected new organization to be active")
	}
}

func TestStore_Create_DuplicateName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := organizationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.Organization{Name: "Beta Systems", Email: "a@beta.test"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Create(ctx, models.Organization{Name: "BETA SYSTEMS", Email: "b@beta.test"}); !errors.Is(err, organizationstore.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestStore_Update_RefoldsName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := organizationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Organization{Name: "Gamma Labs", Email: "x@gamma.test"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := store.Update(ctx, created.ID, bson.M{"name": "Gamma Laboratories"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.NameCI != "gamma laboratories" {
		t.Errorf("name_ci after rename: got %q", updated.NameCI)
	}
}

func TestStore_SetActive_SoftDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := organizationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Organization{Name: "Delta Corp", Email: "x@delta.test"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.SetActive(ctx, created.ID, false); err != nil {
		t.Fatalf("SetActive failed: %v", err)
	}

	// The record survives for historical references.
	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID after deactivate failed: %v", err)
	}
	if got.IsActive {
		t.Error("expected is_active to be false")
	}

	active, err := store.Find(ctx, bson.M{"is_active": true})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("active organizations: got %d, want 0", len(active))
	}
}
