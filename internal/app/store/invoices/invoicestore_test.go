package invoicestore_test

import (
	"errors"
	"testing"

	invoicestore "github.com/talentgate/hirehub/internal/app/store/invoices"
	"github.com/talentgate/hirehub/internal/domain/models"
	"github.com/talentgate/hirehub/internal/testutil"
)

func TestStore_Create_Defaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := invoicestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Invoice{
		InvoiceNo: " INV-2026-001 ",
		Source:    models.InvoiceSourceManual,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.InvoiceNo != "INV-2026-001" {
		t.Errorf("invoice_no: got %q, want trimmed", created.InvoiceNo)
	}
	if created.Status != models.InvoicePending {
		t.Errorf("status: got %q, want %q", created.Status, models.InvoicePending)
	}
}

func TestStore_Create_DuplicateNo(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := invoicestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.Invoice{InvoiceNo: "INV-DUP", Source: models.InvoiceSourceManual}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Create(ctx, models.Invoice{InvoiceNo: "INV-DUP", Source: models.InvoiceSourceManual}); !errors.Is(err, invoicestore.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestStore_SetStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := invoicestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	inv := fixtures.CreateInvoice(ctx, "INV-2026-002", "Acme Semiconductors")

	updated, err := store.SetStatus(ctx, inv.ID, models.InvoicePaid)
	if err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if updated.Status != models.InvoicePaid {
		t.Errorf("status: got %q, want %q", updated.Status, models.InvoicePaid)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := invoicestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	inv := fixtures.CreateInvoice(ctx, "INV-2026-003", "Beta Systems")

	if err := store.Delete(ctx, inv.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.GetByID(ctx, inv.ID); !errors.Is(err, invoicestore.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
