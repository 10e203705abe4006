package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/talentgate/hirehub/internal/domain/models"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateOrganization creates an active test organization with the given name.
func (f *Fixtures) CreateOrganization(ctx context.Context, name string) models.Organization {
	f.t.Helper()

	now := time.Now().UTC()
	org := models.Organization{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Email:     text.Fold(name) + "@client.test",
		Phone:     "555-0100",
		Address:   "1 Test Way",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("organizations").InsertOne(ctx, org); err != nil {
		f.t.Fatalf("failed to create test organization: %v", err)
	}
	return org
}

// CreateUser creates a test user with the given name, email, and role.
func (f *Fixtures) CreateUser(ctx context.Context, firstName, lastName, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:        primitive.NewObjectID(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		EmailCI:   text.Fold(email),
		Role:      role,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateHR creates a test user with the hr role.
func (f *Fixtures) CreateHR(ctx context.Context, firstName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, firstName, "Recruiter", email, models.RoleHR)
}

// CreateInterviewer creates a test user with the interviewer role.
func (f *Fixtures) CreateInterviewer(ctx context.Context, firstName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, firstName, "Panelist", email, models.RoleInterviewer)
}

// CreateCandidate creates a fresher candidate in the pending state.
func (f *Fixtures) CreateCandidate(ctx context.Context, name, email, mobile string) models.Candidate {
	f.t.Helper()

	now := time.Now().UTC()
	cand := models.Candidate{
		ID:             primitive.NewObjectID(),
		Name:           name,
		Email:          email,
		Mobile:         mobile,
		Degree:         "B.E.",
		GraduationYear: "2025",
		Domain:         []string{"Design Verification"},
		Status:         models.CandidatePending,
		Remark:         []models.Remark{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := f.db.Collection("candidates").InsertOne(ctx, cand); err != nil {
		f.t.Fatalf("failed to create test candidate: %v", err)
	}
	return cand
}

// CreateEvent creates a pending interview event for the given candidate,
// interviewer, and organization.
func (f *Fixtures) CreateEvent(ctx context.Context, eventName string, cand models.Candidate, interviewer models.User, org models.Organization) models.Event {
	f.t.Helper()

	now := time.Now().UTC()
	ev := models.Event{
		ID:            primitive.NewObjectID(),
		EventName:     eventName,
		InterviewDate: now.Add(48 * time.Hour),
		Candidate: models.EventCandidate{
			CandidateID: cand.ID,
			Name:        cand.Name,
			Email:       cand.Email,
			Mobile:      cand.Mobile,
			Domain:      cand.Domain,
		},
		Interviewer: models.EventInterviewer{
			InterviewerID: interviewer.ID,
			Name:          interviewer.DisplayName(),
			Email:         interviewer.Email,
		},
		ScheduledBy: primitive.NewObjectID(),
		Organization: models.EventOrganization{
			CompanyID: org.ID,
			Name:      org.Name,
		},
		Status:    models.EventPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("events").InsertOne(ctx, ev); err != nil {
		f.t.Fatalf("failed to create test event: %v", err)
	}
	return ev
}

// CreateJobPost creates an active job posting for the given organization name.
func (f *Fixtures) CreateJobPost(ctx context.Context, title, organization string) models.JobPost {
	f.t.Helper()

	now := time.Now().UTC()
	post := models.JobPost{
		ID:            primitive.NewObjectID(),
		Title:         title,
		Location:      "Bengaluru",
		Status:        models.JobActive,
		Organization:  organization,
		ExperienceMin: 2,
		ExperienceMax: 5,
		NoOfPositions: 1,
		Description:   "Test posting",
		Skills:        []string{"SystemVerilog", "UVM"},
		Priority:      models.JobPriorityMedium,
		PostDate:      now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := f.db.Collection("job_posts").InsertOne(ctx, post); err != nil {
		f.t.Fatalf("failed to create test job post: %v", err)
	}
	return post
}

// CreateInvoice creates a manual pending invoice with a single line item.
func (f *Fixtures) CreateInvoice(ctx context.Context, invoiceNo, buyerName string) models.Invoice {
	f.t.Helper()

	now := time.Now().UTC()
	inv := models.Invoice{
		ID:          primitive.NewObjectID(),
		InvoiceNo:   invoiceNo,
		InvoiceDate: now,
		Buyer:       models.InvoiceParty{Name: buyerName, Email: text.Fold(buyerName) + "@client.test"},
		Items: []models.InvoiceItem{
			{SlNo: "1", Description: "Verification services", BillingDays: 20, WorkingDays: 20, Rate: 1000, Amount: 20000},
		},
		Totals:    models.InvoiceTotals{SubTotal: 20000, Total: 23600, SGST: 1800, CGST: 1800},
		Status:    models.InvoicePending,
		Source:    models.InvoiceSourceManual,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("invoices").InsertOne(ctx, inv); err != nil {
		f.t.Fatalf("failed to create test invoice: %v", err)
	}
	return inv
}
