package lifecycle_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/talentgate/hirehub/internal/app/lifecycle"
	candidatestore "github.com/talentgate/hirehub/internal/app/store/candidates"
	userstore "github.com/talentgate/hirehub/internal/app/store/users"
	"github.com/talentgate/hirehub/internal/app/system/apierr"
	"github.com/talentgate/hirehub/internal/app/system/mailer"
	"github.com/talentgate/hirehub/internal/domain/models"
)

// fakeCandidates is an in-memory CandidateStore.
type fakeCandidates struct {
	byID map[primitive.ObjectID]*models.Candidate
}

func newFakeCandidates() *fakeCandidates {
	return &fakeCandidates{byID: make(map[primitive.ObjectID]*models.Candidate)}
}

func (f *fakeCandidates) Create(_ context.Context, cand models.Candidate) (models.Candidate, error) {
	for _, c := range f.byID {
		if c.Email == strings.ToLower(cand.Email) || c.Mobile == cand.Mobile {
			return models.Candidate{}, candidatestore.ErrDuplicate
		}
	}
	cand.ID = primitive.NewObjectID()
	cand.Email = strings.ToLower(cand.Email)
	if cand.Status == "" {
		cand.Status = models.CandidatePending
	}
	now := time.Now().UTC()
	cand.CreatedAt = now
	cand.UpdatedAt = now
	f.byID[cand.ID] = &cand
	return cand, nil
}

func (f *fakeCandidates) GetByID(_ context.Context, id primitive.ObjectID) (models.Candidate, error) {
	if c, ok := f.byID[id]; ok {
		return *c, nil
	}
	return models.Candidate{}, candidatestore.ErrNotFound
}

func (f *fakeCandidates) GetByEmailOrMobile(_ context.Context, email, mobile string) (models.Candidate, error) {
	for _, c := range f.byID {
		if c.Email == strings.ToLower(email) || c.Mobile == mobile {
			return *c, nil
		}
	}
	return models.Candidate{}, candidatestore.ErrNotFound
}

func (f *fakeCandidates) Assign(_ context.Context, id, hrUserID primitive.ObjectID) (models.Candidate, error) {
	c, ok := f.byID[id]
	if !ok {
		return models.Candidate{}, candidatestore.ErrNotFound
	}
	c.AssignedTo = &hrUserID
	c.IsAssigned = true
	c.UpdatedAt = time.Now().UTC()
	return *c, nil
}

func (f *fakeCandidates) SetStatus(_ context.Context, id primitive.ObjectID, status string) (models.Candidate, error) {
	c, ok := f.byID[id]
	if !ok {
		return models.Candidate{}, candidatestore.ErrNotFound
	}
	c.Status = status
	c.UpdatedAt = time.Now().UTC()
	return *c, nil
}

func (f *fakeCandidates) PushRemark(_ context.Context, id primitive.ObjectID, remark models.Remark) (models.Candidate, error) {
	c, ok := f.byID[id]
	if !ok {
		return models.Candidate{}, candidatestore.ErrNotFound
	}
	c.Remark = append(c.Remark, remark)
	c.UpdatedAt = time.Now().UTC()
	return *c, nil
}

func (f *fakeCandidates) AttachConsent(_ context.Context, id primitive.ObjectID, consentForm string) (models.Candidate, error) {
	c, ok := f.byID[id]
	if !ok {
		return models.Candidate{}, candidatestore.ErrNotFound
	}
	c.Status = models.CandidateShortlisted
	c.ConsentForm = consentForm
	c.IsConsentUploaded = true
	c.UpdatedAt = time.Now().UTC()
	return *c, nil
}

// fakeUsers is an in-memory UserStore.
type fakeUsers struct {
	byID map[primitive.ObjectID]models.User
}

func newFakeUsers(users ...models.User) *fakeUsers {
	f := &fakeUsers{byID: make(map[primitive.ObjectID]models.User)}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) GetByID(_ context.Context, id primitive.ObjectID) (models.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return models.User{}, userstore.ErrNotFound
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (models.User, error) {
	for _, u := range f.byID {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return models.User{}, userstore.ErrNotFound
}

// fakeNotifier records sent emails and optionally fails.
type fakeNotifier struct {
	sent []mailer.Email
	err  error
}

func (f *fakeNotifier) Send(_ context.Context, e mailer.Email) (mailer.Result, error) {
	if f.err != nil {
		return mailer.Result{Rejected: e.To}, f.err
	}
	f.sent = append(f.sent, e)
	return mailer.Result{Accepted: e.To}, nil
}

func newEngine(t *testing.T, cands *fakeCandidates, users *fakeUsers, n *fakeNotifier) *lifecycle.Engine {
	t.Helper()
	return lifecycle.New(cands, users, n, lifecycle.Config{ReapplyCooldown: 90 * 24 * time.Hour}, zap.NewNop())
}

func fresherInput() lifecycle.RegisterInput {
	return lifecycle.RegisterInput{
		Kind:           lifecycle.KindFresher,
		Name:           "Asha Rao",
		Email:          "asha@example.com",
		Mobile:         "9876543210",
		Degree:         "B.E.",
		GraduationYear: "2025",
		Domain:         []string{"Design Verification"},
	}
}

func TestRegister_Fresher(t *testing.T) {
	cands := newFakeCandidates()
	notifier := &fakeNotifier{}
	eng := newEngine(t, cands, newFakeUsers(), notifier)

	cand, err := eng.Register(context.Background(), fresherInput())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if cand.Status != models.CandidatePending {
		t.Errorf("status: got %q, want %q", cand.Status, models.CandidatePending)
	}
	if cand.IsExperienced || cand.IsDummy {
		t.Errorf("fresher flags wrong: experienced=%v dummy=%v", cand.IsExperienced, cand.IsDummy)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("emails sent: got %d, want 1", len(notifier.sent))
	}
	if got := notifier.sent[0].To; len(got) != 1 || got[0] != "asha@example.com" {
		t.Errorf("acknowledgement recipient: got %v", got)
	}
}

func TestRegister_MissingFieldsListedTogether(t *testing.T) {
	eng := newEngine(t, newFakeCandidates(), newFakeUsers(), &fakeNotifier{})

	in := lifecycle.RegisterInput{Kind: lifecycle.KindFresher, Name: "Only Name"}
	_, err := eng.Register(context.Background(), in)
	if !apierr.IsKind(err, apierr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	fields := apierr.Fields(err)
	want := map[string]bool{"email": true, "mobile": true, "degree": true, "graduationYear": true, "domain": true}
	if len(fields) != len(want) {
		t.Fatalf("missing fields: got %v, want %d entries", fields, len(want))
	}
	for _, f := range fields {
		if !want[f] {
			t.Errorf("unexpected missing field %q", f)
		}
	}
}

func TestRegister_DuplicateConflict(t *testing.T) {
	cands := newFakeCandidates()
	eng := newEngine(t, cands, newFakeUsers(), &fakeNotifier{})

	if _, err := eng.Register(context.Background(), fresherInput()); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := eng.Register(context.Background(), fresherInput())
	if !apierr.IsKind(err, apierr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestRegister_CooldownForbidden(t *testing.T) {
	cands := newFakeCandidates()
	eng := newEngine(t, cands, newFakeUsers(), &fakeNotifier{})

	cand, err := eng.Register(context.Background(), fresherInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := cands.SetStatus(context.Background(), cand.ID, models.CandidateRejected); err != nil {
		t.Fatalf("set status: %v", err)
	}

	_, err = eng.Register(context.Background(), fresherInput())
	if !apierr.IsKind(err, apierr.KindForbidden) {
		t.Fatalf("expected forbidden inside cooldown, got %v", err)
	}
}

func TestRegister_CooldownOnlyAppliesToSameMobile(t *testing.T) {
	cands := newFakeCandidates()
	eng := newEngine(t, cands, newFakeUsers(), &fakeNotifier{})

	cand, err := eng.Register(context.Background(), fresherInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := cands.SetStatus(context.Background(), cand.ID, models.CandidateRejected); err != nil {
		t.Fatalf("set status: %v", err)
	}

	// Same email, different mobile: the cooldown does not apply, the
	// email collision is reported as a duplicate.
	in := fresherInput()
	in.Mobile = "9876543211"
	_, err = eng.Register(context.Background(), in)
	if !apierr.IsKind(err, apierr.KindConflict) {
		t.Fatalf("expected conflict for an email-only collision, got %v", err)
	}
}

func TestRegister_CooldownExpiredAllowsReapply(t *testing.T) {
	cands := newFakeCandidates()
	eng := newEngine(t, cands, newFakeUsers(), &fakeNotifier{})

	cand, err := eng.Register(context.Background(), fresherInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	stored := cands.byID[cand.ID]
	stored.Status = models.CandidateRejected
	stored.UpdatedAt = time.Now().UTC().Add(-91 * 24 * time.Hour)
	// The old record still occupies the unique email/mobile, so a fresh
	// registration conflicts rather than being forbidden.
	_, err = eng.Register(context.Background(), fresherInput())
	if !apierr.IsKind(err, apierr.KindConflict) {
		t.Fatalf("expected conflict after cooldown, got %v", err)
	}
}

func TestRegister_DummySkipsEmail(t *testing.T) {
	notifier := &fakeNotifier{}
	eng := newEngine(t, newFakeCandidates(), newFakeUsers(), notifier)

	in := lifecycle.RegisterInput{
		Kind:   lifecycle.KindDummy,
		Name:   "Placeholder",
		Email:  "dummy@example.com",
		Mobile: "9000000000",
	}
	cand, err := eng.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if !cand.IsDummy {
		t.Error("expected isDummy=true")
	}
	if len(notifier.sent) != 0 {
		t.Errorf("dummy registration sent %d emails", len(notifier.sent))
	}
}

func TestRegister_EmailFailureKeepsRecord(t *testing.T) {
	cands := newFakeCandidates()
	notifier := &fakeNotifier{err: mailer.ErrRejected}
	eng := newEngine(t, cands, newFakeUsers(), notifier)

	cand, err := eng.Register(context.Background(), fresherInput())
	if !apierr.IsKind(err, apierr.KindDeliveryFailure) {
		t.Fatalf("expected delivery failure, got %v", err)
	}
	if cand.ID.IsZero() {
		t.Fatal("result should carry the persisted candidate")
	}
	if _, ok := cands.byID[cand.ID]; !ok {
		t.Error("candidate should remain persisted after a failed send")
	}
}

func TestRegister_POCSnapshot(t *testing.T) {
	hr := models.User{
		ID:        primitive.NewObjectID(),
		FirstName: "Priya",
		LastName:  "Nair",
		Email:     "priya@talentgate.example",
		Role:      models.RoleHR,
	}
	cands := newFakeCandidates()
	eng := newEngine(t, cands, newFakeUsers(hr), &fakeNotifier{})

	in := fresherInput()
	in.POC = "priya@talentgate.example"
	cand, err := eng.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if cand.POC != "Priya Nair" {
		t.Errorf("poc snapshot: got %q", cand.POC)
	}
	if cand.AssignedTo == nil || *cand.AssignedTo != hr.ID {
		t.Error("candidate should be pre-assigned to the poc user")
	}
	if !cand.IsAssigned {
		t.Error("isAssigned should track assignedTo")
	}
}

func TestAssign_OverwritesOwnership(t *testing.T) {
	hr1 := models.User{ID: primitive.NewObjectID(), FirstName: "A", Role: models.RoleHR}
	hr2 := models.User{ID: primitive.NewObjectID(), FirstName: "B", Role: models.RoleHR}
	cands := newFakeCandidates()
	eng := newEngine(t, cands, newFakeUsers(hr1, hr2), &fakeNotifier{})

	cand, err := eng.Register(context.Background(), fresherInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := eng.Assign(context.Background(), cand.ID, hr1.ID); err != nil {
		t.Fatalf("first assign failed: %v", err)
	}
	got, err := eng.Assign(context.Background(), cand.ID, hr2.ID)
	if err != nil {
		t.Fatalf("re-assign failed: %v", err)
	}
	if got.AssignedTo == nil || *got.AssignedTo != hr2.ID {
		t.Error("re-assign should transfer ownership")
	}
	if !got.IsAssigned {
		t.Error("isAssigned should remain true")
	}
	if got.Status != models.CandidatePending {
		t.Errorf("assign must not touch status: got %q", got.Status)
	}
}

func TestAssign_UnknownCandidate(t *testing.T) {
	hr := models.User{ID: primitive.NewObjectID(), Role: models.RoleHR}
	eng := newEngine(t, newFakeCandidates(), newFakeUsers(hr), &fakeNotifier{})

	_, err := eng.Assign(context.Background(), primitive.NewObjectID(), hr.ID)
	if !apierr.IsKind(err, apierr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestChangeStatus(t *testing.T) {
	cands := newFakeCandidates()
	eng := newEngine(t, cands, newFakeUsers(), &fakeNotifier{})

	cand, err := eng.Register(context.Background(), fresherInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	got, err := eng.ChangeStatus(context.Background(), cand.ID, models.CandidateEmployee)
	if err != nil {
		t.Fatalf("change status failed: %v", err)
	}
	if got.Status != models.CandidateEmployee {
		t.Errorf("status: got %q", got.Status)
	}

	// Any known literal may follow any other.
	if _, err := eng.ChangeStatus(context.Background(), cand.ID, models.CandidatePending); err != nil {
		t.Errorf("backwards transition should be allowed: %v", err)
	}

	if _, err := eng.ChangeStatus(context.Background(), cand.ID, "promoted"); !apierr.IsKind(err, apierr.KindValidation) {
		t.Errorf("unknown literal should be a validation error, got %v", err)
	}
}

func TestAddRemark_AppendsAndSanitizes(t *testing.T) {
	cands := newFakeCandidates()
	eng := newEngine(t, cands, newFakeUsers(), &fakeNotifier{})

	cand, err := eng.Register(context.Background(), fresherInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	author := models.User{ID: primitive.NewObjectID(), FirstName: "Priya", LastName: "Nair"}

	first, err := eng.AddRemark(context.Background(), cand.ID, author, "strong basics")
	if err != nil {
		t.Fatalf("add remark failed: %v", err)
	}
	second, err := eng.AddRemark(context.Background(), cand.ID, author, `<script>x</script>good fit`)
	if err != nil {
		t.Fatalf("second remark failed: %v", err)
	}

	if len(second.Remark) != len(first.Remark)+1 {
		t.Fatalf("history should grow by one: %d then %d", len(first.Remark), len(second.Remark))
	}
	if second.Remark[0].Title != "strong basics" {
		t.Errorf("prior entry altered: %q", second.Remark[0].Title)
	}
	if got := second.Remark[1].Title; strings.Contains(got, "<") {
		t.Errorf("markup not stripped: %q", got)
	}
	if second.Remark[1].Name != "Priya Nair" {
		t.Errorf("author snapshot: got %q", second.Remark[1].Name)
	}
	if second.Remark[1].Date.IsZero() {
		t.Error("remark should carry a server timestamp")
	}
}

func TestAttachConsent(t *testing.T) {
	cands := newFakeCandidates()
	eng := newEngine(t, cands, newFakeUsers(), &fakeNotifier{})

	cand, err := eng.Register(context.Background(), fresherInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	got, err := eng.AttachConsent(context.Background(), cand.ID, []byte("%PDF-1.7 fake"))
	if err != nil {
		t.Fatalf("attach consent failed: %v", err)
	}
	if got.Status != models.CandidateShortlisted {
		t.Errorf("status: got %q, want shortlisted", got.Status)
	}
	if !got.IsConsentUploaded {
		t.Error("isConsentUploaded should be set")
	}
	if !strings.HasPrefix(got.ConsentForm, "data:application/pdf;base64,") {
		t.Errorf("consent form encoding: %q", got.ConsentForm[:40])
	}

	if _, err := eng.AttachConsent(context.Background(), cand.ID, []byte("plain text")); !apierr.IsKind(err, apierr.KindValidation) {
		t.Errorf("non-PDF payload should be rejected, got %v", err)
	}
}
