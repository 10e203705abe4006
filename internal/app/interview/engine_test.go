package interview_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/talentgate/hirehub/internal/app/interview"
	eventstore "github.com/talentgate/hirehub/internal/app/store/events"
	"github.com/talentgate/hirehub/internal/app/system/apierr"
	"github.com/talentgate/hirehub/internal/app/system/mailer"
	"github.com/talentgate/hirehub/internal/domain/models"
)

type fakeEvents struct {
	byID map[primitive.ObjectID]*models.Event
}

func newFakeEvents() *fakeEvents {
	return &fakeEvents{byID: make(map[primitive.ObjectID]*models.Event)}
}

func (f *fakeEvents) Create(_ context.Context, ev models.Event) (models.Event, error) {
	ev.ID = primitive.NewObjectID()
	if ev.Status == "" {
		ev.Status = models.EventPending
	}
	now := time.Now().UTC()
	ev.CreatedAt = now
	ev.UpdatedAt = now
	f.byID[ev.ID] = &ev
	return ev, nil
}

func (f *fakeEvents) GetByID(_ context.Context, id primitive.ObjectID) (models.Event, error) {
	if ev, ok := f.byID[id]; ok {
		return *ev, nil
	}
	return models.Event{}, eventstore.ErrNotFound
}

func (f *fakeEvents) SetStatus(_ context.Context, id primitive.ObjectID, status string) (models.Event, error) {
	ev, ok := f.byID[id]
	if !ok {
		return models.Event{}, eventstore.ErrNotFound
	}
	ev.Status = status
	ev.UpdatedAt = time.Now().UTC()
	return *ev, nil
}

func (f *fakeEvents) FindByCandidate(_ context.Context, candidateID primitive.ObjectID) ([]models.Event, error) {
	var out []models.Event
	for _, ev := range f.byID {
		if ev.Candidate.CandidateID == candidateID {
			out = append(out, *ev)
		}
	}
	return out, nil
}

type fakeFeedback struct {
	records []models.Feedback
}

func (f *fakeFeedback) Create(_ context.Context, fb models.Feedback) (models.Feedback, error) {
	fb.ID = primitive.NewObjectID()
	fb.CreatedAt = time.Now().UTC()
	fb.UpdatedAt = fb.CreatedAt
	f.records = append(f.records, fb)
	return fb, nil
}

func (f *fakeFeedback) FindByEvent(_ context.Context, eventID primitive.ObjectID) ([]models.Feedback, error) {
	var out []models.Feedback
	for _, fb := range f.records {
		if fb.EventID == eventID {
			out = append(out, fb)
		}
	}
	return out, nil
}

type fakeCandidateStatus struct {
	statuses map[primitive.ObjectID]string
}

func newFakeCandidateStatus() *fakeCandidateStatus {
	return &fakeCandidateStatus{statuses: make(map[primitive.ObjectID]string)}
}

func (f *fakeCandidateStatus) SetStatus(_ context.Context, id primitive.ObjectID, status string) (models.Candidate, error) {
	f.statuses[id] = status
	return models.Candidate{ID: id, Status: status}, nil
}

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

type fixture struct {
	events     *fakeEvents
	feedback   *fakeFeedback
	candidates *fakeCandidateStatus
	notifier   *fakeNotifier
	eng        *interview.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		events:     newFakeEvents(),
		feedback:   &fakeFeedback{},
		candidates: newFakeCandidateStatus(),
		notifier:   &fakeNotifier{},
	}
	f.eng = interview.New(f.events, f.feedback, f.candidates, f.notifier,
		interview.Config{FeedbackBaseURL: "https://hr.talentgate.example"}, zap.NewNop())
	return f
}

func scheduleInput(eventName, meetingLink string) interview.ScheduleInput {
	return interview.ScheduleInput{
		EventName:        eventName,
		InterviewDate:    time.Now().UTC().Add(48 * time.Hour),
		CandidateID:      primitive.NewObjectID(),
		CandidateName:    "Asha Rao",
		CandidateEmail:   "asha@example.com",
		CandidateMobile:  "9876543210",
		InterviewerID:    primitive.NewObjectID(),
		InterviewerName:  "Vikram Shah",
		InterviewerEmail: "vikram@talentgate.example",
		ScheduledBy:      primitive.NewObjectID(),
		OrganizationID:   primitive.NewObjectID(),
		OrganizationName: "Acme Semiconductors",
		MeetingLink:      meetingLink,
	}
}

func TestSchedule_SendsBothInvitations(t *testing.T) {
	f := newFixture(t)

	ev, err := f.eng.Schedule(context.Background(), scheduleInput("Technical 1", "https://meet.example/abc"))
	if err != nil {
		t.Fatalf("schedule failed: %v", err)
	}
	if ev.Status != models.EventPending {
		t.Errorf("status: got %q, want pending", ev.Status)
	}
	if len(f.notifier.sent) != 2 {
		t.Fatalf("emails sent: got %d, want 2", len(f.notifier.sent))
	}

	recipients := map[string]bool{}
	for _, e := range f.notifier.sent {
		recipients[e.To[0]] = true
	}
	if !recipients["asha@example.com"] || !recipients["vikram@talentgate.example"] {
		t.Errorf("recipients: %v", recipients)
	}
}

func TestSchedule_NoLinkVariantCarriesContactDetails(t *testing.T) {
	f := newFixture(t)

	if _, err := f.eng.Schedule(context.Background(), scheduleInput("Screening", "")); err != nil {
		t.Fatalf("schedule failed: %v", err)
	}

	var interviewerMail *mailer.Email
	for i := range f.notifier.sent {
		if f.notifier.sent[i].To[0] == "vikram@talentgate.example" {
			interviewerMail = &f.notifier.sent[i]
		}
	}
	if interviewerMail == nil {
		t.Fatal("interviewer mail not sent")
	}
	if !strings.Contains(interviewerMail.HTMLBody, "asha@example.com") ||
		!strings.Contains(interviewerMail.HTMLBody, "9876543210") {
		t.Error("no-link interviewer mail should carry the candidate's email and mobile")
	}
	if !strings.Contains(interviewerMail.HTMLBody, "/feedback/screening/") {
		t.Error("no-link interviewer mail should link the screening feedback form")
	}
}

func TestSchedule_WithLinkUsesTechnicalFeedbackForm(t *testing.T) {
	f := newFixture(t)

	if _, err := f.eng.Schedule(context.Background(), scheduleInput("Technical 2", "https://meet.example/xyz")); err != nil {
		t.Fatalf("schedule failed: %v", err)
	}
	var interviewerMail *mailer.Email
	for i := range f.notifier.sent {
		if f.notifier.sent[i].To[0] == "vikram@talentgate.example" {
			interviewerMail = &f.notifier.sent[i]
		}
	}
	if interviewerMail == nil {
		t.Fatal("interviewer mail not sent")
	}
	if !strings.Contains(interviewerMail.HTMLBody, "/feedback/technical/") {
		t.Error("with-link interviewer mail should link the technical feedback form")
	}
	if !strings.Contains(interviewerMail.HTMLBody, "https://meet.example/xyz") {
		t.Error("with-link interviewer mail should carry the meeting link")
	}
}

func TestSchedule_MissingFieldsListedTogether(t *testing.T) {
	f := newFixture(t)

	_, err := f.eng.Schedule(context.Background(), interview.ScheduleInput{EventName: "Screening"})
	if !apierr.IsKind(err, apierr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if n := len(apierr.Fields(err)); n < 8 {
		t.Errorf("all missing fields should be listed at once, got %d", n)
	}
}

func TestSchedule_SendFailureKeepsEvent(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = mailer.ErrRejected

	ev, err := f.eng.Schedule(context.Background(), scheduleInput("Screening", ""))
	if !apierr.IsKind(err, apierr.KindDeliveryFailure) {
		t.Fatalf("expected delivery failure, got %v", err)
	}
	if _, ok := f.events.byID[ev.ID]; !ok {
		t.Error("event should remain persisted after a failed send")
	}
}

func TestSubmitFeedback_ShortForm(t *testing.T) {
	f := newFixture(t)
	ev, err := f.eng.Schedule(context.Background(), scheduleInput("Orientation", ""))
	if err != nil {
		t.Fatalf("schedule failed: %v", err)
	}

	fb, err := f.eng.SubmitFeedback(context.Background(), interview.FeedbackInput{
		EventID:       ev.ID,
		Communication: 4,
		Confidence:    3,
		Remark:        "clear communicator",
		Decision:      "proceed",
	})
	if err != nil {
		t.Fatalf("submit feedback failed: %v", err)
	}
	if fb.Communication != 4 || fb.Decision != "proceed" {
		t.Errorf("short form fields not stored: %+v", fb)
	}
	if got := f.events.byID[ev.ID].Status; got != models.EventSubmitted {
		t.Errorf("event status after feedback: got %q, want submitted", got)
	}
}

func TestSubmitFeedback_ShortFormMissingFields(t *testing.T) {
	f := newFixture(t)
	ev, err := f.eng.Schedule(context.Background(), scheduleInput("Orientation", ""))
	if err != nil {
		t.Fatalf("schedule failed: %v", err)
	}

	_, err = f.eng.SubmitFeedback(context.Background(), interview.FeedbackInput{
		EventID:    ev.ID,
		Confidence: 3,
		Remark:     "ok",
		Decision:   "proceed",
	})
	if !apierr.IsKind(err, apierr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	fields := apierr.Fields(err)
	if len(fields) != 1 || fields[0] != "communication" {
		t.Errorf("missing fields: got %v, want [communication]", fields)
	}
	if got := f.events.byID[ev.ID].Status; got != models.EventPending {
		t.Errorf("failed submission must not advance the event: got %q", got)
	}
}

func TestSubmitFeedback_ExtendedForm(t *testing.T) {
	f := newFixture(t)
	ev, err := f.eng.Schedule(context.Background(), scheduleInput("Technical 1", "https://meet.example/a"))
	if err != nil {
		t.Fatalf("schedule failed: %v", err)
	}

	fb, err := f.eng.SubmitFeedback(context.Background(), interview.FeedbackInput{
		EventID:        ev.ID,
		Constraints:    4,
		Assertion:      3,
		Coverage:       4,
		ProblemSolving: 5,
		SystemVerilog:  "strong",
		UVM:            "adequate",
	})
	if err != nil {
		t.Fatalf("extended feedback failed: %v", err)
	}
	if fb.ProblemSolving != 5 || fb.SystemVerilog != "strong" {
		t.Errorf("extended fields not stored: %+v", fb)
	}
	if got := f.events.byID[ev.ID].Status; got != models.EventSubmitted {
		t.Errorf("event status: got %q, want submitted", got)
	}
}

func TestSubmitFeedback_UnknownCategory(t *testing.T) {
	f := newFixture(t)
	ev, err := f.eng.Schedule(context.Background(), scheduleInput("Culture Fit", ""))
	if err != nil {
		t.Fatalf("schedule failed: %v", err)
	}

	_, err = f.eng.SubmitFeedback(context.Background(), interview.FeedbackInput{EventID: ev.ID, Remark: "x"})
	if !apierr.IsKind(err, apierr.KindInvalidCategory) {
		t.Fatalf("expected invalid category, got %v", err)
	}
}

func TestDecide_RejectedCascadesAndMails(t *testing.T) {
	f := newFixture(t)
	in := scheduleInput("Technical 1", "https://meet.example/a")
	ev, err := f.eng.Schedule(context.Background(), in)
	if err != nil {
		t.Fatalf("schedule failed: %v", err)
	}
	f.notifier.sent = nil

	got, err := f.eng.Decide(context.Background(), ev.ID, models.EventRejected)
	if err != nil {
		t.Fatalf("decide failed: %v", err)
	}
	if got.Status != models.EventRejected {
		t.Errorf("event status: got %q", got.Status)
	}
	if len(f.notifier.sent) != 1 {
		t.Fatalf("rejection should send exactly one email, got %d", len(f.notifier.sent))
	}
	if f.notifier.sent[0].To[0] != "asha@example.com" {
		t.Errorf("rejection recipient: %v", f.notifier.sent[0].To)
	}
	if f.candidates.statuses[in.CandidateID] != models.CandidateRejected {
		t.Error("rejection should cascade to the candidate's status")
	}
}

func TestDecide_ApprovedMailsOnly(t *testing.T) {
	f := newFixture(t)
	in := scheduleInput("Client 1", "https://meet.example/b")
	ev, err := f.eng.Schedule(context.Background(), in)
	if err != nil {
		t.Fatalf("schedule failed: %v", err)
	}
	f.notifier.sent = nil

	got, err := f.eng.Decide(context.Background(), ev.ID, models.EventApproved)
	if err != nil {
		t.Fatalf("decide failed: %v", err)
	}
	if got.Status != models.EventApproved {
		t.Errorf("event status: got %q", got.Status)
	}
	if len(f.notifier.sent) != 1 {
		t.Fatalf("approval should send exactly one email, got %d", len(f.notifier.sent))
	}
	if _, touched := f.candidates.statuses[in.CandidateID]; touched {
		t.Error("approval must not touch the candidate's status")
	}
}

func TestDecide_TerminalStatesGuarded(t *testing.T) {
	f := newFixture(t)
	ev, err := f.eng.Schedule(context.Background(), scheduleInput("Screening", ""))
	if err != nil {
		t.Fatalf("schedule failed: %v", err)
	}
	if _, err := f.eng.Decide(context.Background(), ev.ID, models.EventApproved); err != nil {
		t.Fatalf("decide failed: %v", err)
	}

	_, err = f.eng.Decide(context.Background(), ev.ID, models.EventRejected)
	if !apierr.IsKind(err, apierr.KindValidation) {
		t.Fatalf("terminal event should refuse further decisions, got %v", err)
	}
}

func TestDecide_UnknownStatus(t *testing.T) {
	f := newFixture(t)
	_, err := f.eng.Decide(context.Background(), primitive.NewObjectID(), "cancelled")
	if !apierr.IsKind(err, apierr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecide_SendFailureStillPersists(t *testing.T) {
	f := newFixture(t)
	ev, err := f.eng.Schedule(context.Background(), scheduleInput("Screening", ""))
	if err != nil {
		t.Fatalf("schedule failed: %v", err)
	}
	f.notifier.err = mailer.ErrRejected

	got, err := f.eng.Decide(context.Background(), ev.ID, models.EventApproved)
	if !apierr.IsKind(err, apierr.KindDeliveryFailure) {
		t.Fatalf("expected delivery failure, got %v", err)
	}
	if got.Status != models.EventApproved {
		t.Errorf("decision should persist despite the failed send: %q", got.Status)
	}
	if f.events.byID[ev.ID].Status != models.EventApproved {
		t.Error("stored event should carry the decided status")
	}
}
