// internal/app/interview/engine.go

// Package interview schedules interview events, collects feedback, and
// records decisions. The ordering rule is the same everywhere: persist
// the entity first, then attempt notifications; a failed send surfaces
// as a delivery failure but never rolls the write back.
package interview

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	eventstore "github.com/talentgate/hirehub/internal/app/store/events"
	"github.com/talentgate/hirehub/internal/app/system/apierr"
	"github.com/talentgate/hirehub/internal/app/system/mailer"
	"github.com/talentgate/hirehub/internal/domain/models"
)

// EventStore is the event persistence surface the engine needs.
type EventStore interface {
	Create(ctx context.Context, ev models.Event) (models.Event, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Event, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) (models.Event, error)
	FindByCandidate(ctx context.Context, candidateID primitive.ObjectID) ([]models.Event, error)
}

// FeedbackStore records structured evaluations.
type FeedbackStore interface {
	Create(ctx context.Context, fb models.Feedback) (models.Feedback, error)
	FindByEvent(ctx context.Context, eventID primitive.ObjectID) ([]models.Feedback, error)
}

// CandidateStatusStore is the slice of the candidate store used by the
// rejection cascade.
type CandidateStatusStore interface {
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) (models.Candidate, error)
}

// Notifier sends interview email.
type Notifier interface {
	Send(ctx context.Context, e mailer.Email) (mailer.Result, error)
}

// Config carries the engine's tunables.
type Config struct {
	// FeedbackBaseURL is the public prefix of the feedback forms linked
	// from interviewer invitations.
	FeedbackBaseURL string
}

// Engine implements the interview event operations.
type Engine struct {
	events     EventStore
	feedback   FeedbackStore
	candidates CandidateStatusStore
	notifier   Notifier
	cfg        Config
	log        *zap.Logger
}

func New(events EventStore, feedback FeedbackStore, candidates CandidateStatusStore, notifier Notifier, cfg Config, log *zap.Logger) *Engine {
	return &Engine{
		events:     events,
		feedback:   feedback,
		candidates: candidates,
		notifier:   notifier,
		cfg:        cfg,
		log:        log,
	}
}

// ScheduleInput is one event creation request. The candidate,
// interviewer, and organization details are snapshotted onto the event
// as given; later edits to those records do not reach back.
type ScheduleInput struct {
	EventName     string
	InterviewDate time.Time

	CandidateID     primitive.ObjectID
	CandidateName   string
	CandidateEmail  string
	CandidateMobile string
	CandidateDomain []string

	InterviewerID    primitive.ObjectID
	InterviewerName  string
	InterviewerEmail string

	ScheduledBy primitive.ObjectID

	OrganizationID   primitive.ObjectID
	OrganizationName string

	MeetingLink string
	Notes       string
}

func (in ScheduleInput) missing() []string {
	var m []string
	req := func(name, v string) {
		if v == "" {
			m = append(m, name)
		}
	}
	reqID := func(name string, v primitive.ObjectID) {
		if v.IsZero() {
			m = append(m, name)
		}
	}
	req("eventName", in.EventName)
	if in.InterviewDate.IsZero() {
		m = append(m, "interviewDate")
	}
	reqID("candidateId", in.CandidateID)
	req("candidateName", in.CandidateName)
	req("candidateEmail", in.CandidateEmail)
	req("candidateMobile", in.CandidateMobile)
	reqID("interviewerId", in.InterviewerID)
	req("interviewerName", in.InterviewerName)
	req("interviewerEmail", in.InterviewerEmail)
	reqID("scheduledBy", in.ScheduledBy)
	reqID("organizationId", in.OrganizationID)
	req("organizationName", in.OrganizationName)
	return m
}

// Schedule persists a new interview event and then sends the candidate
// and interviewer invitations concurrently. A meeting link selects the
// with-link mail variants; without one the interviewer's mail carries
// the candidate's contact details instead so they can arrange the call.
func (e *Engine) Schedule(ctx context.Context, in ScheduleInput) (models.Event, error) {
	if m := in.missing(); len(m) > 0 {
		return models.Event{}, apierr.MissingFields(m)
	}

	ev, err := e.events.Create(ctx, models.Event{
		EventName:     in.EventName,
		InterviewDate: in.InterviewDate.UTC(),
		Candidate: models.EventCandidate{
			CandidateID: in.CandidateID,
			Name:        in.CandidateName,
			Email:       in.CandidateEmail,
			Mobile:      in.CandidateMobile,
			Domain:      in.CandidateDomain,
		},
		Interviewer: models.EventInterviewer{
			InterviewerID: in.InterviewerID,
			Name:          in.InterviewerName,
			Email:         in.InterviewerEmail,
		},
		ScheduledBy: in.ScheduledBy,
		Organization: models.EventOrganization{
			CompanyID: in.OrganizationID,
			Name:      in.OrganizationName,
		},
		MeetingLink: in.MeetingLink,
		Notes:       in.Notes,
		Status:      models.EventPending,
	})
	if err != nil {
		return models.Event{}, apierr.Internal("creating event", err)
	}

	data := mailer.InviteData{
		CandidateName:    ev.Candidate.Name,
		CandidateEmail:   ev.Candidate.Email,
		CandidateMobile:  ev.Candidate.Mobile,
		InterviewerName:  ev.Interviewer.Name,
		EventName:        ev.EventName,
		OrganizationName: ev.Organization.Name,
		InterviewDate:    ev.InterviewDate,
		MeetingLink:      ev.MeetingLink,
		FeedbackLink:     e.feedbackLink(ev),
		Year:             time.Now().UTC().Year(),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		msg := mailer.BuildCandidateInvite(data)
		msg.To = []string{ev.Candidate.Email}
		_, err := e.notifier.Send(gctx, msg)
		return err
	})
	g.Go(func() error {
		msg := mailer.BuildInterviewerInvite(data)
		msg.To = []string{ev.Interviewer.Email}
		_, err := e.notifier.Send(gctx, msg)
		return err
	})
	if err := g.Wait(); err != nil {
		e.log.Warn("interview invitation failed",
			zap.String("event_id", ev.ID.Hex()),
			zap.Error(err))
		return ev, apierr.DeliveryFailure("event scheduled but an invitation email failed", err)
	}
	return ev, nil
}

// feedbackLink points the interviewer at the right form: the screening
// form for no-link rounds, the technical form otherwise.
func (e *Engine) feedbackLink(ev models.Event) string {
	form := "technical"
	if ev.MeetingLink == "" {
		form = "screening"
	}
	return fmt.Sprintf("%s/feedback/%s/%s", e.cfg.FeedbackBaseURL, form, ev.ID.Hex())
}

// Feedback form categories by event name.
const (
	formShort    = "short"
	formExtended = "extended"
)

// formFor maps an event name to its feedback form, or "" when the name
// is outside the recognized buckets.
func formFor(eventName string) string {
	switch eventName {
	case "Screening", "Orientation":
		return formShort
	case "Technical 1", "Technical 2", "Technical 3",
		"Client 1", "Client 2", "Client 3":
		return formExtended
	}
	return ""
}

// FeedbackInput is one evaluation submission for an event.
type FeedbackInput struct {
	EventID primitive.ObjectID

	// Short form
	Rating        int
	Communication int
	Confidence    int
	Remark        string
	Decision      string

	// Extended form
	Constraints     int
	Assertion       int
	Coverage        int
	ProblemSolving  int
	Protocols       string
	Scripting       string
	SystemVerilog   string
	TechnicalSkills string
	UVM             string
	Verilog         string
}

// SubmitFeedback validates the submission against the event's category,
// stores it, and marks the event submitted.
func (e *Engine) SubmitFeedback(ctx context.Context, in FeedbackInput) (models.Feedback, error) {
	ev, err := e.events.GetByID(ctx, in.EventID)
	if err != nil {
		if errors.Is(err, eventstore.ErrNotFound) {
			return models.Feedback{}, apierr.NotFound("event")
		}
		return models.Feedback{}, apierr.Internal("loading event", err)
	}

	fb := models.Feedback{EventID: ev.ID}
	switch formFor(ev.EventName) {
	case formShort:
		var m []string
		if in.Communication == 0 {
			m = append(m, "communication")
		}
		if in.Confidence == 0 {
			m = append(m, "confidence")
		}
		if in.Remark == "" {
			m = append(m, "remark")
		}
		if in.Decision == "" {
			m = append(m, "decision")
		}
		if len(m) > 0 {
			return models.Feedback{}, apierr.MissingFields(m)
		}
		fb.Rating = in.Rating
		fb.Communication = in.Communication
		fb.Confidence = in.Confidence
		fb.Remark = in.Remark
		fb.Decision = in.Decision
	case formExtended:
		fb.Rating = in.Rating
		fb.Remark = in.Remark
		fb.Decision = in.Decision
		fb.Constraints = in.Constraints
		fb.Assertion = in.Assertion
		fb.Coverage = in.Coverage
		fb.ProblemSolving = in.ProblemSolving
		fb.Protocols = in.Protocols
		fb.Scripting = in.Scripting
		fb.SystemVerilog = in.SystemVerilog
		fb.TechnicalSkills = in.TechnicalSkills
		fb.UVM = in.UVM
		fb.Verilog = in.Verilog
	default:
		return models.Feedback{}, apierr.InvalidCategory(ev.EventName)
	}

	created, err := e.feedback.Create(ctx, fb)
	if err != nil {
		return models.Feedback{}, apierr.Internal("storing feedback", err)
	}
	if _, err := e.events.SetStatus(ctx, ev.ID, models.EventSubmitted); err != nil {
		return models.Feedback{}, apierr.Internal("marking event submitted", err)
	}
	return created, nil
}

// Decide records the final status of an event. A rejection mails the
// candidate and cascades their status to rejected; an approval mails the
// candidate only. The event's own status is persisted last, after the
// notification attempt.
func (e *Engine) Decide(ctx context.Context, eventID primitive.ObjectID, status string) (models.Event, error) {
	if !models.IsEventStatus(status) {
		return models.Event{}, apierr.Validation("unknown event status %q", status)
	}

	ev, err := e.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, eventstore.ErrNotFound) {
			return models.Event{}, apierr.NotFound("event")
		}
		return models.Event{}, apierr.Internal("loading event", err)
	}
	if models.IsTerminalEventStatus(ev.Status) {
		return models.Event{}, apierr.Validation("event is already %s", ev.Status)
	}

	var sendErr error
	data := mailer.DecisionData{
		CandidateName:    ev.Candidate.Name,
		OrganizationName: ev.Organization.Name,
		EventName:        ev.EventName,
		Year:             time.Now().UTC().Year(),
	}
	switch status {
	case models.EventRejected:
		msg := mailer.BuildRejectionEmail(data)
		msg.To = []string{ev.Candidate.Email}
		if _, err := e.notifier.Send(ctx, msg); err != nil {
			sendErr = err
		}
		if _, err := e.candidates.SetStatus(ctx, ev.Candidate.CandidateID, models.CandidateRejected); err != nil {
			// The candidate may have been removed; the event decision
			// still stands.
			e.log.Warn("rejection cascade failed",
				zap.String("candidate_id", ev.Candidate.CandidateID.Hex()),
				zap.Error(err))
		}
	case models.EventApproved:
		msg := mailer.BuildApprovalEmail(data)
		msg.To = []string{ev.Candidate.Email}
		if _, err := e.notifier.Send(ctx, msg); err != nil {
			sendErr = err
		}
	}

	updated, err := e.events.SetStatus(ctx, eventID, status)
	if err != nil {
		if errors.Is(err, eventstore.ErrNotFound) {
			return models.Event{}, apierr.NotFound("event")
		}
		return models.Event{}, apierr.Internal("updating event status", err)
	}
	if sendErr != nil {
		e.log.Warn("decision email failed",
			zap.String("event_id", eventID.Hex()),
			zap.Error(sendErr))
		return updated, apierr.DeliveryFailure("decision recorded but the notification email failed", sendErr)
	}
	return updated, nil
}

// ListByCandidate returns every event for a candidate, newest interview
// first.
func (e *Engine) ListByCandidate(ctx context.Context, candidateID primitive.ObjectID) ([]models.Event, error) {
	evs, err := e.events.FindByCandidate(ctx, candidateID)
	if err != nil {
		return nil, apierr.Internal("listing events", err)
	}
	return evs, nil
}

// LatestFeedback reports whether an event already has feedback and
// returns all of its records when it does.
func (e *Engine) LatestFeedback(ctx context.Context, eventID primitive.ObjectID) ([]models.Feedback, error) {
	fbs, err := e.feedback.FindByEvent(ctx, eventID)
	if err != nil {
		return nil, apierr.Internal("listing feedback", err)
	}
	return fbs, nil
}
