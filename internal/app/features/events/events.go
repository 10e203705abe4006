// internal/app/features/events/events.go
package events

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/talentgate/hirehub/internal/app/interview"
	"github.com/talentgate/hirehub/internal/app/system/apierr"
	"github.com/talentgate/hirehub/internal/app/system/auth"
	"github.com/talentgate/hirehub/internal/app/system/httpjson"
	"github.com/talentgate/hirehub/internal/app/system/timeouts"
)

// scheduleRequest is the JSON body for POST /. The candidate,
// interviewer, and organization snapshots come from the client as shown
// in its picker views.
type scheduleRequest struct {
	EventName     string    `json:"eventName"`
	InterviewDate time.Time `json:"interviewDate"`

	CandidateID     string   `json:"candidateId"`
	CandidateName   string   `json:"candidateName"`
	CandidateEmail  string   `json:"candidateEmail"`
	CandidateMobile string   `json:"candidateMobile"`
	CandidateDomain []string `json:"candidateDomain"`

	InterviewerID    string `json:"interviewerId"`
	InterviewerName  string `json:"interviewerName"`
	InterviewerEmail string `json:"interviewerEmail"`

	OrganizationID   string `json:"organizationId"`
	OrganizationName string `json:"organizationName"`

	MeetingLink string `json:"meetingLink"`
	Notes       string `json:"notes"`
}

// oid converts a hex id, tolerating blanks; the engine reports missing
// ids together with the other absent fields.
func oid(s string) primitive.ObjectID {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID
	}
	return id
}

// HandleSchedule handles POST /: creates the event and dispatches both
// invitations.
func (h *Handler) HandleSchedule(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, apierr.Forbidden("sign in required"))
		return
	}
	var req scheduleRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	ev, err := h.Engine.Schedule(ctx, interview.ScheduleInput{
		EventName:        req.EventName,
		InterviewDate:    req.InterviewDate,
		CandidateID:      oid(req.CandidateID),
		CandidateName:    req.CandidateName,
		CandidateEmail:   req.CandidateEmail,
		CandidateMobile:  req.CandidateMobile,
		CandidateDomain:  req.CandidateDomain,
		InterviewerID:    oid(req.InterviewerID),
		InterviewerName:  req.InterviewerName,
		InterviewerEmail: req.InterviewerEmail,
		ScheduledBy:      oid(u.ID),
		OrganizationID:   oid(req.OrganizationID),
		OrganizationName: req.OrganizationName,
		MeetingLink:      req.MeetingLink,
		Notes:            req.Notes,
	})
	if err != nil {
		// The event survives a failed invitation; hand its id back.
		if apierr.IsKind(err, apierr.KindDeliveryFailure) {
			httpjson.Write(w, apierr.Status(err), httpjson.Envelope{
				Status:  false,
				Message: "event scheduled but an invitation email failed",
				Data:    ev,
			})
			return
		}
		httpjson.Error(w, err)
		return
	}
	httpjson.Created(w, ev)
}

// ServeByCandidate handles GET /candidate/{candidateID}.
func (h *Handler) ServeByCandidate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "candidateID"))
	if err != nil {
		httpjson.Error(w, apierr.Validation("invalid candidate id"))
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	evs, err := h.Engine.ListByCandidate(ctx, id)
	if err != nil {
		httpjson.Error(w, err)
		return
	}
	httpjson.OK(w, evs)
}

// statusRequest is the JSON body for PATCH /{eventID}/status.
type statusRequest struct {
	Status string `json:"status"`
}

// HandleStatus handles PATCH /{eventID}/status: the decision endpoint.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "eventID"))
	if err != nil {
		httpjson.Error(w, apierr.Validation("invalid event id"))
		return
	}
	var req statusRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	ev, err := h.Engine.Decide(ctx, id, req.Status)
	if err != nil {
		if apierr.IsKind(err, apierr.KindDeliveryFailure) {
			httpjson.Write(w, apierr.Status(err), httpjson.Envelope{
				Status:  false,
				Message: "decision recorded but the notification email failed",
				Data:    ev,
			})
			return
		}
		httpjson.Error(w, err)
		return
	}
	httpjson.OK(w, ev)
}
