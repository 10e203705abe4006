// internal/domain/models/event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event statuses. The progression is pending → submitted → approved or
// rejected; approved and rejected are terminal.
const (
	EventPending   = "pending"
	EventSubmitted = "submitted"
	EventApproved  = "approved"
	EventRejected  = "rejected"
)

// EventStatuses lists every accepted event status literal.
var EventStatuses = []string{EventPending, EventSubmitted, EventApproved, EventRejected}

// IsEventStatus reports whether s is a known event status.
func IsEventStatus(s string) bool {
	for _, v := range EventStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// IsTerminalEventStatus reports whether s allows no further transition.
func IsTerminalEventStatus(s string) bool {
	return s == EventApproved || s == EventRejected
}

// EventCandidate is the candidate snapshot embedded in an event. It is
// captured when the event is scheduled and never refreshed afterwards,
// even if the candidate record changes.
type EventCandidate struct {
	CandidateID primitive.ObjectID `bson:"candidate_id" json:"candidateId"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Mobile      string             `bson:"mobile" json:"mobile"`
	Domain      []string           `bson:"domain,omitempty" json:"domain,omitempty"`
}

// EventInterviewer is the interviewer snapshot embedded in an event.
type EventInterviewer struct {
	InterviewerID primitive.ObjectID `bson:"interviewer_id" json:"interviewerId"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email" json:"email"`
}

// EventOrganization is the organization snapshot embedded in an event.
type EventOrganization struct {
	CompanyID primitive.ObjectID `bson:"company_id" json:"companyId"`
	Name      string             `bson:"name" json:"name"`
}

// Reschedule is one entry in an event's append-only reschedule history.
type Reschedule struct {
	PreviousDate    time.Time          `bson:"previous_date" json:"previousDate"`
	RescheduledBy   primitive.ObjectID `bson:"rescheduled_by" json:"rescheduledBy"`
	Reason          string             `bson:"reason,omitempty" json:"reason,omitempty"`
	DateRescheduled time.Time          `bson:"date_rescheduled" json:"dateRescheduled"`
}

// Event is a scheduled interview round linking a candidate, an
// interviewer, and an organization. Events are never deleted.
type Event struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventName     string             `bson:"event_name" json:"eventName"`
	InterviewDate time.Time          `bson:"interview_date" json:"interviewDate"`

	Candidate    EventCandidate     `bson:"candidate" json:"candidate"`
	Interviewer  EventInterviewer   `bson:"interviewer" json:"interviewer"`
	ScheduledBy  primitive.ObjectID `bson:"scheduled_by" json:"scheduledBy"`
	Organization EventOrganization  `bson:"organization" json:"organization"`

	MeetingLink string `bson:"meeting_link,omitempty" json:"meetingLink,omitempty"`
	Status      string `bson:"status" json:"status"`
	Notes       string `bson:"notes,omitempty" json:"notes,omitempty"`

	RescheduleHistory []Reschedule `bson:"reschedule_history,omitempty" json:"rescheduleHistory,omitempty"`
	ReminderSent      bool         `bson:"reminder_sent" json:"reminderSent"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
