// internal/domain/models/candidate.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Candidate statuses. Any enum value may follow any other; the funnel
// order below is the usual progression, not an enforced one.
const (
	CandidatePending     = "pending"
	CandidateAssigned    = "assigned"
	CandidateOnHold      = "onhold"
	CandidateShortlisted = "shortlisted"
	CandidateEmployee    = "employee"
	CandidateTrainee     = "trainee"
	CandidateDeployed    = "deployed"
	CandidateRejected    = "rejected"
)

// CandidateStatuses lists every accepted candidate status literal.
var CandidateStatuses = []string{
	CandidatePending,
	CandidateAssigned,
	CandidateOnHold,
	CandidateShortlisted,
	CandidateEmployee,
	CandidateTrainee,
	CandidateDeployed,
	CandidateRejected,
}

// IsCandidateStatus reports whether s is a known candidate status.
func IsCandidateStatus(s string) bool {
	for _, v := range CandidateStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Remark is one entry in a candidate's append-only remark history.
// Entries are never edited or removed once written.
type Remark struct {
	Title string             `bson:"title" json:"title"`
	By    primitive.ObjectID `bson:"by" json:"by"`
	Name  string             `bson:"name" json:"name"`
	Date  time.Time          `bson:"date" json:"date"`
}

// Candidate is an applicant tracked through the hiring funnel.
//
// NOTE:
//   - Email and Mobile each carry a unique index (see system/indexes).
//   - POC holds the display name of the point-of-contact HR user as it
//     was at registration time; it is a snapshot and is never refreshed.
//   - IsAssigned is stored redundantly but must always equal
//     (AssignedTo != nil). Every mutating path maintains this.
type Candidate struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name   string             `bson:"name" json:"name"`
	Email  string             `bson:"email" json:"email"`
	Mobile string             `bson:"mobile" json:"mobile"`

	Degree         string   `bson:"degree,omitempty" json:"degree,omitempty"`
	Domain         []string `bson:"domain,omitempty" json:"domain,omitempty"`
	DOB            string   `bson:"dob,omitempty" json:"dob,omitempty"`
	GraduationYear string   `bson:"graduation_year,omitempty" json:"graduationYear,omitempty"`
	Skills         string   `bson:"skills,omitempty" json:"skills,omitempty"`

	SelfRating                string `bson:"self_rating,omitempty" json:"selfRating,omitempty"`
	ReleventExp               string `bson:"relevent_exp,omitempty" json:"releventExp,omitempty"`
	ExpIncludingTraining      string `bson:"exp_including_training,omitempty" json:"expIncludingTraining,omitempty"`
	ExperienceYears           string `bson:"experience_years,omitempty" json:"experienceYears,omitempty"`
	CurrentCTC                string `bson:"current_ctc,omitempty" json:"currentCTC,omitempty"`
	ExpectedCTC               string `bson:"expected_ctc,omitempty" json:"expectedCTC,omitempty"`
	JobChangeReason           string `bson:"job_change_reason,omitempty" json:"jobChangeReason,omitempty"`
	InterviewsAttended        string `bson:"interviews_attended,omitempty" json:"interviewsAttended,omitempty"`
	CompaniesAppliedSixMonths string `bson:"companies_applied_six_months,omitempty" json:"companiesAppliedSixMonths,omitempty"`
	OfferDetails              string `bson:"offer_details,omitempty" json:"offerDetails,omitempty"`
	IndividualRole            string `bson:"individual_role,omitempty" json:"individualRole,omitempty"`
	ForeignWork               string `bson:"foreign_work,omitempty" json:"foreignWork,omitempty"`
	BondWilling               string `bson:"bond_willing,omitempty" json:"bondWilling,omitempty"`
	BondDetails               string `bson:"bond_details,omitempty" json:"bondDetails,omitempty"`

	PreferredLocation string `bson:"preferred_location,omitempty" json:"preferredLocation,omitempty"`
	CurrentLocation   string `bson:"current_location,omitempty" json:"currentLocation,omitempty"`
	Availability      string `bson:"availability,omitempty" json:"availability,omitempty"`

	POC    string `bson:"poc,omitempty" json:"poc,omitempty"`
	Resume string `bson:"resume,omitempty" json:"resume,omitempty"`

	IsExperienced bool                `bson:"is_experienced" json:"isExperienced"`
	IsDummy       bool                `bson:"is_dummy" json:"isDummy"`
	IsAssigned    bool                `bson:"is_assigned" json:"isAssigned"`
	AssignedTo    *primitive.ObjectID `bson:"assigned_to,omitempty" json:"assignedTo,omitempty"`

	Status string   `bson:"status" json:"status"`
	Remark []Remark `bson:"remark" json:"remark"`

	ConsentForm       string `bson:"consent_form,omitempty" json:"consentForm,omitempty"`
	IsConsentUploaded bool   `bson:"is_consent_uploaded" json:"isConsentUploaded"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
