// internal/domain/models/jobpost.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Job posting statuses and priorities.
const (
	JobActive   = "Active"
	JobInactive = "Inactive"
	JobOnHold   = "On Hold"
	JobFilled   = "Filled"

	JobPriorityLow    = "Low"
	JobPriorityMedium = "Medium"
	JobPriorityHigh   = "High"
)

// JobStatuses lists every accepted job post status literal.
var JobStatuses = []string{JobActive, JobInactive, JobOnHold, JobFilled}

// IsJobStatus reports whether s is a known job post status.
func IsJobStatus(s string) bool {
	for _, v := range JobStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// JobCandidate links a candidate that an HR user attached to a posting.
type JobCandidate struct {
	CandidateID primitive.ObjectID `bson:"candidate_id" json:"candidateId"`
	AddedByHR   primitive.ObjectID `bson:"added_by_hr" json:"addedByHR"`
	AddedAt     time.Time          `bson:"added_at" json:"addedAt"`
}

// JobPost is an open position advertised for an organization.
type JobPost struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Location      string             `bson:"location" json:"location"`
	Status        string             `bson:"status" json:"status"`
	Organization  string             `bson:"organization" json:"organization"`
	ClientName    string             `bson:"client_name,omitempty" json:"clientName,omitempty"`
	ExperienceMin int                `bson:"experience_min" json:"experienceMin"`
	ExperienceMax int                `bson:"experience_max" json:"experienceMax"`
	NoOfPositions int                `bson:"no_of_positions" json:"noOfPositions"`
	Description   string             `bson:"description" json:"description"`
	Skills        []string           `bson:"skills" json:"skills"`
	Priority      string             `bson:"priority" json:"priority"`
	PostDate      time.Time          `bson:"post_date" json:"postDate"`
	EndDate       time.Time          `bson:"end_date" json:"endDate"`
	Candidates    []JobCandidate     `bson:"candidates,omitempty" json:"candidates,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
