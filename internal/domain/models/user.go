// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles.
const (
	RoleAdmin       = "admin"
	RoleHR          = "hr"
	RoleInterviewer = "interviewer"
	RoleAccounts    = "accounts"
)

// User represents back-office staff: admins, HR users, interviewers, and
// accounts users. Candidates are not users; they live in the candidates
// collection and never log in.
type User struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	FirstName    string              `bson:"first_name" json:"firstName"`
	LastName     string              `bson:"last_name" json:"lastName"`
	Email        string              `bson:"email" json:"email"`
	EmailCI      string              `bson:"email_ci" json:"-"` // lowercase, diacritics-stripped
	PasswordHash string              `bson:"password_hash" json:"-"`
	Role         string              `bson:"role" json:"role"`
	Status       string              `bson:"status,omitempty" json:"status,omitempty"`
	Department   string              `bson:"department,omitempty" json:"department,omitempty"`
	Designation  string              `bson:"designation,omitempty" json:"designation,omitempty"`
	WorkPhone    string              `bson:"work_phone,omitempty" json:"workPhone,omitempty"`
	ReportingTo  *primitive.ObjectID `bson:"reporting_to,omitempty" json:"reportingTo,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// DisplayName returns the name used when a user is snapshotted onto
// another record (candidate poc, remark author).
func (u User) DisplayName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
