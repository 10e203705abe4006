// internal/domain/models/feedback.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feedback is a structured evaluation submitted after an interview event.
//
// The populated field set depends on the event category: screening and
// orientation rounds use the short form (Rating through Decision), while
// technical and client rounds use the extended technical-skills form.
// Records are insert-only; the newest record per event is the current one.
type Feedback struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID primitive.ObjectID `bson:"event_id" json:"eventId"`

	// Short form (screening / orientation)
	Rating        int    `bson:"rating,omitempty" json:"rating,omitempty"`
	Communication int    `bson:"communication,omitempty" json:"communication,omitempty"`
	Confidence    int    `bson:"confidence,omitempty" json:"confidence,omitempty"`
	Remark        string `bson:"remark,omitempty" json:"remark,omitempty"`
	Decision      string `bson:"decision,omitempty" json:"decision,omitempty"`

	// Extended form (technical / client rounds)
	Constraints     int    `bson:"constraints,omitempty" json:"constraints,omitempty"`
	Assertion       int    `bson:"assertion,omitempty" json:"assertion,omitempty"`
	Coverage        int    `bson:"coverage,omitempty" json:"coverage,omitempty"`
	ProblemSolving  int    `bson:"problem_solving,omitempty" json:"problemSolving,omitempty"`
	Protocols       string `bson:"protocols,omitempty" json:"protocols,omitempty"`
	Scripting       string `bson:"scripting,omitempty" json:"scripting,omitempty"`
	SystemVerilog   string `bson:"system_verilog,omitempty" json:"systemVerilog,omitempty"`
	TechnicalSkills string `bson:"technical_skills,omitempty" json:"technicalSkills,omitempty"`
	UVM             string `bson:"uvm,omitempty" json:"uvm,omitempty"`
	Verilog         string `bson:"verilog,omitempty" json:"verilog,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
