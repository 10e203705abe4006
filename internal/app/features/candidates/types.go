// internal/app/features/candidates/types.go
package candidates

import "github.com/talentgate/hirehub/internal/app/lifecycle"

// registerRequest is the JSON body for the three registration routes.
type registerRequest struct {
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Mobile string   `json:"mobile"`
	Degree string   `json:"degree"`
	Domain []string `json:"domain"`
	DOB    string   `json:"dob"`

	GraduationYear string `json:"graduationYear"`
	Skills         string `json:"skills"`

	SelfRating                string `json:"selfRating"`
	ReleventExp               string `json:"releventExp"`
	ExpIncludingTraining      string `json:"expIncludingTraining"`
	ExperienceYears           string `json:"experienceYears"`
	CurrentCTC                string `json:"currentCTC"`
	ExpectedCTC               string `json:"expectedCTC"`
	JobChangeReason           string `json:"jobChangeReason"`
	InterviewsAttended        string `json:"interviewsAttended"`
	CompaniesAppliedSixMonths string `json:"companiesAppliedSixMonths"`
	OfferDetails              string `json:"offerDetails"`
	IndividualRole            string `json:"individualRole"`
	ForeignWork               string `json:"foreignWork"`
	BondWilling               string `json:"bondWilling"`
	BondDetails               string `json:"bondDetails"`

	PreferredLocation string `json:"preferredLocation"`
	CurrentLocation   string `json:"currentLocation"`
	Availability      string `json:"availability"`

	POC    string `json:"poc"`
	Resume string `json:"resume"`
}

func (req registerRequest) toInput(kind lifecycle.RegisterKind) lifecycle.RegisterInput {
	return lifecycle.RegisterInput{
		Kind:   kind,
		Name:   req.Name,
		Email:  req.Email,
		Mobile: req.Mobile,

		Degree:         req.Degree,
		Domain:         req.Domain,
		DOB:            req.DOB,
		GraduationYear: req.GraduationYear,
		Skills:         req.Skills,

		SelfRating:                req.SelfRating,
		ReleventExp:               req.ReleventExp,
		ExpIncludingTraining:      req.ExpIncludingTraining,
		ExperienceYears:           req.ExperienceYears,
		CurrentCTC:                req.CurrentCTC,
		ExpectedCTC:               req.ExpectedCTC,
		JobChangeReason:           req.JobChangeReason,
		InterviewsAttended:        req.InterviewsAttended,
		CompaniesAppliedSixMonths: req.CompaniesAppliedSixMonths,
		OfferDetails:              req.OfferDetails,
		IndividualRole:            req.IndividualRole,
		ForeignWork:               req.ForeignWork,
		BondWilling:               req.BondWilling,
		BondDetails:               req.BondDetails,

		PreferredLocation: req.PreferredLocation,
		CurrentLocation:   req.CurrentLocation,
		Availability:      req.Availability,

		POC:    req.POC,
		Resume: req.Resume,
	}
}

// assignRequest is the JSON body for POST /{candidateID}/assign.
type assignRequest struct {
	HRID string `json:"hrId"`
}

// statusRequest is the JSON body for PATCH /{candidateID}/status.
type statusRequest struct {
	Status string `json:"status"`
}

// remarkRequest is the JSON body for POST /{candidateID}/remarks.
type remarkRequest struct {
	Title string `json:"title"`
}
