// internal/app/lifecycle/engine.go

// Package lifecycle moves candidates through the hiring funnel:
// registration, HR assignment, status changes, remarks, and consent
// capture. Every operation persists before it notifies; a mail
// transport failure never rolls a write back.
package lifecycle

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	candidatestore "github.com/talentgate/hirehub/internal/app/store/candidates"
	userstore "github.com/talentgate/hirehub/internal/app/store/users"
	"github.com/talentgate/hirehub/internal/app/system/apierr"
	"github.com/talentgate/hirehub/internal/app/system/htmlsanitize"
	"github.com/talentgate/hirehub/internal/app/system/mailer"
	"github.com/talentgate/hirehub/internal/domain/models"
)

// CandidateStore is the persistence surface the engine needs.
type CandidateStore interface {
	Create(ctx context.Context, cand models.Candidate) (models.Candidate, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Candidate, error)
	GetByEmailOrMobile(ctx context.Context, email, mobile string) (models.Candidate, error)
	Assign(ctx context.Context, id, hrUserID primitive.ObjectID) (models.Candidate, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) (models.Candidate, error)
	PushRemark(ctx context.Context, id primitive.ObjectID, remark models.Remark) (models.Candidate, error)
	AttachConsent(ctx context.Context, id primitive.ObjectID, consentForm string) (models.Candidate, error)
}

// UserStore resolves HR users for poc snapshots and assignment checks.
type UserStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
}

// Notifier sends candidate-facing email.
type Notifier interface {
	Send(ctx context.Context, e mailer.Email) (mailer.Result, error)
}

// Config carries the engine's tunables.
type Config struct {
	// ReapplyCooldown is how long a rejected candidate must wait before
	// registering again with the same mobile number.
	ReapplyCooldown time.Duration
}

// Engine implements the candidate lifecycle operations.
type Engine struct {
	candidates CandidateStore
	users      UserStore
	notifier   Notifier
	cfg        Config
	log        *zap.Logger
}

func New(candidates CandidateStore, users UserStore, notifier Notifier, cfg Config, log *zap.Logger) *Engine {
	return &Engine{
		candidates: candidates,
		users:      users,
		notifier:   notifier,
		cfg:        cfg,
		log:        log,
	}
}

// RegisterKind selects the intake path.
type RegisterKind string

const (
	KindFresher     RegisterKind = "fresher"
	KindExperienced RegisterKind = "experienced"
	KindDummy       RegisterKind = "dummy"
)

// RegisterInput is one intake submission. Which fields are required
// depends on Kind; the rest are stored as given.
type RegisterInput struct {
	Kind RegisterKind

	Name   string
	Email  string
	Mobile string

	Degree         string
	Domain         []string
	DOB            string
	GraduationYear string
	Skills         string

	SelfRating                string
	ReleventExp               string
	ExpIncludingTraining      string
	ExperienceYears           string
	CurrentCTC                string
	ExpectedCTC               string
	JobChangeReason           string
	InterviewsAttended        string
	CompaniesAppliedSixMonths string
	OfferDetails              string
	IndividualRole            string
	ForeignWork               string
	BondWilling               string
	BondDetails               string

	PreferredLocation string
	CurrentLocation   string
	Availability      string

	// POC is the email of the HR user who sourced this candidate. When
	// set, the candidate is pre-assigned to that user.
	POC    string
	Resume string
}

func (in RegisterInput) missing() []string {
	var m []string
	req := func(name, v string) {
		if v == "" {
			m = append(m, name)
		}
	}
	req("name", in.Name)
	req("email", in.Email)
	req("mobile", in.Mobile)
	switch in.Kind {
	case KindFresher:
		req("degree", in.Degree)
		req("graduationYear", in.GraduationYear)
		if len(in.Domain) == 0 {
			m = append(m, "domain")
		}
	case KindExperienced:
		req("experienceYears", in.ExperienceYears)
		req("currentCTC", in.CurrentCTC)
		req("expectedCTC", in.ExpectedCTC)
		if len(in.Domain) == 0 {
			m = append(m, "domain")
		}
	}
	return m
}

// Register creates a candidate via one of the three intake paths and
// sends the acknowledgement email. The write happens first: a mail
// failure is returned as a delivery-failure error, but the candidate is
// already persisted and included in the result.
func (e *Engine) Register(ctx context.Context, in RegisterInput) (models.Candidate, error) {
	if m := in.missing(); len(m) > 0 {
		return models.Candidate{}, apierr.MissingFields(m)
	}

	// A rejected candidate must sit out the cooldown before reapplying.
	// The block is keyed on the mobile number: a record that collides by
	// email alone is a plain duplicate.
	if prior, err := e.candidates.GetByEmailOrMobile(ctx, in.Email, in.Mobile); err == nil {
		if prior.Status == models.CandidateRejected &&
			prior.Mobile == strings.TrimSpace(in.Mobile) &&
			time.Since(prior.UpdatedAt) < e.cfg.ReapplyCooldown {
			return models.Candidate{}, apierr.Forbidden(
				"this candidate was rejected recently and cannot reapply yet")
		}
		return models.Candidate{}, apierr.Conflict("a candidate with this email or mobile already exists")
	} else if !errors.Is(err, candidatestore.ErrNotFound) {
		return models.Candidate{}, apierr.Internal("looking up existing candidate", err)
	}

	cand := models.Candidate{
		Name:   in.Name,
		Email:  in.Email,
		Mobile: in.Mobile,

		Degree:         in.Degree,
		Domain:         in.Domain,
		DOB:            in.DOB,
		GraduationYear: in.GraduationYear,
		Skills:         in.Skills,

		SelfRating:                in.SelfRating,
		ReleventExp:               in.ReleventExp,
		ExpIncludingTraining:      in.ExpIncludingTraining,
		ExperienceYears:           in.ExperienceYears,
		CurrentCTC:                in.CurrentCTC,
		ExpectedCTC:               in.ExpectedCTC,
		JobChangeReason:           in.JobChangeReason,
		InterviewsAttended:        in.InterviewsAttended,
		CompaniesAppliedSixMonths: in.CompaniesAppliedSixMonths,
		OfferDetails:              in.OfferDetails,
		IndividualRole:            in.IndividualRole,
		ForeignWork:               in.ForeignWork,
		BondWilling:               in.BondWilling,
		BondDetails:               in.BondDetails,

		PreferredLocation: in.PreferredLocation,
		CurrentLocation:   in.CurrentLocation,
		Availability:      in.Availability,

		Resume: in.Resume,

		IsExperienced: in.Kind == KindExperienced,
		IsDummy:       in.Kind == KindDummy,
		Status:        models.CandidatePending,
	}

	// A named poc pre-assigns the candidate and snapshots the HR user's
	// display name as it is right now.
	if in.POC != "" {
		hr, err := e.users.GetByEmail(ctx, in.POC)
		switch {
		case err == nil:
			cand.POC = hr.DisplayName()
			cand.AssignedTo = &hr.ID
			cand.IsAssigned = true
		case errors.Is(err, userstore.ErrNotFound):
			return models.Candidate{}, apierr.Validation("poc %q does not match any HR user", in.POC)
		default:
			return models.Candidate{}, apierr.Internal("resolving poc", err)
		}
	}

	created, err := e.candidates.Create(ctx, cand)
	if err != nil {
		if errors.Is(err, candidatestore.ErrDuplicate) {
			return models.Candidate{}, apierr.Conflict("a candidate with this email or mobile already exists")
		}
		return models.Candidate{}, apierr.Internal("creating candidate", err)
	}

	if in.Kind == KindDummy {
		return created, nil
	}

	ack := mailer.BuildRegistrationEmail(mailer.RegistrationData{CandidateName: created.Name})
	ack.To = []string{created.Email}
	if _, err := e.notifier.Send(ctx, ack); err != nil {
		e.log.Warn("registration email failed",
			zap.String("candidate_id", created.ID.Hex()),
			zap.Error(err))
		return created, apierr.DeliveryFailure("candidate registered but the acknowledgement email failed", err)
	}
	return created, nil
}

// Assign hands a candidate to an HR user. Re-assigning simply transfers
// ownership; the candidate's status is untouched.
func (e *Engine) Assign(ctx context.Context, candidateID, hrUserID primitive.ObjectID) (models.Candidate, error) {
	hr, err := e.users.GetByID(ctx, hrUserID)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			return models.Candidate{}, apierr.NotFound("user")
		}
		return models.Candidate{}, apierr.Internal("loading HR user", err)
	}
	if hr.Role != models.RoleHR && hr.Role != models.RoleAdmin {
		return models.Candidate{}, apierr.Validation("user %s is not an HR user", hrUserID.Hex())
	}

	cand, err := e.candidates.Assign(ctx, candidateID, hrUserID)
	if err != nil {
		if errors.Is(err, candidatestore.ErrNotFound) {
			return models.Candidate{}, apierr.NotFound("candidate")
		}
		return models.Candidate{}, apierr.Internal("assigning candidate", err)
	}
	return cand, nil
}

// ChangeStatus sets any known status literal. Transitions are not
// restricted; correcting a mistaken move is an ordinary status change.
func (e *Engine) ChangeStatus(ctx context.Context, candidateID primitive.ObjectID, status string) (models.Candidate, error) {
	if !models.IsCandidateStatus(status) {
		return models.Candidate{}, apierr.Validation("unknown candidate status %q", status)
	}
	cand, err := e.candidates.SetStatus(ctx, candidateID, status)
	if err != nil {
		if errors.Is(err, candidatestore.ErrNotFound) {
			return models.Candidate{}, apierr.NotFound("candidate")
		}
		return models.Candidate{}, apierr.Internal("updating candidate status", err)
	}
	return cand, nil
}

// AddRemark appends one remark authored by the given user. The text is
// stripped of markup before storage; the timestamp is always the
// server's.
func (e *Engine) AddRemark(ctx context.Context, candidateID primitive.ObjectID, author models.User, text string) (models.Candidate, error) {
	text = htmlsanitize.Text(text)
	if text == "" {
		return models.Candidate{}, apierr.MissingFields([]string{"title"})
	}
	remark := models.Remark{
		Title: text,
		By:    author.ID,
		Name:  author.DisplayName(),
		Date:  time.Now().UTC(),
	}
	cand, err := e.candidates.PushRemark(ctx, candidateID, remark)
	if err != nil {
		if errors.Is(err, candidatestore.ErrNotFound) {
			return models.Candidate{}, apierr.NotFound("candidate")
		}
		return models.Candidate{}, apierr.Internal("adding remark", err)
	}
	return cand, nil
}

// AttachConsent stores a signed consent PDF inline and moves the
// candidate to shortlisted, both in one update.
func (e *Engine) AttachConsent(ctx context.Context, candidateID primitive.ObjectID, pdf []byte) (models.Candidate, error) {
	if len(pdf) == 0 {
		return models.Candidate{}, apierr.MissingFields([]string{"consentForm"})
	}
	if len(pdf) < 5 || string(pdf[:5]) != "%PDF-" {
		return models.Candidate{}, apierr.Validation("consent form must be a PDF document")
	}
	encoded := "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(pdf)
	cand, err := e.candidates.AttachConsent(ctx, candidateID, encoded)
	if err != nil {
		if errors.Is(err, candidatestore.ErrNotFound) {
			return models.Candidate{}, apierr.NotFound("candidate")
		}
		return models.Candidate{}, apierr.Internal("storing consent form", err)
	}
	return cand, nil
}
