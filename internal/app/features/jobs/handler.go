// internal/app/features/jobs/handler.go
package jobs

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	jobstore "github.com/talentgate/hirehub/internal/app/store/jobs"
	"github.com/talentgate/hirehub/internal/app/system/apierr"
	"github.com/talentgate/hirehub/internal/app/system/auth"
	"github.com/talentgate/hirehub/internal/app/system/htmlsanitize"
	"github.com/talentgate/hirehub/internal/app/system/httpjson"
	"github.com/talentgate/hirehub/internal/app/system/paging"
	"github.com/talentgate/hirehub/internal/app/system/search"
	"github.com/talentgate/hirehub/internal/app/system/timeouts"
	"github.com/talentgate/hirehub/internal/domain/models"
)

// Handler is the feature-level entry point for Job postings.
type Handler struct {
	Store *jobstore.Store
	Log   *zap.Logger
}

// NewHandler constructs a Jobs handler bound to its store.
func NewHandler(store *jobstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Log: logger}
}

// jobRequest is the JSON body for create and update.
type jobRequest struct {
	Title         string    `json:"title"`
	Location      string    `json:"location"`
	Status        string    `json:"status"`
	Organization  string    `json:"organization"`
	ClientName    string    `json:"clientName"`
	ExperienceMin int       `json:"experienceMin"`
	ExperienceMax int       `json:"experienceMax"`
	NoOfPositions int       `json:"noOfPositions"`
	Description   string    `json:"description"`
	Skills        []string  `json:"skills"`
	Priority      string    `json:"priority"`
	PostDate      time.Time `json:"postDate"`
	EndDate       time.Time `json:"endDate"`
}

func (req jobRequest) missing() []string {
	var m []string
	if req.Title == "" {
		m = append(m, "title")
	}
	if req.Location == "" {
		m = append(m, "location")
	}
	if req.Organization == "" {
		m = append(m, "organization")
	}
	return m
}

// HandleCreate handles POST /.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req jobRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, err)
		return
	}
	if m := req.missing(); len(m) > 0 {
		httpjson.Error(w, apierr.MissingFields(m))
		return
	}
	if req.Status != "" && !models.IsJobStatus(req.Status) {
		httpjson.Error(w, apierr.Validation("unknown job status %q", req.Status))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	job, err := h.Store.Create(ctx, models.JobPost{
		Title:         req.Title,
		Location:      req.Location,
		Status:        req.Status,
		Organization:  req.Organization,
		ClientName:    req.ClientName,
		ExperienceMin: req.ExperienceMin,
		ExperienceMax: req.ExperienceMax,
		NoOfPositions: req.NoOfPositions,
		Description:   htmlsanitize.Text(req.Description),
		Skills:        req.Skills,
		Priority:      req.Priority,
		PostDate:      req.PostDate,
		EndDate:       req.EndDate,
	})
	if err != nil {
		httpjson.Error(w, apierr.Internal("creating job post", err))
		return
	}
	httpjson.Created(w, job)
}

// ServeList handles GET / with searchTerm, location, organization, and
// experience filters plus paging.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	parts := []bson.M{
		search.AnyField(query.Get(r, "searchTerm"), "title", "description", "organization", "client_name", "skills"),
	}
	if loc := query.Get(r, "location"); loc != "" {
		parts = append(parts, bson.M{"location": search.Regex(loc)})
	}
	if org := query.Get(r, "organization"); org != "" {
		parts = append(parts, bson.M{"organization": search.Regex(org)})
	}
	if st := query.Get(r, "status"); st != "" {
		parts = append(parts, bson.M{"status": st})
	}
	if exp := query.Get(r, "experience"); exp != "" {
		if years, err := strconv.Atoi(exp); err == nil {
			parts = append(parts, bson.M{
				"experience_min": bson.M{"$lte": years},
				"experience_max": bson.M{"$gte": years},
			})
		}
	}
	filter := search.Merge(parts...)

	p := paging.Parse(r, 0)
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	total, err := h.Store.Count(ctx, filter)
	if err != nil {
		httpjson.Error(w, apierr.Internal("counting job posts", err))
		return
	}
	jobsList, err := h.Store.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "post_date", Value: -1}}).
		SetSkip(p.Skip()).
		SetLimit(p.Limit64()))
	if err != nil {
		httpjson.Error(w, apierr.Internal("listing job posts", err))
		return
	}
	httpjson.OK(w, map[string]any{"jobs": jobsList, "meta": p.MetaFor(total)})
}

func jobID(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "jobID"))
	if err != nil {
		return primitive.NilObjectID, apierr.Validation("invalid job id")
	}
	return id, nil
}

// ServeOne handles GET /{jobID}.
func (h *Handler) ServeOne(w http.ResponseWriter, r *http.Request) {
	id, err := jobID(r)
	if err != nil {
		httpjson.Error(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	job, err := h.Store.GetByID(ctx, id)
	if err != nil {
		if err == jobstore.ErrNotFound {
			httpjson.Error(w, apierr.NotFound("job post"))
			return
		}
		httpjson.Error(w, apierr.Internal("loading job post", err))
		return
	}
	httpjson.OK(w, job)
}

// HandleUpdate handles PUT /{jobID}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := jobID(r)
	if err != nil {
		httpjson.Error(w, err)
		return
	}
	var req jobRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, err)
		return
	}
	if m := req.missing(); len(m) > 0 {
		httpjson.Error(w, apierr.MissingFields(m))
		return
	}
	if req.Status != "" && !models.IsJobStatus(req.Status) {
		httpjson.Error(w, apierr.Validation("unknown job status %q", req.Status))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	job, err := h.Store.Update(ctx, id, bson.M{
		"title":           req.Title,
		"location":        req.Location,
		"status":          req.Status,
		"organization":    req.Organization,
		"client_name":     req.ClientName,
		"experience_min":  req.ExperienceMin,
		"experience_max":  req.ExperienceMax,
		"no_of_positions": req.NoOfPositions,
		"description":     htmlsanitize.Text(req.Description),
		"skills":          req.Skills,
		"priority":        req.Priority,
		"post_date":       req.PostDate,
		"end_date":        req.EndDate,
	})
	if err != nil {
		if err == jobstore.ErrNotFound {
			httpjson.Error(w, apierr.NotFound("job post"))
			return
		}
		httpjson.Error(w, apierr.Internal("updating job post", err))
		return
	}
	httpjson.OK(w, job)
}

// HandleDelete handles DELETE /{jobID}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := jobID(r)
	if err != nil {
		httpjson.Error(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Store.Delete(ctx, id); err != nil {
		if err == jobstore.ErrNotFound {
			httpjson.Error(w, apierr.NotFound("job post"))
			return
		}
		httpjson.Error(w, apierr.Internal("deleting job post", err))
		return
	}
	httpjson.Msg(w, http.StatusOK, "job post deleted")
}

// addCandidateRequest is the JSON body for POST /{jobID}/candidates.
type addCandidateRequest struct {
	CandidateID string `json:"candidateId"`
}

// HandleAddCandidate handles POST /{jobID}/candidates: the signed-in HR
// user pins a candidate onto the posting.
func (h *Handler) HandleAddCandidate(w http.ResponseWriter, r *http.Request) {
	id, err := jobID(r)
	if err != nil {
		httpjson.Error(w, err)
		return
	}
	u, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, apierr.Forbidden("sign in required"))
		return
	}
	uid, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		httpjson.Error(w, apierr.Internal("bad session user id", err))
		return
	}
	var req addCandidateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, err)
		return
	}
	candID, err := primitive.ObjectIDFromHex(req.CandidateID)
	if err != nil {
		httpjson.Error(w, apierr.Validation("invalid candidate id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	job, err := h.Store.AddCandidate(ctx, id, models.JobCandidate{
		CandidateID: candID,
		AddedByHR:   uid,
		AddedAt:     time.Now().UTC(),
	})
	if err != nil {
		switch err {
		case jobstore.ErrNotFound:
			httpjson.Error(w, apierr.NotFound("job post"))
		case jobstore.ErrAlreadyLinked:
			httpjson.Error(w, apierr.Conflict("candidate already added to this job post"))
		default:
			httpjson.Error(w, apierr.Internal("adding candidate to job post", err))
		}
		return
	}
	httpjson.OK(w, job)
}
