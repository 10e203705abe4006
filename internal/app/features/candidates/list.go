// internal/app/features/candidates/list.go
package candidates

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	candidatestore "github.com/talentgate/hirehub/internal/app/store/candidates"
	"github.com/talentgate/hirehub/internal/app/system/apierr"
	"github.com/talentgate/hirehub/internal/app/system/auth"
	"github.com/talentgate/hirehub/internal/app/system/httpjson"
	"github.com/talentgate/hirehub/internal/app/system/paging"
	"github.com/talentgate/hirehub/internal/app/system/search"
	"github.com/talentgate/hirehub/internal/app/system/timeouts"
	"github.com/talentgate/hirehub/internal/domain/models"
)

// listEnvelope is the data payload for paged candidate lists.
type listEnvelope struct {
	Candidates any         `json:"candidates"`
	Meta       paging.Meta `json:"meta"`
}

// dateRangeFilter builds a created_at window from startDate/endDate
// query parameters (YYYY-MM-DD). Bad values are ignored.
func dateRangeFilter(r *http.Request) bson.M {
	rng := bson.M{}
	if s := query.Get(r, "startDate"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			rng["$gte"] = t.UTC()
		}
	}
	if s := query.Get(r, "endDate"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			rng["$lt"] = t.UTC().Add(24 * time.Hour)
		}
	}
	if len(rng) == 0 {
		return nil
	}
	return bson.M{"created_at": rng}
}

// ServeUnassigned handles GET /: the intake pool of candidates not yet
// owned by any HR user, filterable by search term and date range.
func (h *Handler) ServeUnassigned(w http.ResponseWriter, r *http.Request) {
	base := bson.M{"is_assigned": false, "is_dummy": false}
	h.serveList(w, r, search.Merge(
		base,
		search.AnyField(query.Get(r, "searchTerm"), "name", "email", "mobile", "status"),
		dateRangeFilter(r),
	))
}

// ServeAssigned handles GET /assigned: assigned candidates joined with
// their HR owner, searchable across both records.
func (h *Handler) ServeAssigned(w http.ResponseWriter, r *http.Request) {
	h.serveAssigned(w, r, bson.M{})
}

// ServeAssignedMine handles GET /assigned/me: the caller's own
// assignments.
func (h *Handler) ServeAssignedMine(w http.ResponseWriter, r *http.Request) {
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
	h.serveAssigned(w, r, bson.M{"assigned_to": uid})
}

func (h *Handler) serveAssigned(w http.ResponseWriter, r *http.Request, match bson.M) {
	p := paging.Parse(r, 0)
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rows, total, err := h.Store.FindAssignedWithHR(ctx, match, query.Get(r, "searchTerm"), p.Skip(), p.Limit64())
	if err != nil {
		httpjson.Error(w, apierr.Internal("listing assigned candidates", err))
		return
	}
	httpjson.OK(w, listEnvelope{Candidates: rows, Meta: p.MetaFor(total)})
}

// ServeShortlisted handles GET /shortlisted.
func (h *Handler) ServeShortlisted(w http.ResponseWriter, r *http.Request) {
	h.serveList(w, r, search.Merge(
		bson.M{"status": models.CandidateShortlisted},
		search.AnyField(query.Get(r, "searchTerm"), "name", "email", "mobile"),
	))
}

// ServeShortlistedMine handles GET /shortlisted/me.
func (h *Handler) ServeShortlistedMine(w http.ResponseWriter, r *http.Request) {
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
	h.serveList(w, r, search.Merge(
		bson.M{"status": models.CandidateShortlisted, "assigned_to": uid},
		search.AnyField(query.Get(r, "searchTerm"), "name", "email", "mobile"),
	))
}

// ServeMine handles GET /mine: everything assigned to the caller,
// whatever the status.
func (h *Handler) ServeMine(w http.ResponseWriter, r *http.Request) {
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
	h.serveList(w, r, search.Merge(
		bson.M{"assigned_to": uid},
		search.AnyField(query.Get(r, "searchTerm"), "name", "email", "mobile", "status"),
		dateRangeFilter(r),
	))
}

// ServeSearch handles GET /search: the universal keyword scan across
// every string-typed candidate field. Multi-word terms match when any
// word hits any field.
func (h *Handler) ServeSearch(w http.ResponseWriter, r *http.Request) {
	term := query.Get(r, "searchTerm")
	if term == "" {
		term = query.Get(r, "q")
	}
	filter := search.Keywords(term, candidatestore.SearchFields...)
	if filter == nil {
		httpjson.Error(w, apierr.MissingFields([]string{"searchTerm"}))
		return
	}
	h.serveList(w, r, filter)
}

func (h *Handler) serveList(w http.ResponseWriter, r *http.Request, filter bson.M) {
	p := paging.Parse(r, 0)
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	total, err := h.Store.Count(ctx, filter)
	if err != nil {
		httpjson.Error(w, apierr.Internal("counting candidates", err))
		return
	}
	cands, err := h.Store.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(p.Skip()).
		SetLimit(p.Limit64()))
	if err != nil {
		httpjson.Error(w, apierr.Internal("listing candidates", err))
		return
	}
	httpjson.OK(w, listEnvelope{Candidates: cands, Meta: p.MetaFor(total)})
}

// ServeOne handles GET /{candidateID}.
func (h *Handler) ServeOne(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "candidateID"))
	if err != nil {
		httpjson.Error(w, apierr.Validation("invalid candidate id"))
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	cand, err := h.Store.GetByID(ctx, id)
	if err != nil {
		if err == candidatestore.ErrNotFound {
			httpjson.Error(w, apierr.NotFound("candidate"))
			return
		}
		httpjson.Error(w, apierr.Internal("loading candidate", err))
		return
	}
	httpjson.OK(w, cand)
}

// ServeAssignedHR handles GET /hr/{hrID}: the HR user snapshot used by
// candidate detail views.
func (h *Handler) ServeAssignedHR(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "hrID"))
	if err != nil {
		httpjson.Error(w, apierr.Validation("invalid user id"))
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		httpjson.Error(w, apierr.NotFound("user"))
		return
	}
	httpjson.OK(w, map[string]any{
		"id":        u.ID,
		"firstName": u.FirstName,
		"lastName":  u.LastName,
		"email":     u.Email,
	})
}
