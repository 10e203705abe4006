// internal/app/features/organizations/handler.go
package organizations

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	organizationstore "github.com/talentgate/hirehub/internal/app/store/organizations"
	"github.com/talentgate/hirehub/internal/app/system/apierr"
	"github.com/talentgate/hirehub/internal/app/system/httpjson"
	"github.com/talentgate/hirehub/internal/app/system/paging"
	"github.com/talentgate/hirehub/internal/app/system/search"
	"github.com/talentgate/hirehub/internal/app/system/timeouts"
	"github.com/talentgate/hirehub/internal/domain/models"
)

// Handler is the feature-level entry point for client Organizations.
type Handler struct {
	Store *organizationstore.Store
	Log   *zap.Logger
}

// NewHandler constructs an Organizations handler bound to its store.
func NewHandler(store *organizationstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Log: logger}
}

// orgRequest is the JSON body for create and update.
type orgRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Website  string `json:"website"`
	Industry string `json:"industry"`
}

func (req orgRequest) missing() []string {
	var m []string
	if req.Name == "" {
		m = append(m, "name")
	}
	if req.Email == "" {
		m = append(m, "email")
	}
	return m
}

// HandleCreate handles POST /.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req orgRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, err)
		return
	}
	if m := req.missing(); len(m) > 0 {
		httpjson.Error(w, apierr.MissingFields(m))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	org, err := h.Store.Create(ctx, models.Organization{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		Website:  req.Website,
		Industry: req.Industry,
	})
	if err != nil {
		if err == organizationstore.ErrDuplicate {
			httpjson.Error(w, apierr.Conflict("an organization with this name already exists"))
			return
		}
		httpjson.Error(w, apierr.Internal("creating organization", err))
		return
	}
	httpjson.Created(w, org)
}

// ServeList handles GET / with a search term and paging. Inactive
// organizations are excluded unless includeInactive=true.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	parts := []bson.M{
		search.AnyField(query.Get(r, "searchTerm"), "name", "email", "industry", "address"),
	}
	if query.Get(r, "includeInactive") != "true" {
		parts = append(parts, bson.M{"is_active": true})
	}
	filter := search.Merge(parts...)

	p := paging.Parse(r, 0)
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	total, err := h.Store.Count(ctx, filter)
	if err != nil {
		httpjson.Error(w, apierr.Internal("counting organizations", err))
		return
	}
	orgs, err := h.Store.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "name_ci", Value: 1}}).
		SetSkip(p.Skip()).
		SetLimit(p.Limit64()))
	if err != nil {
		httpjson.Error(w, apierr.Internal("listing organizations", err))
		return
	}
	httpjson.OK(w, map[string]any{"organizations": orgs, "meta": p.MetaFor(total)})
}

func orgID(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "orgID"))
	if err != nil {
		return primitive.NilObjectID, apierr.Validation("invalid organization id")
	}
	return id, nil
}

// ServeOne handles GET /{orgID}.
func (h *Handler) ServeOne(w http.ResponseWriter, r *http.Request) {
	id, err := orgID(r)
	if err != nil {
		httpjson.Error(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	org, err := h.Store.GetByID(ctx, id)
	if err != nil {
		if err == organizationstore.ErrNotFound {
			httpjson.Error(w, apierr.NotFound("organization"))
			return
		}
		httpjson.Error(w, apierr.Internal("loading organization", err))
		return
	}
	httpjson.OK(w, org)
}

// HandleUpdate handles PUT /{orgID}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := orgID(r)
	if err != nil {
		httpjson.Error(w, err)
		return
	}
	var req orgRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, err)
		return
	}
	if m := req.missing(); len(m) > 0 {
		httpjson.Error(w, apierr.MissingFields(m))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	org, err := h.Store.Update(ctx, id, bson.M{
		"name":     req.Name,
		"email":    req.Email,
		"phone":    req.Phone,
		"address":  req.Address,
		"website":  req.Website,
		"industry": req.Industry,
	})
	if err != nil {
		switch err {
		case organizationstore.ErrNotFound:
			httpjson.Error(w, apierr.NotFound("organization"))
		case organizationstore.ErrDuplicate:
			httpjson.Error(w, apierr.Conflict("an organization with this name already exists"))
		default:
			httpjson.Error(w, apierr.Internal("updating organization", err))
		}
		return
	}
	httpjson.OK(w, org)
}

// HandleDelete handles DELETE /{orgID}: a soft delete, so historical
// events and invoices keep their references.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := orgID(r)
	if err != nil {
		httpjson.Error(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Store.SetActive(ctx, id, false); err != nil {
		if err == organizationstore.ErrNotFound {
			httpjson.Error(w, apierr.NotFound("organization"))
			return
		}
		httpjson.Error(w, apierr.Internal("deactivating organization", err))
		return
	}
	httpjson.Msg(w, http.StatusOK, "organization deactivated")
}
