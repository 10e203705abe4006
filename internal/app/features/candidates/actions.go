// internal/app/features/candidates/actions.go
package candidates

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/talentgate/hirehub/internal/app/system/apierr"
	"github.com/talentgate/hirehub/internal/app/system/auth"
	"github.com/talentgate/hirehub/internal/app/system/httpjson"
	"github.com/talentgate/hirehub/internal/app/system/timeouts"
	"github.com/talentgate/hirehub/internal/domain/models"
)

// maxConsentBytes caps the consent PDF upload.
const maxConsentBytes = 10 << 20 // 10 MiB

func candidateID(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "candidateID"))
	if err != nil {
		return primitive.NilObjectID, apierr.Validation("invalid candidate id")
	}
	return id, nil
}

// HandleAssign handles POST /{candidateID}/assign.
func (h *Handler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	id, err := candidateID(r)
	if err != nil {
		httpjson.Error(w, err)
		return
	}
	var req assignRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, err)
		return
	}
	hrID, err := primitive.ObjectIDFromHex(req.HRID)
	if err != nil {
		httpjson.Error(w, apierr.Validation("invalid hr user id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	cand, err := h.Engine.Assign(ctx, id, hrID)
	if err != nil {
		httpjson.Error(w, err)
		return
	}
	httpjson.OK(w, cand)
}

// HandleStatus handles PATCH /{candidateID}/status.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	id, err := candidateID(r)
	if err != nil {
		httpjson.Error(w, err)
		return
	}
	var req statusRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	cand, err := h.Engine.ChangeStatus(ctx, id, req.Status)
	if err != nil {
		httpjson.Error(w, err)
		return
	}
	httpjson.OK(w, cand)
}

// HandleRemark handles POST /{candidateID}/remarks. The author is the
// signed-in user; the timestamp is the server's.
func (h *Handler) HandleRemark(w http.ResponseWriter, r *http.Request) {
	id, err := candidateID(r)
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
	var req remarkRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	author := models.User{ID: uid, FirstName: u.Name}
	cand, err := h.Engine.AddRemark(ctx, id, author, req.Title)
	if err != nil {
		httpjson.Error(w, err)
		return
	}
	httpjson.OK(w, cand)
}

// HandleConsent handles POST /{candidateID}/consent: a multipart upload
// carrying the signed consent PDF in the "consentForm" field.
func (h *Handler) HandleConsent(w http.ResponseWriter, r *http.Request) {
	id, err := candidateID(r)
	if err != nil {
		httpjson.Error(w, err)
		return
	}
	if err := r.ParseMultipartForm(maxConsentBytes); err != nil {
		httpjson.Error(w, apierr.Validation("invalid multipart body"))
		return
	}
	file, _, err := r.FormFile("consentForm")
	if err != nil {
		httpjson.Error(w, apierr.MissingFields([]string{"consentForm"}))
		return
	}
	defer file.Close()

	pdf, err := io.ReadAll(io.LimitReader(file, maxConsentBytes))
	if err != nil {
		httpjson.Error(w, apierr.Internal("reading consent upload", err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cand, err := h.Engine.AttachConsent(ctx, id, pdf)
	if err != nil {
		httpjson.Error(w, err)
		return
	}
	httpjson.OK(w, cand)
}
