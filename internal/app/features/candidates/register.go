// internal/app/features/candidates/register.go
package candidates

import (
	"context"
	"net/http"

	"github.com/talentgate/hirehub/internal/app/lifecycle"
	"github.com/talentgate/hirehub/internal/app/system/apierr"
	"github.com/talentgate/hirehub/internal/app/system/httpjson"
	"github.com/talentgate/hirehub/internal/app/system/timeouts"
)

// HandleRegisterFresher handles POST /register/fresher.
func (h *Handler) HandleRegisterFresher(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, lifecycle.KindFresher)
}

// HandleRegisterExperienced handles POST /register/experienced.
func (h *Handler) HandleRegisterExperienced(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, lifecycle.KindExperienced)
}

// HandleRegisterDummy handles POST /register/dummy. Dummy records fill
// interview slots for trial runs; no email is sent.
func (h *Handler) HandleRegisterDummy(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, lifecycle.KindDummy)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request, kind lifecycle.RegisterKind) {
	var req registerRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	cand, err := h.Engine.Register(ctx, req.toInput(kind))
	if err != nil {
		// A delivery failure still created the candidate; the envelope
		// carries the record so the client has the id.
		if apierr.IsKind(err, apierr.KindDeliveryFailure) {
			httpjson.Write(w, apierr.Status(err), httpjson.Envelope{
				Status:  false,
				Message: "candidate registered but the acknowledgement email failed",
				Data:    cand,
			})
			return
		}
		httpjson.Error(w, err)
		return
	}
	httpjson.Created(w, cand)
}
