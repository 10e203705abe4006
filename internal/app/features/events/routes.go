// internal/app/features/events/routes.go
package events

import (
	"github.com/go-chi/chi/v5"

	"github.com/talentgate/hirehub/internal/app/system/auth"
)

// Routes mounts all Event routes under the base path (typically
// "/events" from bootstrap).
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Post("/", h.HandleSchedule)
	r.Get("/candidate/{candidateID}", h.ServeByCandidate)
	r.Patch("/{eventID}/status", h.HandleStatus)

	return r
}
