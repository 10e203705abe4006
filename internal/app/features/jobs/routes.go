// internal/app/features/jobs/routes.go
package jobs

import (
	"github.com/go-chi/chi/v5"

	"github.com/talentgate/hirehub/internal/app/system/auth"
	"github.com/talentgate/hirehub/internal/domain/models"
)

// Routes mounts all Job posting routes under the base path (typically
// "/jobs" from bootstrap).
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	// Listings are public so postings can be linked from outside.
	r.Get("/", h.ServeList)
	r.Get("/{jobID}", h.ServeOne)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Use(auth.RequireRole(models.RoleAdmin, models.RoleHR))

		pr.Post("/", h.HandleCreate)
		pr.Put("/{jobID}", h.HandleUpdate)
		pr.Delete("/{jobID}", h.HandleDelete)
		pr.Post("/{jobID}/candidates", h.HandleAddCandidate)
	})

	return r
}
