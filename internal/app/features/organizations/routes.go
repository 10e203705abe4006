// internal/app/features/organizations/routes.go
package organizations

import (
	"github.com/go-chi/chi/v5"

	"github.com/talentgate/hirehub/internal/app/system/auth"
	"github.com/talentgate/hirehub/internal/domain/models"
)

// Routes mounts all Organization routes under the base path (typically
// "/organizations" from bootstrap).
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Get("/", h.ServeList)
		pr.Get("/{orgID}", h.ServeOne)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Use(auth.RequireRole(models.RoleAdmin, models.RoleHR))
		pr.Post("/", h.HandleCreate)
		pr.Put("/{orgID}", h.HandleUpdate)
		pr.Delete("/{orgID}", h.HandleDelete)
	})

	return r
}
