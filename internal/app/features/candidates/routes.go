// internal/app/features/candidates/routes.go
package candidates

import (
	"github.com/go-chi/chi/v5"

	"github.com/talentgate/hirehub/internal/app/system/auth"
	"github.com/talentgate/hirehub/internal/domain/models"
)

// Routes mounts all Candidate routes under the base path (typically
// "/candidates" from bootstrap).
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	// Registration is public: candidates submit the intake forms
	// without an account.
	r.Post("/register/fresher", h.HandleRegisterFresher)
	r.Post("/register/experienced", h.HandleRegisterExperienced)

	// Staff routes.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Post("/register/dummy", h.HandleRegisterDummy)

		pr.Get("/", h.ServeUnassigned)
		pr.Get("/search", h.ServeSearch)
		pr.Get("/assigned", h.ServeAssigned)
		pr.Get("/assigned/me", h.ServeAssignedMine)
		pr.Get("/shortlisted", h.ServeShortlisted)
		pr.Get("/shortlisted/me", h.ServeShortlistedMine)
		pr.Get("/mine", h.ServeMine)
		pr.Get("/hr/{hrID}", h.ServeAssignedHR)
		pr.Get("/{candidateID}", h.ServeOne)

		pr.Post("/{candidateID}/remarks", h.HandleRemark)
		pr.Post("/{candidateID}/consent", h.HandleConsent)
		pr.Patch("/{candidateID}/status", h.HandleStatus)
	})

	// Assignment is reserved for admins and HR leads.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Use(auth.RequireRole(models.RoleAdmin, models.RoleHR))
		pr.Post("/{candidateID}/assign", h.HandleAssign)
	})

	return r
}
