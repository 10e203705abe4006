// internal/app/features/invoices/routes.go
package invoices

import (
	"github.com/go-chi/chi/v5"

	"github.com/talentgate/hirehub/internal/app/system/auth"
	"github.com/talentgate/hirehub/internal/domain/models"
)

// Routes mounts all Invoice routes under the base path (typically
// "/invoices" from bootstrap). Billing is restricted to admins and
// accounts users.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Use(auth.RequireRole(models.RoleAdmin, models.RoleAccounts))

	r.Post("/", h.HandleCreate)
	r.Get("/", h.ServeList)
	r.Get("/{invoiceID}", h.ServeOne)
	r.Patch("/{invoiceID}/status", h.HandleStatus)
	r.Post("/{invoiceID}/send", h.HandleSend)

	return r
}
