// internal/app/features/uploads/routes.go
package uploads

import "github.com/go-chi/chi/v5"

// Routes mounts the upload routes under the base path (typically
// "/uploads" from bootstrap). Resume upload is public because the
// intake forms use it before any account exists.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/resume", h.HandleResume)
	return r
}
