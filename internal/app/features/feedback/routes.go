// internal/app/features/feedback/routes.go
package feedback

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts all Feedback routes under the base path (typically
// "/feedback" from bootstrap). Submission stays open because the
// interviewer forms are reached from emailed links, not from a
// signed-in session.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.HandleSubmit)
	r.Get("/event/{eventID}", h.ServeByEvent)
	r.Get("/event/{eventID}/exists", h.ServeExists)

	return r
}
