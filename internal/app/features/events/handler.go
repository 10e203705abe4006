// internal/app/features/events/handler.go
package events

import (
	"go.uber.org/zap"

	"github.com/talentgate/hirehub/internal/app/interview"
	eventstore "github.com/talentgate/hirehub/internal/app/store/events"
)

// Handler is the feature-level entry point for interview Events.
type Handler struct {
	Engine *interview.Engine
	Store  *eventstore.Store
	Log    *zap.Logger
}

// NewHandler constructs an Events handler bound to the interview engine.
func NewHandler(engine *interview.Engine, store *eventstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Engine: engine,
		Store:  store,
		Log:    logger,
	}
}
