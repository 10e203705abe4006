// internal/app/features/candidates/handler.go
package candidates

import (
	"go.uber.org/zap"

	"github.com/talentgate/hirehub/internal/app/lifecycle"
	candidatestore "github.com/talentgate/hirehub/internal/app/store/candidates"
	userstore "github.com/talentgate/hirehub/internal/app/store/users"
)

// Handler is the feature-level entry point for Candidates.
type Handler struct {
	Engine *lifecycle.Engine
	Store  *candidatestore.Store
	Users  *userstore.Store
	Log    *zap.Logger
}

// NewHandler constructs a Candidates handler bound to the lifecycle
// engine and stores.
func NewHandler(engine *lifecycle.Engine, store *candidatestore.Store, users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Engine: engine,
		Store:  store,
		Users:  users,
		Log:    logger,
	}
}
