// internal/app/features/health/handler.go
package health

import (
	"context"
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/talentgate/hirehub/internal/app/system/timeouts"
)

// MailProber is the mailer's health surface.
type MailProber interface {
	Healthy(ctx context.Context) error
}

// Handler holds dependencies needed for health checks.
type Handler struct {
	Client *mongo.Client
	Mail   MailProber
	Log    *zap.Logger
}

// NewHandler constructs a health Handler with the Mongo client, the
// mailer, and a logger.
func NewHandler(client *mongo.Client, mail MailProber, logger *zap.Logger) *Handler {
	return &Handler{
		Client: client,
		Mail:   mail,
		Log:    logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Mail     string `json:"mail,omitempty"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "database":"connected", "mail":"ok" }
//
// On DB failure: 503. A mail transport failure is reported but does not
// fail the check; the API works without outbound email.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:   "ok",
		Database: "connected",
	}

	if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
		h.Log.Error("health-check: mongo ping failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.Database = "disconnected"
		resp.Message = "Database unavailable"
		resp.Error = err.Error()
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	if h.Mail != nil {
		if err := h.Mail.Healthy(ctx); err != nil {
			h.Log.Warn("health-check: mail probe failed", zap.Error(err))
			resp.Mail = "unavailable"
		} else {
			resp.Mail = "ok"
		}
	}

	_ = json.NewEncoder(w).Encode(resp)
}
