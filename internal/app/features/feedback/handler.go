// internal/app/features/feedback/handler.go
package feedback

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/talentgate/hirehub/internal/app/interview"
	"github.com/talentgate/hirehub/internal/app/system/apierr"
	"github.com/talentgate/hirehub/internal/app/system/httpjson"
	"github.com/talentgate/hirehub/internal/app/system/timeouts"
)

// Handler is the feature-level entry point for interview Feedback.
type Handler struct {
	Engine *interview.Engine
	Log    *zap.Logger
}

// NewHandler constructs a Feedback handler bound to the interview
// engine.
func NewHandler(engine *interview.Engine, logger *zap.Logger) *Handler {
	return &Handler{Engine: engine, Log: logger}
}

// submitRequest is the JSON body for POST /. The event's category
// decides which fields are required.
type submitRequest struct {
	EventID string `json:"eventId"`

	Rating        int    `json:"rating"`
	Communication int    `json:"communication"`
	Confidence    int    `json:"confidence"`
	Remark        string `json:"remark"`
	Decision      string `json:"decision"`

	Constraints     int    `json:"constraints"`
	Assertion       int    `json:"assertion"`
	Coverage        int    `json:"coverage"`
	ProblemSolving  int    `json:"problemSolving"`
	Protocols       string `json:"protocols"`
	Scripting       string `json:"scripting"`
	SystemVerilog   string `json:"systemVerilog"`
	TechnicalSkills string `json:"technicalSkills"`
	UVM             string `json:"uvm"`
	Verilog         string `json:"verilog"`
}

// HandleSubmit handles POST /.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, err)
		return
	}
	eventID, err := primitive.ObjectIDFromHex(req.EventID)
	if err != nil {
		httpjson.Error(w, apierr.Validation("invalid event id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	fb, err := h.Engine.SubmitFeedback(ctx, interview.FeedbackInput{
		EventID:         eventID,
		Rating:          req.Rating,
		Communication:   req.Communication,
		Confidence:      req.Confidence,
		Remark:          req.Remark,
		Decision:        req.Decision,
		Constraints:     req.Constraints,
		Assertion:       req.Assertion,
		Coverage:        req.Coverage,
		ProblemSolving:  req.ProblemSolving,
		Protocols:       req.Protocols,
		Scripting:       req.Scripting,
		SystemVerilog:   req.SystemVerilog,
		TechnicalSkills: req.TechnicalSkills,
		UVM:             req.UVM,
		Verilog:         req.Verilog,
	})
	if err != nil {
		httpjson.Error(w, err)
		return
	}
	httpjson.Created(w, fb)
}

// ServeByEvent handles GET /event/{eventID}.
func (h *Handler) ServeByEvent(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "eventID"))
	if err != nil {
		httpjson.Error(w, apierr.Validation("invalid event id"))
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	fbs, err := h.Engine.LatestFeedback(ctx, id)
	if err != nil {
		httpjson.Error(w, err)
		return
	}
	httpjson.OK(w, fbs)
}

// ServeExists handles GET /event/{eventID}/exists: a cheap probe the
// feedback forms use to avoid double submission.
func (h *Handler) ServeExists(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "eventID"))
	if err != nil {
		httpjson.Error(w, apierr.Validation("invalid event id"))
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	fbs, err := h.Engine.LatestFeedback(ctx, id)
	if err != nil {
		httpjson.Error(w, err)
		return
	}
	httpjson.OK(w, map[string]bool{"exists": len(fbs) > 0})
}
