// internal/app/features/users/handler.go
package users

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	userstore "github.com/talentgate/hirehub/internal/app/store/users"
	"github.com/talentgate/hirehub/internal/app/system/apierr"
	"github.com/talentgate/hirehub/internal/app/system/auth"
	"github.com/talentgate/hirehub/internal/app/system/httpjson"
	"github.com/talentgate/hirehub/internal/app/system/timeouts"
	"github.com/talentgate/hirehub/internal/domain/models"
)

// Handler is the feature-level entry point for staff Users.
type Handler struct {
	Store    *userstore.Store
	Sessions *auth.SessionManager
	Log      *zap.Logger
}

// NewHandler constructs a Users handler bound to its store and the
// session manager.
func NewHandler(store *userstore.Store, sessions *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Store:    store,
		Sessions: sessions,
		Log:      logger,
	}
}

// loginRequest is the JSON body for POST /login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin handles POST /login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, err)
		return
	}
	var m []string
	if req.Email == "" {
		m = append(m, "email")
	}
	if req.Password == "" {
		m = append(m, "password")
	}
	if len(m) > 0 {
		httpjson.Error(w, apierr.MissingFields(m))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Store.GetByEmail(ctx, req.Email)
	if err != nil {
		// Same answer whether the account or the password is wrong.
		httpjson.Error(w, apierr.Forbidden("invalid email or password"))
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		httpjson.Error(w, apierr.Forbidden("invalid email or password"))
		return
	}

	if err := h.Sessions.SignIn(w, r, auth.SessionUser{
		ID:    u.ID.Hex(),
		Name:  u.DisplayName(),
		Email: u.Email,
		Role:  u.Role,
	}); err != nil {
		httpjson.Error(w, apierr.Internal("starting session", err))
		return
	}
	httpjson.OK(w, u)
}

// HandleLogout handles POST /logout.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.SignOut(w, r); err != nil {
		httpjson.Error(w, apierr.Internal("ending session", err))
		return
	}
	httpjson.Msg(w, http.StatusOK, "signed out")
}

// ServeMe handles GET /me.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, apierr.Forbidden("sign in required"))
		return
	}
	httpjson.OK(w, su)
}

// ServeList handles GET /: the staff roster, filterable by role. The
// default lists HR users, which feeds the assignment pickers.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	role := r.URL.Query().Get("role")
	if role == "" {
		role = models.RoleHR
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Store.FindByRole(ctx, role)
	if err != nil {
		httpjson.Error(w, apierr.Internal("listing users", err))
		return
	}
	httpjson.OK(w, list)
}

// createRequest is the JSON body for POST /.
type createRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	Department  string `json:"department"`
	Designation string `json:"designation"`
	WorkPhone   string `json:"workPhone"`
}

// HandleCreate handles POST /: admin-only staff onboarding.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, err)
		return
	}
	var m []string
	if req.FirstName == "" {
		m = append(m, "firstName")
	}
	if req.Email == "" {
		m = append(m, "email")
	}
	if req.Password == "" {
		m = append(m, "password")
	}
	if req.Role == "" {
		m = append(m, "role")
	}
	if len(m) > 0 {
		httpjson.Error(w, apierr.MissingFields(m))
		return
	}
	switch req.Role {
	case models.RoleAdmin, models.RoleHR, models.RoleInterviewer, models.RoleAccounts:
	default:
		httpjson.Error(w, apierr.Validation("unknown role %q", req.Role))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httpjson.Error(w, apierr.Internal("hashing password", err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Store.Create(ctx, models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Department:   req.Department,
		Designation:  req.Designation,
		WorkPhone:    req.WorkPhone,
	})
	if err != nil {
		if err == userstore.ErrDuplicate {
			httpjson.Error(w, apierr.Conflict("a user with this email already exists"))
			return
		}
		httpjson.Error(w, apierr.Internal("creating user", err))
		return
	}
	httpjson.Created(w, u)
}

// ServeInterviewers handles GET /interviewers: the picker feed for
// event scheduling.
func (h *Handler) ServeInterviewers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Store.Find(ctx, bson.M{"role": models.RoleInterviewer})
	if err != nil {
		httpjson.Error(w, apierr.Internal("listing interviewers", err))
		return
	}
	httpjson.OK(w, list)
}
