package users_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/talentgate/hirehub/internal/app/features/users"
	userstore "github.com/talentgate/hirehub/internal/app/store/users"
	"github.com/talentgate/hirehub/internal/app/system/auth"
	"github.com/talentgate/hirehub/internal/domain/models"
	"github.com/talentgate/hirehub/internal/testutil"
)

func newTestHandler(t *testing.T) (*users.Handler, *userstore.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)

	sessionMgr, err := auth.NewSessionManager("test-session-key-0123456789ABCDEFGHIJ", "test-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	return users.NewHandler(store, sessionMgr, zap.NewNop()), store
}

func createStaff(t *testing.T, store *userstore.Store, email, password, role string) models.User {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt failed: %v", err)
	}
	u, err := store.Create(ctx, models.User{
		FirstName:    "Priya",
		LastName:     "Nair",
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return u
}

func TestHandleLogin_Success(t *testing.T) {
	handler, store := newTestHandler(t)
	createStaff(t, store, "priya@hirehub.test", "s3cret-pass", models.RoleHR)

	body := `{"email": "priya@hirehub.test", "password": "s3cret-pass"}`
	req := httptest.NewRequest("POST", "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.HandleLogin(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	// A session cookie must be issued.
	found := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "test-session" && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("expected a session cookie to be set")
	}

	var resp struct {
		Status bool `json:"status"`
		Data   struct {
			Email        string `json:"email"`
			Role         string `json:"role"`
			PasswordHash string `json:"passwordHash"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Data.Role != models.RoleHR {
		t.Errorf("role: got %q, want %q", resp.Data.Role, models.RoleHR)
	}
	if resp.Data.PasswordHash != "" {
		t.Error("password hash must never appear in responses")
	}
}

func TestHandleLogin_WrongPassword(t *testing.T) {
	handler, store := newTestHandler(t)
	createStaff(t, store, "priya@hirehub.test", "s3cret-pass", models.RoleHR)

	body := `{"email": "priya@hirehub.test", "password": "wrong"}`
	req := httptest.NewRequest("POST", "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.HandleLogin(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestHandleLogin_UnknownAccountSameAnswer(t *testing.T) {
	handler, store := newTestHandler(t)
	createStaff(t, store, "priya@hirehub.test", "s3cret-pass", models.RoleHR)

	respFor := func(body string) (int, string) {
		req := httptest.NewRequest("POST", "/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		handler.HandleLogin(rec, req)
		var resp struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(rec.Body.Bytes(), &resp)
		return rec.Code, resp.Message
	}

	unknownCode, unknownMsg := respFor(`{"email": "nobody@hirehub.test", "password": "x"}`)
	wrongCode, wrongMsg := respFor(`{"email": "priya@hirehub.test", "password": "x"}`)

	// The two failure modes must be indistinguishable.
	if unknownCode != wrongCode || unknownMsg != wrongMsg {
		t.Errorf("responses differ: (%d %q) vs (%d %q)", unknownCode, unknownMsg, wrongCode, wrongMsg)
	}
}

func TestHandleCreate_UnknownRole(t *testing.T) {
	handler, _ := newTestHandler(t)

	body := `{"firstName": "New", "email": "new@hirehub.test", "password": "pass", "role": "superuser"}`
	req := testutil.WithUser(httptest.NewRequest("POST", "/", strings.NewReader(body)), testutil.AdminUser())
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.HandleCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestServeMe(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := testutil.NewAuthenticatedRequest("GET", "/me", testutil.HRUser())
	rec := httptest.NewRecorder()
	handler.ServeMe(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("signed in: got %d, want %d", rec.Code, http.StatusOK)
	}

	rec = httptest.NewRecorder()
	handler.ServeMe(rec, httptest.NewRequest("GET", "/me", nil))
	if rec.Code != http.StatusForbidden {
		t.Errorf("anonymous: got %d, want %d", rec.Code, http.StatusForbidden)
	}
}
