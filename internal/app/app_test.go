package app

import (
	"bytes"
	"context"
	"digiroots/internal/config"
	"digiroots/internal/models"
	"digiroots/internal/notify"
	"digiroots/internal/repository/memstore"
	"digiroots/internal/utils"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router   *mux.Router
	accounts *memstore.AccountStore
	leads    *memstore.LeadStore
	mail     *notify.Recorder
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := &config.Config{
		JWTSecret:           "test-secret",
		TokenTTL:            "1h",
		FrontendURL:         "http://localhost:5173",
		AdminEmail:          "admin@digiroots.in",
		PasswordResetTTLMin: "15",
	}
	ts := &testServer{
		accounts: memstore.NewAccountStore(),
		leads:    memstore.NewLeadStore(),
		mail:     &notify.Recorder{},
	}
	ts.router = NewRouter(cfg, ts.accounts, ts.leads, ts.mail)
	return ts
}

func (ts *testServer) do(t *testing.T, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec.Code, out
}

func (ts *testServer) signupAndLogin(t *testing.T, name, email, password string) string {
	t.Helper()
	code, _ := ts.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"name": name, "email": email, "password": password,
	}, "")
	require.Equal(t, http.StatusCreated, code)

	code, body := ts.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email": email, "password": password,
	}, "")
	require.Equal(t, http.StatusOK, code)
	return body["token"].(string)
}

func TestSignup(t *testing.T) {
	ts := newTestServer(t)

	code, body := ts.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"name": "Jo", "email": "a@b.com", "password": "abcdef",
	}, "")
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Account created successfully", body["message"])

	user := body["user"].(map[string]any)
	assert.Equal(t, "a@b.com", user["email"])
	assert.Equal(t, "user", user["role"])
	for _, secret := range []string{"password", "passwordHash", "resetTokenHash", "resetTokenExpiry"} {
		assert.NotContains(t, user, secret)
	}

	code, body = ts.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"name": "Jo", "email": "a@b.com", "password": "abcdef",
	}, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "already exists")
}

func TestSignup_InvalidJSON(t *testing.T) {
	ts := newTestServer(t)
	code, body := ts.do(t, http.MethodPost, "/api/auth/signup", "{not json", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, false, body["success"])
}

func TestLoginThenMe(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signupAndLogin(t, "Jo", "a@b.com", "abcdef")
	require.NotEmpty(t, token)

	code, body := ts.do(t, http.MethodGet, "/api/auth/me", nil, token)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "a@b.com", body["user"].(map[string]any)["email"])
}

func TestLogin_SameMessageForWrongPasswordAndUnknownEmail(t *testing.T) {
	ts := newTestServer(t)
	ts.signupAndLogin(t, "Jo", "a@b.com", "abcdef")

	code1, wrong := ts.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "a@b.com", "password": "zzzzzz"}, "")
	code2, unknown := ts.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "x@b.com", "password": "abcdef"}, "")

	assert.Equal(t, http.StatusUnauthorized, code1)
	assert.Equal(t, code1, code2)
	assert.Equal(t, wrong, unknown)
}

func TestMe_TokenErrors(t *testing.T) {
	ts := newTestServer(t)

	code, body := ts.do(t, http.MethodGet, "/api/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Not authorized, no token provided", body["message"])

	code, body = ts.do(t, http.MethodGet, "/api/auth/me", nil, "garbage")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Not authorized, token failed", body["message"])

	// signed correctly but the account does not exist
	orphan, err := utils.NewTokenManager("test-secret", time.Hour).Issue("gone", "user")
	require.NoError(t, err)
	code, body = ts.do(t, http.MethodGet, "/api/auth/me", nil, orphan)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "User not found", body["message"])
}

func resetTokenFrom(t *testing.T, mail *notify.Recorder) string {
	t.Helper()
	msg, ok := mail.Last()
	require.True(t, ok)
	const marker = "/reset-password/"
	i := strings.Index(msg.Text, marker)
	require.GreaterOrEqual(t, i, 0)
	return strings.Fields(msg.Text[i+len(marker):])[0]
}

func TestPasswordResetFlow(t *testing.T) {
	ts := newTestServer(t)
	ts.signupAndLogin(t, "Jo", "a@b.com", "abcdef")

	code, known := ts.do(t, http.MethodPost, "/api/auth/forgot-password", map[string]string{"email": "a@b.com"}, "")
	require.Equal(t, http.StatusOK, code)

	writes := ts.accounts.Writes()
	code, unknown := ts.do(t, http.MethodPost, "/api/auth/forgot-password", map[string]string{"email": "nobody@b.com"}, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, known, unknown)
	assert.Equal(t, writes, ts.accounts.Writes())

	token := resetTokenFrom(t, ts.mail)
	code, body := ts.do(t, http.MethodPost, "/api/auth/reset-password/"+token, map[string]string{"password": "newpass"}, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Password has been reset successfully. You can now log in with your new password.", body["message"])

	code, body = ts.do(t, http.MethodPost, "/api/auth/reset-password/"+token, map[string]string{"password": "again1"}, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid or expired reset token. Please request a new password reset.", body["message"])

	code, _ = ts.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "a@b.com", "password": "newpass"}, "")
	assert.Equal(t, http.StatusOK, code)
}

func TestForgotPassword_Errors(t *testing.T) {
	ts := newTestServer(t)
	ts.signupAndLogin(t, "Jo", "a@b.com", "abcdef")

	code, body := ts.do(t, http.MethodPost, "/api/auth/forgot-password", map[string]string{}, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Please provide an email address", body["message"])

	ts.mail.Fail = func(notify.Message) error { return errors.New("provider down") }
	code, body = ts.do(t, http.MethodPost, "/api/auth/forgot-password", map[string]string{"email": "a@b.com"}, "")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Email could not be sent. Please try again later.", body["message"])
	assert.NotContains(t, body["message"], "provider down")

	acc, err := ts.accounts.GetByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.False(t, acc.HasPendingReset())
}

func TestResetPassword_MissingPassword(t *testing.T) {
	ts := newTestServer(t)
	code, body := ts.do(t, http.MethodPost, "/api/auth/reset-password/abc", map[string]string{}, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Please provide a new password", body["message"])
}

func TestLeads(t *testing.T) {
	ts := newTestServer(t)

	code, body := ts.do(t, http.MethodPost, "/api/leads", map[string]string{"name": "X"}, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Name and email are required", body["message"])

	code, body = ts.do(t, http.MethodPost, "/api/leads", map[string]string{
		"name": "X", "email": "x@y.com", "companyName": "Acme", "message": "hello",
	}, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Thank you! We've received your inquiry and will get back to you soon.", body["message"])
	assert.Len(t, ts.mail.Sent(), 2)
}

func TestAdminLeads_RequiresAdmin(t *testing.T) {
	ts := newTestServer(t)
	userToken := ts.signupAndLogin(t, "Jo", "a@b.com", "abcdef")

	hash, err := utils.HashPassword("adminpass")
	require.NoError(t, err)
	require.NoError(t, ts.accounts.Create(context.Background(), &models.Account{
		Name: "Admin", Email: "root@b.com", PasswordHash: hash, Role: models.RoleAdmin,
	}))
	code, body := ts.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "root@b.com", "password": "adminpass"}, "")
	require.Equal(t, http.StatusOK, code)
	adminToken := body["token"].(string)

	require.NoError(t, ts.leads.Create(context.Background(), &models.Lead{Name: "L", Email: "l@y.com"}))

	code, body = ts.do(t, http.MethodGet, "/api/admin/leads", nil, userToken)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Access denied. Admin privileges required.", body["message"])

	code, body = ts.do(t, http.MethodGet, "/api/admin/leads?limit=5", nil, adminToken)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, body["total"])
	assert.Len(t, body["leads"], 1)
}

func TestHealthAndNotFound(t *testing.T) {
	ts := newTestServer(t)

	code, body := ts.do(t, http.MethodGet, "/api/health", nil, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Server is running", body["message"])
	_, err := time.Parse(time.RFC3339, body["timestamp"].(string))
	assert.NoError(t, err)

	code, body = ts.do(t, http.MethodGet, "/api/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Route /api/nope not found", body["message"])
}
