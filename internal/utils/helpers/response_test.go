package helpers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"digiroots/internal/apperr"
	"digiroots/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestJSON_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, "Account created successfully", map[string]any{"user": map[string]string{"email": "a@b.com"}})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Account created successfully", body["message"])
	assert.NotNil(t, body["user"])
}

func TestError_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusBadRequest, "Name and email are required")

	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Name and email are required", body["message"])
}

func TestAppError_MapsKinds(t *testing.T) {
	tests := []struct {
		err    error
		status int
		msg    string
	}{
		{apperr.Validation("Please provide email and password"), http.StatusBadRequest, "Please provide email and password"},
		{apperr.Auth("Invalid email or password"), http.StatusUnauthorized, "Invalid email or password"},
		{apperr.NotFound("User not found"), http.StatusNotFound, "User not found"},
		{apperr.Conflict("An account with this email already exists"), http.StatusBadRequest, "An account with this email already exists"},
		{errors.New("pq: relation accounts does not exist"), http.StatusInternalServerError, apperr.ServerErrorMessage},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		AppError(rec, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil), tt.err)

		assert.Equal(t, tt.status, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, tt.msg, body["message"])
		assert.Equal(t, false, body["success"])
	}
}

func TestLeadTemplates_EscapeInput(t *testing.T) {
	l := &models.Lead{
		Name:      `<script>alert(1)</script>`,
		Email:     "x@y.com",
		CreatedAt: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	}

	for _, out := range []string{BuildLeadAdminHTML(l), BuildLeadAckHTML(l)} {
		assert.NotContains(t, out, "<script>")
		assert.Contains(t, out, "&lt;script&gt;")
	}

	text := BuildLeadAdminText(l)
	assert.True(t, strings.Contains(text, "Company: Not provided"))
	assert.Contains(t, text, "Service Interested: Not specified")
	assert.Contains(t, BuildLeadAckText(l), "Message: No message provided")
}

func TestPasswordResetTemplates(t *testing.T) {
	link := "http://localhost:5173/reset-password/abc123"

	assert.Contains(t, BuildPasswordResetText(link, 15*time.Minute), "expire in 15 minutes")
	h := BuildPasswordResetHTML(link, 15*time.Minute)
	assert.Contains(t, h, link)
	assert.Contains(t, h, "15 minutes")
}
