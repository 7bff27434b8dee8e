package handlers

import (
	"digiroots/internal/logger"
	"digiroots/internal/services"
	"digiroots/internal/utils/helpers"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const (
	msgResetRequested = "If an account with that email exists, a password reset link has been sent."
	msgResetDone      = "Password has been reset successfully. You can now log in with your new password."
)

type PasswordHandler struct {
	svc *services.PasswordService
}

func NewPasswordHandler(svc *services.PasswordService) *PasswordHandler {
	return &PasswordHandler{svc: svc}
}

type forgotRequest struct {
	Email string `json:"email"`
}

type resetRequest struct {
	Password string `json:"password"`
}

// ForgotPassword godoc
// @Summary Request a password reset link
// @Description The response is the same whether or not the email belongs to an account.
// @Tags password
// @Accept json
// @Produce json
// @Param input body forgotRequest true "Account email"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{} "Email could not be sent"
// @Router /api/auth/forgot-password [post]
func (h *PasswordHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.svc.RequestReset(r.Context(), req.Email); err != nil {
		helpers.AppError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info("Password reset requested", zap.String("email_masked", maskEmail(req.Email)))
	helpers.JSON(w, http.StatusOK, msgResetRequested, nil)
}

// ResetPassword godoc
// @Summary Set a new password with a reset token
// @Tags password
// @Accept json
// @Produce json
// @Param token path string true "Token from the reset link"
// @Param input body resetRequest true "New password"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{} "Invalid or expired reset token"
// @Router /api/auth/reset-password/{token} [post]
func (h *PasswordHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	var req resetRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.svc.ResetPassword(r.Context(), token, req.Password); err != nil {
		helpers.AppError(w, r, err)
		return
	}

	helpers.JSON(w, http.StatusOK, msgResetDone, nil)
}

func maskEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.IndexByte(email, '@')
	if at <= 1 {
		return "***" + email[max(at, 0):]
	}
	return email[:1] + "***" + email[at:]
}
