package handlers

import (
	"digiroots/internal/logger"
	"digiroots/internal/reqctx"
	"digiroots/internal/services"
	"digiroots/internal/utils/helpers"
	"net/http"

	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup godoc
// @Summary Create an account
// @Tags auth
// @Accept json
// @Produce json
// @Param input body signupRequest true "Name, email and password"
// @Success 201 {object} map[string]interface{} "success, message, user"
// @Failure 400 {object} map[string]interface{} "validation error or duplicate email"
// @Failure 500 {object} map[string]interface{}
// @Router /api/auth/signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	account, err := h.authService.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		helpers.AppError(w, r, err)
		return
	}

	helpers.JSON(w, http.StatusCreated, "Account created successfully", map[string]any{
		"user": account.Profile(),
	})
}

// Login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param input body loginRequest true "Email and password"
// @Success 200 {object} map[string]interface{} "success, message, token, user"
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{} "Invalid email or password"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	token, account, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		helpers.AppError(w, r, err)
		return
	}

	helpers.JSON(w, http.StatusOK, "Login successful", map[string]any{
		"token": token,
		"user":  account.Profile(),
	})
}

// Me godoc
// @Summary Current account
// @Tags auth
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} map[string]interface{} "success, user"
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{} "User not found"
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := reqctx.GetAccountID(r.Context())
	if !ok {
		logger.WithCtx(r.Context()).Warn("Me called without account in context")
		helpers.Error(w, http.StatusUnauthorized, "Not authorized, token failed")
		return
	}

	account, err := h.authService.GetAccount(r.Context(), id)
	if err != nil {
		helpers.AppError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Debug("Profile served", zap.String("email", account.Email))
	helpers.JSON(w, http.StatusOK, "", map[string]any{"user": account.Profile()})
}
