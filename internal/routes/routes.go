package routes

import (
	"digiroots/internal/handlers"
	"digiroots/internal/middleware"
	"net/http"

	"github.com/gorilla/mux"
)

func InitRoutes(
	router *mux.Router,
	verifier middleware.TokenVerifier,
	authHandler *handlers.AuthHandler,
	passwordHandler *handlers.PasswordHandler,
	leadHandler *handlers.LeadHandler,
	logsHandler *handlers.AdminLogsHandler,
) {
	router.Use(middleware.RequestID, middleware.Logging, middleware.Recoverer)
	router.NotFoundHandler = middleware.RequestID(http.HandlerFunc(handlers.NotFound))
	router.MethodNotAllowedHandler = http.HandlerFunc(handlers.NotFound)

	api := router.PathPrefix("/api").Subrouter()

	// public
	api.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)
	api.HandleFunc("/auth/signup", authHandler.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/forgot-password", passwordHandler.ForgotPassword).Methods(http.MethodPost)
	api.HandleFunc("/auth/reset-password/{token}", passwordHandler.ResetPassword).Methods(http.MethodPost)
	api.HandleFunc("/leads", leadHandler.Submit).Methods(http.MethodPost)

	// JWT
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.JWTAuth(verifier))
	protected.HandleFunc("/auth/me", authHandler.Me).Methods(http.MethodGet)

	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.OnlyRole("admin"))
	admin.HandleFunc("/leads", leadHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/logs/days", logsHandler.ListDays).Methods(http.MethodGet)
	admin.HandleFunc("/logs", logsHandler.GetLogs).Methods(http.MethodGet)
}
