package middleware

import (
	"digiroots/internal/logger"
	"digiroots/internal/reqctx"
	"digiroots/internal/utils"
	"digiroots/internal/utils/helpers"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const (
	msgNoToken     = "Not authorized, no token provided"
	msgTokenFailed = "Not authorized, token failed"
)

type TokenVerifier interface {
	Verify(token string) (*utils.Claims, error)
}

// JWTAuth requires a valid "Bearer <token>" header and stores the account id and
// role from its claims in the request context.
func JWTAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			log := logger.WithCtx(r.Context())

			authHeader := r.Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			tokenString = strings.TrimSpace(tokenString)
			if !ok || tokenString == "" {
				log.Warn("JWTAuth: no bearer token", zap.String("path", r.URL.Path))
				helpers.Error(w, http.StatusUnauthorized, msgNoToken)
				return
			}

			claims, err := verifier.Verify(tokenString)
			if err != nil {
				if errors.Is(err, utils.ErrTokenExpired) {
					log.Info("JWTAuth: token expired")
				} else {
					log.Warn("JWTAuth: token rejected", zap.Error(err))
				}
				helpers.Error(w, http.StatusUnauthorized, msgTokenFailed)
				return
			}

			ctx := reqctx.WithAccountID(r.Context(), claims.AccountID)
			ctx = reqctx.WithRole(ctx, claims.Role)
			noteAccount(w, claims.AccountID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
