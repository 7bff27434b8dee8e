package middleware

import (
	"digiroots/internal/logger"
	"digiroots/internal/reqctx"
	"digiroots/internal/utils/helpers"
	"net/http"

	"go.uber.org/zap"
)

const msgForbidden = "Access denied. Admin privileges required."

// OnlyRole must run after JWTAuth.
func OnlyRole(role string) func(http.Handler) http.Handler {
	return AnyRole(role)
}

func AnyRole(allowedRoles ...string) func(http.Handler) http.Handler {
	roleSet := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		roleSet[r] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userRole, _ := reqctx.GetRole(r.Context())
			if _, found := roleSet[userRole]; !found {
				logger.WithCtx(r.Context()).Warn("Role check failed",
					zap.String("role", userRole), zap.String("path", r.URL.Path))
				helpers.Error(w, http.StatusForbidden, msgForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
