package middleware

import (
	"digiroots/internal/logger"
	"digiroots/internal/reqctx"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Logging writes one line per request. The account id is only known after JWTAuth
// has run, so it is read back through the shared holder.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(lrw, r)

		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", lrw.statusCode),
			zap.Duration("duration", time.Since(start)),
		}

		if rid, ok := reqctx.GetRequestID(r.Context()); ok {
			fields = append(fields, zap.String("request_id", rid))
		}
		if lrw.accountID != "" {
			fields = append(fields, zap.String("account_id", lrw.accountID))
		}

		logger.Log.Info("HTTP request", fields...)
	})
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
	accountID  string
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

// noteAccount lets JWTAuth report the authenticated account to the access log.
func noteAccount(w http.ResponseWriter, id string) {
	if lrw, ok := w.(*loggingResponseWriter); ok {
		lrw.accountID = id
	}
}
