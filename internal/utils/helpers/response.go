package helpers

import (
	"digiroots/internal/apperr"
	"digiroots/internal/logger"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// JSON writes the {success, message, ...fields} envelope.
func JSON(w http.ResponseWriter, status int, message string, fields map[string]any) {
	body := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		body[k] = v
	}
	body["success"] = status < http.StatusBadRequest
	if message != "" || status >= http.StatusBadRequest {
		body["message"] = message
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		return
	}
}

func Error(w http.ResponseWriter, status int, errMsg string) {
	JSON(w, status, errMsg, nil)
}

// AppError writes err using its kind. Dependency failures are logged in full and
// answered with a generic message.
func AppError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindDependency {
		logger.WithCtx(r.Context()).Error("Request failed on a dependency",
			zap.String("path", r.URL.Path), zap.Error(err))
	}
	Error(w, kind.HTTPStatus(), apperr.PublicMessage(err))
}
