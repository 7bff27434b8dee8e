package handlers

import (
	"digiroots/internal/utils/helpers"
	"fmt"
	"net/http"
	"time"
)

// Health godoc
// @Summary Liveness probe
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/health [get]
func Health(w http.ResponseWriter, r *http.Request) {
	helpers.JSON(w, http.StatusOK, "Server is running", map[string]any{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	helpers.Error(w, http.StatusNotFound, fmt.Sprintf("Route %s not found", r.URL.Path))
}
