package handlers

import (
	"digiroots/internal/services"
	"digiroots/internal/utils/helpers"
	"net/http"
	"strconv"
)

const msgLeadReceived = "Thank you! We've received your inquiry and will get back to you soon."

type LeadHandler struct {
	svc *services.LeadService
}

func NewLeadHandler(svc *services.LeadService) *LeadHandler {
	return &LeadHandler{svc: svc}
}

// Submit godoc
// @Summary Submit a contact form lead
// @Description Stores the lead, emails the site admin and sends an acknowledgment to the submitter.
// @Tags leads
// @Accept json
// @Produce json
// @Param input body services.LeadInput true "Lead"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{} "Name and email are required"
// @Failure 500 {object} map[string]interface{}
// @Router /api/leads [post]
func (h *LeadHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var in services.LeadInput
	if !decodeJSON(w, r, &in) {
		return
	}

	if _, err := h.svc.Submit(r.Context(), in); err != nil {
		helpers.AppError(w, r, err)
		return
	}

	helpers.JSON(w, http.StatusOK, msgLeadReceived, nil)
}

// List godoc
// @Summary List submitted leads, newest first
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} map[string]interface{} "success, leads, total"
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /api/admin/leads [get]
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	leads, total, err := h.svc.List(r.Context(), limit, offset)
	if err != nil {
		helpers.AppError(w, r, err)
		return
	}

	helpers.JSON(w, http.StatusOK, "", map[string]any{
		"leads": leads,
		"total": total,
	})
}
