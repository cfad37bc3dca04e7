package lead

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"carencia/internal/domain"
	"carencia/internal/pkg/response"
	"carencia/internal/pkg/validator"
	"carencia/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// SubmitLead handles POST /api/v1/leads (public)
// @Summary Submit a lead
// @Description Public intake endpoint: captures contact data plus UTM attribution and triggers distribution
// @Tags Leads
// @Accept json
// @Produce json
// @Param request body SubmitLeadRequest true "Lead data"
// @Success 201 {object} response.Response{data=domain.Lead}
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /leads [post]
func (h *Handler) SubmitLead(c *gin.Context) {
	var req SubmitLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	l, err := h.service.Submit(c.Request.Context(), &req)
	if err != nil {
		if err == ErrVehicleNotFound {
			response.Error(c, http.StatusBadRequest, "VEHICLE_NOT_FOUND", "Vehicle not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to submit lead")
		return
	}

	response.Success(c, http.StatusCreated, l)
}

// GetLead handles GET /api/v1/admin/leads/:id
// @Summary Get lead by ID
// @Tags Admin Leads
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lead ID"
// @Success 200 {object} response.Response{data=domain.Lead}
// @Failure 404 {object} response.Response
// @Router /admin/leads/{id} [get]
func (h *Handler) GetLead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid lead ID")
		return
	}

	l, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == ErrLeadNotFound {
			response.Error(c, http.StatusNotFound, "LEAD_NOT_FOUND", "Lead not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load lead")
		return
	}

	response.Success(c, http.StatusOK, l)
}

// ListLeads handles GET /api/v1/admin/leads
// @Summary List leads
// @Tags Admin Leads
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(new, contacted, qualified, negotiating, won, lost)
// @Param limit query int false "Limit" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} response.Response{data=LeadListResponse}
// @Router /admin/leads [get]
func (h *Handler) ListLeads(c *gin.Context) {
	var f repository.LeadFilter

	if s := c.Query("status"); s != "" {
		status := domain.LeadStatus(s)
		f.Status = &status
	}
	if d := c.Query("dealership_id"); d != "" {
		if id, err := uuid.Parse(d); err == nil {
			f.DealershipID = &id
		}
	}
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			f.Limit = v
		}
	}
	if o := c.Query("offset"); o != "" {
		if v, err := strconv.Atoi(o); err == nil && v >= 0 {
			f.Offset = v
		}
	}

	leads, total, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list leads")
		return
	}

	response.Success(c, http.StatusOK, LeadListResponse{Leads: leads, Total: total})
}

// UpdateStatus handles PATCH /api/v1/admin/leads/:id/status
// @Summary Update lead status
// @Tags Admin Leads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lead ID"
// @Param request body UpdateLeadStatusRequest true "Status update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/leads/{id}/status [patch]
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid lead ID")
		return
	}

	var req UpdateLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		if err == ErrLeadNotFound {
			response.Error(c, http.StatusNotFound, "LEAD_NOT_FOUND", "Lead not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update status")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Status updated"})
}

// GetTimeline handles GET /api/v1/admin/leads/:id/timeline
// @Summary Lead timeline
// @Description Events and interactions recorded for a lead, oldest first
// @Tags Admin Leads
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lead ID"
// @Success 200 {object} response.Response{data=TimelineResponse}
// @Failure 404 {object} response.Response
// @Router /admin/leads/{id}/timeline [get]
func (h *Handler) GetTimeline(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid lead ID")
		return
	}

	timeline, err := h.service.Timeline(c.Request.Context(), id)
	if err != nil {
		if err == ErrLeadNotFound {
			response.Error(c, http.StatusNotFound, "LEAD_NOT_FOUND", "Lead not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load timeline")
		return
	}

	response.Success(c, http.StatusOK, timeline)
}

// GetStats handles GET /api/v1/admin/leads/stats
// @Summary Lead counts by status
// @Tags Admin Leads
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/leads/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load stats")
		return
	}

	response.Success(c, http.StatusOK, stats)
}
