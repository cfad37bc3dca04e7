package tracking

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carencia/internal/pkg/response"
	"carencia/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// TrackEvent handles POST /api/v1/track (public)
// @Summary Record a tracking event
// @Description Public beacon endpoint used by the site to record page views, vehicle views and CTA clicks
// @Tags Tracking
// @Accept json
// @Produce json
// @Param request body TrackEventRequest true "Event data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /track [post]
func (h *Handler) TrackEvent(c *gin.Context) {
	var req TrackEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	event, err := h.service.Track(c.Request.Context(), &req)
	if err != nil {
		if err == ErrUnknownEventType {
			response.Error(c, http.StatusBadRequest, "UNKNOWN_EVENT_TYPE", "Unknown event type")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to record event")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"id": event.ID})
}
