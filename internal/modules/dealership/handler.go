package dealership

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"carencia/internal/pkg/response"
	"carencia/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreateDealership handles POST /api/v1/admin/dealerships
// @Summary Register a dealership
// @Tags Admin Dealerships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateDealershipRequest true "Dealership data"
// @Success 201 {object} response.Response{data=domain.Dealership}
// @Failure 409 {object} response.Response
// @Router /admin/dealerships [post]
func (h *Handler) CreateDealership(c *gin.Context) {
	var req CreateDealershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	d, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		if err == ErrSlugTaken {
			response.Error(c, http.StatusConflict, "SLUG_TAKEN", "Slug already in use")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create dealership")
		return
	}

	response.Success(c, http.StatusCreated, d)
}

// ListDealerships handles GET /api/v1/admin/dealerships
// @Summary List dealerships
// @Tags Admin Dealerships
// @Produce json
// @Security BearerAuth
// @Param active query bool false "Only active"
// @Success 200 {object} response.Response
// @Router /admin/dealerships [get]
func (h *Handler) ListDealerships(c *gin.Context) {
	onlyActive := c.Query("active") == "true"

	list, err := h.service.List(c.Request.Context(), onlyActive)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list dealerships")
		return
	}

	response.Success(c, http.StatusOK, list)
}

// GetDealership handles GET /api/v1/admin/dealerships/:id
// @Summary Get dealership by ID
// @Tags Admin Dealerships
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dealership ID"
// @Success 200 {object} response.Response{data=domain.Dealership}
// @Failure 404 {object} response.Response
// @Router /admin/dealerships/{id} [get]
func (h *Handler) GetDealership(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid dealership ID")
		return
	}

	d, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == ErrDealershipNotFound {
			response.Error(c, http.StatusNotFound, "DEALERSHIP_NOT_FOUND", "Dealership not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load dealership")
		return
	}

	response.Success(c, http.StatusOK, d)
}

// UpdateDealership handles PATCH /api/v1/admin/dealerships/:id
// @Summary Update dealership contact channels and routing flags
// @Tags Admin Dealerships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dealership ID"
// @Param request body UpdateDealershipRequest true "Fields to update"
// @Success 200 {object} response.Response{data=domain.Dealership}
// @Failure 404 {object} response.Response
// @Router /admin/dealerships/{id} [patch]
func (h *Handler) UpdateDealership(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid dealership ID")
		return
	}

	var req UpdateDealershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	d, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		if err == ErrDealershipNotFound {
			response.Error(c, http.StatusNotFound, "DEALERSHIP_NOT_FOUND", "Dealership not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update dealership")
		return
	}

	response.Success(c, http.StatusOK, d)
}
