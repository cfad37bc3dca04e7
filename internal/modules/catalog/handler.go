package catalog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"carencia/internal/pkg/response"
	"carencia/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListVehicles handles GET /api/v1/vehicles (public)
// @Summary List vehicles
// @Description Public catalog with filters
// @Tags Catalog
// @Produce json
// @Param make query string false "Make"
// @Param model query string false "Model"
// @Param year_min query int false "Minimum year"
// @Param year_max query int false "Maximum year"
// @Param price_min query number false "Minimum price"
// @Param price_max query number false "Maximum price"
// @Param fuel_type query string false "Fuel type"
// @Param transmission query string false "Transmission"
// @Success 200 {object} response.Response{data=VehicleListResponse}
// @Router /vehicles [get]
func (h *Handler) ListVehicles(c *gin.Context) {
	f := repository.VehicleFilter{
		Make:         c.Query("make"),
		Model:        c.Query("model"),
		FuelType:     c.Query("fuel_type"),
		Transmission: c.Query("transmission"),
	}
	f.YearMin, _ = strconv.Atoi(c.Query("year_min"))
	f.YearMax, _ = strconv.Atoi(c.Query("year_max"))
	f.PriceMin, _ = strconv.ParseFloat(c.Query("price_min"), 64)
	f.PriceMax, _ = strconv.ParseFloat(c.Query("price_max"), 64)
	f.Limit, _ = strconv.Atoi(c.Query("limit"))
	f.Offset, _ = strconv.Atoi(c.Query("offset"))

	vehicles, total, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list vehicles")
		return
	}

	response.Success(c, http.StatusOK, VehicleListResponse{Vehicles: vehicles, Total: total})
}

// GetVehicle handles GET /api/v1/vehicles/:id (public)
// @Summary Vehicle detail
// @Tags Catalog
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {object} response.Response{data=domain.Vehicle}
// @Failure 404 {object} response.Response
// @Router /vehicles/{id} [get]
func (h *Handler) GetVehicle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid vehicle ID")
		return
	}

	v, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == ErrVehicleNotFound {
			response.Error(c, http.StatusNotFound, "VEHICLE_NOT_FOUND", "Vehicle not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load vehicle")
		return
	}

	response.Success(c, http.StatusOK, v)
}

// FeaturedVehicles handles GET /api/v1/vehicles/featured (public)
// @Summary Featured vehicles for the home page
// @Tags Catalog
// @Produce json
// @Param limit query int false "Limit" default(8)
// @Success 200 {object} response.Response
// @Router /vehicles/featured [get]
func (h *Handler) FeaturedVehicles(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	vehicles, err := h.service.Featured(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load featured vehicles")
		return
	}

	response.Success(c, http.StatusOK, vehicles)
}
