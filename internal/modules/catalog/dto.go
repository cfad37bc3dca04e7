package catalog

import "carencia/internal/domain"

// VehicleListResponse is the paginated public catalog page.
type VehicleListResponse struct {
	Vehicles []domain.Vehicle `json:"vehicles"`
	Total    int64            `json:"total"`
}
