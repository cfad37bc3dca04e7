package dealership

import "github.com/gin-gonic/gin"

// RegisterAdminRoutes registers the dealership management endpoints.
func RegisterAdminRoutes(r *gin.RouterGroup, handler *Handler) {
	dealerships := r.Group("/dealerships")
	{
		dealerships.GET("", handler.ListDealerships)
		dealerships.POST("", handler.CreateDealership)
		dealerships.GET("/:id", handler.GetDealership)
		dealerships.PATCH("/:id", handler.UpdateDealership)
	}
}
