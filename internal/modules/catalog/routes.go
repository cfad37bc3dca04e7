package catalog

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the public catalog endpoints.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	vehicles := r.Group("/vehicles")
	{
		vehicles.GET("", handler.ListVehicles)
		vehicles.GET("/featured", handler.FeaturedVehicles)
		vehicles.GET("/:id", handler.GetVehicle)
	}
}
