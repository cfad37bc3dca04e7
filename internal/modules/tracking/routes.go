package tracking

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the public tracking beacon.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	r.POST("/track", handler.TrackEvent)
}
