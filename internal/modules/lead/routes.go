package lead

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes registers the public intake endpoint.
func RegisterPublicRoutes(r *gin.RouterGroup, handler *Handler) {
	r.POST("/leads", handler.SubmitLead)
}

// RegisterAdminRoutes registers the admin lead-management endpoints.
func RegisterAdminRoutes(r *gin.RouterGroup, handler *Handler) {
	leads := r.Group("/leads")
	{
		leads.GET("", handler.ListLeads)
		leads.GET("/stats", handler.GetStats)
		leads.GET("/:id", handler.GetLead)
		leads.GET("/:id/timeline", handler.GetTimeline)
		leads.PATCH("/:id/status", handler.UpdateStatus)
	}
}
