package auth

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the public auth endpoints.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	r.POST("/auth/login", handler.Login)
}
