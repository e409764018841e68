package auth

import (
	"go-complaintdesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authn gin.HandlerFunc) {
	r.POST("/register", handler.Register)
	r.POST("/admin/register", handler.RegisterAdmin)
	r.POST("/login", middleware.RateLimitByIP(0.5, 5), handler.Login)
	r.GET("/logout", handler.Logout)
	r.GET("/me", authn, handler.Me)
}
