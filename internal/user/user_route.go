package user

import (
	"go-complaintdesk/internal/domain"
	"go-complaintdesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authn gin.HandlerFunc) {
	admin := r.Group("/admin")
	admin.Use(authn, middleware.RoleMiddleware(domain.RoleAdmin))
	{
		admin.GET("/getWorkerList", handler.GetWorkers)
		admin.GET("/getAllUsers", handler.GetAll)
		admin.PUT("/updateUser", handler.Update)
		admin.DELETE("/deleteUser/:id", handler.Delete)
	}
}
