package complaint

import (
	"go-complaintdesk/internal/domain"
	"go-complaintdesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authn gin.HandlerFunc, idempotency gin.HandlerFunc) {
	authed := r.Group("")
	authed.Use(authn)
	{
		authed.POST("/registerComplaint",
			middleware.RoleMiddleware(domain.RoleEmployee),
			middleware.RateLimitByUser(1, 5),
			idempotency,
			handler.Register,
		)
		authed.GET("/complaints", handler.List)
		authed.GET("/getComplaintDetails/:id", handler.GetByID)
		authed.PUT("/changeStatusOfComplaint", handler.ChangeStatus)
	}

	admin := r.Group("/admin")
	admin.Use(authn, middleware.RoleMiddleware(domain.RoleAdmin))
	{
		admin.PUT("/assignComplaintToWorkers", handler.Assign)
		admin.POST("/filterComplaints", handler.FilterByDate)
	}
}
