package report

import (
	"leavedesk/internal/middleware"
	"leavedesk/internal/user"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	directorOnly := middleware.RoleMiddleware(user.RoleDirector)

	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware())
	{
		reports.GET("/leaves", directorOnly, handler.Leaves)
		reports.GET("/employee/:employeeId", directorOnly, handler.EmployeeSummary)
		// type authorization (overall vs own) is enforced by the service.
		reports.GET("/download/:type", handler.Download)
	}
}
