package holiday

import (
	"leavedesk/internal/middleware"
	"leavedesk/internal/user"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	directorOnly := middleware.RoleMiddleware(user.RoleDirector)

	holidays := r.Group("/holidays")
	holidays.Use(middleware.AuthMiddleware())
	{
		holidays.GET("", handler.GetAll)
		holidays.POST("", directorOnly, handler.Create)
		holidays.PUT("/:id", directorOnly, handler.Update)
		holidays.DELETE("/:id", directorOnly, handler.Delete)
	}
}
