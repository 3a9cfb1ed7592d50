package user

import (
	"leavedesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("/profile", handler.Profile)
		users.PUT("/profile", handler.UpdateProfile)
		users.GET("/team", handler.Team)
		users.GET("/managers", handler.Managers)
		users.GET("", middleware.RoleMiddleware(RoleDirector), handler.GetAll)
		users.POST("", middleware.RoleMiddleware(RoleDirector), handler.Create)
		users.DELETE("/:id", middleware.RoleMiddleware(RoleDirector), handler.Remove)
	}
}
