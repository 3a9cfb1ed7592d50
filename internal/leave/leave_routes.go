package leave

import (
	"leavedesk/internal/middleware"
	"leavedesk/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	approvers := middleware.RoleMiddleware(user.RoleManager, user.RoleHR, user.RoleDirector)
	decisionLimit := middleware.RateLimitByUser(rate.Limit(2), 5)

	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.POST("/apply", middleware.Idempotency(rdb), handler.Apply)
		leaves.GET("/my-leaves", handler.MyLeaves)
		leaves.GET("/team-leaves", approvers, handler.TeamLeaves)
		leaves.GET("/requests", approvers, handler.Requests)
		leaves.GET("/history/:userId", handler.History)
		leaves.GET("", middleware.RoleMiddleware(user.RoleDirector), handler.GetAll)
		leaves.PUT("/:id/approve", approvers, decisionLimit, handler.Approve)
		leaves.PUT("/:id/reject", approvers, decisionLimit, handler.Reject)
	}
}
