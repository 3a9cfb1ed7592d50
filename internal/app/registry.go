package app

import (
	"database/sql"

	"leavedesk/internal/auth"
	"leavedesk/internal/holiday"
	"leavedesk/internal/leave"
	"leavedesk/internal/messaging/kafka"
	"leavedesk/internal/middleware"
	"leavedesk/internal/report"
	"leavedesk/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	holidayRepo := holiday.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	authService := auth.NewService(userRepo)
	userService := user.NewService(db, userRepo)
	leaveService := leave.NewServiceWithOutbox(db, leaveRepo, userRepo, outboxRepo)
	holidayService := holiday.NewService(holidayRepo)
	reportService := report.NewService(leaveRepo, userRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userService)
	leaveHandler := leave.NewHandlerWithRedis(leaveService, rdb)
	holidayHandler := holiday.NewHandlerWithRedis(holidayService, rdb)
	reportHandler := report.NewHandler(reportService)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())

	api := router.Group("/api/v1")
	api.Use(middleware.RateLimitByIP(rate.Limit(20), 40))
	{
		auth.RegisterRoutes(api, authHandler)
		user.RegisterRoutes(api, userHandler)
		leave.RegisterRoutes(api, leaveHandler, rdb)
		holiday.RegisterRoutes(api, holidayHandler)
		report.RegisterRoutes(api, reportHandler)
	}

	return nil
}
