package app

import (
	"database/sql"
	"time"

	"go-complaintdesk/internal/auth"
	"go-complaintdesk/internal/complaint"
	"go-complaintdesk/internal/messaging/kafka"
	"go-complaintdesk/internal/middleware"
	"go-complaintdesk/internal/shared/cache"
	"go-complaintdesk/internal/shared/counter"
	"go-complaintdesk/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	cfg appConfig,
) error {
	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	complaintRepo := complaint.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Caches ---
	complaintListCache := cache.NewListCache(rdb, "complaints", 2*time.Minute)

	// --- Services ---
	authService := auth.NewService(userRepo, cfg.auth)
	userService := user.NewService(userRepo)
	complaintService := complaint.NewServiceWithOutbox(
		db, complaintRepo, userRepo, counterRepo, outboxRepo, complaintListCache,
	)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, cfg.auth.TokenTTL, cfg.isProd)
	userHandler := user.NewHandler(userService)
	complaintHandler := complaint.NewHandlerWithRedis(complaintService, rdb)

	// --- Middleware ---
	router.Use(middleware.RequestID(), middleware.ContextLogger(zap.L()))
	authn := middleware.AuthMiddleware(cfg.auth.JWTSecret, authService)
	idempotency := middleware.Idempotency(rdb)

	// --- Routes Registration ---
	root := router.Group("")
	{
		auth.RegisterRoutes(root, authHandler, authn)
		user.RegisterRoutes(root, userHandler, authn)
		complaint.RegisterRoutes(root, complaintHandler, authn, idempotency)
	}

	return nil
}
