package app

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"go-complaintdesk/internal/auth"
	"go-complaintdesk/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type appConfig struct {
	auth   auth.Config
	isProd bool
}

// loadConfig reads process configuration once at startup. Services receive
// values by injection and never touch the environment afterwards.
func loadConfig() (appConfig, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return appConfig{}, fmt.Errorf("JWT_SECRET is required")
	}

	adminCode := os.Getenv("ADMIN_REGISTRATION_CODE")
	if adminCode == "" {
		return appConfig{}, fmt.Errorf("ADMIN_REGISTRATION_CODE is required")
	}

	tokenTTL := 72 * time.Hour
	if v := os.Getenv("TOKEN_TTL_HOURS"); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil || hours <= 0 {
			return appConfig{}, fmt.Errorf("invalid TOKEN_TTL_HOURS: %q", v)
		}
		tokenTTL = time.Duration(hours) * time.Hour
	}

	allowLegacy, _ := strconv.ParseBool(os.Getenv("ALLOW_LEGACY_PASSWORDS"))

	return appConfig{
		auth: auth.Config{
			JWTSecret:             []byte(secret),
			AdminRegistrationCode: adminCode,
			TokenTTL:              tokenTTL,
			AllowLegacyPasswords:  allowLegacy,
		},
		isProd: os.Getenv("APP_ENV") == "production",
	}, nil
}

func BuildApp(router *gin.Engine) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	zap.L().Info("database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	zap.L().Info("redis connection established")

	return registerModules(router, sqlDB, gormDB, redisClient, cfg)
}
