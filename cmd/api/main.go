package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"taskdeck/internal/config"
	"taskdeck/internal/db"
	"taskdeck/internal/email"
	apihttp "taskdeck/internal/http"
	"taskdeck/internal/repository"
	"taskdeck/internal/service"
	"taskdeck/internal/storage"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()
	if err := db.Ping(ctx, pool); err != nil {
		logger.Fatal("db ping", zap.Error(err))
	}

	userRepo := repository.NewPgUserRepository(pool)
	profileRepo := repository.NewPgProfileRepository(pool)
	taskRepo := repository.NewPgTaskRepository(pool)

	emailSender := email.NewDisabledSender("email sender not configured")
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			emailSender = sender
		}
	}

	var limiter service.RateLimiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			limiter = service.NewRedisRateLimiter(redisClient, 10*time.Minute, 3)
		}
		cancel()
	}

	files, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		logger.Fatal("upload dir", zap.Error(err))
	}

	jwtSvc := service.NewJWTService(cfg.JWTSecret, time.Duration(cfg.JWTTTLMinutes)*time.Minute)
	authSvc := service.NewAuthService(logger, userRepo, profileRepo, emailSender, limiter)
	profileSvc := service.NewProfileService(logger, profileRepo, files)
	taskSvc := service.NewTaskService(logger, taskRepo, cfg.TaskTitleMax, cfg.TaskDescMax)

	authHandler := apihttp.NewAuthHandler(logger, authSvc, jwtSvc)
	profileHandler := apihttp.NewProfileHandler(logger, profileSvc)
	taskHandler := apihttp.NewTaskHandler(logger, taskSvc)
	router := apihttp.NewRouter(logger, authHandler, profileHandler, taskHandler, jwtSvc)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
