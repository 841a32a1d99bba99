package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/automated-attendance/internal/models"
	"github.com/noah-isme/automated-attendance/internal/repository"
	"github.com/noah-isme/automated-attendance/internal/service"
	"github.com/noah-isme/automated-attendance/pkg/cache"
	"github.com/noah-isme/automated-attendance/pkg/config"
	"github.com/noah-isme/automated-attendance/pkg/database"
	"github.com/noah-isme/automated-attendance/pkg/logger"
)

// @title Automated Attendance API
// @version 1.0.0
// @description Accounts, courses and dashboard endpoints for the attendance clients
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey AdminID
// @in header
// @name admin-id
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, mongoDB, err := database.NewMongo(ctx, cfg.Mongo)
	if err != nil {
		logr.Fatal("failed to connect mongo", zap.Error(err))
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	students, err := repository.NewAccountRepository(ctx, mongoDB, models.RoleStudent)
	if err != nil {
		logr.Fatal("failed to init students", zap.Error(err))
	}
	instructors, err := repository.NewAccountRepository(ctx, mongoDB, models.RoleInstructor)
	if err != nil {
		logr.Fatal("failed to init instructors", zap.Error(err))
	}
	courses, err := repository.NewCourseRepository(ctx, mongoDB)
	if err != nil {
		logr.Fatal("failed to init courses", zap.Error(err))
	}

	var userLogRepo *repository.UserLogRepository
	if database.PostgresEnabled(cfg.Database) {
		logDB, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			logr.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer logDB.Close() //nolint:errcheck
		userLogRepo = repository.NewUserLogRepository(logDB)
		if err := userLogRepo.EnsureSchema(ctx); err != nil {
			logr.Fatal("failed to prepare user_logs", zap.Error(err))
		}
	} else {
		logr.Info("DB_HOST not set, user logs go to the application log only")
	}

	var redisClient *redis.Client
	if cfg.Dashboard.CacheEnabled {
		redisClient, err = cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, dashboard cache disabled", zap.Error(err))
			redisClient = nil
		}
	}
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	metrics := service.NewMetricsService()
	validate := validator.New()

	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Dashboard.CacheTTL, logr, redisClient != nil)
	dashboardSvc := service.NewDashboardService(students, instructors, courses, cacheSvc, cfg.Dashboard.CacheTTL, logr)

	var userLogs *service.UserLogService
	if userLogRepo != nil {
		userLogs = service.NewUserLogService(userLogRepo, service.UserLogConfig(cfg.UserLogs), metrics, logr)
	} else {
		userLogs = service.NewUserLogService(nil, service.UserLogConfig(cfg.UserLogs), metrics, logr)
	}
	userLogs.Start(ctx)

	studentSvc := service.NewAccountService(students, validate, dashboardSvc, userLogs, logr)
	instructorSvc := service.NewAccountService(instructors, validate, dashboardSvc, userLogs, logr)
	courseSvc := service.NewCourseService(courses, instructors, validate, dashboardSvc, logr)
	authSvc := service.NewAuthService(instructorSvc, studentSvc, userLogs, metrics, validate, logr, service.AuthConfig{
		Secret:        cfg.JWT.Secret,
		Expiry:        cfg.JWT.Expiration,
		Issuer:        cfg.JWT.Issuer,
		AdminID:       cfg.Admin.ID,
		AdminPassword: cfg.Admin.Password,
	})

	deps := routeDeps{
		cfg:         cfg,
		logger:      logr,
		metrics:     metrics,
		auth:        authSvc,
		students:    studentSvc,
		instructors: instructorSvc,
		courses:     courseSvc,
		dashboard:   dashboardSvc,
		userLogs:    userLogRepo,
	}
	router := newRouter(deps)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", server.Addr), zap.String("env", cfg.Env))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logr.Error("server forced to shutdown", zap.Error(err))
	}
	userLogs.Stop()
	logr.Info("server exited")
}
