package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/automated-attendance/api/swagger"
	"github.com/noah-isme/automated-attendance/internal/handler"
	"github.com/noah-isme/automated-attendance/internal/middleware"
	"github.com/noah-isme/automated-attendance/internal/models"
	"github.com/noah-isme/automated-attendance/internal/repository"
	"github.com/noah-isme/automated-attendance/internal/service"
	"github.com/noah-isme/automated-attendance/pkg/config"
	"github.com/noah-isme/automated-attendance/pkg/logger"
	corsmiddleware "github.com/noah-isme/automated-attendance/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/automated-attendance/pkg/middleware/requestid"
)

type routeDeps struct {
	cfg         *config.Config
	logger      *zap.Logger
	metrics     *service.MetricsService
	auth        *service.AuthService
	students    *service.AccountService
	instructors *service.AccountService
	courses     *service.CourseService
	dashboard   *service.DashboardService
	userLogs    *repository.UserLogRepository
}

func newRouter(d routeDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(d.logger))
	r.Use(corsmiddleware.New(corsmiddleware.Config{
		AllowedOrigins: d.cfg.CORS.AllowedOrigins,
		ExtraHeaders:   []string{middleware.AdminIDHeader, middleware.AdminPasswordHeader},
		ExposedHeaders: []string{middleware.CacheHeader},
	}))
	r.Use(middleware.Metrics(d.metrics))

	system := handler.NewMetricsHandler(d.metrics)
	r.GET("/test", system.Test)
	r.GET("/health", system.Health)
	r.GET("/metrics", system.Prometheus)
	if d.cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authHandler := handler.NewAuthHandler(d.auth)
	studentHandler := handler.NewAccountHandler(d.students)
	instructorHandler := handler.NewAccountHandler(d.instructors)
	courseHandler := handler.NewCourseHandler(d.courses)
	dashboardHandler := handler.NewDashboardHandler(d.dashboard)

	api := r.Group(d.cfg.APIPrefix)
	api.POST("/admin/login", authHandler.AdminLogin)
	api.POST("/instructors/login", authHandler.InstructorLogin)
	api.POST("/instructors/logout", authHandler.InstructorLogout)
	api.POST("/students/login", authHandler.StudentLogin)
	api.POST("/students/logout", authHandler.StudentLogout)
	api.GET("/session", middleware.JWT(d.auth), middleware.RequireRoles(models.RoleAdmin, models.RoleInstructor, models.RoleStudent), authHandler.Session)

	admin := api.Group("")
	admin.Use(middleware.AdminAuth(d.auth, d.cfg.Admin.HeaderAuth))

	studentsGroup := admin.Group("/students", middleware.Audit(d.logger, "students"))
	studentsGroup.GET("", studentHandler.List)
	studentsGroup.POST("", studentHandler.Create)
	studentsGroup.PUT("/:id", studentHandler.Update)
	studentsGroup.DELETE("/:id", studentHandler.Delete)

	instructorsGroup := admin.Group("/instructors", middleware.Audit(d.logger, "instructors"))
	instructorsGroup.GET("", instructorHandler.List)
	instructorsGroup.POST("", instructorHandler.Create)
	instructorsGroup.PUT("/:id", instructorHandler.Update)
	instructorsGroup.DELETE("/:id", instructorHandler.Delete)

	coursesGroup := admin.Group("/courses", middleware.Audit(d.logger, "courses"))
	coursesGroup.GET("", courseHandler.List)
	coursesGroup.POST("", courseHandler.Create)
	coursesGroup.POST("/update-instructor-ids", courseHandler.UpdateInstructorIDs)
	coursesGroup.GET("/:id", courseHandler.Get)
	coursesGroup.PUT("/:id", courseHandler.Update)
	coursesGroup.DELETE("/:id", courseHandler.Delete)

	admin.GET("/dashboard", dashboardHandler.Summary)

	if d.userLogs != nil {
		admin.GET("/user-logs", handler.NewUserLogHandler(d.userLogs).List)
	}

	return r
}
