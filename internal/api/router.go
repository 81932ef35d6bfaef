package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/campuscare/complaint-api/internal/api/handler"
	"github.com/campuscare/complaint-api/internal/api/middleware"
	"github.com/campuscare/complaint-api/internal/core/domain"
	"github.com/campuscare/complaint-api/internal/core/service"
	mongorepo "github.com/campuscare/complaint-api/internal/infrastructure/db/mongo"
	redisinfra "github.com/campuscare/complaint-api/internal/infrastructure/db/redis"
	"github.com/campuscare/complaint-api/internal/infrastructure/storage"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, uploads *storage.UploadStore, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("complaints"))

	// --- Dependencies ---
	complaintRepo := mongorepo.NewComplaintRepository(db)
	userRepo := mongorepo.NewUserRepository(db)
	statsCache := redisinfra.NewStatsCache(rdb)

	authService := service.NewAuthService(userRepo, jwtSecret, 24*time.Hour)
	complaintService := service.NewComplaintService(complaintRepo, userRepo, statsCache, log)
	adminService := service.NewAdminService(complaintRepo, userRepo, statsCache, log)
	userService := service.NewUserService(userRepo)
	chatbotService := service.NewChatbotService()

	authHandler := handler.NewAuthHandler(authService)
	complaintHandler := handler.NewComplaintHandler(complaintService, uploads)
	adminHandler := handler.NewAdminHandler(adminService)
	userHandler := handler.NewUserHandler(userService)
	chatbotHandler := handler.NewChatbotHandler(chatbotService)

	authMiddleware := middleware.Auth(jwtSecret)

	// --- Public routes ---
	api := e.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/chatbot/message", chatbotHandler.Message)

	// --- Authenticated routes ---
	users := api.Group("/users", authMiddleware)
	users.GET("/profile", userHandler.Profile)
	users.PUT("/profile", userHandler.UpdateProfile)
	users.GET("/staff", userHandler.ListStaff)

	complaints := api.Group("/complaints", authMiddleware)
	complaints.POST("", complaintHandler.Create, middleware.RBAC(domain.RoleStudent))
	complaints.GET("", complaintHandler.List)
	complaints.GET("/:id", complaintHandler.Get)
	complaints.PUT("/:id", complaintHandler.Update, middleware.RBAC(domain.RoleStaff, domain.RoleAdmin))
	complaints.POST("/:id/feedback", complaintHandler.Feedback, middleware.RBAC(domain.RoleStudent))
	complaints.POST("/:id/work-proof", complaintHandler.WorkProof, middleware.RBAC(domain.RoleStaff))

	admin := api.Group("/admin", authMiddleware, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/complaints", adminHandler.ListComplaints)
	admin.GET("/complaints/:id", adminHandler.GetComplaint)
	admin.PUT("/complaints/:id/assign", adminHandler.Assign)
	admin.PUT("/complaints/:id/status", adminHandler.SetStatus)
	admin.DELETE("/complaints/:id", adminHandler.SoftDelete)
	admin.GET("/stats", adminHandler.Stats)
	admin.GET("/staff", adminHandler.ListStaff)
	admin.POST("/staff", adminHandler.CreateStaff)
	admin.PUT("/staff/:id", adminHandler.UpdateStaff)
	admin.DELETE("/staff/:id", adminHandler.DeleteStaff)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operational surfaces ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.Static("/uploads", uploads.Dir())

	return e
}
