package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskapp/internal/config"
	"taskapp/internal/database"
	"taskapp/internal/handler"
	"taskapp/internal/middleware"
	"taskapp/internal/repository"
	"taskapp/internal/service"
	"taskapp/internal/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Println("✅ Connected to database")

	// Apply schema migrations
	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName,
	)
	if err := database.Migrate(dbURL); err != nil {
		return nil, err
	}

	// Setup Gin
	r := gin.Default()

	// Initialize repositories and storage
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	eventRepo := repository.NewEventRepository(db)
	docStore := storage.NewLocalStore(cfg.UploadDir)

	// Initialize services
	taskService := service.NewTaskService(taskRepo, userRepo, docStore)
	eventService := service.NewEventService(eventRepo)
	dashboardService := service.NewDashboardService(taskRepo, eventRepo)

	// Initialize handlers
	jwtExpiry := time.Duration(cfg.JWTExpiryHours) * time.Hour
	userHandler := handler.NewUserHandler(userRepo, cfg.JWTSecret, jwtExpiry)
	taskHandler := handler.NewTaskHandler(taskService, userRepo)
	eventHandler := handler.NewEventHandler(eventService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	// Public routes
	r.POST("/signup", userHandler.Register)
	r.POST("/login", userHandler.Login)

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret, userRepo))
	{
		// Dashboard routes
		authorized.GET("/dashboard", dashboardHandler.Member)
		authorized.GET("/admin/dashboard", dashboardHandler.Admin)

		// User routes
		authorized.GET("/users/assignable", userHandler.Assignable)

		// Task routes
		authorized.GET("/tasks", taskHandler.List)
		authorized.GET("/my-tasks", taskHandler.Mine)
		authorized.GET("/tasks/:id", taskHandler.GetByID)
		authorized.POST("/tasks", taskHandler.Create)
		authorized.PUT("/tasks/:id", taskHandler.Update)
		authorized.DELETE("/tasks/:id", taskHandler.Delete)
		authorized.POST("/tasks/:id/complete", taskHandler.Complete)

		// Event routes
		authorized.GET("/events", eventHandler.List)
		authorized.GET("/events/:id", eventHandler.GetByID)
		authorized.POST("/events", eventHandler.Create)
		authorized.PUT("/events/:id", eventHandler.Update)
		authorized.DELETE("/events/:id", eventHandler.Delete)
	}
	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	log.Println("✅ Server exited properly")
}
