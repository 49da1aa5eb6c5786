package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/yukikurage/project-dashboard-api/internal/cache"
	"github.com/yukikurage/project-dashboard-api/internal/config"
	"github.com/yukikurage/project-dashboard-api/internal/constants"
	"github.com/yukikurage/project-dashboard-api/internal/database"
	"github.com/yukikurage/project-dashboard-api/internal/handlers"
	"github.com/yukikurage/project-dashboard-api/internal/logging"
	"github.com/yukikurage/project-dashboard-api/internal/middleware"
	"github.com/yukikurage/project-dashboard-api/internal/repository"
	"github.com/yukikurage/project-dashboard-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	logger, err := logging.NewLogger(cfg.GinMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Optional insight cache; a nil cache disables caching entirely
	var insightCache *cache.InsightCache
	if cfg.CacheEnabled() {
		insightCache = cache.NewInsightCache(cfg.RedisAddr, logger)
		logger.Info("Insight cache enabled", zap.String("redis_addr", cfg.RedisAddr))
	}

	// Services
	progressService := services.NewProgressService(taskRepo, projectRepo, logger)
	insightService := services.NewInsightService()
	analyticsService := services.NewAnalyticsService(projectRepo, taskRepo)
	userService := services.NewUserService(userRepo)
	projectService := services.NewProjectService(projectRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo, progressService)

	// Handlers
	userHandler := handlers.NewUserHandler(userService)
	projectHandler := handlers.NewProjectHandler(projectService, insightCache)
	taskHandler := handlers.NewTaskHandler(taskService, insightCache)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	insightHandler := handlers.NewInsightHandler(projectService, insightService, taskRepo, insightCache)

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.RequestMetrics())

	// Health check and metrics endpoints
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": constants.APIName + " is running",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := r.Group("/api")
	{
		api.GET("/", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"message": constants.APIName,
				"version": constants.APIVersion,
			})
		})

		users := api.Group("/users")
		{
			users.POST("", userHandler.CreateUser)
			users.GET("", userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}

		projects := api.Group("/projects")
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.ListProjects)
			projects.GET("/:id", projectHandler.GetProject)
			projects.PUT("/:id", projectHandler.UpdateProject)
			projects.DELETE("/:id", projectHandler.DeleteProject)
		}

		tasks := api.Group("/tasks")
		{
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		analytics := api.Group("/analytics")
		{
			analytics.GET("/projects", analyticsHandler.ProjectAnalytics)
			analytics.GET("/tasks", analyticsHandler.TaskAnalytics)
		}

		api.GET("/ai/insights/:project_id", insightHandler.ProjectInsights)
	}

	// Start server
	logger.Info("Server starting", zap.String("port", cfg.ServerPort))
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
