package main

import (
	"log"
	"os"
	"time"

	"hackhub/database"
	"hackhub/handlers"
	"hackhub/middleware"
	"hackhub/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// Validate critical environment variables
	validateEnvironment()

	// Initialize database
	database.InitDB()

	// Wire handlers to the shared services and change hub
	handlers.InitHandlers()

	// Initialize guest cleanup service
	services.InitCleanupService()
	defer func() {
		if cleanupService := services.GetCleanupService(); cleanupService != nil {
			cleanupService.Stop()
		}
	}()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    4 * 1024 * 1024, // 4MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	// CORS configuration
	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	// Apply rate limiting to all routes
	app.Use(middleware.FiberRateLimitMiddleware())

	// API Routes
	api := app.Group("/api")

	// Auth routes with stricter rate limiting
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.FiberAuthRateLimitMiddleware())
	authGroup.Post("/guest", handlers.GuestLogin)
	authGroup.Post("/login", handlers.Login)
	authGroup.Post("/register", handlers.Register)

	// Hackathon routes (require authentication; mutations are rate limited
	// per action type)
	hackGroup := api.Group("/hackathons")
	hackGroup.Use(middleware.AuthMiddleware)
	hackGroup.Use(middleware.FiberMutationRateLimitMiddleware())
	hackGroup.Get("/", handlers.ListHackathons)
	hackGroup.Post("/", handlers.CreateHackathon)
	hackGroup.Get("/:id", handlers.GetHackathon)
	hackGroup.Put("/:id", handlers.UpdateHackathon)
	hackGroup.Delete("/:id", handlers.DeleteHackathon)
	hackGroup.Get("/:id/countdown", handlers.GetCountdown)
	hackGroup.Post("/:id/resources", handlers.AddResource)
	hackGroup.Delete("/:id/resources/:resourceId", handlers.RemoveResource)
	hackGroup.Post("/:id/tasks", handlers.AddTask)
	hackGroup.Put("/:id/tasks/:taskId", handlers.ToggleTask)
	hackGroup.Delete("/:id/tasks/:taskId", handlers.RemoveTask)
	hackGroup.Post("/:id/checklist", handlers.AddChecklistItem)
	hackGroup.Put("/:id/checklist/:itemId", handlers.ToggleChecklistItem)
	hackGroup.Delete("/:id/checklist/:itemId", handlers.RemoveChecklistItem)

	// Dashboard and notification routes
	api.Get("/dashboard", middleware.AuthMiddleware, handlers.GetDashboard)
	api.Get("/notifications", middleware.AuthMiddleware, handlers.GetNotifications)

	// Team routes
	teamGroup := api.Group("/teams")
	teamGroup.Use(middleware.AuthMiddleware)
	teamGroup.Post("/", handlers.CreateTeam)
	teamGroup.Get("/", handlers.GetUserTeams)
	teamGroup.Get("/:id", handlers.GetTeam)
	teamGroup.Get("/:id/members", handlers.GetTeamMembers)
	teamGroup.Post("/join", handlers.JoinTeam)
	teamGroup.Post("/:id/leave", handlers.LeaveTeam)

	// Live dashboard stream
	app.Get("/ws", handlers.UpgradeMiddleware, middleware.WebSocketAuthMiddleware, websocket.New(handlers.StreamDashboard))

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   "1.0.0",
		})
	})

	// Start HTTP server
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("🚀 HTTP server starting on port %s", port)
	log.Printf("📊 Environment: %s", getEnv("APP_ENV", "development"))
	log.Printf("🔐 JWT Secret configured: %v", os.Getenv("JWT_SECRET") != "")
	log.Printf("🧹 Guest cleanup: %s", getEnv("GUEST_CLEANUP_ENABLED", "true"))
	log.Printf("🌐 Dashboard stream available at ws://localhost:%s/ws", port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start HTTP server:", err)
	}
}

// validateEnvironment checks for required environment variables
func validateEnvironment() {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("FATAL: JWT_SECRET environment variable must be set. Generate one with: openssl rand -base64 64")
	}
	if len(jwtSecret) < 32 {
		log.Fatal("FATAL: JWT_SECRET must be at least 32 characters long")
	}

	appEnv := os.Getenv("APP_ENV")
	if appEnv == "production" {
		// Additional production checks
		corsOrigins := os.Getenv("CORS_ORIGINS")
		if corsOrigins == "" || corsOrigins == "http://localhost:3000" {
			log.Println("WARNING: CORS_ORIGINS not properly configured for production")
		}
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Don't expose internal errors in production
	if os.Getenv("APP_ENV") == "production" && code == 500 {
		message = "An error occurred. Please try again later."
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
