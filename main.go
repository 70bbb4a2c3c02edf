// main.go
package main

import (
	"log"
	"os"
	"time"

	"academy/database"
	"academy/handlers"
	"academy/handlers/admin"
	"academy/middleware"
	"academy/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
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
	defer database.CloseDB()

	// Initialize unlock notifications
	services.InitNotifier()

	// Initialize the badge reconciliation sweep
	services.InitSweepService()
	services.GetSweepService().Start()
	defer func() {
		if sweep := services.GetSweepService(); sweep != nil {
			sweep.Stop()
		}
	}()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    1 * 1024 * 1024, // 1MB
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
	app.Use(middleware.RateLimitMiddleware())

	// API Routes
	api := app.Group("/api")

	// Auth routes with stricter rate limiting
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.AuthRateLimitMiddleware())
	authGroup.Post("/guest", handlers.GuestLogin)
	authGroup.Post("/login", handlers.Login)
	authGroup.Post("/register", handlers.Register)

	// Content tree (public read)
	api.Get("/content", handlers.GetContentTree)

	// Progress routes
	progressGroup := api.Group("/progress")
	progressGroup.Use(middleware.AuthMiddleware)
	progressGroup.Get("/", handlers.GetProgress)
	progressGroup.Post("/lessons/complete", handlers.CompleteLesson)

	// Mission XP entry point
	missionGroup := api.Group("/missions")
	missionGroup.Use(middleware.AuthMiddleware)
	missionGroup.Post("/complete", handlers.CompleteMission)

	// XP and rank routes
	xpGroup := api.Group("/xp")
	xpGroup.Use(middleware.AuthMiddleware)
	xpGroup.Get("/", handlers.GetXP)
	xpGroup.Get("/rank", handlers.GetRank)

	// Badge routes
	badgeGroup := api.Group("/badges")
	badgeGroup.Use(middleware.AuthMiddleware)
	badgeGroup.Get("/", handlers.GetUserBadges)
	badgeGroup.Post("/evaluate", handlers.EvaluateBadges)

	// Leaderboard routes
	leaderboardGroup := api.Group("/leaderboard")
	leaderboardGroup.Get("/", handlers.GetLeaderboard)
	leaderboardGroup.Get("/me", middleware.AuthMiddleware, handlers.GetLeaderboardPosition)

	// Live badge unlock feed
	app.Use("/ws/unlocks", handlers.WSUpgrade, middleware.WSAuthMiddleware)
	app.Get("/ws/unlocks", handlers.UnlockFeed())

	// Admin routes
	adminGroup := api.Group("/admin")
	adminGroup.Post("/login", admin.Login)

	// Protected admin routes
	adminProtected := adminGroup.Group("")
	adminProtected.Use(middleware.AdminAuthMiddleware)
	adminProtected.Get("/verify", admin.VerifyToken)
	adminProtected.Get("/users", admin.GetUsers)
	adminProtected.Get("/users/:id", admin.GetUser)
	adminProtected.Post("/users/:id/ban", admin.BanUser)

	// Admin badge management
	adminProtected.Get("/badges", admin.GetBadges)
	adminProtected.Post("/badges", admin.CreateBadge)
	adminProtected.Put("/badges/:id", admin.UpdateBadge)
	adminProtected.Delete("/badges/:id", admin.DeactivateBadge)
	adminProtected.Post("/badges/grant", admin.GrantBadge)

	// Admin rank management
	adminProtected.Get("/ranks", admin.GetRanks)
	adminProtected.Post("/ranks", admin.CreateRank)
	adminProtected.Put("/ranks/:id", admin.UpdateRank)
	adminProtected.Delete("/ranks/:id", admin.DeleteRank)

	// Admin content management
	adminProtected.Get("/modules", admin.GetModules)
	adminProtected.Post("/modules", admin.CreateModule)
	adminProtected.Put("/modules/:id", admin.UpdateModule)
	adminProtected.Post("/lessons", admin.CreateLesson)
	adminProtected.Put("/lessons/:id", admin.UpdateLesson)

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
	log.Printf("🏅 Badge sweep interval: %s min", getEnv("SWEEP_INTERVAL_MINUTES", "15"))
	log.Printf("📣 Unlock feed available at ws://localhost:%s/ws/unlocks", port)

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
