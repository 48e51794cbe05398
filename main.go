package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/directhome/directhome-backend/database"
	"github.com/directhome/directhome-backend/internal/jobs"
	"github.com/directhome/directhome-backend/internal/models"
	"github.com/directhome/directhome-backend/internal/routes"
	"github.com/directhome/directhome-backend/internal/services"
	"github.com/directhome/directhome-backend/internal/storage"
)

func main() {
	// Load .env file for local development
	if os.Getenv("INSTANCE_CONNECTION_NAME") == "" {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("⚠️  No .env file found - checking environment variables")
		}
	}

	production := os.Getenv("ENVIRONMENT") == "production"

	// Initialize storage
	var store storage.Store

	// Check if we should use memory store (for testing)
	if os.Getenv("USE_MEMORY_STORE") == "true" {
		log.Println("⚠️  Using in-memory storage (not for production!)")
		store = storage.NewMemoryStore()
	} else {
		// Connect to database
		log.Println("📦 Connecting to PostgreSQL database...")
		database.Connect()

		// Run migrations
		log.Println("🔄 Running database migrations...")
		err := database.DB.AutoMigrate(
			&models.User{},
			&models.Property{},
			&models.PropertyMedia{},
			&models.Document{},
			&models.Message{},
		)
		if err != nil {
			log.Fatal("Failed to migrate database:", err)
		}
		log.Println("✅ Database migrations completed!")

		store = storage.NewDatabaseStore(database.DB)
		log.Println("✅ Using PostgreSQL database storage")
	}
	storage.SetStore(store)

	// OTP store: in-process map by default, Redis when configured
	var otpStore services.OTPStore
	if os.Getenv("OTP_BACKEND") == "redis" {
		addr := os.Getenv("REDIS_ADDR")
		if addr == "" {
			addr = "localhost:6379"
		}
		redisStore, err := services.NewRedisOTPStore(addr)
		if err != nil {
			log.Fatal("Failed to connect to Redis:", err)
		}
		otpStore = redisStore
		log.Println("✅ Using Redis OTP store")
	} else {
		otpStore = services.NewMemoryOTPStore()
		log.Println("✅ Using in-memory OTP store")
	}

	// SMS delivery is only required in production; demos log the code
	var smsService *services.SMSService
	if production {
		var err error
		smsService, err = services.NewSMSService()
		if err != nil {
			log.Fatal("Failed to initialize SMS service:", err)
		}
		log.Println("✅ Twilio SMS service initialized")
	} else if sms, err := services.NewSMSService(); err == nil {
		smsService = sms
		log.Println("✅ Twilio SMS service initialized")
	} else {
		log.Println("⚠️  Twilio credentials not found - OTP delivery limited to logs")
	}

	otpService := services.NewOTPService(otpStore, smsService, production)

	// Start background cleanup
	cleanupJob := jobs.NewCleanupJob(otpService)
	cleanupJob.Start()

	// Create fiber app
	app := fiber.New(fiber.Config{
		AppName: "DirectHome Backend v1.0.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Root endpoint with database status
	app.Get("/", func(c *fiber.Ctx) error {
		response := fiber.Map{
			"service":     "DirectHome Backend API",
			"version":     "1.0.0",
			"status":      "healthy",
			"environment": getEnvironment(),
			"storage":     getStorageType(),
		}

		// Add database status if using database
		if os.Getenv("USE_MEMORY_STORE") != "true" && database.DB != nil {
			sqlDB, err := database.DB.DB()
			dbStatus := "connected"
			if err != nil {
				dbStatus = "error: " + err.Error()
			} else if err := sqlDB.Ping(); err != nil {
				dbStatus = "error: " + err.Error()
			}

			userCount, _ := store.CountUsers()
			propertyCount, _ := store.CountProperties()
			pendingCount, _ := store.CountPropertiesByStatus(models.PropertyStatusPendingReview)

			response["database"] = fiber.Map{
				"status":             dbStatus,
				"users":              userCount,
				"properties":         propertyCount,
				"pending_properties": pendingCount,
			}
		}

		return c.JSON(response)
	})

	// Setup routes
	routes.SetupRoutes(app, store, otpService, production)

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("\n🛑 Gracefully shutting down...")
		log.Println("⏹️  Stopping cleanup job...")
		cleanupJob.Stop()
		log.Println("⏹️  Shutting down server...")
		_ = app.Shutdown()
	}()

	// Start server
	log.Println("========================================")
	log.Printf("🚀 DirectHome Backend starting on port %s", port)
	log.Printf("📊 Storage: %s", getStorageType())
	log.Printf("🌍 Environment: %s", getEnvironment())
	log.Printf("📱 SMS delivery: %s", getSMSStatus(smsService))
	log.Println("========================================")

	log.Fatal(app.Listen(":" + port))
}

func getEnvironment() string {
	if os.Getenv("ENVIRONMENT") == "production" {
		return "Production"
	}
	return "Development"
}

func getStorageType() string {
	if os.Getenv("USE_MEMORY_STORE") == "true" {
		return "In-Memory (Testing)"
	}
	return "PostgreSQL Database"
}

func getSMSStatus(sms *services.SMSService) string {
	if sms == nil {
		return "Not configured"
	}
	return "Configured"
}
