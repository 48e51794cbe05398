package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/directhome/directhome-backend/internal/handlers"
	"github.com/directhome/directhome-backend/internal/middleware"
	"github.com/directhome/directhome-backend/internal/models"
	"github.com/directhome/directhome-backend/internal/services"
	"github.com/directhome/directhome-backend/internal/storage"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, store storage.Store, otpService *services.OTPService, production bool) {
	verificationService := services.NewVerificationService(store)

	authHandler := handlers.NewAuthHandler(store, otpService, production)
	userHandler := handlers.NewUserHandler(store, verificationService)
	propertyHandler := handlers.NewPropertyHandler(store)
	messageHandler := handlers.NewMessageHandler(store)
	searchHandler := handlers.NewSearchHandler(store)
	adminHandler := handlers.NewAdminHandler(store, verificationService)

	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")

	// Auth routes
	authRoutes := api.Group("/auth")
	authRoutes.Post("/otp/request", authHandler.RequestOTP)
	authRoutes.Post("/otp/verify", authHandler.VerifyOTP)

	// User routes
	users := api.Group("/users", middleware.RequireAuth())
	users.Get("/me", userHandler.Me)
	users.Put("/me", userHandler.UpdateMe)
	users.Post("/verify/upload-id", userHandler.UploadIDDocument)
	users.Get("/documents", userHandler.MyDocuments)

	// Property routes
	properties := api.Group("/properties")
	properties.Get("/", propertyHandler.ListProperties)
	properties.Post("/price-recommendation", middleware.RequireAuth(), propertyHandler.PriceRecommendation)
	properties.Get("/:id", propertyHandler.GetProperty)
	properties.Post("/", middleware.RequireAuth(), middleware.RequireRole(models.RoleSeller, models.RoleAdmin), propertyHandler.CreateProperty)
	properties.Put("/:id", middleware.RequireAuth(), propertyHandler.UpdateProperty)
	properties.Delete("/:id", middleware.RequireAuth(), propertyHandler.DeleteProperty)

	// Message routes
	messages := api.Group("/messages", middleware.RequireAuth())
	messages.Get("/conversations", messageHandler.Conversations)
	messages.Get("/:userId", messageHandler.Thread)
	messages.Post("/", messageHandler.Send)

	// Search routes
	search := api.Group("/search")
	search.Get("/", searchHandler.Search)
	search.Get("/cities", searchHandler.Cities)

	// Admin routes
	admin := api.Group("/admin", middleware.RequireAuth(), middleware.RequireRole(models.RoleAdmin))
	admin.Get("/dashboard", adminHandler.Dashboard)
	admin.Get("/users", adminHandler.Users)
	admin.Get("/properties/pending", adminHandler.PendingProperties)
	admin.Put("/properties/:id/status", adminHandler.UpdatePropertyStatus)
	admin.Get("/verifications/pending", adminHandler.PendingVerifications)
	admin.Put("/verifications/:id", adminHandler.DecideVerification)
}
