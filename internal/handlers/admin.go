package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/directhome/directhome-backend/internal/middleware"
	"github.com/directhome/directhome-backend/internal/models"
	"github.com/directhome/directhome-backend/internal/services"
	"github.com/directhome/directhome-backend/internal/storage"
)

// AdminHandler handles moderation and verification operations
type AdminHandler struct {
	store        storage.Store
	verification *services.VerificationService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(store storage.Store, verification *services.VerificationService) *AdminHandler {
	return &AdminHandler{
		store:        store,
		verification: verification,
	}
}

// Dashboard returns platform counters
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	totalUsers, err := h.store.CountUsers()
	if err != nil {
		return h.dashboardError(c, err)
	}
	totalProperties, err := h.store.CountProperties()
	if err != nil {
		return h.dashboardError(c, err)
	}
	pendingProperties, err := h.store.CountPropertiesByStatus(models.PropertyStatusPendingReview)
	if err != nil {
		return h.dashboardError(c, err)
	}
	pendingVerifications, err := h.store.CountPendingDocuments()
	if err != nil {
		return h.dashboardError(c, err)
	}
	recentMessages, err := h.store.CountMessagesSince(time.Now().Add(-24 * time.Hour))
	if err != nil {
		return h.dashboardError(c, err)
	}

	return c.JSON(fiber.Map{
		"stats": fiber.Map{
			"totalUsers":           totalUsers,
			"totalProperties":      totalProperties,
			"pendingProperties":    pendingProperties,
			"pendingVerifications": pendingVerifications,
			"recentMessages":       recentMessages,
		},
	})
}

func (h *AdminHandler) dashboardError(c *fiber.Ctx, err error) error {
	log.Printf("Dashboard error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Failed to fetch dashboard data",
	})
}

// Users lists all users, paginated
func (h *AdminHandler) Users(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	users, err := h.store.GetAllUsers(limit, offset)
	if err != nil {
		log.Printf("Get users error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch users",
		})
	}

	return c.JSON(fiber.Map{"users": users})
}

// PendingProperties lists listings awaiting moderation
func (h *AdminHandler) PendingProperties(c *fiber.Ctx) error {
	properties, _, err := h.store.GetPropertiesByStatus(models.PropertyStatusPendingReview, 0, 0)
	if err != nil {
		log.Printf("Get pending properties error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch pending properties",
		})
	}

	return c.JSON(fiber.Map{"properties": properties})
}

// UpdatePropertyStatus approves or rejects a listing
func (h *AdminHandler) UpdatePropertyStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid property ID",
		})
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if !validPropertyStatus(req.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid status",
		})
	}

	property, err := h.store.UpdatePropertyStatus(uint(id), req.Status)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Property not found",
			})
		}
		log.Printf("Update property status error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update property status",
		})
	}

	return c.JSON(fiber.Map{"property": property})
}

// PendingVerifications lists documents awaiting review
func (h *AdminHandler) PendingVerifications(c *fiber.Ctx) error {
	docs, err := h.store.GetPendingDocuments()
	if err != nil {
		log.Printf("Get pending verifications error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch pending verifications",
		})
	}

	return c.JSON(fiber.Map{"documents": docs})
}

// DecideVerification accepts or rejects a document. Accepting an id_proof
// also marks its owner verified and floors their trust score.
func (h *AdminHandler) DecideVerification(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid document ID",
		})
	}

	var req struct {
		Verified *bool `json:"verified"`
	}
	if err := c.BodyParser(&req); err != nil || req.Verified == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "verified field is required",
		})
	}

	doc, err := h.verification.Decide(uint(id), claims.UserID, *req.Verified)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Document not found",
			})
		}
		log.Printf("Update verification error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update verification",
		})
	}

	return c.JSON(fiber.Map{"document": doc})
}
