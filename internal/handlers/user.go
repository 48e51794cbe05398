package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/directhome/directhome-backend/internal/middleware"
	"github.com/directhome/directhome-backend/internal/models"
	"github.com/directhome/directhome-backend/internal/services"
	"github.com/directhome/directhome-backend/internal/storage"
)

// UserHandler handles profile and document requests
type UserHandler struct {
	store        storage.Store
	verification *services.VerificationService
}

// NewUserHandler creates a new user handler
func NewUserHandler(store storage.Store, verification *services.VerificationService) *UserHandler {
	return &UserHandler{
		store:        store,
		verification: verification,
	}
}

// Me returns the authenticated user's profile
func (h *UserHandler) Me(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	user, err := h.store.GetUser(claims.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		log.Printf("Get user error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch user",
		})
	}

	return c.JSON(fiber.Map{"user": user.PublicView()})
}

// UpdateMe applies a typed partial profile update
func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	var update models.UserUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if update.Name == nil && update.Email == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No fields to update",
		})
	}

	user, err := h.store.UpdateUserProfile(claims.UserID, &update)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		log.Printf("Update user error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update user",
		})
	}

	return c.JSON(fiber.Map{"user": user.PublicView()})
}

// UploadIDDocument stores an identity document for admin review
func (h *UserHandler) UploadIDDocument(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	file, err := c.FormFile("document")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Document file required",
		})
	}

	path, err := saveUpload(c, file, "documents", "doc", documentExtensions, maxDocumentSize)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	doc, err := h.verification.SubmitDocument(claims.UserID, models.DocumentTypeIDProof, path, parseOptionalUint(c.FormValue("property_id")))
	if err != nil {
		log.Printf("Submit document error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload document",
		})
	}

	return c.JSON(fiber.Map{
		"message":  "Document uploaded successfully",
		"document": doc,
	})
}

// MyDocuments lists the authenticated user's documents
func (h *UserHandler) MyDocuments(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	docs, err := h.store.GetDocumentsByUser(claims.UserID)
	if err != nil {
		log.Printf("Get documents error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch documents",
		})
	}

	return c.JSON(fiber.Map{"documents": docs})
}
