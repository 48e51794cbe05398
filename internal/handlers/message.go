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

// MessageHandler handles user-to-user messaging
type MessageHandler struct {
	store storage.Store
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(store storage.Store) *MessageHandler {
	return &MessageHandler{store: store}
}

// Conversations lists the caller's conversations, newest first
func (h *MessageHandler) Conversations(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	conversations, err := h.store.GetConversations(claims.UserID)
	if err != nil {
		log.Printf("Get conversations error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch conversations",
		})
	}

	return c.JSON(fiber.Map{"conversations": conversations})
}

// Thread returns all messages with another user and marks them read
func (h *MessageHandler) Thread(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	otherID, err := c.ParamsInt("userId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	propertyID := parseOptionalUint(c.Query("property_id"))

	messages, err := h.store.GetThread(claims.UserID, uint(otherID), propertyID)
	if err != nil {
		log.Printf("Get messages error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch messages",
		})
	}

	if err := h.store.MarkThreadRead(claims.UserID, uint(otherID)); err != nil {
		log.Printf("Mark read error: %v", err)
	}

	return c.JSON(fiber.Map{"messages": messages})
}

// Send stores a message with its spam score computed at send time
func (h *MessageHandler) Send(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	var req struct {
		ToUserID   uint   `json:"to_user_id"`
		PropertyID *uint  `json:"property_id"`
		Content    string `json:"content"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.ToUserID == 0 || req.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "to_user_id and content are required",
		})
	}

	if _, err := h.store.GetUser(req.ToUserID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Recipient not found",
			})
		}
		log.Printf("Recipient lookup error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to send message",
		})
	}

	msg := &models.Message{
		FromUserID: claims.UserID,
		ToUserID:   req.ToUserID,
		PropertyID: req.PropertyID,
		Content:    req.Content,
		SpamScore:  services.DetectSpam(req.Content),
	}

	msg, err := h.store.CreateMessage(msg)
	if err != nil {
		log.Printf("Send message error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to send message",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": msg})
}
