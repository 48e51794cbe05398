package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/directhome/directhome-backend/internal/middleware"
	"github.com/directhome/directhome-backend/internal/models"
	"github.com/directhome/directhome-backend/internal/services"
	"github.com/directhome/directhome-backend/internal/storage"
)

// PropertyHandler handles listing requests
type PropertyHandler struct {
	store storage.Store
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(store storage.Store) *PropertyHandler {
	return &PropertyHandler{store: store}
}

// ListProperties returns listings by status, paginated
func (h *PropertyHandler) ListProperties(c *fiber.Ctx) error {
	status := c.Query("status", models.PropertyStatusActive)
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	properties, total, err := h.store.GetPropertiesByStatus(status, limit, offset)
	if err != nil {
		log.Printf("List properties error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch properties",
		})
	}

	return c.JSON(fiber.Map{
		"properties": properties,
		"total":      total,
		"limit":      limit,
		"offset":     offset,
	})
}

// GetProperty returns one listing with its media and seller summary
func (h *PropertyHandler) GetProperty(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid property ID",
		})
	}

	property, err := h.store.GetProperty(uint(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Property not found",
			})
		}
		log.Printf("Get property error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch property",
		})
	}

	if media, err := h.store.GetMediaByProperty(property.ID); err == nil {
		property.Media = nil
		for _, m := range media {
			property.Media = append(property.Media, *m)
		}
	}

	response := fiber.Map{"property": property}
	if seller, err := h.store.GetUser(property.UserID); err == nil {
		response["seller"] = seller.PublicView()
	}
	return c.JSON(response)
}

type propertyRequest struct {
	Title       string   `json:"title" form:"title"`
	Description string   `json:"description" form:"description"`
	Price       float64  `json:"price" form:"price"`
	BHK         int      `json:"bhk" form:"bhk"`
	City        string   `json:"city" form:"city"`
	State       string   `json:"state" form:"state"`
	Address     string   `json:"address" form:"address"`
	Lat         *float64 `json:"lat" form:"lat"`
	Lng         *float64 `json:"lng" form:"lng"`
	Amenities   []string `json:"amenities" form:"amenities"`
}

// decodeAmenities also accepts a single JSON-encoded array form value
func decodeAmenities(list []string) []string {
	if len(list) == 1 && len(list[0]) > 0 && list[0][0] == '[' {
		var parsed []string
		if err := json.Unmarshal([]byte(list[0]), &parsed); err == nil {
			return parsed
		}
	}
	return list
}

// CreateProperty creates a listing and attaches its fraud risk score
func (h *PropertyHandler) CreateProperty(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	var req propertyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Title == "" || req.City == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title and city are required",
		})
	}
	if req.Price <= 0 || req.BHK <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Price and BHK must be positive",
		})
	}

	// Owner snapshot read just before scoring; the score is point-in-time
	owner, err := h.store.GetUser(claims.UserID)
	if err != nil {
		log.Printf("Owner lookup error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create property",
		})
	}

	property := &models.Property{
		UserID:      claims.UserID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		BHK:         req.BHK,
		City:        req.City,
		State:       req.State,
		Address:     req.Address,
		Lat:         req.Lat,
		Lng:         req.Lng,
		Status:      models.PropertyStatusPendingReview,
	}
	property.SetAmenities(decodeAmenities(req.Amenities))
	property.RiskScore = services.CalculateFraudRiskScore(property, owner, time.Now())

	property, err = h.store.CreateProperty(property)
	if err != nil {
		log.Printf("Create property error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create property",
		})
	}

	// Attach uploaded images, first one becomes the primary
	if form, err := c.MultipartForm(); err == nil && form != nil {
		files := form.File["images"]
		if len(files) > maxPropertyImages {
			files = files[:maxPropertyImages]
		}
		for i, file := range files {
			path, err := saveUpload(c, file, "properties", "prop", imageExtensions, maxImageSize)
			if err != nil {
				log.Printf("Image upload error: %v", err)
				continue
			}
			media := &models.PropertyMedia{
				PropertyID: property.ID,
				FilePath:   path,
				MediaType:  "image",
				IsPrimary:  i == 0,
			}
			if saved, err := h.store.CreateMedia(media); err == nil {
				property.Media = append(property.Media, *saved)
			}
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"property": property,
	})
}

// UpdateProperty applies a typed partial update, owner or admin only
func (h *PropertyHandler) UpdateProperty(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid property ID",
		})
	}

	property, err := h.store.GetProperty(uint(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Property not found",
			})
		}
		log.Printf("Get property error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update property",
		})
	}

	if property.UserID != claims.UserID && claims.Role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not authorized",
		})
	}

	var update models.PropertyUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	// Only admins may move a listing between statuses
	if claims.Role != models.RoleAdmin {
		update.Status = nil
	} else if update.Status != nil && !validPropertyStatus(*update.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid status",
		})
	}

	if update.Empty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No fields to update",
		})
	}

	property, err = h.store.UpdateProperty(uint(id), &update)
	if err != nil {
		log.Printf("Update property error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update property",
		})
	}

	return c.JSON(fiber.Map{"property": property})
}

// DeleteProperty removes a listing, owner or admin only
func (h *PropertyHandler) DeleteProperty(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid property ID",
		})
	}

	property, err := h.store.GetProperty(uint(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Property not found",
			})
		}
		log.Printf("Get property error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete property",
		})
	}

	if property.UserID != claims.UserID && claims.Role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not authorized",
		})
	}

	if err := h.store.DeleteProperty(uint(id)); err != nil {
		log.Printf("Delete property error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete property",
		})
	}

	return c.JSON(fiber.Map{"message": "Property deleted successfully"})
}

// PriceRecommendation suggests a price band for a hypothetical listing
func (h *PropertyHandler) PriceRecommendation(c *fiber.Ctx) error {
	var req struct {
		City      string   `json:"city"`
		BHK       int      `json:"bhk"`
		Amenities []string `json:"amenities"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	return c.JSON(services.RecommendPrice(req.City, req.BHK, req.Amenities))
}

func validPropertyStatus(status string) bool {
	switch status {
	case models.PropertyStatusActive, models.PropertyStatusInactive, models.PropertyStatusPendingReview:
		return true
	}
	return false
}

func parseOptionalUint(s string) *uint {
	if s == "" {
		return nil
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return nil
	}
	v := uint(n)
	return &v
}
