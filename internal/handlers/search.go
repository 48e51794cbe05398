package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/directhome/directhome-backend/internal/models"
	"github.com/directhome/directhome-backend/internal/storage"
)

// SearchHandler handles public listing search
type SearchHandler struct {
	store storage.Store
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(store storage.Store) *SearchHandler {
	return &SearchHandler{store: store}
}

// Search returns active listings matching the query filters
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	search := &models.PropertySearch{
		City:     c.Query("city"),
		State:    c.Query("state"),
		MinPrice: c.QueryFloat("minPrice"),
		MaxPrice: c.QueryFloat("maxPrice"),
		BHK:      c.QueryInt("bhk"),
		Status:   c.Query("status", models.PropertyStatusActive),
		Limit:    c.QueryInt("limit", 20),
		Offset:   c.QueryInt("offset", 0),
	}
	if amenities := c.Query("amenities"); amenities != "" {
		search.Amenities = append(search.Amenities, amenities)
	}

	properties, total, err := h.store.SearchProperties(search)
	if err != nil {
		log.Printf("Search error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Search failed",
		})
	}

	return c.JSON(fiber.Map{
		"properties": properties,
		"total":      total,
		"limit":      search.Limit,
		"offset":     search.Offset,
	})
}

// Cities returns active listing counts grouped by city
func (h *SearchHandler) Cities(c *fiber.Ctx) error {
	cities, err := h.store.GetCityCounts()
	if err != nil {
		log.Printf("Get cities error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch cities",
		})
	}

	return c.JSON(fiber.Map{"cities": cities})
}
