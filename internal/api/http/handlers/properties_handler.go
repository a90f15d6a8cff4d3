package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/realty-service/internal/api/dto"
	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/service"
)

// PropertiesHandler exposes listing endpoints.
type PropertiesHandler struct {
	listings Listings
}

// NewPropertiesHandler constructs handler.
func NewPropertiesHandler(listings Listings) *PropertiesHandler {
	return &PropertiesHandler{listings: listings}
}

// List handles GET /properties.
func (h *PropertiesHandler) List(c *fiber.Ctx) error {
	properties, err := h.listings.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": properties})
}

// Mine handles GET /properties/mine.
func (h *PropertiesHandler) Mine(c *fiber.Ctx) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}
	properties, err := h.listings.ListByBroker(c.UserContext(), me.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": properties})
}

// Get handles GET /properties/:id.
func (h *PropertiesHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	property, err := h.listings.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": property})
}

// Create handles POST /properties.
func (h *PropertiesHandler) Create(c *fiber.Ctx) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.PropertyCreateRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	property, err := h.listings.Create(c.UserContext(), me, service.PropertyInput{
		Name:        req.Name,
		Description: req.Description,
		Type:        domain.PropertyType(req.Type),
		Value:       req.Value,
		Area:        req.Area,
		Bedrooms:    req.Bedrooms,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": property})
}

// Update handles PUT /properties/:id.
func (h *PropertiesHandler) Update(c *fiber.Ctx) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.PropertyUpdateRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	property, err := h.listings.Update(c.UserContext(), me, id, service.PropertyUpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Type:        dto.PropertyTypeOrNil(req.Type),
		Value:       req.Value,
		Area:        req.Area,
		Bedrooms:    req.Bedrooms,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": property})
}

// Delete handles DELETE /properties/:id.
func (h *PropertiesHandler) Delete(c *fiber.Ctx) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.listings.Delete(c.UserContext(), me, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ToggleStatus handles PATCH /properties/:id/status.
func (h *PropertiesHandler) ToggleStatus(c *fiber.Ctx) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	property, err := h.listings.ToggleStatus(c.UserContext(), me, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": property})
}
