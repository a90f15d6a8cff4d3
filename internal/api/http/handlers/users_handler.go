package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/realty-service/internal/api/dto"
	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/service"
)

// UsersHandler exposes account and favorites endpoints.
type UsersHandler struct {
	accounts Accounts
}

// NewUsersHandler constructs handler.
func NewUsersHandler(accounts Accounts) *UsersHandler {
	return &UsersHandler{accounts: accounts}
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.accounts.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": users})
}

// Get handles GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.accounts.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": user})
}

// Create handles POST /users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.UserCreateRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.accounts.Create(c.UserContext(), service.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.UserRole(req.Role),
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": user})
}

// Update handles PUT /users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UserUpdateRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.accounts.Update(c.UserContext(), id, service.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     dto.RoleOrNil(req.Role),
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": user})
}

// Me handles GET /users/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": domain.NewUserView(me)})
}

// UpdateMe handles PUT /users/me. The caller cannot change their own role.
func (h *UsersHandler) UpdateMe(c *fiber.Ctx) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.SelfUpdateRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.accounts.Update(c.UserContext(), me.ID, service.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": user})
}

// Favorites handles GET /favorites.
func (h *UsersHandler) Favorites(c *fiber.Ctx) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}
	favorites, err := h.accounts.GetFavorites(c.UserContext(), me.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": favorites})
}

// AddFavorite handles POST /favorites/:propertyId.
func (h *UsersHandler) AddFavorite(c *fiber.Ctx) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}
	propertyID, err := paramID(c, "propertyId")
	if err != nil {
		return err
	}
	if err := h.accounts.AddFavorite(c.UserContext(), me.ID, propertyID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// RemoveFavorite handles DELETE /favorites/:propertyId.
func (h *UsersHandler) RemoveFavorite(c *fiber.Ctx) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}
	propertyID, err := paramID(c, "propertyId")
	if err != nil {
		return err
	}
	if err := h.accounts.RemoveFavorite(c.UserContext(), me.ID, propertyID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
