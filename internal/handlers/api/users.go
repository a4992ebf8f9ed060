package api

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"airvoice/internal/db"
	"airvoice/internal/models"
)

// UserHandler handles user administration.
type UserHandler struct {
	db *db.DB
}

// NewUserHandler creates a new user handler.
func NewUserHandler(database *db.DB) *UserHandler {
	return &UserHandler{db: database}
}

// List returns all users.
func (h *UserHandler) List(c fiber.Ctx) error {
	users, err := h.db.GetAllUsers(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to list users")
	}
	if users == nil {
		users = []models.User{}
	}
	return jsonSuccess(c, users)
}

// UpdateRole changes a user's role.
func (h *UserHandler) UpdateRole(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid user id")
	}

	var body struct {
		Role string `json:"role"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	switch body.Role {
	case models.RoleAgent, models.RoleSupervisor, models.RoleAdmin:
	default:
		return jsonError(c, fiber.StatusBadRequest, "invalid role")
	}

	if _, err := h.db.GetUserByID(c.Context(), id); err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			return jsonError(c, fiber.StatusNotFound, "user not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch user")
	}

	if err := h.db.UpdateUserRole(c.Context(), id, body.Role); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to update role")
	}
	return jsonSuccess(c, fiber.Map{"id": id, "role": body.Role})
}

// Delete removes a user.
func (h *UserHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid user id")
	}

	me, ok := c.Locals("user").(*models.User)
	if ok && me.ID == id {
		return jsonError(c, fiber.StatusBadRequest, "cannot delete your own account")
	}

	if err := h.db.DeleteUser(c.Context(), id); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to delete user")
	}
	return jsonSuccess(c, fiber.Map{"deleted": id})
}
