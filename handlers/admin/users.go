package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/studyabroad/cms-api/handlers"
	"github.com/studyabroad/cms-api/services"
	"github.com/studyabroad/cms-api/utils/middleware"
	"github.com/studyabroad/cms-api/utils/response"
)

// ListUsers retrieves every account, newest first
// GET /admin/users
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.users.GetUsers(c.UserContext())
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return response.Success(c, users)
}

// GetUser retrieves a specific user
// GET /admin/users/:id
func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	user, err := h.users.GetUserByID(c.UserContext(), id)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	if user == nil {
		return response.NotFound(c, "User not found")
	}
	return response.Success(c, user)
}

// CreateUser creates a back-office account
// POST /admin/users
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var req services.CreateUserInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.users.CreateUser(c.UserContext(), req)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return response.Created(c, user)
}

// UpdateUser updates user information
// PATCH /admin/users/:id
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	var req services.UpdateUserInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if self, ok := middleware.GetUserID(c); ok && self == id {
		if active, set := req.IsActive.Get(); set && !active {
			return response.BadRequest(c, "You cannot deactivate your own account")
		}
	}

	user, err := h.users.UpdateUser(c.UserContext(), id, req)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	if user == nil {
		return response.NotFound(c, "User not found")
	}
	return response.SuccessWithMessage(c, "User updated successfully", user)
}

// DeleteUser deactivates a user
// DELETE /admin/users/:id
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	if self, ok := middleware.GetUserID(c); ok && self == id {
		return response.BadRequest(c, "You cannot deactivate your own account")
	}

	deleted, err := h.users.DeleteUser(c.UserContext(), id)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	if !deleted {
		return response.NotFound(c, "User not found")
	}
	return response.SuccessWithMessage(c, "User deactivated successfully", fiber.Map{"id": id})
}
