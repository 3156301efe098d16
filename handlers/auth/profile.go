package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/studyabroad/cms-api/handlers"
	"github.com/studyabroad/cms-api/services"
	authutil "github.com/studyabroad/cms-api/utils/auth"
	"github.com/studyabroad/cms-api/utils/middleware"
	"github.com/studyabroad/cms-api/utils/optional"
	"github.com/studyabroad/cms-api/utils/response"
)

// ChangePasswordRequest represents a password change by the signed-in user
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// GetProfile retrieves the current user's profile
func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}
	return response.Success(c, user)
}

// ChangePassword replaces the current user's password after checking the old one
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.OldPassword == "" || req.NewPassword == "" {
		return response.BadRequest(c, "Old password and new password are required")
	}

	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	if err := authutil.VerifyPassword(user.PasswordHash, req.OldPassword); err != nil {
		return response.BadRequest(c, "Current password is incorrect")
	}

	_, err := h.users.UpdateUser(c.UserContext(), user.ID, services.UpdateUserInput{
		Password: optional.Of(req.NewPassword),
	})
	if err != nil {
		return handlers.RespondError(c, err)
	}

	return response.SuccessWithMessage(c, "Password changed successfully", nil)
}
