package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/studyabroad/cms-api/handlers"
	"github.com/studyabroad/cms-api/model"
	"github.com/studyabroad/cms-api/utils/response"
)

// LoginRequest represents a user login request
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents a successful login response
type LoginResponse struct {
	User        *model.User `json:"user"`
	AccessToken string      `json:"access_token"`
	ExpiresIn   int         `json:"expires_in"` // in seconds
}

// Login handles user login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return response.BadRequest(c, "Username and password are required")
	}

	ctx := c.UserContext()
	ip := c.IP()

	user, err := h.users.ValidateUserCredentials(ctx, req.Username, req.Password)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	if user == nil {
		if h.bruteForceProtection != nil {
			_ = h.bruteForceProtection.RecordFailedAttempt(c, ip, req.Username)
		}
		return response.Unauthorized(c, "Invalid username or password")
	}

	if h.bruteForceProtection != nil {
		_ = h.bruteForceProtection.RecordSuccessfulAttempt(c, ip)
	}

	accessToken, _, err := h.jwtManager.GenerateAccessToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return response.InternalServerError(c, "Failed to generate access token")
	}

	if err := h.users.UpdateUserLastLogin(ctx, user.ID); err != nil {
		// The token is already valid; a missed stamp must not block sign-in.
		log.Warn().Err(err).Uint("user_id", user.ID).Msg("failed to stamp last login")
	}

	log.Info().Uint("user_id", user.ID).Str("ip", ip).Msg("user logged in")

	return response.Success(c, LoginResponse{
		User:        user,
		AccessToken: accessToken,
		ExpiresIn:   int(h.jwtManager.Expiry().Seconds()),
	})
}
