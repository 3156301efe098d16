package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/studyabroad/cms-api/model"
	"github.com/studyabroad/cms-api/utils/auth"
	"github.com/studyabroad/cms-api/utils/response"
	"gorm.io/gorm"
)

// AuthMiddleware handles JWT authentication for the admin surface
type AuthMiddleware struct {
	jwtManager *auth.JWTManager
	db         *gorm.DB
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(jwtManager *auth.JWTManager, db *gorm.DB) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		db:         db,
	}
}

var (
	errMissingToken  = errors.New("missing authorization token")
	errBadAuthHeader = errors.New("invalid authorization format")
	errUserInactive  = errors.New("account is disabled")
)

// authenticate resolves the bearer token into claims and a live, active user.
func (m *AuthMiddleware) authenticate(c *fiber.Ctx) (*auth.Claims, *model.User, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, nil, errMissingToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, nil, errBadAuthHeader
	}

	claims, err := m.jwtManager.ValidateToken(parts[1])
	if err != nil {
		return nil, nil, err
	}

	var user model.User
	if err := m.db.WithContext(c.UserContext()).First(&user, claims.UserID).Error; err != nil {
		return nil, nil, err
	}
	if !user.IsActive {
		return nil, nil, errUserInactive
	}

	return claims, &user, nil
}

func storeIdentity(c *fiber.Ctx, claims *auth.Claims, user *model.User) {
	c.Locals("user_id", user.ID)
	c.Locals("username", user.Username)
	c.Locals("user_role", user.Role)
	c.Locals("claims", claims)
	c.Locals("user", user)
	c.Locals("token_jti", claims.ID)
}

// Required is middleware that requires a valid JWT token belonging to an active user
func (m *AuthMiddleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, user, err := m.authenticate(c)
		if err != nil {
			switch {
			case errors.Is(err, errMissingToken):
				return response.Unauthorized(c, "Missing authorization token")
			case errors.Is(err, errBadAuthHeader):
				return response.Unauthorized(c, "Invalid authorization format")
			case errors.Is(err, auth.ErrExpiredToken):
				return response.Unauthorized(c, "Token has expired")
			case errors.Is(err, gorm.ErrRecordNotFound):
				return response.Unauthorized(c, "User not found")
			case errors.Is(err, errUserInactive):
				return response.Unauthorized(c, "Account is disabled")
			case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrInvalidClaims):
				return response.Unauthorized(c, "Invalid token")
			default:
				return response.InternalServerError(c, "Failed to load user")
			}
		}

		storeIdentity(c, claims, user)
		return c.Next()
	}
}

// Optional is middleware that allows requests with or without a token
func (m *AuthMiddleware) Optional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, user, err := m.authenticate(c)
		if err == nil {
			storeIdentity(c, claims, user)
		}
		return c.Next()
	}
}

// RequireRole is middleware that requires one of the given roles. It must run after Required.
func (m *AuthMiddleware) RequireRole(roles ...model.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := GetUserRole(c)
		if !ok {
			return response.Forbidden(c, "Access denied")
		}

		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}

		return response.Forbidden(c, "Insufficient permissions")
	}
}

// RequireAdmin is middleware that requires the ADMIN role
func (m *AuthMiddleware) RequireAdmin() fiber.Handler {
	return m.RequireRole(model.RoleAdmin)
}

// GetUserID extracts user ID from context
func GetUserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals("user_id").(uint)
	return id, ok
}

// GetUsername extracts the username from context
func GetUsername(c *fiber.Ctx) (string, bool) {
	name, ok := c.Locals("username").(string)
	return name, ok
}

// GetUserRole extracts user role from context
func GetUserRole(c *fiber.Ctx) (model.UserRole, bool) {
	role, ok := c.Locals("user_role").(model.UserRole)
	return role, ok
}

// GetUser extracts full user object from context
func GetUser(c *fiber.Ctx) (*model.User, bool) {
	u, ok := c.Locals("user").(*model.User)
	return u, ok
}

// GetClaims extracts full claims from context
func GetClaims(c *fiber.Ctx) (*auth.Claims, bool) {
	claims, ok := c.Locals("claims").(*auth.Claims)
	return claims, ok
}

// GetTokenJTI extracts the token JTI from context
func GetTokenJTI(c *fiber.Ctx) (string, bool) {
	jti, ok := c.Locals("token_jti").(string)
	return jti, ok
}
