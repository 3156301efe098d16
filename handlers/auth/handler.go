package auth

import (
	"github.com/studyabroad/cms-api/services"
	authutil "github.com/studyabroad/cms-api/utils/auth"
	"github.com/studyabroad/cms-api/utils/middleware"
)

// AuthHandler handles sign-in and the signed-in user's own account
type AuthHandler struct {
	users                *services.UserService
	jwtManager           *authutil.JWTManager
	bruteForceProtection *middleware.BruteForceProtection
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(users *services.UserService, jwtManager *authutil.JWTManager, bruteForceProtection *middleware.BruteForceProtection) *AuthHandler {
	return &AuthHandler{
		users:                users,
		jwtManager:           jwtManager,
		bruteForceProtection: bruteForceProtection,
	}
}
