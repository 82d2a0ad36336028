package middleware

import (
	"strings"

	"github.com/MagGomedMY/stark-backend/internal/delivery/http/response"
	"github.com/MagGomedMY/stark-backend/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// Context keys under which the authenticated identity is stored for handlers.
const (
	ContextKeyAccountID = "accountID"
	ContextKeyUsername  = "username"
)

// AuthMiddleware guards routes with bearer token authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the Authorization header and stores the decoded
// identity on the request context for downstream handlers.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "MISSING_TOKEN", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || strings.TrimSpace(tokenString) == "" {
			return response.Unauthorized(c, "INVALID_TOKEN_FORMAT", "Authorization header must carry a Bearer token")
		}

		verification := m.tokenSvc.Verify(tokenString)
		if !verification.Valid {
			return response.Unauthorized(c, "INVALID_TOKEN", verification.Reason)
		}

		c.Set(ContextKeyAccountID, verification.Claims.AccountID)
		c.Set(ContextKeyUsername, verification.Claims.Username)

		return next(c)
	}
}
