package middleware

import (
	"errors"
	"strings"

	"github.com/authgate/backend/internal/domain"
	"github.com/authgate/backend/internal/models"
	"github.com/authgate/backend/internal/services"
	"github.com/authgate/backend/internal/stores"
	"github.com/authgate/backend/pkg/logger"
	"github.com/authgate/backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// SessionCookieName is the cookie the session token rides in. A bearer
// Authorization header is accepted as a fallback for non-browser clients.
const SessionCookieName = "jwt"

const currentUserKey = "currentUser"

type AuthMiddleware struct {
	Tokens *services.TokenService
	Users  stores.UserStore
}

func NewAuthMiddleware(tokens *services.TokenService, users stores.UserStore) *AuthMiddleware {
	return &AuthMiddleware{Tokens: tokens, Users: users}
}

func CORS() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3001,http://127.0.0.1:3001",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowCredentials: true,
	})
}

// TokenFromRequest extracts the raw session token, preferring the cookie
// over the Authorization header. Returns "" when neither is present.
func TokenFromRequest(c *fiber.Ctx) string {
	if cookie := c.Cookies(SessionCookieName); cookie != "" {
		return cookie
	}

	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
	if token == authHeader {
		return ""
	}
	return token
}

func (a *AuthMiddleware) RequireAuth(c *fiber.Ctx) error {
	token := TokenFromRequest(c)
	if token == "" {
		logger.Warn("auth_missing_token", map[string]interface{}{
			"ip":   c.IP(),
			"path": c.Path(),
		})
		return utils.Error(c, fiber.StatusUnauthorized, "missing auth token")
	}

	claims, err := a.Tokens.Validate(c.Context(), token)
	if err != nil {
		logger.Warn("auth_invalid_token", map[string]interface{}{
			"ip":   c.IP(),
			"path": c.Path(),
		})
		return utils.Error(c, fiber.StatusUnauthorized, "invalid auth token")
	}

	email, err := domain.ParseEmail(claims.Email)
	if err != nil {
		return utils.Error(c, fiber.StatusUnauthorized, "invalid auth token")
	}

	user, err := a.Users.Get(c.Context(), email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return utils.Error(c, fiber.StatusUnauthorized, "invalid auth token")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "unexpected error")
	}

	c.Locals(currentUserKey, user)
	return c.Next()
}

func GetCurrentUser(c *fiber.Ctx) *models.User {
	value := c.Locals(currentUserKey)
	if value == nil {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}
