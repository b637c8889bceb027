package handlers

import (
	"errors"
	"time"

	"github.com/authgate/backend/internal/domain"
	"github.com/authgate/backend/internal/middleware"
	"github.com/authgate/backend/internal/services"
	"github.com/authgate/backend/pkg/logger"
	"github.com/authgate/backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Auth   *services.AuthService
	Tokens *services.TokenService
}

func NewAuthHandler(auth *services.AuthService, tokens *services.TokenService) *AuthHandler {
	return &AuthHandler{Auth: auth, Tokens: tokens}
}

type signupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Requires2FA bool   `json:"requires2FA"`
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusUnprocessableEntity, "invalid request body")
	}

	if err := h.Auth.Signup(c.Context(), req.Email, req.Password, req.Requires2FA); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserExists):
			return utils.Error(c, fiber.StatusConflict, "user already exists")
		case errors.Is(err, domain.ErrInvalidCredentials):
			return utils.Error(c, fiber.StatusBadRequest, "invalid credentials")
		default:
			return utils.Error(c, fiber.StatusInternalServerError, "unexpected error")
		}
	}

	logger.Info("user_registered", map[string]interface{}{
		"requires_2fa": req.Requires2FA,
	})

	return utils.Success(c, fiber.StatusCreated, fiber.Map{"message": "user created"})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusUnprocessableEntity, "invalid request body")
	}

	result, err := h.Auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			return utils.Error(c, fiber.StatusBadRequest, "invalid credentials")
		case errors.Is(err, domain.ErrIncorrectCredentials):
			return utils.Error(c, fiber.StatusUnauthorized, "incorrect credentials")
		default:
			return utils.Error(c, fiber.StatusInternalServerError, "unexpected error")
		}
	}

	if result.TwoFactorRequired {
		logger.Info("login_challenge_issued", map[string]interface{}{
			"ip": c.IP(),
		})
		return utils.Success(c, fiber.StatusPartialContent, fiber.Map{
			"message":     "2FA required",
			"challengeId": result.ChallengeID,
		})
	}

	logger.Info("user_logged_in", map[string]interface{}{
		"ip": c.IP(),
	})
	setSessionCookie(c, result.Token)
	return utils.Success(c, fiber.StatusOK, fiber.Map{"token": result.Token})
}

type verify2FARequest struct {
	Email       string `json:"email"`
	ChallengeID string `json:"challengeId"`
	Code        string `json:"code"`
}

func (h *AuthHandler) Verify2FA(c *fiber.Ctx) error {
	var req verify2FARequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusUnprocessableEntity, "invalid request body")
	}

	token, err := h.Auth.VerifyChallenge(c.Context(), req.Email, req.ChallengeID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			return utils.Error(c, fiber.StatusBadRequest, "invalid credentials")
		case errors.Is(err, domain.ErrIncorrectCredentials):
			return utils.Error(c, fiber.StatusUnauthorized, "incorrect credentials")
		default:
			return utils.Error(c, fiber.StatusInternalServerError, "unexpected error")
		}
	}

	logger.Info("user_logged_in", map[string]interface{}{
		"ip":     c.IP(),
		"method": "2fa",
	})
	setSessionCookie(c, token)
	return utils.Success(c, fiber.StatusOK, fiber.Map{"token": token})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token := middleware.TokenFromRequest(c)

	if err := h.Auth.Logout(c.Context(), token); err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingToken):
			return utils.Error(c, fiber.StatusBadRequest, "missing auth token")
		case errors.Is(err, domain.ErrInvalidToken):
			return utils.Error(c, fiber.StatusUnauthorized, "invalid auth token")
		default:
			return utils.Error(c, fiber.StatusInternalServerError, "unexpected error")
		}
	}

	logger.Info("user_logged_out", map[string]interface{}{
		"ip": c.IP(),
	})
	clearSessionCookie(c)
	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "logged out"})
}

type verifyTokenRequest struct {
	Token string `json:"token"`
}

func (h *AuthHandler) VerifyToken(c *fiber.Ctx) error {
	var req verifyTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusUnprocessableEntity, "invalid request body")
	}
	if req.Token == "" {
		return utils.Error(c, fiber.StatusBadRequest, "missing auth token")
	}

	claims, err := h.Tokens.Validate(c.Context(), req.Token)
	if err != nil {
		return utils.Error(c, fiber.StatusUnauthorized, "invalid auth token")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"email": claims.Email})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return utils.Success(c, fiber.StatusOK, user)
}

func setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-1 * time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
