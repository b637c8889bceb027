package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/authgate/backend/internal/domain"
	"github.com/authgate/backend/internal/middleware"
	"github.com/authgate/backend/internal/services"
	"github.com/authgate/backend/internal/stores"
	"github.com/authgate/backend/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

var testSetupOnce sync.Once

type capturingEmailClient struct {
	mu     sync.Mutex
	bodies []string
}

func (c *capturingEmailClient) Send(ctx context.Context, recipient domain.Email, subject, body string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bodies = append(c.bodies, body)
	return nil
}

// lastCode returns the one-time code from the most recent delivery.
func (c *capturingEmailClient) lastCode(t *testing.T) string {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.bodies) == 0 {
		t.Fatal("expected at least one delivered email")
	}
	fields := strings.Fields(c.bodies[len(c.bodies)-1])
	return fields[len(fields)-1]
}

type testEnv struct {
	app        *fiber.App
	tokens     *services.TokenService
	challenges stores.ChallengeStore
	email      *capturingEmailClient
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	testSetupOnce.Do(func() {
		logger.Init()
	})

	userStore := stores.NewMemoryUserStore()
	bannedStore := stores.NewMemoryBannedTokenStore()
	challengeStore := stores.NewMemoryChallengeStore()
	email := &capturingEmailClient{}

	tokenService := services.NewTokenService("test-secret", 10*time.Minute, bannedStore)
	authService := services.NewAuthService(userStore, challengeStore, tokenService, email)
	authHandler := NewAuthHandler(authService, tokenService)
	authMiddleware := middleware.NewAuthMiddleware(tokenService, userStore)

	app := fiber.New()
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(middleware.CORS())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.Post("/signup", authHandler.Signup)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/verify-2fa", authHandler.Verify2FA)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Post("/verify-token", authHandler.VerifyToken)
	authRoutes.Get("/me", authMiddleware.RequireAuth, authHandler.Me)

	return &testEnv{
		app:        app,
		tokens:     tokenService,
		challenges: challengeStore,
		email:      email,
	}
}

func performRequest(t *testing.T, app *fiber.App, method, path string, body io.Reader, headers map[string]string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := app.Test(req, int((10 * time.Second).Milliseconds()))
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}

	return resp
}

func performJSONRequest(t *testing.T, app *fiber.App, method, path string, payload any, headers map[string]string) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	requestHeaders := map[string]string{}
	for key, value := range headers {
		requestHeaders[key] = value
	}
	if payload != nil {
		requestHeaders["Content-Type"] = "application/json"
	}

	return performRequest(t, app, method, path, body, requestHeaders)
}

func decodeJSONMap(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed reading response body: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("failed decoding JSON response: %v body=%q", err, string(raw))
	}

	return payload
}

func assertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Fatalf("expected status %d, got %d", expected, resp.StatusCode)
	}
}

func assertEnvelopeError(t *testing.T, body map[string]any, expected string) {
	t.Helper()
	if success, _ := body["success"].(bool); success {
		t.Fatalf("expected success=false, got %+v", body)
	}
	if got, _ := body["error"].(string); got != expected {
		t.Fatalf("expected error %q, got %q", expected, got)
	}
}

func signupUser(t *testing.T, env *testEnv, email, password string, requires2FA bool) {
	t.Helper()

	resp := performJSONRequest(t, env.app, http.MethodPost, "/api/auth/signup", map[string]any{
		"email":       email,
		"password":    password,
		"requires2FA": requires2FA,
	}, nil)
	assertStatus(t, resp, http.StatusCreated)
}

// loginUser signs in an account without a second factor and returns the
// session token.
func loginUser(t *testing.T, env *testEnv, email, password string) string {
	t.Helper()

	resp := performJSONRequest(t, env.app, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    email,
		"password": password,
	}, nil)
	assertStatus(t, resp, http.StatusOK)

	body := decodeJSONMap(t, resp)
	data := body["data"].(map[string]any)
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatal("expected a session token in the login response")
	}
	return token
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, cookie := range resp.Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			return cookie
		}
	}
	return nil
}
