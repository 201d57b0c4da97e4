package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"codezetta/internal/domain"
	"codezetta/internal/dto"
	"codezetta/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockTokenValidator struct {
	ValidateJWTFunc func(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

func (m *mockTokenValidator) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	if m.ValidateJWTFunc != nil {
		return m.ValidateJWTFunc(ctx, tokenString)
	}
	return nil, errors.New("ValidateJWTFunc not set on mock")
}

func newTestApp(validator middleware.TokenValidator, extra ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	handlers := append([]fiber.Handler{middleware.Protected(validator)}, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"userId": middleware.CurrentUserID(c),
			"role":   c.Locals(middleware.RoleKey),
		})
	})
	app.Get("/protected", handlers...)
	return app
}

func TestProtected(t *testing.T) {
	validToken := func(ctx context.Context, token string) (*dto.AuthClaims, error) {
		switch token {
		case "good":
			return &dto.AuthClaims{UserID: "user-1", Role: "student", TokenType: "access"}, nil
		case "refresh":
			return &dto.AuthClaims{UserID: "user-1", Role: "student", TokenType: "refresh"}, nil
		default:
			return nil, errors.New("token is malformed")
		}
	}

	tests := []struct {
		name         string
		authHeader   string
		expectedCode int
		expectedErr  string
	}{
		{name: "missing header", authHeader: "", expectedCode: fiber.StatusUnauthorized, expectedErr: "MISSING_AUTH_HEADER"},
		{name: "wrong scheme", authHeader: "Basic abc", expectedCode: fiber.StatusUnauthorized, expectedErr: "INVALID_AUTH_SCHEME"},
		{name: "empty token", authHeader: "Bearer    ", expectedCode: fiber.StatusUnauthorized, expectedErr: "EMPTY_TOKEN"},
		{name: "invalid token", authHeader: "Bearer nope", expectedCode: fiber.StatusUnauthorized, expectedErr: "INVALID_TOKEN"},
		{name: "refresh token rejected", authHeader: "Bearer refresh", expectedCode: fiber.StatusUnauthorized, expectedErr: "INVALID_TOKEN_TYPE"},
		{name: "valid access token", authHeader: "Bearer good", expectedCode: fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(&mockTokenValidator{ValidateJWTFunc: validToken})

			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedCode, resp.StatusCode)
			if tt.expectedErr != "" {
				var body middleware.ErrorResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, tt.expectedErr, body.Code)
				return
			}
			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, "user-1", body["userId"])
			assert.Equal(t, "student", body["role"])
		})
	}
}

func TestRequireRole(t *testing.T) {
	validator := &mockTokenValidator{ValidateJWTFunc: func(ctx context.Context, token string) (*dto.AuthClaims, error) {
		return &dto.AuthClaims{UserID: "user-1", Role: token, TokenType: "access"}, nil
	}}
	app := newTestApp(validator, middleware.RequireRole(domain.RoleAdmin))

	t.Run("student is forbidden", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer student")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		var body middleware.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, string(domain.ErrForbidden), body.Code)
		assert.Equal(t, "Insufficient role", body.Message)
	})

	t.Run("admin passes", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer admin")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Get("/not-found", func(c *fiber.Ctx) error { return domain.NewNotFoundError("Quiz not found") })
	app.Get("/conflict", func(c *fiber.Ctx) error { return domain.NewConflictError("Subject already exists") })
	app.Get("/invalid", func(c *fiber.Ctx) error {
		return domain.ValidationErrors{domain.NewFieldError("email", "email", "email must be a valid email address")}
	})
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("db down") })

	tests := []struct {
		path   string
		status int
		code   string
	}{
		{"/not-found", fiber.StatusNotFound, "NOT_FOUND"},
		{"/conflict", fiber.StatusConflict, "CONFLICT"},
		{"/invalid", fiber.StatusBadRequest, "VALIDATION_ERROR"},
		{"/boom", fiber.StatusInternalServerError, "INTERNAL_ERROR"},
		{"/missing-route", fiber.StatusNotFound, "HTTP_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.status, resp.StatusCode)
			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.code, body["code"])
		})
	}
}

func TestRateLimiter(t *testing.T) {
	app := fiber.New()
	app.Get("/limited", middleware.RateLimiter(2, time.Minute, "slow down"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/limited", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/limited", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	var body middleware.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "TOO_MANY_REQUESTS", body.Code)
	assert.Equal(t, "slow down", body.Message)
}
