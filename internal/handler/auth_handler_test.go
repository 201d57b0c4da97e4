package handler_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"codezetta/internal/domain"
	"codezetta/internal/dto"
	"codezetta/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Register(t *testing.T) {
	s := newTestServer(t)
	s.auth.RegisterFunc = func(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
		assert.Equal(t, "ada@example.com", req.Email)
		assert.Equal(t, []string{"HTML"}, req.SelectedSubjects)
		return &dto.AuthResponse{AccessToken: "access", RefreshToken: "refresh", User: dto.UserResponse{ID: "u1", Name: req.Name}}, nil
	}

	resp := s.do(t, "POST", "/api/auth/register", map[string]interface{}{
		"name": "Ada", "email": "ada@example.com", "password": "secret1", "selectedSubjects": []string{"HTML"},
	}, "")
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var body dto.AuthResponse
	decode(t, resp, &body)
	assert.Equal(t, "access", body.AccessToken)
	assert.Equal(t, "Ada", body.User.Name)
}

func TestAuthHandler_Register_ValidationFails(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, "POST", "/api/auth/register", map[string]string{"name": "Ada", "email": "not-an-email", "password": "123"}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	var body middleware.ValidationErrorResponse
	decode(t, resp, &body)
	assert.Equal(t, string(domain.ErrValidation), body.Code)
	fields := make([]string, 0, len(body.Errors))
	for _, e := range body.Errors {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"email", "password"}, fields)
}

func TestAuthHandler_Register_MalformedBody(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest("POST", "/api/auth/register", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	s := newTestServer(t)
	s.auth.LoginFunc = func(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
		return nil, domain.NewUnauthorizedError("Invalid credentials")
	}

	resp := s.do(t, "POST", "/api/auth/login", map[string]string{"email": "ada@example.com", "password": "wrong"}, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	var body middleware.ErrorResponse
	decode(t, resp, &body)
	assert.Equal(t, "Invalid credentials", body.Message)
}

func TestAuthHandler_Me(t *testing.T) {
	s := newTestServer(t)
	s.auth.MeFunc = func(ctx context.Context, userID string) (*dto.UserResponse, error) {
		return &dto.UserResponse{ID: userID, Name: "Ada"}, nil
	}

	resp := s.do(t, "GET", "/api/auth/me", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = s.do(t, "GET", "/api/auth/me", nil, studentToken)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body dto.UserResponse
	decode(t, resp, &body)
	assert.Equal(t, testUserID, body.ID)
}

func TestAuthHandler_RefreshAndLogout(t *testing.T) {
	s := newTestServer(t)
	s.auth.RefreshTokenFunc = func(ctx context.Context, token string) (*dto.TokenResponse, error) {
		if token == "expired" {
			return nil, domain.NewUnauthorizedError("Invalid refresh token")
		}
		return &dto.TokenResponse{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil
	}

	resp := s.do(t, "POST", "/api/auth/refresh", map[string]string{"refreshToken": "good"}, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var tokens dto.TokenResponse
	decode(t, resp, &tokens)
	assert.Equal(t, "new-access", tokens.AccessToken)

	resp = s.do(t, "POST", "/api/auth/refresh", map[string]string{"refreshToken": "expired"}, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = s.do(t, "POST", "/api/auth/refresh", map[string]string{}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = s.do(t, "POST", "/api/auth/logout", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthHandler_GoogleLogin_SetsStateCookie(t *testing.T) {
	s := newTestServer(t)
	var gotState string
	s.auth.SocialAuthURLFunc = func(provider, state string) (string, error) {
		assert.Equal(t, domain.ProviderGoogle, provider)
		gotState = state
		return "https://accounts.google.test/auth?state=" + state, nil
	}

	resp := s.do(t, "GET", "/api/auth/google", nil, "")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "https://accounts.google.test/auth?state="+gotState, resp.Header.Get("Location"))

	var cookieState string
	for _, ck := range resp.Cookies() {
		if ck.Name == "oauthstate" {
			cookieState = ck.Value
			assert.True(t, ck.HttpOnly)
		}
	}
	assert.NotEmpty(t, gotState)
	assert.Equal(t, gotState, cookieState)
}

func TestAuthHandler_LinkedInLogin_UnconfiguredProvider(t *testing.T) {
	s := newTestServer(t)
	s.auth.SocialAuthURLFunc = func(provider, state string) (string, error) {
		return "", errors.New("unknown social login provider")
	}

	resp := s.do(t, "GET", "/api/auth/linkedin", nil, "")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "http://frontend.test/auth/login?error=social_login_failed", resp.Header.Get("Location"))
}

func TestAuthHandler_SocialCallback(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		cookie      string
		serviceErr  error
		wantSuccess bool
	}{
		{name: "success", query: "code=abc&state=s1", cookie: "s1", wantSuccess: true},
		{name: "state mismatch", query: "code=abc&state=s1", cookie: "other"},
		{name: "missing cookie", query: "code=abc&state=s1"},
		{name: "missing code", query: "state=s1", cookie: "s1"},
		{name: "provider error", query: "error=access_denied&state=s1", cookie: "s1"},
		{name: "exchange fails", query: "code=abc&state=s1", cookie: "s1", serviceErr: errors.New("exchange failed")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			s.auth.CompleteSocialLoginFunc = func(ctx context.Context, provider, code string) (*dto.AuthResponse, error) {
				assert.Equal(t, domain.ProviderLinkedIn, provider)
				assert.Equal(t, "abc", code)
				if tt.serviceErr != nil {
					return nil, tt.serviceErr
				}
				return &dto.AuthResponse{AccessToken: "jwt-token", User: dto.UserResponse{ID: "u1"}, NewUser: true}, nil
			}

			req := httptest.NewRequest("GET", "/api/auth/linkedin/callback?"+tt.query, nil)
			if tt.cookie != "" {
				req.Header.Set("Cookie", "oauthstate="+tt.cookie)
			}
			resp, err := s.app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusFound, resp.StatusCode)

			loc, err := url.Parse(resp.Header.Get("Location"))
			require.NoError(t, err)
			if tt.wantSuccess {
				assert.Equal(t, "/auth/social/callback", loc.Path)
				assert.Equal(t, "jwt-token", loc.Query().Get("token"))
				assert.Equal(t, "true", loc.Query().Get("newUser"))
				return
			}
			assert.Equal(t, "/auth/login", loc.Path)
			assert.Equal(t, "social_login_failed", loc.Query().Get("error"))
		})
	}
}
