package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"codezetta/internal/config"
	"codezetta/internal/dto"
	"codezetta/internal/handler"
	"codezetta/internal/middleware"
	"codezetta/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

const (
	studentToken = "student-token"
	adminToken   = "admin-token"
	testUserID   = "01HZSTUDENT"
	testAdminID  = "01HZADMIN"
)

var testFrontend = config.FrontendConfig{
	BaseURL:         "http://frontend.test",
	SuccessRedirect: "http://frontend.test/auth/social/callback",
	FailureRedirect: "http://frontend.test/auth/login",
}

type testServer struct {
	app     *fiber.App
	auth    *MockAuthService
	user    *MockUserService
	subject *MockSubjectService
	quiz    *MockQuizService
	attempt *MockAttemptService
	session *MockSessionService
	share   *MockShareService
	ai      *MockAIQuizService
	healthy map[string]error
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	s := &testServer{
		auth:    &MockAuthService{},
		user:    &MockUserService{},
		subject: &MockSubjectService{},
		quiz:    &MockQuizService{},
		attempt: &MockAttemptService{},
		session: &MockSessionService{},
		share:   &MockShareService{},
		ai:      &MockAIQuizService{},
		healthy: map[string]error{},
	}
	s.auth.ValidateJWTFunc = func(ctx context.Context, token string) (*dto.AuthClaims, error) {
		switch token {
		case studentToken:
			return &dto.AuthClaims{UserID: testUserID, Role: "student", TokenType: "access"}, nil
		case adminToken:
			return &dto.AuthClaims{UserID: testAdminID, Role: "admin", TokenType: "access"}, nil
		}
		return nil, errors.New("invalid token")
	}

	v := validation.NewValidator()
	checks := map[string]handler.Pinger{
		"database": handler.PingFunc(func(ctx context.Context) error { return s.healthy["database"] }),
		"redis":    handler.PingFunc(func(ctx context.Context) error { return s.healthy["redis"] }),
	}
	h := handler.Handlers{
		Auth:    handler.NewAuthHandler(s.auth, v, testFrontend),
		User:    handler.NewUserHandler(s.user, v),
		Subject: handler.NewSubjectHandler(s.subject, v),
		Quiz:    handler.NewQuizHandler(s.quiz, s.attempt, s.session, v),
		Share:   handler.NewShareHandler(s.share, v, testFrontend.BaseURL),
		AI:      handler.NewAIHandler(s.ai, v),
		Health:  handler.NewHealthHandler(checks),
	}

	s.app = fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	handler.RegisterRoutes(s.app.Group("/api"), h, middleware.Protected(s.auth), handler.RouteLimits{})
	return s
}

// do sends a request with an optional JSON body and bearer token.
func (s *testServer) do(t *testing.T, method, path string, body interface{}, token string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}
