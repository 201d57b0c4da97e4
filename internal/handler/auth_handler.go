package handler

import (
	"net/url"
	"strconv"
	"time"

	"codezetta/internal/config"
	"codezetta/internal/domain"
	"codezetta/internal/dto"
	"codezetta/internal/logger"
	"codezetta/internal/middleware"
	"codezetta/internal/service"
	"codezetta/internal/util"
	"codezetta/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	oauthStateCookieName = "oauthstate"
	oauthStateTTL        = 10 * time.Minute
	socialLoginFailed    = "social_login_failed"
)

type AuthHandler struct {
	authService service.AuthService
	validator   *validation.Validator
	frontend    config.FrontendConfig
}

func NewAuthHandler(authService service.AuthService, validator *validation.Validator, frontend config.FrontendConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator,
		frontend:    frontend,
	}
}

// Register creates a local account.
// @Summary Register
// @Description Creates a student account with email and password and signs it in.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "Account details"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid input or email already in use"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}
	resp, err := h.authService.Register(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login signs in with email and password.
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} middleware.ErrorResponse "Invalid credentials"
// @Failure 429 {object} middleware.ErrorResponse "Too many attempts"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}
	resp, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Me returns the signed-in user.
// @Summary Current user
// @Tags auth
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	user, err := h.authService.Me(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// RefreshToken generates new access and refresh tokens using a valid refresh token.
// @Summary Refresh JWT tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} middleware.ErrorResponse "Refresh token missing"
// @Failure 401 {object} middleware.ErrorResponse "Refresh token invalid or expired"
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}
	tokens, err := h.authService.RefreshToken(c.UserContext(), req.RefreshToken)
	if err != nil {
		return err
	}
	return c.JSON(tokens)
}

// Logout handles user logout. Tokens are stateless, so the client discards them.
// @Summary Logout user
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if userID := middleware.CurrentUserID(c); userID != "" {
		logger.Get().Info("User logout request", zap.String("userID", userID))
	}
	return c.JSON(dto.MessageResponse{Message: "Logged out successfully"})
}

// GoogleLogin initiates the Google OAuth2 login flow.
// @Summary Initiate Google Login
// @Tags auth
// @Success 302 {string} string "Redirects to Google"
// @Router /auth/google [get]
func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	return h.beginSocialLogin(c, domain.ProviderGoogle)
}

// GoogleCallback handles the callback from Google OAuth2.
// @Summary Google OAuth2 Callback
// @Description Signs the user in and redirects to the frontend with the access token.
// @Tags auth
// @Param code query string true "Authorization code from Google"
// @Param state query string true "State string for CSRF protection"
// @Success 302 {string} string "Redirects to the frontend"
// @Router /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	return h.finishSocialLogin(c, domain.ProviderGoogle)
}

// LinkedInLogin initiates the LinkedIn OpenID Connect login flow.
// @Summary Initiate LinkedIn Login
// @Tags auth
// @Success 302 {string} string "Redirects to LinkedIn"
// @Router /auth/linkedin [get]
func (h *AuthHandler) LinkedInLogin(c *fiber.Ctx) error {
	return h.beginSocialLogin(c, domain.ProviderLinkedIn)
}

// LinkedInCallback handles the callback from LinkedIn.
// @Summary LinkedIn Callback
// @Tags auth
// @Param code query string true "Authorization code from LinkedIn"
// @Param state query string true "State string for CSRF protection"
// @Success 302 {string} string "Redirects to the frontend"
// @Router /auth/linkedin/callback [get]
func (h *AuthHandler) LinkedInCallback(c *fiber.Ctx) error {
	return h.finishSocialLogin(c, domain.ProviderLinkedIn)
}

func (h *AuthHandler) beginSocialLogin(c *fiber.Ctx, provider string) error {
	appLogger := logger.Get()
	state, err := util.RandomURLSafe(32)
	if err != nil {
		appLogger.Error("Failed to generate random state for OAuth", zap.Error(err))
		return domain.NewInternalError("Could not generate state for OAuth flow", err)
	}

	loginURL, err := h.authService.SocialAuthURL(provider, state)
	if err != nil {
		appLogger.Warn("Social login requested for unavailable provider", zap.String("provider", provider), zap.Error(err))
		return c.Redirect(h.failureURL(), fiber.StatusFound)
	}

	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookieName,
		Value:    state,
		Expires:  time.Now().Add(oauthStateTTL),
		HTTPOnly: true,
		Secure:   c.Secure(),
		SameSite: "Lax",
		Path:     "/",
	})
	appLogger.Info("Social login process initiated", zap.String("provider", provider))
	return c.Redirect(loginURL, fiber.StatusFound)
}

// finishSocialLogin never renders an error body; every failure redirects to
// the frontend failure page.
func (h *AuthHandler) finishSocialLogin(c *fiber.Ctx, provider string) error {
	appLogger := logger.Get()
	code := c.Query("code")
	receivedState := c.Query("state")
	expectedState := c.Cookies(oauthStateCookieName)

	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   c.Secure(),
		SameSite: "Lax",
		Path:     "/",
	})

	if errParam := c.Query("error"); errParam != "" {
		appLogger.Warn("Provider returned an error", zap.String("provider", provider), zap.String("error", errParam))
		return c.Redirect(h.failureURL(), fiber.StatusFound)
	}
	if code == "" {
		appLogger.Warn("Authorization code missing in OAuth callback", zap.String("provider", provider))
		return c.Redirect(h.failureURL(), fiber.StatusFound)
	}
	if receivedState == "" || expectedState == "" || receivedState != expectedState {
		appLogger.Warn("OAuth state mismatch", zap.String("provider", provider))
		return c.Redirect(h.failureURL(), fiber.StatusFound)
	}

	resp, err := h.authService.CompleteSocialLogin(c.UserContext(), provider, code)
	if err != nil {
		appLogger.Error("Failed to complete social login", zap.String("provider", provider), zap.Error(err))
		return c.Redirect(h.failureURL(), fiber.StatusFound)
	}

	appLogger.Info("Social login successful", zap.String("provider", provider), zap.String("userID", resp.User.ID), zap.Bool("newUser", resp.NewUser))
	q := url.Values{}
	q.Set("token", resp.AccessToken)
	q.Set("newUser", strconv.FormatBool(resp.NewUser))
	return c.Redirect(withQuery(h.frontend.SuccessRedirect, q), fiber.StatusFound)
}

func (h *AuthHandler) failureURL() string {
	q := url.Values{}
	q.Set("error", socialLoginFailed)
	return withQuery(h.frontend.FailureRedirect, q)
}

func withQuery(base string, q url.Values) string {
	u, err := url.Parse(base)
	if err != nil {
		return base + "?" + q.Encode()
	}
	existing := u.Query()
	for k, vs := range q {
		for _, v := range vs {
			existing.Add(k, v)
		}
	}
	u.RawQuery = existing.Encode()
	return u.String()
}
