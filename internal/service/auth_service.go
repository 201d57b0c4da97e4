package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"codezetta/internal/config"
	"codezetta/internal/domain"
	"codezetta/internal/dto"
	"codezetta/internal/logger"
	"codezetta/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	maxUserNameLength = 100
)

var (
	ErrInvalidJWTToken     = errors.New("invalid jwt token")
	ErrUnknownProvider     = errors.New("unknown social login provider")
	errSocialAccountExists = errors.New("social account created concurrently")
)

// AuthService defines the interface for authentication operations.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Me(ctx context.Context, userID string) (*dto.UserResponse, error)
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	CreateJWT(ctx context.Context, user *domain.User, ttl time.Duration, tokenType string) (string, error)
	RefreshToken(ctx context.Context, refreshTokenString string) (*dto.TokenResponse, error)
	// SocialAuthURL returns the provider consent page URL carrying state.
	SocialAuthURL(provider, state string) (string, error)
	// CompleteSocialLogin exchanges code with the provider and signs the
	// resulting identity in.
	CompleteSocialLogin(ctx context.Context, provider, code string) (*dto.AuthResponse, error)
	// SocialLogin resolves a provider identity to a local user, linking or
	// creating one as needed.
	SocialLogin(ctx context.Context, profile *domain.SocialProfile) (*dto.AuthResponse, error)
}

type authServiceImpl struct {
	userRepo   domain.UserRepository
	socialRepo domain.SocialAccountRepository
	txManager  domain.TransactionManager
	jwtCfg     config.JWTConfig
	authCfg    config.AuthConfig
	providers  map[string]domain.SocialAuthProvider
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(
	userRepo domain.UserRepository,
	socialRepo domain.SocialAccountRepository,
	txManager domain.TransactionManager,
	jwtCfg config.JWTConfig,
	authCfg config.AuthConfig,
	providers ...domain.SocialAuthProvider,
) (AuthService, error) {
	if jwtCfg.SecretKey == "" {
		return nil, errors.New("jwt secret key is not configured")
	}
	if authCfg.BcryptCost == 0 {
		authCfg.BcryptCost = bcrypt.DefaultCost
	}
	byName := make(map[string]domain.SocialAuthProvider, len(providers))
	for _, p := range providers {
		byName[p.Name()] = p
	}
	logger.Get().Info("Social login account linking policy",
		zap.Bool("link_social_by_email", authCfg.LinkSocialByEmail))
	return &authServiceImpl{
		userRepo:   userRepo,
		socialRepo: socialRepo,
		txManager:  txManager,
		jwtCfg:     jwtCfg,
		authCfg:    authCfg,
		providers:  byName,
	}, nil
}

func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, domain.NewInternalError("Failed to look up user", err)
	}
	if existing != nil {
		return nil, domain.NewBadRequestError("Email already in use")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.authCfg.BcryptCost)
	if err != nil {
		return nil, domain.NewInternalError("Failed to hash password", err)
	}

	subjects := req.SelectedSubjects
	if subjects == nil {
		subjects = []string{}
	}
	now := time.Now()
	user := &domain.User{
		ID:               util.NewULID(),
		Name:             req.Name,
		Email:            req.Email,
		PasswordHash:     string(hash),
		Role:             domain.RoleStudent,
		SelectedSubjects: subjects,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, domain.NewBadRequestError("Email already in use")
		}
		return nil, domain.NewInternalError("Failed to create user", err)
	}
	logger.Get().Info("User registered", zap.String("userID", user.ID))
	return s.buildAuthResponse(ctx, user, false, true)
}

func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, domain.NewInternalError("Failed to look up user", err)
	}
	// Social-only accounts have no password and fail the same way.
	if user == nil || !user.HasPassword() {
		return nil, domain.NewUnauthorizedError("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.NewUnauthorizedError("Invalid credentials")
	}
	return s.buildAuthResponse(ctx, user, false, true)
}

func (s *authServiceImpl) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get user", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError("User not found")
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *authServiceImpl) CreateJWT(ctx context.Context, user *domain.User, ttl time.Duration, tokenType string) (string, error) {
	now := time.Now()
	claims := dto.AuthClaims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      string(user.Role),
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   user.ID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtCfg.SecretKey))
}

func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtCfg.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			logger.Get().Debug("JWT token expired", zap.Error(err))
		} else {
			logger.Get().Warn("JWT validation failed", zap.Error(err))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	claims, ok := token.Claims.(*dto.AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidJWTToken
	}
	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}
	return claims, nil
}

func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshTokenString string) (*dto.TokenResponse, error) {
	claims, err := s.ValidateJWT(ctx, refreshTokenString)
	if err != nil {
		return nil, domain.NewError(domain.ErrUnauthorized, "Invalid refresh token", err)
	}
	if claims.TokenType != tokenTypeRefresh {
		return nil, domain.NewUnauthorizedError("Not a refresh token")
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get user", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError("User not found")
	}

	pair, err := s.issueTokens(ctx, user, true)
	if err != nil {
		return nil, err
	}
	logger.Get().Info("JWT token refreshed", zap.String("userID", user.ID))
	return pair, nil
}

func (s *authServiceImpl) SocialAuthURL(provider, state string) (string, error) {
	p, ok := s.providers[provider]
	if !ok {
		return "", ErrUnknownProvider
	}
	return p.AuthCodeURL(state), nil
}

func (s *authServiceImpl) CompleteSocialLogin(ctx context.Context, provider, code string) (*dto.AuthResponse, error) {
	p, ok := s.providers[provider]
	if !ok {
		return nil, ErrUnknownProvider
	}
	profile, err := p.FetchProfile(ctx, code)
	if err != nil {
		return nil, err
	}
	return s.SocialLogin(ctx, profile)
}

func (s *authServiceImpl) SocialLogin(ctx context.Context, profile *domain.SocialProfile) (*dto.AuthResponse, error) {
	l := logger.Get().With(zap.String("provider", profile.Provider), zap.String("providerUserID", profile.ProviderUserID))

	user, err := s.linkedUser(ctx, profile)
	if err != nil {
		return nil, err
	}

	if user == nil && profile.Email != "" && s.authCfg.LinkSocialByEmail {
		user, err = s.userRepo.GetByEmail(ctx, profile.Email)
		if err != nil {
			return nil, domain.NewInternalError("Failed to look up user", err)
		}
		if user != nil {
			if err := s.socialRepo.Create(ctx, newSocialAccount(user.ID, profile)); err != nil && !errors.Is(err, domain.ErrDuplicateKey) {
				return nil, domain.NewInternalError("Failed to link social account", err)
			}
			l.Info("Linked social account to existing user by email match",
				zap.String("userID", user.ID), zap.Bool("link_social_by_email", true))
		}
	}

	if user == nil {
		created, err := s.createSocialUser(ctx, profile)
		if errors.Is(err, errSocialAccountExists) {
			// Another request linked this identity first; use its user.
			user, err = s.linkedUser(ctx, profile)
			if err == nil && user == nil {
				err = domain.NewBadRequestError("Failed to create or retrieve user")
			}
			if err != nil {
				return nil, err
			}
			return s.returningUser(ctx, user, profile)
		}
		if err != nil {
			return nil, err
		}
		l.Info("New user created via social login", zap.String("userID", created.ID))
		return s.buildAuthResponse(ctx, created, true, false)
	}

	return s.returningUser(ctx, user, profile)
}

// linkedUser returns the user behind an existing social account. An account
// pointing at a missing user is deleted and reported as no match.
func (s *authServiceImpl) linkedUser(ctx context.Context, profile *domain.SocialProfile) (*domain.User, error) {
	account, err := s.socialRepo.FindByProvider(ctx, profile.Provider, profile.ProviderUserID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to look up social account", err)
	}
	if account == nil {
		return nil, nil
	}
	user, err := s.userRepo.GetByID(ctx, account.UserID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get user", err)
	}
	if user != nil {
		return user, nil
	}

	logger.Get().Warn("Removing orphaned social account",
		zap.String("provider", profile.Provider),
		zap.String("providerUserID", profile.ProviderUserID),
		zap.String("accountID", account.ID))
	if err := s.socialRepo.Delete(ctx, account.ID); err != nil {
		return nil, domain.NewInternalError("Failed to remove orphaned social account", err)
	}
	return nil, nil
}

func (s *authServiceImpl) createSocialUser(ctx context.Context, profile *domain.SocialProfile) (*domain.User, error) {
	email := profile.Email
	if email != "" && !s.authCfg.LinkSocialByEmail {
		owner, err := s.userRepo.GetByEmail(ctx, email)
		if err != nil {
			return nil, domain.NewInternalError("Failed to look up user", err)
		}
		if owner != nil {
			// Linking is off and the address is taken, so the new account
			// starts without an email.
			email = ""
		}
	}

	now := time.Now()
	user := &domain.User{
		ID:               util.NewULID(),
		Name:             socialDisplayName(profile),
		Email:            email,
		Role:             domain.RoleStudent,
		AvatarURL:        profile.AvatarURL,
		SelectedSubjects: []string{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.userRepo.Create(txCtx, user); err != nil {
			return err
		}
		if err := s.socialRepo.Create(txCtx, newSocialAccount(user.ID, profile)); err != nil {
			if errors.Is(err, domain.ErrDuplicateKey) {
				return errSocialAccountExists
			}
			return err
		}
		return nil
	})
	if errors.Is(err, errSocialAccountExists) {
		return nil, err
	}
	if err != nil {
		return nil, domain.NewInternalError("Failed to create user", err)
	}
	return user, nil
}

// returningUser fills in an unset avatar and upgrades a placeholder name.
func (s *authServiceImpl) returningUser(ctx context.Context, user *domain.User, profile *domain.SocialProfile) (*dto.AuthResponse, error) {
	changed := false
	if profile.AvatarURL != "" && user.AvatarURL == "" {
		user.AvatarURL = profile.AvatarURL
		changed = true
	}
	if shouldReplaceName(user.Name, profile) {
		user.Name = profileName(profile)
		changed = true
	}
	if changed {
		user.UpdatedAt = time.Now()
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, domain.NewInternalError("Failed to update user", err)
		}
	}
	return s.buildAuthResponse(ctx, user, false, false)
}

func shouldReplaceName(current string, profile *domain.SocialProfile) bool {
	incoming := profileName(profile)
	current = strings.TrimSpace(current)
	if incoming == "" || incoming == current {
		return false
	}
	generic := current == "New User" || current == "User" ||
		(profile.Email != "" && current == profile.EmailLocalPart())
	return generic || current == "" || utf8.RuneCountInString(incoming) > utf8.RuneCountInString(current)
}

// socialDisplayName uses the provider name, then the capitalized email local
// part, then "User".
func socialDisplayName(profile *domain.SocialProfile) string {
	if name := profileName(profile); name != "" {
		return name
	}
	if local := profile.EmailLocalPart(); local != "" {
		r, size := utf8.DecodeRuneInString(local)
		return string(unicode.ToUpper(r)) + local[size:]
	}
	return "User"
}

// profileName is the provider's display name cut to the users.name column.
func profileName(profile *domain.SocialProfile) string {
	name := strings.TrimSpace(profile.Name)
	if utf8.RuneCountInString(name) <= maxUserNameLength {
		return name
	}
	return strings.TrimSpace(string([]rune(name)[:maxUserNameLength]))
}

func newSocialAccount(userID string, profile *domain.SocialProfile) *domain.SocialAccount {
	return &domain.SocialAccount{
		ID:             util.NewULID(),
		UserID:         userID,
		Provider:       profile.Provider,
		ProviderUserID: profile.ProviderUserID,
		Email:          profile.Email,
		CreatedAt:      time.Now(),
	}
}

func (s *authServiceImpl) issueTokens(ctx context.Context, user *domain.User, withRefresh bool) (*dto.TokenResponse, error) {
	access, err := s.CreateJWT(ctx, user, s.jwtCfg.AccessTokenTTL, tokenTypeAccess)
	if err != nil {
		return nil, domain.NewInternalError("Failed to create access token", err)
	}
	pair := &dto.TokenResponse{AccessToken: access}
	if withRefresh {
		refresh, err := s.CreateJWT(ctx, user, s.jwtCfg.RefreshTokenTTL, tokenTypeRefresh)
		if err != nil {
			return nil, domain.NewInternalError("Failed to create refresh token", err)
		}
		pair.RefreshToken = refresh
	}
	return pair, nil
}

func (s *authServiceImpl) buildAuthResponse(ctx context.Context, user *domain.User, newUser, withRefresh bool) (*dto.AuthResponse, error) {
	pair, err := s.issueTokens(ctx, user, withRefresh)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         dto.NewUserResponse(user),
		NewUser:      newUser,
	}, nil
}
