package oauth

import (
	"context"
	"fmt"

	"codezetta/internal/config"
	"codezetta/internal/domain"
	"codezetta/internal/logger"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const (
	linkedInAuthURL  = "https://www.linkedin.com/oauth/v2/authorization"
	linkedInTokenURL = "https://www.linkedin.com/oauth/v2/accessToken"
	linkedInAPIBase  = "https://api.linkedin.com"
)

type linkedInUserInfo struct {
	Sub        string `json:"sub"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
}

type linkedInMe struct {
	ID                 string `json:"id"`
	LocalizedFirstName string `json:"localizedFirstName"`
	LocalizedLastName  string `json:"localizedLastName"`
}

type linkedInEmails struct {
	Elements []struct {
		Handle struct {
			EmailAddress string `json:"emailAddress"`
		} `json:"handle~"`
	} `json:"elements"`
}

// LinkedInProvider reads the OIDC userinfo endpoint and falls back to the
// legacy /v2/me and /v2/emailAddress pair when it is unavailable.
type LinkedInProvider struct {
	config  *oauth2.Config
	client  *resty.Client
	apiBase string
}

func NewLinkedInProvider(cfg config.OAuthProviderConfig) *LinkedInProvider {
	return &LinkedInProvider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint: oauth2.Endpoint{
				AuthURL:   linkedInAuthURL,
				TokenURL:  linkedInTokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		client:  newRestyClient(),
		apiBase: linkedInAPIBase,
	}
}

func (p *LinkedInProvider) Name() string {
	return domain.ProviderLinkedIn
}

func (p *LinkedInProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state)
}

func (p *LinkedInProvider) FetchProfile(ctx context.Context, code string) (*domain.SocialProfile, error) {
	token, err := exchange(ctx, p.config, code)
	if err != nil {
		return nil, err
	}

	profile, err := p.fromUserInfo(ctx, token.AccessToken)
	if err != nil {
		logger.Get().Warn("LinkedIn userinfo failed, falling back to profile endpoint", zap.Error(err))
		profile, err = p.fromLegacyProfile(ctx, token.AccessToken)
		if err != nil {
			return nil, err
		}
	}
	if profile.ProviderUserID == "" {
		return nil, fmt.Errorf("%w: linkedin profile missing user id", ErrProfileFailed)
	}
	return profile, nil
}

func (p *LinkedInProvider) fromUserInfo(ctx context.Context, accessToken string) (*domain.SocialProfile, error) {
	var info linkedInUserInfo
	if err := getJSON(ctx, p.client, p.apiBase+"/v2/userinfo", accessToken, &info); err != nil {
		return nil, err
	}
	return &domain.SocialProfile{
		Provider:       domain.ProviderLinkedIn,
		ProviderUserID: info.Sub,
		Email:          info.Email,
		Name:           displayName(info.Name, info.GivenName, info.FamilyName),
		AvatarURL:      info.Picture,
	}, nil
}

func (p *LinkedInProvider) fromLegacyProfile(ctx context.Context, accessToken string) (*domain.SocialProfile, error) {
	var me linkedInMe
	if err := getJSON(ctx, p.client, p.apiBase+"/v2/me", accessToken, &me); err != nil {
		return nil, err
	}

	// The email endpoint needs a separate permission; a failure leaves the
	// profile without email.
	var emails linkedInEmails
	email := ""
	if err := getJSON(ctx, p.client, p.apiBase+"/v2/emailAddress?q=members&projection=(elements*(handle~))", accessToken, &emails); err != nil {
		logger.Get().Warn("LinkedIn email endpoint failed", zap.Error(err))
	} else if len(emails.Elements) > 0 {
		email = emails.Elements[0].Handle.EmailAddress
	}

	return &domain.SocialProfile{
		Provider:       domain.ProviderLinkedIn,
		ProviderUserID: me.ID,
		Email:          email,
		Name:           displayName("", me.LocalizedFirstName, me.LocalizedLastName),
	}, nil
}

var _ domain.SocialAuthProvider = (*LinkedInProvider)(nil)
