package oauth

import (
	"context"
	"fmt"

	"codezetta/internal/config"
	"codezetta/internal/domain"

	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

type googleUserInfo struct {
	Sub        string `json:"sub"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
}

type GoogleProvider struct {
	config      *oauth2.Config
	client      *resty.Client
	userInfoURL string
}

func NewGoogleProvider(cfg config.OAuthProviderConfig) *GoogleProvider {
	return &GoogleProvider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint:     google.Endpoint,
		},
		client:      newRestyClient(),
		userInfoURL: googleUserInfoURL,
	}
}

func (p *GoogleProvider) Name() string {
	return domain.ProviderGoogle
}

func (p *GoogleProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "select_account"))
}

func (p *GoogleProvider) FetchProfile(ctx context.Context, code string) (*domain.SocialProfile, error) {
	token, err := exchange(ctx, p.config, code)
	if err != nil {
		return nil, err
	}

	var info googleUserInfo
	if err := getJSON(ctx, p.client, p.userInfoURL, token.AccessToken, &info); err != nil {
		return nil, err
	}
	if info.Sub == "" {
		return nil, fmt.Errorf("%w: google userinfo missing subject", ErrProfileFailed)
	}

	return &domain.SocialProfile{
		Provider:       domain.ProviderGoogle,
		ProviderUserID: info.Sub,
		Email:          info.Email,
		Name:           displayName(info.Name, info.GivenName, info.FamilyName),
		AvatarURL:      info.Picture,
	}, nil
}

var _ domain.SocialAuthProvider = (*GoogleProvider)(nil)
