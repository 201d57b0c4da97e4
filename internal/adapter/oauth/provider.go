package oauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"
)

const requestTimeout = 10 * time.Second

var (
	ErrExchangeFailed = errors.New("failed to exchange oauth code")
	ErrProfileFailed  = errors.New("failed to fetch provider profile")
)

func newRestyClient() *resty.Client {
	return resty.New().
		SetTimeout(requestTimeout).
		SetHeader("Accept", "application/json")
}

func exchange(ctx context.Context, cfg *oauth2.Config, code string) (*oauth2.Token, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: empty authorization code", ErrExchangeFailed)
	}
	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}
	return token, nil
}

// getJSON issues an authenticated GET and decodes the body into out.
func getJSON(ctx context.Context, client *resty.Client, url, accessToken string, out interface{}) error {
	resp, err := client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetResult(out).
		Get(url)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProfileFailed, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: %s returned %d", ErrProfileFailed, url, resp.StatusCode())
	}
	return nil
}

// displayName prefers the full name, then given and family names joined.
func displayName(full, given, family string) string {
	if name := strings.TrimSpace(full); name != "" {
		return name
	}
	return strings.TrimSpace(strings.TrimSpace(given) + " " + strings.TrimSpace(family))
}
