package domain

import (
	"strings"
	"time"
)

// User is an account holder. Email and PasswordHash are empty for social-only
// accounts created without a provider email.
type User struct {
	ID               string
	Name             string
	Email            string
	PasswordHash     string
	Role             Role
	AvatarURL        string
	Bio              string
	TotalPoints      int
	Preferences      Preferences
	SelectedSubjects []string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasPassword is false for accounts that can only sign in through a provider.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Preferences is the user's UI settings bag. Nil pointers mean "unset".
type Preferences struct {
	Theme              string  `json:"theme,omitempty"`
	Language           string  `json:"language,omitempty"`
	PrimarySubject     *string `json:"primarySubject,omitempty"`
	PreferredLevel     *string `json:"preferredLevel,omitempty"`
	EmailNotifications *bool   `json:"emailNotifications,omitempty"`
	PushNotifications  *bool   `json:"pushNotifications,omitempty"`
}

func DefaultPreferences() Preferences {
	on := true
	onPush := true
	return Preferences{
		Theme:              "system",
		Language:           "en",
		EmailNotifications: &on,
		PushNotifications:  &onPush,
	}
}

// IsZero reports whether no preference has ever been stored.
func (p Preferences) IsZero() bool {
	return p.Theme == "" && p.Language == "" && p.PrimarySubject == nil &&
		p.PreferredLevel == nil && p.EmailNotifications == nil && p.PushNotifications == nil
}

// Merge overlays the set fields of patch on p.
func (p Preferences) Merge(patch Preferences) Preferences {
	out := p
	if patch.Theme != "" {
		out.Theme = patch.Theme
	}
	if patch.Language != "" {
		out.Language = patch.Language
	}
	if patch.PrimarySubject != nil {
		out.PrimarySubject = patch.PrimarySubject
	}
	if patch.PreferredLevel != nil {
		out.PreferredLevel = patch.PreferredLevel
	}
	if patch.EmailNotifications != nil {
		out.EmailNotifications = patch.EmailNotifications
	}
	if patch.PushNotifications != nil {
		out.PushNotifications = patch.PushNotifications
	}
	return out
}

// SocialAccount links a provider identity to exactly one User.
type SocialAccount struct {
	ID             string
	UserID         string
	Provider       string
	ProviderUserID string
	Email          string
	CreatedAt      time.Time
}

// SocialProfile is the normalized identity returned by an OAuth provider.
type SocialProfile struct {
	Provider       string
	ProviderUserID string
	Email          string
	Name           string
	AvatarURL      string
}

// EmailLocalPart returns the part of the profile email before "@".
func (p SocialProfile) EmailLocalPart() string {
	if p.Email == "" {
		return ""
	}
	local, _, _ := strings.Cut(p.Email, "@")
	return local
}

// LeaderboardScore is one member of the points ranking.
type LeaderboardScore struct {
	UserID string
	Points int
}
