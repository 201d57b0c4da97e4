package models

import (
	"database/sql"
	"time"
)

type User struct {
	ID               string         `db:"ID"`
	Name             string         `db:"NAME"`
	Email            sql.NullString `db:"EMAIL"`
	PasswordHash     sql.NullString `db:"PASSWORD_HASH"`
	Role             string         `db:"ROLE"`
	AvatarURL        sql.NullString `db:"AVATAR_URL"`
	Bio              sql.NullString `db:"BIO"`
	TotalPoints      int            `db:"TOTAL_POINTS"`
	Preferences      sql.NullString `db:"PREFERENCES"` // JSON object
	SelectedSubjects StringSlice    `db:"SELECTED_SUBJECTS"`
	CreatedAt        time.Time      `db:"CREATED_AT"`
	UpdatedAt        time.Time      `db:"UPDATED_AT"`
}

type SocialAccount struct {
	ID             string         `db:"ID"`
	UserID         string         `db:"USER_ID"`
	Provider       string         `db:"PROVIDER"`
	ProviderUserID string         `db:"PROVIDER_USER_ID"`
	Email          sql.NullString `db:"EMAIL"`
	CreatedAt      time.Time      `db:"CREATED_AT"`
}

// UserScore is a (user, points) projection used to rebuild the leaderboard.
type UserScore struct {
	ID          string `db:"ID"`
	TotalPoints int    `db:"TOTAL_POINTS"`
}
