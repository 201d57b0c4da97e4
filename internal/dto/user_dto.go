package dto

import (
	"time"

	"codezetta/internal/domain"
)

// UserResponse is a user record with credentials stripped.
type UserResponse struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	Email            *string            `json:"email"`
	Role             string             `json:"role"`
	AvatarURL        *string            `json:"avatarUrl"`
	Bio              *string            `json:"bio"`
	TotalPoints      int                `json:"totalPoints"`
	Preferences      domain.Preferences `json:"preferences"`
	SelectedSubjects []string           `json:"selectedSubjects"`
	CreatedAt        time.Time          `json:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt"`
}

// NewUserResponse sanitizes a domain user. Unset preferences fall back to
// the defaults.
func NewUserResponse(u *domain.User) UserResponse {
	prefs := u.Preferences
	if prefs.IsZero() {
		prefs = domain.DefaultPreferences()
	}
	subjects := u.SelectedSubjects
	if subjects == nil {
		subjects = []string{}
	}
	return UserResponse{
		ID:               u.ID,
		Name:             u.Name,
		Email:            optional(u.Email),
		Role:             string(u.Role),
		AvatarURL:        optional(u.AvatarURL),
		Bio:              optional(u.Bio),
		TotalPoints:      u.TotalPoints,
		Preferences:      prefs,
		SelectedSubjects: subjects,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

type PreferencesRequest struct {
	Theme              *string `json:"theme" validate:"omitempty,oneof=light dark system"`
	Language           *string `json:"language" validate:"omitempty,oneof=en ar"`
	PrimarySubject     *string `json:"primarySubject" validate:"omitempty,subjectname"`
	PreferredLevel     *string `json:"preferredLevel" validate:"omitempty,oneof=beginner middle intermediate mixed"`
	EmailNotifications *bool   `json:"emailNotifications"`
	PushNotifications  *bool   `json:"pushNotifications"`
}

// ToDomain converts the request into a patch for domain.Preferences.Merge.
func (p *PreferencesRequest) ToDomain() domain.Preferences {
	out := domain.Preferences{
		PrimarySubject:     p.PrimarySubject,
		PreferredLevel:     p.PreferredLevel,
		EmailNotifications: p.EmailNotifications,
		PushNotifications:  p.PushNotifications,
	}
	if p.Theme != nil {
		out.Theme = *p.Theme
	}
	if p.Language != nil {
		out.Language = *p.Language
	}
	return out
}

// UpdateMeRequest is the body of PATCH /users/me. Absent fields are left
// untouched; an empty avatarUrl or bio clears the value.
type UpdateMeRequest struct {
	Name        *string             `json:"name" validate:"omitempty,max=100"`
	AvatarURL   *string             `json:"avatarUrl" validate:"omitempty,url|eq="`
	Bio         *string             `json:"bio" validate:"omitempty,max=500"`
	Preferences *PreferencesRequest `json:"preferences"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required,min=6"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

type UpdateProfileRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=100"`
	Email *string `json:"email" validate:"omitempty,email"`
}

type UpdateSelectedSubjectsRequest struct {
	SelectedSubjects []string `json:"selectedSubjects" validate:"required,dive,subjectname"`
}

type PerSubjectStats struct {
	Subject      string `json:"subject"`
	QuizzesTaken int    `json:"quizzesTaken"`
	AverageScore int    `json:"averageScore"`
	TotalPoints  int    `json:"totalPoints"`
}

// UserStatsResponse is returned by GET /users/me/stats.
type UserStatsResponse struct {
	TotalQuizzesTaken      int               `json:"totalQuizzesTaken"`
	TotalCorrectAnswers    int               `json:"totalCorrectAnswers"`
	TotalQuestionsAnswered int               `json:"totalQuestionsAnswered"`
	StreakDays             int               `json:"streakDays"`
	PerSubjectStats        []PerSubjectStats `json:"perSubjectStats"`
}

type ProfileUserSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       *string   `json:"email"`
	Role        string    `json:"role"`
	TotalPoints int       `json:"totalPoints"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ProfileStatistics struct {
	TotalQuizzes        int `json:"totalQuizzes"`
	TotalQuestions      int `json:"totalQuestions"`
	TotalCorrectAnswers int `json:"totalCorrectAnswers"`
	AverageScore        int `json:"averageScore"`
	BestScore           int `json:"bestScore"`
	TotalPointsEarned   int `json:"totalPointsEarned"`
	LeaderboardPosition int `json:"leaderboardPosition"`
}

// PerformanceStat aggregates attempts for one subject or one level.
type PerformanceStat struct {
	Subject        string `json:"subject,omitempty"`
	Level          string `json:"level,omitempty"`
	Attempts       int    `json:"attempts"`
	TotalQuestions int    `json:"totalQuestions"`
	CorrectAnswers int    `json:"correctAnswers"`
	TotalPoints    int    `json:"totalPoints"`
	AverageScore   int    `json:"averageScore"`
}

type RecentActivity struct {
	QuizID         string    `json:"quizId"`
	QuizTitle      string    `json:"quizTitle"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	CorrectAnswers int       `json:"correctAnswers"`
	PointsEarned   int       `json:"pointsEarned"`
	Percentage     int       `json:"percentage"`
	FinishedAt     time.Time `json:"finishedAt"`
}

type Achievement struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// ProfileStatsResponse is the extended dashboard view of a user.
type ProfileStatsResponse struct {
	User               ProfileUserSummary `json:"user"`
	Statistics         ProfileStatistics  `json:"statistics"`
	SubjectPerformance []PerformanceStat  `json:"subjectPerformance"`
	LevelPerformance   []PerformanceStat  `json:"levelPerformance"`
	RecentActivity     []RecentActivity   `json:"recentActivity"`
	Achievements       []Achievement      `json:"achievements"`
}

type ProfileWithAttemptsResponse struct {
	UserResponse
	Attempts []AttemptListItem `json:"attempts"`
}

type PointsResponse struct {
	TotalPoints int `json:"totalPoints"`
}

type SyncPointsResponse struct {
	PreviousPoints   int `json:"previousPoints"`
	CalculatedPoints int `json:"calculatedPoints"`
	AttemptsCount    int `json:"attemptsCount"`
}

type LeaderboardEntry struct {
	Rank        int     `json:"rank"`
	UserID      string  `json:"userId"`
	Name        string  `json:"name"`
	AvatarURL   *string `json:"avatarUrl"`
	TotalPoints int     `json:"totalPoints"`
}

type LeaderboardPositionResponse struct {
	Position    int `json:"position"`
	TotalUsers  int `json:"totalUsers"`
	Percentile  int `json:"percentile"`
	TotalPoints int `json:"totalPoints"`
}
