package dto

import (
	"time"

	"codezetta/internal/domain"
)

type AttemptQuizRef struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Subject string `json:"subject"`
	Level   string `json:"level"`
}

// AttemptListItem is one row of the caller's attempt history. Quiz is nil when
// the quiz has since been deleted.
type AttemptListItem struct {
	ID                  string          `json:"id"`
	Quiz                *AttemptQuizRef `json:"quiz"`
	Score               int             `json:"score"`
	TotalQuestions      int             `json:"totalQuestions"`
	CorrectAnswersCount int             `json:"correctAnswersCount"`
	PointsEarned        int             `json:"pointsEarned"`
	StartedAt           time.Time       `json:"startedAt"`
	FinishedAt          time.Time       `json:"finishedAt"`
}

func NewAttemptListItem(a *domain.AttemptWithQuiz) AttemptListItem {
	item := AttemptListItem{
		ID:                  a.ID,
		Score:               a.Score,
		TotalQuestions:      a.TotalQuestions,
		CorrectAnswersCount: a.CorrectAnswersCount,
		PointsEarned:        a.PointsEarned,
		StartedAt:           a.StartedAt,
		FinishedAt:          a.FinishedAt,
	}
	if a.QuizExists() {
		item.Quiz = &AttemptQuizRef{ID: a.QuizID, Title: a.QuizTitle, Subject: a.SubjectName, Level: string(a.Level)}
	}
	return item
}

type UserAnswer struct {
	SelectedOptionID string `json:"selectedOptionId"`
	IsCorrect        bool   `json:"isCorrect"`
}

type ReviewOption struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

type ReviewQuestion struct {
	ID          string         `json:"id"`
	Text        string         `json:"text"`
	Type        string         `json:"type"`
	Explanation string         `json:"explanation,omitempty"`
	Options     []ReviewOption `json:"options"`
	UserAnswer  *UserAnswer    `json:"userAnswer"`
}

type ReviewQuiz struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Subject      SubjectRef       `json:"subject"`
	Level        string           `json:"level"`
	TimerMinutes int              `json:"timerMinutes"`
	Questions    []ReviewQuestion `json:"questions"`
}

// AttemptDetailResponse is an attempt with the full answer key and the
// caller's choices.
type AttemptDetailResponse struct {
	ID                  string      `json:"id"`
	Quiz                *ReviewQuiz `json:"quiz"`
	Score               int         `json:"score"`
	TotalQuestions      int         `json:"totalQuestions"`
	CorrectAnswersCount int         `json:"correctAnswersCount"`
	PointsEarned        int         `json:"pointsEarned"`
	Percentage          int         `json:"percentage"`
	StartedAt           time.Time   `json:"startedAt"`
	FinishedAt          time.Time   `json:"finishedAt"`
}

type SessionResponse struct {
	ID         string    `json:"id"`
	QuizID     string    `json:"quizId"`
	Status     string    `json:"status"`
	StartedAt  time.Time `json:"startedAt"`
	LastSeenAt time.Time `json:"lastSeenAt"`
	ExpiresAt  time.Time `json:"expiresAt"`
}
