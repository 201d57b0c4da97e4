package models

import (
	"database/sql"
	"time"
)

type QuizAttempt struct {
	ID                  string         `db:"ID"`
	UserID              string         `db:"USER_ID"`
	QuizID              string         `db:"QUIZ_ID"`
	Score               int            `db:"SCORE"`
	TotalQuestions      int            `db:"TOTAL_QUESTIONS"`
	CorrectAnswersCount int            `db:"CORRECT_ANSWERS_COUNT"`
	PointsEarned        int            `db:"POINTS_EARNED"`
	PublicSlug          sql.NullString `db:"PUBLIC_SLUG"`
	StartedAt           time.Time      `db:"STARTED_AT"`
	FinishedAt          time.Time      `db:"FINISHED_AT"`
}

type AttemptAnswer struct {
	AttemptID        string `db:"ATTEMPT_ID"`
	QuestionID       string `db:"QUESTION_ID"`
	SelectedOptionID string `db:"SELECTED_OPTION_ID"`
	IsCorrect        int    `db:"IS_CORRECT"`
}

// AttemptWithQuiz is an attempt left-joined with its quiz and subject; the
// quiz columns are NULL once the quiz is deleted.
type AttemptWithQuiz struct {
	QuizAttempt
	QuizTitle   sql.NullString `db:"QUIZ_TITLE"`
	SubjectName sql.NullString `db:"SUBJECT_NAME"`
	QuizLevel   sql.NullString `db:"QUIZ_LEVEL"`
}

type QuizSession struct {
	ID         string         `db:"ID"`
	UserID     string         `db:"USER_ID"`
	QuizID     string         `db:"QUIZ_ID"`
	Status     string         `db:"STATUS"`
	StartedAt  time.Time      `db:"STARTED_AT"`
	LastSeenAt time.Time      `db:"LAST_SEEN_AT"`
	ExpiresAt  time.Time      `db:"EXPIRES_AT"`
	AttemptID  sql.NullString `db:"ATTEMPT_ID"`
}
