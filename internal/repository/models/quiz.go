package models

import (
	"database/sql"
	"time"
)

type Subject struct {
	ID          string         `db:"ID"`
	Name        string         `db:"NAME"`
	Description sql.NullString `db:"DESCRIPTION"`
	CreatedAt   time.Time      `db:"CREATED_AT"`
	UpdatedAt   time.Time      `db:"UPDATED_AT"`
}

// Quiz is a quizzes row joined with its subject name.
type Quiz struct {
	ID           string         `db:"ID"`
	SubjectID    string         `db:"SUBJECT_ID"`
	SubjectName  sql.NullString `db:"SUBJECT_NAME"`
	Level        string         `db:"QUIZ_LEVEL"`
	Title        string         `db:"TITLE"`
	TimerMinutes int            `db:"TIMER_MINUTES"`
	CreatedBy    sql.NullString `db:"CREATED_BY"`
	CreatedAt    time.Time      `db:"CREATED_AT"`
	UpdatedAt    time.Time      `db:"UPDATED_AT"`
}

type QuizSummary struct {
	Quiz
	QuestionCount int `db:"QUESTION_COUNT"`
}

type Question struct {
	ID                string         `db:"ID"`
	QuizID            string         `db:"QUIZ_ID"`
	Position          int            `db:"POSITION"`
	Text              string         `db:"QUESTION_TEXT"`
	Type              string         `db:"QUESTION_TYPE"`
	TopicSlug         sql.NullString `db:"TOPIC_SLUG"`
	Explanation       sql.NullString `db:"EXPLANATION"`
	LearningResources sql.NullString `db:"LEARNING_RESOURCES"` // JSON array
	CreatedAt         time.Time      `db:"CREATED_AT"`
}

type AnswerOption struct {
	ID         string `db:"ID"`
	QuestionID string `db:"QUESTION_ID"`
	Position   int    `db:"POSITION"`
	Text       string `db:"OPTION_TEXT"`
	IsCorrect  int    `db:"IS_CORRECT"`
}
