package domain

import "time"

type Subject struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Quiz is always handed out fully hydrated: every question carries its
// options in stored order.
type Quiz struct {
	ID           string
	SubjectID    string
	SubjectName  string
	Level        QuizLevel
	Title        string
	TimerMinutes int
	CreatedBy    string
	Questions    []Question
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Question struct {
	ID                string
	QuizID            string
	Position          int
	Text              string
	Type              string
	TopicSlug         string
	Explanation       string
	LearningResources []LearningResource
	Options           []AnswerOption
}

// CorrectOption returns the first option flagged correct, or nil.
func (q *Question) CorrectOption() *AnswerOption {
	for i := range q.Options {
		if q.Options[i].IsCorrect {
			return &q.Options[i]
		}
	}
	return nil
}

type AnswerOption struct {
	ID         string
	QuestionID string
	Position   int
	Text       string
	IsCorrect  bool
}

// LearningResource is a pre-computed reading hint stored on a question.
type LearningResource struct {
	ID                          string          `json:"id,omitempty" yaml:"id,omitempty"`
	Title                       string          `json:"title" yaml:"title"`
	URL                         string          `json:"url" yaml:"url"`
	Provider                    ArticleProvider `json:"provider,omitempty" yaml:"provider,omitempty"`
	EstimatedReadingTimeMinutes int             `json:"estimatedReadingTimeMinutes,omitempty" yaml:"estimatedReadingTimeMinutes,omitempty"`
	Subject                     string          `json:"subject,omitempty" yaml:"subject,omitempty"`
	Level                       string          `json:"level,omitempty" yaml:"level,omitempty"`
}

// QuizSummary is a catalog row without question content.
type QuizSummary struct {
	ID            string
	SubjectID     string
	SubjectName   string
	Level         QuizLevel
	Title         string
	TimerMinutes  int
	QuestionCount int
	CreatedAt     time.Time
}

type QuizFilter struct {
	SubjectID string
	Level     QuizLevel
}

// ArticleRecommendation is one suggested reading for a wrongly answered
// question.
type ArticleRecommendation struct {
	ID                          string          `json:"id"`
	Title                       string          `json:"title"`
	URL                         string          `json:"url"`
	Provider                    ArticleProvider `json:"provider"`
	EstimatedReadingTimeMinutes int             `json:"estimatedReadingTimeMinutes,omitempty"`
	Subject                     string          `json:"subject,omitempty"`
	Level                       string          `json:"level,omitempty"`
}
