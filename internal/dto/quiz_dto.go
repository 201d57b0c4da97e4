package dto

import (
	"time"

	"codezetta/internal/domain"
)

type CreateOptionRequest struct {
	Text      string `json:"text" validate:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

type CreateQuestionRequest struct {
	Text              string                    `json:"text" validate:"required"`
	Type              string                    `json:"type" validate:"omitempty,oneof=mcq"`
	TopicSlug         string                    `json:"topicSlug" validate:"omitempty,max=100"`
	Explanation       string                    `json:"explanation" validate:"omitempty,max=2000"`
	LearningResources []domain.LearningResource `json:"learningResources"`
	Options           []CreateOptionRequest     `json:"options" validate:"required,min=2,onecorrect,dive"`
}

// CreateQuizRequest is the body of POST /quizzes.
type CreateQuizRequest struct {
	SubjectID    string                  `json:"subjectId" validate:"required"`
	Level        string                  `json:"level" validate:"required,quizlevel"`
	Title        string                  `json:"title" validate:"required,max=200"`
	TimerMinutes *int                    `json:"timerMinutes" validate:"omitempty,min=1"`
	Questions    []CreateQuestionRequest `json:"questions" validate:"required,min=1,dive"`
}

// UpdateQuizRequest is the body of PUT /quizzes/:id. When questions are
// present they replace the current set entirely.
type UpdateQuizRequest struct {
	SubjectID    *string                 `json:"subjectId" validate:"omitempty,min=1"`
	Level        *string                 `json:"level" validate:"omitempty,quizlevel"`
	Title        *string                 `json:"title" validate:"omitempty,min=1,max=200"`
	TimerMinutes *int                    `json:"timerMinutes" validate:"omitempty,min=1"`
	Questions    []CreateQuestionRequest `json:"questions" validate:"omitempty,min=1,dive"`
}

// ToDomainQuestions converts request questions into unsaved domain values.
func ToDomainQuestions(reqs []CreateQuestionRequest) []domain.Question {
	questions := make([]domain.Question, 0, len(reqs))
	for i, q := range reqs {
		qType := q.Type
		if qType == "" {
			qType = domain.QuestionTypeMCQ
		}
		options := make([]domain.AnswerOption, 0, len(q.Options))
		for j, o := range q.Options {
			options = append(options, domain.AnswerOption{Position: j, Text: o.Text, IsCorrect: o.IsCorrect})
		}
		questions = append(questions, domain.Question{
			Position:          i,
			Text:              q.Text,
			Type:              qType,
			TopicSlug:         q.TopicSlug,
			Explanation:       q.Explanation,
			LearningResources: q.LearningResources,
			Options:           options,
		})
	}
	return questions
}

type SubjectRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// QuizListItem is one catalog entry of GET /quizzes.
type QuizListItem struct {
	ID            string     `json:"id"`
	Subject       SubjectRef `json:"subject"`
	Level         string     `json:"level"`
	Title         string     `json:"title"`
	TimerMinutes  int        `json:"timerMinutes"`
	QuestionCount int        `json:"questionCount"`
	HasTaken      bool       `json:"hasTaken"`
	CreatedAt     time.Time  `json:"createdAt"`
}

type OptionResponse struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type QuestionResponse struct {
	ID      string           `json:"id"`
	Text    string           `json:"text"`
	Type    string           `json:"type"`
	Options []OptionResponse `json:"options"`
}

// QuizDetailResponse is a quiz ready to be taken; correctness flags are not
// included.
type QuizDetailResponse struct {
	ID           string             `json:"id"`
	Subject      SubjectRef         `json:"subject"`
	Level        string             `json:"level"`
	Title        string             `json:"title"`
	TimerMinutes int                `json:"timerMinutes"`
	Questions    []QuestionResponse `json:"questions"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// NewQuizDetailResponse strips answer keys from a hydrated quiz.
func NewQuizDetailResponse(q *domain.Quiz) QuizDetailResponse {
	questions := make([]QuestionResponse, 0, len(q.Questions))
	for _, question := range q.Questions {
		qType := question.Type
		if qType == "" {
			qType = domain.QuestionTypeMCQ
		}
		options := make([]OptionResponse, 0, len(question.Options))
		for _, o := range question.Options {
			options = append(options, OptionResponse{ID: o.ID, Text: o.Text})
		}
		questions = append(questions, QuestionResponse{ID: question.ID, Text: question.Text, Type: qType, Options: options})
	}
	return QuizDetailResponse{
		ID:           q.ID,
		Subject:      SubjectRef{ID: q.SubjectID, Name: q.SubjectName},
		Level:        string(q.Level),
		Title:        q.Title,
		TimerMinutes: q.TimerMinutes,
		Questions:    questions,
		CreatedAt:    q.CreatedAt,
		UpdatedAt:    q.UpdatedAt,
	}
}

type DeleteQuizResponse struct {
	Deleted bool `json:"deleted"`
}

type SubmitAnswer struct {
	QuestionID       string `json:"questionId" validate:"required,max=26"`
	SelectedOptionID string `json:"selectedOptionId" validate:"required,max=26"`
}

// SubmitQuizRequest is the body of POST /quizzes/:id/submit. Unanswered
// questions are simply left out.
type SubmitQuizRequest struct {
	Answers []SubmitAnswer `json:"answers" validate:"dive"`
}

type WrongAnswerFeedback struct {
	QuestionID        string                         `json:"questionId"`
	QuestionText      string                         `json:"questionText"`
	SelectedOptionID  string                         `json:"selectedOptionId"`
	CorrectOptionID   string                         `json:"correctOptionId"`
	Explanation       string                         `json:"explanation,omitempty"`
	SuggestedArticles []domain.ArticleRecommendation `json:"suggestedArticles"`
}

type SubmitQuizResponse struct {
	AttemptID              string                `json:"attemptId"`
	Score                  int                   `json:"score"`
	TotalQuestions         int                   `json:"totalQuestions"`
	CorrectAnswersCount    int                   `json:"correctAnswersCount"`
	PointsEarned           int                   `json:"pointsEarned"`
	UpdatedUserTotalPoints int                   `json:"updatedUserTotalPoints"`
	WrongAnswers           []WrongAnswerFeedback `json:"wrongAnswers"`
}

type LevelCompletionResponse struct {
	Level             string `json:"level"`
	TotalQuizzes      int    `json:"totalQuizzes"`
	CompletedQuizzes  int    `json:"completedQuizzes"`
	IsCompleted       bool   `json:"isCompleted"`
	CanGenerateRandom bool   `json:"canGenerateRandom"`
}

type GenerateRandomQuestionsRequest struct {
	Level string `json:"level" validate:"required,quizlevel"`
	Count *int   `json:"count" validate:"omitempty,min=1,max=100"`
}

type RandomOption struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

type RandomQuestion struct {
	Text    string         `json:"text"`
	Type    string         `json:"type"`
	Options []RandomOption `json:"options"`
}

type GenerateRandomQuestionsResponse struct {
	Questions []RandomQuestion `json:"questions"`
	Level     string           `json:"level"`
	Count     int              `json:"count"`
}

// GenerateQuizRequest is the body of POST /ai/generate-quiz.
type GenerateQuizRequest struct {
	Subject string `json:"subject" validate:"required,subjectname"`
	Level   string `json:"level" validate:"required,quizlevel"`
	Count   *int   `json:"count" validate:"omitempty,min=1,max=50"`
}
