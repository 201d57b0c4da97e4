package quizgen

import (
	"context"
	"fmt"

	"codezetta/internal/domain"
)

var optionLabels = [4]string{"Option A", "Option B", "Option C", "Option D"}

// TemplateQuizGenerator builds placeholder multiple-choice questions without
// any external call.
type TemplateQuizGenerator struct{}

func NewTemplateQuizGenerator() *TemplateQuizGenerator {
	return &TemplateQuizGenerator{}
}

// GenerateQuestions returns count questions; question i (1-based) has its
// correct answer at option index i%4.
func (g *TemplateQuizGenerator) GenerateQuestions(_ context.Context, subject string, level domain.QuizLevel, count int) ([]domain.Question, error) {
	if count <= 0 {
		return nil, fmt.Errorf("question count must be positive, got %d", count)
	}
	questions := make([]domain.Question, 0, count)
	for i := 1; i <= count; i++ {
		options := make([]domain.AnswerOption, 0, len(optionLabels))
		for j, label := range optionLabels {
			options = append(options, domain.AnswerOption{Text: label, IsCorrect: i%4 == j})
		}
		questions = append(questions, domain.Question{
			Text:    fmt.Sprintf("(%s) %s question #%d", level, subject, i),
			Type:    domain.QuestionTypeMCQ,
			Options: options,
		})
	}
	return questions, nil
}

var _ domain.QuizGenerator = (*TemplateQuizGenerator)(nil)
