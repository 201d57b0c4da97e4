package service

import (
	"context"
	"errors"
	"testing"

	"codezetta/internal/domain"
	"codezetta/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func generatedQuestions(n int) []domain.Question {
	out := make([]domain.Question, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.Question{
			Text: "Generated",
			Options: []domain.AnswerOption{
				{Text: "Option A", IsCorrect: true}, {Text: "Option B"},
			},
		})
	}
	return out
}

func TestAIQuizService_GenerateQuiz(t *testing.T) {
	subjectRepo := new(MockSubjectRepository)
	quizRepo := new(MockQuizRepository)
	generator := new(MockQuizGenerator)
	svc := NewAIQuizService(generator, NewSubjectService(subjectRepo), quizRepo, &MockTransactionManager{})

	subjectRepo.On("GetByName", mock.Anything, "React").Return(nil, nil)
	subjectRepo.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.Subject) bool {
		return s.Description == "React subject auto-created"
	})).Return(nil)
	generator.On("GenerateQuestions", mock.Anything, "React", domain.LevelMiddle, DefaultAIQuestionCount).
		Return(generatedQuestions(DefaultAIQuestionCount), nil)
	quizRepo.On("Create", mock.Anything, mock.MatchedBy(func(q *domain.Quiz) bool {
		return q.Title == "AI React middle quiz" && q.CreatedBy == "u1" && len(q.Questions) == DefaultAIQuestionCount &&
			q.Questions[4].Position == 4 && q.Questions[0].Type == domain.QuestionTypeMCQ
	})).Return(nil)

	resp, err := svc.GenerateQuiz(context.Background(), &dto.GenerateQuizRequest{Subject: "React", Level: "middle"}, "u1")
	require.NoError(t, err)
	assert.Equal(t, "AI React middle quiz", resp.Title)
	assert.Len(t, resp.Questions, DefaultAIQuestionCount)
	quizRepo.AssertExpectations(t)
}

func TestAIQuizService_GenerateQuiz_GeneratorFails(t *testing.T) {
	subjectRepo := new(MockSubjectRepository)
	generator := new(MockQuizGenerator)
	svc := NewAIQuizService(generator, NewSubjectService(subjectRepo), new(MockQuizRepository), &MockTransactionManager{})

	subjectRepo.On("GetByName", mock.Anything, "CSS").Return(&domain.Subject{ID: "s2", Name: "CSS"}, nil)
	generator.On("GenerateQuestions", mock.Anything, "CSS", domain.LevelBeginner, 3).Return(nil, errors.New("model offline"))

	count := 3
	_, err := svc.GenerateQuiz(context.Background(), &dto.GenerateQuizRequest{Subject: "CSS", Level: "beginner", Count: &count}, "u1")
	assert.True(t, domain.IsErrorCode(err, domain.ErrInternal))
}
