package service

import (
	"context"
	"fmt"

	"codezetta/internal/domain"
	"codezetta/internal/dto"
	"codezetta/internal/logger"

	"go.uber.org/zap"
)

const DefaultAIQuestionCount = 5

// AIQuizService turns generated questions into a stored quiz.
type AIQuizService interface {
	GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest, userID string) (*dto.QuizDetailResponse, error)
}

type aiQuizServiceImpl struct {
	generator      domain.QuizGenerator
	subjectService SubjectService
	quizRepo       domain.QuizRepository
	txManager      domain.TransactionManager
}

// NewAIQuizService creates a new instance of AIQuizService.
func NewAIQuizService(
	generator domain.QuizGenerator,
	subjectService SubjectService,
	quizRepo domain.QuizRepository,
	txManager domain.TransactionManager,
) AIQuizService {
	return &aiQuizServiceImpl{
		generator:      generator,
		subjectService: subjectService,
		quizRepo:       quizRepo,
		txManager:      txManager,
	}
}

func (s *aiQuizServiceImpl) GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest, userID string) (*dto.QuizDetailResponse, error) {
	level, ok := domain.ParseQuizLevel(req.Level)
	if !ok {
		return nil, domain.NewBadRequestError("Invalid quiz level")
	}
	count := DefaultAIQuestionCount
	if req.Count != nil {
		count = *req.Count
	}

	subj, err := s.subjectService.FindOrCreate(ctx, req.Subject, req.Subject+" subject auto-created")
	if err != nil {
		return nil, err
	}

	questions, err := s.generator.GenerateQuestions(ctx, subj.Name, level, count)
	if err != nil {
		return nil, domain.NewInternalError("Failed to generate questions", err)
	}
	for i := range questions {
		questions[i].Position = i
		if questions[i].Type == "" {
			questions[i].Type = domain.QuestionTypeMCQ
		}
	}
	if err := checkQuestions(questions); err != nil {
		return nil, err
	}

	quiz := &domain.Quiz{
		SubjectID:    subj.ID,
		SubjectName:  subj.Name,
		Level:        level,
		Title:        fmt.Sprintf("AI %s %s quiz", subj.Name, level),
		TimerMinutes: domain.DefaultTimerMinutes,
		CreatedBy:    userID,
		Questions:    questions,
	}
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.quizRepo.Create(txCtx, quiz)
	})
	if err != nil {
		return nil, domain.NewInternalError("Failed to create quiz", err)
	}
	logger.Get().Info("AI quiz created",
		zap.String("quizID", quiz.ID),
		zap.String("subject", subj.Name),
		zap.String("level", string(level)),
		zap.Int("questions", len(questions)))

	resp := dto.NewQuizDetailResponse(quiz)
	return &resp, nil
}
