package service

import (
	"context"
	"errors"
	"time"

	"codezetta/internal/domain"
	"codezetta/internal/dto"
	"codezetta/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// QuizService defines the interface for quiz catalog operations.
type QuizService interface {
	List(ctx context.Context, filter domain.QuizFilter, userID string) ([]dto.QuizListItem, error)
	Get(ctx context.Context, id string) (*dto.QuizDetailResponse, error)
	Create(ctx context.Context, req *dto.CreateQuizRequest, creatorID string) (*dto.QuizDetailResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateQuizRequest, editorID string) (*dto.QuizDetailResponse, error)
	Delete(ctx context.Context, id string) (*dto.DeleteQuizResponse, error)
}

type quizServiceImpl struct {
	quizRepo    domain.QuizRepository
	subjectRepo domain.SubjectRepository
	attemptRepo domain.AttemptRepository
	txManager   domain.TransactionManager
}

// NewQuizService creates a new instance of QuizService.
func NewQuizService(
	quizRepo domain.QuizRepository,
	subjectRepo domain.SubjectRepository,
	attemptRepo domain.AttemptRepository,
	txManager domain.TransactionManager,
) QuizService {
	return &quizServiceImpl{
		quizRepo:    quizRepo,
		subjectRepo: subjectRepo,
		attemptRepo: attemptRepo,
		txManager:   txManager,
	}
}

func (s *quizServiceImpl) List(ctx context.Context, filter domain.QuizFilter, userID string) ([]dto.QuizListItem, error) {
	var (
		quizzes []*domain.QuizSummary
		taken   []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		quizzes, err = s.quizRepo.List(gctx, filter)
		return err
	})
	if userID != "" {
		g.Go(func() error {
			var err error
			taken, err = s.attemptRepo.ListQuizIDsByUser(gctx, userID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, domain.NewInternalError("Failed to list quizzes", err)
	}

	takenSet := make(map[string]bool, len(taken))
	for _, id := range taken {
		takenSet[id] = true
	}
	out := make([]dto.QuizListItem, 0, len(quizzes))
	for _, q := range quizzes {
		out = append(out, dto.QuizListItem{
			ID:            q.ID,
			Subject:       dto.SubjectRef{ID: q.SubjectID, Name: q.SubjectName},
			Level:         string(q.Level),
			Title:         q.Title,
			TimerMinutes:  q.TimerMinutes,
			QuestionCount: q.QuestionCount,
			HasTaken:      takenSet[q.ID],
			CreatedAt:     q.CreatedAt,
		})
	}
	return out, nil
}

func (s *quizServiceImpl) load(ctx context.Context, id string) (*domain.Quiz, error) {
	quiz, err := s.quizRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewNotFoundError("Quiz not found")
	}
	return quiz, nil
}

func (s *quizServiceImpl) Get(ctx context.Context, id string) (*dto.QuizDetailResponse, error) {
	quiz, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewQuizDetailResponse(quiz)
	return &resp, nil
}

func (s *quizServiceImpl) requireSubject(ctx context.Context, subjectID string) (*domain.Subject, error) {
	subj, err := s.subjectRepo.GetByID(ctx, subjectID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get subject", err)
	}
	if subj == nil {
		return nil, domain.NewNotFoundError("Subject not found")
	}
	return subj, nil
}

// checkQuestions enforces the catalog shape for callers that bypass request
// validation.
func checkQuestions(questions []domain.Question) error {
	if len(questions) == 0 {
		return domain.NewBadRequestError("Quiz must have at least one question")
	}
	for _, q := range questions {
		if len(q.Options) < 2 {
			return domain.NewBadRequestError("Each question must have at least two options")
		}
	}
	return nil
}

func (s *quizServiceImpl) Create(ctx context.Context, req *dto.CreateQuizRequest, creatorID string) (*dto.QuizDetailResponse, error) {
	level, ok := domain.ParseQuizLevel(req.Level)
	if !ok {
		return nil, domain.NewBadRequestError("Invalid quiz level")
	}
	questions := dto.ToDomainQuestions(req.Questions)
	if err := checkQuestions(questions); err != nil {
		return nil, err
	}
	subj, err := s.requireSubject(ctx, req.SubjectID)
	if err != nil {
		return nil, err
	}

	timer := domain.DefaultTimerMinutes
	if req.TimerMinutes != nil {
		timer = *req.TimerMinutes
	}
	quiz := &domain.Quiz{
		SubjectID:    subj.ID,
		SubjectName:  subj.Name,
		Level:        level,
		Title:        req.Title,
		TimerMinutes: timer,
		CreatedBy:    creatorID,
		Questions:    questions,
	}
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.quizRepo.Create(txCtx, quiz)
	})
	if err != nil {
		return nil, domain.NewInternalError("Failed to create quiz", err)
	}
	logger.Get().Info("Quiz created", zap.String("quizID", quiz.ID), zap.String("createdBy", creatorID))

	resp := dto.NewQuizDetailResponse(quiz)
	return &resp, nil
}

func (s *quizServiceImpl) Update(ctx context.Context, id string, req *dto.UpdateQuizRequest, editorID string) (*dto.QuizDetailResponse, error) {
	var questions []domain.Question
	if req.Questions != nil {
		questions = dto.ToDomainQuestions(req.Questions)
		if err := checkQuestions(questions); err != nil {
			return nil, err
		}
	}

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		quiz, err := s.load(txCtx, id)
		if err != nil {
			return err
		}
		if req.SubjectID != nil {
			if _, err := s.requireSubject(txCtx, *req.SubjectID); err != nil {
				return err
			}
			quiz.SubjectID = *req.SubjectID
		}
		if req.Level != nil {
			level, ok := domain.ParseQuizLevel(*req.Level)
			if !ok {
				return domain.NewBadRequestError("Invalid quiz level")
			}
			quiz.Level = level
		}
		if req.Title != nil {
			quiz.Title = *req.Title
		}
		if req.TimerMinutes != nil {
			quiz.TimerMinutes = *req.TimerMinutes
		}
		quiz.UpdatedAt = time.Now()
		if err := s.quizRepo.UpdateHeader(txCtx, quiz); err != nil {
			return domain.NewInternalError("Failed to update quiz", err)
		}
		if questions != nil {
			if err := s.quizRepo.ReplaceQuestions(txCtx, id, questions); err != nil {
				return domain.NewInternalError("Failed to replace quiz questions", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, asDomainError(err, "Failed to update quiz")
	}
	logger.Get().Info("Quiz updated", zap.String("quizID", id), zap.String("editedBy", editorID))
	return s.Get(ctx, id)
}

func (s *quizServiceImpl) Delete(ctx context.Context, id string) (*dto.DeleteQuizResponse, error) {
	var deleted bool
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		var err error
		deleted, err = s.quizRepo.Delete(txCtx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return domain.NewNotFoundError("Quiz not found")
		}
		return nil
	})
	if err != nil {
		return nil, asDomainError(err, "Failed to delete quiz")
	}
	logger.Get().Info("Quiz deleted", zap.String("quizID", id))
	return &dto.DeleteQuizResponse{Deleted: true}, nil
}

// asDomainError passes DomainErrors through and wraps anything else as an
// internal error with msg.
func asDomainError(err error, msg string) error {
	var de *domain.DomainError
	if errors.As(err, &de) {
		return de
	}
	return domain.NewInternalError(msg, err)
}
