package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"codezetta/internal/content"
	"codezetta/internal/domain"
	"codezetta/internal/dto"
	"codezetta/internal/logger"
	"codezetta/internal/util"

	"go.uber.org/zap"
)

const (
	DefaultRandomQuestionCount = 20
	MaxRandomQuestionCount     = 100
)

// AttemptService grades submissions and serves attempt history and the
// level gate.
type AttemptService interface {
	Submit(ctx context.Context, quizID, userID string, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error)
	ListMine(ctx context.Context, userID string) ([]dto.AttemptListItem, error)
	GetDetail(ctx context.Context, attemptID, userID string) (*dto.AttemptDetailResponse, error)
	CheckLevelCompletion(ctx context.Context, level, userID string) (*dto.LevelCompletionResponse, error)
	GenerateRandomQuestions(ctx context.Context, req *dto.GenerateRandomQuestionsRequest, userID string) (*dto.GenerateRandomQuestionsResponse, error)
}

type attemptServiceImpl struct {
	quizRepo    domain.QuizRepository
	attemptRepo domain.AttemptRepository
	userRepo    domain.UserRepository
	sessionRepo domain.SessionRepository
	txManager   domain.TransactionManager
	suggester   *ArticleSuggester
	templates   *content.QuestionTemplates
	leaderboard domain.LeaderboardStore
	intn        func(n int) int
	now         func() time.Time
}

type AttemptServiceOption func(*attemptServiceImpl)

// WithRandomSource replaces the random picker used for generated questions.
func WithRandomSource(intn func(n int) int) AttemptServiceOption {
	return func(s *attemptServiceImpl) {
		s.intn = intn
	}
}

// NewAttemptService creates a new instance of AttemptService. leaderboard may
// be nil.
func NewAttemptService(
	quizRepo domain.QuizRepository,
	attemptRepo domain.AttemptRepository,
	userRepo domain.UserRepository,
	sessionRepo domain.SessionRepository,
	txManager domain.TransactionManager,
	suggester *ArticleSuggester,
	templates *content.QuestionTemplates,
	leaderboard domain.LeaderboardStore,
	opts ...AttemptServiceOption,
) AttemptService {
	s := &attemptServiceImpl{
		quizRepo:    quizRepo,
		attemptRepo: attemptRepo,
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		txManager:   txManager,
		suggester:   suggester,
		templates:   templates,
		leaderboard: leaderboard,
		intn:        rand.Intn,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *attemptServiceImpl) Submit(ctx context.Context, quizID, userID string, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
	l := logger.Get().With(zap.String("quizID", quizID), zap.String("userID", userID))

	quiz, err := s.quizRepo.GetByID(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewNotFoundError("Quiz not found")
	}
	if len(quiz.Questions) == 0 {
		return nil, domain.NewNotFoundError("Quiz has no questions")
	}

	// A later answer for the same question replaces an earlier one.
	selected := make(map[string]string, len(req.Answers))
	for _, a := range req.Answers {
		selected[a.QuestionID] = a.SelectedOptionID
	}

	subject := quiz.SubjectName
	if subject == "" {
		subject = "Unknown"
	}

	correctCount := 0
	stored := make([]domain.AttemptAnswer, 0, len(selected))
	wrong := make([]dto.WrongAnswerFeedback, 0)
	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		correct := q.CorrectOption()
		choice, answered := selected[q.ID]
		isCorrect := answered && correct != nil && choice == correct.ID

		if answered {
			stored = append(stored, domain.AttemptAnswer{QuestionID: q.ID, SelectedOptionID: choice, IsCorrect: isCorrect})
		}
		if isCorrect {
			correctCount++
			continue
		}

		feedback := dto.WrongAnswerFeedback{
			QuestionID:        q.ID,
			QuestionText:      q.Text,
			SelectedOptionID:  choice,
			Explanation:       q.Explanation,
			SuggestedArticles: s.suggester.Suggest(q, subject, quiz.Level),
		}
		if correct != nil {
			feedback.CorrectOptionID = correct.ID
		}
		wrong = append(wrong, feedback)
	}

	now := s.now()
	attempt := &domain.QuizAttempt{
		ID:                  util.NewULID(),
		UserID:              userID,
		QuizID:              quiz.ID,
		Score:               correctCount,
		TotalQuestions:      len(quiz.Questions),
		CorrectAnswersCount: correctCount,
		PointsEarned:        correctCount * domain.PointsPerCorrectAnswer,
		StartedAt:           now,
		FinishedAt:          now,
		Answers:             stored,
	}

	var total int
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.attemptRepo.Create(txCtx, attempt); err != nil {
			return err
		}
		var err error
		total, err = s.userRepo.IncrementPoints(txCtx, userID, attempt.PointsEarned)
		return err
	})
	if err != nil {
		return nil, domain.NewInternalError("Failed to save quiz attempt", err)
	}
	l.Info("Quiz attempt graded",
		zap.String("attemptID", attempt.ID),
		zap.Int("correct", correctCount),
		zap.Int("total", attempt.TotalQuestions),
		zap.Int("points", attempt.PointsEarned))

	s.afterSubmit(ctx, attempt, total)

	return &dto.SubmitQuizResponse{
		AttemptID:              attempt.ID,
		Score:                  attempt.Score,
		TotalQuestions:         attempt.TotalQuestions,
		CorrectAnswersCount:    attempt.CorrectAnswersCount,
		PointsEarned:           attempt.PointsEarned,
		UpdatedUserTotalPoints: total,
		WrongAnswers:           wrong,
	}, nil
}

// afterSubmit mirrors the new total into the leaderboard and closes the
// user's session for the quiz. Both are best effort.
func (s *attemptServiceImpl) afterSubmit(ctx context.Context, attempt *domain.QuizAttempt, total int) {
	l := logger.Get().With(zap.String("attemptID", attempt.ID), zap.String("userID", attempt.UserID))
	if s.leaderboard != nil {
		if err := s.leaderboard.SetScore(ctx, attempt.UserID, total); err != nil {
			l.Warn("Failed to update leaderboard score", zap.Error(err))
		}
	}
	if s.sessionRepo != nil {
		if _, err := s.sessionRepo.MarkSubmitted(ctx, attempt.UserID, attempt.QuizID, attempt.ID); err != nil {
			l.Warn("Failed to mark quiz session submitted", zap.Error(err))
		}
	}
}

func (s *attemptServiceImpl) ListMine(ctx context.Context, userID string) ([]dto.AttemptListItem, error) {
	attempts, err := s.attemptRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list attempts", err)
	}
	out := make([]dto.AttemptListItem, 0, len(attempts))
	for _, a := range attempts {
		out = append(out, dto.NewAttemptListItem(a))
	}
	return out, nil
}

func (s *attemptServiceImpl) GetDetail(ctx context.Context, attemptID, userID string) (*dto.AttemptDetailResponse, error) {
	attempt, err := s.attemptRepo.GetByID(ctx, attemptID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get quiz attempt", err)
	}
	if attempt == nil || attempt.UserID != userID {
		return nil, domain.NewNotFoundError("Quiz attempt not found")
	}

	quiz, err := s.quizRepo.GetByID(ctx, attempt.QuizID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get quiz", err)
	}

	resp := &dto.AttemptDetailResponse{
		ID:                  attempt.ID,
		Score:               attempt.Score,
		TotalQuestions:      attempt.TotalQuestions,
		CorrectAnswersCount: attempt.CorrectAnswersCount,
		PointsEarned:        attempt.PointsEarned,
		Percentage:          attempt.Percentage(),
		StartedAt:           attempt.StartedAt,
		FinishedAt:          attempt.FinishedAt,
	}
	if quiz != nil {
		resp.Quiz = reviewQuiz(quiz, attempt)
	}
	return resp, nil
}

func reviewQuiz(quiz *domain.Quiz, attempt *domain.QuizAttempt) *dto.ReviewQuiz {
	questions := make([]dto.ReviewQuestion, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		qType := q.Type
		if qType == "" {
			qType = domain.QuestionTypeMCQ
		}
		options := make([]dto.ReviewOption, 0, len(q.Options))
		for _, o := range q.Options {
			options = append(options, dto.ReviewOption{ID: o.ID, Text: o.Text, IsCorrect: o.IsCorrect})
		}
		rq := dto.ReviewQuestion{ID: q.ID, Text: q.Text, Type: qType, Explanation: q.Explanation, Options: options}
		if ans, ok := attempt.AnswerFor(q.ID); ok {
			rq.UserAnswer = &dto.UserAnswer{SelectedOptionID: ans.SelectedOptionID, IsCorrect: ans.IsCorrect}
		}
		questions = append(questions, rq)
	}
	return &dto.ReviewQuiz{
		ID:           quiz.ID,
		Title:        quiz.Title,
		Subject:      dto.SubjectRef{ID: quiz.SubjectID, Name: quiz.SubjectName},
		Level:        string(quiz.Level),
		TimerMinutes: quiz.TimerMinutes,
		Questions:    questions,
	}
}

func (s *attemptServiceImpl) CheckLevelCompletion(ctx context.Context, level, userID string) (*dto.LevelCompletionResponse, error) {
	lvl, ok := domain.ParseQuizLevel(level)
	if !ok {
		return nil, domain.NewBadRequestError("Invalid quiz level")
	}

	total, err := s.quizRepo.CountByLevel(ctx, lvl)
	if err != nil {
		return nil, domain.NewInternalError("Failed to count quizzes", err)
	}
	resp := &dto.LevelCompletionResponse{Level: string(lvl), TotalQuizzes: total}
	if total == 0 {
		return resp, nil
	}

	completed, err := s.attemptRepo.CountDistinctQuizzesByLevel(ctx, userID, lvl)
	if err != nil {
		return nil, domain.NewInternalError("Failed to count completed quizzes", err)
	}
	resp.CompletedQuizzes = completed
	resp.IsCompleted = completed >= total
	resp.CanGenerateRandom = resp.IsCompleted
	return resp, nil
}

func (s *attemptServiceImpl) GenerateRandomQuestions(ctx context.Context, req *dto.GenerateRandomQuestionsRequest, userID string) (*dto.GenerateRandomQuestionsResponse, error) {
	status, err := s.CheckLevelCompletion(ctx, req.Level, userID)
	if err != nil {
		return nil, err
	}
	if !status.IsCompleted {
		return nil, domain.NewBadRequestError(fmt.Sprintf(
			"You must complete all %d quizzes for %s level before generating random questions. You have completed %d.",
			status.TotalQuizzes, status.Level, status.CompletedQuizzes))
	}

	count := DefaultRandomQuestionCount
	if req.Count != nil {
		count = *req.Count
	}
	if count < 1 || count > MaxRandomQuestionCount {
		return nil, domain.NewBadRequestError(fmt.Sprintf("count must be between 1 and %d", MaxRandomQuestionCount))
	}

	return &dto.GenerateRandomQuestionsResponse{
		Questions: s.randomQuestions(domain.QuizLevel(status.Level), count),
		Level:     status.Level,
		Count:     count,
	}, nil
}

func (s *attemptServiceImpl) randomQuestions(level domain.QuizLevel, count int) []dto.RandomQuestion {
	bank := s.templates.Bank(level)
	if len(bank) == 0 {
		bank = s.templates.Bank(domain.LevelBeginner)
	}
	subjects := s.templates.RandomSubjects
	pick := func() string { return subjects[s.intn(len(subjects))] }

	// {subject} is fixed for the whole batch; {level} gets a fresh subject
	// per question.
	batchSubject := pick()
	out := make([]dto.RandomQuestion, 0, count)
	for i := 0; i < count; i++ {
		tmpl := bank[i%len(bank)]
		text := strings.Replace(tmpl.Text, "{subject}", batchSubject, 1)
		text = strings.Replace(text, "{level}", pick(), 1)

		options := make([]dto.RandomOption, 0, len(tmpl.Options))
		for j, opt := range tmpl.Options {
			options = append(options, dto.RandomOption{Text: opt, IsCorrect: j == tmpl.CorrectIndex})
		}
		out = append(out, dto.RandomQuestion{
			Text:    fmt.Sprintf("%s (Random Question %d)", text, i+1),
			Type:    domain.QuestionTypeMCQ,
			Options: options,
		})
	}
	return out
}
