package service

import (
	"context"
	"time"

	"codezetta/internal/domain"
	"codezetta/internal/dto"
	"codezetta/internal/logger"
	"codezetta/internal/util"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SessionService tracks in-progress quiz takes.
type SessionService interface {
	Start(ctx context.Context, userID, quizID string) (*dto.SessionResponse, error)
	Heartbeat(ctx context.Context, userID, sessionID string) error
}

type sessionServiceImpl struct {
	sessionRepo domain.SessionRepository
	quizRepo    domain.QuizRepository
	txManager   domain.TransactionManager
	now         func() time.Time
}

// NewSessionService creates a new instance of SessionService.
func NewSessionService(sessionRepo domain.SessionRepository, quizRepo domain.QuizRepository, txManager domain.TransactionManager) SessionService {
	return &sessionServiceImpl{
		sessionRepo: sessionRepo,
		quizRepo:    quizRepo,
		txManager:   txManager,
		now:         time.Now,
	}
}

func (s *sessionServiceImpl) Start(ctx context.Context, userID, quizID string) (*dto.SessionResponse, error) {
	quiz, err := s.quizRepo.GetByID(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewNotFoundError("Quiz not found")
	}

	timer := quiz.TimerMinutes
	if timer <= 0 {
		timer = domain.DefaultTimerMinutes
	}
	now := s.now()
	session := &domain.QuizSession{
		ID:         util.NewULID(),
		UserID:     userID,
		QuizID:     quiz.ID,
		Status:     domain.SessionActive,
		StartedAt:  now,
		LastSeenAt: now,
		ExpiresAt:  now.Add(time.Duration(timer) * time.Minute),
	}

	var abandoned int64
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		var err error
		if abandoned, err = s.sessionRepo.AbandonActiveForUser(txCtx, userID); err != nil {
			return err
		}
		return s.sessionRepo.Create(txCtx, session)
	})
	if err != nil {
		return nil, domain.NewInternalError("Failed to start quiz session", err)
	}
	logger.Get().Info("Quiz session started",
		zap.String("sessionID", session.ID),
		zap.String("userID", userID),
		zap.String("quizID", quiz.ID),
		zap.Int64("abandoned", abandoned))

	return &dto.SessionResponse{
		ID:         session.ID,
		QuizID:     session.QuizID,
		Status:     string(session.Status),
		StartedAt:  session.StartedAt,
		LastSeenAt: session.LastSeenAt,
		ExpiresAt:  session.ExpiresAt,
	}, nil
}

func (s *sessionServiceImpl) Heartbeat(ctx context.Context, userID, sessionID string) error {
	ok, err := s.sessionRepo.Touch(ctx, sessionID, userID, s.now())
	if err != nil {
		return domain.NewInternalError("Failed to update quiz session", err)
	}
	if !ok {
		return domain.NewNotFoundError("Active quiz session not found")
	}
	return nil
}

// SessionSweeper periodically abandons sessions that expired or stopped
// sending heartbeats.
type SessionSweeper struct {
	sessionRepo     domain.SessionRepository
	schedule        string
	inactiveTimeout time.Duration
	cron            *cron.Cron
	now             func() time.Time
}

func NewSessionSweeper(sessionRepo domain.SessionRepository, schedule string, inactiveTimeout time.Duration) *SessionSweeper {
	return &SessionSweeper{
		sessionRepo:     sessionRepo,
		schedule:        schedule,
		inactiveTimeout: inactiveTimeout,
		cron:            cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		now:             time.Now,
	}
}

// Start registers the sweep job and starts the scheduler in its own goroutine.
func (s *SessionSweeper) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, func() { s.Sweep(context.Background()) }); err != nil {
		return err
	}
	s.cron.Start()
	logger.Get().Info("Session sweeper started",
		zap.String("schedule", s.schedule),
		zap.Duration("inactiveTimeout", s.inactiveTimeout))
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (s *SessionSweeper) Stop() {
	<-s.cron.Stop().Done()
	logger.Get().Info("Session sweeper stopped")
}

// Sweep runs one abandonment pass and returns the number of sessions it
// closed.
func (s *SessionSweeper) Sweep(ctx context.Context) int64 {
	now := s.now()
	n, err := s.sessionRepo.AbandonStale(ctx, now, now.Add(-s.inactiveTimeout))
	if err != nil {
		logger.Get().Error("Session sweep failed", zap.Error(err))
		return 0
	}
	if n > 0 {
		logger.Get().Info("Abandoned stale quiz sessions", zap.Int64("count", n))
	}
	return n
}
