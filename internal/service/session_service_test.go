package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"codezetta/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSessionService_Start(t *testing.T) {
	sessionRepo := new(MockSessionRepository)
	quizRepo := new(MockQuizRepository)
	svc := NewSessionService(sessionRepo, quizRepo, &MockTransactionManager{}).(*sessionServiceImpl)
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	quiz := sampleQuiz()
	quiz.TimerMinutes = 15
	quizRepo.On("GetByID", mock.Anything, "quiz1").Return(quiz, nil)
	quizRepo.On("GetByID", mock.Anything, "nope").Return(nil, nil)
	sessionRepo.On("AbandonActiveForUser", mock.Anything, "u1").Return(int64(1), nil)
	sessionRepo.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.QuizSession) bool {
		return s.Status == domain.SessionActive && s.UserID == "u1"
	})).Return(nil)

	resp, err := svc.Start(context.Background(), "u1", "quiz1")
	require.NoError(t, err)
	assert.Equal(t, "active", resp.Status)
	assert.Equal(t, now.Add(15*time.Minute), resp.ExpiresAt)
	assert.Equal(t, now, resp.LastSeenAt)

	_, err = svc.Start(context.Background(), "u1", "nope")
	assert.True(t, domain.IsErrorCode(err, domain.ErrNotFound))
}

func TestSessionService_Heartbeat(t *testing.T) {
	sessionRepo := new(MockSessionRepository)
	svc := NewSessionService(sessionRepo, nil, &MockTransactionManager{})
	sessionRepo.On("Touch", mock.Anything, "s1", "u1", mock.AnythingOfType("time.Time")).Return(true, nil)
	sessionRepo.On("Touch", mock.Anything, "s2", "u1", mock.AnythingOfType("time.Time")).Return(false, nil)

	assert.NoError(t, svc.Heartbeat(context.Background(), "u1", "s1"))
	err := svc.Heartbeat(context.Background(), "u1", "s2")
	assert.True(t, domain.IsErrorCode(err, domain.ErrNotFound))
}

func TestSessionSweeper_Sweep(t *testing.T) {
	sessionRepo := new(MockSessionRepository)
	sweeper := NewSessionSweeper(sessionRepo, "@every 2m", 2*time.Minute)
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	sweeper.now = func() time.Time { return now }

	sessionRepo.On("AbandonStale", mock.Anything, now, now.Add(-2*time.Minute)).Return(int64(3), nil).Once()
	assert.Equal(t, int64(3), sweeper.Sweep(context.Background()))

	sessionRepo.On("AbandonStale", mock.Anything, now, now.Add(-2*time.Minute)).Return(int64(0), errors.New("db down")).Once()
	assert.Equal(t, int64(0), sweeper.Sweep(context.Background()))
}

func TestSessionSweeper_StartRejectsBadSchedule(t *testing.T) {
	sweeper := NewSessionSweeper(new(MockSessionRepository), "not a schedule", time.Minute)
	assert.Error(t, sweeper.Start())

	ok := NewSessionSweeper(new(MockSessionRepository), "@every 1h", time.Minute)
	require.NoError(t, ok.Start())
	ok.Stop()
}
