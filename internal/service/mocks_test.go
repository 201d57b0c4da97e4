package service

import (
	"context"
	"time"

	"codezetta/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockUserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) IncrementPoints(ctx context.Context, id string, delta int) (int, error) {
	args := m.Called(ctx, id, delta)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) SetPoints(ctx context.Context, id string, points int) error {
	args := m.Called(ctx, id, points)
	return args.Error(0)
}

func (m *MockUserRepository) CountAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) CountWithPointsAbove(ctx context.Context, points int) (int, error) {
	args := m.Called(ctx, points)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) ListTopByPoints(ctx context.Context, limit int) ([]*domain.User, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListAllScores(ctx context.Context) ([]domain.LeaderboardScore, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaderboardScore), args.Error(1)
}

// --- MockSocialAccountRepository ---
type MockSocialAccountRepository struct {
	mock.Mock
}

func (m *MockSocialAccountRepository) FindByProvider(ctx context.Context, provider, providerUserID string) (*domain.SocialAccount, error) {
	args := m.Called(ctx, provider, providerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SocialAccount), args.Error(1)
}

func (m *MockSocialAccountRepository) Create(ctx context.Context, account *domain.SocialAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockSocialAccountRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- MockSubjectRepository ---
type MockSubjectRepository struct {
	mock.Mock
}

func (m *MockSubjectRepository) List(ctx context.Context) ([]*domain.Subject, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Subject), args.Error(1)
}

func (m *MockSubjectRepository) GetByID(ctx context.Context, id string) (*domain.Subject, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subject), args.Error(1)
}

func (m *MockSubjectRepository) GetByName(ctx context.Context, name string) (*domain.Subject, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subject), args.Error(1)
}

func (m *MockSubjectRepository) Create(ctx context.Context, subject *domain.Subject) error {
	args := m.Called(ctx, subject)
	return args.Error(0)
}

// --- MockQuizRepository ---
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) Create(ctx context.Context, quiz *domain.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) GetByID(ctx context.Context, id string) (*domain.Quiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quiz), args.Error(1)
}

func (m *MockQuizRepository) List(ctx context.Context, filter domain.QuizFilter) ([]*domain.QuizSummary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.QuizSummary), args.Error(1)
}

func (m *MockQuizRepository) UpdateHeader(ctx context.Context, quiz *domain.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) ReplaceQuestions(ctx context.Context, quizID string, questions []domain.Question) error {
	args := m.Called(ctx, quizID, questions)
	return args.Error(0)
}

func (m *MockQuizRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockQuizRepository) CountByLevel(ctx context.Context, level domain.QuizLevel) (int, error) {
	args := m.Called(ctx, level)
	return args.Int(0), args.Error(1)
}

// --- MockAttemptRepository ---
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) Create(ctx context.Context, attempt *domain.QuizAttempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockAttemptRepository) GetByID(ctx context.Context, id string) (*domain.QuizAttempt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizAttempt), args.Error(1)
}

func (m *MockAttemptRepository) GetBySlug(ctx context.Context, slug string) (*domain.QuizAttempt, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizAttempt), args.Error(1)
}

func (m *MockAttemptRepository) ListByUser(ctx context.Context, userID string) ([]*domain.AttemptWithQuiz, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AttemptWithQuiz), args.Error(1)
}

func (m *MockAttemptRepository) ListQuizIDsByUser(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAttemptRepository) CountDistinctQuizzesByLevel(ctx context.Context, userID string, level domain.QuizLevel) (int, error) {
	args := m.Called(ctx, userID, level)
	return args.Int(0), args.Error(1)
}

func (m *MockAttemptRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockAttemptRepository) SetPublicSlug(ctx context.Context, attemptID, slug string) (bool, error) {
	args := m.Called(ctx, attemptID, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockAttemptRepository) SumPointsByUser(ctx context.Context, userID string) (int, int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Int(1), args.Error(2)
}

// --- MockSessionRepository ---
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session *domain.QuizSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) GetByID(ctx context.Context, id string) (*domain.QuizSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizSession), args.Error(1)
}

func (m *MockSessionRepository) AbandonActiveForUser(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionRepository) Touch(ctx context.Context, id, userID string, now time.Time) (bool, error) {
	args := m.Called(ctx, id, userID, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockSessionRepository) MarkSubmitted(ctx context.Context, userID, quizID, attemptID string) (int64, error) {
	args := m.Called(ctx, userID, quizID, attemptID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionRepository) AbandonStale(ctx context.Context, now, inactiveBefore time.Time) (int64, error) {
	args := m.Called(ctx, now, inactiveBefore)
	return args.Get(0).(int64), args.Error(1)
}

// --- MockTransactionManager ---
// Runs fn directly with the caller's context.
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// --- MockLeaderboardStore ---
type MockLeaderboardStore struct {
	mock.Mock
}

func (m *MockLeaderboardStore) SetScore(ctx context.Context, userID string, points int) error {
	args := m.Called(ctx, userID, points)
	return args.Error(0)
}

func (m *MockLeaderboardStore) Top(ctx context.Context, limit int) ([]domain.LeaderboardScore, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaderboardScore), args.Error(1)
}

func (m *MockLeaderboardStore) Seeded(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockLeaderboardStore) Size(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeaderboardStore) Replace(ctx context.Context, scores []domain.LeaderboardScore) error {
	args := m.Called(ctx, scores)
	return args.Error(0)
}

// --- MockQuizGenerator ---
type MockQuizGenerator struct {
	mock.Mock
}

func (m *MockQuizGenerator) GenerateQuestions(ctx context.Context, subject string, level domain.QuizLevel, count int) ([]domain.Question, error) {
	args := m.Called(ctx, subject, level, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Question), args.Error(1)
}

// --- MockSocialAuthProvider ---
type MockSocialAuthProvider struct {
	mock.Mock
	name string
}

func (m *MockSocialAuthProvider) Name() string {
	return m.name
}

func (m *MockSocialAuthProvider) AuthCodeURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockSocialAuthProvider) FetchProfile(ctx context.Context, code string) (*domain.SocialProfile, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SocialProfile), args.Error(1)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- MockShareSlugCache ---
type MockShareSlugCache struct {
	mock.Mock
}

func (m *MockShareSlugCache) Put(ctx context.Context, slug, attemptID string) error {
	args := m.Called(ctx, slug, attemptID)
	return args.Error(0)
}

func (m *MockShareSlugCache) Get(ctx context.Context, slug string) (string, error) {
	args := m.Called(ctx, slug)
	return args.String(0), args.Error(1)
}

func (m *MockShareSlugCache) Evict(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

var (
	_ domain.UserRepository          = (*MockUserRepository)(nil)
	_ domain.SocialAccountRepository = (*MockSocialAccountRepository)(nil)
	_ domain.SubjectRepository       = (*MockSubjectRepository)(nil)
	_ domain.QuizRepository          = (*MockQuizRepository)(nil)
	_ domain.AttemptRepository       = (*MockAttemptRepository)(nil)
	_ domain.SessionRepository       = (*MockSessionRepository)(nil)
	_ domain.TransactionManager      = (*MockTransactionManager)(nil)
	_ domain.LeaderboardStore        = (*MockLeaderboardStore)(nil)
	_ domain.QuizGenerator           = (*MockQuizGenerator)(nil)
	_ domain.SocialAuthProvider      = (*MockSocialAuthProvider)(nil)
	_ domain.Cache                   = (*MockCache)(nil)
	_ ShareSlugCache                 = (*MockShareSlugCache)(nil)
)
