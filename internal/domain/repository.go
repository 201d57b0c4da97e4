package domain

import (
	"context"
	"time"
)

// Repositories return (nil, nil) when a lookup finds no row and
// ErrDuplicateKey when a unique constraint rejects a write. All of them run
// inside the transaction carried by ctx when there is one.

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByIDs(ctx context.Context, ids []string) ([]*User, error)
	// Update writes profile fields: name, email, avatar, bio, preferences and
	// selected subjects.
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	// IncrementPoints atomically adds delta and returns the new total.
	IncrementPoints(ctx context.Context, id string, delta int) (int, error)
	SetPoints(ctx context.Context, id string, points int) error
	CountAll(ctx context.Context) (int, error)
	CountWithPointsAbove(ctx context.Context, points int) (int, error)
	ListTopByPoints(ctx context.Context, limit int) ([]*User, error)
	ListAllScores(ctx context.Context) ([]LeaderboardScore, error)
}

type SocialAccountRepository interface {
	FindByProvider(ctx context.Context, provider, providerUserID string) (*SocialAccount, error)
	Create(ctx context.Context, account *SocialAccount) error
	Delete(ctx context.Context, id string) error
}

type SubjectRepository interface {
	List(ctx context.Context) ([]*Subject, error)
	GetByID(ctx context.Context, id string) (*Subject, error)
	GetByName(ctx context.Context, name string) (*Subject, error)
	Create(ctx context.Context, subject *Subject) error
}

type QuizRepository interface {
	// Create inserts the quiz with all of its questions and options.
	Create(ctx context.Context, quiz *Quiz) error
	GetByID(ctx context.Context, id string) (*Quiz, error)
	List(ctx context.Context, filter QuizFilter) ([]*QuizSummary, error)
	UpdateHeader(ctx context.Context, quiz *Quiz) error
	// ReplaceQuestions drops every question of the quiz and inserts the given
	// ones in order.
	ReplaceQuestions(ctx context.Context, quizID string, questions []Question) error
	// Delete removes options, questions and the quiz. It reports false when
	// the quiz did not exist.
	Delete(ctx context.Context, id string) (bool, error)
	CountByLevel(ctx context.Context, level QuizLevel) (int, error)
}

type AttemptRepository interface {
	// Create inserts the attempt row and its submitted answers.
	Create(ctx context.Context, attempt *QuizAttempt) error
	GetByID(ctx context.Context, id string) (*QuizAttempt, error)
	GetBySlug(ctx context.Context, slug string) (*QuizAttempt, error)
	ListByUser(ctx context.Context, userID string) ([]*AttemptWithQuiz, error)
	ListQuizIDsByUser(ctx context.Context, userID string) ([]string, error)
	CountDistinctQuizzesByLevel(ctx context.Context, userID string, level QuizLevel) (int, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	// SetPublicSlug stores slug only if the attempt has none yet.
	SetPublicSlug(ctx context.Context, attemptID, slug string) (bool, error)
	SumPointsByUser(ctx context.Context, userID string) (points int, attempts int, err error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *QuizSession) error
	GetByID(ctx context.Context, id string) (*QuizSession, error)
	AbandonActiveForUser(ctx context.Context, userID string) (int64, error)
	// Touch refreshes last_seen_at of an active session owned by userID.
	Touch(ctx context.Context, id, userID string, now time.Time) (bool, error)
	MarkSubmitted(ctx context.Context, userID, quizID, attemptID string) (int64, error)
	// AbandonStale flips every active session that expired or was last seen
	// before inactiveBefore.
	AbandonStale(ctx context.Context, now, inactiveBefore time.Time) (int64, error)
}

// TransactionManager runs fn inside a database transaction stored in ctx.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// LeaderboardStore mirrors user points in a sorted structure for fast
// top-N reads. SetScore only updates members that Replace has loaded.
type LeaderboardStore interface {
	SetScore(ctx context.Context, userID string, points int) error
	Seeded(ctx context.Context) (bool, error)
	Top(ctx context.Context, limit int) ([]LeaderboardScore, error)
	Size(ctx context.Context) (int64, error)
	Replace(ctx context.Context, scores []LeaderboardScore) error
}

// QuizGenerator produces question sets for the AI quiz endpoint.
type QuizGenerator interface {
	GenerateQuestions(ctx context.Context, subject string, level QuizLevel, count int) ([]Question, error)
}

// SocialAuthProvider runs the OAuth authorization-code flow against one
// identity provider and normalizes the resulting profile.
type SocialAuthProvider interface {
	Name() string
	AuthCodeURL(state string) string
	FetchProfile(ctx context.Context, code string) (*SocialProfile, error)
}
