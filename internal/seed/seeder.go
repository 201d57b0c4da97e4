// Package seed loads the initial admin account, subjects and quiz catalog.
package seed

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"codezetta/internal/domain"
	"codezetta/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Options struct {
	AdminName        string
	AdminEmail       string
	AdminPassword    string
	BcryptCost       int
	QuizzesPerLevel  int
	QuestionsPerQuiz int
	TimerMinutes     int
}

func DefaultOptions() Options {
	return Options{
		AdminName:        "Admin User",
		AdminEmail:       "admin@quiz.com",
		AdminPassword:    "admin123",
		BcryptCost:       bcrypt.DefaultCost,
		QuizzesPerLevel:  5,
		QuestionsPerQuiz: 20,
		TimerMinutes:     domain.DefaultTimerMinutes,
	}
}

// Result summarizes one seeding run.
type Result struct {
	AdminCreated     bool
	SubjectsCreated  int
	QuizzesCreated   int
	QuizzesSkipped   int
	QuestionsCreated int
}

type Seeder struct {
	users     domain.UserRepository
	subjects  domain.SubjectRepository
	quizzes   domain.QuizRepository
	txManager domain.TransactionManager
	bank      QuestionBank
	opts      Options
	rnd       *rand.Rand
}

func NewSeeder(
	users domain.UserRepository,
	subjects domain.SubjectRepository,
	quizzes domain.QuizRepository,
	txManager domain.TransactionManager,
	bank QuestionBank,
	opts Options,
) *Seeder {
	return &Seeder{
		users:     users,
		subjects:  subjects,
		quizzes:   quizzes,
		txManager: txManager,
		bank:      bank,
		opts:      opts,
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run is idempotent: the admin, subjects and quizzes that already exist
// (quizzes matched by title within subject and level) are left untouched.
// Each subject is seeded in its own transaction.
func (s *Seeder) Run(ctx context.Context) (*Result, error) {
	log := logger.Get()
	result := &Result{}

	admin, created, err := s.ensureAdmin(ctx)
	if err != nil {
		return result, err
	}
	result.AdminCreated = created
	log.Info("Admin user ready", zap.String("email", admin.Email), zap.Bool("created", created))

	for _, name := range domain.SubjectNames {
		err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
			return s.seedSubject(ctx, name, admin.ID, result)
		})
		if err != nil {
			log.Error("Error seeding subject, transaction rolled back", zap.String("subject", name), zap.Error(err))
			return result, fmt.Errorf("seed subject %s: %w", name, err)
		}
	}

	log.Info("Seed completed",
		zap.Int("subjectsCreated", result.SubjectsCreated),
		zap.Int("quizzesCreated", result.QuizzesCreated),
		zap.Int("quizzesSkipped", result.QuizzesSkipped),
		zap.Int("questionsCreated", result.QuestionsCreated))
	return result, nil
}

func (s *Seeder) ensureAdmin(ctx context.Context) (*domain.User, bool, error) {
	existing, err := s.users.GetByEmail(ctx, s.opts.AdminEmail)
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up admin user: %w", err)
	}
	if existing != nil {
		return existing, false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.opts.AdminPassword), s.opts.BcryptCost)
	if err != nil {
		return nil, false, fmt.Errorf("failed to hash admin password: %w", err)
	}
	admin := &domain.User{
		Name:             s.opts.AdminName,
		Email:            s.opts.AdminEmail,
		PasswordHash:     string(hash),
		Role:             domain.RoleAdmin,
		SelectedSubjects: []string{},
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return nil, false, fmt.Errorf("failed to create admin user: %w", err)
	}
	return admin, true, nil
}

func (s *Seeder) seedSubject(ctx context.Context, name, adminID string, result *Result) error {
	log := logger.Get()

	subject, err := s.subjects.GetByName(ctx, name)
	if err != nil {
		return fmt.Errorf("error checking subject: %w", err)
	}
	if subject == nil {
		subject = &domain.Subject{Name: name, Description: name + " subject"}
		err := s.subjects.Create(ctx, subject)
		switch {
		case errors.Is(err, domain.ErrDuplicateKey):
			if subject, err = s.subjects.GetByName(ctx, name); err != nil || subject == nil {
				return fmt.Errorf("subject %s vanished after duplicate insert: %v", name, err)
			}
		case err != nil:
			return fmt.Errorf("failed to create subject: %w", err)
		default:
			result.SubjectsCreated++
			log.Info("Created subject", zap.String("id", subject.ID), zap.String("name", name))
		}
	}

	for _, level := range domain.QuizLevels {
		existing, err := s.quizzes.List(ctx, domain.QuizFilter{SubjectID: subject.ID, Level: level})
		if err != nil {
			return fmt.Errorf("failed to list %s quizzes: %w", level, err)
		}
		titles := make(map[string]bool, len(existing))
		for _, q := range existing {
			titles[q.Title] = true
		}

		for n := 1; n <= s.opts.QuizzesPerLevel; n++ {
			title := QuizTitle(name, level, n)
			if titles[title] {
				result.QuizzesSkipped++
				continue
			}
			quiz := &domain.Quiz{
				SubjectID:    subject.ID,
				SubjectName:  name,
				Level:        level,
				Title:        title,
				TimerMinutes: s.opts.TimerMinutes,
				CreatedBy:    adminID,
				Questions:    s.bank.Questions(name, level, s.opts.QuestionsPerQuiz, s.rnd),
			}
			if err := s.quizzes.Create(ctx, quiz); err != nil {
				return fmt.Errorf("failed to save quiz %q: %w", title, err)
			}
			result.QuizzesCreated++
			result.QuestionsCreated += len(quiz.Questions)
			log.Debug("Created quiz", zap.String("id", quiz.ID), zap.String("title", title))
		}
	}
	return nil
}

// QuizTitle names the n-th seeded quiz, e.g. "HTML Beginner Quiz 1".
func QuizTitle(subject string, level domain.QuizLevel, n int) string {
	l := string(level)
	if l != "" {
		l = strings.ToUpper(l[:1]) + l[1:]
	}
	return fmt.Sprintf("%s %s Quiz %d", subject, l, n)
}
