package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"codezetta/internal/domain"
	"codezetta/internal/dto"
	"codezetta/internal/logger"
	"codezetta/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	shareSlugBytes    = 8
	shareSlugAttempts = 10
	shareImagePath    = "/assets/quiz-share-preview.png"
)

// ShareService publishes attempts under unguessable public slugs.
type ShareService interface {
	CreateShareLink(ctx context.Context, attemptID string) (*dto.ShareLinkResponse, error)
	GetAttemptBySlug(ctx context.Context, slug string) (*dto.SharedAttemptView, error)
	PostToLinkedIn(ctx context.Context, attemptID string) error
}

type shareServiceImpl struct {
	attemptRepo     domain.AttemptRepository
	quizRepo        domain.QuizRepository
	userRepo        domain.UserRepository
	slugCache       ShareSlugCache
	frontendBaseURL string
	newSlug         func() (string, error)
}

// NewShareService creates a new instance of ShareService.
func NewShareService(
	attemptRepo domain.AttemptRepository,
	quizRepo domain.QuizRepository,
	userRepo domain.UserRepository,
	slugCache ShareSlugCache,
	frontendBaseURL string,
) ShareService {
	if slugCache == nil {
		slugCache = &noopShareSlugCache{}
	}
	return &shareServiceImpl{
		attemptRepo:     attemptRepo,
		quizRepo:        quizRepo,
		userRepo:        userRepo,
		slugCache:       slugCache,
		frontendBaseURL: strings.TrimRight(frontendBaseURL, "/"),
		newSlug:         func() (string, error) { return util.RandomURLSafe(shareSlugBytes) },
	}
}

func (s *shareServiceImpl) CreateShareLink(ctx context.Context, attemptID string) (*dto.ShareLinkResponse, error) {
	attempt, err := s.attemptRepo.GetByID(ctx, attemptID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get quiz attempt", err)
	}
	if attempt == nil {
		return nil, domain.NewNotFoundError("Quiz attempt not found")
	}

	slug := attempt.PublicSlug
	if slug == "" {
		slug, err = s.assignSlug(ctx, attempt.ID)
		if err != nil {
			return nil, err
		}
	}
	if err := s.slugCache.Put(ctx, slug, attempt.ID); err != nil {
		logger.Get().Warn("Failed to cache share slug", zap.String("slug", slug), zap.Error(err))
	}

	quiz, err := s.quizRepo.GetByID(ctx, attempt.QuizID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get quiz", err)
	}
	subject := "Quiz"
	if quiz != nil && quiz.SubjectName != "" {
		subject = quiz.SubjectName
	}

	return &dto.ShareLinkResponse{
		URL: s.shareURL(slug),
		OGTitle: fmt.Sprintf("I scored %d/%d (%d%%) on %s!",
			attempt.CorrectAnswersCount, attempt.TotalQuestions, attempt.Percentage(), subject),
		OGDescription: fmt.Sprintf("Check out my quiz result on CodeZetta! %d points earned 🏆", attempt.PointsEarned),
	}, nil
}

// assignSlug draws random slugs until an unused one is found and stores it.
// When another request stored a slug first, that slug is returned instead.
func (s *shareServiceImpl) assignSlug(ctx context.Context, attemptID string) (string, error) {
	l := logger.Get().With(zap.String("attemptID", attemptID))
	for i := 0; i < shareSlugAttempts; i++ {
		candidate, err := s.newSlug()
		if err != nil {
			return "", domain.NewInternalError("Failed to generate share slug", err)
		}
		taken, err := s.attemptRepo.SlugExists(ctx, candidate)
		if err != nil {
			return "", domain.NewInternalError("Failed to check share slug", err)
		}
		if taken {
			l.Debug("Share slug collision", zap.Int("try", i+1))
			continue
		}

		stored, err := s.attemptRepo.SetPublicSlug(ctx, attemptID, candidate)
		if err != nil {
			if errors.Is(err, domain.ErrDuplicateKey) {
				continue
			}
			return "", domain.NewInternalError("Failed to save share slug", err)
		}
		if stored {
			l.Info("Share link created", zap.String("slug", candidate))
			return candidate, nil
		}

		winner, err := s.attemptRepo.GetByID(ctx, attemptID)
		if err != nil {
			return "", domain.NewInternalError("Failed to get quiz attempt", err)
		}
		if winner == nil {
			return "", domain.NewNotFoundError("Quiz attempt not found")
		}
		if winner.PublicSlug != "" {
			return winner.PublicSlug, nil
		}
	}
	l.Warn("Gave up generating share slug", zap.Int("tries", shareSlugAttempts))
	return "", domain.NewBadRequestError("Failed to generate unique share link")
}

func (s *shareServiceImpl) GetAttemptBySlug(ctx context.Context, slug string) (*dto.SharedAttemptView, error) {
	attempt, err := s.attemptBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	var (
		quiz *domain.Quiz
		user *domain.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		quiz, err = s.quizRepo.GetByID(gctx, attempt.QuizID)
		return err
	})
	g.Go(func() error {
		var err error
		user, err = s.userRepo.GetByID(gctx, attempt.UserID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, domain.NewInternalError("Failed to load shared attempt", err)
	}

	view := &dto.SharedAttemptView{
		URL:            s.shareURL(slug),
		ImageURL:       s.frontendBaseURL + shareImagePath,
		UserName:       "Someone",
		Score:          attempt.Score,
		TotalQuestions: attempt.TotalQuestions,
		Percentage:     attempt.Percentage(),
		PointsEarned:   attempt.PointsEarned,
	}
	if user != nil {
		view.UserName = user.Name
	}
	subjectTitle, subjectText := "Quiz", "a quiz"
	if quiz != nil {
		view.QuizTitle = quiz.Title
		view.Level = string(quiz.Level)
		view.Subject = quiz.SubjectName
		if quiz.SubjectName != "" {
			subjectTitle, subjectText = quiz.SubjectName, quiz.SubjectName
		}
	}
	view.Title = fmt.Sprintf("I scored %d/%d (%d%%) on %s!",
		attempt.CorrectAnswersCount, attempt.TotalQuestions, view.Percentage, subjectTitle)
	view.Description = fmt.Sprintf("%s scored %d%% on %s! %d points earned 🏆",
		view.UserName, view.Percentage, subjectText, attempt.PointsEarned)
	return view, nil
}

// attemptBySlug resolves the slug through the cache first. A stale cache
// entry is evicted and the database lookup decides.
func (s *shareServiceImpl) attemptBySlug(ctx context.Context, slug string) (*domain.QuizAttempt, error) {
	if attemptID, err := s.slugCache.Get(ctx, slug); err == nil {
		attempt, err := s.attemptRepo.GetByID(ctx, attemptID)
		if err != nil {
			return nil, domain.NewInternalError("Failed to get quiz attempt", err)
		}
		if attempt != nil && attempt.PublicSlug == slug {
			return attempt, nil
		}
		if err := s.slugCache.Evict(ctx, slug); err != nil {
			logger.Get().Warn("Failed to evict stale share slug", zap.String("slug", slug), zap.Error(err))
		}
	} else if !errors.Is(err, ErrShareSlugNotCached) {
		logger.Get().Warn("Share slug cache lookup failed", zap.String("slug", slug), zap.Error(err))
	}

	attempt, err := s.attemptRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get quiz attempt", err)
	}
	if attempt == nil {
		return nil, domain.NewNotFoundError("Share link not found")
	}
	if err := s.slugCache.Put(ctx, slug, attempt.ID); err != nil {
		logger.Get().Warn("Failed to cache share slug", zap.String("slug", slug), zap.Error(err))
	}
	return attempt, nil
}

func (s *shareServiceImpl) PostToLinkedIn(ctx context.Context, attemptID string) error {
	attempt, err := s.attemptRepo.GetByID(ctx, attemptID)
	if err != nil {
		return domain.NewInternalError("Failed to get quiz attempt", err)
	}
	if attempt == nil {
		return domain.NewNotFoundError("Quiz attempt not found")
	}
	// TODO: post through the LinkedIn UGC API once member access tokens are stored.
	return domain.NewBadRequestError("LinkedIn posting is not yet implemented. Please use the share link feature instead.")
}

func (s *shareServiceImpl) shareURL(slug string) string {
	return s.frontendBaseURL + "/share/attempt/" + slug
}
