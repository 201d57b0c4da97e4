package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"codezetta/internal/domain"
	"codezetta/internal/dto"
	"codezetta/internal/logger"
	"codezetta/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type SubjectService interface {
	List(ctx context.Context) ([]dto.SubjectResponse, error)
	Get(ctx context.Context, id string) (*dto.SubjectResponse, error)
	Create(ctx context.Context, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error)
	// FindOrCreate returns the subject named name, creating it with
	// description when it does not exist yet.
	FindOrCreate(ctx context.Context, name, description string) (*domain.Subject, error)
}

type subjectServiceImpl struct {
	subjectRepo domain.SubjectRepository
	seedGroup   singleflight.Group
}

func NewSubjectService(subjectRepo domain.SubjectRepository) SubjectService {
	return &subjectServiceImpl{subjectRepo: subjectRepo}
}

func (s *subjectServiceImpl) List(ctx context.Context) ([]dto.SubjectResponse, error) {
	if err := s.ensureSeeded(ctx); err != nil {
		return nil, err
	}
	subjects, err := s.subjectRepo.List(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list subjects", err)
	}
	out := make([]dto.SubjectResponse, 0, len(subjects))
	for _, subj := range subjects {
		out = append(out, dto.NewSubjectResponse(subj))
	}
	return out, nil
}

// ensureSeeded inserts every known subject name that is missing. Concurrent
// callers share one seeding run.
func (s *subjectServiceImpl) ensureSeeded(ctx context.Context) error {
	_, err, _ := s.seedGroup.Do("seed", func() (interface{}, error) {
		existing, err := s.subjectRepo.List(ctx)
		if err != nil {
			return nil, domain.NewInternalError("Failed to list subjects", err)
		}
		have := make(map[string]bool, len(existing))
		for _, subj := range existing {
			have[subj.Name] = true
		}
		for _, name := range domain.SubjectNames {
			if have[name] {
				continue
			}
			_, err := s.create(ctx, name, fmt.Sprintf("%s subject", name))
			switch {
			case err == nil:
				logger.Get().Info("Seeded missing subject", zap.String("name", name))
			case !errors.Is(err, domain.ErrDuplicateKey):
				return nil, domain.NewInternalError("Failed to seed subjects", err)
			}
		}
		return nil, nil
	})
	return err
}

func (s *subjectServiceImpl) Get(ctx context.Context, id string) (*dto.SubjectResponse, error) {
	subj, err := s.subjectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get subject", err)
	}
	if subj == nil {
		return nil, domain.NewNotFoundError("Subject not found")
	}
	resp := dto.NewSubjectResponse(subj)
	return &resp, nil
}

func (s *subjectServiceImpl) Create(ctx context.Context, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error) {
	subj, err := s.create(ctx, req.Name, req.Description)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, domain.NewConflictError("Subject already exists")
		}
		return nil, domain.NewInternalError("Failed to create subject", err)
	}
	resp := dto.NewSubjectResponse(subj)
	return &resp, nil
}

func (s *subjectServiceImpl) FindOrCreate(ctx context.Context, name, description string) (*domain.Subject, error) {
	subj, err := s.subjectRepo.GetByName(ctx, name)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get subject", err)
	}
	if subj != nil {
		return subj, nil
	}

	subj, err = s.create(ctx, name, description)
	if errors.Is(err, domain.ErrDuplicateKey) {
		subj, err = s.subjectRepo.GetByName(ctx, name)
	}
	if err != nil {
		return nil, domain.NewInternalError("Failed to create subject", err)
	}
	if subj == nil {
		return nil, domain.NewNotFoundError("Subject not found")
	}
	return subj, nil
}

func (s *subjectServiceImpl) create(ctx context.Context, name, description string) (*domain.Subject, error) {
	now := time.Now()
	subj := &domain.Subject{
		ID:          util.NewULID(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.subjectRepo.Create(ctx, subj); err != nil {
		return nil, err
	}
	return subj, nil
}
