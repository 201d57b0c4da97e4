package service

import (
	"context"
	"testing"

	"codezetta/internal/domain"
	"codezetta/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSubjectService_List_SeedsMissing(t *testing.T) {
	repo := new(MockSubjectRepository)
	svc := NewSubjectService(repo)

	existing := make([]*domain.Subject, 0, len(domain.SubjectNames))
	for _, name := range domain.SubjectNames {
		if name == "React" || name == "NodeJS" {
			continue
		}
		existing = append(existing, &domain.Subject{ID: name, Name: name})
	}
	full := append(existing, &domain.Subject{ID: "React", Name: "React"}, &domain.Subject{ID: "NodeJS", Name: "NodeJS"})

	repo.On("List", mock.Anything).Return(existing, nil).Once()
	repo.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.Subject) bool {
		return s.Name == "React" && s.Description == "React subject"
	})).Return(nil)
	// A concurrent seeder already inserted NodeJS.
	repo.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.Subject) bool {
		return s.Name == "NodeJS"
	})).Return(domain.ErrDuplicateKey)
	repo.On("List", mock.Anything).Return(full, nil).Once()

	subjects, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, subjects, len(domain.SubjectNames))
	repo.AssertNumberOfCalls(t, "Create", 2)
}

func TestSubjectService_Get(t *testing.T) {
	repo := new(MockSubjectRepository)
	svc := NewSubjectService(repo)
	repo.On("GetByID", mock.Anything, "s1").Return(&domain.Subject{ID: "s1", Name: "HTML", Description: "HTML subject"}, nil)
	repo.On("GetByID", mock.Anything, "nope").Return(nil, nil)

	resp, err := svc.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "HTML", resp.Name)

	_, err = svc.Get(context.Background(), "nope")
	require.Error(t, err)
	assert.Equal(t, "Subject not found", err.Error())
}

func TestSubjectService_Create_Duplicate(t *testing.T) {
	repo := new(MockSubjectRepository)
	svc := NewSubjectService(repo)
	repo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateKey)

	_, err := svc.Create(context.Background(), &dto.CreateSubjectRequest{Name: "HTML"})
	assert.True(t, domain.IsErrorCode(err, domain.ErrConflict))
}

func TestSubjectService_FindOrCreate(t *testing.T) {
	t.Run("existing", func(t *testing.T) {
		repo := new(MockSubjectRepository)
		svc := NewSubjectService(repo)
		repo.On("GetByName", mock.Anything, "CSS").Return(&domain.Subject{ID: "s2", Name: "CSS"}, nil)

		subj, err := svc.FindOrCreate(context.Background(), "CSS", "CSS subject auto-created")
		require.NoError(t, err)
		assert.Equal(t, "s2", subj.ID)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("created", func(t *testing.T) {
		repo := new(MockSubjectRepository)
		svc := NewSubjectService(repo)
		repo.On("GetByName", mock.Anything, "CSS").Return(nil, nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.Subject) bool {
			return s.Description == "CSS subject auto-created"
		})).Return(nil)

		subj, err := svc.FindOrCreate(context.Background(), "CSS", "CSS subject auto-created")
		require.NoError(t, err)
		assert.Equal(t, "CSS", subj.Name)
		assert.NotEmpty(t, subj.ID)
	})

	t.Run("lost the race", func(t *testing.T) {
		repo := new(MockSubjectRepository)
		svc := NewSubjectService(repo)
		repo.On("GetByName", mock.Anything, "CSS").Return(nil, nil).Once()
		repo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateKey)
		repo.On("GetByName", mock.Anything, "CSS").Return(&domain.Subject{ID: "winner", Name: "CSS"}, nil).Once()

		subj, err := svc.FindOrCreate(context.Background(), "CSS", "")
		require.NoError(t, err)
		assert.Equal(t, "winner", subj.ID)
	})
}
