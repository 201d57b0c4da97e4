package repository

import (
	"context"
	"fmt"
	"time"

	"codezetta/internal/domain"
	"codezetta/internal/repository/models"
	"codezetta/internal/util"

	"github.com/jmoiron/sqlx"
)

const subjectColumns = `id, name, description, created_at, updated_at`

type sqlxSubjectRepository struct {
	db DBTX
}

func NewSQLXSubjectRepository(db *sqlx.DB) domain.SubjectRepository {
	return &sqlxSubjectRepository{db: db}
}

func toDomainSubject(m *models.Subject) *domain.Subject {
	return &domain.Subject{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description.String,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *sqlxSubjectRepository) List(ctx context.Context) ([]*domain.Subject, error) {
	var rows []models.Subject
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, `SELECT `+subjectColumns+` FROM subjects ORDER BY name`); err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	subjects := make([]*domain.Subject, 0, len(rows))
	for i := range rows {
		subjects = append(subjects, toDomainSubject(&rows[i]))
	}
	return subjects, nil
}

func (r *sqlxSubjectRepository) get(ctx context.Context, where string, arg string) (*domain.Subject, error) {
	var m models.Subject
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, `SELECT `+subjectColumns+` FROM subjects WHERE `+where, arg); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}
	return toDomainSubject(&m), nil
}

func (r *sqlxSubjectRepository) GetByID(ctx context.Context, id string) (*domain.Subject, error) {
	return r.get(ctx, `id = :1`, id)
}

func (r *sqlxSubjectRepository) GetByName(ctx context.Context, name string) (*domain.Subject, error) {
	return r.get(ctx, `name = :1`, name)
}

func (r *sqlxSubjectRepository) Create(ctx context.Context, subject *domain.Subject) error {
	if subject.ID == "" {
		subject.ID = util.NewULID()
	}
	now := time.Now()
	subject.CreatedAt = now
	subject.UpdatedAt = now

	query := `INSERT INTO subjects (id, name, description, created_at, updated_at) VALUES (:1, :2, :3, :4, :5)`
	_, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		subject.ID, subject.Name, util.StringToNullString(subject.Description), subject.CreatedAt, subject.UpdatedAt)
	if err != nil {
		return writeError("create subject", err)
	}
	return nil
}
