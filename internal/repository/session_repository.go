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

type sqlxSessionRepository struct {
	db DBTX
}

func NewSQLXSessionRepository(db *sqlx.DB) domain.SessionRepository {
	return &sqlxSessionRepository{db: db}
}

func (r *sqlxSessionRepository) Create(ctx context.Context, session *domain.QuizSession) error {
	if session.ID == "" {
		session.ID = util.NewULID()
	}
	query := `INSERT INTO quiz_sessions (id, user_id, quiz_id, status, started_at, last_seen_at, expires_at, attempt_id)
	          VALUES (:1, :2, :3, :4, :5, :6, :7, :8)`
	_, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		session.ID, session.UserID, session.QuizID, string(session.Status),
		session.StartedAt, session.LastSeenAt, session.ExpiresAt, util.StringToNullString(session.AttemptID))
	if err != nil {
		return writeError("create quiz session", err)
	}
	return nil
}

func (r *sqlxSessionRepository) GetByID(ctx context.Context, id string) (*domain.QuizSession, error) {
	var m models.QuizSession
	query := `SELECT id, user_id, quiz_id, status, started_at, last_seen_at, expires_at, attempt_id FROM quiz_sessions WHERE id = :1`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, id); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz session: %w", err)
	}
	return &domain.QuizSession{
		ID:         m.ID,
		UserID:     m.UserID,
		QuizID:     m.QuizID,
		Status:     domain.SessionStatus(m.Status),
		StartedAt:  m.StartedAt,
		LastSeenAt: m.LastSeenAt,
		ExpiresAt:  m.ExpiresAt,
		AttemptID:  m.AttemptID.String,
	}, nil
}

func (r *sqlxSessionRepository) AbandonActiveForUser(ctx context.Context, userID string) (int64, error) {
	res, err := GetExecutor(ctx, r.db).ExecContext(ctx,
		`UPDATE quiz_sessions SET status = 'abandoned' WHERE user_id = :1 AND status = 'active'`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to abandon active sessions: %w", err)
	}
	return res.RowsAffected()
}

func (r *sqlxSessionRepository) Touch(ctx context.Context, id, userID string, now time.Time) (bool, error) {
	res, err := GetExecutor(ctx, r.db).ExecContext(ctx,
		`UPDATE quiz_sessions SET last_seen_at = :1
		 WHERE id = :2 AND user_id = :3 AND status = 'active' AND expires_at > :4`,
		now, id, userID, now)
	if err != nil {
		return false, fmt.Errorf("failed to refresh quiz session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *sqlxSessionRepository) MarkSubmitted(ctx context.Context, userID, quizID, attemptID string) (int64, error) {
	res, err := GetExecutor(ctx, r.db).ExecContext(ctx,
		`UPDATE quiz_sessions SET status = 'submitted', attempt_id = :1
		 WHERE user_id = :2 AND quiz_id = :3 AND status = 'active'`,
		attemptID, userID, quizID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark quiz session submitted: %w", err)
	}
	return res.RowsAffected()
}

func (r *sqlxSessionRepository) AbandonStale(ctx context.Context, now, inactiveBefore time.Time) (int64, error) {
	res, err := GetExecutor(ctx, r.db).ExecContext(ctx,
		`UPDATE quiz_sessions SET status = 'abandoned'
		 WHERE status = 'active' AND (expires_at <= :1 OR last_seen_at <= :2)`,
		now, inactiveBefore)
	if err != nil {
		return 0, fmt.Errorf("failed to abandon stale sessions: %w", err)
	}
	return res.RowsAffected()
}
